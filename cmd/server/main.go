package main

import (
	"context"
	"fmt"

	"github.com/airsyncd/go-airsync/internal/backend"
	"github.com/airsyncd/go-airsync/internal/config"
	"github.com/airsyncd/go-airsync/internal/device"
	"github.com/airsyncd/go-airsync/internal/engine"
	"github.com/airsyncd/go-airsync/internal/handler"
	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/loopdetect"
	"github.com/airsyncd/go-airsync/internal/server"
	"github.com/airsyncd/go-airsync/internal/store"
	"github.com/airsyncd/go-airsync/internal/workers"
	"github.com/airsyncd/go-airsync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("airsync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	loopCache, err := loopdetect.OpenCache(cfg.Storage.LoopCachePath)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening loop detection cache")
	}
	defer func() {
		if err := loopCache.Close(); err != nil {
			log.Err(err).Msg("error closing loop detection cache")
		}
	}()

	devices := device.NewManager(storages.DeviceRepository, cfg.Sync, log)
	connector := newBackend()

	orchestrator := engine.NewOrchestrator(storages.StateRepository, devices, connector, loopCache, cfg.Sync, log)

	handlers, err := handler.NewHandlers(orchestrator, devices, loopdetect.NewDetector(loopCache, log), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	servers, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating servers")
	}

	workers.NewWorkers(storages.StateRepository, cfg.Workers, log).Run()

	servers.RunServer()
}

// newBackend builds the content source the sync engine exports from and
// imports into. The in-memory backend ships with a minimal mailbox layout so
// a fresh server answers folder hierarchy requests out of the box.
func newBackend() backend.Connector {
	mem := backend.NewMemory()
	mem.CreateFolder("inbox", models.ClassEmail)
	mem.CreateFolder("calendar", models.ClassCalendar)
	mem.CreateFolder("contacts", models.ClassContacts)
	mem.CreateFolder("tasks", models.ClassTasks)
	mem.CreateFolder("trash", models.ClassEmail)
	mem.SetWasteBasket("trash")
	return mem
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
