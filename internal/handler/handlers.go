package handler

import (
	"github.com/airsyncd/go-airsync/internal/config"
	"github.com/airsyncd/go-airsync/internal/device"
	"github.com/airsyncd/go-airsync/internal/engine"
	"github.com/airsyncd/go-airsync/internal/handler/http"
	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/loopdetect"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(orchestrator *engine.Orchestrator, devices *device.Manager, loops *loopdetect.Detector, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(orchestrator, devices, loops, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
