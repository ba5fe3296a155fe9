package http

import (
	"context"

	"github.com/airsyncd/go-airsync/internal/device"
	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/loopdetect"
	"github.com/airsyncd/go-airsync/internal/utils"
	"github.com/airsyncd/go-airsync/models"
)

// SyncEngine is the part of the synchronization engine the transport layer
// needs: one entry point per protocol command.
type SyncEngine interface {
	HandleSync(ctx context.Context, deviceID, userID string, req *models.SyncRequest) (*models.SyncResponse, error)
	HandleEstimate(ctx context.Context, deviceID, userID string, req *models.EstimateRequest) (*models.EstimateResponse, error)
}

type Handler struct {
	engine  SyncEngine
	devices *device.Manager
	loops   *loopdetect.Detector
	uuids   *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(engine SyncEngine, devices *device.Manager, loops *loopdetect.Detector, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		engine:  engine,
		devices: devices,
		loops:   loops,
		uuids:   utils.NewUUIDGenerator(),
		logger:  logger,
	}
}
