package store

import (
	"context"
	"fmt"

	"github.com/airsyncd/go-airsync/internal/config"
	"github.com/airsyncd/go-airsync/internal/logger"
)

type Storages struct {
	StateRepository  StateRepository
	DeviceRepository DeviceRepository
}

// NewStorages connects to the configured database, runs migrations and
// constructs the repository set. The driver is selected by cfg.Driver
// ("postgres" or "sqlite").
func NewStorages(ctx context.Context, cfg config.Database, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error running migrations")
		return nil, err
	}

	return &Storages{
		StateRepository:  NewStateRepository(db, log),
		DeviceRepository: NewDeviceRepository(db, log),
	}, nil
}
