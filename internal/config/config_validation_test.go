package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := func() *StructuredConfig {
		cfg := defaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(cfg *StructuredConfig) {},
			wantErr: nil,
		},
		{
			name:    "missing http address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "oracle" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing loop cache path",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.LoopCachePath = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "heartbeat bounds out of order",
			mutate: func(cfg *StructuredConfig) {
				cfg.Sync.HeartbeatMin = cfg.Sync.HeartbeatMax + 1
			},
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "zero window size",
			mutate:  func(cfg *StructuredConfig) { cfg.Sync.DefaultWindowSize = 0 },
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name: "max window below default",
			mutate: func(cfg *StructuredConfig) {
				cfg.Sync.MaxWindowSize = cfg.Sync.DefaultWindowSize - 1
			},
			wantErr: ErrInvalidSyncConfigs,
		},
		{
			name:    "zero purge interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.PurgeInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
