package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsyncd/go-airsync/models"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_AllFields(t *testing.T) {
	path := writeTempJSON(t, `{
		"server": {
			"http_address": "0.0.0.0:8080",
			"request_timeout": "45s"
		},
		"storage": {
			"db": {"driver": "sqlite", "dsn": "airsync.db"},
			"loop_cache_path": "loopdetect.db"
		},
		"sync": {
			"ping_interval": "20s",
			"heartbeat_min": "1m",
			"heartbeat_max": "50m",
			"default_window_size": 50,
			"max_window_size": 256,
			"max_filter_type": 6,
			"default_conflict": 1
		},
		"workers": {
			"purge_interval": "2h",
			"state_retention": "336h",
			"fail_state_retention": "72h"
		}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)

	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, "airsync.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "loopdetect.db", cfg.Storage.LoopCachePath)

	assert.Equal(t, 20*time.Second, cfg.Sync.PingInterval)
	assert.Equal(t, time.Minute, cfg.Sync.HeartbeatMin)
	assert.Equal(t, 50*time.Minute, cfg.Sync.HeartbeatMax)
	assert.Equal(t, 50, cfg.Sync.DefaultWindowSize)
	assert.Equal(t, 256, cfg.Sync.MaxWindowSize)
	assert.Equal(t, models.Filter3Months, cfg.Sync.MaxFilterType)
	assert.Equal(t, models.ConflictServerWins, cfg.Sync.DefaultConflict)

	assert.Equal(t, 2*time.Hour, cfg.Workers.PurgeInterval)
	assert.Equal(t, 336*time.Hour, cfg.Workers.StateRetention)
	assert.Equal(t, 72*time.Hour, cfg.Workers.FailStateRetention)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	path := writeTempJSON(t, `{"sync": {"ping_interval": 30000000000}}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Sync.PingInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeTempJSON(t, `{"server": `)

	_, err := parseJSON(path)
	require.Error(t, err)
}
