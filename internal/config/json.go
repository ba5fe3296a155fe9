package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/airsyncd/go-airsync/models"
)

type StructuredJSONConfig struct {
	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		LoopCachePath string `json:"loop_cache_path"`
	} `json:"storage,omitempty"`

	Sync struct {
		PingInterval      Duration `json:"ping_interval"`
		HeartbeatMin      Duration `json:"heartbeat_min"`
		HeartbeatMax      Duration `json:"heartbeat_max"`
		DefaultWindowSize int      `json:"default_window_size"`
		MaxWindowSize     int      `json:"max_window_size"`
		MaxFilterType     int      `json:"max_filter_type"`
		DefaultConflict   int      `json:"default_conflict"`
	} `json:"sync,omitempty"`

	Workers struct {
		PurgeInterval      Duration `json:"purge_interval"`
		StateRetention     Duration `json:"state_retention"`
		FailStateRetention Duration `json:"fail_state_retention"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: Database{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			LoopCachePath: jsonCfg.Storage.LoopCachePath,
		},
		Sync: Sync{
			PingInterval:      time.Duration(jsonCfg.Sync.PingInterval),
			HeartbeatMin:      time.Duration(jsonCfg.Sync.HeartbeatMin),
			HeartbeatMax:      time.Duration(jsonCfg.Sync.HeartbeatMax),
			DefaultWindowSize: jsonCfg.Sync.DefaultWindowSize,
			MaxWindowSize:     jsonCfg.Sync.MaxWindowSize,
			MaxFilterType:     models.FilterType(jsonCfg.Sync.MaxFilterType),
			DefaultConflict:   models.ConflictPolicy(jsonCfg.Sync.DefaultConflict),
		},
		Workers: Workers{
			PurgeInterval:      time.Duration(jsonCfg.Workers.PurgeInterval),
			StateRetention:     time.Duration(jsonCfg.Workers.StateRetention),
			FailStateRetention: time.Duration(jsonCfg.Workers.FailStateRetention),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
