package config

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.LoopCachePath == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.PingInterval <= 0 ||
		cfg.Sync.HeartbeatMin <= 0 ||
		cfg.Sync.HeartbeatMax < cfg.Sync.HeartbeatMin ||
		cfg.Sync.DefaultWindowSize <= 0 ||
		cfg.Sync.MaxWindowSize < cfg.Sync.DefaultWindowSize {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.PurgeInterval <= 0 ||
		cfg.Workers.StateRetention <= 0 ||
		cfg.Workers.FailStateRetention <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
