package workers

import (
	"context"
	"time"

	"github.com/airsyncd/go-airsync/internal/config"
	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/store"
)

// StateJanitor periodically removes expired synchronization states and stale
// fail states. The purge keeps the newest state of every sync sequence, so an
// idle device that eventually reconnects still resumes instead of restarting
// from the initial key.
type StateJanitor struct {
	states store.StateRepository

	interval           time.Duration
	stateRetention     time.Duration
	failStateRetention time.Duration

	logger *logger.Logger
}

func NewStateJanitor(states store.StateRepository, cfg config.Workers, logger *logger.Logger) *StateJanitor {
	return &StateJanitor{
		states:             states,
		interval:           cfg.PurgeInterval,
		stateRetention:     cfg.StateRetention,
		failStateRetention: cfg.FailStateRetention,
		logger:             logger,
	}
}

// Run starts the purge loop in the background.
func (j *StateJanitor) Run() {
	go j.loop()
}

func (j *StateJanitor) loop() {
	j.logger.Info().
		Str("func", "*StateJanitor.loop").
		Dur("interval", j.interval).
		Msg("state janitor started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for range ticker.C {
		j.purge(context.Background())
	}
}

func (j *StateJanitor) purge(ctx context.Context) {
	now := time.Now()

	removed, err := j.states.PurgeSyncStates(ctx, now.Add(-j.stateRetention))
	if err != nil {
		j.logger.Err(err).Str("func", "*StateJanitor.purge").Msg("error purging sync states")
	} else if removed > 0 {
		j.logger.Info().Int64("removed", removed).Msg("purged expired sync states")
	}

	removed, err = j.states.PurgeFailStates(ctx, now.Add(-j.failStateRetention))
	if err != nil {
		j.logger.Err(err).Str("func", "*StateJanitor.purge").Msg("error purging fail states")
	} else if removed > 0 {
		j.logger.Info().Int64("removed", removed).Msg("purged stale fail states")
	}
}
