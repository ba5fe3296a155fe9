package workers

import (
	"github.com/airsyncd/go-airsync/internal/config"
	"github.com/airsyncd/go-airsync/internal/logger"
	"github.com/airsyncd/go-airsync/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers of the sync server. Currently a
// single state janitor; the aggregate keeps main oblivious to the list.
func NewWorkers(states store.StateRepository, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		NewStateJanitor(states, cfg, logger),
	}}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
