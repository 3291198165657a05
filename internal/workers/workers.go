package workers

import (
	"context"
	"sync"
	"time"

	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/logger"
)

type scheduled struct {
	name     string
	worker   Worker
	interval time.Duration
}

type Workers struct {
	mu      sync.Mutex
	workers []scheduled
	running bool

	logger *logger.Logger
}

// NewWorkers schedules the refresh job with the configured interval.
func NewWorkers(refresh Worker, cfg config.ClientWorkers, logger *logger.Logger) *Workers {
	w := &Workers{logger: logger}
	if refresh != nil {
		w.Add("refresh", refresh, cfg.RefreshInterval)
	}
	return w
}

// Add schedules another worker. Workers added while running start with the
// next Start.
func (w *Workers) Add(name string, worker Worker, interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.workers = append(w.workers, scheduled{name: name, worker: worker, interval: interval})
}

// Start starts every worker in the order they were added.
func (w *Workers) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, s := range w.workers {
		s.worker.Start(ctx, s.interval)
		w.logger.Debug().
			Str("func", "Workers.Start").
			Str("worker", s.name).
			Dur("interval", s.interval).
			Msg("worker started")
	}
	w.running = true
}

// Stop stops every worker in reverse order and waits for each.
func (w *Workers) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].worker.Stop()
	}
	w.running = false
	w.logger.Debug().Str("func", "Workers.Stop").Msg("workers stopped")
}

// Running reports whether Start was called without a matching Stop.
func (w *Workers) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
