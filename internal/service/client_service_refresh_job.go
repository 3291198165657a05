package service

import (
	"context"
	"sync"
	"time"

	"github.com/kianlavi/onlyfan/internal/logger"
)

const defaultRefreshInterval = time.Minute

type refreshJob struct {
	content ContentService
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a refreshJob that calls content.Refresh on a ticker
// so cached versions follow changes made by other collaborators. The job is
// idle until Start is called.
func NewRefreshJob(content ContentService, logger *logger.Logger) RefreshJob {
	return &refreshJob{content: content, logger: logger}
}

// Start implements RefreshJob.
func (j *refreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.content.Refresh(jobCtx); err != nil {
					j.logger.Debug().Err(err).Str("func", "refreshJob.Start").Msg("refresh failed")
				}
			}
		}
	}()
}

// Stop implements RefreshJob. Safe to call when the job is not running.
func (j *refreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
