// Package workers runs the background jobs of the admin client as one
// unit. Each job gets its interval from configuration; the aggregate starts
// them together after unlock and stops them together on logout or exit.
package workers

import (
	"context"
	"time"
)

// Worker is a periodic background job.
//
// Start launches the job in its own goroutine and returns immediately;
// starting a running job restarts it. Stop blocks until the goroutine has
// exited and is safe to call on a job that is not running.
type Worker interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
