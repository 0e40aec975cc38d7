package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"devconnect_backend/pkg/logger"
)

// Runner executes fire-and-forget side effects in the background.
// The submitting operation never waits on the task and never sees
// its error; failures land in the log with the task name attached.
type Runner struct {
	wg      sync.WaitGroup
	timeout time.Duration
}

// NewRunner create a Runner. Each task gets its own timeout budget.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{timeout: timeout}
}

// Submit run fn in the background. A panic inside fn is recovered
// and logged, it never takes down the process.
func (r *Runner) Submit(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.Error(fmt.Sprintf("task %s panic: %v", name, rec))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			logger.Log.Errorf(fmt.Sprintf("task %s failed:", name), err)
		}
	}()
}

// Wait block until in-flight tasks finish or ctx expires.
func (r *Runner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
