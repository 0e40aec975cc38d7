package tasks

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"devconnect_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func init() {
	logger.Log = logger.Initialize("tasks_test", os.TempDir())
}

func TestRunner_RunsSubmittedTasks(t *testing.T) {
	runner := NewRunner(time.Second)

	var ran int32
	runner.Submit("count", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	runner.Submit("count", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, runner.Wait(ctx))
	assert.Equal(t, int32(2), atomic.LoadInt32(&ran))
}

func TestRunner_TaskErrorDoesNotBlockOthers(t *testing.T) {
	runner := NewRunner(time.Second)

	var ran int32
	runner.Submit("failing", func(ctx context.Context) error {
		return errors.New("boom")
	})
	runner.Submit("fine", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, runner.Wait(ctx))
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}

func TestRunner_PanicIsRecovered(t *testing.T) {
	runner := NewRunner(time.Second)

	runner.Submit("panicking", func(ctx context.Context) error {
		panic("boom")
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, runner.Wait(ctx))
}

func TestRunner_TaskGetsTimeoutContext(t *testing.T) {
	runner := NewRunner(50 * time.Millisecond)

	done := make(chan struct{})
	runner.Submit("slow", func(ctx context.Context) error {
		defer close(done)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return errors.New("timeout never fired")
		}
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task context was never cancelled")
	}
}

func TestRunner_WaitHonorsContext(t *testing.T) {
	runner := NewRunner(5 * time.Second)

	release := make(chan struct{})
	runner.Submit("held", func(ctx context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, runner.Wait(ctx))

	close(release)
}
