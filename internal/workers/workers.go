// Package workers provides small cancellable background jobs used by the
// storage layer: the polling loop behind local subscriptions and the pump
// that drains the remote change feed.
package workers

import (
	"context"
	"sync"
	"time"
)

// PollJob runs a function on a fixed interval in a background goroutine.
// The job is idle until Start is called; Stop (or cancelling the context
// passed to Start) terminates it and waits for the goroutine to exit.
type PollJob struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start stops any previously running job, then launches a background
// goroutine that calls tick every interval. If interval is zero or negative
// it defaults to 2 seconds. The goroutine exits when ctx is cancelled or
// Stop is called.
func (j *PollJob) Start(ctx context.Context, interval time.Duration, tick func(context.Context)) {
	if interval <= 0 {
		interval = 2 * time.Second
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
				tick(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running
// (no-op in that case).
func (j *PollJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// PumpJob runs a blocking drain function in a background goroutine. Unlike
// PollJob it has no timer; the drain function is expected to block on an
// event source (e.g. a pub/sub channel) until the context is cancelled.
type PumpJob struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start stops any previous pump and launches drain in a goroutine. The
// drain function must return when its context is cancelled.
func (j *PumpJob) Start(ctx context.Context, drain func(context.Context)) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		drain(jobCtx)
	}()
}

// Stop cancels the pump and waits for the goroutine to exit.
func (j *PumpJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
