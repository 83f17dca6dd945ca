package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollJob_TicksUntilStopped(t *testing.T) {
	var ticks atomic.Int64
	job := &PollJob{}

	job.Start(context.Background(), 10*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})

	time.Sleep(100 * time.Millisecond)
	job.Stop()
	seen := ticks.Load()
	assert.Greater(t, seen, int64(0))

	// no further ticks after Stop
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, seen, ticks.Load())
}

func TestPollJob_StopWithoutStart(t *testing.T) {
	job := &PollJob{}
	job.Stop() // must not panic or block
}

func TestPollJob_ContextCancelStops(t *testing.T) {
	var ticks atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	job := &PollJob{}

	job.Start(ctx, 10*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})
	time.Sleep(35 * time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)

	seen := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, seen, ticks.Load())
	job.Stop()
}

func TestPollJob_RestartReplacesPrevious(t *testing.T) {
	var first, second atomic.Int64
	job := &PollJob{}

	job.Start(context.Background(), 10*time.Millisecond, func(context.Context) { first.Add(1) })
	job.Start(context.Background(), 10*time.Millisecond, func(context.Context) { second.Add(1) })

	time.Sleep(60 * time.Millisecond)
	job.Stop()

	firstSeen := first.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, firstSeen, first.Load(), "first job should have been replaced")
	assert.Greater(t, second.Load(), int64(0))
}

func TestPumpJob_DrainExitsOnStop(t *testing.T) {
	done := make(chan struct{})
	job := &PumpJob{}

	job.Start(context.Background(), func(ctx context.Context) {
		<-ctx.Done()
		close(done)
	})

	job.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("drain did not exit after Stop")
	}
}
