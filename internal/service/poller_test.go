package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"stationwatch/internal/logger"
	"stationwatch/internal/models"
)

type countingAvailability struct {
	runs atomic.Int64
}

func (c *countingAvailability) RunCycle(ctx context.Context) (models.CycleSummary, error) {
	c.runs.Add(1)
	return models.CycleSummary{RanAt: time.Now().UTC()}, nil
}

func (c *countingAvailability) LastSummary() (models.CycleSummary, bool) {
	return models.CycleSummary{}, false
}

func TestPoller_RunsImmediatelyAndOnTick(t *testing.T) {
	avail := &countingAvailability{}
	p := NewPollerService(avail, logger.Get(logger.ErrorLevel))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	// Wait for the immediate run plus at least one tick.
	deadline := time.After(2 * time.Second)
	for avail.runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("poller ran %d times, want >= 2", avail.runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("poller did not stop on context cancellation")
	}
}
