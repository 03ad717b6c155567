package round

import (
	"context"
	"sync"
	"time"
)

// Clock abstracts wall time for the tick loop.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FakeClock is deterministic and test-friendly.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// Run drives the round from a ticker until it ends or ctx is cancelled.
// Elapsed time is measured with the round's clock, so irregular ticks still
// hand enemies the true elapsed time. Cancelling ctx tears the round down.
func (r *Round) Run(ctx context.Context) error {
	interval := r.cfg.TickInterval()
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := r.clock.Now()
	for {
		select {
		case <-ctx.Done():
			r.Close()
			return ctx.Err()
		case <-r.done:
			return nil
		case <-ticker.C:
			r.Advance(int(r.clock.Now().Sub(start).Milliseconds()))
		}
	}
}
