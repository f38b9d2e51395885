package anim

import (
	"sync"
	"time"
)

// Clock produces the repeating animation tick. At most one tick stream is
// live at a time: Start replaces any existing interval in place, so rapid
// behavior changes never leave overlapping tickers behind.
type Clock struct {
	mu       sync.Mutex
	ticker   *time.Ticker
	interval time.Duration
}

// NewClock creates a stopped Clock.
func NewClock() *Clock {
	return &Clock{}
}

// Start begins ticking at the given interval, replacing the previous
// interval if the clock was already running. The tick channel stays stable
// across restarts.
func (c *Clock) Start(interval time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.interval = interval
	if c.ticker == nil {
		c.ticker = time.NewTicker(interval)
		return
	}
	c.ticker.Reset(interval)
}

// Interval returns the interval of the most recent Start, or zero if the
// clock was never started.
func (c *Clock) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// Stop halts the tick stream. Idempotent: stopping a clock that was never
// started is a no-op.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ticker != nil {
		c.ticker.Stop()
	}
}

// C returns the tick channel. It is nil until the first Start, which a
// select treats as never-ready.
func (c *Clock) C() <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ticker == nil {
		return nil
	}
	return c.ticker.C
}

// Running reports whether the clock has ever been started.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticker != nil
}
