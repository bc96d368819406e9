// Package ticker drives a speech scheduler from a fixed-rate host loop.
package ticker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRate is the tick interval used when none is given.
const DefaultRate = time.Second / 30

// Tickable is advanced once per host tick.
type Tickable interface {
	Update(delta time.Duration)
	UpdatePose(delta time.Duration)
}

// Driver calls Update and UpdatePose on a Tickable at a fixed rate, passing
// the measured time since the previous tick.
type Driver struct {
	rate time.Duration
	now  func() time.Time

	mu        sync.RWMutex
	callbacks []func(time.Duration)

	ticks atomic.Uint64
}

// NewDriver creates a driver ticking every rate. A non-positive rate uses
// DefaultRate.
func NewDriver(rate time.Duration) *Driver {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Driver{
		rate: rate,
		now:  time.Now,
	}
}

// Rate returns the tick interval.
func (d *Driver) Rate() time.Duration {
	return d.rate
}

// OnTick registers a callback run after every tick, on the ticking goroutine.
func (d *Driver) OnTick(fn func(delta time.Duration)) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callbacks = append(d.callbacks, fn)
}

// Ticks returns how many ticks have been delivered.
func (d *Driver) Ticks() uint64 {
	return d.ticks.Load()
}

// Step delivers one tick of delta to t synchronously.
func (d *Driver) Step(t Tickable, delta time.Duration) {
	t.Update(delta)
	t.UpdatePose(delta)
	d.ticks.Add(1)

	d.mu.RLock()
	callbacks := d.callbacks
	d.mu.RUnlock()

	for _, fn := range callbacks {
		fn(delta)
	}
}

// Run ticks t until ctx is cancelled and returns ctx.Err().
func (d *Driver) Run(ctx context.Context, t Tickable) error {
	return d.RunUntil(ctx, t, nil)
}

// RunUntil ticks t until done reports true after a tick, returning nil, or
// until ctx is cancelled, returning ctx.Err(). A nil done never stops.
func (d *Driver) RunUntil(ctx context.Context, t Tickable, done func() bool) error {
	ticker := time.NewTicker(d.rate)
	defer ticker.Stop()

	last := d.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := d.now()
			delta := now.Sub(last)
			last = now

			d.Step(t, delta)

			if done != nil && done() {
				return nil
			}
		}
	}
}
