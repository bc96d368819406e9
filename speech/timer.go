package speech

import "time"

// Timer accumulates elapsed time against a wait interval.
// The zero value is a done timer with no wait.
type Timer struct {
	wait    time.Duration
	elapsed time.Duration
}

// NewTimer creates a timer that is done once wait has elapsed.
func NewTimer(wait time.Duration) *Timer {
	return &Timer{wait: wait}
}

// Tick adds delta to the elapsed time.
func (t *Timer) Tick(delta time.Duration) {
	t.elapsed += delta
}

// Done reports whether the elapsed time has reached the wait interval.
func (t *Timer) Done() bool {
	return t.elapsed >= t.wait
}

// SetWait changes the wait interval. Elapsed time is kept.
func (t *Timer) SetWait(wait time.Duration) {
	t.wait = wait
}

// Reset zeroes the elapsed time. The wait interval is kept.
func (t *Timer) Reset() {
	t.elapsed = 0
}

// Elapsed returns the accumulated time, which may exceed the wait.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Wait returns the configured wait interval.
func (t *Timer) Wait() time.Duration {
	return t.wait
}

// Remaining returns the time left before the timer is done.
func (t *Timer) Remaining() time.Duration {
	if t.elapsed >= t.wait {
		return 0
	}
	return t.wait - t.elapsed
}
