package audio

import (
	"sync"
	"time"

	"github.com/dgnsrekt/speechclip/speech"
)

var _ speech.AudioTarget = (*MockTarget)(nil)

// Event types recorded by MockTarget.
const (
	EventEmit = "emit"
	EventStop = "stop"
)

// MockTarget implements speech.AudioTarget without producing sound.
// Durations come from a lookup table; unknown assets last 0.
type MockTarget struct {
	mu        sync.RWMutex
	durations map[string]time.Duration
	active    map[string]int
	history   []PlaybackEvent
	callbacks MockCallbacks
}

// MockCallbacks holds callback functions for observing a MockTarget.
type MockCallbacks struct {
	OnEmit func(asset string)
	OnStop func(asset string)
}

// PlaybackEvent records an emit or stop call.
type PlaybackEvent struct {
	Type      string
	Asset     string
	Timestamp time.Time
}

// NewMockTarget creates a mock target with the given asset durations.
func NewMockTarget(durations map[string]time.Duration) *MockTarget {
	mt := &MockTarget{
		durations: make(map[string]time.Duration, len(durations)),
		active:    make(map[string]int),
	}
	for asset, d := range durations {
		mt.durations[asset] = d
	}
	return mt
}

// EmitSound records that asset started playing.
func (mt *MockTarget) EmitSound(asset string) {
	mt.mu.Lock()
	mt.active[asset]++
	mt.recordEvent(EventEmit, asset)
	cb := mt.callbacks.OnEmit
	mt.mu.Unlock()

	if cb != nil {
		cb(asset)
	}
}

// StopSound records that asset was stopped.
func (mt *MockTarget) StopSound(asset string) {
	mt.mu.Lock()
	delete(mt.active, asset)
	mt.recordEvent(EventStop, asset)
	cb := mt.callbacks.OnStop
	mt.mu.Unlock()

	if cb != nil {
		cb(asset)
	}
}

// SoundDuration returns the configured duration for asset.
func (mt *MockTarget) SoundDuration(asset string) time.Duration {
	mt.mu.RLock()
	defer mt.mu.RUnlock()
	return mt.durations[asset]
}

// SetDuration sets the duration reported for asset.
func (mt *MockTarget) SetDuration(asset string, d time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.durations[asset] = d
}

// SetDurations replaces the whole duration table.
func (mt *MockTarget) SetDurations(durations map[string]time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.durations = make(map[string]time.Duration, len(durations))
	for asset, d := range durations {
		mt.durations[asset] = d
	}
}

// SetCallbacks sets the observer callbacks.
func (mt *MockTarget) SetCallbacks(callbacks MockCallbacks) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.callbacks = callbacks
}

// IsActive reports whether asset has been emitted and not stopped since.
func (mt *MockTarget) IsActive(asset string) bool {
	mt.mu.RLock()
	defer mt.mu.RUnlock()
	return mt.active[asset] > 0
}

// History returns a copy of all recorded events.
func (mt *MockTarget) History() []PlaybackEvent {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	history := make([]PlaybackEvent, len(mt.history))
	copy(history, mt.history)
	return history
}

// Emitted returns the assets passed to EmitSound, in call order.
func (mt *MockTarget) Emitted() []string {
	return mt.assets(EventEmit)
}

// Stopped returns the assets passed to StopSound, in call order.
func (mt *MockTarget) Stopped() []string {
	return mt.assets(EventStop)
}

// Reset clears history and active assets. Durations are kept.
func (mt *MockTarget) Reset() {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.history = nil
	mt.active = make(map[string]int)
}

func (mt *MockTarget) assets(eventType string) []string {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	var out []string
	for _, ev := range mt.history {
		if ev.Type == eventType {
			out = append(out, ev.Asset)
		}
	}
	return out
}

// recordEvent appends an event to history. Caller must hold mt.mu.
func (mt *MockTarget) recordEvent(eventType, asset string) {
	mt.history = append(mt.history, PlaybackEvent{
		Type:      eventType,
		Asset:     asset,
		Timestamp: time.Now(),
	})
}
