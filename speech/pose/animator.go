package pose

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/speechclip/speech"
)

var _ speech.PoseAnimator = (*Animator)(nil)

// Sink receives animated pose parameter values.
type Sink interface {
	SetPoseParameter(name string, value float64)
}

// Animator plays animations from a library onto one pose parameter.
// Output is smoothed towards the sampled curve so animation switches do not
// snap the pose.
type Animator struct {
	parameter string
	library   *Library
	sink      Sink
	smoothing float64
	logger    *log.Logger

	current Animation
	elapsed time.Duration
	value   float64
}

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithSmoothing sets the smoothing rate. 0 disables smoothing.
func WithSmoothing(rate float64) AnimatorOption {
	return func(a *Animator) {
		if rate >= 0 {
			a.smoothing = rate
		}
	}
}

// WithLogger sets the logger used for unknown animation warnings.
func WithLogger(logger *log.Logger) AnimatorOption {
	return func(a *Animator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnimator creates an animator for parameter. A nil library uses
// DefaultLibrary; a nil sink discards output.
func NewAnimator(parameter string, library *Library, sink Sink, opts ...AnimatorOption) *Animator {
	if library == nil {
		library = DefaultLibrary()
	}

	a := &Animator{
		parameter: parameter,
		library:   library,
		sink:      sink,
		smoothing: 12.0,
		logger:    log.Default(),
	}
	a.current, _ = library.Get(RestAnimation)

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// SetAnimation restarts playback with the named animation. Unknown names
// fall back to the rest animation.
func (a *Animator) SetAnimation(name string) {
	anim, ok := a.library.Get(name)
	if !ok {
		a.logger.Warn("Unknown pose animation", "animation", name, "parameter", a.parameter)
		anim, _ = a.library.Get(RestAnimation)
	}
	a.current = anim
	a.elapsed = 0
}

// UpdatePose advances the animation by delta and writes the new value.
func (a *Animator) UpdatePose(delta time.Duration) {
	a.elapsed += delta

	target := a.current.Sample(a.elapsed)

	factor := 1.0
	if a.smoothing > 0 {
		factor = 1.0 - math.Exp(-a.smoothing*delta.Seconds())
	}
	a.value += (target - a.value) * factor

	if a.sink != nil {
		a.sink.SetPoseParameter(a.parameter, a.value)
	}
}

// Value returns the last written parameter value.
func (a *Animator) Value() float64 {
	return a.value
}

// Animation returns the name of the playing animation.
func (a *Animator) Animation() string {
	return a.current.Name
}

// Parameter returns the animated pose parameter name.
func (a *Animator) Parameter() string {
	return a.parameter
}

// ValueSink is a Sink that remembers the latest value per parameter.
// It may be read from a different goroutine than the one animating.
type ValueSink struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewValueSink creates an empty sink.
func NewValueSink() *ValueSink {
	return &ValueSink{values: make(map[string]float64)}
}

// SetPoseParameter stores value for name.
func (s *ValueSink) SetPoseParameter(name string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// Get returns the latest value for name.
func (s *ValueSink) Get(name string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}
