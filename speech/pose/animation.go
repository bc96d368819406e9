package pose

import (
	"sort"
	"time"
)

// Keyframe is a parameter value at an offset from the start of an animation.
type Keyframe struct {
	At    time.Duration
	Value float64
}

// Animation is a keyframed curve for one pose parameter.
type Animation struct {
	Name      string
	Keyframes []Keyframe
	Loop      bool
}

// NewAnimation creates an animation with keyframes sorted by offset.
func NewAnimation(name string, loop bool, keyframes ...Keyframe) Animation {
	kf := make([]Keyframe, len(keyframes))
	copy(kf, keyframes)
	sort.SliceStable(kf, func(i, j int) bool { return kf[i].At < kf[j].At })
	return Animation{Name: name, Keyframes: kf, Loop: loop}
}

// Length returns the offset of the last keyframe.
func (a Animation) Length() time.Duration {
	if len(a.Keyframes) == 0 {
		return 0
	}
	return a.Keyframes[len(a.Keyframes)-1].At
}

// Sample returns the interpolated value at t. Before the first keyframe the
// first value is held; past the end the last value is held, or the curve
// wraps when the animation loops.
func (a Animation) Sample(t time.Duration) float64 {
	switch len(a.Keyframes) {
	case 0:
		return 0
	case 1:
		return a.Keyframes[0].Value
	}

	if length := a.Length(); a.Loop && length > 0 && t > length {
		t %= length
	}

	first := a.Keyframes[0]
	if t <= first.At {
		return first.Value
	}

	for i := 1; i < len(a.Keyframes); i++ {
		next := a.Keyframes[i]
		if t > next.At {
			continue
		}
		prev := a.Keyframes[i-1]
		span := next.At - prev.At
		if span <= 0 {
			return next.Value
		}
		frac := float64(t-prev.At) / float64(span)
		return prev.Value + (next.Value-prev.Value)*frac
	}

	return a.Keyframes[len(a.Keyframes)-1].Value
}

// Done reports whether a non-looping animation has reached its last keyframe.
func (a Animation) Done(t time.Duration) bool {
	return !a.Loop && t >= a.Length()
}
