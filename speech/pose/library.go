package pose

import (
	"sort"
	"time"
)

// RestAnimation holds the parameter closed.
const RestAnimation = "rest"

// Library stores animations by name.
type Library struct {
	animations map[string]Animation
}

// NewLibrary creates a library containing only the rest animation.
func NewLibrary() *Library {
	l := &Library{animations: make(map[string]Animation)}
	l.Register(NewAnimation(RestAnimation, false, Keyframe{At: 0, Value: 0}))
	return l
}

// Register adds or replaces an animation.
func (l *Library) Register(anim Animation) {
	if l == nil || anim.Name == "" {
		return
	}
	l.animations[anim.Name] = anim
}

// Get returns an animation by name.
func (l *Library) Get(name string) (Animation, bool) {
	if l == nil || name == "" {
		return Animation{}, false
	}
	anim, ok := l.animations[name]
	return anim, ok
}

// Names returns the registered animation names, sorted.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.animations))
	for name := range l.animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultLibrary returns the built-in mouth animations.
func DefaultLibrary() *Library {
	ms := time.Millisecond
	l := NewLibrary()

	l.Register(NewAnimation("talk", true,
		Keyframe{0, 0},
		Keyframe{90 * ms, 0.7},
		Keyframe{180 * ms, 0.2},
		Keyframe{260 * ms, 0.55},
		Keyframe{340 * ms, 0},
	))
	l.Register(NewAnimation("talk_fast", true,
		Keyframe{0, 0},
		Keyframe{60 * ms, 0.6},
		Keyframe{120 * ms, 0.1},
		Keyframe{180 * ms, 0.5},
		Keyframe{220 * ms, 0},
	))
	l.Register(NewAnimation("shout", true,
		Keyframe{0, 0.2},
		Keyframe{120 * ms, 1},
		Keyframe{300 * ms, 0.8},
		Keyframe{420 * ms, 0.2},
	))
	l.Register(NewAnimation("whisper", true,
		Keyframe{0, 0},
		Keyframe{150 * ms, 0.25},
		Keyframe{300 * ms, 0.05},
		Keyframe{400 * ms, 0},
	))

	return l
}
