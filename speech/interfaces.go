package speech

import "time"

// AudioTarget is the emitter a scheduler plays its clips on.
// Calls are fire-and-forget: implementations handle their own failures.
type AudioTarget interface {
	// EmitSound starts playing the asset.
	EmitSound(asset string)

	// StopSound stops the asset if it is playing.
	StopSound(asset string)

	// SoundDuration returns the audible length of the asset, or 0 if unknown.
	SoundDuration(asset string) time.Duration
}

// PoseAnimator drives the speaker's mouth pose.
type PoseAnimator interface {
	// SetAnimation switches to the named animation from its start.
	SetAnimation(name string)

	// UpdatePose advances the current animation by delta.
	UpdatePose(delta time.Duration)
}

type nopAnimator struct{}

func (nopAnimator) SetAnimation(string)      {}
func (nopAnimator) UpdatePose(time.Duration) {}
