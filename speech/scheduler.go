package speech

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/speechclip/internal/queue"
)

// DefaultClipPadding is the silence appended to every clip before the next
// one may start. It keeps audio and mouth animation from chattering at clip
// boundaries.
const DefaultClipPadding = 250 * time.Millisecond

// Scheduler plays speech clips one at a time on a single audio target.
//
// Clips are either queued, in which case Update starts them in FIFO order as
// the previous clip (plus padding) completes, or played immediately with
// PlayClip, which interrupts whatever is still audible.
//
// A Scheduler is not safe for concurrent use. It is meant to be owned by one
// entity and driven from one host loop.
type Scheduler struct {
	target   AudioTarget
	animator PoseAnimator
	mapper   func(Clip) string
	logger   *log.Logger
	padding  time.Duration

	queue    *queue.FIFO[Clip]
	current  *Clip
	duration time.Duration
	timer    *Timer
	sm       *StateMachine
	played   int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPadding sets the silence appended to each clip.
func WithPadding(d time.Duration) Option {
	return func(s *Scheduler) {
		if d >= 0 {
			s.padding = d
		}
	}
}

// WithAnimationMapper sets how clips are mapped to mouth animations.
func WithAnimationMapper(fn func(Clip) string) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.mapper = fn
		}
	}
}

// WithLogger sets the logger used for playback events.
func WithLogger(logger *log.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScheduler creates a scheduler that plays clips on target and drives
// animator alongside them. A nil animator disables pose updates.
func NewScheduler(target AudioTarget, animator PoseAnimator, opts ...Option) *Scheduler {
	if animator == nil {
		animator = nopAnimator{}
	}

	s := &Scheduler{
		target:   target,
		animator: animator,
		mapper:   AnimationFor,
		logger:   log.Default(),
		padding:  DefaultClipPadding,
		queue:    queue.New[Clip](),
		timer:    NewTimer(0),
		sm:       NewStateMachine(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Update advances the clip timer by delta. Once the timer is done, the head
// of the queue (if any) becomes the current clip. At most one clip is started
// per call.
func (s *Scheduler) Update(delta time.Duration) {
	s.timer.Tick(delta)

	if !s.timer.Done() {
		return
	}

	if s.sm.Current() == StatePlaying {
		s.logger.Debug("Clip finished",
			"clip", s.current.String(),
			"duration", s.duration,
			"elapsed", s.timer.Elapsed())
		s.sm.Transition(StateFinished)
	}

	if s.queue.Len() == 0 {
		return
	}

	clip, err := s.queue.Dequeue()
	if err != nil {
		return
	}

	s.logger.Debug("Dequeued clip", "clip", clip.String(), "pending", s.queue.Len())
	s.PlayClip(clip)
}

// UpdatePose advances the mouth animation by delta. It runs independently of
// the queue and timer.
func (s *Scheduler) UpdatePose(delta time.Duration) {
	s.animator.UpdatePose(delta)
}

// PlayClip starts clip immediately, bypassing the queue. If the current clip
// is still within its duration plus padding it is stopped first.
func (s *Scheduler) PlayClip(clip Clip) {
	if s.current != nil && !s.timer.Done() {
		s.logger.Debug("Interrupting clip",
			"clip", s.current.String(),
			"elapsed", s.timer.Elapsed(),
			"by", clip.String())
		s.target.StopSound(s.current.Asset)
		s.current = nil
		s.duration = 0
	}

	s.current = &clip
	s.target.EmitSound(clip.Asset)

	duration := s.target.SoundDuration(clip.Asset)
	if duration < 0 {
		duration = 0
	}
	s.duration = duration

	s.timer.SetWait(duration + s.padding)
	s.timer.Reset()

	s.animator.SetAnimation(s.mapper(clip))
	s.played++

	s.logger.Debug("Clip started",
		"clip", clip.String(),
		"asset", clip.Asset,
		"duration", duration,
		"wait", s.timer.Wait())

	s.sm.Transition(StatePlaying)
}

// QueueClip appends clip to the end of the queue.
func (s *Scheduler) QueueClip(clip Clip) {
	s.queue.Enqueue(clip)
}

// ClearQueue discards every queued clip. The current clip keeps playing.
func (s *Scheduler) ClearQueue() {
	if n := s.queue.Len(); n > 0 {
		s.logger.Debug("Cleared queue", "discarded", n)
	}
	s.queue.Clear()
}

// CurrentClip returns the current clip, if any.
func (s *Scheduler) CurrentClip() (Clip, bool) {
	if s.current == nil {
		return Clip{}, false
	}
	return *s.current, true
}

// CurrentClipDuration returns the audible duration of the current clip,
// excluding padding.
func (s *Scheduler) CurrentClipDuration() time.Duration {
	return s.duration
}

// CurrentClipProgress returns how far through the current clip playback is,
// in [0, 1]. It is 0 when no duration is known.
func (s *Scheduler) CurrentClipProgress() float64 {
	if s.duration <= 0 {
		return 0
	}
	progress := float64(s.timer.Elapsed()) / float64(s.duration)
	return min(max(progress, 0), 1)
}

// State returns the playback state.
func (s *Scheduler) State() StateType {
	return s.sm.Current()
}

// Pending returns the number of queued clips.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// Queued returns a copy of the queued clips in play order.
func (s *Scheduler) Queued() []Clip {
	return s.queue.Items()
}

// Padding returns the silence appended to each clip.
func (s *Scheduler) Padding() time.Duration {
	return s.padding
}

// OnEnter registers fn to run when the scheduler enters state.
func (s *Scheduler) OnEnter(state StateType, fn func()) {
	s.sm.OnEnter(state, fn)
}

// OnExit registers fn to run when the scheduler leaves state.
func (s *Scheduler) OnExit(state StateType, fn func()) {
	s.sm.OnExit(state, fn)
}

// Snapshot is a point-in-time view of a scheduler.
type Snapshot struct {
	State    StateType
	Clip     Clip
	HasClip  bool
	Duration time.Duration
	Elapsed  time.Duration
	Wait     time.Duration
	Progress float64
	Pending  int
	Played   int
	Queue    queue.Stats
}

// Snapshot returns the scheduler's current state.
func (s *Scheduler) Snapshot() Snapshot {
	clip, ok := s.CurrentClip()
	return Snapshot{
		State:    s.sm.Current(),
		Clip:     clip,
		HasClip:  ok,
		Duration: s.duration,
		Elapsed:  s.timer.Elapsed(),
		Wait:     s.timer.Wait(),
		Progress: s.CurrentClipProgress(),
		Pending:  s.queue.Len(),
		Played:   s.played,
		Queue:    s.queue.Stats(),
	}
}
