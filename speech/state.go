package speech

// StateType represents the playback state of a scheduler.
type StateType int

const (
	// StateIdle indicates no clip has been played yet.
	StateIdle StateType = iota
	// StatePlaying indicates a clip is current and its timer is running.
	StatePlaying
	// StateFinished indicates the current clip's timer is done and the
	// scheduler is waiting for the next Update to start a queued clip.
	StateFinished
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// StateMachine manages scheduler state transitions.
type StateMachine struct {
	current     StateType
	transitions map[StateType][]StateType
	onEnter     map[StateType][]func()
	onExit      map[StateType][]func()
}

// NewStateMachine creates a state machine in StateIdle.
// Playing to Playing is allowed so a preempted clip can hand over directly.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StateIdle,
		transitions: map[StateType][]StateType{
			StateIdle:     {StatePlaying},
			StatePlaying:  {StatePlaying, StateFinished},
			StateFinished: {StatePlaying},
		},
		onEnter: make(map[StateType][]func()),
		onExit:  make(map[StateType][]func()),
	}
}

// Transition attempts to move to the specified state.
func (sm *StateMachine) Transition(to StateType) bool {
	if !sm.CanTransition(to) {
		return false
	}

	for _, fn := range sm.onExit[sm.current] {
		fn()
	}

	sm.current = to

	for _, fn := range sm.onEnter[to] {
		fn()
	}

	return true
}

// CanTransition reports whether the current state may move to the given state.
func (sm *StateMachine) CanTransition(to StateType) bool {
	for _, state := range sm.transitions[sm.current] {
		if state == to {
			return true
		}
	}
	return false
}

// Current returns the current state.
func (sm *StateMachine) Current() StateType {
	return sm.current
}

// OnEnter registers a callback for entering a state.
func (sm *StateMachine) OnEnter(state StateType, fn func()) {
	if fn != nil {
		sm.onEnter[state] = append(sm.onEnter[state], fn)
	}
}

// OnExit registers a callback for exiting a state.
func (sm *StateMachine) OnExit(state StateType, fn func()) {
	if fn != nil {
		sm.onExit[state] = append(sm.onExit[state], fn)
	}
}
