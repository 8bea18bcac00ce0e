package manager

import "time"

// State represents the lifecycle state of a model slot.
type State string

const (
	StateNotLoaded State = "not_loaded"
	StateLoading   State = "loading"
	StateLoaded    State = "loaded"
	StateFailed    State = "error"
)

// legalTransitions is the complete transition table for slot states.
var legalTransitions = map[State][]State{
	StateNotLoaded: {StateLoading},
	StateFailed:    {StateLoading},
	StateLoading:   {StateLoaded, StateFailed},
}

func canTransition(from, to State) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SlotSnapshot is an immutable copy of a slot's observable state.
type SlotSnapshot struct {
	Name            string
	Path            string
	State           State
	LastError       string
	HasError        bool
	Device          string
	Attempts        uint64
	AttemptID       string
	LoadStartedAt   time.Time
	LoadCompletedAt time.Time
}

// OutcomeKind enumerates the results of EnsureReady.
type OutcomeKind int

const (
	OutcomeReady OutcomeKind = iota
	OutcomeBusy
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeReady:
		return "ready"
	case OutcomeBusy:
		return "busy"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of EnsureReady. Message is set only for OutcomeFailed.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

// Err converts a non-ready outcome into the matching typed error.
func (o Outcome) Err(name string) error {
	switch o.Kind {
	case OutcomeBusy:
		return modelBusyError{name: name}
	case OutcomeFailed:
		return modelLoadFailedError{name: name, msg: o.Message}
	default:
		return nil
	}
}
