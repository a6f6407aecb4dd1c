// Package action holds the time-based value generators that drive a single channel.
package action

// ValueReader gives read access to a channel's current high-resolution value.
type ValueReader interface {
	HiResValue() int
}

// Action produces the value a channel should output at a given time.
//
// An action is evaluated repeatedly by its channel with a non-decreasing timestamp in milliseconds. Actions mutate
// themselves on evaluation and are not safe for concurrent use; the owning channel serialises access.
type Action interface {
	// NewValue returns the high-resolution value to output at nowMs.
	NewValue(ch ValueReader, nowMs int64) int

	// Completed reports whether the action has finished and can be retired.
	Completed() bool

	String() string
}

// State is the lifecycle of an action.
type State int

const (
	StateNotStarted State = iota
	StateFading
	StateHolding
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateFading:
		return "fading"
	case StateHolding:
		return "holding"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Direction is the way a fade moves the value.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	}
	return "none"
}
