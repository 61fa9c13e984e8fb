package popup

import "fmt"

// State is the controller's startup state.
type State int

const (
	StateUnverified State = iota
	StateVerifying
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnverified:
		return "unverified"
	case StateVerifying:
		return "verifying"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Flow identifies one of the user-triggered sub-flows.
type Flow int

const (
	FlowTickets Flow = iota
	FlowActivity
	numFlows
)

func (f Flow) String() string {
	switch f {
	case FlowTickets:
		return "tickets"
	case FlowActivity:
		return "activity"
	default:
		return fmt.Sprintf("flow(%d)", int(f))
	}
}

// FlowState tracks the latest request of a flow. A failure sends the flow
// back to Idle once its message is shown.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowInFlight
	FlowRendered
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowInFlight:
		return "in-flight"
	case FlowRendered:
		return "rendered"
	default:
		return fmt.Sprintf("flowstate(%d)", int(s))
	}
}
