package model

// SimulationState represents the state of a simulation run.
type SimulationState string

const (
	// SimulationStateReady the simulation is built and not started
	SimulationStateReady SimulationState = "ready"
	// SimulationStateRunning actors are running
	SimulationStateRunning SimulationState = "running"
	// SimulationStateFinished every actor ran to its deadline
	SimulationStateFinished SimulationState = "finished"
	// SimulationStateFailed an actor failed
	SimulationStateFailed SimulationState = "failed"
)

func (s SimulationState) String() string {
	return string(s)
}

type TransitionType int

const (
	TransitionTypeEnter TransitionType = iota
	TransitionTypeLeave
)

func (t TransitionType) String() string {
	switch t {
	case TransitionTypeEnter:
		return "enter"
	case TransitionTypeLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// StateTransition represents a transition from one state to another
type StateTransition struct {
	// RunID identifies the simulation run
	RunID string
	// State is the destination state of the transition
	State SimulationState
	// SrcState is the source state of the transition
	SrcState SimulationState
	// Type is the type of the transition
	Type TransitionType
}
