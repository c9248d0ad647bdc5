package model

// SimulationEvent represents the related events in the lifecycle of a simulation,
// used to drive the simulation Finite State Machine (FSM)
type SimulationEvent string

const (
	// EventStart represents the actors being started
	EventStart SimulationEvent = "start"
	// EventFinish represents every actor reaching its deadline
	EventFinish SimulationEvent = "finish"
	// EventFail represents an actor returning an error
	EventFail SimulationEvent = "fail"
)

func (s SimulationEvent) String() string {
	return string(s)
}
