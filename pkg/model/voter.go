package model

// VoterClass represents the queue a voter waits in at a polling station.
type VoterClass string

const (
	// VoterNormal normal voter
	VoterNormal VoterClass = "normal"
	// VoterSpecial special voter, served with priority
	VoterSpecial VoterClass = "special"
)

func (v VoterClass) String() string {
	return string(v)
}

// Voter represents a voter instance
type Voter struct {
	// Ticket is the global arrival number of the voter, starting from 1
	Ticket uint64
	// Class is the queue the voter was assigned to on arrival
	Class VoterClass
}
