package model

import (
	"errors"
	"time"
)

var (
	// ErrorNoStations is returned when a simulation is built without polling stations
	ErrorNoStations = errors.New("no polling stations")
	// ErrorEmptyQueue is the panic value of a pop on an empty queue
	ErrorEmptyQueue = errors.New("pop on empty queue")
)

// TallySnapshot is the vote count of one station at the moment it was reported.
type TallySnapshot struct {
	// RunID identifies the simulation run
	RunID string `json:"run_id" codec:"run_id"`
	// StationID is the id of the reporting station, starting from 1
	StationID int `json:"station_id" codec:"station_id"`
	// Tally maps candidate name to vote count, every candidate is present
	Tally map[string]int `json:"tally" codec:"tally"`
	// Served is the number of voters served by the station so far
	Served int `json:"served" codec:"served"`
	// Elapsed is the time since the station server started
	Elapsed time.Duration `json:"elapsed" codec:"elapsed"`
	// At is the wall clock time of the snapshot
	At time.Time `json:"at" codec:"-"`
}

// Total returns the sum of the votes in the snapshot.
func (t TallySnapshot) Total() (total int) {
	for _, n := range t.Tally {
		total += n
	}
	return
}

// Reporter consumes the tally snapshots produced by station servers.
// Report is called concurrently by every station server.
type Reporter interface {
	Report(snapshot TallySnapshot) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(snapshot TallySnapshot) error

func (f ReporterFunc) Report(snapshot TallySnapshot) error {
	return f(snapshot)
}
