package model

// StationResult is the final state of one polling station.
type StationResult struct {
	// ID of the station
	ID int `json:"id"`
	// Tally is the final vote count
	Tally map[string]int `json:"tally"`
	// Served holds the tickets in the order they were served
	Served []uint64 `json:"served"`
	// ServedNormal is the number of voters popped from the normal queue
	ServedNormal int `json:"served_normal"`
	// ServedSpecial is the number of voters popped from the special queue
	ServedSpecial int `json:"served_special"`
	// Unserved is the number of voters left in the queues at shutdown
	Unserved int `json:"unserved"`
}

// Result summarizes a finished simulation run.
type Result struct {
	// RunID identifies the simulation run
	RunID string `json:"run_id"`
	// Tickets is the number of voters created by the arrival generator
	Tickets uint64 `json:"tickets"`
	// Stations holds the per station results ordered by id
	Stations []StationResult `json:"stations"`
}

// Unserved returns the number of voters left in every queue at shutdown.
func (r *Result) Unserved() (n int) {
	for _, s := range r.Stations {
		n += s.Unserved
	}
	return
}

// Served returns the number of voters served by every station.
func (r *Result) Served() (n int) {
	for _, s := range r.Stations {
		n += len(s.Served)
	}
	return
}
