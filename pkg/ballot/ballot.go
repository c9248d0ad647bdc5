package ballot

import (
	"errors"
	"fmt"
	"math"
)

const (
	CandidateA = "A"
	CandidateB = "B"
	CandidateC = "C"
)

// Range assigns the draws in [Lower, Upper) to Candidate.
// The last range of a ballot also owns its Upper bound.
type Range struct {
	Candidate string  `json:"candidate"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
}

// Width returns the share of draws mapped to the range.
func (r Range) Width() float64 {
	return r.Upper - r.Lower
}

// Ballot is an ordered list of contiguous ranges covering [0,1].
type Ballot []Range

// Default returns the fixed three candidate ballot of the simulation.
func Default() Ballot {
	return Ballot{
		{Candidate: CandidateA, Lower: 0, Upper: 0.40},
		{Candidate: CandidateB, Lower: 0.40, Upper: 0.55},
		{Candidate: CandidateC, Lower: 0.55, Upper: 1},
	}
}

// Validate checks the ranges are contiguous, non-empty and cover [0,1].
func (b Ballot) Validate() error {
	if len(b) == 0 {
		return errors.New("ballot has no candidates")
	}
	if b[0].Lower != 0 {
		return fmt.Errorf("first range starts at %v, not 0", b[0].Lower)
	}
	seen := make(map[string]bool, len(b))
	for i, r := range b {
		if r.Candidate == "" {
			return fmt.Errorf("range %d has no candidate", i)
		}
		if seen[r.Candidate] {
			return fmt.Errorf("candidate %s appears twice", r.Candidate)
		}
		seen[r.Candidate] = true
		if r.Upper <= r.Lower {
			return fmt.Errorf("range of %s is empty", r.Candidate)
		}
		if i > 0 && r.Lower != b[i-1].Upper {
			return fmt.Errorf("range of %s does not start where %s ends", r.Candidate, b[i-1].Candidate)
		}
	}
	if last := b[len(b)-1]; last.Upper != 1 {
		return fmt.Errorf("last range ends at %v, not 1", last.Upper)
	}
	return nil
}

// Candidates returns the candidate names in ballot order.
func (b Ballot) Candidates() []string {
	names := make([]string, 0, len(b))
	for _, r := range b {
		names = append(names, r.Candidate)
	}
	return names
}

// Candidate maps a draw in [0,1] to exactly one candidate.
// Draws below 0 go to the first candidate, draws at or above 1 to the last.
func (b Ballot) Candidate(draw float64) string {
	if math.IsNaN(draw) {
		draw = 0
	}
	for _, r := range b[:len(b)-1] {
		if draw < r.Upper {
			return r.Candidate
		}
	}
	return b[len(b)-1].Candidate
}
