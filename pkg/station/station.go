package station

import (
	"fmt"
	"sync"

	"github.com/gammazero/deque"

	"github.com/danl5/govote/pkg/model"
)

// NewStation creates a polling station with empty queues and a zero tally
// for each candidate.
func NewStation(id int, candidates []string) *Station {
	tally := make(map[string]int, len(candidates))
	for _, c := range candidates {
		tally[c] = 0
	}

	return &Station{
		id:    id,
		ready: make(chan struct{}, 1),
		booth: Booth{
			normal:  deque.New[uint64](),
			special: deque.New[uint64](),
			tally:   tally,
		},
	}
}

// NewStations creates stations with ids 1..n.
func NewStations(n int, candidates []string) []*Station {
	stations := make([]*Station, 0, n)
	for i := 1; i <= n; i++ {
		stations = append(stations, NewStation(i, candidates))
	}
	return stations
}

// Station is a polling station. Its queues and tally live in a Booth that is
// only reachable while holding the station guard.
type Station struct {
	id int

	// mu guards booth
	mu    sync.Mutex
	booth Booth

	// ready is signalled after every enqueue, it wakes the station server
	// waiting on empty queues
	ready chan struct{}
}

// ID returns the station id.
func (s *Station) ID() int {
	return s.id
}

// Do runs fn while holding the station guard. The guard is released when fn
// returns or panics.
func (s *Station) Do(fn func(b *Booth)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.booth)
}

// Enqueue puts the voter at the back of the queue of its class.
func (s *Station) Enqueue(v model.Voter) {
	s.Do(func(b *Booth) {
		switch v.Class {
		case model.VoterSpecial:
			b.EnqueueSpecial(v.Ticket)
		default:
			b.EnqueueNormal(v.Ticket)
		}
	})

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Ready returns the channel signalled after an enqueue.
// A signal may be stale, the receiver has to check the queues again.
func (s *Station) Ready() <-chan struct{} {
	return s.ready
}

// Occupancy returns the number of voters waiting in both queues.
func (s *Station) Occupancy() (n int) {
	s.Do(func(b *Booth) {
		n = b.NormalCount() + b.SpecialCount()
	})
	return
}

// Record adds one vote for candidate to the tally.
func (s *Station) Record(candidate string) {
	s.Do(func(b *Booth) {
		b.RecordVote(candidate)
	})
}

// Snapshot returns a copy of the tally and the number of served voters.
func (s *Station) Snapshot() (tally map[string]int, served int) {
	s.Do(func(b *Booth) {
		tally = b.Tally()
		served = len(b.served)
	})
	return
}

// Result returns the final state of the station.
func (s *Station) Result() (r model.StationResult) {
	s.Do(func(b *Booth) {
		r = model.StationResult{
			ID:            s.id,
			Tally:         b.Tally(),
			Served:        append([]uint64(nil), b.served...),
			ServedNormal:  b.servedNormal,
			ServedSpecial: b.servedSpecial,
			Unserved:      b.NormalCount() + b.SpecialCount(),
		}
	})
	return
}

func (s *Station) String() string {
	return fmt.Sprintf("station-%d", s.id)
}

// Booth holds the queues and the tally of a station.
// Its methods must only be called from within Station.Do.
type Booth struct {
	// normal and special are FIFO queues of ticket numbers
	normal  *deque.Deque[uint64]
	special *deque.Deque[uint64]
	// tally maps candidate name to vote count
	tally map[string]int

	// served holds popped tickets in serving order
	served        []uint64
	servedNormal  int
	servedSpecial int
}

func (b *Booth) EnqueueNormal(ticket uint64) {
	b.normal.PushBack(ticket)
}

func (b *Booth) EnqueueSpecial(ticket uint64) {
	b.special.PushBack(ticket)
}

// PopNormal removes the front of the normal queue.
// The caller checks NormalCount first, popping an empty queue panics.
func (b *Booth) PopNormal() uint64 {
	if b.normal.Len() == 0 {
		panic(fmt.Errorf("normal queue: %w", model.ErrorEmptyQueue))
	}
	t := b.normal.PopFront()
	b.served = append(b.served, t)
	b.servedNormal++
	return t
}

// PopSpecial removes the front of the special queue.
// The caller checks SpecialCount first, popping an empty queue panics.
func (b *Booth) PopSpecial() uint64 {
	if b.special.Len() == 0 {
		panic(fmt.Errorf("special queue: %w", model.ErrorEmptyQueue))
	}
	t := b.special.PopFront()
	b.served = append(b.served, t)
	b.servedSpecial++
	return t
}

// Pop removes the front of the queue of class.
func (b *Booth) Pop(class model.VoterClass) uint64 {
	if class == model.VoterSpecial {
		return b.PopSpecial()
	}
	return b.PopNormal()
}

// FrontNormal returns the front of the normal queue, false when it is empty.
func (b *Booth) FrontNormal() (uint64, bool) {
	if b.normal.Len() == 0 {
		return 0, false
	}
	return b.normal.Front(), true
}

// FrontSpecial returns the front of the special queue, false when it is empty.
func (b *Booth) FrontSpecial() (uint64, bool) {
	if b.special.Len() == 0 {
		return 0, false
	}
	return b.special.Front(), true
}

func (b *Booth) NormalCount() int {
	return b.normal.Len()
}

func (b *Booth) SpecialCount() int {
	return b.special.Len()
}

func (b *Booth) RecordVote(candidate string) {
	b.tally[candidate]++
}

// Tally returns a copy of the vote counts.
func (b *Booth) Tally() map[string]int {
	tally := make(map[string]int, len(b.tally))
	for c, n := range b.tally {
		tally[c] = n
	}
	return tally
}
