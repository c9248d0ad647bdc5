package station

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danl5/govote/pkg/model"
)

var candidates = []string{"A", "B", "C"}

func TestStation_EnqueueAndPop(t *testing.T) {
	s := NewStation(1, candidates)
	s.Enqueue(model.Voter{Ticket: 1, Class: model.VoterNormal})
	s.Enqueue(model.Voter{Ticket: 2, Class: model.VoterSpecial})
	s.Enqueue(model.Voter{Ticket: 3, Class: model.VoterNormal})

	assert.Equal(t, 3, s.Occupancy())

	s.Do(func(b *Booth) {
		assert.Equal(t, 2, b.NormalCount())
		assert.Equal(t, 1, b.SpecialCount())

		front, ok := b.FrontNormal()
		assert.True(t, ok)
		assert.Equal(t, uint64(1), front)

		assert.Equal(t, uint64(1), b.PopNormal())
		assert.Equal(t, uint64(3), b.Pop(model.VoterNormal))
		assert.Equal(t, uint64(2), b.Pop(model.VoterSpecial))

		_, ok = b.FrontSpecial()
		assert.False(t, ok)
	})

	r := s.Result()
	assert.Equal(t, []uint64{1, 3, 2}, r.Served)
	assert.Equal(t, 2, r.ServedNormal)
	assert.Equal(t, 1, r.ServedSpecial)
	assert.Equal(t, 0, r.Unserved)
}

func TestStation_PopEmptyPanics(t *testing.T) {
	s := NewStation(1, candidates)

	assert.Panics(t, func() {
		s.Do(func(b *Booth) { b.PopNormal() })
	})
	assert.Panics(t, func() {
		s.Do(func(b *Booth) { b.PopSpecial() })
	})

	// the guard is released after the panic
	s.Enqueue(model.Voter{Ticket: 1, Class: model.VoterNormal})
	assert.Equal(t, 1, s.Occupancy())
}

func TestStation_Tally(t *testing.T) {
	s := NewStation(2, candidates)
	tally, served := s.Snapshot()
	assert.Equal(t, map[string]int{"A": 0, "B": 0, "C": 0}, tally)
	assert.Equal(t, 0, served)

	s.Record("A")
	s.Record("C")
	s.Record("C")

	tally, _ = s.Snapshot()
	assert.Equal(t, map[string]int{"A": 1, "B": 0, "C": 2}, tally)

	// the snapshot is a copy
	tally["A"] = 100
	again, _ := s.Snapshot()
	assert.Equal(t, 1, again["A"])
}

func TestStation_ReadySignal(t *testing.T) {
	s := NewStation(1, candidates)

	select {
	case <-s.Ready():
		t.Fatal("unexpected ready signal")
	default:
	}

	// signals coalesce, the enqueue never blocks
	s.Enqueue(model.Voter{Ticket: 1, Class: model.VoterNormal})
	s.Enqueue(model.Voter{Ticket: 2, Class: model.VoterNormal})

	select {
	case <-s.Ready():
	default:
		t.Fatal("expected ready signal")
	}
}

func TestStation_ConcurrentProducerConsumer(t *testing.T) {
	const voters = 1000
	s := NewStation(1, candidates)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= voters; i++ {
			class := model.VoterNormal
			if i%3 == 0 {
				class = model.VoterSpecial
			}
			s.Enqueue(model.Voter{Ticket: uint64(i), Class: class})
		}
	}()

	popped := 0
	go func() {
		defer wg.Done()
		for popped < voters {
			s.Do(func(b *Booth) {
				switch {
				case b.SpecialCount() > 0:
					b.PopSpecial()
				case b.NormalCount() > 0:
					b.PopNormal()
				default:
					return
				}
				popped++
			})
		}
	}()
	wg.Wait()

	r := s.Result()
	require.Len(t, r.Served, voters)
	assert.Equal(t, voters/3, r.ServedSpecial)
	assert.Equal(t, 0, r.Unserved)
}

func TestNewStations(t *testing.T) {
	stations := NewStations(3, candidates)
	require.Len(t, stations, 3)
	for i, s := range stations {
		assert.Equal(t, i+1, s.ID())
		assert.Equal(t, "station-"+string(rune('1'+i)), s.String())
	}
}
