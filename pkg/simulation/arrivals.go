package simulation

import (
	"time"

	"github.com/danl5/govote/pkg/model"
	"github.com/danl5/govote/pkg/station"
)

// runArrivals creates one voter per tick until the duration elapses.
// The deadline is checked against the wall clock on every iteration, sleep
// drift shortens the run by a tick at most and is not corrected.
// There is no backpressure, queues grow without bound when the station
// servers fall behind.
func (s *Simulation) runArrivals() error {
	logger := s.logger.With("actor", "arrivals")
	deadline := time.Now().Add(s.cfg.Duration)

	for time.Now().Before(deadline) {
		v := model.Voter{
			Ticket: s.tickets.Load() + 1,
			Class:  classify(s.rnd.Float64(), s.cfg.Probability),
		}
		st := station.LeastCrowded(s.stations)
		st.Enqueue(v)
		s.tickets.Store(v.Ticket)

		logger.Debug("arrivals, voter queued", "ticket", v.Ticket, "class", v.Class.String(), "station", st.ID())
		time.Sleep(s.cfg.Tick)
	}

	logger.Info("arrivals, finished", "tickets", s.tickets.Load())
	return nil
}

// classify maps a uniform draw in [0,1) to a voter class: draws up to and
// including probability are normal voters.
func classify(draw, probability float64) model.VoterClass {
	if draw <= probability {
		return model.VoterNormal
	}
	return model.VoterSpecial
}
