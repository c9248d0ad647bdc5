package simulation

import (
	"fmt"
	"time"

	"github.com/danl5/govote/pkg/model"
	"github.com/danl5/govote/pkg/station"
)

// runServer serves the voters of one station until the duration elapses,
// measured from the moment the server starts. The station guard is never held
// across a draw or a sleep.
func (s *Simulation) runServer(st *station.Station) error {
	logger := s.logger.With("actor", st.String())
	start := time.Now()
	deadline := start.Add(s.cfg.Duration)
	rest := time.Duration(s.cfg.ServiceTicks) * s.cfg.Tick

	for time.Now().Before(deadline) {
		if !awaitVoter(st, deadline) {
			break
		}

		v, reason := popNext(st)
		logger.Debug("server, voter called", "ticket", v.Ticket, "class", v.Class.String(), "reason", reason.String())

		candidate, err := s.resolver.Resolve()
		if err != nil {
			logger.Error("server, failed to resolve vote", "ticket", v.Ticket, "error", err.Error())
			return fmt.Errorf("%s, %w", st, err)
		}
		st.Record(candidate)

		if elapsed := time.Since(start); elapsed >= s.cfg.ReportOffset {
			s.report(st, elapsed)
		}

		time.Sleep(rest)
	}

	logger.Info("server, finished")
	return nil
}

// awaitVoter blocks until the station has a waiting voter, it returns false
// when the deadline passes first.
func awaitVoter(st *station.Station, deadline time.Time) bool {
	for st.Occupancy() == 0 {
		wait := time.Until(deadline)
		if wait <= 0 {
			return false
		}

		timer := time.NewTimer(wait)
		select {
		case <-st.Ready():
			timer.Stop()
		case <-timer.C:
			return false
		}
	}
	return true
}

func (s *Simulation) report(st *station.Station, elapsed time.Duration) {
	tally, served := st.Snapshot()
	snapshot := model.TallySnapshot{
		RunID:     s.runID,
		StationID: st.ID(),
		Tally:     tally,
		Served:    served,
		Elapsed:   elapsed,
		At:        time.Now(),
	}

	for _, r := range s.reporters {
		if err := r.Report(snapshot); err != nil {
			s.logger.Warn("failed to report tally", "station", st.ID(), "error", err.Error())
		}
	}
}
