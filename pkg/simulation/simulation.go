package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"golang.org/x/sync/errgroup"

	"github.com/danl5/govote/pkg/ballot"
	"github.com/danl5/govote/pkg/config"
	"github.com/danl5/govote/pkg/model"
	"github.com/danl5/govote/pkg/station"
)

// NewSimulation builds a simulation over the given stations.
// The stations are owned by the simulation for the duration of the run, they
// are shared by the arrival generator and their station servers.
func NewSimulation(
	cfg *config.Config,
	stations []*station.Station,
	resolver *ballot.Resolver,
	logger *slog.Logger,
	reporters ...model.Reporter) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("new simulation, config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new simulation, %w", err)
	}
	if len(stations) == 0 {
		return nil, fmt.Errorf("new simulation, %w", model.ErrorNoStations)
	}
	if len(stations) != cfg.Stations {
		return nil, fmt.Errorf("new simulation, %d stations configured, %d given", cfg.Stations, len(stations))
	}
	if resolver == nil {
		return nil, fmt.Errorf("new simulation, resolver is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("new simulation, logger is nil")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runID := uuid.NewString()
	s := &Simulation{
		cfg:       *cfg,
		runID:     runID,
		logger:    logger.With("component", "simulation", "run", runID),
		stations:  stations,
		resolver:  resolver,
		reporters: reporters,
		rnd:       rand.New(rand.NewSource(seed)),
		// a run makes two transitions, each with a leave and an enter message
		stateChan: make(chan model.StateTransition, 4),
	}
	// initialize the simulation FSM
	s.initializeFsm()
	return s, nil
}

// Simulation runs one arrival generator and one station server per station.
type Simulation struct {
	// cfg is the configuration of the run
	cfg config.Config
	// runID identifies the run in logs and snapshots
	runID string
	// logger
	logger *slog.Logger

	// fsm is the lifecycle state machine of the run
	fsm *fsm.FSM
	// stateChan is used to transmit lifecycle transitions
	stateChan chan model.StateTransition

	// stations in ascending id order
	stations []*station.Station
	// resolver draws the votes
	resolver *ballot.Resolver
	// reporters consume the tally snapshots
	reporters []model.Reporter

	// rnd is only used by the arrival generator
	rnd *rand.Rand
	// tickets is the last ticket number issued
	tickets atomic.Uint64
}

// Run starts the actors and blocks until each one reaches its deadline.
// A simulation runs once.
func (s *Simulation) Run() (*model.Result, error) {
	err := s.fsm.Event(context.Background(), model.EventStart.String())
	if err != nil {
		return nil, fmt.Errorf("run simulation, %w", err)
	}
	s.logger.Info("simulation started",
		"duration", s.cfg.Duration,
		"ticks", s.cfg.Ticks(),
		"probability", s.cfg.Probability,
		"stations", len(s.stations),
		"report offset", s.cfg.ReportOffset)

	g := errgroup.Group{}
	g.Go(s.runArrivals)
	for _, st := range s.stations {
		st := st
		g.Go(func() error {
			return s.runServer(st)
		})
	}
	runErr := g.Wait()

	ev := model.EventFinish
	if runErr != nil {
		s.logger.Error("simulation failed", "error", runErr.Error())
		ev = model.EventFail
	}
	if err := s.fsm.Event(context.Background(), ev.String()); err != nil {
		s.logger.Error("error state transition", "current state", s.fsm.Current(), "event", ev.String())
	}
	close(s.stateChan)

	result := s.result()
	s.logger.Info("simulation finished",
		"tickets", result.Tickets,
		"served", result.Served(),
		"unserved", result.Unserved())
	return result, runErr
}

// RunID returns the id of the run.
func (s *Simulation) RunID() string {
	return s.runID
}

// Tickets returns the number of voters created so far.
func (s *Simulation) Tickets() uint64 {
	return s.tickets.Load()
}

// Transitions returns the lifecycle transitions of the run. The channel is
// closed when Run returns.
func (s *Simulation) Transitions() <-chan model.StateTransition {
	return s.stateChan
}

// CurrentState returns the lifecycle state of the run.
func (s *Simulation) CurrentState() model.SimulationState {
	return model.SimulationState(s.fsm.Current())
}

// Visualize returns a visualization of the lifecycle state machine in Graphviz format.
func (s *Simulation) Visualize() string {
	return fsm.Visualize(s.fsm)
}

// result collects the final station states. Voters still waiting are
// discarded, they are only counted.
func (s *Simulation) result() *model.Result {
	r := &model.Result{
		RunID:   s.runID,
		Tickets: s.tickets.Load(),
	}
	for _, st := range s.stations {
		sr := st.Result()
		if sr.Unserved > 0 {
			s.logger.Info("station closed with waiting voters", "station", sr.ID, "unserved", sr.Unserved)
		}
		r.Stations = append(r.Stations, sr)
	}
	return r
}

func (s *Simulation) enterState(_ context.Context, ev *fsm.Event) {
	s.logger.Debug("enter state", "state", ev.Dst, "src", ev.Src)
	s.sendStateTransition(model.SimulationState(ev.Dst), model.SimulationState(ev.Src), model.TransitionTypeEnter)
}

func (s *Simulation) leaveState(_ context.Context, ev *fsm.Event) {
	s.logger.Debug("leave state", "state", ev.Src, "dst", ev.Dst)
	s.sendStateTransition(model.SimulationState(ev.Src), model.SimulationState(ev.Dst), model.TransitionTypeLeave)
}

func (s *Simulation) sendStateTransition(state, srcState model.SimulationState, transType model.TransitionType) {
	select {
	case s.stateChan <- model.StateTransition{
		RunID:    s.runID,
		State:    state,
		SrcState: srcState,
		Type:     transType,
	}:
	default:
		s.logger.Warn("state transition dropped", "state", state, "type", transType.String())
	}
}

// initializeFsm initializes the lifecycle state machine of the run
func (s *Simulation) initializeFsm() {
	s.fsm = fsm.NewFSM(
		model.SimulationStateReady.String(),
		fsm.Events{
			{
				Name: model.EventStart.String(),
				Src:  []string{model.SimulationStateReady.String()},
				Dst:  model.SimulationStateRunning.String(),
			},
			{
				Name: model.EventFinish.String(),
				Src:  []string{model.SimulationStateRunning.String()},
				Dst:  model.SimulationStateFinished.String(),
			},
			{
				Name: model.EventFail.String(),
				Src:  []string{model.SimulationStateRunning.String()},
				Dst:  model.SimulationStateFailed.String(),
			},
		},
		fsm.Callbacks{
			"enter_state": s.enterState,
			"leave_state": s.leaveState,
		},
	)
}
