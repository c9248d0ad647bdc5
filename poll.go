package govote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danl5/govote/pkg/ballot"
	"github.com/danl5/govote/pkg/config"
	"github.com/danl5/govote/pkg/model"
	"github.com/danl5/govote/pkg/simulation"
	"github.com/danl5/govote/pkg/station"
)

const (
	// callback timeout, in seconds
	defaultCallBackTimeout = 5
)

// NewPoll creates a new Poll instance
func NewPoll(cfg *PollConfig, logger *slog.Logger) (*Poll, error) {
	if cfg == nil {
		return nil, fmt.Errorf("new poll, config is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("new poll, logger is nil")
	}

	simCfg := cfg.Config.WithDefaults()
	if err := simCfg.Validate(); err != nil {
		return nil, fmt.Errorf("new poll, %w", err)
	}

	b := cfg.Ballot
	if b == nil {
		b = ballot.Default()
	}
	resolver, err := ballot.NewResolver(b, simCfg.Seed, simCfg.Stations, logger)
	if err != nil {
		return nil, fmt.Errorf("new poll, %w", err)
	}

	// new simulation instance
	s, err := simulation.NewSimulation(
		&simCfg,
		station.NewStations(simCfg.Stations, resolver.Ballot().Candidates()),
		resolver,
		logger,
		cfg.Reporters...)
	if err != nil {
		resolver.Release()
		return nil, err
	}

	callBackTimeout := cfg.CallBackTimeout
	if callBackTimeout == 0 {
		callBackTimeout = defaultCallBackTimeout
	}
	callBacks := cfg.CallBacks
	if callBacks == nil {
		callBacks = &StateCallBacks{}
	}

	return &Poll{
		cfg:             cfg,
		logger:          logger,
		callBackTimeout: callBackTimeout,
		callBacks:       callBacks,
		simulation:      s,
		resolver:        resolver,
		errChan:         make(chan error, 10),
	}, nil
}

// Poll contains information about a simulated election day
type Poll struct {
	// callBacks stores the callbacks to be triggered when the state changes
	callBacks *StateCallBacks
	// callBackTimeout is the timeout for the callbacks, in seconds
	callBackTimeout int
	// simulation runs the arrival generator and the station servers
	simulation *simulation.Simulation
	// resolver draws the votes, released when the run ends
	resolver *ballot.Resolver
	// errChan is a channel for errors
	errChan chan error

	// cfg is the configuration for the poll
	cfg *PollConfig
	// logger is used for logging
	logger *slog.Logger
}

// Run runs the simulation until every station closes and returns the final
// state of the stations. State callbacks run in a separate goroutine and have
// all returned when Run returns.
func (p *Poll) Run() (*model.Result, error) {
	done := make(chan struct{})
	// handle state transitions in a separate goroutine
	go func() {
		defer close(done)
		p.handleStateTransition(p.simulation.Transitions())
	}()

	result, err := p.simulation.Run()
	if err != nil {
		p.logger.Error("poll, failed to run simulation", "error", err.Error())
	}
	<-done
	p.resolver.Release()

	return result, err
}

// Errors returns a receive-only channel of the callback errors
func (p *Poll) Errors() <-chan error {
	return p.errChan
}

// CurrentState return current simulation state
func (p *Poll) CurrentState() string {
	return p.simulation.CurrentState().String()
}

// RunID returns the id tagging the logs and snapshots of the run
func (p *Poll) RunID() string {
	return p.simulation.RunID()
}

// Visualize returns the lifecycle state machine in Graphviz format
func (p *Poll) Visualize() string {
	return p.simulation.Visualize()
}

func (p *Poll) sendError(err error) {
	select {
	case p.errChan <- err:
	default:
	}
}

func (p *Poll) handleStateTransition(stateChan <-chan model.StateTransition) {
	for st := range stateChan {
		p.logger.Debug("poll, state transition", "type", st.Type.String(), "state", st.State, "src", st.SrcState)
		var err error
		switch st.Type {
		case model.TransitionTypeLeave:
			switch st.State {
			case model.SimulationStateRunning:
				err = p.execStateHandler(p.callBacks.LeaveRunning, st)
			}
		case model.TransitionTypeEnter:
			switch st.State {
			case model.SimulationStateRunning:
				err = p.execStateHandler(p.callBacks.EnterRunning, st)
			case model.SimulationStateFinished:
				err = p.execStateHandler(p.callBacks.EnterFinished, st)
			case model.SimulationStateFailed:
				err = p.execStateHandler(p.callBacks.EnterFailed, st)
			}
		default:
		}
		if err != nil {
			p.sendError(err)
		}
	}
	p.logger.Debug("poll, state transition chan is closed")
}

func (p *Poll) execStateHandler(sh StateHandler, st model.StateTransition) error {
	if sh == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(p.callBackTimeout)*time.Second)
	defer cancel()

	return sh(ctx, st)
}

// PollConfig is a struct that represents the configuration for a poll.
type PollConfig struct {
	// Simulation settings, zero tick and service ticks take their defaults
	config.Config
	// Ballot maps draws to candidates, the default three candidate ballot when nil
	Ballot ballot.Ballot
	// Reporters receive the tally snapshots of the stations
	Reporters []model.Reporter
	// State callbacks
	CallBacks *StateCallBacks
	// Timeout for callbacks, in seconds
	CallBackTimeout int
}

type StateHandler func(ctx context.Context, st model.StateTransition) error

// StateCallBacks is a struct to hold state callbacks
type StateCallBacks struct {
	// EnterRunning is called when the polls open
	EnterRunning StateHandler
	// LeaveRunning is called when the polls close, before the final state is entered
	LeaveRunning StateHandler
	// EnterFinished is called when every actor reached its deadline
	EnterFinished StateHandler
	// EnterFailed is called when an actor failed
	EnterFailed StateHandler
}
