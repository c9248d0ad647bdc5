package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danl5/govote"
	"github.com/danl5/govote/pkg/config"
	"github.com/danl5/govote/pkg/log"
	"github.com/danl5/govote/pkg/model"
	"github.com/danl5/govote/pkg/report"
)

type options struct {
	duration     int
	probability  float64
	stations     int
	offset       int
	tick         time.Duration
	serviceTicks int
	seed         int64
	configPath   string
	recordPath   string
	quiet        bool
	verbose      bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "votesim",
		Short:         "Simulate an election day at a set of polling stations",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, &opts, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.duration, "time", "t", 0, "simulation time, in seconds")
	flags.Float64VarP(&opts.probability, "probability", "p", 0, "probability of an arriving voter being a normal voter")
	flags.IntVarP(&opts.stations, "stations", "c", 1, "number of polling stations")
	flags.IntVarP(&opts.offset, "offset", "o", 0, "seconds after a station opens before it reports its tally")
	flags.DurationVar(&opts.tick, "tick", config.DefaultTick, "length of one simulated second")
	flags.IntVar(&opts.serviceTicks, "service-ticks", config.DefaultServiceTicks, "ticks a station rests after serving a voter")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed, 0 seeds from the clock")
	flags.StringVar(&opts.configPath, "config", "", "JSON config file, flags set on the command line take precedence")
	flags.StringVar(&opts.recordPath, "record", "", "write every tally snapshot to this msgpack file")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print tally snapshots")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	_ = flags.MarkHidden("tick")

	cmd.AddCommand(newReplayCmd(stdout))
	return cmd
}

// loadConfig merges the config file and the flags. Without a config file every
// flag applies, with one only the flags set on the command line do.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		if err := config.LoadFile(opts.configPath, &cfg); err != nil {
			return cfg, err
		}
	}

	raw := map[string]any{}
	set := func(flag, key string, value any) {
		if opts.configPath == "" || cmd.Flags().Changed(flag) {
			raw[key] = value
		}
	}
	set("time", "duration", opts.duration)
	set("probability", "probability", opts.probability)
	set("stations", "stations", opts.stations)
	set("offset", "report_offset", opts.offset)
	set("tick", "tick", opts.tick)
	set("service-ticks", "service_ticks", opts.serviceTicks)
	set("seed", "seed", opts.seed)

	if err := config.Decode(raw, &cfg); err != nil {
		return cfg, err
	}

	cfg = cfg.WithDefaults()
	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, opts *options, w, stderr io.Writer) error {
	// station servers and state callbacks print concurrently
	stdout := &syncWriter{w: w}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger := log.New(stderr, opts.verbose)
	log.DefaultLogger = logger

	fmt.Fprintf(stdout, "time: %v\n", cfg.Duration)
	fmt.Fprintf(stdout, "prob: %v\n", cfg.Probability)
	fmt.Fprintf(stdout, "stations: %v\n", cfg.Stations)

	var reporters []model.Reporter
	if !opts.quiet {
		reporters = append(reporters, report.NewPrinter(stdout))
	}
	if opts.verbose {
		reporters = append(reporters, report.NewLogReporter(logger))
	}
	var recorder *report.Recorder
	if opts.recordPath != "" {
		f, err := os.Create(opts.recordPath)
		if err != nil {
			return err
		}
		defer f.Close()
		recorder = report.NewRecorder(f)
		reporters = append(reporters, recorder)
	}

	poll, err := govote.NewPoll(&govote.PollConfig{
		Config:    cfg,
		Reporters: reporters,
		CallBacks: &govote.StateCallBacks{
			EnterRunning: func(ctx context.Context, st model.StateTransition) error {
				fmt.Fprintln(stdout, color.GreenString("polls open"), st.RunID)
				return nil
			},
			LeaveRunning: func(ctx context.Context, st model.StateTransition) error {
				fmt.Fprintln(stdout, color.YellowString("polls closed"))
				return nil
			},
		},
	}, logger)
	if err != nil {
		return err
	}

	result, err := poll.Run()
	if err != nil {
		return err
	}

	if recorder != nil {
		log.Info("votesim, snapshots recorded", "path", opts.recordPath, "count", recorder.Count())
	}
	printResult(stdout, result)
	return nil
}

func printResult(w io.Writer, result *model.Result) {
	printer := report.NewPrinter(w)
	fmt.Fprintf(w, "voters: %d, served: %d, unserved: %d\n", result.Tickets, result.Served(), result.Unserved())
	for _, sr := range result.Stations {
		fmt.Fprintln(w, printer.Format(model.TallySnapshot{
			RunID:     result.RunID,
			StationID: sr.ID,
			Tally:     sr.Tally,
			Served:    len(sr.Served),
		}))
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
