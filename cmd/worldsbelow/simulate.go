package main

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plus3/worldsbelow/config"
	"github.com/plus3/worldsbelow/sim"
)

type simulateOptions struct {
	ticks    int
	dt       time.Duration
	moves    []string
	realtime bool
}

func newSimulateCommand(opts *rootOptions) *cobra.Command {
	so := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the world headless and print a report",
		Long: "Run the world without a window for a fixed number of ticks, holding the\n" +
			"--move directions for the whole run, then print a markdown report.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			report, err := runSimulation(cmd.Context(), cfg, log, so)
			if err != nil {
				return err
			}
			return report.Generate(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&so.ticks, "ticks", 600, "number of ticks to run")
	cmd.Flags().DurationVar(&so.dt, "dt", time.Second/60, "simulated time per tick")
	cmd.Flags().StringSliceVar(&so.moves, "move", nil, "directions held by the player: left, right, up, down")
	cmd.Flags().BoolVar(&so.realtime, "realtime", false, "tick on a wall-clock ticker instead of as fast as possible")
	return cmd
}

func parseIntents(moves []string) (sim.Intents, error) {
	var in sim.Intents
	for _, m := range moves {
		switch strings.ToLower(strings.TrimSpace(m)) {
		case "left":
			in.Left = true
		case "right":
			in.Right = true
		case "up":
			in.Up = true
		case "down":
			in.Down = true
		default:
			return sim.Intents{}, errors.Errorf("unknown direction %q", m)
		}
	}
	return in, nil
}

func runSimulation(ctx context.Context, cfg *config.Config, log *zap.Logger, so *simulateOptions) (*Report, error) {
	if so.ticks <= 0 {
		return nil, errors.Errorf("ticks must be positive, got %d", so.ticks)
	}
	if so.dt <= 0 {
		return nil, errors.Errorf("dt must be positive, got %s", so.dt)
	}
	in, err := parseIntents(so.moves)
	if err != nil {
		return nil, err
	}

	world, err := sim.NewWorld(cfg, log)
	if err != nil {
		return nil, err
	}
	display := sim.Rect{W: float32(cfg.Window.Width), H: float32(cfg.Window.Height)}
	if _, err := world.Init(display); err != nil {
		return nil, err
	}

	report := &Report{
		Ticks:    so.ticks,
		TickSize: so.dt,
		Seed:     world.Seed(),
		Intents:  in,
		Realtime: so.realtime,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, so.ticks),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	log.Info("simulation starting",
		zap.Int("ticks", so.ticks),
		zap.Duration("dt", so.dt),
		zap.Bool("realtime", so.realtime))

	startTime := time.Now()
	if so.realtime {
		world.SetIntents(in)
		runCtx, cancel := context.WithTimeout(ctx, time.Duration(so.ticks)*so.dt)
		defer cancel()
		world.Scheduler().Run(runCtx, so.dt, func(err error) {
			log.Warn("tick failed", zap.Error(err))
		})
	} else {
		sample := func(d time.Duration) {
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, d)
		}
		if err := world.RunFixed(so.ticks, so.dt, in, sample); err != nil {
			return nil, err
		}
	}
	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.UpdateTime.Finalize()
	report.Scheduler = *world.Scheduler().GetStats()
	report.TicksRun = len(report.UpdateTime.Samples)
	if so.realtime && len(report.Scheduler.Systems) > 0 {
		report.TicksRun = int(report.Scheduler.Systems[0].ExecutionCount)
	}
	report.Storage = world.Storage.CollectStats()
	report.World = world.Summarize()

	log.Info("simulation finished", zap.Duration("elapsed", report.TotalTime))
	return report, nil
}
