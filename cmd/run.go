package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/quillaja/spacesim/internal/config"
	"github.com/quillaja/spacesim/internal/fusion"
	"github.com/quillaja/spacesim/internal/record"
	"github.com/quillaja/spacesim/internal/runner"
	"github.com/quillaja/spacesim/internal/scenario"
	"github.com/quillaja/spacesim/internal/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from a preset, scenario file, or snapshot",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().String("preset", "binary-cores", "built-in scenario to run")
	runCmd.Flags().String("scenario", "", "scenario file (overrides --preset)")
	runCmd.Flags().String("resume", "", "snapshot file to resume from")
	runCmd.Flags().Uint64("ticks", 10000, "number of ticks to simulate")
	runCmd.Flags().Int64("seed", 0, "override the scenario's random seed")
	runCmd.Flags().Bool("no-collisions", false, "detect overlaps but never resolve them")
	runCmd.Flags().Bool("watch", false, "reload settings when the scenario file changes")

	runCmd.Flags().String("db", "", "record frames to this sqlite file")
	runCmd.Flags().String("chunks", "", "record frames to chunk files in this directory")
	runCmd.Flags().String("snapshot", "", "write a snapshot here when the run ends")
	runCmd.Flags().Float64("tick-rate", 0, "pace in ticks per second (0 = flat out)")
	runCmd.Flags().Bool("diagnostics", false, "log energy and momentum totals with progress")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)

	log := config.NewLogger(cfg)
	slog.SetDefault(log)

	w, watchPath, err := buildWorld(cmd, log)
	if err != nil {
		return err
	}

	sinks, err := buildSinks(cfg)
	if err != nil {
		return err
	}

	var limiter *rate.Limiter
	if cfg.TickRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.TickRate), 1)
	}

	r := &runner.Runner{
		World:       w,
		Log:         log,
		Sinks:       sinks,
		Limiter:     limiter,
		Progress:    cfg.Progress,
		Diagnostics: cfg.Diagnostics,
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		if watchPath == "" {
			return fmt.Errorf("--watch needs --scenario; presets and snapshots have no file to watch")
		}
		sw, err := runner.NewSettingsWatcher(watchPath, log)
		if err != nil {
			return err
		}
		if err := sw.Start(); err != nil {
			return err
		}
		defer sw.Stop()
		r.Settings = sw.Changes
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	ticks, _ := cmd.Flags().GetUint64("ticks")
	log.Info("starting",
		"bodies", len(w.Bodies), "ticks", ticks,
		"gravity", w.Settings.Gravity, "time_scale", w.Settings.TimeScale)

	stats, runErr := r.Run(ctx, ticks)
	if errors.Is(runErr, context.Canceled) {
		log.Info("interrupted", "ticks", stats.Ticks, "bodies", stats.Bodies)
		runErr = nil
	}

	if cfg.Snapshot != "" {
		if err := record.SaveSnapshot(cfg.Snapshot, record.TakeSnapshot(w)); err != nil {
			log.Error("snapshot failed", "path", cfg.Snapshot, "error", err)
			if runErr == nil {
				runErr = err
			}
		} else {
			log.Info("snapshot written", "path", cfg.Snapshot, "tick", w.Tick())
		}
	}

	for _, sink := range sinks {
		if err := sink.Close(); err != nil {
			log.Error("recording failed", "error", err)
			if runErr == nil {
				runErr = err
			}
		}
	}
	return runErr
}

// applyFlagOverrides applies explicitly set run flags on top of the
// viper-resolved config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("db") {
		cfg.Database, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flags().Changed("chunks") {
		cfg.ChunkDir, _ = cmd.Flags().GetString("chunks")
	}
	if cmd.Flags().Changed("snapshot") {
		cfg.Snapshot, _ = cmd.Flags().GetString("snapshot")
	}
	if cmd.Flags().Changed("tick-rate") {
		cfg.TickRate, _ = cmd.Flags().GetFloat64("tick-rate")
	}
	if cmd.Flags().Changed("diagnostics") {
		cfg.Diagnostics, _ = cmd.Flags().GetBool("diagnostics")
	}
}

// buildWorld resolves the world source: --resume beats --scenario beats
// --preset. Returns the scenario file path when one was used, for --watch.
func buildWorld(cmd *cobra.Command, log *slog.Logger) (*sim.World, string, error) {
	var resolver sim.Resolver
	if noCol, _ := cmd.Flags().GetBool("no-collisions"); !noCol {
		resolver = fusion.Standard()
	}

	if path, _ := cmd.Flags().GetString("resume"); path != "" {
		snap, err := record.LoadSnapshot(path)
		if err != nil {
			return nil, "", err
		}
		w, err := snap.Restore(resolver)
		if err != nil {
			return nil, "", err
		}
		log.Info("resumed", "path", path, "tick", snap.Tick, "bodies", len(w.Bodies))
		return w, "", nil
	}

	var sc *scenario.Scenario
	var watchPath string
	if path, _ := cmd.Flags().GetString("scenario"); path != "" {
		var err error
		if sc, err = scenario.Load(path); err != nil {
			return nil, "", err
		}
		watchPath = path
	} else {
		name, _ := cmd.Flags().GetString("preset")
		var err error
		if sc, err = scenario.Preset(name); err != nil {
			return nil, "", err
		}
	}

	if cmd.Flags().Changed("seed") {
		sc.Seed, _ = cmd.Flags().GetInt64("seed")
	}

	w, err := sc.Build(resolver)
	if err != nil {
		return nil, "", err
	}
	log.Info("scenario loaded", "name", sc.Name, "bodies", len(w.Bodies), "seed", sc.Seed)
	return w, watchPath, nil
}

// buildSinks opens the recording outputs the config asks for.
func buildSinks(cfg config.Config) ([]record.Sink, error) {
	var sinks []record.Sink
	if cfg.Database != "" {
		db, err := record.OpenSQLite(cfg.Database)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, db)
	}
	if cfg.ChunkDir != "" {
		cs, err := record.NewChunkStore(cfg.ChunkDir, cfg.ChunkFrames)
		if err != nil {
			for _, s := range sinks {
				s.Close()
			}
			return nil, err
		}
		sinks = append(sinks, cs)
	}
	return sinks, nil
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
	}()
	return ctx, cancel
}
