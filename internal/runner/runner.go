// Package runner drives a world tick by tick: pacing, live settings
// updates, recording sinks, and progress logging.
package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/quillaja/spacesim/internal/record"
	"github.com/quillaja/spacesim/internal/sim"
)

// Runner advances one world. All fields except World are optional.
type Runner struct {
	World *sim.World
	Log   *slog.Logger

	// Sinks receive a captured frame after every tick.
	Sinks []record.Sink
	// Limiter paces ticks against wall clock; nil runs flat out.
	Limiter *rate.Limiter
	// Settings delivers live updates, usually from a SettingsWatcher.
	Settings <-chan sim.Settings
	// Progress is the interval between progress log lines; 0 disables.
	Progress time.Duration
	// Diagnostics adds energy and momentum totals to progress lines.
	Diagnostics bool
}

// Stats summarizes a finished or interrupted run.
type Stats struct {
	Ticks      uint64
	Collisions int
	Bodies     int
	Elapsed    time.Duration
}

// Run advances the world by ticks steps or until ctx is canceled. A
// paused world holds its tick count and waits instead of spinning.
func (r *Runner) Run(ctx context.Context, ticks uint64) (Stats, error) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	start := time.Now()
	lastProgress := start
	var stats Stats
	finish := func() Stats {
		stats.Bodies = len(r.World.Bodies)
		stats.Elapsed = time.Since(start)
		return stats
	}

	for stats.Ticks < ticks {
		select {
		case <-ctx.Done():
			return finish(), ctx.Err()
		case s, ok := <-r.Settings:
			if !ok {
				r.Settings = nil
				break
			}
			r.World.Settings = s
			log.Info("settings updated",
				"gravity", s.Gravity, "time_scale", s.TimeScale,
				"paused", s.Paused, "trails", s.Trails)
		default:
		}

		if r.World.Settings.Paused {
			// wait for an unpause, a cancel, or just poll again; the
			// timer keeps this responsive when no settings source exists
			select {
			case <-ctx.Done():
				return finish(), ctx.Err()
			case s, ok := <-r.Settings:
				if !ok {
					r.Settings = nil
					break
				}
				r.World.Settings = s
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}

		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx); err != nil {
				return finish(), err
			}
		}

		results := r.World.Step()
		stats.Ticks++
		stats.Collisions += len(results)

		for _, res := range results {
			log.Debug("collision",
				"rule", res.Rule, "tag", res.Tag,
				"a", res.Event.A.Name, "b", res.Event.B.Name,
				"speed", res.Event.ImpactSpeed, "produced", len(res.Created),
				"fragmented", res.Fragmented)
		}

		// capture costs an allocation per tick, skip it with no sinks
		if len(r.Sinks) > 0 {
			frame := record.Capture(r.World, results)
			for _, sink := range r.Sinks {
				sink.Record(frame)
			}
		}

		if r.Progress > 0 && time.Since(lastProgress) >= r.Progress {
			r.logProgress(log, stats, ticks)
			lastProgress = time.Now()
		}
	}

	final := finish()
	log.Info("run complete",
		"ticks", humanize.Comma(int64(final.Ticks)),
		"collisions", final.Collisions,
		"bodies", final.Bodies,
		"elapsed", final.Elapsed.Round(time.Millisecond))
	return final, nil
}

func (r *Runner) logProgress(log *slog.Logger, stats Stats, total uint64) {
	args := []any{
		"tick", humanize.Comma(int64(stats.Ticks)),
		"of", humanize.Comma(int64(total)),
		"bodies", humanize.Comma(int64(len(r.World.Bodies))),
		"collisions", stats.Collisions,
	}
	if r.Diagnostics {
		g := r.World.Settings.Gravity
		args = append(args,
			"kinetic", sim.KineticEnergy(r.World.Bodies),
			"potential", sim.PotentialEnergy(r.World.Bodies, g),
			"momentum", sim.Momentum(r.World.Bodies).Len(),
			"angular", sim.AngularMomentum(r.World.Bodies),
		)
	}
	log.Info("progress", args...)
}
