// Package record persists simulation output: per-tick frames to sqlite or
// compressed chunk files for renderers, and full world snapshots for
// pausing and resuming runs.
package record

import (
	"github.com/quillaja/spacesim/internal/sim"
)

// Frame is the value snapshot of one tick handed to sinks. Bodies and the
// collision products under Results are copies, so sinks may read frames on
// their own goroutines while the simulation moves on.
type Frame struct {
	Tick    uint64
	Bodies  []sim.Body
	Results []sim.CollisionResult
}

// Capture snapshots the world after a step. Trails are stripped: sinks
// persist physical state and collision history, not cosmetics. Created
// bodies in the results are cloned; the originals live on in the world.
func Capture(w *sim.World, results []sim.CollisionResult) *Frame {
	f := &Frame{
		Tick:    w.Tick(),
		Bodies:  make([]sim.Body, len(w.Bodies)),
		Results: make([]sim.CollisionResult, len(results)),
	}
	for i, b := range w.Bodies {
		f.Bodies[i] = *b
		f.Bodies[i].Trail = nil
	}
	for i, res := range results {
		if len(res.Created) > 0 {
			created := make([]*sim.Body, len(res.Created))
			for j, b := range res.Created {
				created[j] = b.Clone()
				created[j].Trail = nil
			}
			res.Created = created
		}
		f.Results[i] = res
	}
	return f
}

// Sink consumes captured frames. Record must return quickly; sinks buffer
// and do their io on a worker goroutine. Close flushes and reports the
// first write error, if any.
type Sink interface {
	Record(*Frame)
	Close() error
}
