package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// trailChance is the per-body, per-tick probability of appending a trail
// point. Sampling instead of recording every tick keeps trails sparse at
// high tick rates.
const trailChance = 0.25

// World owns the full simulation state and advances it tick by tick.
// It is not safe for concurrent mutation; the runner serializes access.
type World struct {
	Settings Settings
	Bodies   []*Body

	resolver Resolver
	rng      *rand.Rand // physical stream: fragments, jitter, wormhole exits
	cosmetic *rand.Rand // names and trails, never read by physics
	now      func() time.Time
	nextID   uint64
	tick     uint64
}

// NewWorld creates an empty world. A nil resolver disables collision
// resolution: overlaps are still detected but nothing reacts to them.
func NewWorld(s Settings, r Resolver) *World {
	seed := time.Now().UnixNano()
	return &World{
		Settings: s,
		resolver: r,
		rng:      rand.New(rand.NewSource(seed)),
		cosmetic: rand.New(rand.NewSource(seed + 1)),
		now:      time.Now,
		nextID:   1,
	}
}

// Seed pins both random streams. The streams are separate so cosmetic
// draws (names, trail sampling) can never shift physical outcomes.
func (w *World) Seed(physical, cosmetic int64) {
	w.rng = rand.New(rand.NewSource(physical))
	w.cosmetic = rand.New(rand.NewSource(cosmetic))
}

// SetClock replaces the wall clock used for wormhole cooldowns and
// lineage timestamps. Tests inject a fake clock here.
func (w *World) SetClock(fn func() time.Time) {
	if fn != nil {
		w.now = fn
	}
}

// Now returns the current wall-clock time as the world sees it.
func (w *World) Now() time.Time { return w.now() }

// Rand returns the physical randomness stream.
func (w *World) Rand() *rand.Rand { return w.rng }

// Cosmetic returns the cosmetic randomness stream.
func (w *World) Cosmetic() *rand.Rand { return w.cosmetic }

// Tick reports how many steps the world has advanced.
func (w *World) Tick() uint64 { return w.tick }

// NextID allocates a fresh body id. Ids are never reused within a world.
func (w *World) NextID() uint64 {
	id := w.nextID
	w.nextID++
	return id
}

// IDSeq returns the next unallocated id without consuming it. Snapshots
// persist it so restored worlds keep ids unique.
func (w *World) IDSeq() uint64 { return w.nextID }

// Add validates b, assigns an id if it has none, generates a name if it
// has none, and inserts it into the world.
func (w *World) Add(b *Body) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.ID == 0 {
		b.ID = w.NextID()
	} else if b.ID >= w.nextID {
		w.nextID = b.ID + 1
	}
	if b.Name == "" {
		b.Name = GenerateName(b.Category, w.cosmetic)
	}
	if b.Color == "" {
		b.Color = b.Category.Color()
	}
	w.Bodies = append(w.Bodies, b)
	return nil
}

// Remove deletes the body with the given id, reporting whether it existed.
func (w *World) Remove(id uint64) bool {
	for i, b := range w.Bodies {
		if b.ID == id {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			return true
		}
	}
	return false
}

// Lookup returns the live body with the given id, or nil.
func (w *World) Lookup(id uint64) *Body {
	for _, b := range w.Bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Step advances the world one tick: wormhole teleports, force integration,
// collision detection, then resolution. Returns the tick's collision
// results so callers can record or render them. A paused world does
// nothing and returns nil.
func (w *World) Step() []CollisionResult {
	if w.Settings.Paused {
		return nil
	}
	w.tick++
	w.applyWormholes()
	w.integrate()
	events := w.detectCollisions()
	if w.resolver == nil || len(events) == 0 {
		return nil
	}
	results := make([]CollisionResult, 0, len(events))
	for _, ev := range events {
		res := w.resolver.Resolve(w, ev)
		w.apply(res)
		results = append(results, res)
	}
	return results
}

// integrate runs one semi-implicit Euler step. Accelerations for every
// body are accumulated first, from pre-step positions only, so the result
// is independent of body order. Then v += a*dt and p += v*dt, in that
// order: the updated velocity moves the body.
func (w *World) integrate() {
	dt := w.Settings.TimeScale
	for _, b := range w.Bodies {
		b.acc = Accel(b, w.Bodies, w.Settings.Gravity)
	}
	for _, b := range w.Bodies {
		b.Vel = b.Vel.Add(b.acc.Mul(dt))
		b.Pos = b.Pos.Add(b.Vel.Mul(dt))
		b.acc = mgl64.Vec2{}
		if w.Settings.Trails && w.cosmetic.Float64() < trailChance {
			b.recordTrail()
		}
	}
}

// apply commits a collision result atomically: both parents leave and all
// children enter before the next event is resolved, so no intermediate
// state is visible to later rules this tick.
func (w *World) apply(res CollisionResult) {
	w.Remove(res.Removed[0])
	w.Remove(res.Removed[1])
	for _, nb := range res.Created {
		w.Bodies = append(w.Bodies, nb)
	}
}

// Restore rebuilds a world from persisted state. Bodies are deep copies
// of the snapshot values.
func Restore(s Settings, bodies []Body, tick, idseq uint64, r Resolver) (*World, error) {
	w := NewWorld(s, r)
	w.tick = tick
	if idseq > 0 {
		w.nextID = idseq
	}
	for i := range bodies {
		b := bodies[i].Clone()
		if err := w.Add(b); err != nil {
			return nil, fmt.Errorf("restore body %d: %w", b.ID, err)
		}
	}
	return w, nil
}
