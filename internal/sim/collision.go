package sim

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// CollisionEvent captures one overlapping pair at detection time. A and B
// are value copies so resolvers and recorders see the pre-resolution state
// even after the originals are removed from the world.
type CollisionEvent struct {
	A, B        Body
	ImpactSpeed float64    // |vA - vB|
	Point       mgl64.Vec2 // midpoint between the two centers
	Energy      float64    // collision energy in the center-of-mass frame
	Time        time.Time
	Tick        uint64
}

// CollisionResult is what a resolver turns an event into: bodies to insert
// and the pair to remove, applied atomically by the world.
type CollisionResult struct {
	Created      []*Body
	Removed      [2]uint64
	Rule         string  // name of the rule that matched
	Tag          string  // outcome tag, e.g. "gamma-ray-burst"
	TimeDilation float64 // renderer slow-motion factor, 1 means none
	Fragmented   bool
	Event        CollisionEvent
}

// Resolver consumes collision events and decides their outcomes. The
// world passes itself in so implementations can draw ids, names and
// randomness from the right streams.
type Resolver interface {
	Resolve(w *World, ev CollisionEvent) CollisionResult
}

// detectCollisions scans all unordered pairs of the post-integration body
// set. Bodies overlap when center distance < sum of radii.
//
// Pairing is greedy: the first detected overlap claims both bodies and
// neither is considered again this tick, so a three-way pile-up resolves
// as one pair now and the leftovers next tick against the merge product.
// Anomalies never participate; they act through fields, not contact.
func (w *World) detectCollisions() []CollisionEvent {
	var events []CollisionEvent
	var taken map[uint64]bool
	for i := 0; i < len(w.Bodies); i++ {
		a := w.Bodies[i]
		if a.Category == Anomaly || taken[a.ID] {
			continue
		}
		for j := i + 1; j < len(w.Bodies); j++ {
			b := w.Bodies[j]
			if b.Category == Anomaly || taken[b.ID] {
				continue
			}
			if dist(a, b) >= a.Radius+b.Radius {
				continue
			}
			events = append(events, w.newCollisionEvent(a, b))
			if taken == nil {
				taken = make(map[uint64]bool)
			}
			taken[a.ID] = true
			taken[b.ID] = true
			break
		}
	}
	return events
}

// newCollisionEvent snapshots the pair and derives the impact quantities.
// Energy uses the reduced mass so it is frame-independent: only relative
// motion counts, a fast co-moving pair grazes gently.
func (w *World) newCollisionEvent(a, b *Body) CollisionEvent {
	rel := a.Vel.Sub(b.Vel)
	speed := rel.Len()
	reduced := a.Mass * b.Mass / (a.Mass + b.Mass)
	return CollisionEvent{
		A:           *a,
		B:           *b,
		ImpactSpeed: speed,
		Point:       a.Pos.Add(b.Pos).Mul(0.5),
		Energy:      0.5 * reduced * speed * speed,
		Time:        w.now(),
		Tick:        w.tick,
	}
}
