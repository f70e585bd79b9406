package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// teleportCooldown is the minimum wall-clock time between teleports of the
// same body. Wall-clock, not simulation time: a high TimeScale must not
// let a body ping-pong between linked wormholes every tick.
const teleportCooldown = 2000 * time.Millisecond

// exitSpread scales the destination wormhole's radius into the disk a
// traveler can emerge in. Spreading exits keeps a stream of bodies from
// stacking onto one point and instantly colliding.
const exitSpread = 2.5

// applyWormholes teleports every non-wormhole body that sits inside a
// linked wormhole's radius, subject to the cooldown. Runs before
// integration so travelers feel forces from their new neighborhood this
// tick. Wormholes with a dangling or missing link are inert. Wormholes
// never travel through each other.
func (w *World) applyWormholes() {
	now := w.now()
	for _, wh := range w.Bodies {
		if wh.Subtype != AnomalyWormhole || wh.PairID == 0 {
			continue
		}
		dest := w.Lookup(wh.PairID)
		if dest == nil || dest.Subtype != AnomalyWormhole {
			continue
		}
		for _, b := range w.Bodies {
			if b.Subtype == AnomalyWormhole {
				continue
			}
			if b.Pos.Sub(wh.Pos).Len() >= wh.Radius {
				continue
			}
			if !b.LastTeleport.IsZero() && now.Sub(b.LastTeleport) < teleportCooldown {
				continue
			}
			dx, dy := uniformDisk(w.rng, dest.Radius*exitSpread)
			b.Pos = dest.Pos.Add(mgl64.Vec2{dx, dy})
			b.clearTrail()
			b.LastTeleport = now
		}
	}
}

// uniformDisk samples a point uniformly from a disk of the given radius.
// sqrt on the radial draw corrects for area growing with r.
func uniformDisk(rng *rand.Rand, radius float64) (x, y float64) {
	r := radius * math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	sin, cos := math.Sincos(theta)
	return r * cos, r * sin
}
