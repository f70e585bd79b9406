package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Softening is the epsilon added to the squared distance in the
// acceleration denominator. It bounds the force at close range so near
// passes cannot produce unbounded velocities.
const Softening = 100.0

// repulsorMultiplier scales the negated pull of a repulsor anomaly. The
// push is deliberately stronger than the equivalent pull so repulsors
// carve visible voids.
const repulsorMultiplier = 5.0

// Accel computes the instantaneous gravitational acceleration on b from
// every other body, using pre-step positions only. It is pure: no body
// state is modified.
func Accel(b *Body, bodies []*Body, g float64) mgl64.Vec2 {
	var acc mgl64.Vec2
	for _, o := range bodies {
		if o == b {
			continue
		}
		acc = acc.Add(AccelFrom(b, o, g))
	}
	return acc
}

// AccelFrom computes the acceleration on b due to o alone.
//
// a = G * m_o / (d^2 + eps) toward o, negated and amplified when o is a
// repulsor. Inside half the combined radii the contribution is zero: at
// that range the collision pipeline owns the pair and a near-singular
// force would only inject energy into the merge.
func AccelFrom(b, o *Body, g float64) mgl64.Vec2 {
	dir := o.Pos.Sub(b.Pos)
	d2 := dir.Dot(dir)
	d := math.Sqrt(d2)
	if d < (b.Radius+o.Radius)/2 {
		return mgl64.Vec2{}
	}
	mag := g * o.Mass / (d2 + Softening)
	if o.Subtype == AnomalyRepulsor {
		mag = -mag * repulsorMultiplier
	}
	// dir/d is the unit vector toward o; d > 0 is guaranteed by the
	// contact check above since radii are positive.
	return dir.Mul(mag / d)
}
