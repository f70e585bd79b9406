package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

/*
diagnostics over the live body set. none of these feed back into the
simulation; the runner logs them and tests use momentum to check the
merge conservation laws.
*/

// TotalMass sums the mass of all bodies.
func TotalMass(bodies []*Body) float64 {
	var m float64
	for _, b := range bodies {
		m += b.Mass
	}
	return m
}

// KineticEnergy returns sum of 1/2 m v^2.
func KineticEnergy(bodies []*Body) float64 {
	var e float64
	for _, b := range bodies {
		e += 0.5 * b.Mass * b.Vel.Dot(b.Vel)
	}
	return e
}

// PotentialEnergy returns the pairwise gravitational potential with the
// same softening the force model uses, so the reported total energy is
// consistent with the dynamics actually integrated.
func PotentialEnergy(bodies []*Body, g float64) float64 {
	var e float64
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[i].Pos.Sub(bodies[j].Pos)
			e -= g * bodies[i].Mass * bodies[j].Mass / math.Sqrt(d.Dot(d)+Softening)
		}
	}
	return e
}

// Momentum returns the total linear momentum vector.
func Momentum(bodies []*Body) mgl64.Vec2 {
	var p mgl64.Vec2
	for _, b := range bodies {
		p = p.Add(b.Vel.Mul(b.Mass))
	}
	return p
}

// AngularMomentum returns the z component of total angular momentum about
// the origin, the only nonzero component in the plane.
func AngularMomentum(bodies []*Body) float64 {
	var l float64
	for _, b := range bodies {
		l += b.Mass * (b.Pos.X()*b.Vel.Y() - b.Pos.Y()*b.Vel.X())
	}
	return l
}
