// Package orbit provides closed-form two-body quantities for circular
// orbits. The scenario builder uses them to place bodies on stable orbits,
// and the validate command uses them against SI reference values.
package orbit

import "math"

// SI constants for validation against real-world figures. The simulation
// itself runs in its own units and passes its G explicitly.
const (
	G           = 6.67430e-11 // m^3 kg^-1 s^-2
	EarthMass   = 5.972e24    // kg
	EarthRadius = 6.371e6     // m
)

// Velocity returns the circular orbital speed at distance r around a
// central mass: sqrt(g*M/r).
func Velocity(g, centralMass, r float64) float64 {
	return math.Sqrt(g * centralMass / r)
}

// Period returns the time for one circular orbit at distance r:
// 2*pi*sqrt(r^3/(g*M)).
func Period(g, centralMass, r float64) float64 {
	return 2 * math.Pi * math.Sqrt(r*r*r/(g*centralMass))
}

// EscapeVelocity returns the speed needed to escape from distance r of a
// mass: sqrt(2*g*M/r).
func EscapeVelocity(g, mass, r float64) float64 {
	return math.Sqrt(2 * g * mass / r)
}

// Acceleration returns the gravitational acceleration magnitude toward a
// mass at distance r, without softening. Diverges as r approaches zero;
// callers own the guard.
func Acceleration(g, mass, r float64) float64 {
	return g * mass / (r * r)
}
