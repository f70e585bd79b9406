package orbit

import (
	"math"
	"testing"
)

func within(t *testing.T, got, want, relTol float64, msg string) {
	t.Helper()
	if math.Abs(got-want)/want > relTol {
		t.Errorf("%s: got %v, want %v within %v%%", msg, got, want, relTol*100)
	}
}

func TestVelocityLowEarthOrbit(t *testing.T) {
	// ~400 km altitude, reference speed about 7.67 km/s
	v := Velocity(G, EarthMass, EarthRadius+400e3)
	within(t, v, 7670, 0.01, "LEO speed")
}

func TestPeriodGeostationary(t *testing.T) {
	// geostationary radius, reference period one sidereal day
	p := Period(G, EarthMass, 42.164e6)
	within(t, p, 86164, 0.01, "GEO period")
}

func TestEscapeVelocityEarthSurface(t *testing.T) {
	v := EscapeVelocity(G, EarthMass, EarthRadius)
	within(t, v, 11186, 0.01, "surface escape speed")
}

func TestEscapeIsRootTwoOfCircular(t *testing.T) {
	const m, r = 5e24, 7e6
	ratio := EscapeVelocity(G, m, r) / Velocity(G, m, r)
	within(t, ratio, math.Sqrt2, 1e-9, "escape to circular ratio")
}

func TestPeriodMatchesCircumference(t *testing.T) {
	// one period at circular speed covers exactly one circumference
	const m, r = 3e24, 1e7
	v := Velocity(G, m, r)
	p := Period(G, m, r)
	within(t, v*p, 2*math.Pi*r, 1e-9, "distance per period")
}

func TestAccelerationInverseSquare(t *testing.T) {
	a1 := Acceleration(G, EarthMass, EarthRadius)
	a2 := Acceleration(G, EarthMass, 2*EarthRadius)
	within(t, a1/a2, 4, 1e-9, "inverse square falloff")
	within(t, a1, 9.82, 0.01, "surface gravity")
}

func TestWorksInSimulationUnits(t *testing.T) {
	// the helpers take g explicitly, so simulation-scale numbers work too
	v := Velocity(0.5, 20000, 400)
	within(t, v, 5, 1e-9, "sim-unit circular speed")
}
