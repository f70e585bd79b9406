package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDetectOverlapThreshold(t *testing.T) {
	w := NewWorld(Settings{Gravity: 0, TimeScale: 1}, nil)
	a, err := NewBody(Planet, 10, 10, mgl64.Vec2{0, 0}, mgl64.Vec2{})
	mustAdd(t, w, a, err)
	b, err := NewBody(Planet, 10, 10, mgl64.Vec2{20, 0}, mgl64.Vec2{})
	mustAdd(t, w, b, err)

	// exactly touching is not overlapping
	if events := w.detectCollisions(); len(events) != 0 {
		t.Fatalf("touching bodies reported as colliding: %d events", len(events))
	}

	b.Pos = mgl64.Vec2{19.999, 0}
	if events := w.detectCollisions(); len(events) != 1 {
		t.Fatalf("overlapping bodies not detected: %d events", len(events))
	}
}

func TestDetectFirstPairWins(t *testing.T) {
	// three mutually overlapping bodies produce exactly one event this
	// tick; the third body waits for the next pass
	w := NewWorld(Settings{Gravity: 0, TimeScale: 1}, nil)
	a, err := NewBody(Planet, 10, 10, mgl64.Vec2{0, 0}, mgl64.Vec2{})
	mustAdd(t, w, a, err)
	b, err := NewBody(Planet, 10, 10, mgl64.Vec2{5, 0}, mgl64.Vec2{})
	mustAdd(t, w, b, err)
	c, err := NewBody(Planet, 10, 10, mgl64.Vec2{10, 0}, mgl64.Vec2{})
	mustAdd(t, w, c, err)

	events := w.detectCollisions()
	if len(events) != 1 {
		t.Fatalf("expected one event from a pile-up, got %d", len(events))
	}
	ev := events[0]
	if ev.A.ID != a.ID || ev.B.ID != b.ID {
		t.Errorf("expected first detected pair (%d,%d), got (%d,%d)", a.ID, b.ID, ev.A.ID, ev.B.ID)
	}
}

func TestDetectDisjointPairsSameTick(t *testing.T) {
	w := NewWorld(Settings{Gravity: 0, TimeScale: 1}, nil)
	for _, x := range []float64{0, 5, 1000, 1005} {
		b, err := NewBody(Asteroid, 10, 10, mgl64.Vec2{x, 0}, mgl64.Vec2{})
		mustAdd(t, w, b, err)
	}
	if events := w.detectCollisions(); len(events) != 2 {
		t.Fatalf("expected two disjoint events, got %d", len(events))
	}
}

func TestDetectSkipsAnomalies(t *testing.T) {
	w := NewWorld(Settings{Gravity: 0, TimeScale: 1}, nil)
	rep, err := NewAnomaly(AnomalyRepulsor, 100, 30, mgl64.Vec2{0, 0})
	mustAdd(t, w, rep, err)
	b, err := NewBody(Planet, 10, 10, mgl64.Vec2{5, 0}, mgl64.Vec2{})
	mustAdd(t, w, b, err)

	if events := w.detectCollisions(); len(events) != 0 {
		t.Fatalf("anomaly participated in collision: %d events", len(events))
	}
}

func TestCollisionEventQuantities(t *testing.T) {
	w := NewWorld(Settings{Gravity: 0, TimeScale: 1}, nil)
	a, err := NewBody(Planet, 30, 10, mgl64.Vec2{0, 0}, mgl64.Vec2{4, 0})
	mustAdd(t, w, a, err)
	b, err := NewBody(Planet, 10, 10, mgl64.Vec2{12, 0}, mgl64.Vec2{-2, 0})
	mustAdd(t, w, b, err)

	events := w.detectCollisions()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	ev := events[0]

	almostEqual(t, ev.ImpactSpeed, 6, 1e-12, "impact speed")
	almostEqual(t, ev.Point.X(), 6, 1e-12, "impact point x")
	almostEqual(t, ev.Point.Y(), 0, 1e-12, "impact point y")

	// reduced mass 30*10/40 = 7.5, energy 0.5*7.5*36
	almostEqual(t, ev.Energy, 0.5*7.5*36, 1e-12, "collision energy")

	// the event snapshots state; later mutation must not leak in
	a.Mass = 999
	if ev.A.Mass != 30 {
		t.Error("event shares state with the live body")
	}
}

func TestFrameIndependentEnergy(t *testing.T) {
	// boosting both bodies by the same velocity must not change the
	// collision energy
	mk := func(boost mgl64.Vec2) float64 {
		w := NewWorld(Settings{Gravity: 0, TimeScale: 1}, nil)
		a, err := NewBody(Planet, 30, 10, mgl64.Vec2{0, 0}, mgl64.Vec2{4, 0}.Add(boost))
		mustAdd(t, w, a, err)
		b, err := NewBody(Planet, 10, 10, mgl64.Vec2{12, 0}, mgl64.Vec2{-2, 0}.Add(boost))
		mustAdd(t, w, b, err)
		return w.detectCollisions()[0].Energy
	}
	rest := mk(mgl64.Vec2{})
	boosted := mk(mgl64.Vec2{100, -40})
	almostEqual(t, boosted, rest, 1e-9, "energy under frame boost")
}
