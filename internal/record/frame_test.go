package record

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/quillaja/spacesim/internal/sim"
)

func TestCaptureDetachesFromWorld(t *testing.T) {
	w := sim.NewWorld(sim.DefaultSettings(), nil)
	star, err := sim.NewBody(sim.Star, 1000, 40, mgl64.Vec2{0, 0}, mgl64.Vec2{})
	if err != nil {
		t.Fatal(err)
	}
	moon, err := sim.NewBody(sim.Moon, 30, 5, mgl64.Vec2{100, 0}, mgl64.Vec2{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range []*sim.Body{star, moon} {
		if err := w.Add(b); err != nil {
			t.Fatal(err)
		}
	}
	moon.Trail = []mgl64.Vec2{{99, 0}}

	// collision products stay live in the world after the step
	results := []sim.CollisionResult{{
		Created: []*sim.Body{moon},
		Removed: [2]uint64{7, 8},
		Rule:    "accretion",
		Tag:     "accretion",
	}}
	f := Capture(w, results)

	star.Pos = mgl64.Vec2{999, 999}
	moon.Mass = 1
	moon.Pos = mgl64.Vec2{-5, -5}

	if f.Bodies[0].Pos != (mgl64.Vec2{0, 0}) {
		t.Errorf("frame body tracks the live world: %v", f.Bodies[0].Pos)
	}
	got := f.Results[0].Created[0]
	if got.Mass != 30 || got.Pos != (mgl64.Vec2{100, 0}) {
		t.Errorf("captured collision product tracks the live body: mass %v pos %v", got.Mass, got.Pos)
	}
	if got.Trail != nil {
		t.Errorf("captured product should carry no trail, got %d points", len(got.Trail))
	}
	if f.Results[0].Rule != "accretion" || f.Results[0].Removed != [2]uint64{7, 8} {
		t.Errorf("result metadata not carried over: %+v", f.Results[0])
	}
}
