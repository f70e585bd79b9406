package sim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func almostEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

func TestAccelFromSoftening(t *testing.T) {
	a := &Body{Mass: 1, Radius: 1, Pos: mgl64.Vec2{0, 0}}
	b := &Body{Mass: 1000, Radius: 1, Pos: mgl64.Vec2{300, 0}}

	acc := AccelFrom(a, b, 0.5)
	want := 0.5 * 1000 / (300*300 + Softening)
	almostEqual(t, acc.X(), want, 1e-12, "x acceleration")
	almostEqual(t, acc.Y(), 0, 1e-12, "y acceleration")
}

func TestAccelFromIsPure(t *testing.T) {
	a := &Body{Mass: 1, Radius: 1, Pos: mgl64.Vec2{0, 0}, Vel: mgl64.Vec2{2, 3}}
	b := &Body{Mass: 50, Radius: 1, Pos: mgl64.Vec2{10, 0}}
	before := *a
	AccelFrom(a, b, 0.5)
	if a.Pos != before.Pos || a.Vel != before.Vel {
		t.Error("force computation modified body state")
	}
}

func TestAccelFromContactRange(t *testing.T) {
	// inside half the combined radii the contribution must vanish
	a := &Body{Mass: 10, Radius: 20, Pos: mgl64.Vec2{0, 0}}
	b := &Body{Mass: 10, Radius: 20, Pos: mgl64.Vec2{15, 0}}
	if acc := AccelFrom(a, b, 0.5); acc != (mgl64.Vec2{}) {
		t.Errorf("expected zero acceleration at contact range, got %v", acc)
	}

	// just past half the combined radii force resumes
	b.Pos = mgl64.Vec2{21, 0}
	if acc := AccelFrom(a, b, 0.5); acc.X() <= 0 {
		t.Errorf("expected attraction past contact range, got %v", acc)
	}
}

func TestRepulsorPushesAway(t *testing.T) {
	rep := &Body{Category: Anomaly, Subtype: AnomalyRepulsor, Mass: 100, Radius: 5, Pos: mgl64.Vec2{50, 80}}
	b := &Body{Mass: 10, Radius: 2, Pos: mgl64.Vec2{0, 0}}

	acc := AccelFrom(b, rep, 0.5)
	toward := rep.Pos.Sub(b.Pos)
	if acc.Dot(toward) >= 0 {
		t.Errorf("repulsor acceleration points toward it: acc %v toward %v", acc, toward)
	}

	// magnitude is the attractive value scaled by the repulsor factor
	attract := 0.5 * rep.Mass / (toward.Dot(toward) + Softening)
	almostEqual(t, acc.Len(), attract*repulsorMultiplier, 1e-12, "repulsor magnitude")
}

func TestAccelSumsAllSources(t *testing.T) {
	center := &Body{Mass: 1, Radius: 1, Pos: mgl64.Vec2{0, 0}}
	left := &Body{Mass: 500, Radius: 1, Pos: mgl64.Vec2{-100, 0}}
	right := &Body{Mass: 500, Radius: 1, Pos: mgl64.Vec2{100, 0}}

	acc := Accel(center, []*Body{center, left, right}, 0.5)
	almostEqual(t, acc.X(), 0, 1e-12, "symmetric pull cancels")
	almostEqual(t, acc.Y(), 0, 1e-12, "no off-axis pull")
}
