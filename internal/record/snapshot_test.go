package record

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/quillaja/spacesim/internal/sim"
)

func snapshotWorld(t *testing.T) *sim.World {
	t.Helper()
	w := sim.NewWorld(sim.Settings{Gravity: 0.5, TimeScale: 2, Trails: true}, nil)
	w.Seed(21, 22)

	heavy, err := sim.NewBody(sim.Star, 6000, 50, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	light, err := sim.NewBody(sim.Planet, 12, 8, mgl64.Vec2{900, 0}, mgl64.Vec2{0, 1.2})
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range []*sim.Body{heavy, light} {
		if err := w.Add(b); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 5; i++ {
		w.Step()
	}
	return w
}

func TestSnapshotRoundtrip(t *testing.T) {
	w := snapshotWorld(t)
	path := filepath.Join(t.TempDir(), "pause.snap")

	snap := TakeSnapshot(w)
	if err := SaveSnapshot(path, snap); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}

	restored, err := loaded.Restore(nil)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Tick() != w.Tick() {
		t.Errorf("tick = %d, want %d", restored.Tick(), w.Tick())
	}
	if restored.Settings != w.Settings {
		t.Errorf("settings = %+v, want %+v", restored.Settings, w.Settings)
	}
	if len(restored.Bodies) != len(w.Bodies) {
		t.Fatalf("got %d bodies, want %d", len(restored.Bodies), len(w.Bodies))
	}
	for i, b := range w.Bodies {
		r := restored.Bodies[i]
		if r.ID != b.ID || r.Name != b.Name || r.Category != b.Category {
			t.Errorf("body %d identity changed: %+v vs %+v", i, r, b)
		}
		if r.Mass != b.Mass || r.Radius != b.Radius || r.Pos != b.Pos || r.Vel != b.Vel {
			t.Errorf("body %d state changed: %+v vs %+v", i, r, b)
		}
		if len(r.Trail) != len(b.Trail) {
			t.Errorf("body %d trail length %d, want %d", i, len(r.Trail), len(b.Trail))
		}
	}
}

func TestSnapshotContinuesIDSequence(t *testing.T) {
	w := snapshotWorld(t)
	maxID := uint64(0)
	for _, b := range w.Bodies {
		if b.ID > maxID {
			maxID = b.ID
		}
	}

	restored, err := TakeSnapshot(w).Restore(nil)
	if err != nil {
		t.Fatal(err)
	}
	nb, err := sim.NewBody(sim.Asteroid, 5, 2, mgl64.Vec2{50, 50}, mgl64.Vec2{})
	if err != nil {
		t.Fatal(err)
	}
	if err := restored.Add(nb); err != nil {
		t.Fatal(err)
	}
	if nb.ID <= maxID {
		t.Errorf("restored world reused id %d (max existing %d)", nb.ID, maxID)
	}
}

func TestSnapshotIsFrozen(t *testing.T) {
	w := snapshotWorld(t)
	snap := TakeSnapshot(w)

	before := snap.Bodies[0].Pos
	trailLen := len(snap.Bodies[1].Trail)
	for i := 0; i < 10; i++ {
		w.Step()
	}
	if snap.Bodies[0].Pos != before {
		t.Error("snapshot position moved with the live world")
	}
	if len(snap.Bodies[1].Trail) != trailLen {
		t.Error("snapshot trail grew with the live world")
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.snap")); err == nil {
		t.Error("missing snapshot should fail")
	}
}
