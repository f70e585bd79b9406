package record

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/quillaja/spacesim/internal/sim"
)

func testFrame(tick uint64) *Frame {
	return &Frame{
		Tick: tick,
		Bodies: []sim.Body{
			{ID: 1, Name: "Anchor", Category: sim.Star, Mass: 1000.4, Radius: 60.2,
				Pos: mgl64.Vec2{10.6, -3.4}},
			{ID: 2, Name: "Skiff", Category: sim.Planet, Mass: 15.0, Radius: 9.0,
				Pos: mgl64.Vec2{420.0, 0.0}},
		},
	}
}

func TestSQLiteRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}

	for tick := uint64(1); tick <= 3; tick++ {
		f := testFrame(tick)
		if tick == 2 {
			f.Results = []sim.CollisionResult{{
				Rule: "stellar-merger", Tag: "merge",
				Created: []*sim.Body{{ID: 3}},
				Event: sim.CollisionEvent{
					A:           f.Bodies[0],
					B:           f.Bodies[1],
					ImpactSpeed: 4.5,
					Energy:      120.5,
				},
			}}
		}
		s.Record(f)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM bodies`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Errorf("got %d body rows, want 6", n)
	}

	// positions, masses and radii round to whole units on insert
	var x, y, mass, radius float64
	var category, name string
	err = db.QueryRow(
		`SELECT x, y, mass, radius, category, name FROM bodies WHERE frame = 1 AND id = 1`,
	).Scan(&x, &y, &mass, &radius, &category, &name)
	if err != nil {
		t.Fatal(err)
	}
	if x != 11 || y != -3 || mass != 1000 || radius != 60 {
		t.Errorf("got x=%v y=%v mass=%v radius=%v, want rounded 11 -3 1000 60", x, y, mass, radius)
	}
	if category != "star" || name != "Anchor" {
		t.Errorf("got category=%q name=%q", category, name)
	}

	var rule, tag string
	var fragmented, produced int
	var speed float64
	err = db.QueryRow(
		`SELECT rule, tag, impact_speed, fragmented, produced FROM collisions WHERE frame = 2`,
	).Scan(&rule, &tag, &speed, &fragmented, &produced)
	if err != nil {
		t.Fatal(err)
	}
	if rule != "stellar-merger" || tag != "merge" || speed != 4.5 || fragmented != 0 || produced != 1 {
		t.Errorf("collision row wrong: rule=%q tag=%q speed=%v fragmented=%d produced=%d",
			rule, tag, speed, fragmented, produced)
	}

	if err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_%'`,
	).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("got %d indices after close, want 3", n)
	}
}

func TestSQLiteRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taken.db")
	if err := os.WriteFile(path, []byte("not empty"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenSQLite(path); err == nil {
		t.Error("opening over an existing file should fail")
	}
}

func TestSQLiteEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM bodies`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("empty run wrote %d rows", n)
	}
}
