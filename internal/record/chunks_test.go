package record

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChunkStoreFlushBoundaries(t *testing.T) {
	dir := t.TempDir()
	c, err := NewChunkStore(dir, 2)
	if err != nil {
		t.Fatal(err)
	}
	for tick := uint64(1); tick <= 5; tick++ {
		c.Record(testFrame(tick))
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	// full chunks at frames 2 and 4, remainder flushed at close
	want := []string{"0000000002.chunk", "0000000004.chunk", "0000000005.chunk"}
	if len(names) != len(want) {
		t.Fatalf("got files %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got files %v, want %v", names, want)
		}
	}
}

func TestChunkRoundtrip(t *testing.T) {
	dir := t.TempDir()
	c, err := NewChunkStore(dir, 10)
	if err != nil {
		t.Fatal(err)
	}
	c.Record(testFrame(7))
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	idx, err := ReadChunk(filepath.Join(dir, "0000000007.chunk"))
	if err != nil {
		t.Fatal(err)
	}
	rows, ok := idx[7]
	if !ok {
		t.Fatalf("chunk missing frame 7, has %v", idx)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d bodies, want 2", len(rows))
	}
	b := rows[1]
	if b.X != 10.6 || b.Y != -3.4 || b.Mass != 1000.4 || b.Radius != 60.2 {
		t.Errorf("body values not preserved: %+v", b)
	}
	if b.Category != uint8(testFrame(7).Bodies[0].Category) {
		t.Errorf("category byte = %d", b.Category)
	}
}

func TestChunkStoreRejectsBadSize(t *testing.T) {
	if _, err := NewChunkStore(t.TempDir(), 0); err == nil {
		t.Error("zero frames per chunk should fail")
	}
}

func TestReadChunkMissingFile(t *testing.T) {
	if _, err := ReadChunk(filepath.Join(t.TempDir(), "nope.chunk")); err == nil {
		t.Error("missing chunk should fail")
	}
}
