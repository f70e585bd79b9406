package record

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/quillaja/spacesim/internal/sim"
)

// Snapshot is the complete persisted state of a world. Unlike frames it
// keeps full precision and trails, so a restored run continues exactly
// where this one stopped.
type Snapshot struct {
	SavedAt  time.Time
	Tick     uint64
	IDSeq    uint64
	Settings sim.Settings
	Bodies   []sim.Body
}

// TakeSnapshot copies the world's state. Trail arrays are deep-copied so
// the snapshot stays frozen while the world keeps stepping.
func TakeSnapshot(w *sim.World) *Snapshot {
	s := &Snapshot{
		SavedAt:  time.Now(),
		Tick:     w.Tick(),
		IDSeq:    w.IDSeq(),
		Settings: w.Settings,
		Bodies:   make([]sim.Body, len(w.Bodies)),
	}
	for i, b := range w.Bodies {
		s.Bodies[i] = *b.Clone()
	}
	return s
}

// Restore builds a live world from the snapshot.
func (s *Snapshot) Restore(r sim.Resolver) (*sim.World, error) {
	return sim.Restore(s.Settings, s.Bodies, s.Tick, s.IDSeq, r)
}

// SaveSnapshot writes the snapshot to path as a gob file, overwriting.
func SaveSnapshot(path string, s *Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("record: create snapshot %s: %w", path, err)
	}
	if err := gob.NewEncoder(file).Encode(s); err != nil {
		file.Close()
		return fmt.Errorf("record: encode snapshot %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("record: close snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("record: open snapshot %s: %w", path, err)
	}
	defer file.Close()
	var s Snapshot
	if err := gob.NewDecoder(file).Decode(&s); err != nil {
		return nil, fmt.Errorf("record: decode snapshot %s: %w", path, err)
	}
	return &s, nil
}
