package record

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

/*
positions, masses and radii are rounded before insert: sqlite stores
whole REALs as integers, which roughly halves the file, and sub-unit
precision buys a renderer nothing. exact state lives in snapshots.

one writer goroutine only; sqlite allows a single writer at a time
anyway, and journaling is off since a recording is disposable output.
*/

const schema = `
CREATE TABLE bodies (
	frame    INTEGER,
	id       INTEGER,
	x        REAL,
	y        REAL,
	mass     REAL,
	radius   REAL,
	category TEXT,
	name     TEXT);

CREATE TABLE collisions (
	frame        INTEGER,
	body_a       INTEGER,
	body_b       INTEGER,
	rule         TEXT,
	tag          TEXT,
	impact_speed REAL,
	energy       REAL,
	fragmented   INTEGER,
	produced     INTEGER);
`

const indices = `
CREATE INDEX idx_bodies_frame ON bodies (frame, id);
CREATE INDEX idx_bodies_id ON bodies (id);
CREATE INDEX idx_collisions_frame ON collisions (frame);
`

const insertBody = `INSERT INTO bodies VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
const insertCollision = `INSERT INTO collisions VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

// SQLite records frames into a database file, one transaction per frame.
// Indices are created at Close so inserts stay fast for the whole run.
type SQLite struct {
	db     *sql.DB
	frames chan *Frame
	wg     sync.WaitGroup

	mu  sync.Mutex
	err error
}

// OpenSQLite creates the database and starts the writer. It refuses to
// touch an existing file so two runs can never interleave in one db.
func OpenSQLite(path string) (*SQLite, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("record: %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("record: stat %s: %w", path, err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?_journal_mode=OFF&_synchronous=OFF")
	if err != nil {
		return nil, fmt.Errorf("record: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("record: create tables: %w", err)
	}
	s := &SQLite{
		db:     db,
		frames: make(chan *Frame, 64),
	}
	s.wg.Add(1)
	go s.writeLoop()
	return s, nil
}

// Record queues a frame for writing.
func (s *SQLite) Record(f *Frame) {
	s.frames <- f
}

// Close flushes queued frames, builds the indices, and closes the file.
// Returns the first error the writer hit, if any.
func (s *SQLite) Close() error {
	close(s.frames)
	s.wg.Wait()
	if _, err := s.db.Exec(indices); err != nil {
		s.setErr(fmt.Errorf("record: create indices: %w", err))
	}
	if err := s.db.Close(); err != nil {
		s.setErr(fmt.Errorf("record: close: %w", err))
	}
	return s.Err()
}

// Err returns the first write error, or nil.
func (s *SQLite) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *SQLite) setErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

// writeLoop drains the frame channel. After a failure it keeps draining
// and discarding so the producer never blocks on a dead sink.
func (s *SQLite) writeLoop() {
	defer s.wg.Done()
	for f := range s.frames {
		if s.Err() != nil {
			continue
		}
		if err := s.writeFrame(f); err != nil {
			s.setErr(err)
		}
	}
}

func (s *SQLite) writeFrame(f *Frame) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("record: begin frame %d: %w", f.Tick, err)
	}
	bstmt, err := tx.Prepare(insertBody)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("record: prepare frame %d: %w", f.Tick, err)
	}
	for i := range f.Bodies {
		b := &f.Bodies[i]
		_, err = bstmt.Exec(
			f.Tick,
			b.ID,
			math.Round(b.Pos.X()),
			math.Round(b.Pos.Y()),
			math.Round(b.Mass),
			math.Round(b.Radius),
			b.Category.String(),
			b.Name)
		if err != nil {
			break
		}
	}
	bstmt.Close()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("record: insert frame %d: %w", f.Tick, err)
	}
	cstmt, err := tx.Prepare(insertCollision)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("record: prepare frame %d: %w", f.Tick, err)
	}
	for _, res := range f.Results {
		_, err = cstmt.Exec(
			f.Tick,
			res.Event.A.ID,
			res.Event.B.ID,
			res.Rule,
			res.Tag,
			res.Event.ImpactSpeed,
			res.Event.Energy,
			res.Fragmented,
			len(res.Created))
		if err != nil {
			break
		}
	}
	cstmt.Close()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("record: insert collisions frame %d: %w", f.Tick, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record: commit frame %d: %w", f.Tick, err)
	}
	return nil
}
