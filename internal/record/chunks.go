package record

import (
	"compress/zlib"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ChunkBody is the compact per-body row stored in chunk files. float32
// halves the on-disk size and renderers do not need double precision.
type ChunkBody struct {
	X, Y         float32
	Mass, Radius float32
	Category     uint8
}

// ChunkIndex maps frame -> body id -> compact body for one chunk file.
type ChunkIndex map[uint64]map[uint64]ChunkBody

// ChunkStore writes frames into fixed-size compressed chunk files named
// by their highest frame, e.g. 0000000099.chunk. Frames arrive in order
// from the single producer, so a chunk flushes as soon as it fills.
type ChunkStore struct {
	dir      string
	perChunk int

	frames chan *Frame
	wg     sync.WaitGroup

	mu  sync.Mutex
	err error

	pending   ChunkIndex
	lastFrame uint64
}

// NewChunkStore creates dir if needed and starts the writer. framesPerChunk
// trades file count against the memory held before each flush.
func NewChunkStore(dir string, framesPerChunk int) (*ChunkStore, error) {
	if framesPerChunk <= 0 {
		return nil, fmt.Errorf("record: frames per chunk must be positive, got %d", framesPerChunk)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("record: create %s: %w", dir, err)
	}
	c := &ChunkStore{
		dir:      dir,
		perChunk: framesPerChunk,
		frames:   make(chan *Frame, 64),
		pending:  make(ChunkIndex, framesPerChunk),
	}
	c.wg.Add(1)
	go c.writeLoop()
	return c, nil
}

// Record queues a frame for the next chunk.
func (c *ChunkStore) Record(f *Frame) {
	c.frames <- f
}

// Close flushes the partial final chunk and reports the first write error.
func (c *ChunkStore) Close() error {
	close(c.frames)
	c.wg.Wait()
	return c.Err()
}

// Err returns the first write error, or nil.
func (c *ChunkStore) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *ChunkStore) setErr(err error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

func (c *ChunkStore) writeLoop() {
	defer c.wg.Done()
	for f := range c.frames {
		if c.Err() != nil {
			continue
		}
		c.add(f)
		if len(c.pending) >= c.perChunk {
			if err := c.flush(); err != nil {
				c.setErr(err)
			}
		}
	}
	if c.Err() == nil && len(c.pending) > 0 {
		if err := c.flush(); err != nil {
			c.setErr(err)
		}
	}
}

func (c *ChunkStore) add(f *Frame) {
	rows := make(map[uint64]ChunkBody, len(f.Bodies))
	for i := range f.Bodies {
		b := &f.Bodies[i]
		rows[b.ID] = ChunkBody{
			X:        float32(b.Pos.X()),
			Y:        float32(b.Pos.Y()),
			Mass:     float32(b.Mass),
			Radius:   float32(b.Radius),
			Category: uint8(b.Category),
		}
	}
	c.pending[f.Tick] = rows
	c.lastFrame = f.Tick
}

// flush writes the pending frames as one zlib-compressed gob and resets
// the buffer. The file is named after the highest frame it holds.
func (c *ChunkStore) flush() error {
	path := filepath.Join(c.dir, fmt.Sprintf("%010d.chunk", c.lastFrame))
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("record: create chunk %s: %w", path, err)
	}
	zw := zlib.NewWriter(file)
	if err := gob.NewEncoder(zw).Encode(c.pending); err != nil {
		zw.Close()
		file.Close()
		return fmt.Errorf("record: encode chunk %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		file.Close()
		return fmt.Errorf("record: compress chunk %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("record: close chunk %s: %w", path, err)
	}
	c.pending = make(ChunkIndex, c.perChunk)
	return nil
}

// ReadChunk loads one chunk file back into memory. Renderers and the
// inspect command use it; the simulation never reads chunks.
func ReadChunk(path string) (ChunkIndex, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("record: open chunk %s: %w", path, err)
	}
	defer file.Close()
	zr, err := zlib.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("record: decompress chunk %s: %w", path, err)
	}
	defer zr.Close()
	var idx ChunkIndex
	if err := gob.NewDecoder(zr).Decode(&idx); err != nil {
		return nil, fmt.Errorf("record: decode chunk %s: %w", path, err)
	}
	return idx, nil
}
