// Package sketchstore registers named probabilistic sketches built over
// dataset columns. It is deliberately standalone: nothing in pkg/executor
// consults it, matching the reference implementation's sketches, which
// exist as library primitives the query pipeline never calls into.
package sketchstore

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/approxql/aqe/internal/config"
	"github.com/approxql/aqe/pkg/dataset"
	"github.com/approxql/aqe/pkg/sketches"
)

// Entry is a registered sketch: its assigned ID, the dataset/column it
// was built from, and the sketch itself.
type Entry struct {
	ID     string
	Table  string
	Column string
	Type   sketches.SketchType
	Sketch sketches.Sketch
}

// Store is a thread-safe collection of registered sketches. The shape of
// every sketch it builds on demand (Count-Min depth/width, Bloom filter
// bit count) comes from the SketchesConfig it was constructed with.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	cfg     config.SketchesConfig
}

// New constructs an empty Store that builds sketches shaped by cfg.
func New(cfg config.SketchesConfig) *Store {
	return &Store{entries: make(map[string]*Entry), cfg: cfg}
}

// BuildHyperLogLog scans column across rows and registers a HyperLogLog
// cardinality sketch under table/column.
func (s *Store) BuildHyperLogLog(table, column string, rows []dataset.Row) *Entry {
	hll := sketches.NewHyperLogLog()
	for _, row := range rows {
		if v, ok := row[column]; ok {
			hll.Add(v)
		}
	}
	return s.register(table, column, sketches.HyperLogLogType, hll)
}

// BuildCountMinSketch scans column across rows and registers a Count-Min
// frequency sketch under table/column, shaped by the store's configured
// depth and width.
func (s *Store) BuildCountMinSketch(table, column string, rows []dataset.Row) *Entry {
	cms := sketches.NewCountMinSketch(s.cfg.CountMinDepth, s.cfg.CountMinWidth)
	for _, row := range rows {
		if v, ok := row[column]; ok {
			cms.Add(v, 1)
		}
	}
	return s.register(table, column, sketches.CountMinSketchType, cms)
}

// BuildBloomFilter scans column across rows and registers a Bloom filter
// membership sketch under table/column, sized by the store's configured
// bit count.
func (s *Store) BuildBloomFilter(table, column string, rows []dataset.Row) *Entry {
	bf := sketches.NewBloomFilter(s.cfg.BloomBits)
	for _, row := range rows {
		if v, ok := row[column]; ok {
			bf.Add(v)
		}
	}
	return s.register(table, column, sketches.BloomFilterType, bf)
}

func (s *Store) register(table, column string, t sketches.SketchType, sk sketches.Sketch) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &Entry{ID: uuid.NewString(), Table: table, Column: column, Type: t, Sketch: sk}
	s.entries[e.ID] = e
	return e
}

// Get looks up a registered sketch by ID.
func (s *Store) Get(id string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// List returns every registered sketch, in no particular order.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

// ErrUnsupportedSketchType names a sketch type the store does not know how
// to build on demand. The HTTP handlers do not return it; CreateSketch
// answers an unsupported type with a 400 and its own error message.
var ErrUnsupportedSketchType = fmt.Errorf("sketchstore: unsupported sketch type")
