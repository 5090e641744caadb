package dataset

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Entry is a registered, named in-memory dataset plus its assigned ID.
type Entry struct {
	ID   string
	Name string
	Rows []Row
}

// Registry is a thread-safe in-memory collection of named datasets,
// replacing the teacher's SQLite-backed table-stats bookkeeping now that
// the engine never materializes a row store outside of memory.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register assigns a fresh ID to rows under name, replacing any existing
// dataset of the same name.
func (r *Registry) Register(name string, rows []Row) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := &Entry{ID: uuid.NewString(), Name: name, Rows: rows}
	r.entries[name] = e
	return e
}

// Get looks up a dataset by name.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// List returns every registered dataset's name, ID, and row count, sorted
// by name.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, Entry{ID: e.ID, Name: e.Name, Rows: e.Rows})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ErrNotFound is returned by callers that need a sentinel for a missing
// dataset name; Registry itself reports absence via Get's bool.
var ErrNotFound = fmt.Errorf("dataset: not found")
