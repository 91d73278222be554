// Package registry maps overlay ids to their definitions.
package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/riordanpawley/overlayctl/internal/domain"
)

// Registry is a mutable id -> Definition map with last-writer-wins semantics.
// Entries are never removed: supplying a new overlay list re-inserts its
// entries but leaves ids from earlier lists in place. Several providers may
// share one Registry, in which case a later supplier with an overlapping id
// masks the earlier definition.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]domain.Definition

	subsMu sync.Mutex
	subs   map[int]func()
	nextID int

	logger *slog.Logger
}

// New creates an empty registry.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		entries: make(map[string]domain.Definition),
		subs:    make(map[int]func()),
		logger:  logger,
	}
}

// Register inserts def, overwriting any previous definition with the same id.
func (r *Registry) Register(def domain.Definition) {
	r.mu.Lock()
	_, replaced := r.entries[def.ID]
	r.entries[def.ID] = def
	r.mu.Unlock()

	r.logger.Debug("overlay registered", "id", def.ID, "replaced", replaced)
	r.changed()
}

// Replace re-inserts every definition in order. Ids missing from defs are
// kept; when defs repeats an id the last entry wins.
func (r *Registry) Replace(defs []domain.Definition) {
	r.mu.Lock()
	for _, def := range defs {
		r.entries[def.ID] = def
	}
	r.mu.Unlock()

	r.logger.Debug("overlays re-registered", "count", len(defs))
	r.changed()
}

// Lookup returns the definition registered under id.
func (r *Registry) Lookup(id string) (domain.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.entries[id]
	return def, ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered ids.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Subscribe registers fn to run after every Register or Replace call.
func (r *Registry) Subscribe(fn func()) (cancel func()) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	return func() {
		r.subsMu.Lock()
		defer r.subsMu.Unlock()
		delete(r.subs, id)
	}
}

// changed notifies subscribers in subscription order, outside of any lock.
func (r *Registry) changed() {
	r.subsMu.Lock()
	ids := make([]int, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, r.subs[id])
	}
	r.subsMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
