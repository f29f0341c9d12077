package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Registry owns a named set of folder ingestions sharing one identifier
// type and ticks them against a common source. Each (state, index) pair is
// still independently owned; the registry just drives them sequentially
// from whatever goroutine calls TickAll.
type Registry[ID comparable] struct {
	log        *zap.Logger
	makeID     func(string) ID
	folders    map[string]*Folder[ID]
	order      []string
	onTerminal func(Summary)
}

// NewRegistry creates an empty registry. makeID is shared by all folders
// added to it.
func NewRegistry[ID comparable](makeID func(string) ID, log *zap.Logger) *Registry[ID] {
	return &Registry[ID]{
		log:     log,
		makeID:  makeID,
		folders: make(map[string]*Folder[ID]),
	}
}

// Add registers a folder ingestion under cfg.Name and returns it. Adding a
// duplicate name returns an error.
func (r *Registry[ID]) Add(cfg Config) (*Folder[ID], error) {
	if _, exists := r.folders[cfg.Name]; exists {
		return nil, fmt.Errorf("folder %q already registered", cfg.Name)
	}
	f := NewFolder[ID](cfg, r.makeID, r.log)
	r.folders[cfg.Name] = f
	r.order = append(r.order, cfg.Name)
	return f, nil
}

// Get returns the folder registered under name.
func (r *Registry[ID]) Get(name string) (*Folder[ID], bool) {
	f, ok := r.folders[name]
	return f, ok
}

// Names returns the registered folder names in registration order.
func (r *Registry[ID]) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// OnTerminal sets a callback invoked with a folder's summary when that
// folder reaches its terminal state. Invoked at most once per folder.
func (r *Registry[ID]) OnTerminal(fn func(Summary)) {
	r.onTerminal = fn
}

// TickAll runs one reconciliation pass over every registered folder.
func (r *Registry[ID]) TickAll(src Source) {
	for _, name := range r.order {
		f := r.folders[name]
		if f.Tick(src) && r.onTerminal != nil {
			r.onTerminal(f.Summary())
		}
	}
}

// Converged reports whether every registered folder is terminal.
func (r *Registry[ID]) Converged() bool {
	for _, f := range r.folders {
		if !f.State().IsLoaded() {
			return false
		}
	}
	return true
}

// RunUntilConverged ticks all folders on the given interval until every
// folder is terminal or the context is cancelled.
func (r *Registry[ID]) RunUntilConverged(ctx context.Context, src Source, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		r.TickAll(src)
		if r.Converged() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
