package ingest

import "folder-ingest/core/assets"

// Index is the identifier to content-handle mapping produced by a folder
// ingestion. It grows monotonically until the folder converges and is never
// mutated by the loop afterwards.
type Index[ID comparable] struct {
	entries map[ID]assets.Handle
}

// NewIndex creates an empty index.
func NewIndex[ID comparable]() *Index[ID] {
	return &Index[ID]{entries: make(map[ID]assets.Handle)}
}

// Get returns the handle registered for an identifier.
func (i *Index[ID]) Get(id ID) (assets.Handle, bool) {
	h, ok := i.entries[id]
	return h, ok
}

// Insert registers a handle for an identifier and returns the previous
// handle if one existed. The reconciliation loop checks Contains before
// inserting, so it never overwrites; Insert still reports the prior value
// for callers that mutate the index manually.
func (i *Index[ID]) Insert(id ID, h assets.Handle) (assets.Handle, bool) {
	prev, existed := i.entries[id]
	i.entries[id] = h
	return prev, existed
}

// Contains reports whether an identifier is registered.
func (i *Index[ID]) Contains(id ID) bool {
	_, ok := i.entries[id]
	return ok
}

// Len returns the number of registered identifiers.
func (i *Index[ID]) Len() int {
	return len(i.entries)
}

// IsEmpty reports whether the index has no entries.
func (i *Index[ID]) IsEmpty() bool {
	return len(i.entries) == 0
}

// Keys returns all registered identifiers in no particular order.
func (i *Index[ID]) Keys() []ID {
	keys := make([]ID, 0, len(i.entries))
	for id := range i.entries {
		keys = append(keys, id)
	}
	return keys
}

// Range calls fn for every (identifier, handle) pair until fn returns
// false. Iteration order is unspecified.
func (i *Index[ID]) Range(fn func(id ID, h assets.Handle) bool) {
	for id, h := range i.entries {
		if !fn(id, h) {
			return
		}
	}
}
