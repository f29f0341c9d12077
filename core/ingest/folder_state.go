package ingest

import (
	"sort"

	"folder-ingest/core/assets"
)

// FolderState tracks one folder's progress through ingestion: whether
// discovery has been requested, whether the folder has converged, and the
// permanent set of file paths that failed to load.
//
// The state only moves forward: the discovery token is set once, terminal
// flips false to true at most once, and the quarantine set is append-only.
// It is mutated exclusively by the reconciliation loop.
type FolderState struct {
	token       assets.Token
	terminal    bool
	quarantined map[string]struct{}
}

// NewFolderState creates the initial (not started) state.
func NewFolderState() *FolderState {
	return &FolderState{quarantined: make(map[string]struct{})}
}

// IsLoading reports whether discovery has been requested and the folder has
// not yet converged.
func (s *FolderState) IsLoading() bool {
	return s.token != "" && !s.terminal
}

// IsLoaded reports whether the folder has converged.
func (s *FolderState) IsLoaded() bool {
	return s.terminal
}

// Quarantined reports whether a path has been permanently excluded.
func (s *FolderState) Quarantined(path string) bool {
	_, ok := s.quarantined[path]
	return ok
}

// QuarantinedPaths returns a sorted copy of the quarantine set.
func (s *FolderState) QuarantinedPaths() []string {
	paths := make([]string, 0, len(s.quarantined))
	for path := range s.quarantined {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// quarantine adds a path to the quarantine set. Adding is idempotent; a
// path enters the set at most once.
func (s *FolderState) quarantine(path string) {
	s.quarantined[path] = struct{}{}
}
