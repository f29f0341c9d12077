package ingest

import (
	"go.uber.org/zap"

	"folder-ingest/core/assets"
	"folder-ingest/core/ident"
)

// Folder bundles everything one folder ingestion owns: the immutable
// configuration, the load state, the resulting index, and the identifier
// constructor. The caller owns one Folder per content type and ticks it
// from a single goroutine.
type Folder[ID comparable] struct {
	cfg    Config
	state  *FolderState
	index  *Index[ID]
	makeID func(string) ID
	log    *zap.Logger
}

// NewFolder creates a folder ingestion in the not-started state. makeID
// turns a filename stem into the caller's identifier type; it must be
// deterministic so that re-deriving an id on every pass is idempotent.
func NewFolder[ID comparable](cfg Config, makeID func(string) ID, log *zap.Logger) *Folder[ID] {
	return &Folder[ID]{
		cfg:    cfg,
		state:  NewFolderState(),
		index:  NewIndex[ID](),
		makeID: makeID,
		log:    log,
	}
}

// Config returns the folder's immutable configuration.
func (f *Folder[ID]) Config() Config {
	return f.cfg
}

// State returns the folder's load state for read access.
func (f *Folder[ID]) State() *FolderState {
	return f.state
}

// Index returns the folder's identifier index.
func (f *Folder[ID]) Index() *Index[ID] {
	return f.index
}

// Summary returns the folder's current counts.
func (f *Folder[ID]) Summary() Summary {
	return Summary{
		Folder:      f.cfg.Path,
		Name:        f.cfg.Name,
		Loaded:      f.index.Len(),
		Quarantined: len(f.state.quarantined),
	}
}

// Tick advances the ingestion by one reconciliation pass and reports
// whether the folder reached its terminal state during this pass.
//
// The pass never blocks and never fails: "cannot make progress yet" is a
// normal outcome expressed by returning early. Invoking Tick on a terminal
// folder is a no-op, any number of times.
func (f *Folder[ID]) Tick(src Source) bool {
	// Start discovery on the first pass. Discovery is asynchronous, so
	// classification begins on a later pass.
	if f.state.token == "" {
		f.state.token = src.RequestDiscovery(f.cfg.Path)
		f.log.Debug("Folder discovery requested",
			zap.String("folder", f.cfg.Path))
		return false
	}

	if f.state.terminal {
		return false
	}

	listing, ok := src.Discovery(f.state.token)
	if !ok {
		return false
	}

	pending := 0
	resolved := 0

	for _, entry := range listing {
		stem, ok := ident.Stem(entry.Path, f.cfg.Suffix)
		if !ok {
			// Not a candidate (wrong suffix, hidden, disabled). Extraction
			// is deterministic, so no tracking is needed to skip it on
			// every future pass.
			continue
		}
		id := f.makeID(stem)

		// Already registered, either on an earlier pass or by an earlier
		// file with the same stem (first-registered-wins).
		if f.index.Contains(id) {
			resolved++
			continue
		}

		// Quarantined paths are never re-queried.
		if f.state.Quarantined(entry.Path) {
			continue
		}

		switch src.State(entry.Handle) {
		case assets.StateLoaded:
			if !src.Ready(entry.Handle) {
				// Loader reports done but the store has not materialized
				// the value yet; re-check next pass.
				pending++
				continue
			}
			f.index.Insert(id, entry.Handle)
			resolved++
			f.log.Debug("Asset registered",
				zap.String("folder", f.cfg.Path),
				zap.String("path", entry.Path),
				zap.Any("id", id))
		case assets.StateFailed:
			f.state.quarantine(entry.Path)
			f.log.Warn("Asset failed to load and will be skipped",
				zap.String("path", entry.Path),
				zap.Any("id", id))
		default:
			// InProgress or NotStarted.
			pending++
		}
	}

	if pending > 0 {
		return false
	}

	f.state.terminal = true

	quarantined := len(f.state.quarantined)
	if quarantined == 0 {
		f.log.Info("Folder ingested",
			zap.String("folder", f.cfg.Path),
			zap.Int("loaded", resolved))
	} else {
		f.log.Warn("Folder ingested with failures",
			zap.String("folder", f.cfg.Path),
			zap.Int("loaded", resolved),
			zap.Int("total", resolved+quarantined),
			zap.Int("failed", quarantined))
	}

	return true
}
