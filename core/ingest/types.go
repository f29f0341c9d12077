package ingest

import "folder-ingest/core/assets"

// Source is the engine's view of the asynchronous loading subsystem. The
// engine only ever polls it; it never blocks on it and never drives loads
// directly.
type Source interface {
	// RequestDiscovery starts an asynchronous folder enumeration and
	// returns the token identifying the request.
	RequestDiscovery(folderPath string) assets.Token

	// Discovery returns the member listing for a token, or ok == false
	// while the enumeration has not completed.
	Discovery(t assets.Token) ([]assets.FileEntry, bool)

	// State returns the per-file load state for a handle.
	State(h assets.Handle) assets.LoadState

	// Ready reports whether the handle's content is realized in the
	// loader's store. A handle may report Loaded before its content is
	// retrievable.
	Ready(h assets.Handle) bool
}

// Config describes one folder ingestion. It is immutable for the lifetime
// of the folder's state.
type Config struct {
	// Name identifies the ingestion for registry lookups and reporting.
	Name string
	// Path is the folder to ingest, in the source's path space.
	Path string
	// Suffix is the filename suffix files must carry to be candidates,
	// including the leading dot (e.g. ".spell.json").
	Suffix string
}

// Summary is the terminal report for one folder ingestion.
type Summary struct {
	// Folder is the ingested folder path.
	Folder string `json:"folder"`
	// Name is the registry name of the ingestion.
	Name string `json:"name"`
	// Loaded is the number of index entries at convergence.
	Loaded int `json:"loaded"`
	// Quarantined is the number of permanently failed paths.
	Quarantined int `json:"quarantined"`
}
