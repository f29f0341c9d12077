package assets

// Handle is an opaque reference to a single file's content slot in a
// loading server. Handles are minted by the server at discovery time and
// stay valid for the lifetime of the process.
type Handle string

// Token is an opaque reference to an in-flight folder discovery request.
// The zero value means no discovery has been requested.
type Token string

// LoadState describes the loading progress of a single handle.
type LoadState int

const (
	// StateNotStarted means the load has not been scheduled yet.
	StateNotStarted LoadState = iota
	// StateInProgress means the load is running.
	StateInProgress
	// StateLoaded means the load finished successfully.
	StateLoaded
	// StateFailed means the load finished with an error. Failed handles
	// are never retried.
	StateFailed
)

// String returns a human-readable name for the state.
func (s LoadState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileEntry is one member of a discovered folder listing.
type FileEntry struct {
	// Path is the file's path as reported by the backing store.
	Path string
	// Handle references the file's content slot.
	Handle Handle
}

// Decoder turns raw file bytes into a realized content value.
type Decoder func(data []byte) (any, error)

// Config holds configuration for a loading server.
type Config struct {
	// Workers is the number of concurrent file loads.
	Workers int `mapstructure:"workers" default:"4"`
}
