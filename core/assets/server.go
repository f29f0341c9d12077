package assets

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend enumerates folders and reads file bytes for a Server. The two
// shipped backends are the local filesystem (DirBackend) and an object
// store bucket (ObjectBackend).
type Backend interface {
	// List returns the paths of the member files of a folder.
	List(folderPath string) ([]string, error)
	// Read returns the raw bytes of one file.
	Read(path string) ([]byte, error)
}

// Server is the asynchronous loading subsystem.
//
// Discovery enumerates a folder once and snapshots its member files; each
// member is then read and decoded on a bounded worker pool. Callers observe
// progress exclusively through non-blocking state queries, so the server
// never blocks its consumers and never retries a failed load.
type Server struct {
	backend Backend
	log     *zap.Logger
	workers chan struct{}

	mu       sync.Mutex
	decoders map[string]Decoder
	listings map[Token][]FileEntry
	states   map[Handle]LoadState
	content  map[Handle]any
	paths    map[Handle]string
}

// NewServer creates a loading server over the given backend.
func NewServer(cfg Config, backend Backend, log *zap.Logger) *Server {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Server{
		backend:  backend,
		log:      log,
		workers:  make(chan struct{}, workers),
		decoders: make(map[string]Decoder),
		listings: make(map[Token][]FileEntry),
		states:   make(map[Handle]LoadState),
		content:  make(map[Handle]any),
		paths:    make(map[Handle]string),
	}
}

// RegisterDecoder associates a filename suffix with a decoder. The longest
// matching suffix wins when a file matches several registrations. Files
// with no matching decoder realize their raw bytes.
func (s *Server) RegisterDecoder(suffix string, d Decoder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decoders[suffix] = d
}

// RequestDiscovery starts an asynchronous enumeration of folderPath and
// returns the token identifying the request. The member list is a one-shot
// snapshot; files added to the folder afterwards are not seen.
func (s *Server) RequestDiscovery(folderPath string) Token {
	t := Token(uuid.NewString())
	go s.discover(t, folderPath)
	return t
}

// Discovery returns the member listing for a token, or ok == false while
// the enumeration is still running.
func (s *Server) Discovery(t Token) ([]FileEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[t]
	return listing, ok
}

// State returns the load state for a handle. Unknown handles report
// StateNotStarted.
func (s *Server) State(h Handle) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[h]
}

// Ready reports whether the handle's content has been realized in the
// store. A handle can report Loaded before its content is visible to a
// consumer; polling Ready closes that gap.
func (s *Server) Ready(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.content[h]
	return ok
}

// Get returns the realized content for a handle.
func (s *Server) Get(h Handle) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.content[h]
	return c, ok
}

// Path returns the file path a handle was discovered under.
func (s *Server) Path(h Handle) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.paths[h]
	return p, ok
}

func (s *Server) discover(t Token, folderPath string) {
	paths, err := s.backend.List(folderPath)
	if err != nil {
		s.log.Warn("Folder discovery failed",
			zap.String("folder", folderPath),
			zap.Error(err))
		s.mu.Lock()
		s.listings[t] = []FileEntry{}
		s.mu.Unlock()
		return
	}

	listing := make([]FileEntry, 0, len(paths))
	s.mu.Lock()
	for _, path := range paths {
		h := Handle(uuid.NewString())
		s.states[h] = StateNotStarted
		s.paths[h] = path
		listing = append(listing, FileEntry{Path: path, Handle: h})
	}
	s.mu.Unlock()

	for _, entry := range listing {
		go s.load(entry.Handle, entry.Path)
	}

	s.mu.Lock()
	s.listings[t] = listing
	s.mu.Unlock()

	s.log.Debug("Folder discovered",
		zap.String("folder", folderPath),
		zap.Int("files", len(listing)))
}

func (s *Server) load(h Handle, path string) {
	s.workers <- struct{}{}
	defer func() { <-s.workers }()

	s.mu.Lock()
	s.states[h] = StateInProgress
	decoder := s.decoderFor(filepath.Base(path))
	s.mu.Unlock()

	data, err := s.backend.Read(path)
	if err != nil {
		s.fail(h, path, err)
		return
	}

	var value any = data
	if decoder != nil {
		value, err = decoder(data)
		if err != nil {
			s.fail(h, path, err)
			return
		}
	}

	s.mu.Lock()
	s.content[h] = value
	s.states[h] = StateLoaded
	s.mu.Unlock()
}

func (s *Server) fail(h Handle, path string, err error) {
	s.mu.Lock()
	s.states[h] = StateFailed
	s.mu.Unlock()
	s.log.Warn("Asset load failed",
		zap.String("path", path),
		zap.Error(err))
}

// decoderFor picks the registered decoder with the longest suffix matching
// name. Caller must hold s.mu.
func (s *Server) decoderFor(name string) Decoder {
	var best string
	var found Decoder
	suffixes := make([]string, 0, len(s.decoders))
	for suffix := range s.decoders {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) && len(suffix) > len(best) {
			best = suffix
			found = s.decoders[suffix]
		}
	}
	return found
}
