package library

import (
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"folder-ingest/core/assets"
	"folder-ingest/core/ingest"
)

var (
	// ErrFolderNotFound is returned for unknown folder names.
	ErrFolderNotFound = errors.New("folder not found")
	// ErrAssetNotFound is returned for identifiers absent from the index.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrNotRealized is returned when an indexed asset's content is not
	// retrievable from the store yet.
	ErrNotRealized = errors.New("asset content not realized")
)

// ContentStore is the read side of the loading subsystem's content store.
type ContentStore interface {
	Get(h assets.Handle) (any, bool)
}

// FolderStatus is the public view of one folder's ingestion progress.
type FolderStatus struct {
	Name        string `json:"name"`
	Folder      string `json:"folder"`
	Suffix      string `json:"suffix"`
	Loading     bool   `json:"loading"`
	Loaded      bool   `json:"loaded"`
	Assets      int    `json:"assets"`
	Quarantined int    `json:"quarantined"`
}

// FolderDetail extends FolderStatus with keys and quarantined paths.
type FolderDetail struct {
	FolderStatus
	Keys             []string `json:"keys"`
	QuarantinedPaths []string `json:"quarantined_paths"`
}

// Service exposes read-only queries over the ingestion registry.
//
// The reconciliation loop owns the registry single-threaded; the shared
// RWMutex lets HTTP readers observe it safely between ticks.
type Service struct {
	registry *ingest.Registry[string]
	store    ContentStore
	mu       *sync.RWMutex
	logger   *zap.Logger
}

// NewService creates a new library service. mu must be the same mutex the
// tick loop write-locks around TickAll.
func NewService(registry *ingest.Registry[string], store ContentStore, mu *sync.RWMutex, logger *zap.Logger) *Service {
	return &Service{
		registry: registry,
		store:    store,
		mu:       mu,
		logger:   logger,
	}
}

// Folders returns the status of every registered folder in registration
// order.
func (s *Service) Folders() []FolderStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := s.registry.Names()
	statuses := make([]FolderStatus, 0, len(names))
	for _, name := range names {
		f, ok := s.registry.Get(name)
		if !ok {
			continue
		}
		statuses = append(statuses, status(f))
	}
	return statuses
}

// Folder returns the detailed view of one folder.
func (s *Service) Folder(name string) (*FolderDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.registry.Get(name)
	if !ok {
		return nil, ErrFolderNotFound
	}

	keys := f.Index().Keys()
	sort.Strings(keys)

	return &FolderDetail{
		FolderStatus:     status(f),
		Keys:             keys,
		QuarantinedPaths: f.State().QuarantinedPaths(),
	}, nil
}

// Asset returns the realized content registered under id in a folder.
func (s *Service) Asset(name, id string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.registry.Get(name)
	if !ok {
		return nil, ErrFolderNotFound
	}

	h, ok := f.Index().Get(id)
	if !ok {
		return nil, ErrAssetNotFound
	}

	content, ok := s.store.Get(h)
	if !ok {
		// Indexed entries are inserted only after the store realizes the
		// value, so this indicates an external store mutation.
		s.logger.Warn("Indexed asset missing from store",
			zap.String("folder", name),
			zap.String("id", id))
		return nil, ErrNotRealized
	}

	return content, nil
}

func status(f *ingest.Folder[string]) FolderStatus {
	cfg := f.Config()
	summary := f.Summary()
	return FolderStatus{
		Name:        cfg.Name,
		Folder:      cfg.Path,
		Suffix:      cfg.Suffix,
		Loading:     f.State().IsLoading(),
		Loaded:      f.State().IsLoaded(),
		Assets:      summary.Loaded,
		Quarantined: summary.Quarantined,
	}
}
