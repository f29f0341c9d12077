package library

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"folder-ingest/core/assets"
	"folder-ingest/core/ingest"
)

// stubSource serves a fixed listing of already-loaded files.
type stubSource struct {
	listing []assets.FileEntry
	failed  map[assets.Handle]bool
}

func (s *stubSource) RequestDiscovery(folderPath string) assets.Token {
	return assets.Token("t-1")
}

func (s *stubSource) Discovery(t assets.Token) ([]assets.FileEntry, bool) {
	return s.listing, true
}

func (s *stubSource) State(h assets.Handle) assets.LoadState {
	if s.failed[h] {
		return assets.StateFailed
	}
	return assets.StateLoaded
}

func (s *stubSource) Ready(h assets.Handle) bool {
	return !s.failed[h]
}

type stubStore struct {
	content map[assets.Handle]any
}

func (s *stubStore) Get(h assets.Handle) (any, bool) {
	c, ok := s.content[h]
	return c, ok
}

// newConvergedService builds a registry with one converged "spells" folder
// holding assets a and b, with bad.spell.json quarantined.
func newConvergedService(t *testing.T) (*Service, *stubStore) {
	t.Helper()

	registry := ingest.NewRegistry[string](func(s string) string { return s }, zap.NewNop())
	_, err := registry.Add(ingest.Config{Name: "spells", Path: "prefabs/spells", Suffix: ".spell.json"})
	require.NoError(t, err)

	src := &stubSource{failed: make(map[assets.Handle]bool)}
	store := &stubStore{content: make(map[assets.Handle]any)}
	for i, name := range []string{"a", "b"} {
		h := assets.Handle(fmt.Sprintf("h-%d", i))
		src.listing = append(src.listing, assets.FileEntry{
			Path:   "prefabs/spells/" + name + ".spell.json",
			Handle: h,
		})
		store.content[h] = map[string]string{"name": name}
	}
	bad := assets.Handle("h-bad")
	src.listing = append(src.listing, assets.FileEntry{Path: "prefabs/spells/bad.spell.json", Handle: bad})
	src.failed[bad] = true

	registry.TickAll(src) // discovery
	registry.TickAll(src) // converges
	require.True(t, registry.Converged())

	var mu sync.RWMutex
	return NewService(registry, store, &mu, zap.NewNop()), store
}

func TestService_Folders(t *testing.T) {
	svc, _ := newConvergedService(t)

	statuses := svc.Folders()
	require.Len(t, statuses, 1)

	s := statuses[0]
	assert.Equal(t, "spells", s.Name)
	assert.Equal(t, "prefabs/spells", s.Folder)
	assert.True(t, s.Loaded)
	assert.False(t, s.Loading)
	assert.Equal(t, 2, s.Assets)
	assert.Equal(t, 1, s.Quarantined)
}

func TestService_Folder(t *testing.T) {
	svc, _ := newConvergedService(t)

	detail, err := svc.Folder("spells")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, detail.Keys)
	assert.Equal(t, []string{"prefabs/spells/bad.spell.json"}, detail.QuarantinedPaths)

	_, err = svc.Folder("unknown")
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestService_Asset(t *testing.T) {
	svc, store := newConvergedService(t)

	content, err := svc.Asset("spells", "a")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "a"}, content)

	_, err = svc.Asset("spells", "missing")
	assert.ErrorIs(t, err, ErrAssetNotFound)

	_, err = svc.Asset("unknown", "a")
	assert.ErrorIs(t, err, ErrFolderNotFound)

	// Simulate an external store mutation after indexing.
	for h := range store.content {
		delete(store.content, h)
	}
	_, err = svc.Asset("spells", "a")
	assert.ErrorIs(t, err, ErrNotRealized)
}
