package ingest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"folder-ingest/core/assets"
	"folder-ingest/core/ident"
)

// fakeSource is a scriptable Source: tests flip discovery availability and
// per-handle states between ticks and observe which handles get queried.
type fakeSource struct {
	discovered   bool
	listing      []assets.FileEntry
	states       map[assets.Handle]assets.LoadState
	unrealized   map[assets.Handle]bool
	requested    []string
	stateQueries map[assets.Handle]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		states:       make(map[assets.Handle]assets.LoadState),
		unrealized:   make(map[assets.Handle]bool),
		stateQueries: make(map[assets.Handle]int),
	}
}

func (s *fakeSource) add(path string, state assets.LoadState) assets.Handle {
	h := assets.Handle(fmt.Sprintf("h-%d", len(s.listing)))
	s.listing = append(s.listing, assets.FileEntry{Path: path, Handle: h})
	s.states[h] = state
	return h
}

func (s *fakeSource) RequestDiscovery(folderPath string) assets.Token {
	s.requested = append(s.requested, folderPath)
	return assets.Token(fmt.Sprintf("t-%d", len(s.requested)))
}

func (s *fakeSource) Discovery(t assets.Token) ([]assets.FileEntry, bool) {
	if !s.discovered {
		return nil, false
	}
	return s.listing, true
}

func (s *fakeSource) State(h assets.Handle) assets.LoadState {
	s.stateQueries[h]++
	return s.states[h]
}

func (s *fakeSource) Ready(h assets.Handle) bool {
	return !s.unrealized[h]
}

func newTestFolder(t *testing.T) *Folder[string] {
	t.Helper()
	cfg := Config{Name: "spells", Path: "prefabs/spells", Suffix: ".spell.json"}
	return NewFolder[string](cfg, func(s string) string { return s }, zap.NewNop())
}

func TestTick_RequestsDiscoveryOnFirstPass(t *testing.T) {
	f := newTestFolder(t)
	src := newFakeSource()

	terminal := f.Tick(src)
	assert.False(t, terminal)
	assert.Equal(t, []string{"prefabs/spells"}, src.requested)
	assert.True(t, f.State().IsLoading())
	assert.False(t, f.State().IsLoaded())

	// Discovery result not available yet: passes are no-ops.
	terminal = f.Tick(src)
	assert.False(t, terminal)
	assert.Len(t, src.requested, 1, "discovery must be requested once")
	assert.Empty(t, src.stateQueries)
}

func TestTick_EmptyFolderConverges(t *testing.T) {
	f := newTestFolder(t)
	src := newFakeSource()
	src.discovered = true

	f.Tick(src)
	terminal := f.Tick(src)

	assert.True(t, terminal)
	assert.True(t, f.State().IsLoaded())
	assert.Equal(t, 0, f.Index().Len())
}

func TestTick_EndToEnd(t *testing.T) {
	f := newTestFolder(t)
	src := newFakeSource()
	src.discovered = true

	src.add("prefabs/spells/a.spell.json", assets.StateLoaded)
	src.add("prefabs/spells/b.spell.json", assets.StateFailed)
	src.add("prefabs/spells/.c.spell.json", assets.StateLoaded)
	src.add("prefabs/spells/_d.spell.json", assets.StateLoaded)

	f.Tick(src) // requests discovery
	terminal := f.Tick(src)

	assert.True(t, terminal)
	assert.True(t, f.State().IsLoaded())
	assert.Equal(t, 1, f.Index().Len())
	assert.True(t, f.Index().Contains("a"))
	assert.Equal(t, []string{"prefabs/spells/b.spell.json"}, f.State().QuarantinedPaths())

	summary := f.Summary()
	assert.Equal(t, 1, summary.Loaded)
	assert.Equal(t, 1, summary.Quarantined)
}

func TestTick_Convergence(t *testing.T) {
	f := newTestFolder(t)
	src := newFakeSource()
	src.discovered = true

	// Three files complete across successive passes in mixed order.
	fast := src.add("prefabs/spells/fast.spell.json", assets.StateLoaded)
	slow := src.add("prefabs/spells/slow.spell.json", assets.StateNotStarted)
	bad := src.add("prefabs/spells/bad.spell.json", assets.StateInProgress)

	f.Tick(src)

	assert.False(t, f.Tick(src))
	assert.Equal(t, 1, f.Index().Len())
	assert.False(t, f.State().IsLoaded())

	src.states[slow] = assets.StateInProgress
	src.states[bad] = assets.StateFailed
	assert.False(t, f.Tick(src))
	assert.Equal(t, 1, f.Index().Len())
	assert.Equal(t, []string{"prefabs/spells/bad.spell.json"}, f.State().QuarantinedPaths())

	src.states[slow] = assets.StateLoaded
	assert.True(t, f.Tick(src))
	assert.Equal(t, 2, f.Index().Len())
	assert.True(t, f.Index().Contains("fast"))
	assert.True(t, f.Index().Contains("slow"))

	_ = fast
}

func TestTick_IdempotentAfterTerminal(t *testing.T) {
	f := newTestFolder(t)
	src := newFakeSource()
	src.discovered = true
	src.add("prefabs/spells/a.spell.json", assets.StateLoaded)

	f.Tick(src)
	require.True(t, f.Tick(src))

	keys := f.Index().Keys()
	quarantined := f.State().QuarantinedPaths()
	queries := len(src.stateQueries)

	for i := 0; i < 5; i++ {
		assert.False(t, f.Tick(src))
	}

	assert.Equal(t, keys, f.Index().Keys())
	assert.Equal(t, quarantined, f.State().QuarantinedPaths())
	assert.Len(t, src.stateQueries, queries, "terminal passes must not query the loader")
	assert.True(t, f.State().IsLoaded())
	assert.False(t, f.State().IsLoading())
}

func TestTick_QuarantinedPathsNeverRequeried(t *testing.T) {
	f := newTestFolder(t)
	src := newFakeSource()
	src.discovered = true

	bad := src.add("prefabs/spells/bad.spell.json", assets.StateFailed)
	slow := src.add("prefabs/spells/slow.spell.json", assets.StateInProgress)

	f.Tick(src)
	f.Tick(src) // bad quarantined, slow pending
	assert.Equal(t, 1, src.stateQueries[bad])

	f.Tick(src)
	f.Tick(src)
	assert.Equal(t, 1, src.stateQueries[bad], "quarantined path must not be re-queried")

	src.states[slow] = assets.StateLoaded
	assert.True(t, f.Tick(src))
	assert.Equal(t, 1, src.stateQueries[bad])
	assert.Equal(t, 1, f.Index().Len())
}

func TestTick_LoadedButUnrealizedCountsPending(t *testing.T) {
	f := newTestFolder(t)
	src := newFakeSource()
	src.discovered = true

	h := src.add("prefabs/spells/a.spell.json", assets.StateLoaded)
	src.unrealized[h] = true

	f.Tick(src)
	assert.False(t, f.Tick(src))
	assert.Equal(t, 0, f.Index().Len())
	assert.False(t, f.State().IsLoaded())

	src.unrealized[h] = false
	assert.True(t, f.Tick(src))
	assert.Equal(t, 1, f.Index().Len())
}

func TestTick_CollisionFirstRegisteredWins(t *testing.T) {
	f := newTestFolder(t)
	src := newFakeSource()
	src.discovered = true

	// Two distinct paths derive the same stem. The first to resolve wins;
	// the second is silently dropped.
	first := src.add("prefabs/spells/base/fire.spell.json", assets.StateLoaded)
	second := src.add("prefabs/spells/extra/fire.spell.json", assets.StateInProgress)

	f.Tick(src)
	f.Tick(src)
	require.Equal(t, 1, f.Index().Len())

	src.states[second] = assets.StateLoaded
	assert.True(t, f.Tick(src))
	assert.Equal(t, 1, f.Index().Len())

	h, ok := f.Index().Get("fire")
	require.True(t, ok)
	assert.Equal(t, first, h)
	assert.Empty(t, f.State().QuarantinedPaths(), "a collision is not an error")
}

func TestTick_IndexLenMonotone(t *testing.T) {
	f := newTestFolder(t)
	src := newFakeSource()
	src.discovered = true

	handles := make([]assets.Handle, 0, 4)
	for i := 0; i < 4; i++ {
		h := src.add(fmt.Sprintf("prefabs/spells/s%d.spell.json", i), assets.StateInProgress)
		handles = append(handles, h)
	}

	f.Tick(src)

	prev := 0
	for i, h := range handles {
		src.states[h] = assets.StateLoaded
		f.Tick(src)
		assert.GreaterOrEqual(t, f.Index().Len(), prev)
		prev = f.Index().Len()
		assert.Equal(t, i+1, prev)
	}
	assert.True(t, f.State().IsLoaded())
}

func TestTick_HashIDConstructor(t *testing.T) {
	cfg := Config{Name: "spells", Path: "prefabs/spells", Suffix: ".spell.json"}
	f := NewFolder[uint64](cfg, ident.HashID, zap.NewNop())

	src := newFakeSource()
	src.discovered = true
	src.add("prefabs/spells/a.spell.json", assets.StateLoaded)

	f.Tick(src)
	assert.True(t, f.Tick(src))
	assert.True(t, f.Index().Contains(ident.HashID("a")))
}
