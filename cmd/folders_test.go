package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folder-ingest/core/ingest"
)

func TestParseFolderSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    ingest.Config
		wantErr bool
	}{
		{
			name: "simple",
			spec: "spells=prefabs/spells:.spell.json",
			want: ingest.Config{Name: "spells", Path: "prefabs/spells", Suffix: ".spell.json"},
		},
		{
			name: "path with colon",
			spec: "items=C:/assets/items:.item.json",
			want: ingest.Config{Name: "items", Path: "C:/assets/items", Suffix: ".item.json"},
		},
		{name: "missing equals", spec: "prefabs/spells:.spell.json", wantErr: true},
		{name: "missing suffix", spec: "spells=prefabs/spells", wantErr: true},
		{name: "empty suffix", spec: "spells=prefabs/spells:", wantErr: true},
		{name: "empty name", spec: "=prefabs/spells:.spell.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFolderSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFolderSpecs(t *testing.T) {
	configs, err := parseFolderSpecs([]string{
		"spells=prefabs/spells:.spell.json",
		"items=prefabs/items:.item.json",
	})
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "spells", configs[0].Name)
	assert.Equal(t, "items", configs[1].Name)
}

func TestParseFolderSpecs_DuplicateName(t *testing.T) {
	_, err := parseFolderSpecs([]string{
		"spells=prefabs/spells:.spell.json",
		"spells=prefabs/other:.spell.json",
	})
	assert.ErrorContains(t, err, "duplicate folder name")
}

func TestParseFolderSpecs_Empty(t *testing.T) {
	_, err := parseFolderSpecs(nil)
	assert.Error(t, err)
}
