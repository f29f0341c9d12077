package cmd

import (
	"context"
	"fmt"
	"strings"

	"folder-ingest/core/assets"
	"folder-ingest/core/config"
	"folder-ingest/core/ingest"
	"folder-ingest/core/storage"
)

// parseFolderSpec parses one --folder flag value of the form
// name=path:suffix, e.g. spells=prefabs/spells:.spell.json.
func parseFolderSpec(spec string) (ingest.Config, error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok || name == "" {
		return ingest.Config{}, fmt.Errorf("invalid folder spec %q, expected name=path:suffix", spec)
	}

	// The suffix starts at the last colon so paths may contain colons.
	idx := strings.LastIndex(rest, ":")
	if idx <= 0 || idx == len(rest)-1 {
		return ingest.Config{}, fmt.Errorf("invalid folder spec %q, expected name=path:suffix", spec)
	}

	return ingest.Config{
		Name:   name,
		Path:   rest[:idx],
		Suffix: rest[idx+1:],
	}, nil
}

// parseFolderSpecs parses all --folder values, rejecting duplicates.
func parseFolderSpecs(specs []string) ([]ingest.Config, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --folder is required")
	}

	seen := make(map[string]bool, len(specs))
	configs := make([]ingest.Config, 0, len(specs))
	for _, spec := range specs {
		cfg, err := parseFolderSpec(spec)
		if err != nil {
			return nil, err
		}
		if seen[cfg.Name] {
			return nil, fmt.Errorf("duplicate folder name %q", cfg.Name)
		}
		seen[cfg.Name] = true
		configs = append(configs, cfg)
	}
	return configs, nil
}

// buildBackend constructs the loading backend selected by the ingest config.
func buildBackend(ctx context.Context, cfg *config.Config) (assets.Backend, error) {
	switch cfg.Ingest.Source {
	case config.SourceDir:
		return assets.DirBackend{}, nil
	case config.SourceObject:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return assets.NewObjectBackend(ctx, client, cfg.Storage.Bucket)
	default:
		return nil, fmt.Errorf("unknown ingest source %q", cfg.Ingest.Source)
	}
}

// registerDecoders wires a JSON decoder for every folder whose suffix is a
// JSON document. Other suffixes realize raw bytes.
func registerDecoders(srv *assets.Server, folders []ingest.Config) {
	for _, f := range folders {
		if strings.HasSuffix(f.Suffix, ".json") {
			srv.RegisterDecoder(f.Suffix, assets.JSONDecoder(func() any {
				return &map[string]any{}
			}))
		}
	}
}
