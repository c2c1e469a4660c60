package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/pkg/adapters/file"
	"github.com/aretw0/statusmap/pkg/adapters/hcl"
	"github.com/aretw0/statusmap/pkg/adapters/loam"
	"github.com/aretw0/statusmap/pkg/ports"
)

// NewLoader picks the definition loader for path:
// a directory is read as a Loam vault, .hcl files by the HCL loader and
// .yaml, .yml or .json files by the file loader.
func NewLoader(path string, logger *slog.Logger) (ports.DefinitionLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		loader, err := loam.Open(path)
		if err != nil {
			return nil, err
		}
		return loader, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		return hcl.New(path), nil
	case ".yaml", ".yml", ".json":
		return file.New(path, file.WithLogger(logger)), nil
	default:
		return nil, fmt.Errorf("unsupported definition format %q", ext)
	}
}

// LoadMap loads and compiles the status map found at path.
func LoadMap(ctx context.Context, path string, opts ...statusmap.Option) (*statusmap.Map, error) {
	loader, err := NewLoader(path, nil)
	if err != nil {
		return nil, err
	}

	def, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return statusmap.FromDefinition(def, opts...)
}
