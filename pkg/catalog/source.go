package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/wayfarer/pkg/domain"
)

// Source yields raw place records. It matches ports.CatalogSource.
type Source interface {
	Places(ctx context.Context) ([]domain.Place, error)
}

// Load reads every record from src and builds a Catalog from the valid ones.
func Load(ctx context.Context, src Source) (*Catalog, Report, error) {
	places, err := src.Places(ctx)
	if err != nil {
		return nil, Report{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	c, report := New(places)
	return c, report, nil
}

// FileSource is a Source backed by a YAML or JSON catalog file.
type FileSource struct {
	Path string
}

// Places reads and parses the file on every call, so edits are picked up on reload.
func (s FileSource) Places(ctx context.Context) ([]domain.Place, error) {
	data, err := readFile(s.Path)
	if err != nil {
		return nil, err
	}
	return Parse(data, filepath.Ext(s.Path))
}
