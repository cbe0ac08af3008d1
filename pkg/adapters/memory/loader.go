package memory

import (
	"context"
	"slices"

	"github.com/aretw0/wayfarer/pkg/domain"
)

// Loader implements ports.CatalogSource over a fixed list of places.
type Loader struct {
	places []domain.Place
}

// NewLoader creates a source that serves a copy of places.
func NewLoader(places ...domain.Place) *Loader {
	return &Loader{places: slices.Clone(places)}
}

// Places returns the records in insertion order.
func (l *Loader) Places(ctx context.Context) ([]domain.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(l.places), nil
}
