package ports

import (
	"context"

	"github.com/aretw0/wayfarer/pkg/domain"
)

// CatalogSource retrieves raw place records.
// Sources do not validate; the catalog package quarantines bad records.
type CatalogSource interface {
	Places(ctx context.Context) ([]domain.Place, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
type Watchable interface {
	// Watch returns a channel that receives the ID of a changed record.
	Watch(ctx context.Context) (<-chan string, error)
}
