package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/wayfarer/pkg/domain"
)

// Loader adapts a Loam repository of place documents to ports.CatalogSource.
type Loader struct {
	Repo *loam.TypedRepository[PlaceMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[PlaceMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// The catalog is only ever read; ReadOnly avoids Loam's dev-mode sandbox.
	repo, err := loam.Init(absPath, loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[PlaceMetadata](repo)), nil
}

// Places lists every place document, ordered by document ID.
// Records are returned as found; the catalog package quarantines bad ones.
func (l *Loader) Places(ctx context.Context) ([]domain.Place, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	places := make([]domain.Place, 0, len(docs))
	for _, doc := range docs {
		rating, err := parseRating(doc.Data.Rating)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}

		description := doc.Data.Description
		if description == "" {
			description = strings.TrimSpace(doc.Content)
		}

		places = append(places, domain.Place{
			City:        doc.Data.City,
			PlaceName:   doc.Data.PlaceName,
			Category:    doc.Data.Category,
			Description: description,
			Image:       doc.Data.Image,
			Rating:      rating,
		})
	}
	return places, nil
}

func parseRating(raw any) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid rating %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("invalid rating type %T", raw)
	}
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
