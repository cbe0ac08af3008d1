package testutils

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// PlaceDoc is a Markdown place document: YAML frontmatter plus an optional body.
type PlaceDoc struct {
	ID          string
	Frontmatter map[string]any
	Body        string
}

// Document renders d the way a catalog author would write it on disk.
func (d PlaceDoc) Document() core.Document {
	var b strings.Builder
	b.WriteString("---\n")
	for _, key := range []string{"city", "place_name", "category", "description", "image", "rating"} {
		v, ok := d.Frontmatter[key]
		if !ok {
			continue
		}
		if s, isString := v.(string); isString {
			fmt.Fprintf(&b, "%s: %q\n", key, s)
		} else {
			fmt.Fprintf(&b, "%s: %v\n", key, v)
		}
	}
	b.WriteString("---\n")
	b.WriteString(d.Body)
	return core.Document{ID: d.ID, Content: b.String()}
}

// SetupCatalogRepo creates a temporary directory, initializes a Loam repository in it
// and saves docs. It returns the absolute path to the directory and the repository.
// It fails the test immediately on error.
func SetupCatalogRepo(t *testing.T, docs ...PlaceDoc) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, loam.WithVersioning(false))
	require.NoError(t, err, "Failed to init loam repo")

	ctx := context.Background()
	for _, doc := range docs {
		require.NoError(t, repo.Save(ctx, doc.Document()), "Failed to save %s", doc.ID)
	}
	return absPath, repo
}
