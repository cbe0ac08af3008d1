package tests

import (
	"context"
	"testing"

	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/aretw0/wayfarer/pkg/ports"
)

// CatalogSourceContractTest verifies that a source returns exactly the expected places.
// Order is not checked: directory-backed sources list in their own order.
// Sources must not drop or repair records themselves.
func CatalogSourceContractTest(t *testing.T, source ports.CatalogSource, expected []domain.Place) {
	t.Helper()

	places, err := source.Places(context.Background())
	if err != nil {
		t.Fatalf("unexpected error listing places: %v", err)
	}

	if len(places) != len(expected) {
		t.Fatalf("expected %d places, got %d", len(expected), len(places))
	}

	got := make(map[string]domain.Place, len(places))
	for _, p := range places {
		got[p.City+"/"+p.PlaceName] = p
	}

	for _, want := range expected {
		p, ok := got[want.City+"/"+want.PlaceName]
		if !ok {
			t.Errorf("place %s/%s not returned", want.City, want.PlaceName)
			continue
		}
		if p != want {
			t.Errorf("place mismatch. got %+v, want %+v", p, want)
		}
	}
}
