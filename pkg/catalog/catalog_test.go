package catalog_test

import (
	"testing"

	"github.com/aretw0/wayfarer/pkg/catalog"
	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, 21, c.Len())
	assert.Equal(t, []string{"Andaman", "Manali", "Chikmagalur", "Bihar"}, c.Cities())
	assert.Len(t, c.CityPlaces("andaman"), 5)
	assert.Equal(t,
		[]string{"Beaches 🏖️", "Historical 🏰", "Islands 🏝️", "Nature & Wildlife 🌿"},
		c.Categories("Andaman"),
	)
}

func TestPlaces_ReturnsCopy(t *testing.T) {
	c := catalog.Default()
	places := c.Places()
	places[0].PlaceName = "mutated"

	assert.Equal(t, "Radhanagar Beach", c.Places()[0].PlaceName)
}

func TestNew_Quarantine(t *testing.T) {
	places := []domain.Place{
		{City: "Goa", PlaceName: "Baga Beach", Category: "Beaches 🏖️", Rating: 4.5},
		{City: "Goa", PlaceName: "", Category: "Beaches 🏖️", Rating: 4.0},
		{City: "Goa", PlaceName: "Fort Aguada", Category: "Historical 🏰", Rating: 7},
		{City: "goa", PlaceName: "Baga Beach", Category: "Nightlife", Rating: 4.1},
		{City: "Goa", PlaceName: "Dudhsagar", Category: "Nature", Image: "not a url"},
		{City: " Goa ", PlaceName: "Anjuna", Category: "Markets", Rating: 4.2},
	}

	c, report := catalog.New(places)

	require.False(t, report.OK())
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 2, c.Len())

	rejected := make([]int, 0, len(report.Rejected))
	for _, r := range report.Rejected {
		rejected = append(rejected, r.Index)
		assert.NotEmpty(t, r.Reason)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, rejected)
	assert.Equal(t, "Goa", c.Places()[1].City, "city is trimmed")
}

func TestPartition_Shortcut(t *testing.T) {
	c := catalog.Default()
	part := c.Partition("Bihar", []string{"Food & Culture 🍲"})

	require.Len(t, part.Matched, 1)
	assert.Equal(t, "Litti Chokha Stalls, Patna", part.Matched[0].PlaceName)
	assert.Len(t, part.Other, 3)
}
