package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/go-playground/validator/v10"
)

// Catalog is an immutable list of places.
type Catalog struct {
	places []domain.Place
}

// Rejection describes a quarantined record.
type Rejection struct {
	Index  int          `json:"index"`
	Place  domain.Place `json:"place"`
	Reason string       `json:"reason"`
}

// Report summarizes what New accepted and quarantined.
type Report struct {
	Accepted int         `json:"accepted"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

// OK reports whether no record was quarantined.
func (r Report) OK() bool {
	return len(r.Rejected) == 0
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// New validates places and builds a Catalog from the valid ones.
// A record is quarantined when a required field is empty, the rating is outside [0,5],
// the image is not a URL, or its name is already used in the same city.
func New(places []domain.Place) (*Catalog, Report) {
	var report Report
	seen := make(map[string]struct{}, len(places))
	accepted := make([]domain.Place, 0, len(places))

	for i, p := range places {
		p.City = strings.TrimSpace(p.City)
		p.PlaceName = strings.TrimSpace(p.PlaceName)

		if err := validate.Struct(p); err != nil {
			report.Rejected = append(report.Rejected, Rejection{Index: i, Place: p, Reason: describe(err)})
			continue
		}

		key := strings.ToLower(p.City) + "\x00" + p.PlaceName
		if _, dup := seen[key]; dup {
			report.Rejected = append(report.Rejected, Rejection{
				Index:  i,
				Place:  p,
				Reason: fmt.Sprintf("duplicate place_name %q in %s", p.PlaceName, p.City),
			})
			continue
		}
		seen[key] = struct{}{}
		accepted = append(accepted, p)
	}

	report.Accepted = len(accepted)
	return &Catalog{places: accepted}, report
}

func describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// Places returns a copy of every place, in catalog order.
func (c *Catalog) Places() []domain.Place {
	return slices.Clone(c.places)
}

// Len returns the number of places.
func (c *Catalog) Len() int {
	return len(c.places)
}

// Cities returns the distinct cities in first-seen order.
func (c *Catalog) Cities() []string {
	var cities []string
	for _, p := range c.places {
		if !slices.ContainsFunc(cities, func(city string) bool { return strings.EqualFold(city, p.City) }) {
			cities = append(cities, p.City)
		}
	}
	return cities
}

// Categories returns the distinct categories of a city in first-seen order.
// The city is matched case-insensitively.
func (c *Catalog) Categories(city string) []string {
	var categories []string
	for _, p := range domain.CityPlaces(c.places, city) {
		if !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// Partition is a shortcut for domain.PartitionPlaces over this catalog.
func (c *Catalog) Partition(destination string, interests []string) domain.Partition {
	return domain.PartitionPlaces(c.places, destination, interests)
}

// CityPlaces returns the places of a city, in catalog order.
func (c *Catalog) CityPlaces(destination string) []domain.Place {
	return domain.CityPlaces(c.places, destination)
}
