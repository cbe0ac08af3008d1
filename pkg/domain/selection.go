package domain

import (
	"slices"
	"strings"
)

// Partition is the split of a city's places by interest membership.
type Partition struct {
	Matched []Place `json:"matched"`
	Other   []Place `json:"other"`
}

// All returns Matched followed by Other.
func (p Partition) All() []Place {
	all := make([]Place, 0, len(p.Matched)+len(p.Other))
	all = append(all, p.Matched...)
	return append(all, p.Other...)
}

// CityPlaces returns the places whose city equals destination, ignoring case.
// Catalog order is preserved.
func CityPlaces(catalog []Place, destination string) []Place {
	var out []Place
	for _, p := range catalog {
		if strings.EqualFold(p.City, destination) {
			out = append(out, p)
		}
	}
	return out
}

// PartitionPlaces filters catalog to destination and splits the result into places whose
// category is one of interests (exact, case-sensitive) and the rest.
// Relative order is preserved in both groups. An unknown destination yields two empty groups.
func PartitionPlaces(catalog []Place, destination string, interests []string) Partition {
	var part Partition
	for _, p := range CityPlaces(catalog, destination) {
		if slices.Contains(interests, p.Category) {
			part.Matched = append(part.Matched, p)
		} else {
			part.Other = append(part.Other, p)
		}
	}
	return part
}

// InitialSelection selects every place of the city, in catalog order.
func InitialSelection(cityPlaces []Place) []string {
	return Names(cityPlaces)
}

// Toggle removes name from selection if present, otherwise appends it.
// The input slice is not modified. Names are not checked against the catalog.
func Toggle(selection []string, name string) []string {
	if i := slices.Index(selection, name); i >= 0 {
		out := make([]string, 0, len(selection)-1)
		out = append(out, selection[:i]...)
		return append(out, selection[i+1:]...)
	}
	out := make([]string, 0, len(selection)+1)
	out = append(out, selection...)
	return append(out, name)
}

// ToggleAll clears the selection when it has as many entries as allNames, otherwise
// replaces it with allNames.
//
// Only the counts are compared, not the members: a selection of the same size holding
// different names still reads as "all selected" and is cleared.
func ToggleAll(selection []string, allNames []string) []string {
	if len(selection) == len(allNames) {
		return []string{}
	}
	return slices.Clone(allNames)
}

// AllSelected reports whether the select-all indicator is on.
func AllSelected(selection []string, allNames []string) bool {
	return len(allNames) > 0 && len(selection) == len(allNames)
}

// CanAdvance reports whether the selection may be handed to the next step.
func CanAdvance(selection []string) bool {
	return len(selection) > 0
}

// InterestGroup is the set of matched places for one interest.
type InterestGroup struct {
	Interest string  `json:"interest"`
	Places   []Place `json:"places"`
}

// GroupByInterest groups matched places per interest, in interest order.
// Interests without places are skipped.
func GroupByInterest(matched []Place, interests []string) []InterestGroup {
	var groups []InterestGroup
	for _, interest := range interests {
		var places []Place
		for _, p := range matched {
			if p.Category == interest {
				places = append(places, p)
			}
		}
		if len(places) == 0 {
			continue
		}
		groups = append(groups, InterestGroup{Interest: interest, Places: places})
	}
	return groups
}
