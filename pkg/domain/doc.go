/*
Package domain contains the core models and pure logic of the Wayfarer trip builder.

It defines the place catalog records, the session snapshot exchanged with the
stores, and the Place Selection Engine: the handful of functions that partition a
destination's places by the user's interests and track the editable selection.
Nothing in this package performs I/O.

# Key Entities

  - Place: an immutable point of interest supplied by the catalog.
  - Session: the per-user snapshot (auth state, step records, step-3 draft).
  - StepState: the Loading -> Ready -> Advancing state of the place step.
  - Partition: the Matched/Other split of a city's places.

# Selection Engine

	part := domain.PartitionPlaces(catalog, "Andaman", []string{"Beaches 🏖️"})
	selection := domain.InitialSelection(domain.CityPlaces(catalog, "Andaman"))
	selection = domain.ToggleAll(selection, domain.Names(part.All()))
	selection = domain.Toggle(selection, "Cellular Jail")
	ok := domain.CanAdvance(selection)
*/
package domain
