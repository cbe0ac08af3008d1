package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/aretw0/wayfarer/pkg/wizard"
)

// PlacesMarkdown renders the place step. Places are numbered in display order,
// matched groups first, so the numbers can be used to toggle.
func PlacesMarkdown(view *wizard.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Places in %s\n\n", view.Destination)

	n := 0
	list := func(places []domain.Place) {
		for _, p := range places {
			n++
			mark := " "
			if view.IsSelected(p.PlaceName) {
				mark = "x"
			}
			fmt.Fprintf(&b, "%d. [%s] **%s** (%s, %.1f★)", n, mark, p.PlaceName, p.Category, p.Rating)
			if p.Description != "" {
				fmt.Fprintf(&b, ": %s", p.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for _, g := range view.Groups {
		fmt.Fprintf(&b, "## %s\n\n", g.Interest)
		list(g.Places)
	}
	if len(view.Other) > 0 {
		b.WriteString("## Other places\n\n")
		list(view.Other)
	}
	if view.Total == 0 {
		b.WriteString("_No places found for this destination._\n\n")
	}

	fmt.Fprintf(&b, "Selected **%d** of %d", view.Selected, view.Total)
	if view.AllSelected {
		b.WriteString(" (all)")
	}
	b.WriteString("\n")
	return b.String()
}

// DisplayOrder returns the place names in the order PlacesMarkdown numbers them.
func DisplayOrder(view *wizard.View) []string {
	var names []string
	for _, g := range view.Groups {
		names = append(names, domain.Names(g.Places)...)
	}
	return append(names, domain.Names(view.Other)...)
}

// SessionMarkdown summarizes a stored session.
func SessionMarkdown(s *domain.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Session %s\n\n", s.ID)

	who := "signed out"
	if s.Auth.Authenticated {
		who = "signed in as " + s.Auth.UserName
	}
	fmt.Fprintf(&b, "- **Auth**: %s\n", who)
	fmt.Fprintf(&b, "- **Status**: %s\n", s.Step.Status)

	var step1 domain.Step1Data
	if ok, _ := s.Record(domain.RecordStep1, &step1); ok {
		fmt.Fprintf(&b, "- **Destination**: %s\n", step1.Destination)
	}
	var step2 domain.Step2Data
	if ok, _ := s.Record(domain.RecordStep2, &step2); ok {
		fmt.Fprintf(&b, "- **Interests**: %s\n", strings.Join(step2.Interests, ", "))
	}
	var step3 domain.Step3Data
	if ok, _ := s.Record(domain.RecordStep3, &step3); ok {
		fmt.Fprintf(&b, "- **Places**: %s\n", strings.Join(step3.Places, ", "))
	}
	fmt.Fprintf(&b, "- **Updated**: %s\n", s.UpdatedAt.Format("2006-01-02 15:04:05"))
	return b.String()
}
