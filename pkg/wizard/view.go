package wizard

import (
	"slices"

	"github.com/aretw0/wayfarer/pkg/domain"
)

// View is what a presentation layer needs to render the place step.
type View struct {
	SessionID   string                 `json:"session_id"`
	Status      domain.StepStatus      `json:"status"`
	Destination string                 `json:"destination"`
	Interests   []string               `json:"interests"`
	Groups      []domain.InterestGroup `json:"groups"`
	Other       []domain.Place         `json:"other"`
	Selection   []string               `json:"selection"`
	Selected    int                    `json:"selected"`
	Total       int                    `json:"total"`
	AllSelected bool                   `json:"all_selected"`
	CanAdvance  bool                   `json:"can_advance"`
}

// NewView renders the draft stored on the session.
func NewView(s *domain.Session) *View {
	st := s.Step
	allNames := st.AllNames()
	return &View{
		SessionID:   s.ID,
		Status:      st.Status,
		Destination: st.Destination,
		Interests:   slices.Clone(st.Interests),
		Groups:      domain.GroupByInterest(st.Matched, st.Interests),
		Other:       slices.Clone(st.Other),
		Selection:   slices.Clone(st.Selection),
		Selected:    len(st.Selection),
		Total:       len(allNames),
		AllSelected: domain.AllSelected(st.Selection, allNames),
		CanAdvance:  domain.CanAdvance(st.Selection),
	}
}

// IsSelected reports whether name is in the selection.
func (v *View) IsSelected(name string) bool {
	return slices.Contains(v.Selection, name)
}
