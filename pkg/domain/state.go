package domain

import (
	"maps"
	"slices"
	"time"
)

// StepStatus is the state of the place selection step.
type StepStatus string

const (
	StatusLoading   StepStatus = "loading"   // Session inputs not validated yet
	StatusReady     StepStatus = "ready"     // Partition computed, selection mutable
	StatusAdvancing StepStatus = "advancing" // Selection handed off as step3Data
)

// StepState is the in-progress draft of the place step.
// It is rebuilt from the session records every time the step is entered.
type StepState struct {
	Status      StepStatus `json:"status"`
	Destination string     `json:"destination,omitempty"`
	Interests   []string   `json:"interests,omitempty"`

	// Matched and Other are the partition computed on entry.
	// They are not recomputed while the selection changes.
	Matched []Place `json:"matched,omitempty"`
	Other   []Place `json:"other,omitempty"`

	// Selection is the user's current choice, in the user's ordering.
	Selection []string `json:"selection"`
}

// Session is the snapshot persisted by a SessionStore.
type Session struct {
	ID   string    `json:"id"`
	Auth AuthState `json:"auth"`

	// Records is the key-value namespace shared by the wizard steps
	// (step1Data, step2Data, step3Data).
	Records map[string]any `json:"records"`

	Step StepState `json:"step"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates an unauthenticated session with no records.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Records:   make(map[string]any),
		Step:      StepState{Status: StatusLoading, Selection: []string{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Snapshot returns a copy that can be mutated without affecting s.
// Record values are copied one level deep.
func (s *Session) Snapshot() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Records = make(map[string]any, len(s.Records))
	for k, v := range s.Records {
		if m, ok := v.(map[string]any); ok {
			out.Records[k] = maps.Clone(m)
			continue
		}
		out.Records[k] = v
	}
	out.Step.Interests = slices.Clone(s.Step.Interests)
	out.Step.Matched = slices.Clone(s.Step.Matched)
	out.Step.Other = slices.Clone(s.Step.Other)
	out.Step.Selection = slices.Clone(s.Step.Selection)
	return &out
}

// Partition returns the partition stored with the draft.
func (st StepState) Partition() Partition {
	return Partition{Matched: st.Matched, Other: st.Other}
}

// AllNames is the toggle-all target: matched names followed by other names.
func (st StepState) AllNames() []string {
	return Names(st.Partition().All())
}

// Touch updates the modification time.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
