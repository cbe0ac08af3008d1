package domain

import (
	"reflect"
	"slices"
)

// SessionDiff represents the changes between two session snapshots.
// It is serialized to JSON and streamed to subscribers of the session.
type SessionDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Status *StepStatus `json:"status,omitempty"`
	Auth   *AuthState  `json:"auth,omitempty"`

	// Records contains only changed, added or deleted keys.
	// For deletions, the key is present with a nil value.
	Records map[string]any `json:"records,omitempty"`

	// Selection carries the whole new selection when it changed; order matters to clients.
	Selection *SelectionDelta `json:"selection,omitempty"`
}

// SelectionDelta lists what was added and removed, plus the resulting selection.
type SelectionDelta struct {
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	Current []string `json:"current"`
}

// Diff calculates the difference between oldSession and newSession.
// If oldSession is nil, the diff describes the whole newSession.
func Diff(oldSession, newSession *Session) *SessionDiff {
	if newSession == nil {
		return nil
	}

	diff := &SessionDiff{SessionID: newSession.ID}

	if oldSession == nil || oldSession.Step.Status != newSession.Step.Status {
		diff.Status = &newSession.Step.Status
	}
	if oldSession == nil || oldSession.Auth != newSession.Auth {
		diff.Auth = &newSession.Auth
	}

	diff.Records = diffRecords(oldSession, newSession)
	diff.Selection = diffSelection(oldSession, newSession)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffRecords(old *Session, new *Session) map[string]any {
	delta := make(map[string]any)

	if old == nil {
		for k, v := range new.Records {
			delta[k] = v
		}
		if len(delta) == 0 {
			return nil
		}
		return delta
	}

	for k, newVal := range new.Records {
		oldVal, exists := old.Records[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	for k := range old.Records {
		if _, exists := new.Records[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

func diffSelection(old *Session, new *Session) *SelectionDelta {
	var before []string
	if old != nil {
		before = old.Step.Selection
	}
	after := new.Step.Selection
	if old != nil && slices.Equal(before, after) {
		return nil
	}

	delta := &SelectionDelta{Current: slices.Clone(after)}
	if delta.Current == nil {
		delta.Current = []string{}
	}
	for _, name := range after {
		if !slices.Contains(before, name) {
			delta.Added = append(delta.Added, name)
		}
	}
	for _, name := range before {
		if !slices.Contains(after, name) {
			delta.Removed = append(delta.Removed, name)
		}
	}
	return delta
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SessionDiff) IsEmpty() bool {
	return d.Status == nil &&
		d.Auth == nil &&
		len(d.Records) == 0 &&
		d.Selection == nil
}
