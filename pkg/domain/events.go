package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter   EventType = "step_enter"
	EventToggle      EventType = "toggle"
	EventToggleAll   EventType = "toggle_all"
	EventAdvance     EventType = "advance"
	EventRejected    EventType = "rejected"
	EventAuthChanged EventType = "auth_changed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// StepEvent describes a change of the place step.
type StepEvent struct {
	EventBase
	Destination string `json:"destination,omitempty"`
	Matched     int    `json:"matched"`
	Other       int    `json:"other"`
	Selected    int    `json:"selected"`
	PlaceName   string `json:"place_name,omitempty"`
	Reason      error  `json:"-"`
}

// AuthEvent describes a sign-up, login or logout.
type AuthEvent struct {
	EventBase
	Method        string `json:"method"` // signup, login, logout
	Authenticated bool   `json:"authenticated"`
	Reason        error  `json:"-"`
}

// LifecycleHooks defines callbacks for wizard observability.
type LifecycleHooks struct {
	OnEnter    func(context.Context, *StepEvent)
	OnToggle   func(context.Context, *StepEvent)
	OnAdvance  func(context.Context, *StepEvent)
	OnRejected func(context.Context, *StepEvent)
	OnAuth     func(context.Context, *AuthEvent)
}

// NewStepEvent stamps a StepEvent for the session.
func NewStepEvent(t EventType, sessionID string) *StepEvent {
	return &StepEvent{EventBase: EventBase{Timestamp: time.Now(), Type: t, SessionID: sessionID}}
}

// NewAuthEvent stamps an AuthEvent for the session.
func NewAuthEvent(sessionID, method string) *AuthEvent {
	return &AuthEvent{EventBase: EventBase{Timestamp: time.Now(), Type: EventAuthChanged, SessionID: sessionID}, Method: method}
}
