package ports

import (
	"context"

	"github.com/aretw0/wayfarer/pkg/domain"
)

// SessionStore defines the interface for persisting wizard sessions.
// It is the key-value collaborator the steps read their prerequisites from
// and hand their results off through.
type SessionStore interface {
	// Save persists the session under the given ID.
	Save(ctx context.Context, sessionID string, session *domain.Session) error

	// Load retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session for a given ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the stored sessions.
	List(ctx context.Context) ([]string, error)
}
