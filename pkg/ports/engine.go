package ports

import (
	"context"

	"github.com/aretw0/wayfarer/pkg/auth"
	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/aretw0/wayfarer/pkg/wizard"
)

// Planner is the set of operations the adapters (HTTP, MCP, CLI) drive.
// Every method runs under the session lock and persists the result.
type Planner interface {
	StartSession(ctx context.Context) (*domain.Session, error)
	Session(ctx context.Context, sessionID string) (*domain.Session, error)

	SignUp(ctx context.Context, sessionID string, form auth.SignUpForm) (*domain.Session, error)
	Login(ctx context.Context, sessionID string, form auth.LoginForm) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) (*domain.Session, error)

	SubmitDestination(ctx context.Context, sessionID, destination string) (*domain.Session, error)
	SubmitInterests(ctx context.Context, sessionID string, interests []string) (*domain.Session, error)

	EnterPlaces(ctx context.Context, sessionID string) (*wizard.View, error)
	PlacesView(ctx context.Context, sessionID string) (*wizard.View, error)
	TogglePlace(ctx context.Context, sessionID, placeName string) (*wizard.View, error)
	ToggleAllPlaces(ctx context.Context, sessionID string) (*wizard.View, error)
	Advance(ctx context.Context, sessionID string) (*domain.Step3Data, error)

	Destinations() []string
	Categories(city string) []string
}
