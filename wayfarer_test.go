package wayfarer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/wayfarer"
	"github.com/aretw0/wayfarer/pkg/adapters/memory"
	"github.com/aretw0/wayfarer/pkg/auth"
	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanner(t *testing.T, opts ...wayfarer.Option) *wayfarer.Planner {
	t.Helper()
	p, err := wayfarer.New(opts...)
	require.NoError(t, err)
	return p
}

// readyAt walks a fresh session to the place step.
func readyAt(t *testing.T, p *wayfarer.Planner, city string, interests ...string) string {
	t.Helper()
	ctx := context.Background()

	s, err := p.StartSession(ctx)
	require.NoError(t, err)
	_, err = p.Login(ctx, s.ID, auth.LoginForm{Email: "asha@example.com", Password: "pw"})
	require.NoError(t, err)
	_, err = p.SubmitDestination(ctx, s.ID, city)
	require.NoError(t, err)
	_, err = p.SubmitInterests(ctx, s.ID, interests)
	require.NoError(t, err)
	_, err = p.EnterPlaces(ctx, s.ID)
	require.NoError(t, err)
	return s.ID
}

func TestPlanner_WizardFlow(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t)
	id := readyAt(t, p, "Andaman", "Beaches 🏖️")

	view, err := p.PlacesView(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, view.Status)
	assert.Equal(t, 5, view.Total)
	assert.Equal(t, 5, view.Selected, "every place of the city starts selected")
	assert.True(t, view.AllSelected)
	require.Len(t, view.Groups, 1)
	assert.Len(t, view.Groups[0].Places, 2)
	assert.Len(t, view.Other, 3)

	view, err = p.TogglePlace(ctx, id, "Cellular Jail")
	require.NoError(t, err)
	assert.False(t, view.IsSelected("Cellular Jail"))
	assert.False(t, view.AllSelected)

	view, err = p.ToggleAllPlaces(ctx, id)
	require.NoError(t, err)
	assert.True(t, view.AllSelected)

	view, err = p.ToggleAllPlaces(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, view.Selection)

	_, err = p.Advance(ctx, id)
	assert.ErrorIs(t, err, domain.ErrEmptySelection)

	_, err = p.TogglePlace(ctx, id, "Ross Island")
	require.NoError(t, err)
	_, err = p.TogglePlace(ctx, id, "Radhanagar Beach")
	require.NoError(t, err)

	data, err := p.Advance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ross Island", "Radhanagar Beach"}, data.Places, "selection order is kept")

	s, err := p.Session(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAdvancing, s.Step.Status)

	var stored domain.Step3Data
	ok, err := s.Record(domain.RecordStep3, &stored)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, data.Places, stored.Places)
}

func TestPlanner_Guards(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t)

	s, err := p.StartSession(ctx)
	require.NoError(t, err)

	_, err = p.EnterPlaces(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = p.Login(ctx, s.ID, auth.LoginForm{Email: "asha@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = p.EnterPlaces(ctx, s.ID)
	var prereq *domain.PrerequisiteError
	require.ErrorAs(t, err, &prereq)
	assert.Equal(t, "step1", prereq.Step)

	_, err = p.TogglePlace(ctx, s.ID, "Ross Island")
	assert.ErrorIs(t, err, domain.ErrStepNotReady)

	_, err = p.Session(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestPlanner_RejectedOperationsDoNotPersist(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t)
	id := readyAt(t, p, "Manali", "Cafes & Nightlife ☕")

	_, err := p.ToggleAllPlaces(ctx, id)
	require.NoError(t, err)
	_, err = p.Advance(ctx, id)
	require.ErrorIs(t, err, domain.ErrEmptySelection)

	s, err := p.Session(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, s.Step.Status)
	ok, _ := s.Record(domain.RecordStep3, &domain.Step3Data{})
	assert.False(t, ok)
}

func TestPlanner_OnChange(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t)

	var mu sync.Mutex
	var diffs []*domain.SessionDiff
	p.OnChange(func(_ context.Context, d *domain.SessionDiff) {
		mu.Lock()
		defer mu.Unlock()
		diffs = append(diffs, d)
	})

	id := readyAt(t, p, "Andaman", "Islands 🏝️")
	_, err := p.TogglePlace(ctx, id, "Ross Island")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	// start, login, destination, interests, enter, toggle
	require.Len(t, diffs, 6)
	for _, d := range diffs {
		assert.Equal(t, id, d.SessionID)
	}
	assert.NotNil(t, diffs[1].Auth)
	assert.Contains(t, diffs[2].Records, domain.RecordStep1)
	assert.Equal(t, domain.StatusReady, *diffs[4].Status)

	last := diffs[5].Selection
	require.NotNil(t, last)
	assert.Equal(t, []string{"Ross Island"}, last.Removed)
	assert.Len(t, last.Current, 4)
}

func TestPlanner_AuthHook(t *testing.T) {
	ctx := context.Background()

	var events []*domain.AuthEvent
	p := newPlanner(t, wayfarer.WithHooks(domain.LifecycleHooks{
		OnAuth: func(_ context.Context, ev *domain.AuthEvent) { events = append(events, ev) },
	}))

	s, err := p.StartSession(ctx)
	require.NoError(t, err)

	_, err = p.Login(ctx, s.ID, auth.LoginForm{Email: "asha@example.com"})
	require.Error(t, err)
	_, err = p.SignUp(ctx, s.ID, auth.SignUpForm{
		Name: "Asha", Phone: "555-0101", Email: "asha@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	_, err = p.Logout(ctx, s.ID)
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, "login", events[0].Method)
	assert.False(t, events[0].Authenticated)
	assert.Error(t, events[0].Reason)

	assert.Equal(t, "signup", events[1].Method)
	assert.True(t, events[1].Authenticated)

	assert.Equal(t, "logout", events[2].Method)
	assert.False(t, events[2].Authenticated)
	assert.NoError(t, events[2].Reason)
}

// mutableSource serves whatever places it currently holds.
type mutableSource struct {
	mu     sync.Mutex
	places []domain.Place
	events chan string
}

func (s *mutableSource) Places(ctx context.Context) ([]domain.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Place(nil), s.places...), nil
}

func (s *mutableSource) set(places ...domain.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places = places
}

func (s *mutableSource) Watch(ctx context.Context) (<-chan string, error) {
	return s.events, nil
}

func goaPlace(name string) domain.Place {
	return domain.Place{City: "Goa", PlaceName: name, Category: "Beaches", Rating: 4.2}
}

func TestPlanner_ReloadCatalog(t *testing.T) {
	ctx := context.Background()
	src := &mutableSource{}
	src.set(goaPlace("Baga Beach"))

	p := newPlanner(t, wayfarer.WithCatalogSource(src))
	assert.Equal(t, []string{"Goa"}, p.Destinations())

	id := readyAt(t, p, "Goa", "Beaches")

	src.set(goaPlace("Baga Beach"), goaPlace("Calangute"), domain.Place{City: "Goa", Category: "Beaches"})
	report, err := p.ReloadCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Accepted)
	assert.Len(t, report.Rejected, 1)
	assert.Equal(t, 2, p.Catalog().Len())

	view, err := p.PlacesView(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Total, "a session in the place step keeps its partition")

	view, err = p.EnterPlaces(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Total)
}

func TestPlanner_ReloadWithoutSource(t *testing.T) {
	p := newPlanner(t)
	_, err := p.ReloadCatalog(context.Background())
	assert.Error(t, err)
}

func TestPlanner_WatchCatalog(t *testing.T) {
	src := &mutableSource{events: make(chan string, 1)}
	src.set(goaPlace("Baga Beach"))
	p := newPlanner(t, wayfarer.WithCatalogSource(src))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.WatchCatalog(ctx) }()

	src.set(goaPlace("Baga Beach"), domain.Place{City: "Bihar", PlaceName: "Nalanda", Category: "Heritage", Rating: 4.8})
	src.events <- "nalanda.md"

	require.Eventually(t, func() bool {
		return len(p.Destinations()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	err := <-done
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPlanner_WatchUnsupported(t *testing.T) {
	p := newPlanner(t, wayfarer.WithCatalogSource(memory.NewLoader(goaPlace("Baga Beach"))))
	err := p.WatchCatalog(context.Background())
	assert.ErrorContains(t, err, "does not support watching")
}
