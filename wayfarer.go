package wayfarer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/wayfarer/internal/id"
	"github.com/aretw0/wayfarer/internal/logging"
	"github.com/aretw0/wayfarer/pkg/adapters/memory"
	"github.com/aretw0/wayfarer/pkg/auth"
	"github.com/aretw0/wayfarer/pkg/catalog"
	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/aretw0/wayfarer/pkg/persistence/middleware"
	"github.com/aretw0/wayfarer/pkg/ports"
	"github.com/aretw0/wayfarer/pkg/session"
	"github.com/aretw0/wayfarer/pkg/wizard"
)

// ChangeListener receives the diff of every persisted session change.
type ChangeListener func(ctx context.Context, diff *domain.SessionDiff)

// Planner is the high-level entry point of the trip builder.
// It composes the catalog, the session manager and the wizard; every adapter drives it.
type Planner struct {
	wizard   *wizard.Wizard
	sessions *session.Manager

	catalog     *catalog.Catalog
	source      catalog.Source
	store       ports.SessionStore
	middlewares []middleware.Middleware
	locker      ports.DistributedLocker
	lockTTL     time.Duration
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	idPrefix    string

	mu        sync.RWMutex
	listeners []ChangeListener
}

var _ ports.Planner = (*Planner)(nil)

// Option defines a functional option for configuring the Planner.
type Option func(*Planner)

// WithCatalog sets the place catalog (default: the built-in catalog).
func WithCatalog(c *catalog.Catalog) Option {
	return func(p *Planner) {
		p.catalog = c
	}
}

// WithCatalogSource loads the catalog from src at construction time.
// Quarantined records are logged, not fatal. The source is kept for ReloadCatalog.
func WithCatalogSource(src catalog.Source) Option {
	return func(p *Planner) {
		p.source = src
	}
}

// WithStore sets the session store (default: in-memory).
func WithStore(store ports.SessionStore) Option {
	return func(p *Planner) {
		p.store = store
	}
}

// WithStoreMiddleware wraps the session store. The first middleware is the outermost.
func WithStoreMiddleware(mws ...middleware.Middleware) Option {
	return func(p *Planner) {
		p.middlewares = append(p.middlewares, mws...)
	}
}

// WithLocker enables distributed locking of sessions.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(p *Planner) {
		p.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(p *Planner) {
		p.lockTTL = ttl
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Planner) {
		p.hooks = hooks
	}
}

// WithIDPrefix sets the prefix of generated session IDs (default: "trip").
func WithIDPrefix(prefix string) Option {
	return func(p *Planner) {
		p.idPrefix = prefix
	}
}

// New initializes a Planner.
func New(opts ...Option) (*Planner, error) {
	p := &Planner{
		logger:   logging.NewNop(),
		idPrefix: id.SessionPrefix,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.source != nil {
		c, report, err := catalog.Load(context.Background(), p.source)
		if err != nil {
			return nil, err
		}
		p.logReport(report)
		p.catalog = c
	}
	if p.catalog == nil {
		p.catalog = catalog.Default()
	}
	if p.store == nil {
		p.store = memory.NewStore()
	}
	p.store = middleware.Chain(p.store, p.middlewares...)

	sessionOpts := []session.Option{session.WithLogger(p.logger)}
	if p.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(p.locker))
	}
	if p.lockTTL > 0 {
		sessionOpts = append(sessionOpts, session.WithLockTTL(p.lockTTL))
	}
	p.sessions = session.NewManager(p.store, sessionOpts...)

	p.wizard = wizard.New(p.catalog,
		wizard.WithHooks(p.hooks),
		wizard.WithLogger(p.logger),
	)

	return p, nil
}

// OnChange registers a listener for session diffs.
func (p *Planner) OnChange(l ChangeListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// Catalog returns the catalog new step entries use.
func (p *Planner) Catalog() *catalog.Catalog {
	return p.wizard.Catalog()
}

// Sessions exposes the session manager (listing, inspection, removal).
func (p *Planner) Sessions() *session.Manager {
	return p.sessions
}

// ReloadCatalog re-reads the catalog source and swaps the catalog.
// Sessions already in the place step keep the partition they entered with.
func (p *Planner) ReloadCatalog(ctx context.Context) (catalog.Report, error) {
	if p.source == nil {
		return catalog.Report{}, fmt.Errorf("no catalog source configured")
	}
	c, report, err := catalog.Load(ctx, p.source)
	if err != nil {
		return report, err
	}
	p.logReport(report)
	p.wizard.SetCatalog(c)
	return report, nil
}

// WatchCatalog reloads the catalog whenever a watchable source reports a change.
// It blocks until ctx is done.
func (p *Planner) WatchCatalog(ctx context.Context) error {
	w, ok := p.source.(ports.Watchable)
	if !ok {
		return fmt.Errorf("catalog source does not support watching")
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case changed, ok := <-events:
			if !ok {
				return nil
			}
			p.logger.Info("Catalog changed, reloading", "document", changed)
			if _, err := p.ReloadCatalog(ctx); err != nil {
				p.logger.Error("Catalog reload failed", "err", err)
			}
		}
	}
}

// StartSession creates an unauthenticated session with a fresh ID.
func (p *Planner) StartSession(ctx context.Context) (*domain.Session, error) {
	sessionID, err := id.Generate(p.idPrefix)
	if err != nil {
		return nil, err
	}
	s, err := p.sessions.LoadOrStart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Session started", "session_id", sessionID)
	p.notify(ctx, domain.Diff(nil, s))
	return s, nil
}

// Session loads a session.
func (p *Planner) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return p.sessions.Load(ctx, sessionID)
}

// SignUp validates the form and signs the session in.
func (p *Planner) SignUp(ctx context.Context, sessionID string, form auth.SignUpForm) (*domain.Session, error) {
	return p.authenticate(ctx, sessionID, "signup", func() (domain.AuthState, error) {
		return auth.SignUp(form)
	})
}

// Login validates the form and signs the session in.
func (p *Planner) Login(ctx context.Context, sessionID string, form auth.LoginForm) (*domain.Session, error) {
	return p.authenticate(ctx, sessionID, "login", func() (domain.AuthState, error) {
		return auth.Login(form)
	})
}

// Logout signs the session out. Step records are kept.
func (p *Planner) Logout(ctx context.Context, sessionID string) (*domain.Session, error) {
	return p.authenticate(ctx, sessionID, "logout", func() (domain.AuthState, error) {
		return auth.Logout(), nil
	})
}

func (p *Planner) authenticate(ctx context.Context, sessionID, method string, fn func() (domain.AuthState, error)) (*domain.Session, error) {
	s, err := p.update(ctx, sessionID, func(s *domain.Session) error {
		state, err := fn()
		if err != nil {
			return err
		}
		s.Auth = state
		return nil
	})

	if p.hooks.OnAuth != nil {
		ev := domain.NewAuthEvent(sessionID, method)
		ev.Reason = err
		ev.Authenticated = err == nil && s.Auth.Authenticated
		p.hooks.OnAuth(ctx, ev)
	}
	return s, err
}

// SubmitDestination records step one.
func (p *Planner) SubmitDestination(ctx context.Context, sessionID, destination string) (*domain.Session, error) {
	return p.update(ctx, sessionID, func(s *domain.Session) error {
		return p.wizard.SubmitDestination(s, destination)
	})
}

// SubmitInterests records step two.
func (p *Planner) SubmitInterests(ctx context.Context, sessionID string, interests []string) (*domain.Session, error) {
	return p.update(ctx, sessionID, func(s *domain.Session) error {
		return p.wizard.SubmitInterests(s, interests)
	})
}

// EnterPlaces enters the place step with a fresh draft.
func (p *Planner) EnterPlaces(ctx context.Context, sessionID string) (*wizard.View, error) {
	return p.step(ctx, sessionID, func(s *domain.Session) (*wizard.View, error) {
		return p.wizard.Enter(ctx, s)
	})
}

// PlacesView renders the current draft without changing it.
func (p *Planner) PlacesView(ctx context.Context, sessionID string) (*wizard.View, error) {
	s, err := p.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return p.wizard.View(s)
}

// TogglePlace adds or removes a place from the selection.
func (p *Planner) TogglePlace(ctx context.Context, sessionID, placeName string) (*wizard.View, error) {
	return p.step(ctx, sessionID, func(s *domain.Session) (*wizard.View, error) {
		return p.wizard.Toggle(ctx, s, placeName)
	})
}

// ToggleAllPlaces selects every place or clears the selection.
func (p *Planner) ToggleAllPlaces(ctx context.Context, sessionID string) (*wizard.View, error) {
	return p.step(ctx, sessionID, func(s *domain.Session) (*wizard.View, error) {
		return p.wizard.ToggleAll(ctx, s)
	})
}

// Advance hands the selection off as step3Data.
func (p *Planner) Advance(ctx context.Context, sessionID string) (*domain.Step3Data, error) {
	var data *domain.Step3Data
	_, err := p.update(ctx, sessionID, func(s *domain.Session) error {
		var err error
		data, err = p.wizard.Advance(ctx, s)
		return err
	})
	return data, err
}

// Destinations lists the cities of the catalog.
func (p *Planner) Destinations() []string {
	return p.wizard.Destinations()
}

// Categories lists the interests available for a city.
func (p *Planner) Categories(city string) []string {
	return p.wizard.Categories(city)
}

func (p *Planner) step(ctx context.Context, sessionID string, fn func(*domain.Session) (*wizard.View, error)) (*wizard.View, error) {
	var view *wizard.View
	_, err := p.update(ctx, sessionID, func(s *domain.Session) error {
		var err error
		view, err = fn(s)
		return err
	})
	return view, err
}

// update runs fn under the session lock and persists the result when fn succeeds.
func (p *Planner) update(ctx context.Context, sessionID string, fn func(*domain.Session) error) (*domain.Session, error) {
	var before *domain.Session
	after, err := p.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		before = s.Snapshot()
		return fn(s)
	})
	if err != nil {
		return nil, err
	}
	p.notify(ctx, domain.Diff(before, after))
	return after, nil
}

func (p *Planner) notify(ctx context.Context, diff *domain.SessionDiff) {
	if diff == nil {
		return
	}
	p.mu.RLock()
	listeners := p.listeners
	p.mu.RUnlock()
	for _, l := range listeners {
		l(ctx, diff)
	}
}

func (p *Planner) logReport(report catalog.Report) {
	p.logger.Info("Catalog loaded", "accepted", report.Accepted, "rejected", len(report.Rejected))
	for _, r := range report.Rejected {
		p.logger.Warn("Place quarantined", "index", r.Index, "city", r.Place.City, "place_name", r.Place.PlaceName, "reason", r.Reason)
	}
}
