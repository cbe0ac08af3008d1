package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/aretw0/wayfarer/internal/logging"
	"github.com/aretw0/wayfarer/pkg/auth"
	"github.com/aretw0/wayfarer/pkg/catalog"
	"github.com/aretw0/wayfarer/pkg/domain"
)

// Wizard applies step operations to sessions.
// It is safe for concurrent use; sessions themselves are not.
type Wizard struct {
	catalog atomic.Pointer[catalog.Catalog]
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option configures the Wizard.
type Option func(*Wizard)

// WithHooks registers lifecycle callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Wizard) {
		w.hooks = hooks
	}
}

// WithLogger configures a logger for the Wizard.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

// New creates a Wizard over the given catalog.
func New(c *catalog.Catalog, opts ...Option) *Wizard {
	w := &Wizard{logger: logging.NewNop()}
	w.catalog.Store(c)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Catalog returns the catalog new step entries use.
func (w *Wizard) Catalog() *catalog.Catalog {
	return w.catalog.Load()
}

// SetCatalog swaps the catalog. Drafts already entered keep their partition.
func (w *Wizard) SetCatalog(c *catalog.Catalog) {
	w.catalog.Store(c)
}

// Destinations lists the cities a user can pick in step one.
func (w *Wizard) Destinations() []string {
	return w.Catalog().Cities()
}

// Categories lists the interests available for a city in step two.
func (w *Wizard) Categories(city string) []string {
	return w.Catalog().Categories(city)
}

// SubmitDestination records step one. Any step three draft becomes stale.
func (w *Wizard) SubmitDestination(s *domain.Session, destination string) error {
	if err := auth.Require(s.Auth); err != nil {
		return err
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrInvalidInput)
	}

	if err := s.PutRecord(domain.RecordStep1, domain.Step1Data{Destination: destination}); err != nil {
		return err
	}
	resetDraft(s)
	return nil
}

// SubmitInterests records step two. Interests are trimmed and de-duplicated, keeping order.
func (w *Wizard) SubmitInterests(s *domain.Session, interests []string) error {
	if err := auth.Require(s.Auth); err != nil {
		return err
	}
	if _, err := requireStep1(s); err != nil {
		return err
	}

	var cleaned []string
	for _, interest := range interests {
		interest = strings.TrimSpace(interest)
		if interest != "" && !slices.Contains(cleaned, interest) {
			cleaned = append(cleaned, interest)
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("%w: select at least one interest", domain.ErrInvalidInput)
	}

	if err := s.PutRecord(domain.RecordStep2, domain.Step2Data{Interests: cleaned}); err != nil {
		return err
	}
	resetDraft(s)
	return nil
}

// Enter moves the place step to Ready with a fresh draft.
// A previous draft is discarded, as is a selection the user has not advanced with.
func (w *Wizard) Enter(ctx context.Context, s *domain.Session) (*View, error) {
	if err := auth.Require(s.Auth); err != nil {
		return nil, w.reject(ctx, s, err)
	}
	step1, err := requireStep1(s)
	if err != nil {
		return nil, w.reject(ctx, s, err)
	}
	step2, err := requireStep2(s)
	if err != nil {
		return nil, w.reject(ctx, s, err)
	}

	c := w.Catalog()
	part := c.Partition(step1.Destination, step2.Interests)

	s.Step = domain.StepState{
		Status:      domain.StatusReady,
		Destination: step1.Destination,
		Interests:   slices.Clone(step2.Interests),
		Matched:     part.Matched,
		Other:       part.Other,
		Selection:   domain.InitialSelection(c.CityPlaces(step1.Destination)),
	}

	w.logger.Debug("Entered place step",
		"session_id", s.ID,
		"destination", step1.Destination,
		"matched", len(part.Matched),
		"other", len(part.Other),
	)
	w.emit(ctx, w.hooks.OnEnter, s, domain.EventStepEnter, "")
	return NewView(s), nil
}

// View renders the current draft. The step must be Ready.
func (w *Wizard) View(s *domain.Session) (*View, error) {
	if err := requireReady(s); err != nil {
		return nil, err
	}
	return NewView(s), nil
}

// Toggle adds or removes one place name.
func (w *Wizard) Toggle(ctx context.Context, s *domain.Session, name string) (*View, error) {
	if err := requireReady(s); err != nil {
		return nil, w.reject(ctx, s, err)
	}
	if name == "" {
		return nil, w.reject(ctx, s, fmt.Errorf("%w: place name is required", domain.ErrInvalidInput))
	}

	s.Step.Selection = domain.Toggle(s.Step.Selection, name)
	w.emit(ctx, w.hooks.OnToggle, s, domain.EventToggle, name)
	return NewView(s), nil
}

// ToggleAll selects every place of the partition, or clears the selection.
func (w *Wizard) ToggleAll(ctx context.Context, s *domain.Session) (*View, error) {
	if err := requireReady(s); err != nil {
		return nil, w.reject(ctx, s, err)
	}

	s.Step.Selection = domain.ToggleAll(s.Step.Selection, s.Step.AllNames())
	w.emit(ctx, w.hooks.OnToggle, s, domain.EventToggleAll, "")
	return NewView(s), nil
}

// Advance hands the selection off as step3Data, in the user's ordering.
func (w *Wizard) Advance(ctx context.Context, s *domain.Session) (*domain.Step3Data, error) {
	if err := requireReady(s); err != nil {
		return nil, w.reject(ctx, s, err)
	}
	if !domain.CanAdvance(s.Step.Selection) {
		return nil, w.reject(ctx, s, domain.ErrEmptySelection)
	}

	data := domain.Step3Data{Places: slices.Clone(s.Step.Selection)}
	if err := s.PutRecord(domain.RecordStep3, data); err != nil {
		return nil, err
	}
	s.Step.Status = domain.StatusAdvancing

	w.logger.Info("Place selection handed off", "session_id", s.ID, "places", len(data.Places))
	w.emit(ctx, w.hooks.OnAdvance, s, domain.EventAdvance, "")
	return &data, nil
}

func (w *Wizard) emit(ctx context.Context, hook func(context.Context, *domain.StepEvent), s *domain.Session, t domain.EventType, placeName string) {
	if hook == nil {
		return
	}
	ev := domain.NewStepEvent(t, s.ID)
	ev.Destination = s.Step.Destination
	ev.Matched = len(s.Step.Matched)
	ev.Other = len(s.Step.Other)
	ev.Selected = len(s.Step.Selection)
	ev.PlaceName = placeName
	hook(ctx, ev)
}

func (w *Wizard) reject(ctx context.Context, s *domain.Session, err error) error {
	w.logger.Debug("Place step rejected", "session_id", s.ID, "err", err)
	if w.hooks.OnRejected != nil {
		ev := domain.NewStepEvent(domain.EventRejected, s.ID)
		ev.Destination = s.Step.Destination
		ev.Selected = len(s.Step.Selection)
		ev.Reason = err
		w.hooks.OnRejected(ctx, ev)
	}
	return err
}

func resetDraft(s *domain.Session) {
	s.Step = domain.StepState{Status: domain.StatusLoading, Selection: []string{}}
}

func requireReady(s *domain.Session) error {
	if err := auth.Require(s.Auth); err != nil {
		return err
	}
	if s.Step.Status != domain.StatusReady {
		return domain.ErrStepNotReady
	}
	return nil
}

func requireStep1(s *domain.Session) (domain.Step1Data, error) {
	var data domain.Step1Data
	ok, err := s.Record(domain.RecordStep1, &data)
	if err != nil {
		return data, err
	}
	if !ok || strings.TrimSpace(data.Destination) == "" {
		return data, &domain.PrerequisiteError{Step: "step1", Missing: domain.RecordStep1}
	}
	return data, nil
}

func requireStep2(s *domain.Session) (domain.Step2Data, error) {
	var data domain.Step2Data
	ok, err := s.Record(domain.RecordStep2, &data)
	if err != nil {
		return data, err
	}
	if !ok || len(data.Interests) == 0 {
		return data, &domain.PrerequisiteError{Step: "step2", Missing: domain.RecordStep2}
	}
	return data, nil
}
