package observability

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/wayfarer/pkg/domain"
)

// Hooks builds lifecycle hooks that log each event and record it in m.
func Hooks(logger *slog.Logger, m *Metrics) domain.LifecycleHooks {
	log := func(ctx context.Context, msg string, args ...any) {
		if logger != nil {
			logger.InfoContext(ctx, msg, args...)
		}
	}

	return domain.LifecycleHooks{
		OnEnter: func(ctx context.Context, e *domain.StepEvent) {
			log(ctx, "step_enter",
				"session_id", e.SessionID,
				"destination", e.Destination,
				"matched", e.Matched,
				"other", e.Other,
			)
			if m != nil {
				m.StepEntries.WithLabelValues(e.Destination).Inc()
			}
		},
		OnToggle: func(ctx context.Context, e *domain.StepEvent) {
			log(ctx, string(e.Type),
				"session_id", e.SessionID,
				"place_name", e.PlaceName,
				"selected", e.Selected,
			)
			if m != nil {
				m.Toggles.WithLabelValues(string(e.Type)).Inc()
			}
		},
		OnAdvance: func(ctx context.Context, e *domain.StepEvent) {
			log(ctx, "advance", "session_id", e.SessionID, "selected", e.Selected)
			if m != nil {
				m.Advances.Inc()
				m.Selected.Observe(float64(e.Selected))
			}
		},
		OnRejected: func(ctx context.Context, e *domain.StepEvent) {
			if logger != nil {
				logger.WarnContext(ctx, "rejected", "session_id", e.SessionID, "err", e.Reason)
			}
			if m != nil {
				m.Rejections.WithLabelValues(Reason(e.Reason)).Inc()
			}
		},
		OnAuth: func(ctx context.Context, e *domain.AuthEvent) {
			result := "ok"
			if e.Reason != nil {
				result = Reason(e.Reason)
			}
			log(ctx, "auth", "session_id", e.SessionID, "method", e.Method, "result", result)
			if m != nil {
				m.AuthAttempts.WithLabelValues(e.Method, result).Inc()
			}
		},
	}
}

// Reason maps an error to a bounded metric label.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrIncompletePrerequisites):
		return "prerequisites"
	case errors.Is(err, domain.ErrEmptySelection):
		return "empty_selection"
	case errors.Is(err, domain.ErrStepNotReady):
		return "not_ready"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
