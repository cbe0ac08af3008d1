package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/wayfarer"
	"github.com/aretw0/wayfarer/internal/logging"
	"github.com/aretw0/wayfarer/internal/ratelimit"
	"github.com/aretw0/wayfarer/pkg/auth"
	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/aretw0/wayfarer/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server exposes a Planner over HTTP.
type Server struct {
	planner ports.Planner
	Streams *StreamManager

	spec        *openapi3.T
	router      *chi.Mux
	logger      *slog.Logger
	metrics     http.Handler
	corsOrigins []string
	authLimiter *ratelimit.KeyedRateLimiter
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler serves h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithCORSOrigins restricts the allowed origins (default: any).
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithAuthRateLimit limits sign-up and login per client address.
func WithAuthRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.authLimiter = ratelimit.New(rps, burst)
	}
}

// NewServer builds the router. The planner diffs reach SSE subscribers
// once Streams.Publish is registered as a change listener.
func NewServer(planner ports.Planner, opts ...Option) (*Server, error) {
	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}

	s := &Server{
		planner:     planner,
		spec:        spec,
		router:      chi.NewRouter(),
		logger:      logging.NewNop(),
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	s.routes()
	return s, nil
}

// NewHandler is NewServer for callers that only need the handler.
func NewHandler(planner ports.Planner, opts ...Option) (http.Handler, error) {
	return NewServer(planner, opts...)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops background work.
func (s *Server) Close() {
	if s.authLimiter != nil {
		s.authLimiter.Stop()
	}
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	s.router.Get("/health", s.getHealth)
	s.router.Get("/info", s.getInfo)
	s.router.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics)
	}

	s.router.Group(func(r chi.Router) {
		r.Use(s.validateRequest)

		r.Get("/features", s.listFeatures)
		r.Get("/destinations", s.listDestinations)
		r.Get("/destinations/{city}/categories", s.listCategories)

		r.Post("/sessions", s.startSession)
		r.Get("/sessions/{sessionID}", s.getSession)

		authRoutes := r.With()
		if s.authLimiter != nil {
			authRoutes = r.With(s.rateLimit)
		}
		authRoutes.Post("/sessions/{sessionID}/signup", s.signUp)
		authRoutes.Post("/sessions/{sessionID}/login", s.login)
		r.Post("/sessions/{sessionID}/logout", s.logout)

		r.Put("/sessions/{sessionID}/destination", s.submitDestination)
		r.Put("/sessions/{sessionID}/interests", s.submitInterests)

		r.Get("/sessions/{sessionID}/places", s.resumePlaces)
		r.Post("/sessions/{sessionID}/places", s.enterPlaces)
		r.Post("/sessions/{sessionID}/places/toggle", s.togglePlace)
		r.Post("/sessions/{sessionID}/places/toggle-all", s.toggleAllPlaces)
		r.Post("/sessions/{sessionID}/advance", s.advance)

		r.Get("/sessions/{sessionID}/events", s.subscribeEvents)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// RealIP has already rewritten RemoteAddr.
		key := r.RemoteAddr
		if !s.authLimiter.Allow(key) {
			s.logger.Warn("Rate limit exceeded", "ip", key, "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, please try again later", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "wayfarer-http",
		"version":     wayfarer.Version,
		"api_version": apiVersion,
	})
}

func (s *Server) listFeatures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, auth.Features())
}

func (s *Server) listDestinations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.planner.Destinations())
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.planner.Categories(chi.URLParam(r, "city")))
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.planner.StartSession(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.planner.Session(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var form auth.SignUpForm
	if !s.decode(w, r, &form) {
		return
	}
	s.respond(w, r)(s.planner.SignUp(r.Context(), chi.URLParam(r, "sessionID"), form))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var form auth.LoginForm
	if !s.decode(w, r, &form) {
		return
	}
	s.respond(w, r)(s.planner.Login(r.Context(), chi.URLParam(r, "sessionID"), form))
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r)(s.planner.Logout(r.Context(), chi.URLParam(r, "sessionID")))
}

type destinationRequest struct {
	Destination string `json:"destination"`
}

func (s *Server) submitDestination(w http.ResponseWriter, r *http.Request) {
	var body destinationRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.respond(w, r)(s.planner.SubmitDestination(r.Context(), chi.URLParam(r, "sessionID"), body.Destination))
}

type interestsRequest struct {
	Interests []string `json:"interests"`
}

func (s *Server) submitInterests(w http.ResponseWriter, r *http.Request) {
	var body interestsRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.respond(w, r)(s.planner.SubmitInterests(r.Context(), chi.URLParam(r, "sessionID"), body.Interests))
}

// resumePlaces returns the current draft, entering the step only when it is not ready,
// so a refetch keeps the user's toggles.
func (s *Server) resumePlaces(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	view, err := s.planner.PlacesView(r.Context(), sessionID)
	if errors.Is(err, domain.ErrStepNotReady) {
		view, err = s.planner.EnterPlaces(r.Context(), sessionID)
	}
	s.respond(w, r)(view, err)
}

func (s *Server) enterPlaces(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r)(s.planner.EnterPlaces(r.Context(), chi.URLParam(r, "sessionID")))
}

type toggleRequest struct {
	PlaceName string `json:"place_name"`
}

func (s *Server) togglePlace(w http.ResponseWriter, r *http.Request) {
	var body toggleRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.respond(w, r)(s.planner.TogglePlace(r.Context(), chi.URLParam(r, "sessionID"), body.PlaceName))
}

func (s *Server) toggleAllPlaces(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r)(s.planner.ToggleAllPlaces(r.Context(), chi.URLParam(r, "sessionID")))
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r)(s.planner.Advance(r.Context(), chi.URLParam(r, "sessionID")))
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body", "")
		return false
	}
	return true
}

// respond writes either the result or the mapped error.
func (s *Server) respond(w http.ResponseWriter, r *http.Request) func(any, error) {
	return func(v any, err error) {
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}
