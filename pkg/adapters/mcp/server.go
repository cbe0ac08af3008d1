package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/wayfarer"
	"github.com/aretw0/wayfarer/internal/logging"
	"github.com/aretw0/wayfarer/pkg/auth"
	"github.com/aretw0/wayfarer/pkg/catalog"
	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/aretw0/wayfarer/pkg/ports"
	"github.com/aretw0/wayfarer/pkg/wizard"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CatalogURI is the resource exposing the place catalog.
const CatalogURI = "wayfarer://catalog"

// Planner is what the MCP server drives.
type Planner interface {
	ports.Planner
	Catalog() *catalog.Catalog
}

// Destination describes a city and the interests it offers.
type Destination struct {
	City       string   `json:"city" jsonschema_description:"City name, as accepted by choose_destination"`
	Categories []string `json:"categories" jsonschema_description:"Interests available in the city"`
}

// DestinationList is the result of list_destinations.
type DestinationList struct {
	Destinations []Destination `json:"destinations"`
}

// SessionArgs identifies the session a tool acts on.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

type loginArgs struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type signUpArgs struct {
	SessionID string `json:"session_id"`
	auth.SignUpForm
}

type destinationArgs struct {
	SessionID   string `json:"session_id"`
	Destination string `json:"destination"`
}

type interestsArgs struct {
	SessionID string   `json:"session_id"`
	Interests []string `json:"interests"`
}

type toggleArgs struct {
	SessionID string `json:"session_id"`
	PlaceName string `json:"place_name"`
}

// Server exposes the planner as an MCP server.
type Server struct {
	planner   Planner
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(planner Planner, opts ...Option) *Server {
	s := &Server{
		planner:   planner,
		mcpServer: server.NewMCPServer("wayfarer-mcp", wayfarer.Version, server.WithToolCapabilities(false), server.WithResourceCapabilities(false, false)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
// It blocks until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	allowAll := cors.AllowAll()
	mux := http.NewServeMux()
	mux.Handle("/sse", allowAll.Handler(sseServer.SSEHandler()))
	mux.Handle("/message", allowAll.Handler(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func sessionParam() mcp.ToolOption {
	return mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID returned by start_session"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_destinations",
		mcp.WithDescription("List the cities of the catalog and the interests each one offers."),
		mcp.WithOutputSchema[DestinationList](),
	), mcp.NewStructuredToolHandler(s.handleListDestinations))

	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a new trip planning session. The session starts signed out."),
	), mcp.NewStructuredToolHandler(s.handleStartSession))

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Read a session: auth state, step records and the place step draft."),
		sessionParam(),
	), mcp.NewStructuredToolHandler(s.handleGetSession))

	s.mcpServer.AddTool(mcp.NewTool("sign_up",
		mcp.WithDescription("Create an account (mock) and sign the session in."),
		sessionParam(),
		mcp.WithString("name", mcp.Required()),
		mcp.WithString("phone", mcp.Required()),
		mcp.WithString("email", mcp.Required()),
		mcp.WithString("password", mcp.Required(), mcp.Description("At least 6 characters")),
		mcp.WithString("confirm_password", mcp.Required()),
	), mcp.NewStructuredToolHandler(s.handleSignUp))

	s.mcpServer.AddTool(mcp.NewTool("login",
		mcp.WithDescription("Sign the session in (mock: any well-formed email and password)."),
		sessionParam(),
		mcp.WithString("email", mcp.Required()),
		mcp.WithString("password", mcp.Required()),
	), mcp.NewStructuredToolHandler(s.handleLogin))

	s.mcpServer.AddTool(mcp.NewTool("choose_destination",
		mcp.WithDescription("Record the destination city (step 1)."),
		sessionParam(),
		mcp.WithString("destination", mcp.Required(), mcp.Description("A city from list_destinations")),
	), mcp.NewStructuredToolHandler(s.handleChooseDestination))

	s.mcpServer.AddTool(mcp.NewTool("choose_interests",
		mcp.WithDescription("Record the interests (step 2). Requires a destination."),
		sessionParam(),
		mcp.WithArray("interests", mcp.Required(), mcp.WithStringItems(), mcp.Description("Interest categories, e.g. \"Beaches 🏖️\"")),
	), mcp.NewStructuredToolHandler(s.handleChooseInterests))

	s.mcpServer.AddTool(mcp.NewTool("enter_places",
		mcp.WithDescription("Enter the place step: partition the city's places by interest and select all of them."),
		sessionParam(),
		mcp.WithOutputSchema[wizard.View](),
	), mcp.NewStructuredToolHandler(s.handleEnterPlaces))

	s.mcpServer.AddTool(mcp.NewTool("toggle_place",
		mcp.WithDescription("Add or remove one place from the selection."),
		sessionParam(),
		mcp.WithString("place_name", mcp.Required()),
		mcp.WithOutputSchema[wizard.View](),
	), mcp.NewStructuredToolHandler(s.handleTogglePlace))

	s.mcpServer.AddTool(mcp.NewTool("toggle_all_places",
		mcp.WithDescription("Select every place, or clear the selection when all are selected."),
		sessionParam(),
		mcp.WithOutputSchema[wizard.View](),
	), mcp.NewStructuredToolHandler(s.handleToggleAll))

	s.mcpServer.AddTool(mcp.NewTool("advance",
		mcp.WithDescription("Hand the selection off to the next step. Fails when nothing is selected."),
		sessionParam(),
		mcp.WithOutputSchema[domain.Step3Data](),
	), mcp.NewStructuredToolHandler(s.handleAdvance))
}

func (s *Server) handleListDestinations(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (DestinationList, error) {
	cities := s.planner.Destinations()
	out := DestinationList{Destinations: make([]Destination, 0, len(cities))}
	for _, city := range cities {
		out.Destinations = append(out.Destinations, Destination{City: city, Categories: s.planner.Categories(city)})
	}
	return out, nil
}

func (s *Server) handleStartSession(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (*domain.Session, error) {
	return s.planner.StartSession(ctx)
}

func (s *Server) handleGetSession(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (*domain.Session, error) {
	return s.planner.Session(ctx, args.SessionID)
}

func (s *Server) handleSignUp(ctx context.Context, _ mcp.CallToolRequest, args signUpArgs) (*domain.Session, error) {
	return explain(s.planner.SignUp(ctx, args.SessionID, args.SignUpForm))
}

func (s *Server) handleLogin(ctx context.Context, _ mcp.CallToolRequest, args loginArgs) (*domain.Session, error) {
	return explain(s.planner.Login(ctx, args.SessionID, auth.LoginForm{Email: args.Email, Password: args.Password}))
}

func (s *Server) handleChooseDestination(ctx context.Context, _ mcp.CallToolRequest, args destinationArgs) (*domain.Session, error) {
	return explain(s.planner.SubmitDestination(ctx, args.SessionID, args.Destination))
}

func (s *Server) handleChooseInterests(ctx context.Context, _ mcp.CallToolRequest, args interestsArgs) (*domain.Session, error) {
	return explain(s.planner.SubmitInterests(ctx, args.SessionID, args.Interests))
}

func (s *Server) handleEnterPlaces(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (*wizard.View, error) {
	return explain(s.planner.EnterPlaces(ctx, args.SessionID))
}

func (s *Server) handleTogglePlace(ctx context.Context, _ mcp.CallToolRequest, args toggleArgs) (*wizard.View, error) {
	return explain(s.planner.TogglePlace(ctx, args.SessionID, args.PlaceName))
}

func (s *Server) handleToggleAll(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (*wizard.View, error) {
	return explain(s.planner.ToggleAllPlaces(ctx, args.SessionID))
}

func (s *Server) handleAdvance(ctx context.Context, _ mcp.CallToolRequest, args SessionArgs) (*domain.Step3Data, error) {
	return explain(s.planner.Advance(ctx, args.SessionID))
}

// explain adds the tool to call next when a step prerequisite is missing.
func explain[T any](v T, err error) (T, error) {
	if err == nil {
		return v, nil
	}
	var prereq *domain.PrerequisiteError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		err = fmt.Errorf("%w (call login or sign_up first)", err)
	case errors.As(err, &prereq) && prereq.Step == "step1":
		err = fmt.Errorf("%w (call choose_destination first)", err)
	case errors.As(err, &prereq) && prereq.Step == "step2":
		err = fmt.Errorf("%w (call choose_interests first)", err)
	case errors.Is(err, domain.ErrStepNotReady):
		err = fmt.Errorf("%w (call enter_places first)", err)
	}
	return v, err
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Place Catalog",
		mcp.WithResourceDescription("Every place of every city, with category, rating and description."),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.planner.Catalog().Places())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CatalogURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
