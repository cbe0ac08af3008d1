package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/wayfarer"
	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/aretw0/wayfarer/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const beaches = "Beaches 🏖️"

func newTestServer(t *testing.T, opts ...Option) (*Server, *wayfarer.Planner) {
	t.Helper()
	p, err := wayfarer.New()
	require.NoError(t, err)
	srv, err := NewServer(p, opts...)
	require.NoError(t, err)
	p.OnChange(srv.Streams.Publish)
	t.Cleanup(srv.Close)
	return srv, p
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func startSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := do(t, h, "POST", "/sessions", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var s domain.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	require.NotEmpty(t, s.ID)
	return s.ID
}

func login(t *testing.T, h http.Handler, id string) {
	t.Helper()
	rr := do(t, h, "POST", "/sessions/"+id+"/login", map[string]string{"email": "asha@example.com", "password": "x"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestGetHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, "GET", "/info", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "wayfarer-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
	assert.Equal(t, "0.1.0", resp["api_version"])
}

func TestOpenAPISpec(t *testing.T) {
	doc, err := LoadSpec()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/sessions/{sessionID}/places/toggle"))

	srv, _ := newTestServer(t)
	rr := do(t, srv, "GET", "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "openapi: 3.0.3")
}

func TestCatalogEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, "GET", "/destinations", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var cities []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cities))
	assert.Contains(t, cities, "Andaman")

	rr = do(t, srv, "GET", "/destinations/Andaman/categories", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Beaches")

	rr = do(t, srv, "GET", "/features", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var features []map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &features))
	assert.Len(t, features, 5)
}

func TestWizardFlow(t *testing.T) {
	srv, p := newTestServer(t)
	id := startSession(t, srv)

	rr := do(t, srv, "POST", "/sessions/"+id+"/signup", map[string]string{
		"name": "Asha", "phone": "555-0100", "email": "asha@example.com",
		"password": "secret1", "confirm_password": "secret1",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, srv, "PUT", "/sessions/"+id+"/destination", map[string]string{"destination": "Andaman"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, srv, "PUT", "/sessions/"+id+"/interests", map[string][]string{"interests": {beaches}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, srv, "GET", "/sessions/"+id+"/places", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var view struct {
		Status    string   `json:"status"`
		Selection []string `json:"selection"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "ready", view.Status)
	assert.Len(t, view.Selection, 5)

	rr = do(t, srv, "POST", "/sessions/"+id+"/places/toggle", map[string]string{"place_name": "Cellular Jail"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.NotContains(t, view.Selection, "Cellular Jail")

	rr = do(t, srv, "POST", "/sessions/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var step3 domain.Step3Data
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &step3))
	assert.Equal(t, []string{"Radhanagar Beach", "Elephant Beach", "Ross Island", "Mount Harriet National Park"}, step3.Places)

	s, err := p.Session(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAdvancing, s.Step.Status)
	assert.Equal(t, "Asha", s.Auth.UserName)

	rr = do(t, srv, "GET", "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "step3Data")
}

func TestPlacesRefetchKeepsDraft(t *testing.T) {
	srv, _ := newTestServer(t)
	id := startSession(t, srv)
	login(t, srv, id)
	require.Equal(t, http.StatusOK, do(t, srv, "PUT", "/sessions/"+id+"/destination", map[string]string{"destination": "Andaman"}).Code)
	require.Equal(t, http.StatusOK, do(t, srv, "PUT", "/sessions/"+id+"/interests", map[string][]string{"interests": {beaches}}).Code)

	var view struct {
		Selection []string `json:"selection"`
	}
	rr := do(t, srv, "GET", "/sessions/"+id+"/places", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.Len(t, view.Selection, 5)

	rr = do(t, srv, "POST", "/sessions/"+id+"/places/toggle", map[string]string{"place_name": "Cellular Jail"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, srv, "GET", "/sessions/"+id+"/places", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Len(t, view.Selection, 4)
	assert.NotContains(t, view.Selection, "Cellular Jail")

	rr = do(t, srv, "POST", "/sessions/"+id+"/places", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Len(t, view.Selection, 5, "re-entering resets the draft")
}

func TestErrorMapping(t *testing.T) {
	srv, _ := newTestServer(t)
	id := startSession(t, srv)

	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		rr := do(t, srv, "GET", "/sessions/"+id+"/places", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		resp := decodeError(t, rr)
		assert.Equal(t, "unauthenticated", resp.Code)
		assert.Equal(t, "/auth?mode=login", resp.Redirect)
	})

	login(t, srv, id)

	t.Run("missing destination redirects to step1", func(t *testing.T) {
		rr := do(t, srv, "GET", "/sessions/"+id+"/places", nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "/step1", decodeError(t, rr).Redirect)
	})

	t.Run("missing interests redirects to step2", func(t *testing.T) {
		rr := do(t, srv, "PUT", "/sessions/"+id+"/destination", map[string]string{"destination": "Andaman"})
		require.Equal(t, http.StatusOK, rr.Code)

		rr = do(t, srv, "GET", "/sessions/"+id+"/places", nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "/step2", decodeError(t, rr).Redirect)
	})

	t.Run("toggle before entering", func(t *testing.T) {
		rr := do(t, srv, "POST", "/sessions/"+id+"/places/toggle-all", nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "step_not_ready", decodeError(t, rr).Code)
	})

	t.Run("empty selection", func(t *testing.T) {
		rr := do(t, srv, "PUT", "/sessions/"+id+"/interests", map[string][]string{"interests": {beaches}})
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, http.StatusOK, do(t, srv, "GET", "/sessions/"+id+"/places", nil).Code)
		require.Equal(t, http.StatusOK, do(t, srv, "POST", "/sessions/"+id+"/places/toggle-all", nil).Code)

		rr = do(t, srv, "POST", "/sessions/"+id+"/advance", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, "empty_selection", decodeError(t, rr).Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		rr := do(t, srv, "GET", "/sessions/nope", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "session_not_found", decodeError(t, rr).Code)
	})

	t.Run("form validation", func(t *testing.T) {
		rr := do(t, srv, "POST", "/sessions/"+id+"/signup", map[string]string{
			"name": "Asha", "phone": "1", "email": "not-an-email",
			"password": "secret1", "confirm_password": "secret1",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeError(t, rr)
		assert.Equal(t, "invalid_input", resp.Code)
		assert.Equal(t, "please enter a valid email address", resp.Message)
		assert.Contains(t, resp.Fields, "email")
	})

	t.Run("schema validation", func(t *testing.T) {
		rr := do(t, srv, "PUT", "/sessions/"+id+"/destination", map[string]int{"destination": 5})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid_request", decodeError(t, rr).Code)

		rr = do(t, srv, "POST", "/sessions/"+id+"/places/toggle", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, WithAuthRateLimit(0.001, 1))
	id := startSession(t, srv)

	form := map[string]string{"email": "asha@example.com", "password": "x"}
	assert.Equal(t, http.StatusOK, do(t, srv, "POST", "/sessions/"+id+"/login", form).Code)

	rr := do(t, srv, "POST", "/sessions/"+id+"/login", form)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "rate_limited", decodeError(t, rr).Code)

	// Other session routes are not limited.
	assert.Equal(t, http.StatusOK, do(t, srv, "GET", "/sessions/"+id, nil).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	m.Advances.Inc()
	srv, _ := newTestServer(t, WithMetricsHandler(m.Handler()))

	rr := do(t, srv, "GET", "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "wayfarer_advances_total")
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t, WithCORSOrigins("https://app.example"))

	req := httptest.NewRequest("OPTIONS", "/sessions", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	assert.Equal(t, "https://app.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

// syncRecorder guards the body written by the streaming handler.
type syncRecorder struct {
	*httptest.ResponseRecorder
	mu sync.Mutex
}

func (r *syncRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ResponseRecorder.Write(b)
}

func (r *syncRecorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Body.String()
}

func TestSubscribeEvents_Session(t *testing.T) {
	srv, _ := newTestServer(t)
	id := startSession(t, srv)
	login(t, srv, id)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &syncRecorder{ResponseRecorder: httptest.NewRecorder()}
	req := httptest.NewRequest("GET", "/sessions/"+id+"/events?watch=records", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.ServeHTTP(rec, req)
	}()

	require.Eventually(t, func() bool { return srv.Streams.Subscribers(id) == 1 }, time.Second, 10*time.Millisecond)

	// Logout only changes auth and is filtered out.
	require.Equal(t, http.StatusOK, do(t, srv, "POST", "/sessions/"+id+"/logout", nil).Code)
	login(t, srv, id)
	require.Equal(t, http.StatusOK, do(t, srv, "PUT", "/sessions/"+id+"/destination", map[string]string{"destination": "Andaman"}).Code)

	require.Eventually(t, func() bool { return strings.Contains(rec.String(), "step1Data") }, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	output := rec.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, `"destination":"Andaman"`)
	assert.NotContains(t, output, `"auth"`)
	assert.Equal(t, 0, srv.Streams.Subscribers(id))
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := do(t, srv, "GET", "/sessions/ghost/events", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStreamManager_DropsForSlowClients(t *testing.T) {
	sm := NewStreamManager(slogDiscard())
	ch, cancel := sm.Subscribe("s")
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		sm.Broadcast("s", "msg")
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err      error
		status   int
		redirect string
	}{
		{domain.ErrSessionNotFound, http.StatusNotFound, ""},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "/auth?mode=login"},
		{&domain.PrerequisiteError{Step: "step2", Missing: "step2Data"}, http.StatusConflict, "/step2"},
		{domain.ErrEmptySelection, http.StatusUnprocessableEntity, ""},
		{domain.ErrInvalidInput, http.StatusBadRequest, ""},
		{context.Canceled, http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		status, _, redirect := StatusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.redirect, redirect)
	}
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
