package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/wayfarer/pkg/auth"
	"github.com/aretw0/wayfarer/pkg/domain"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Redirect string            `json:"redirect,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// StatusFor maps a planner error to its HTTP status, error code and redirect target.
func StatusFor(err error) (int, string, string) {
	var prereq *domain.PrerequisiteError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found", ""
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", auth.LoginPath
	case errors.As(err, &prereq):
		return http.StatusConflict, "incomplete_prerequisites", "/" + prereq.Step
	case errors.Is(err, domain.ErrIncompletePrerequisites):
		return http.StatusConflict, "incomplete_prerequisites", auth.Step1Path
	case errors.Is(err, domain.ErrStepNotReady):
		return http.StatusConflict, "step_not_ready", ""
	case errors.Is(err, domain.ErrEmptySelection):
		return http.StatusUnprocessableEntity, "empty_selection", ""
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input", ""
	default:
		return http.StatusInternalServerError, "internal", ""
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, redirect := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "path", r.URL.Path, "err", err)
		writeJSON(w, status, ErrorResponse{Code: code, Message: "internal error"})
		return
	}

	resp := ErrorResponse{Code: code, Message: err.Error(), Redirect: redirect}
	var verr *auth.ValidationError
	if errors.As(err, &verr) {
		resp.Message = verr.Message
		resp.Fields = verr.Fields
	}
	s.logger.Debug("Request rejected", "path", r.URL.Path, "status", status, "err", err)
	writeJSON(w, status, resp)
}

func writeError(w http.ResponseWriter, status int, code, message, redirect string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message, Redirect: redirect})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
