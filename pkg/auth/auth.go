// Package auth implements the mock sign-up and login used to gate the wizard.
//
// No credential is verified or stored: a well-formed form is enough to obtain an
// authenticated domain.AuthState. Only the display name is kept on the session.
package auth

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password SignUp accepts.
const MinPasswordLength = 6

// Redirect targets exposed to presentation layers.
const (
	LoginPath  = "/auth?mode=login"
	SignUpPath = "/auth?mode=signup"
	Step1Path  = "/step1"
)

// DefaultDisplayName is shown when an authenticated session has no user name.
const DefaultDisplayName = "User"

// SignUpForm is the account creation form.
type SignUpForm struct {
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ValidationError reports a rejected form.
// Message is the single user-facing summary; Fields holds one message per offending field.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}

// validate is a shared validator instance reporting JSON field names.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}()

// SignUp validates the form and signs the user in under their name.
func SignUp(form SignUpForm) (domain.AuthState, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Email = strings.TrimSpace(form.Email)

	if err := check(form); err != nil {
		return domain.Anonymous(), err
	}
	return domain.SignedIn(form.Name), nil
}

// Login checks both fields are filled and signs the user in under the local part of the email.
// There is no credential check; a value without "@" is used whole.
func Login(form LoginForm) (domain.AuthState, error) {
	form.Email = strings.TrimSpace(form.Email)

	if err := check(form); err != nil {
		return domain.Anonymous(), err
	}
	local, _, _ := strings.Cut(form.Email, "@")
	return domain.SignedIn(local), nil
}

// Logout returns the unauthenticated state. Session records are untouched.
func Logout() domain.AuthState {
	return domain.Anonymous()
}

// Require returns ErrUnauthenticated unless the state is signed in.
func Require(state domain.AuthState) error {
	if !state.Authenticated {
		return domain.ErrUnauthenticated
	}
	return nil
}

// DisplayName is the greeting name for a session.
func DisplayName(state domain.AuthState) string {
	if state.UserName == "" {
		return DefaultDisplayName
	}
	return state.UserName
}

// PlanTripTarget is where "start planning" leads: the first step when signed in, else login.
func PlanTripTarget(state domain.AuthState) string {
	if state.Authenticated {
		return Step1Path
	}
	return LoginPath
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate form: %w", err)
	}

	verr := &ValidationError{Fields: make(map[string]string, len(validationErrs))}
	rank := len(summaries)
	for _, e := range validationErrs {
		verr.Fields[e.Field()] = friendlyMessage(e)
		if r := summaryRank(e.Tag()); r < rank {
			rank = r
		}
	}
	verr.Message = summaries[min(rank, len(summaries)-1)].message
	return verr
}

// summaries are ordered: a missing field is reported before a mismatch, a mismatch before length.
var summaries = []struct {
	tag     string
	message string
}{
	{"required", "please fill in all fields"},
	{"email", "please enter a valid email address"},
	{"eqfield", "passwords do not match"},
	{"min", fmt.Sprintf("password must be at least %d characters", MinPasswordLength)},
	{"", "invalid form"},
}

func summaryRank(tag string) int {
	for i, s := range summaries {
		if s.tag == tag {
			return i
		}
	}
	return len(summaries) - 1
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "eqfield":
		return "must match password"
	default:
		return "is invalid"
	}
}
