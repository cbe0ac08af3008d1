package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnauthenticated is returned when a step requires a logged-in user.
var ErrUnauthenticated = errors.New("please login to continue")

// ErrIncompletePrerequisites is returned when the records of an earlier step are missing.
var ErrIncompletePrerequisites = errors.New("please complete previous steps")

// ErrEmptySelection is returned when advancing with no place selected.
var ErrEmptySelection = errors.New("please select at least one place")

// ErrStepNotReady is returned when the selection is edited before the step was entered.
var ErrStepNotReady = errors.New("place step is not ready")

// ErrInvalidInput is returned for malformed step input.
var ErrInvalidInput = errors.New("invalid input")

// PrerequisiteError names the step the user has to go back to.
type PrerequisiteError struct {
	Step    string // e.g. "step1"
	Missing string // record key, e.g. "step1Data"
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompletePrerequisites, e.Missing)
}

func (e *PrerequisiteError) Unwrap() error {
	return ErrIncompletePrerequisites
}
