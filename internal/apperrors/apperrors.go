// Package apperrors defines the error kinds shared across the order core.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrOutOfRange is returned for index errors on image removal.
	ErrOutOfRange = errors.New("index out of range")

	// ErrTransitionRejected marks an illegal wizard transition.
	ErrTransitionRejected = errors.New("wizard transition rejected")

	// ErrDraftFrozen is returned for writes after the draft was submitted.
	ErrDraftFrozen = errors.New("draft is frozen")

	// ErrValidationInFlight is returned when validate is called while a
	// confirmation for the same attempt is still outstanding.
	ErrValidationInFlight = errors.New("payment validation already in progress")

	// ErrPaymentCancelled marks an attempt cancelled before confirmation.
	ErrPaymentCancelled = errors.New("payment cancelled")

	ErrSessionNotFound = errors.New("draft session not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// ValidationError is a field-scoped, user-correctable input error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransitionError carries the field errors that blocked a forward transition.
type TransitionError struct {
	From   string
	To     string
	Fields []ValidationError
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s rejected", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrTransitionRejected
}

// HTTPStatus maps domain errors to response codes for the HTTP surface.
func HTTPStatus(err error) int {
	var ve *ValidationError
	switch {
	case err == nil:
		return http.StatusOK

	case errors.As(err, &ve), errors.Is(err, ErrTransitionRejected):
		return http.StatusUnprocessableEntity

	case errors.Is(err, ErrOutOfRange):
		return http.StatusBadRequest

	case errors.Is(err, ErrDraftFrozen), errors.Is(err, ErrValidationInFlight),
		errors.Is(err, ErrPaymentCancelled):
		return http.StatusConflict

	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrOrderNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
