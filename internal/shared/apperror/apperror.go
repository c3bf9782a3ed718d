package apperror

import (
	"context"
	"errors"
	"net/http"
)

// Sentinel errors for the booking pipeline. Workflow code wraps these with
// fmt.Errorf("...: %w", ...); the HTTP layer maps them to status codes.
var (
	ErrValidation            = errors.New("validation failed")
	ErrNotAvailable          = errors.New("not available")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrSearchUnavailable     = errors.New("search unavailable")
	ErrPaymentFailed         = errors.New("payment failed")
	ErrConfirmationFailed    = errors.New("confirmation failed")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrNotFound              = errors.New("not found")
)

// Kind returns a stable machine-readable label for an error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotAvailable):
		return "not_available"
	case errors.Is(err, ErrSearchUnavailable):
		return "search_unavailable"
	case errors.Is(err, ErrDependencyUnavailable):
		return "dependency_unavailable"
	case errors.Is(err, ErrPaymentFailed):
		return "payment_failed"
	case errors.Is(err, ErrConfirmationFailed):
		return "confirmation_failed"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}

// HTTPStatus maps a pipeline error to the status code the API contract
// requires. ErrConfirmationFailed maps to 200: payment was captured and the
// booking is surfaced to the caller in its degraded PAID state.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrNotAvailable),
		errors.Is(err, ErrPaymentFailed):
		return http.StatusBadRequest
	case errors.Is(err, ErrConfirmationFailed):
		return http.StatusOK
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSearchUnavailable),
		errors.Is(err, ErrDependencyUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
