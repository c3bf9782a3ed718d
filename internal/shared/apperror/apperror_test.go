package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", ErrValidation, "validation_error"},
		{"not available", ErrNotAvailable, "not_available"},
		{"search unavailable", ErrSearchUnavailable, "search_unavailable"},
		{"dependency unavailable", ErrDependencyUnavailable, "dependency_unavailable"},
		{"payment failed", ErrPaymentFailed, "payment_failed"},
		{"confirmation failed", ErrConfirmationFailed, "confirmation_failed"},
		{"invalid transition", ErrInvalidTransition, "invalid_transition"},
		{"not found", ErrNotFound, "not_found"},
		{"timeout", context.DeadlineExceeded, "timeout"},
		{"unknown", errors.New("boom"), "internal"},
		{"wrapped", fmt.Errorf("booking x: %w: card declined", ErrPaymentFailed), "payment_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"not available", ErrNotAvailable, http.StatusBadRequest},
		{"payment failed", ErrPaymentFailed, http.StatusBadRequest},
		{"confirmation failed is a degraded success", ErrConfirmationFailed, http.StatusOK},
		{"invalid transition", ErrInvalidTransition, http.StatusConflict},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"search unavailable", ErrSearchUnavailable, http.StatusBadGateway},
		{"dependency unavailable", ErrDependencyUnavailable, http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("train 12301: %w", ErrNotAvailable), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
