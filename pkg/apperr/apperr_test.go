package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", fmt.Errorf("%w: campaign 7", ErrNotFound), http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"conflict", fmt.Errorf("%w: already applied", ErrConflict), http.StatusConflict},
		{"capacity", fmt.Errorf("%w: campaign 1", ErrCapacityExceeded), http.StatusConflict},
		{"invalid state", ErrInvalidState, http.StatusUnprocessableEntity},
		{"upstream", fmt.Errorf("profiles: %w", ErrUpstreamUnavailable), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(fmt.Errorf("lookup: %w", ErrUpstreamUnavailable)))
	assert.False(t, Retryable(ErrForbidden))
	assert.False(t, Retryable(ErrCapacityExceeded))
}
