// Package apperr defines the error kinds shared by the engagement services.
// Callers wrap them with fmt.Errorf("%w: ...") and match with errors.Is.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("conflict")
	ErrInvalidState        = errors.New("invalid state")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// HTTPStatus maps an error kind to the status code returned to API callers.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether a caller may try the same request again later.
// Only collaborator outages qualify; validation and authorization never do.
func Retryable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}
