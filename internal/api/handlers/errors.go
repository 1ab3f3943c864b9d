package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"github.com/linskybing/engagement-go/pkg/response"
)

// retryAfterSeconds is advertised when a collaborator outage made the
// request fail.
const retryAfterSeconds = "5"

// respondError writes err with the status its kind maps to. Unclassified
// errors are attached to the context for the request logger and answered
// with a generic message.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if apperr.Retryable(err) {
		c.Header("Retry-After", retryAfterSeconds)
	}
	switch {
	case status == http.StatusInternalServerError:
		_ = c.Error(err)
		c.JSON(status, response.ErrorResponse{Error: "internal error"})
	case errors.Is(err, apperr.ErrCapacityExceeded):
		c.JSON(status, response.ErrorResponse{Error: apperr.ErrCapacityExceeded.Error()})
	default:
		c.JSON(status, response.ErrorResponse{Error: err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
}
