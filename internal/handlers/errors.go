package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epeers/tracker/internal/middleware"
	"github.com/epeers/tracker/internal/models"
	"github.com/epeers/tracker/internal/services"
)

// respondError maps service errors to a status and error code, and marks the
// response uncacheable.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, services.ErrConfiguration):
		status, code = http.StatusInternalServerError, "configuration_error"
	case errors.Is(err, services.ErrUpstreamFetch):
		status, code = http.StatusBadGateway, "upstream_error"
	case errors.Is(err, services.ErrInsufficientData):
		status, code = http.StatusBadGateway, "insufficient_data"
	}

	middleware.Logger(c).WithField("code", code).Errorf("%s: %v", c.FullPath(), err)
	middleware.NoStore(c)
	c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

func respondBadRequest(c *gin.Context, msg string) {
	middleware.NoStore(c)
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "bad_request",
		Message: msg,
	})
}
