package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/mistermo/internal/core"
	"github.com/example/mistermo/internal/middleware"
)

// statusFor maps the service error taxonomy onto HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, core.ErrMalformedPayload):
		return http.StatusUnprocessableEntity, "Malformed payload"
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError writes the ErrorResponse for err. Details are only exposed for
// client errors.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	status, message := statusFor(err)
	_ = c.Error(err)

	fields := []zap.Field{
		zap.String("op", op),
		zap.String("request_id", middleware.RequestID(c)),
		zap.Error(err),
	}
	resp := ErrorResponse{Error: message}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields...)
	} else {
		logger.Debug("Request rejected", fields...)
		resp.Details = err.Error()
	}
	c.JSON(status, resp)
}

// bindJSON decodes the body into obj. An empty body leaves obj zero-valued so
// the service reports the missing fields; anything undecodable is a
// malformed payload.
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(core.ErrMalformedPayload, err)
	}
	return nil
}
