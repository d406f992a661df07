package handlers

import (
	"errors"
	"io"
	"net/http"

	"project_space/internal/service"

	"github.com/gin-gonic/gin"
)

// Client-facing messages; internal causes are only logged.
const (
	msgInvalidBody        = "Invalid request body"
	msgMissingID          = "Project ID is required"
	msgNotFound           = "Project not found"
	msgForbidden          = "Permission denied"
	msgEmailInUse         = "Email is already in use"
	msgInvalidCredentials = "Invalid email or password"

	msgRegisterFailed = "Failed to register user"
	msgLoginFailed    = "Failed to log in"
	msgLoadFailed     = "Failed to load projects"
	msgSaveFailed     = "Failed to save project"
	msgDeleteFailed   = "Failed to delete project"
)

// statusFor maps a service error to an HTTP status and client message.
// Unknown errors map to 500 with the fallback message.
func statusFor(err error, fallback string) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, service.ErrMissingID):
		return http.StatusBadRequest, msgMissingID
	case errors.Is(err, service.ErrEmailInUse):
		return http.StatusBadRequest, msgEmailInUse
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, msgAuthenticate
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, fallback
	}
}

// Centralized error logging and response.
func (h *Handler) respondError(c *gin.Context, err error, fallback, logKey string, kv ...interface{}) {
	code, msg := statusFor(err, fallback)
	if h.log != nil {
		fields := append([]interface{}{"err", err, "status", code}, kv...)
		if code >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.JSON(code, gin.H{"message": msg})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// An empty body binds as the zero value so that validation reports missing fields.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return false
	}
	return true
}
