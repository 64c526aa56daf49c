package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/service"
)

const (
	codeValidation         = "validation_error"
	codeInvalidCredentials = "invalid_credentials"
	codeConflict           = "conflict"
	codeNotFound           = "not_found"
	codeNoToken            = "no_token"
	codeMalformedToken     = "malformed_token"
	codeInvalidToken       = "invalid_token"
	codeArchiveDisabled    = "archive_disabled"
	codeStreamDisabled     = "stream_disabled"
	codeInternal           = "internal_error"
)

type apiError struct {
	status  int
	code    string
	message string
}

// classifyError maps service errors onto HTTP responses. Unknown errors are
// internal and their text is replaced by fallback.
func classifyError(err error, fallback string) apiError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return apiError{http.StatusBadRequest, codeValidation, err.Error()}
	case errors.Is(err, service.ErrInvalidCredentials):
		return apiError{http.StatusBadRequest, codeInvalidCredentials, "Invalid credentials"}
	case errors.Is(err, service.ErrEmailTaken):
		return apiError{http.StatusBadRequest, codeConflict, "Email already registered"}
	case errors.Is(err, service.ErrAlreadyCompleted):
		return apiError{http.StatusBadRequest, codeConflict, "Project is already completed"}
	case errors.Is(err, service.ErrProjectNotFound):
		return apiError{http.StatusNotFound, codeNotFound, "Project not found"}
	case errors.Is(err, service.ErrUserNotFound):
		return apiError{http.StatusNotFound, codeNotFound, "User not found"}
	default:
		return apiError{http.StatusInternalServerError, codeInternal, fallback}
	}
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	e := classifyError(err, fallback)
	if e.status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.FullPath()).Error(fallback)
	}
	c.AbortWithStatusJSON(e.status, gin.H{"error": e.message, "code": e.code})
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}
