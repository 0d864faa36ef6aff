package handlers

import (
	"errors"
	"net/http"

	"campbook/internal/domain"
	"campbook/internal/http/middleware"
	"campbook/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"error":      ErrorBody{Code: code, Message: message, Details: details},
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	var (
		ve domain.ValidationError
		ce domain.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		var details any
		if ve.Field != "" {
			details = gin.H{"field": ve.Field}
		}
		respondError(c, http.StatusBadRequest, ve.ErrorCode(), err.Error(), details)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, domain.CodeUnauthorized, err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, domain.CodeForbidden, err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, domain.CodeNotFound, err.Error(), nil)
	case errors.As(err, &ce):
		respondError(c, http.StatusConflict, ce.ErrorCode(), err.Error(), ce.Details)
	case domain.IsRateLimited(err):
		respondError(c, http.StatusTooManyRequests, domain.CodeRateLimited, err.Error(), nil)
	default:
		_ = c.Error(err)
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		respondError(c, http.StatusInternalServerError, domain.CodeInternal, "internal server error", nil)
	}
}
