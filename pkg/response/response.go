// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/loader"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/rawdata"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/repository"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/service"
	"github.com/maxviazov/hockey-xg-preprocessor/internal/shot"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, rawdata.ErrInvalidDocument):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_document", Message: err.Error()}
	case errors.Is(err, loader.ErrMalformedGame),
		errors.Is(err, shot.ErrMissingField),
		errors.Is(err, shot.ErrInvalidClock),
		errors.Is(err, shot.ErrNotShotEligible):
		return http.StatusUnprocessableEntity, ErrorPayload{Error: "unprocessable_game", Message: err.Error()}
	case errors.Is(err, service.ErrSinkNotConfigured):
		return http.StatusServiceUnavailable, ErrorPayload{Error: "sink_not_configured"}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	case errors.Is(err, repository.ErrSchemaMissing):
		return http.StatusServiceUnavailable, ErrorPayload{Error: "schema_missing"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
