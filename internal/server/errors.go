package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// Messages returned to clients.
const (
	msgNotFound       = "Resume not found"
	msgInvalidBody    = "Invalid request body"
	msgBodyTooLarge   = "Request body too large"
	msgGenerateFailed = "Failed to generate resume"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		missing  *types.MissingFieldError
		invalid  *schemas.ValidationError
		notFound *store.NotFoundError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &missing), errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage returns the error text that is safe to show a client. Server
// side failures get a generic message.
func clientMessage(err error) string {
	var (
		missing *types.MissingFieldError
		invalid *schemas.ValidationError
	)
	switch {
	case errors.As(err, &missing):
		return missing.Error()
	case errors.As(err, &invalid):
		return invalid.Message()
	}

	switch HTTPStatus(err) {
	case http.StatusNotFound:
		return msgNotFound
	case http.StatusRequestEntityTooLarge:
		return msgBodyTooLarge
	default:
		return msgGenerateFailed
	}
}
