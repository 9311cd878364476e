package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "missing field",
			err:      &types.MissingFieldError{Field: "personal.name"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "schema violation",
			err:      &schemas.ValidationError{},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("lookup: %w", &store.NotFoundError{ID: "x"}),
			expected: http.StatusNotFound,
		},
		{
			name:     "body too large",
			err:      &http.MaxBytesError{Limit: 10},
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "unknown",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestClientMessage(t *testing.T) {
	assert.Equal(t, "Missing required field: personal.name",
		clientMessage(&types.MissingFieldError{Field: "personal.name"}))
	assert.Equal(t, "Resume not found", clientMessage(&store.NotFoundError{ID: "x"}))
	assert.Equal(t, msgGenerateFailed, clientMessage(errors.New("secret path /etc")))
}
