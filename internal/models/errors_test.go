package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		expected ErrorResponse
	}{
		{
			name:     "app error with mode",
			err:      NewConflictError("username taken").WithMode("login"),
			status:   http.StatusConflict,
			expected: ErrorResponse{Error: "username taken", Code: "CONFLICT", Mode: "login"},
		},
		{
			name:     "wrapped app error",
			err:      fmt.Errorf("register: %w", NewValidationError("name is required")),
			status:   http.StatusBadRequest,
			expected: ErrorResponse{Error: "name is required", Code: "VALIDATION_ERROR"},
		},
		{
			name:     "internal error details",
			err:      NewInternalError(errors.New("disk full")),
			status:   http.StatusInternalServerError,
			expected: ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR", Details: "disk full"},
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			status:   http.StatusInternalServerError,
			expected: ErrorResponse{Error: "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return RespondWithError(c, tt.status, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expected, body)
		})
	}
}

func TestAppError_WithModeCopies(t *testing.T) {
	base := NewNotFoundError("user", "ana1")
	hinted := base.WithMode("register")
	assert.Empty(t, base.Mode)
	assert.Equal(t, "register", hinted.Mode)
	assert.Equal(t, "user ana1 not found", hinted.Error())
}
