package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"resqall/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, handler fiber.Handler) (int, Response) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestFail(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"lookup failure", fmt.Errorf("login: %w", domain.ErrLookupFailure), fiber.StatusUnauthorized, domain.LookupFailureMessage},
		{"validation", fmt.Errorf("register: %w", &domain.ValidationError{Message: "Username is required"}), fiber.StatusBadRequest, "Username is required"},
		{"other", errors.New("disk full"), fiber.StatusInternalServerError, "Login failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := send(t, func(c *fiber.Ctx) error {
				return Fail(c, tc.err, "Login failed")
			})
			assert.Equal(t, tc.status, status)
			assert.False(t, body.Success)
			assert.Equal(t, tc.message, body.Error)
		})
	}
}

func TestRedirected(t *testing.T) {
	status, body := send(t, func(c *fiber.Ctx) error {
		return Redirected(c, "/dashboard")
	})

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, ForbiddenMessage, body.Error)
	assert.Equal(t, map[string]interface{}{"redirect": "/dashboard"}, body.Data)
}

func TestNotSignedIn(t *testing.T) {
	status, body := send(t, NotSignedIn)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, NotSignedInMessage, body.Error)
}

func TestCreated(t *testing.T) {
	status, body := send(t, func(c *fiber.Ctx) error {
		return Created(c, "Registration successful", domain.Identity{ID: "7", Username: "ranger"})
	})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, body.Success)
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "7", data["id"])
}
