package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"bankcards/internal/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler, path string) (int, APIError) {
	t.Helper()
	app := fiber.New()
	app.Get(path, handler)

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope APIError
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, envelope
}

func TestHandleError_DomainError(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return HandleError(c, errs.NotFound("Card not found with id: 42"))
	}, "/api/v1/card/42")

	assert.Equal(t, 404, status)
	assert.Equal(t, "/api/v1/card/42", envelope.Path)
	assert.Equal(t, "Card not found with id: 42", envelope.Message)
	assert.Equal(t, 404, envelope.StatusCode)

	_, err := time.Parse(time.RFC3339, envelope.Timestamp)
	assert.NoError(t, err)
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return HandleError(c, errors.New("pq: connection refused"))
	}, "/api/v1/users")

	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal server error", envelope.Message)
	assert.NotContains(t, envelope.Message, "pq")
}

func TestErrorHelpers(t *testing.T) {
	status, envelope := performRequest(t, func(c *fiber.Ctx) error {
		return BadRequest(c, "Invalid parameter 'status'")
	}, "/api/v1/card")
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid parameter 'status'", envelope.Message)

	status, envelope = performRequest(t, func(c *fiber.Ctx) error {
		return Unauthorized(c, "Missing authorization header")
	}, "/api/v1/card")
	assert.Equal(t, 401, status)
	assert.Equal(t, 401, envelope.StatusCode)

	status, _ = performRequest(t, func(c *fiber.Ctx) error {
		return Forbidden(c, "Insufficient permissions")
	}, "/api/v1/users")
	assert.Equal(t, 403, status)
}
