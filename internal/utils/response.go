// Package utils holds HTTP response helpers shared by the handlers.
package utils

import (
	"errors"
	"time"

	"bankcards/internal/errs"

	"github.com/gofiber/fiber/v2"
)

// APIError is the error envelope returned on every failed request.
type APIError struct {
	Path       string `json:"path"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
}

// Error sends the error envelope with the given status.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIError{
		Path:       c.Path(),
		Message:    message,
		StatusCode: status,
		Timestamp:  time.Now().Format(time.RFC3339),
	})
}

// HandleError maps a service error onto the envelope.
func HandleError(c *fiber.Ctx, err error) error {
	return Error(c, errs.StatusOf(err), errs.MessageOf(err))
}

// FiberErrorHandler renders framework level errors (unknown route,
// wrong method, unsupported media type) in the same envelope the
// handlers use.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}
	return HandleError(c, err)
}

// BadRequest sends a 400 envelope.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 envelope.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 envelope.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}
