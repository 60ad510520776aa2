// Package handlers contains the fiber HTTP handlers: request binding,
// parameter parsing and mapping service results onto the wire.
package handlers

import (
	"bankcards/internal/services/auth"
	"bankcards/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a subject and returns a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return utils.BadRequest(c, "Username and password are required")
	}

	resp, err := h.authService.Login(input.Username, input.Password)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(resp)
}

// Register creates a USER account and returns its session token.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input auth.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Register(input)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
