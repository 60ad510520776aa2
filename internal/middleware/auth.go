// Package middleware provides HTTP middleware for the fiber application:
// bearer token authentication and the administrator gate.
package middleware

import (
	"strings"

	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware validates bearer tokens and attaches the subject's
// claims to the request context.
type AuthMiddleware struct {
	users repositories.UserRepository
	log   *zap.Logger
}

func NewAuthMiddleware(users repositories.UserRepository, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{users: users, log: log}
}

// Handler checks for a Bearer token, validates the signature and expiry,
// and confirms the subject still exists and is active.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "Missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		m.log.Debug("token validation failed", zap.Error(err))
		return utils.Unauthorized(c, "Invalid token")
	}

	u, err := m.users.GetByID(claims.UserID)
	if err != nil || !u.IsActive {
		return utils.Unauthorized(c, "Invalid token")
	}

	c.Locals("claims", claims)
	return c.Next()
}

// RequireAdmin rejects subjects without the administrator role.
func RequireAdmin(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}
	if !claims.IsAdmin() {
		return utils.Forbidden(c, "Insufficient permissions")
	}
	return c.Next()
}

// Claims extracts the subject claims stored by Handler.
func Claims(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	return claims, ok
}
