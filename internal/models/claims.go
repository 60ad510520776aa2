package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserClaims is the JWT payload identifying the authenticated subject.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     UserRole  `json:"role"`
}

// IsAdmin reports whether the subject holds the administrator role.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
