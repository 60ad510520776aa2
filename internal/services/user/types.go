package user

import (
	"bankcards/internal/models"
	"bankcards/internal/repositories"

	"github.com/google/uuid"
)

// CreateUserInput carries the fields for creating an account.
type CreateUserInput struct {
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Role      models.UserRole `json:"role"`
}

// UpdateUserInput is a partial update; nil fields keep the current value.
type UpdateUserInput struct {
	Username  *string          `json:"username"`
	Email     *string          `json:"email"`
	FirstName *string          `json:"firstName"`
	LastName  *string          `json:"lastName"`
	Role      *models.UserRole `json:"role"`
}

// PasswordHasher turns a clear password into its stored form.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Service defines user account management operations.
type Service interface {
	// GetByID returns the user and the number of cards they own.
	GetByID(id uuid.UUID) (*models.User, int64, error)
	Create(input CreateUserInput) (*models.User, error)
	Update(id uuid.UUID, input UpdateUserInput) (*models.User, error)
	Delete(id uuid.UUID) error
	Activate(id uuid.UUID) (*models.User, error)
	Deactivate(id uuid.UUID) (*models.User, error)
	// List pages users newest first and returns per-user card counts.
	List(filter repositories.UserFilter, page, size int) ([]models.User, map[uuid.UUID]int64, int64, error)
}
