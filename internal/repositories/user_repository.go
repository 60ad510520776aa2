package repositories

import (
	"errors"
	"time"

	"bankcards/internal/models"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already taken")
)

// UserFilter narrows user listings.
type UserFilter struct {
	// Search matches a case-insensitive substring of username or email.
	Search        string
	Role          *models.UserRole
	Active        *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
	// List pages users ordered by creation time descending.
	List(filter UserFilter, page, size int) ([]models.User, int64, error)
	// CardsCountByUsers returns the number of cards per listed user.
	CardsCountByUsers(ids []uuid.UUID) (map[uuid.UUID]int64, error)
}
