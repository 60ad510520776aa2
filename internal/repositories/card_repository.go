package repositories

import (
	"errors"
	"time"

	"bankcards/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCardNotFound  = errors.New("card not found")
	ErrDuplicateCard = errors.New("card number already exists")
)

// CardFilter narrows card listings.
type CardFilter struct {
	// UserID scopes the listing to one owner; nil means all cards.
	UserID *uuid.UUID
	// Search matches a case-insensitive substring of the holder name or
	// a raw substring of the card mask.
	Search        string
	Status        *models.CardStatus
	MinBalance    *decimal.Decimal
	MaxBalance    *decimal.Decimal
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// CardRepository defines card persistence operations.
type CardRepository interface {
	Create(card *models.Card) error
	GetByID(id uuid.UUID) (*models.Card, error)
	// GetByIDForUpdate loads a card under a row lock. Only meaningful
	// inside a transaction obtained through WithTx.
	GetByIDForUpdate(id uuid.UUID) (*models.Card, error)
	FindByNumberEncrypted(encrypted string) (*models.Card, error)
	ExistsByNumberEncrypted(encrypted string) (bool, error)
	Save(card *models.Card) error
	Delete(id uuid.UUID) error
	List(filter CardFilter, page, size int) ([]models.Card, int64, error)
	// WithTx returns a view of the repository bound to the transaction.
	WithTx(tx *gorm.DB) CardRepository
}
