package card

import (
	"bankcards/internal/models"
	"bankcards/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCardInput carries the fields for issuing a new card.
type CreateCardInput struct {
	HolderName     string          `json:"holderName"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CardUserUUID   uuid.UUID       `json:"cardUserUuid"`
	CurrencyCode   string          `json:"currencyCode"`
}

// Service defines the card lifecycle operations.
type Service interface {
	// GetByID returns the card after the access policy admits the subject.
	GetByID(id uuid.UUID, claims *models.UserClaims) (*models.Card, error)
	// Create issues a card and returns the clear card number exactly once.
	Create(input CreateCardInput) (*models.Card, string, error)
	List(filter repositories.CardFilter, page, size int) ([]models.Card, int64, error)
	Block(id uuid.UUID) (*models.Card, error)
	Unblock(id uuid.UUID) (*models.Card, error)
	Activate(id uuid.UUID) (*models.Card, error)
	Delete(id uuid.UUID) error
}
