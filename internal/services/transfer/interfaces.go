package transfer

import (
	"database/sql"

	"bankcards/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TxRunner executes a closure inside one database transaction; any error
// returned from the closure rolls everything back. *gorm.DB satisfies it.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// CreateTransferInput carries the transfer request fields.
type CreateTransferInput struct {
	FromCardNumber string          `json:"fromCardNumber"`
	ToCardNumber   string          `json:"toCardNumber"`
	Amount         decimal.Decimal `json:"amount"`
}

// Service moves money between two cards of the same owner.
type Service interface {
	Transfer(input CreateTransferInput, subjectID uuid.UUID) (*models.Transaction, error)
}
