package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionStatus is the processing state of a transfer record.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is the ledger record written for every successful
// card-to-card transfer.
type Transaction struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"transactionId"`
	Amount        decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"amount"`
	CurrencyCode  string            `gorm:"size:3;not null;default:'RUB'" json:"currencyCode"`
	Description   string            `json:"description,omitempty"`
	Status        TransactionStatus `gorm:"type:transaction_status_enum;not null;default:'PENDING'" json:"status"`
	FromCardID    uuid.UUID         `gorm:"type:uuid;not null" json:"fromCardId"`
	FromCard      *Card             `gorm:"foreignKey:FromCardID;constraint:OnDelete:CASCADE" json:"-"`
	ToCardID      uuid.UUID         `gorm:"type:uuid;not null" json:"toCardId"`
	ToCard        *Card             `gorm:"foreignKey:ToCardID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedByID   uuid.UUID         `gorm:"column:created_by;type:uuid;not null" json:"createdBy"`
	CreatedBy     *User             `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time         `json:"createdAt"`
	ProcessedAt   *time.Time        `json:"processedAt,omitempty"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.TransactionID == uuid.Nil {
		t.TransactionID = uuid.New()
	}
	return nil
}
