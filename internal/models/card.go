package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusBlocked CardStatus = "BLOCKED"
	CardStatusExpired CardStatus = "EXPIRED"
)

// DefaultCurrency is the currency assigned to newly issued cards.
const DefaultCurrency = "RUB"

// Card is a bank card. The clear card number is never stored: only the
// deterministic ciphertext (unique, used for lookups) and the display
// mask survive creation.
type Card struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	NumberEncrypted string          `gorm:"column:card_number_encrypted;uniqueIndex;not null" json:"-"`
	NumberMask      string          `gorm:"column:card_number_mask;size:19;not null" json:"cardNumberMask"`
	HolderName      string          `gorm:"size:100;not null" json:"holderName"`
	ExpirationDate  time.Time       `gorm:"type:date;not null" json:"expirationDate"`
	Status          CardStatus      `gorm:"type:card_status_enum;not null;default:'ACTIVE'" json:"status"`
	Balance         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`
	CurrencyCode    string          `gorm:"size:3;not null;default:'RUB'" json:"currencyCode"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
