package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockRequestStatus is the review state of a user submitted request.
type BlockRequestStatus string

const (
	BlockRequestStatusNew      BlockRequestStatus = "NEW"
	BlockRequestStatusApproved BlockRequestStatus = "APPROVED"
	BlockRequestStatusRejected BlockRequestStatus = "REJECTED"
)

// BlockRequest is a user submitted ticket asking for a card to be
// blocked. Only the card's owner may create one; only an administrator
// moves it out of NEW.
type BlockRequest struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	CardID    uuid.UUID          `gorm:"type:uuid;not null" json:"cardId"`
	Card      *Card              `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"-"`
	Status    BlockRequestStatus `gorm:"type:request_status_enum;not null;default:'NEW'" json:"status"`
	Reason    string             `gorm:"size:255" json:"reason"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func (r *BlockRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
