// Package blockrequest records user submitted requests to block a card.
package blockrequest

import (
	"errors"

	"bankcards/internal/cardnumber"
	"bankcards/internal/errs"
	"bankcards/internal/models"
	"bankcards/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitInput carries the block request fields.
type SubmitInput struct {
	CardNumber string `json:"cardNumber"`
	Reason     string `json:"reason"`
}

// Service manages the block request workflow.
type Service interface {
	// Submit files a request; only the card's owner may do so.
	Submit(input SubmitInput, subjectID uuid.UUID) (*models.BlockRequest, error)
	// Decide moves a request out of NEW. Administrator only.
	Decide(requestID uuid.UUID, approve bool, claims *models.UserClaims) (*models.BlockRequest, error)
}

type service struct {
	requests repositories.BlockRequestRepository
	cards    repositories.CardRepository
	codec    *cardnumber.Codec
	log      *zap.Logger
}

// NewService creates a block request service.
func NewService(requests repositories.BlockRequestRepository,
	cards repositories.CardRepository, codec *cardnumber.Codec, log *zap.Logger) Service {
	return &service{requests: requests, cards: cards, codec: codec, log: log}
}

func (s *service) Submit(input SubmitInput, subjectID uuid.UUID) (*models.BlockRequest, error) {
	encrypted, err := s.codec.Encrypt(input.CardNumber)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.FindByNumberEncrypted(encrypted)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return nil, errs.NotFound("Card not found")
		}
		return nil, err
	}
	if card.UserID != subjectID {
		return nil, errs.AccessDenied("Access denied, not your card")
	}

	request := &models.BlockRequest{
		CardID: card.ID,
		Status: models.BlockRequestStatusNew,
		Reason: input.Reason,
	}
	if err := s.requests.Create(request); err != nil {
		return nil, err
	}

	s.log.Info("block request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("card_id", card.ID.String()),
	)
	return request, nil
}

func (s *service) Decide(requestID uuid.UUID, approve bool, claims *models.UserClaims) (*models.BlockRequest, error) {
	if !claims.IsAdmin() {
		return nil, errs.AccessDenied("Only administrators may decide block requests")
	}

	request, err := s.requests.GetByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrBlockRequestNotFound) {
			return nil, errs.NotFound("Block request not found with id: " + requestID.String())
		}
		return nil, err
	}
	if request.Status != models.BlockRequestStatusNew {
		return nil, errs.InvalidState("Block request already decided")
	}

	if approve {
		request.Status = models.BlockRequestStatusApproved
	} else {
		request.Status = models.BlockRequestStatusRejected
	}
	if err := s.requests.Save(request); err != nil {
		return nil, err
	}
	return request, nil
}
