// Package card implements the card lifecycle: issuing, listing, status
// transitions and deletion.
package card

import (
	"errors"
	"strings"
	"time"

	"bankcards/internal/cardnumber"
	"bankcards/internal/errs"
	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/services/access"
	"bankcards/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Number generation retries on ciphertext collision before giving up.
const maxGenerateAttempts = 8

const validityYears = 4

type service struct {
	cards repositories.CardRepository
	users repositories.UserRepository
	codec *cardnumber.Codec
	log   *zap.Logger
}

// NewService creates a card service.
func NewService(cards repositories.CardRepository, users repositories.UserRepository,
	codec *cardnumber.Codec, log *zap.Logger) Service {
	return &service{cards: cards, users: users, codec: codec, log: log}
}

func (s *service) GetByID(id uuid.UUID, claims *models.UserClaims) (*models.Card, error) {
	c, err := s.findCard(id)
	if err != nil {
		return nil, err
	}
	if err := access.CanAccessCard(claims, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Create(input CreateCardInput) (*models.Card, string, error) {
	if err := validation.ValidateHolderName(input.HolderName); err != nil {
		return nil, "", err
	}
	if !input.InitialBalance.IsPositive() {
		return nil, "", errs.InvalidArgument("Initial balance must be positive")
	}

	if _, err := s.users.GetByID(input.CardUserUUID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", errs.NotFound("User not found with id: " + input.CardUserUUID.String())
		}
		return nil, "", err
	}

	pan, encrypted, err := s.generateUniquePAN()
	if err != nil {
		return nil, "", err
	}
	mask, err := cardnumber.Mask(pan)
	if err != nil {
		return nil, "", err
	}

	currency := input.CurrencyCode
	if currency == "" {
		currency = models.DefaultCurrency
	}

	c := &models.Card{
		NumberEncrypted: encrypted,
		NumberMask:      mask,
		HolderName:      strings.ToUpper(input.HolderName),
		ExpirationDate:  time.Now().AddDate(validityYears, 0, 0),
		Status:          models.CardStatusActive,
		Balance:         input.InitialBalance,
		CurrencyCode:    currency,
		UserID:          input.CardUserUUID,
	}
	if err := s.cards.Create(c); err != nil {
		if errors.Is(err, repositories.ErrDuplicateCard) {
			return nil, "", errs.Internal("Failed to issue card number")
		}
		return nil, "", err
	}

	s.log.Info("card created",
		zap.String("card_id", c.ID.String()),
		zap.String("user_id", input.CardUserUUID.String()),
	)
	return c, pan, nil
}

func (s *service) List(filter repositories.CardFilter, page, size int) ([]models.Card, int64, error) {
	return s.cards.List(filter, page, size)
}

func (s *service) Block(id uuid.UUID) (*models.Card, error) {
	c, err := s.findCard(id)
	if err != nil {
		return nil, err
	}
	c.Status = models.CardStatusBlocked
	if err := s.cards.Save(c); err != nil {
		return nil, err
	}
	s.log.Info("card blocked", zap.String("card_id", id.String()))
	return c, nil
}

func (s *service) Unblock(id uuid.UUID) (*models.Card, error) {
	c, err := s.findCard(id)
	if err != nil {
		return nil, err
	}
	if c.Status == models.CardStatusExpired {
		return nil, errs.InvalidState("Cannot unblock expired card")
	}
	c.Status = models.CardStatusActive
	if err := s.cards.Save(c); err != nil {
		return nil, err
	}
	s.log.Info("card unblocked", zap.String("card_id", id.String()))
	return c, nil
}

func (s *service) Activate(id uuid.UUID) (*models.Card, error) {
	c, err := s.findCard(id)
	if err != nil {
		return nil, err
	}
	c.Status = models.CardStatusActive
	if err := s.cards.Save(c); err != nil {
		return nil, err
	}
	s.log.Info("card activated", zap.String("card_id", id.String()))
	return c, nil
}

func (s *service) Delete(id uuid.UUID) error {
	if err := s.cards.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return errs.NotFound("Card not found with id: " + id.String())
		}
		return err
	}
	s.log.Info("card deleted", zap.String("card_id", id.String()))
	return nil
}

func (s *service) findCard(id uuid.UUID) (*models.Card, error) {
	c, err := s.cards.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return nil, errs.NotFound("Card not found with id: " + id.String())
		}
		return nil, err
	}
	return c, nil
}

// generateUniquePAN draws random card numbers until the ciphertext is
// unused. Attempts are bounded; exhausting them is an internal failure.
func (s *service) generateUniquePAN() (pan, encrypted string, err error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		pan, err = cardnumber.GeneratePAN()
		if err != nil {
			return "", "", errs.Internal("Failed to generate card number")
		}
		encrypted, err = s.codec.Encrypt(pan)
		if err != nil {
			return "", "", err
		}
		exists, err := s.cards.ExistsByNumberEncrypted(encrypted)
		if err != nil {
			return "", "", err
		}
		if !exists {
			return pan, encrypted, nil
		}
	}
	return "", "", errs.Internal("Failed to generate unique card number")
}
