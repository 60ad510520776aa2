// Package transfer implements atomic card-to-card money movement.
package transfer

import (
	"bytes"
	"errors"
	"time"

	"bankcards/internal/cardnumber"
	"bankcards/internal/errs"
	"bankcards/internal/models"
	"bankcards/internal/observability"
	"bankcards/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db           TxRunner
	cards        repositories.CardRepository
	transactions repositories.TransactionRepository
	codec        *cardnumber.Codec
	log          *zap.Logger
}

// NewService creates a transfer service.
func NewService(db TxRunner, cards repositories.CardRepository,
	transactions repositories.TransactionRepository,
	codec *cardnumber.Codec, log *zap.Logger) Service {
	return &service{db: db, cards: cards, transactions: transactions, codec: codec, log: log}
}

// Transfer debits the source card and credits the destination inside one
// transaction. Both cards are locked FOR UPDATE in ascending id order so
// the balance check and the debit are atomic with respect to concurrent
// transfers, and opposite-direction transfers on the same pair cannot
// deadlock. A ledger row is written in the same transaction.
func (s *service) Transfer(input CreateTransferInput, subjectID uuid.UUID) (*models.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, errs.InvalidArgument("Amount must be positive")
	}

	fromEnc, err := s.codec.Encrypt(input.FromCardNumber)
	if err != nil {
		return nil, err
	}
	toEnc, err := s.codec.Encrypt(input.ToCardNumber)
	if err != nil {
		return nil, err
	}

	var record *models.Transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		cards := s.cards.WithTx(tx)

		from, err := s.resolveCard(cards, fromEnc)
		if err != nil {
			return err
		}
		to, err := s.resolveCard(cards, toEnc)
		if err != nil {
			return err
		}

		from, to, err = lockPair(cards, from, to)
		if err != nil {
			return err
		}

		if from.UserID != subjectID {
			return errs.NotAllowed("You are not owner of this card")
		}
		if from.UserID != to.UserID {
			return errs.NotAllowed("Transactions only between your own cards allowed")
		}
		if from.Status != models.CardStatusActive || to.Status != models.CardStatusActive {
			return errs.NotAllowed("One of cards isn't active")
		}
		if from.Balance.LessThan(input.Amount) {
			return errs.NotAllowed("Insufficient balance on source card")
		}

		from.Balance = from.Balance.Sub(input.Amount)
		to.Balance = to.Balance.Add(input.Amount)

		if err := cards.Save(from); err != nil {
			return err
		}
		if to != from {
			if err := cards.Save(to); err != nil {
				return err
			}
		}

		now := time.Now()
		record = &models.Transaction{
			Amount:       input.Amount,
			CurrencyCode: from.CurrencyCode,
			Status:       models.TransactionStatusCompleted,
			FromCardID:   from.ID,
			ToCardID:     to.ID,
			CreatedByID:  subjectID,
			ProcessedAt:  &now,
		}
		return s.transactions.WithTx(tx).Create(record)
	})
	if err != nil {
		observability.TransfersTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	observability.TransfersTotal.WithLabelValues("completed").Inc()
	s.log.Info("transfer completed",
		zap.String("transaction_id", record.TransactionID.String()),
		zap.String("amount", input.Amount.StringFixed(2)),
	)
	return record, nil
}

func (s *service) resolveCard(cards repositories.CardRepository, encrypted string) (*models.Card, error) {
	c, err := cards.FindByNumberEncrypted(encrypted)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return nil, errs.NotFound("Card number not found")
		}
		return nil, err
	}
	return c, nil
}

// lockPair re-reads both cards under row locks, smaller id first. A
// transfer from a card to itself locks the single row once and both
// sides alias the same struct, so debit and credit cancel out.
func lockPair(cards repositories.CardRepository, from, to *models.Card) (*models.Card, *models.Card, error) {
	if from.ID == to.ID {
		locked, err := cards.GetByIDForUpdate(from.ID)
		if err != nil {
			return nil, nil, err
		}
		return locked, locked, nil
	}

	first, second := from, to
	if bytes.Compare(to.ID[:], from.ID[:]) < 0 {
		first, second = to, from
	}
	lockedFirst, err := cards.GetByIDForUpdate(first.ID)
	if err != nil {
		return nil, nil, err
	}
	lockedSecond, err := cards.GetByIDForUpdate(second.ID)
	if err != nil {
		return nil, nil, err
	}
	if first == from {
		return lockedFirst, lockedSecond, nil
	}
	return lockedSecond, lockedFirst, nil
}
