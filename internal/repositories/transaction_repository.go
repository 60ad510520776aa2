package repositories

import (
	"bankcards/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository persists transfer ledger records.
type TransactionRepository interface {
	Create(tx *models.Transaction) error
	ListByCard(cardID uuid.UUID, page, size int) ([]models.Transaction, int64, error)
	WithTx(tx *gorm.DB) TransactionRepository
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a GORM backed TransactionRepository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return &transactionRepository{db: tx}
}

func (r *transactionRepository) Create(tx *models.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *transactionRepository) ListByCard(cardID uuid.UUID, page, size int) ([]models.Transaction, int64, error) {
	q := r.db.Model(&models.Transaction{}).
		Where("from_card_id = ? OR to_card_id = ?", cardID, cardID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []models.Transaction
	err := q.Order("created_at DESC").Offset(page * size).Limit(size).Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}
