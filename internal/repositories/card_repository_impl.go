package repositories

import (
	"errors"
	"strings"

	"bankcards/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a GORM backed CardRepository.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) WithTx(tx *gorm.DB) CardRepository {
	return &cardRepository{db: tx}
}

func (r *cardRepository) Create(card *models.Card) error {
	if err := r.db.Create(card).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCard
		}
		return err
	}
	return nil
}

func (r *cardRepository) GetByID(id uuid.UUID) (*models.Card, error) {
	var card models.Card
	if err := r.db.First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) GetByIDForUpdate(id uuid.UUID) (*models.Card, error) {
	var card models.Card
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&card, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) FindByNumberEncrypted(encrypted string) (*models.Card, error) {
	var card models.Card
	err := r.db.Where("card_number_encrypted = ?", encrypted).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) ExistsByNumberEncrypted(encrypted string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Card{}).
		Where("card_number_encrypted = ?", encrypted).
		Count(&count).Error
	return count > 0, err
}

func (r *cardRepository) Save(card *models.Card) error {
	return r.db.Save(card).Error
}

func (r *cardRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Card{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *cardRepository) List(filter CardFilter, page, size int) ([]models.Card, int64, error) {
	q := r.db.Model(&models.Card{})

	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(holder_name) LIKE ? OR card_number_mask LIKE ?",
			like, "%"+filter.Search+"%")
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.MinBalance != nil {
		q = q.Where("balance >= ?", *filter.MinBalance)
	}
	if filter.MaxBalance != nil {
		q = q.Where("balance <= ?", *filter.MaxBalance)
	}
	if filter.CreatedAfter != nil {
		q = q.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		q = q.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cards []models.Card
	err := q.Order("created_at DESC").Offset(page * size).Limit(size).Find(&cards).Error
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}
