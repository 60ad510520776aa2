package repositories

import (
	"errors"

	"bankcards/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBlockRequestNotFound = errors.New("block request not found")

// BlockRequestRepository persists card block requests.
type BlockRequestRepository interface {
	Create(request *models.BlockRequest) error
	GetByID(id uuid.UUID) (*models.BlockRequest, error)
	Save(request *models.BlockRequest) error
}

type blockRequestRepository struct {
	db *gorm.DB
}

// NewBlockRequestRepository creates a GORM backed BlockRequestRepository.
func NewBlockRequestRepository(db *gorm.DB) BlockRequestRepository {
	return &blockRequestRepository{db: db}
}

func (r *blockRequestRepository) Create(request *models.BlockRequest) error {
	return r.db.Create(request).Error
}

func (r *blockRequestRepository) GetByID(id uuid.UUID) (*models.BlockRequest, error) {
	var request models.BlockRequest
	if err := r.db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *blockRequestRepository) Save(request *models.BlockRequest) error {
	return r.db.Save(request).Error
}
