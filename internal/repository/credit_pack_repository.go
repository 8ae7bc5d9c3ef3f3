package repository

import (
	"github.com/menublend/menublend-backend/internal/models"
	"gorm.io/gorm"
)

type CreditPackRepository struct {
	db *gorm.DB
}

func NewCreditPackRepository(db *gorm.DB) *CreditPackRepository {
	return &CreditPackRepository{db: db}
}

func (r *CreditPackRepository) GetAll() ([]models.CreditPack, error) {
	var packs []models.CreditPack
	err := r.db.Where("is_active = ?", true).Find(&packs).Error
	return packs, err
}

func (r *CreditPackRepository) GetByID(id uint) (*models.CreditPack, error) {
	var pack models.CreditPack
	err := r.db.First(&pack, id).Error
	if err != nil {
		return nil, err
	}
	return &pack, nil
}
