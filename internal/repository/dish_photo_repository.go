package repository

import (
	"github.com/menublend/menublend-backend/internal/models"
	"gorm.io/gorm"
)

type DishPhotoRepository struct {
	db *gorm.DB
}

func NewDishPhotoRepository(db *gorm.DB) *DishPhotoRepository {
	return &DishPhotoRepository{db: db}
}

func (r *DishPhotoRepository) Create(photo *models.DishPhoto) error {
	return r.db.Create(photo).Error
}

func (r *DishPhotoRepository) GetByOrderID(orderID uint) ([]models.DishPhoto, error) {
	var photos []models.DishPhoto
	err := r.db.Where("dish_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&photos).Error
	return photos, err
}

func (r *DishPhotoRepository) CountByOrderID(orderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.DishPhoto{}).
		Where("dish_order_id = ?", orderID).
		Count(&count).Error
	return count, err
}
