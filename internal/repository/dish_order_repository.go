package repository

import (
	"github.com/menublend/menublend-backend/internal/models"
	"gorm.io/gorm"
)

type DishOrderRepository struct {
	db *gorm.DB
}

func NewDishOrderRepository(db *gorm.DB) *DishOrderRepository {
	return &DishOrderRepository{db: db}
}

func (r *DishOrderRepository) Create(order *models.DishOrder) (*models.DishOrder, error) {
	result := r.db.Create(order)
	if result.Error != nil {
		return nil, result.Error
	}
	return order, nil
}

func (r *DishOrderRepository) GetByID(id uint) (*models.DishOrder, error) {
	var order models.DishOrder
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *DishOrderRepository) GetUserOrders(userID uint) ([]models.DishOrder, error) {
	var orders []models.DishOrder
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// GetAll lists every order for staff, newest first, optionally filtered by
// status.
func (r *DishOrderRepository) GetAll(status models.DishOrderStatus) ([]models.DishOrder, error) {
	var orders []models.DishOrder
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&orders).Error
	return orders, err
}

func (r *DishOrderRepository) Update(order *models.DishOrder) error {
	return r.db.Save(order).Error
}

func (r *DishOrderRepository) IncrementPhotoCount(orderID uint) error {
	return r.db.Model(&models.DishOrder{}).Where("id = ?", orderID).
		UpdateColumn("photo_count", gorm.Expr("photo_count + 1")).Error
}
