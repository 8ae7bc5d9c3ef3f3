package repository

import (
	"time"

	"github.com/menublend/menublend-backend/internal/models"
	"gorm.io/gorm"
)

type RestaurantProfileRepository struct {
	db *gorm.DB
}

func NewRestaurantProfileRepository(db *gorm.DB) *RestaurantProfileRepository {
	return &RestaurantProfileRepository{db: db}
}

func (r *RestaurantProfileRepository) Create(profile *models.RestaurantProfile) error {
	return r.db.Create(profile).Error
}

func (r *RestaurantProfileRepository) GetByUserID(userID uint) (*models.RestaurantProfile, error) {
	var profile models.RestaurantProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *RestaurantProfileRepository) GetByID(id uint) (*models.RestaurantProfile, error) {
	var profile models.RestaurantProfile
	err := r.db.First(&profile, id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *RestaurantProfileRepository) Update(profile *models.RestaurantProfile) error {
	return r.db.Save(profile).Error
}

// GrantPackCredits adds purchased credits to the ledger in a single UPDATE so
// concurrent webhook deliveries for the same user cannot lose a grant.
func (r *RestaurantProfileRepository) GrantPackCredits(userID uint, dishes int, purchasedAt time.Time) error {
	return r.db.Exec(`
		UPDATE restaurant_profiles
		SET pack_dishes_remaining = pack_dishes_remaining + ?,
		    pack_dishes_total = pack_dishes_total + ?,
		    pack_purchased_at = ?,
		    updated_at = ?
		WHERE user_id = ?`,
		dishes, dishes, purchasedAt, purchasedAt, userID,
	).Error
}

// ConsumePackCredit decrements the remaining counter, guarded so the ledger
// can never go negative. Returns the number of rows updated: zero means the
// user had no credits left.
func (r *RestaurantProfileRepository) ConsumePackCredit(userID uint) (int64, error) {
	result := r.db.Exec(`
		UPDATE restaurant_profiles
		SET pack_dishes_remaining = pack_dishes_remaining - 1,
		    updated_at = ?
		WHERE user_id = ? AND pack_dishes_remaining > 0`,
		time.Now(), userID,
	)
	return result.RowsAffected, result.Error
}
