package repository

import (
	"time"

	"github.com/menublend/menublend-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Upsert inserts or refreshes a subscription keyed by the provider's
// subscription id, so redelivered activation events converge on one row.
func (r *SubscriptionRepository) Upsert(sub *models.SubscriptionRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "paddle_subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan", "status", "current_period_end", "trial_ends_at", "updated_at",
		}),
	}).Create(sub).Error
}

func (r *SubscriptionRepository) SetPlanAndStatus(paddleSubscriptionID string, plan models.SubscriptionPlan, status models.SubscriptionStatus, currentPeriodEnd *time.Time) error {
	updates := map[string]interface{}{
		"plan":   plan,
		"status": status,
	}
	if currentPeriodEnd != nil {
		updates["current_period_end"] = currentPeriodEnd
	}
	return r.db.Model(&models.SubscriptionRecord{}).
		Where("paddle_subscription_id = ?", paddleSubscriptionID).
		Updates(updates).Error
}

func (r *SubscriptionRepository) SetStatus(paddleSubscriptionID string, status models.SubscriptionStatus) error {
	return r.db.Model(&models.SubscriptionRecord{}).
		Where("paddle_subscription_id = ?", paddleSubscriptionID).
		Update("status", status).Error
}

func (r *SubscriptionRepository) GetLatestByUserID(userID uint) (*models.SubscriptionRecord, error) {
	var sub models.SubscriptionRecord
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
