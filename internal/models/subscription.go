package models

import (
	"time"
)

type SubscriptionPlan string

const (
	PlanBasic SubscriptionPlan = "BASIC"
	PlanPro   SubscriptionPlan = "PRO"
)

type SubscriptionStatus string

const (
	SubscriptionTrialing SubscriptionStatus = "TRIALING"
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
	SubscriptionPaused   SubscriptionStatus = "PAUSED"
)

// SubscriptionRecord mirrors one Paddle hosting subscription. Rows are only
// ever written by the webhook handler, upserted on the provider's
// subscription id.
type SubscriptionRecord struct {
	ID                   uint               `json:"id" gorm:"primaryKey"`
	UserID               uint               `json:"user_id" gorm:"not null;index"`
	PaddleSubscriptionID string             `json:"paddle_subscription_id" gorm:"unique;not null"`
	Plan                 SubscriptionPlan   `json:"plan" gorm:"not null;default:'BASIC'"`
	Status               SubscriptionStatus `json:"status" gorm:"not null"`
	CurrentPeriodEnd     *time.Time         `json:"current_period_end"`
	TrialEndsAt          *time.Time         `json:"trial_ends_at"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}
