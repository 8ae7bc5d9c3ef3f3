package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// PaymentRecord is one payment attempt for a dish order. ProviderPaymentID is
// the provider's transaction id and doubles as the webhook idempotency key:
// a PAID record with a given id means that transaction has been applied.
type PaymentRecord struct {
	ID                uint          `json:"id" gorm:"primaryKey"`
	DishOrderID       uint          `json:"dish_order_id" gorm:"not null;index"`
	UserID            uint          `json:"user_id" gorm:"not null"`
	Amount            float64       `json:"amount" gorm:"not null"`
	Currency          string        `json:"currency" gorm:"not null;default:'USD'"`
	Status            PaymentStatus `json:"status" gorm:"not null;default:'PENDING'"`
	Provider          string        `json:"provider" gorm:"default:'paddle'"`
	ProviderPaymentID string        `json:"provider_payment_id" gorm:"index"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// CheckoutIntent is what the frontend needs to open a Paddle checkout: the
// price id plus the custom data echoed back to us by the webhook.
type CheckoutIntent struct {
	PriceID    string            `json:"price_id"`
	CustomData map[string]string `json:"custom_data"`
}
