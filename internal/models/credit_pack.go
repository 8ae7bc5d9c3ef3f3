package models

import (
	"time"
)

// CreditPack is a purchasable bundle of prepaid dish-order credits.
type CreditPack struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	Dishes        int       `json:"dishes" gorm:"not null"`
	Price         float64   `json:"price" gorm:"not null"`
	Currency      string    `json:"currency" gorm:"not null;default:'USD'"`
	PaddlePriceID string    `json:"paddle_price_id" gorm:"not null"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
