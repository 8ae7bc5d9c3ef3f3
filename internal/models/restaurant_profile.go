package models

import (
	"time"
)

// RestaurantProfile is the tenant record, one per user. The pack_* columns
// form the prepaid credit ledger: pack_dishes_remaining must never exceed
// pack_dishes_total, and both are mutated only through the atomic repository
// updates (webhook grants, order-creation consumption).
type RestaurantProfile struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	UserID              uint       `json:"user_id" gorm:"unique;not null"`
	RestaurantName      string     `json:"restaurant_name" gorm:"not null"`
	Country             string     `json:"country"`
	City                string     `json:"city"`
	LogoURL             string     `json:"logo_url"`
	WebsiteURL          string     `json:"website_url"`
	WhatsappNumber      string     `json:"whatsapp_number"`
	OnboardingCompleted bool       `json:"onboarding_completed" gorm:"default:false"`
	PackDishesRemaining int        `json:"pack_dishes_remaining" gorm:"not null;default:0"`
	PackDishesTotal     int        `json:"pack_dishes_total" gorm:"not null;default:0"`
	PackPurchasedAt     *time.Time `json:"pack_purchased_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type UpdateProfileRequest struct {
	RestaurantName string `json:"restaurant_name" validate:"required"`
	Country        string `json:"country" validate:"required"`
	City           string `json:"city" validate:"required"`
	LogoURL        string `json:"logo_url"`
	WebsiteURL     string `json:"website_url"`
	WhatsappNumber string `json:"whatsapp_number"`
}
