package models

import (
	"time"
)

type DishOrderStatus string

const (
	OrderStatusNew          DishOrderStatus = "NEW"
	OrderStatusInProduction DishOrderStatus = "IN_PRODUCTION"
	OrderStatusReady        DishOrderStatus = "READY"
	OrderStatusDelivered    DishOrderStatus = "DELIVERED"
	OrderStatusCancelled    DishOrderStatus = "CANCELLED"
)

// allowedTransitions is the staff-driven order pipeline: a linear happy path
// with CANCELLED reachable from any pre-terminal state.
var allowedTransitions = map[DishOrderStatus][]DishOrderStatus{
	OrderStatusNew:          {OrderStatusInProduction, OrderStatusCancelled},
	OrderStatusInProduction: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:        {OrderStatusDelivered, OrderStatusCancelled},
}

func (s DishOrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to DishOrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type DishOrder struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	RestaurantProfileID uint            `json:"restaurant_profile_id" gorm:"not null"`
	UserID              uint            `json:"user_id" gorm:"not null;index"`
	DishName            string          `json:"dish_name" gorm:"not null"`
	Description         string          `json:"description"`
	CuisineType         string          `json:"cuisine_type"`
	TargetUseCase       string          `json:"target_use_case"`
	InternalReference   string          `json:"internal_reference" gorm:"unique;not null"`
	Status              DishOrderStatus `json:"status" gorm:"not null;default:'NEW'"`
	PriceCharged        float64         `json:"price_charged" gorm:"not null;default:0"`
	Currency            string          `json:"currency" gorm:"not null;default:'USD'"`
	DeliveryURL         string          `json:"delivery_url"`
	DeliveryNote        string          `json:"delivery_note"`
	IsDemo              bool            `json:"is_demo" gorm:"default:false"`
	PhotoCount          int             `json:"photo_count" gorm:"default:0"`
	Confirmed           bool            `json:"confirmed" gorm:"default:false"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type CreateDishOrderRequest struct {
	DishName      string `json:"dish_name" validate:"required"`
	Description   string `json:"description"`
	CuisineType   string `json:"cuisine_type"`
	TargetUseCase string `json:"target_use_case"`
	IsDemo        bool   `json:"is_demo"`
	UseCredit     bool   `json:"use_credit"`
}

type UpdateOrderStatusRequest struct {
	Status       DishOrderStatus `json:"status" validate:"required"`
	DeliveryURL  string          `json:"delivery_url"`
	DeliveryNote string          `json:"delivery_note"`
}
