package models

import (
	"encoding/json"
	"time"
)

// PaddleWebhookEvent is the envelope Paddle posts to the webhook endpoint.
// Data stays raw until the event type is known.
type PaddleWebhookEvent struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// PaddleCustomData is the pass-through bag we attach at checkout time and
// Paddle echoes back on every event for that transaction or subscription.
// All values are strings on the wire.
type PaddleCustomData struct {
	UserID      string `json:"userId"`
	DishesCount string `json:"dishesCount"`
	DishOrderID string `json:"dishOrderId"`
	Plan        string `json:"plan"`
}

type PaddleTransaction struct {
	ID         string           `json:"id"`
	Status     string           `json:"status"`
	CustomData PaddleCustomData `json:"custom_data"`
}

type PaddleBillingPeriod struct {
	EndsAt time.Time `json:"ends_at"`
}

type PaddleScheduledChange struct {
	EffectiveAt time.Time `json:"effective_at"`
}

type PaddleSubscriptionItem struct {
	Price struct {
		Description string `json:"description"`
	} `json:"price"`
}

type PaddleSubscription struct {
	ID                   string                   `json:"id"`
	Status               string                   `json:"status"`
	CustomData           PaddleCustomData         `json:"custom_data"`
	CurrentBillingPeriod *PaddleBillingPeriod     `json:"current_billing_period"`
	ScheduledChange      *PaddleScheduledChange   `json:"scheduled_change"`
	Items                []PaddleSubscriptionItem `json:"items"`
}
