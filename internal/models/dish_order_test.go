package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    DishOrderStatus
		to      DishOrderStatus
		allowed bool
	}{
		{"new to in production", OrderStatusNew, OrderStatusInProduction, true},
		{"in production to ready", OrderStatusInProduction, OrderStatusReady, true},
		{"ready to delivered", OrderStatusReady, OrderStatusDelivered, true},
		{"new to cancelled", OrderStatusNew, OrderStatusCancelled, true},
		{"in production to cancelled", OrderStatusInProduction, OrderStatusCancelled, true},
		{"ready to cancelled", OrderStatusReady, OrderStatusCancelled, true},

		{"no skipping to ready", OrderStatusNew, OrderStatusReady, false},
		{"no skipping to delivered", OrderStatusNew, OrderStatusDelivered, false},
		{"no going backwards", OrderStatusReady, OrderStatusInProduction, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusNew, false},
		{"cancelled cannot resume", OrderStatusCancelled, OrderStatusInProduction, false},
		{"no self transition", OrderStatusNew, OrderStatusNew, false},
		{"unknown status goes nowhere", DishOrderStatus("BOGUS"), OrderStatusReady, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())

	assert.False(t, OrderStatusNew.IsTerminal())
	assert.False(t, OrderStatusInProduction.IsTerminal())
	assert.False(t, OrderStatusReady.IsTerminal())
}
