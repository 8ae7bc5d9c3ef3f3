package service

import (
	"fmt"
	"testing"

	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMailer struct {
	sent    []sentEmail
	sendErr error
}

type sentEmail struct {
	kind string
	to   string
	data email.OrderEmailData
}

func (f *fakeMailer) SendNewOrderEmail(to string, data email.OrderEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentEmail{"new_order", to, data})
	return nil
}

func (f *fakeMailer) SendOrderReadyEmail(to string, data email.OrderEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentEmail{"order_ready", to, data})
	return nil
}

func (f *fakeMailer) SendOrderDeliveredEmail(to string, data email.OrderEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentEmail{"order_delivered", to, data})
	return nil
}

func TestNotifyAdminNewOrder(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewNotificationService(mailer, "https://menublend.com", "team@menublend.com", zap.NewNop())

	order := &models.DishOrder{
		ID:                42,
		DishName:          "Truffle Risotto",
		InternalReference: "MB-7K3N2P",
	}
	profile := &models.RestaurantProfile{
		RestaurantName: "Osteria Nova",
		City:           "Lisbon",
		Country:        "Portugal",
	}

	res := svc.NotifyAdminNewOrder(order, profile)

	assert.True(t, res.Success)
	assert.NoError(t, res.Err)
	require.Len(t, mailer.sent, 1)

	sent := mailer.sent[0]
	assert.Equal(t, "team@menublend.com", sent.to)
	assert.Equal(t, "Osteria Nova", sent.data.RestaurantName)
	assert.Equal(t, "MB-7K3N2P", sent.data.InternalReference)
	assert.Equal(t, "https://menublend.com/admin/dishes/42", sent.data.DashboardURL)
	assert.Equal(t, "https://menublend.com/demo/dish/42", sent.data.DemoURL)
}

func TestNotifyOrderReady(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewNotificationService(mailer, "https://menublend.com", "team@menublend.com", zap.NewNop())

	order := &models.DishOrder{ID: 7, DishName: "Pad Thai", InternalReference: "MB-AB2CDE"}
	res := svc.NotifyOrderReady("owner@example.com", order)

	assert.True(t, res.Success)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "order_ready", mailer.sent[0].kind)
	assert.Equal(t, "owner@example.com", mailer.sent[0].to)
	assert.Equal(t, "https://menublend.com/demo/dish/7", mailer.sent[0].data.DemoURL)
}

func TestNotifyFailureReportsWithoutError(t *testing.T) {
	mailer := &fakeMailer{sendErr: fmt.Errorf("resend unavailable")}
	svc := NewNotificationService(mailer, "https://menublend.com", "team@menublend.com", zap.NewNop())

	order := &models.DishOrder{ID: 1, DishName: "Ramen"}

	res := svc.NotifyOrderDelivered("owner@example.com", order)

	// The failure is reported, not raised: callers never fail on email.
	assert.False(t, res.Success)
	assert.Error(t, res.Err)
	assert.Empty(t, mailer.sent)
}
