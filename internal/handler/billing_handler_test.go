package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test"

type stubProfileLedger struct {
	granted map[uint]int
}

func (s *stubProfileLedger) GrantPackCredits(userID uint, dishes int, purchasedAt time.Time) error {
	if s.granted == nil {
		s.granted = make(map[uint]int)
	}
	s.granted[userID] += dishes
	return nil
}

type stubPaymentLedger struct {
	paid map[string]bool
}

func (s *stubPaymentLedger) HasPaidTransaction(providerPaymentID string) (bool, error) {
	return s.paid[providerPaymentID], nil
}

func (s *stubPaymentLedger) MarkOrderPaid(orderID uint, providerPaymentID string) error {
	if s.paid == nil {
		s.paid = make(map[string]bool)
	}
	s.paid[providerPaymentID] = true
	return nil
}

func (s *stubPaymentLedger) RecordPackPurchase(userID uint, providerPaymentID string) error {
	if s.paid == nil {
		s.paid = make(map[string]bool)
	}
	s.paid[providerPaymentID] = true
	return nil
}

type stubSubscriptionStore struct{}

func (s *stubSubscriptionStore) Upsert(sub *models.SubscriptionRecord) error { return nil }
func (s *stubSubscriptionStore) SetPlanAndStatus(id string, plan models.SubscriptionPlan, status models.SubscriptionStatus, currentPeriodEnd *time.Time) error {
	return nil
}
func (s *stubSubscriptionStore) SetStatus(id string, status models.SubscriptionStatus) error {
	return nil
}

func newWebhookTestApp(profiles *stubProfileLedger) *fiber.App {
	billingService := service.NewBillingService(profiles, &stubPaymentLedger{}, &stubSubscriptionStore{}, zap.NewNop())
	h := NewBillingHandler(billingService, nil, testWebhookSecret)

	app := fiber.New()
	app.Post("/api/billing/webhook", h.HandlePaddleWebhook)
	return app
}

func signBody(secret string, body []byte) string {
	ts := fmt.Sprintf("%d", time.Now().Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + ":"))
	mac.Write(body)
	return fmt.Sprintf("ts=%s;h1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func webhookBody(t *testing.T, eventType string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	body, err := json.Marshal(map[string]interface{}{
		"event_type": eventType,
		"data":       json.RawMessage(raw),
	})
	require.NoError(t, err)
	return body
}

func TestWebhookValidSignature(t *testing.T) {
	profiles := &stubProfileLedger{}
	app := newWebhookTestApp(profiles)

	body := webhookBody(t, "transaction.completed", models.PaddleTransaction{
		ID:         "txn_1",
		CustomData: models.PaddleCustomData{UserID: "7", DishesCount: "5"},
	})

	req := httptest.NewRequest("POST", "/api/billing/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Paddle-Signature", signBody(testWebhookSecret, body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"received":true}`, string(respBody))

	assert.Equal(t, 5, profiles.granted[7])
}

func TestWebhookInvalidSignature(t *testing.T) {
	profiles := &stubProfileLedger{}
	app := newWebhookTestApp(profiles)

	body := webhookBody(t, "transaction.completed", models.PaddleTransaction{
		ID:         "txn_1",
		CustomData: models.PaddleCustomData{UserID: "7", DishesCount: "5"},
	})

	req := httptest.NewRequest("POST", "/api/billing/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Paddle-Signature", signBody("wrong_secret", body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Invalid signature"}`, string(respBody))

	// Unverified events never touch the store.
	assert.Empty(t, profiles.granted)
}

func TestWebhookMissingSignature(t *testing.T) {
	app := newWebhookTestApp(&stubProfileLedger{})

	body := webhookBody(t, "transaction.completed", models.PaddleTransaction{ID: "txn_1"})

	req := httptest.NewRequest("POST", "/api/billing/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookUnparseableBody(t *testing.T) {
	app := newWebhookTestApp(&stubProfileLedger{})

	body := []byte(`{"event_type":`)

	req := httptest.NewRequest("POST", "/api/billing/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Paddle-Signature", signBody(testWebhookSecret, body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestWebhookUnknownEventIsAcknowledged(t *testing.T) {
	profiles := &stubProfileLedger{}
	app := newWebhookTestApp(profiles)

	body := webhookBody(t, "adjustment.created", map[string]string{"id": "adj_1"})

	req := httptest.NewRequest("POST", "/api/billing/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Paddle-Signature", signBody(testWebhookSecret, body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, profiles.granted)
}
