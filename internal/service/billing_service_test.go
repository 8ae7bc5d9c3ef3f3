package service

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/menublend/menublend-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProfileLedger struct {
	remaining map[uint]int
	total     map[uint]int
	grantErr  error
}

func newFakeProfileLedger() *fakeProfileLedger {
	return &fakeProfileLedger{
		remaining: make(map[uint]int),
		total:     make(map[uint]int),
	}
}

func (f *fakeProfileLedger) GrantPackCredits(userID uint, dishes int, purchasedAt time.Time) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.remaining[userID] += dishes
	f.total[userID] += dishes
	return nil
}

type fakePaymentLedger struct {
	paid       map[string]bool
	paidOrders map[uint]string
	checkErr   error
}

func newFakePaymentLedger() *fakePaymentLedger {
	return &fakePaymentLedger{
		paid:       make(map[string]bool),
		paidOrders: make(map[uint]string),
	}
}

func (f *fakePaymentLedger) HasPaidTransaction(providerPaymentID string) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.paid[providerPaymentID], nil
}

func (f *fakePaymentLedger) MarkOrderPaid(orderID uint, providerPaymentID string) error {
	f.paid[providerPaymentID] = true
	f.paidOrders[orderID] = providerPaymentID
	return nil
}

func (f *fakePaymentLedger) RecordPackPurchase(userID uint, providerPaymentID string) error {
	f.paid[providerPaymentID] = true
	return nil
}

type fakeSubscriptionStore struct {
	records map[string]*models.SubscriptionRecord
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{records: make(map[string]*models.SubscriptionRecord)}
}

func (f *fakeSubscriptionStore) Upsert(sub *models.SubscriptionRecord) error {
	f.records[sub.PaddleSubscriptionID] = sub
	return nil
}

func (f *fakeSubscriptionStore) SetPlanAndStatus(id string, plan models.SubscriptionPlan, status models.SubscriptionStatus, currentPeriodEnd *time.Time) error {
	rec, ok := f.records[id]
	if !ok {
		return fmt.Errorf("subscription %s not found", id)
	}
	rec.Plan = plan
	rec.Status = status
	rec.CurrentPeriodEnd = currentPeriodEnd
	return nil
}

func (f *fakeSubscriptionStore) SetStatus(id string, status models.SubscriptionStatus) error {
	rec, ok := f.records[id]
	if !ok {
		return fmt.Errorf("subscription %s not found", id)
	}
	rec.Status = status
	return nil
}

func newTestBillingService() (*BillingService, *fakeProfileLedger, *fakePaymentLedger, *fakeSubscriptionStore) {
	profiles := newFakeProfileLedger()
	payments := newFakePaymentLedger()
	subs := newFakeSubscriptionStore()
	svc := NewBillingService(profiles, payments, subs, zap.NewNop())
	return svc, profiles, payments, subs
}

func transactionEvent(t *testing.T, eventType, txnID string, custom models.PaddleCustomData) *models.PaddleWebhookEvent {
	t.Helper()
	data, err := json.Marshal(models.PaddleTransaction{
		ID:         txnID,
		Status:     "completed",
		CustomData: custom,
	})
	require.NoError(t, err)
	return &models.PaddleWebhookEvent{EventType: eventType, Data: data}
}

func subscriptionEvent(t *testing.T, eventType string, sub models.PaddleSubscription) *models.PaddleWebhookEvent {
	t.Helper()
	data, err := json.Marshal(sub)
	require.NoError(t, err)
	return &models.PaddleWebhookEvent{EventType: eventType, Data: data}
}

func TestTransactionCompletedGrantsCredits(t *testing.T) {
	svc, profiles, _, _ := newTestBillingService()

	profiles.remaining[7] = 2
	profiles.total[7] = 5

	svc.HandleWebhookEvent(transactionEvent(t, "transaction.completed", "txn_1", models.PaddleCustomData{
		UserID:      "7",
		DishesCount: "10",
	}))

	assert.Equal(t, 12, profiles.remaining[7])
	assert.Equal(t, 15, profiles.total[7])
}

func TestTransactionReplayIsIdempotent(t *testing.T) {
	svc, profiles, payments, _ := newTestBillingService()

	event := transactionEvent(t, "transaction.completed", "txn_dup", models.PaddleCustomData{
		UserID:      "3",
		DishesCount: "5",
		DishOrderID: "42",
	})

	svc.HandleWebhookEvent(event)
	require.Equal(t, 5, profiles.remaining[3])
	require.Equal(t, "txn_dup", payments.paidOrders[42])

	// Paddle redelivers the same event. Nothing changes.
	svc.HandleWebhookEvent(event)
	svc.HandleWebhookEvent(event)

	assert.Equal(t, 5, profiles.remaining[3])
	assert.Equal(t, 5, profiles.total[3])
}

func TestPackPurchaseReplayIsIdempotent(t *testing.T) {
	svc, profiles, payments, _ := newTestBillingService()

	// A pack purchase carries only userId and dishesCount, no dish order.
	event := transactionEvent(t, "transaction.completed", "txn_pack", models.PaddleCustomData{
		UserID:      "7",
		DishesCount: "5",
	})

	svc.HandleWebhookEvent(event)
	require.Equal(t, 5, profiles.remaining[7])
	require.True(t, payments.paid["txn_pack"])

	svc.HandleWebhookEvent(event)
	svc.HandleWebhookEvent(event)

	assert.Equal(t, 5, profiles.remaining[7])
	assert.Equal(t, 5, profiles.total[7])
}

func TestTransactionMarksOrderPaid(t *testing.T) {
	svc, profiles, payments, _ := newTestBillingService()

	svc.HandleWebhookEvent(transactionEvent(t, "transaction.paid", "txn_demo", models.PaddleCustomData{
		UserID:      "9",
		DishOrderID: "17",
	}))

	assert.Equal(t, "txn_demo", payments.paidOrders[17])
	// No dishesCount means no credit grant.
	assert.Equal(t, 0, profiles.remaining[9])
}

func TestInvalidDishesCountSkipsGrant(t *testing.T) {
	for _, count := range []string{"abc", "-5", "0", ""} {
		t.Run(fmt.Sprintf("count=%q", count), func(t *testing.T) {
			svc, profiles, _, _ := newTestBillingService()

			svc.HandleWebhookEvent(transactionEvent(t, "transaction.completed", "txn_bad", models.PaddleCustomData{
				UserID:      "4",
				DishesCount: count,
			}))

			assert.Empty(t, profiles.remaining)
			assert.Empty(t, profiles.total)
		})
	}
}

func TestTransactionWithoutIDIsSkipped(t *testing.T) {
	svc, profiles, payments, _ := newTestBillingService()

	svc.HandleWebhookEvent(transactionEvent(t, "transaction.completed", "", models.PaddleCustomData{
		UserID:      "4",
		DishesCount: "5",
		DishOrderID: "1",
	}))

	assert.Empty(t, profiles.remaining)
	assert.Empty(t, payments.paidOrders)
}

func TestIdempotencyCheckFailureAbortsApply(t *testing.T) {
	svc, profiles, payments, _ := newTestBillingService()
	payments.checkErr = fmt.Errorf("db down")

	svc.HandleWebhookEvent(transactionEvent(t, "transaction.completed", "txn_x", models.PaddleCustomData{
		UserID:      "4",
		DishesCount: "5",
	}))

	// Could not prove the event is fresh, so nothing is applied.
	assert.Empty(t, profiles.remaining)
}

func TestUnknownEventTypeIsNoOp(t *testing.T) {
	svc, profiles, payments, subs := newTestBillingService()

	svc.HandleWebhookEvent(&models.PaddleWebhookEvent{
		EventType: "adjustment.created",
		Data:      json.RawMessage(`{"id":"adj_1"}`),
	})

	assert.Empty(t, profiles.remaining)
	assert.Empty(t, payments.paidOrders)
	assert.Empty(t, subs.records)
}

func TestSubscriptionActivated(t *testing.T) {
	svc, _, _, subs := newTestBillingService()

	periodEnd := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	svc.HandleWebhookEvent(subscriptionEvent(t, "subscription.activated", models.PaddleSubscription{
		ID:                   "sub_1",
		Status:               "active",
		CustomData:           models.PaddleCustomData{UserID: "11", Plan: "PRO"},
		CurrentBillingPeriod: &models.PaddleBillingPeriod{EndsAt: periodEnd},
	}))

	rec := subs.records["sub_1"]
	require.NotNil(t, rec)
	assert.Equal(t, uint(11), rec.UserID)
	assert.Equal(t, models.PlanPro, rec.Plan)
	assert.Equal(t, models.SubscriptionActive, rec.Status)
	require.NotNil(t, rec.CurrentPeriodEnd)
	assert.Equal(t, periodEnd, *rec.CurrentPeriodEnd)
	assert.Nil(t, rec.TrialEndsAt)
}

func TestSubscriptionTrialingUsesScheduledChange(t *testing.T) {
	svc, _, _, subs := newTestBillingService()

	trialEnd := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	svc.HandleWebhookEvent(subscriptionEvent(t, "subscription.created", models.PaddleSubscription{
		ID:              "sub_trial",
		Status:          "trialing",
		CustomData:      models.PaddleCustomData{UserID: "5"},
		ScheduledChange: &models.PaddleScheduledChange{EffectiveAt: trialEnd},
	}))

	rec := subs.records["sub_trial"]
	require.NotNil(t, rec)
	assert.Equal(t, models.SubscriptionTrialing, rec.Status)
	assert.Equal(t, models.PlanBasic, rec.Plan)
	require.NotNil(t, rec.TrialEndsAt)
	assert.Equal(t, trialEnd, *rec.TrialEndsAt)
}

func TestSubscriptionTrialingFallsBackTo30Days(t *testing.T) {
	svc, _, _, subs := newTestBillingService()

	before := time.Now()
	svc.HandleWebhookEvent(subscriptionEvent(t, "subscription.created", models.PaddleSubscription{
		ID:         "sub_trial_nb",
		Status:     "trialing",
		CustomData: models.PaddleCustomData{UserID: "5"},
	}))

	rec := subs.records["sub_trial_nb"]
	require.NotNil(t, rec)
	require.NotNil(t, rec.TrialEndsAt)
	assert.WithinDuration(t, before.Add(30*24*time.Hour), *rec.TrialEndsAt, time.Minute)
}

func TestSubscriptionWithoutUserIDIsSkipped(t *testing.T) {
	svc, _, _, subs := newTestBillingService()

	svc.HandleWebhookEvent(subscriptionEvent(t, "subscription.activated", models.PaddleSubscription{
		ID:     "sub_orphan",
		Status: "active",
	}))

	assert.Empty(t, subs.records)
}

func TestSubscriptionUpdatedReadsPlanFromItems(t *testing.T) {
	svc, _, _, subs := newTestBillingService()

	subs.records["sub_2"] = &models.SubscriptionRecord{
		UserID:               8,
		PaddleSubscriptionID: "sub_2",
		Plan:                 models.PlanBasic,
		Status:               models.SubscriptionActive,
	}

	item := models.PaddleSubscriptionItem{}
	item.Price.Description = "Menublend Hosting Pro"

	svc.HandleWebhookEvent(subscriptionEvent(t, "subscription.updated", models.PaddleSubscription{
		ID:     "sub_2",
		Status: "active",
		Items:  []models.PaddleSubscriptionItem{item},
	}))

	assert.Equal(t, models.PlanPro, subs.records["sub_2"].Plan)
	assert.Equal(t, models.SubscriptionActive, subs.records["sub_2"].Status)
}

func TestSubscriptionCanceledSetsStatusOnly(t *testing.T) {
	svc, _, _, subs := newTestBillingService()

	periodEnd := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	subs.records["sub_3"] = &models.SubscriptionRecord{
		UserID:               8,
		PaddleSubscriptionID: "sub_3",
		Plan:                 models.PlanPro,
		Status:               models.SubscriptionActive,
		CurrentPeriodEnd:     &periodEnd,
	}

	svc.HandleWebhookEvent(subscriptionEvent(t, "subscription.canceled", models.PaddleSubscription{
		ID:     "sub_3",
		Status: "canceled",
	}))

	rec := subs.records["sub_3"]
	assert.Equal(t, models.SubscriptionCanceled, rec.Status)
	assert.Equal(t, models.PlanPro, rec.Plan)
	require.NotNil(t, rec.CurrentPeriodEnd)
}

func TestSubscriptionPaused(t *testing.T) {
	svc, _, _, subs := newTestBillingService()

	subs.records["sub_4"] = &models.SubscriptionRecord{
		PaddleSubscriptionID: "sub_4",
		Status:               models.SubscriptionActive,
	}

	svc.HandleWebhookEvent(subscriptionEvent(t, "subscription.paused", models.PaddleSubscription{
		ID:     "sub_4",
		Status: "paused",
	}))

	assert.Equal(t, models.SubscriptionPaused, subs.records["sub_4"].Status)
}

func TestMapPaddleStatus(t *testing.T) {
	assert.Equal(t, models.SubscriptionTrialing, mapPaddleStatus("trialing"))
	assert.Equal(t, models.SubscriptionActive, mapPaddleStatus("active"))
	assert.Equal(t, models.SubscriptionCanceled, mapPaddleStatus("canceled"))
	assert.Equal(t, models.SubscriptionPaused, mapPaddleStatus("paused"))
	assert.Equal(t, models.SubscriptionActive, mapPaddleStatus("past_due"))
}

func TestMalformedPayloadIsSwallowed(t *testing.T) {
	svc, profiles, payments, subs := newTestBillingService()

	svc.HandleWebhookEvent(&models.PaddleWebhookEvent{
		EventType: "transaction.completed",
		Data:      json.RawMessage(`{"id":`),
	})
	svc.HandleWebhookEvent(&models.PaddleWebhookEvent{
		EventType: "subscription.updated",
		Data:      json.RawMessage(`not json`),
	})

	assert.Empty(t, profiles.remaining)
	assert.Empty(t, payments.paidOrders)
	assert.Empty(t, subs.records)
}
