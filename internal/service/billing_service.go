package service

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/menublend/menublend-backend/internal/models"
	"go.uber.org/zap"
)

// ProfileLedger is the slice of the profile repository the webhook needs: the
// atomic credit grant.
type ProfileLedger interface {
	GrantPackCredits(userID uint, dishes int, purchasedAt time.Time) error
}

type PaymentLedger interface {
	HasPaidTransaction(providerPaymentID string) (bool, error)
	MarkOrderPaid(orderID uint, providerPaymentID string) error
	RecordPackPurchase(userID uint, providerPaymentID string) error
}

type SubscriptionStore interface {
	Upsert(sub *models.SubscriptionRecord) error
	SetPlanAndStatus(paddleSubscriptionID string, plan models.SubscriptionPlan, status models.SubscriptionStatus, currentPeriodEnd *time.Time) error
	SetStatus(paddleSubscriptionID string, status models.SubscriptionStatus) error
}

// BillingService applies verified Paddle webhook events to the store. Every
// branch is best-effort: store failures are logged and swallowed so Paddle is
// always acknowledged and never retries a poison event. The cost is a silent
// consistency gap surfaced only through the logs.
type BillingService struct {
	profiles ProfileLedger
	payments PaymentLedger
	subs     SubscriptionStore
	logger   *zap.Logger
}

func NewBillingService(profiles ProfileLedger, payments PaymentLedger, subs SubscriptionStore, logger *zap.Logger) *BillingService {
	return &BillingService{
		profiles: profiles,
		payments: payments,
		subs:     subs,
		logger:   logger.Named("billing"),
	}
}

// HandleWebhookEvent dispatches one verified event. Unknown event types are a
// logged no-op: the caller acknowledges them regardless.
func (s *BillingService) HandleWebhookEvent(event *models.PaddleWebhookEvent) {
	s.logger.Info("paddle webhook received", zap.String("event_type", event.EventType))

	switch event.EventType {
	case "transaction.completed", "transaction.paid":
		s.applyTransactionPaid(event.Data)

	case "subscription.created", "subscription.activated":
		s.applySubscriptionActivated(event.Data)

	case "subscription.updated":
		s.applySubscriptionUpdated(event.Data)

	case "subscription.canceled":
		s.applySubscriptionStatus(event.Data, models.SubscriptionCanceled)

	case "subscription.paused":
		s.applySubscriptionStatus(event.Data, models.SubscriptionPaused)

	default:
		s.logger.Info("unhandled event type", zap.String("event_type", event.EventType))
	}
}

// applyTransactionPaid grants pack credits and settles the order's payment
// record for a completed one-time purchase. Paddle delivers at least once, so
// the paid-transaction check must make reapplication a no-op.
func (s *BillingService) applyTransactionPaid(data json.RawMessage) {
	var txn models.PaddleTransaction
	if err := json.Unmarshal(data, &txn); err != nil {
		s.logger.Error("failed to parse transaction payload", zap.Error(err))
		return
	}
	if txn.ID == "" {
		s.logger.Warn("transaction event without id, skipping")
		return
	}

	alreadyPaid, err := s.payments.HasPaidTransaction(txn.ID)
	if err != nil {
		s.logger.Error("idempotency check failed",
			zap.String("transaction_id", txn.ID), zap.Error(err))
		return
	}
	if alreadyPaid {
		s.logger.Info("transaction already applied, skipping",
			zap.String("transaction_id", txn.ID))
		return
	}

	custom := txn.CustomData

	if custom.UserID != "" && custom.DishesCount != "" {
		s.grantCredits(txn.ID, custom)
	}

	if custom.DishOrderID != "" {
		orderID, err := strconv.ParseUint(custom.DishOrderID, 10, 32)
		if err != nil {
			s.logger.Warn("invalid dishOrderId in custom data",
				zap.String("transaction_id", txn.ID),
				zap.String("dish_order_id", custom.DishOrderID))
		} else if err := s.payments.MarkOrderPaid(uint(orderID), txn.ID); err != nil {
			s.logger.Error("failed to mark order paid",
				zap.String("transaction_id", txn.ID),
				zap.Uint64("dish_order_id", orderID),
				zap.Error(err))
		}
	}
}

func (s *BillingService) grantCredits(transactionID string, custom models.PaddleCustomData) {
	dishes, err := strconv.Atoi(custom.DishesCount)
	if err != nil || dishes <= 0 {
		s.logger.Warn("invalid dishesCount, skipping credit grant",
			zap.String("transaction_id", transactionID),
			zap.String("dishes_count", custom.DishesCount))
		return
	}

	userID, err := strconv.ParseUint(custom.UserID, 10, 32)
	if err != nil {
		s.logger.Warn("invalid userId, skipping credit grant",
			zap.String("transaction_id", transactionID),
			zap.String("user_id", custom.UserID))
		return
	}

	if err := s.profiles.GrantPackCredits(uint(userID), dishes, time.Now()); err != nil {
		s.logger.Error("failed to grant pack credits",
			zap.String("transaction_id", transactionID),
			zap.Uint64("user_id", userID),
			zap.Int("dishes", dishes),
			zap.Error(err))
		return
	}

	// The PAID row is what trips HasPaidTransaction on redelivery: without it
	// a pack purchase would be granted once per delivery.
	if err := s.payments.RecordPackPurchase(uint(userID), transactionID); err != nil {
		s.logger.Error("failed to record pack purchase",
			zap.String("transaction_id", transactionID),
			zap.Uint64("user_id", userID),
			zap.Error(err))
	}

	s.logger.Info("pack credits granted",
		zap.Uint64("user_id", userID), zap.Int("dishes", dishes))
}

func (s *BillingService) applySubscriptionActivated(data json.RawMessage) {
	var sub models.PaddleSubscription
	if err := json.Unmarshal(data, &sub); err != nil {
		s.logger.Error("failed to parse subscription payload", zap.Error(err))
		return
	}

	if sub.CustomData.UserID == "" {
		s.logger.Warn("subscription event without userId, skipping",
			zap.String("subscription_id", sub.ID))
		return
	}
	userID, err := strconv.ParseUint(sub.CustomData.UserID, 10, 32)
	if err != nil {
		s.logger.Warn("invalid userId on subscription event",
			zap.String("subscription_id", sub.ID),
			zap.String("user_id", sub.CustomData.UserID))
		return
	}

	status := models.SubscriptionActive
	var trialEndsAt *time.Time
	if sub.Status == "trialing" {
		status = models.SubscriptionTrialing
		if sub.ScheduledChange != nil {
			trialEndsAt = &sub.ScheduledChange.EffectiveAt
		} else {
			// Paddle omits the trial end on some sandbox events.
			fallback := time.Now().Add(30 * 24 * time.Hour)
			trialEndsAt = &fallback
		}
	}

	plan := models.PlanBasic
	if sub.CustomData.Plan == string(models.PlanPro) {
		plan = models.PlanPro
	}

	var periodEnd *time.Time
	if sub.CurrentBillingPeriod != nil {
		periodEnd = &sub.CurrentBillingPeriod.EndsAt
	}

	record := &models.SubscriptionRecord{
		UserID:               uint(userID),
		PaddleSubscriptionID: sub.ID,
		Plan:                 plan,
		Status:               status,
		CurrentPeriodEnd:     periodEnd,
		TrialEndsAt:          trialEndsAt,
	}

	if err := s.subs.Upsert(record); err != nil {
		s.logger.Error("failed to upsert subscription",
			zap.String("subscription_id", sub.ID), zap.Error(err))
		return
	}

	s.logger.Info("subscription activated",
		zap.String("subscription_id", sub.ID),
		zap.String("status", string(status)))
}

func (s *BillingService) applySubscriptionUpdated(data json.RawMessage) {
	var sub models.PaddleSubscription
	if err := json.Unmarshal(data, &sub); err != nil {
		s.logger.Error("failed to parse subscription payload", zap.Error(err))
		return
	}

	plan := models.PlanBasic
	if len(sub.Items) > 0 && strings.Contains(sub.Items[0].Price.Description, "Pro") {
		plan = models.PlanPro
	}

	var periodEnd *time.Time
	if sub.CurrentBillingPeriod != nil {
		periodEnd = &sub.CurrentBillingPeriod.EndsAt
	}

	if err := s.subs.SetPlanAndStatus(sub.ID, plan, mapPaddleStatus(sub.Status), periodEnd); err != nil {
		s.logger.Error("failed to update subscription",
			zap.String("subscription_id", sub.ID), zap.Error(err))
	}
}

func (s *BillingService) applySubscriptionStatus(data json.RawMessage, status models.SubscriptionStatus) {
	var sub models.PaddleSubscription
	if err := json.Unmarshal(data, &sub); err != nil {
		s.logger.Error("failed to parse subscription payload", zap.Error(err))
		return
	}

	if err := s.subs.SetStatus(sub.ID, status); err != nil {
		s.logger.Error("failed to update subscription status",
			zap.String("subscription_id", sub.ID),
			zap.String("status", string(status)),
			zap.Error(err))
	}
}

func mapPaddleStatus(providerStatus string) models.SubscriptionStatus {
	switch providerStatus {
	case "trialing":
		return models.SubscriptionTrialing
	case "active":
		return models.SubscriptionActive
	case "canceled":
		return models.SubscriptionCanceled
	case "paused":
		return models.SubscriptionPaused
	default:
		return models.SubscriptionActive
	}
}
