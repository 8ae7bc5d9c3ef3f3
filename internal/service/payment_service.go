package service

import (
	"errors"
	"strconv"

	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/internal/repository"
	"go.uber.org/zap"
)

// DemoDishPaddlePriceID is the Paddle catalog price for a single demo dish.
const DemoDishPaddlePriceID = "pri_demo_dish"

// PaymentService prepares Paddle checkouts and serves billing reads. The
// checkout itself happens in Paddle's overlay on the frontend; we hand back
// the price id plus the custom data the webhook needs to reconcile.
type PaymentService struct {
	paymentRepo *repository.PaymentRecordRepository
	packRepo    *repository.CreditPackRepository
	subRepo     *repository.SubscriptionRepository
	orderRepo   *repository.DishOrderRepository
	logger      *zap.Logger
}

func NewPaymentService(
	paymentRepo *repository.PaymentRecordRepository,
	packRepo *repository.CreditPackRepository,
	subRepo *repository.SubscriptionRepository,
	orderRepo *repository.DishOrderRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		packRepo:    packRepo,
		subRepo:     subRepo,
		orderRepo:   orderRepo,
		logger:      logger.Named("payments"),
	}
}

func (s *PaymentService) CreatePackCheckout(userID uint, packID uint) (*models.CheckoutIntent, error) {
	pack, err := s.packRepo.GetByID(packID)
	if err != nil {
		return nil, errors.New("credit pack not found")
	}
	if !pack.IsActive {
		return nil, errors.New("credit pack is no longer available")
	}

	return &models.CheckoutIntent{
		PriceID: pack.PaddlePriceID,
		CustomData: map[string]string{
			"userId":      strconv.FormatUint(uint64(userID), 10),
			"dishesCount": strconv.Itoa(pack.Dishes),
		},
	}, nil
}

func (s *PaymentService) CreateDishCheckout(userID uint, orderID uint) (*models.CheckoutIntent, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.UserID != userID {
		return nil, errors.New("unauthorized")
	}
	if order.PriceCharged <= 0 {
		return nil, errors.New("order is credit-funded and needs no checkout")
	}

	if payment, err := s.paymentRepo.GetByOrderID(orderID); err == nil {
		if payment.Status == models.PaymentStatusPaid {
			return nil, errors.New("order has already been paid")
		}
	} else {
		payment := &models.PaymentRecord{
			DishOrderID: order.ID,
			UserID:      userID,
			Amount:      order.PriceCharged,
			Currency:    order.Currency,
			Status:      models.PaymentStatusPending,
			Provider:    "paddle",
		}
		if err := s.paymentRepo.Create(payment); err != nil {
			return nil, err
		}
	}

	return &models.CheckoutIntent{
		PriceID: DemoDishPaddlePriceID,
		CustomData: map[string]string{
			"userId":      strconv.FormatUint(uint64(userID), 10),
			"dishOrderId": strconv.FormatUint(uint64(orderID), 10),
		},
	}, nil
}

func (s *PaymentService) GetCreditPacks() ([]models.CreditPack, error) {
	return s.packRepo.GetAll()
}

func (s *PaymentService) GetSubscription(userID uint) (*models.SubscriptionRecord, error) {
	return s.subRepo.GetLatestByUserID(userID)
}

func (s *PaymentService) GetPurchaseHistory(userID uint) ([]models.PaymentRecord, error) {
	return s.paymentRepo.GetUserPayments(userID)
}

// OverridePaymentStatus lets staff settle a payment manually. Terminal
// payment statuses never change again.
func (s *PaymentService) OverridePaymentStatus(paymentID uint, status models.PaymentStatus) (*models.PaymentRecord, error) {
	if status != models.PaymentStatusPaid && status != models.PaymentStatusFailed {
		return nil, errors.New("status must be PAID or FAILED")
	}

	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, errors.New("payment not found")
	}
	if payment.Status != models.PaymentStatusPending {
		return nil, errors.New("payment is already settled")
	}

	payment.Status = status
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment status overridden",
		zap.Uint("payment_id", paymentID),
		zap.String("status", string(status)))

	return payment, nil
}
