package service

import (
	"errors"

	"github.com/menublend/menublend-backend/internal/config"
	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/internal/repository"
	"github.com/menublend/menublend-backend/pkg/utils"
	"go.uber.org/zap"
)

type DishOrderService struct {
	orderRepo   *repository.DishOrderRepository
	photoRepo   *repository.DishPhotoRepository
	profileRepo *repository.RestaurantProfileRepository
	paymentRepo *repository.PaymentRecordRepository
	userRepo    *repository.UserRepository
	notifier    *NotificationService
	logger      *zap.Logger
}

func NewDishOrderService(
	orderRepo *repository.DishOrderRepository,
	photoRepo *repository.DishPhotoRepository,
	profileRepo *repository.RestaurantProfileRepository,
	paymentRepo *repository.PaymentRecordRepository,
	userRepo *repository.UserRepository,
	notifier *NotificationService,
	logger *zap.Logger,
) *DishOrderService {
	return &DishOrderService{
		orderRepo:   orderRepo,
		photoRepo:   photoRepo,
		profileRepo: profileRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger.Named("orders"),
	}
}

// CreateOrder opens a NEW order. Credit-funded orders consume one pack credit
// up front via a guarded decrement, so two concurrent submissions cannot
// spend the same credit.
func (s *DishOrderService) CreateOrder(userID uint, req models.CreateDishOrderRequest) (*models.DishOrder, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, errors.New("restaurant profile not found")
	}
	if !profile.OnboardingCompleted {
		return nil, errors.New("complete your restaurant profile before ordering")
	}

	price := config.DemoDishPriceUSD
	if req.UseCredit {
		rows, err := s.profileRepo.ConsumePackCredit(userID)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, errors.New("no pack credits remaining")
		}
		price = 0
	}

	order := &models.DishOrder{
		RestaurantProfileID: profile.ID,
		UserID:              userID,
		DishName:            req.DishName,
		Description:         req.Description,
		CuisineType:         req.CuisineType,
		TargetUseCase:       req.TargetUseCase,
		InternalReference:   utils.GenerateOrderReference(),
		Status:              models.OrderStatusNew,
		PriceCharged:        price,
		Currency:            config.DemoDishCurrency,
		IsDemo:              req.IsDemo,
	}

	created, err := s.orderRepo.Create(order)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *DishOrderService) GetOrder(orderID uint, userID uint) (*models.DishOrder, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.UserID != userID {
		return nil, errors.New("unauthorized")
	}
	return order, nil
}

func (s *DishOrderService) GetUserOrders(userID uint) ([]models.DishOrder, error) {
	return s.orderRepo.GetUserOrders(userID)
}

// ConfirmOrder submits a NEW order into the production queue. An order needs
// 8 to 20 photos before it can be confirmed; paid orders get a PENDING
// payment record the webhook later settles. The admin notification is
// best-effort and never blocks confirmation.
func (s *DishOrderService) ConfirmOrder(orderID uint, userID uint) (*models.DishOrder, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.UserID != userID {
		return nil, errors.New("unauthorized")
	}
	if order.Status != models.OrderStatusNew || order.Confirmed {
		return nil, errors.New("order has already been submitted")
	}

	photoCount, err := s.photoRepo.CountByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if photoCount < config.MinOrderPhotos {
		return nil, errors.New("at least 8 photos are required before submitting")
	}
	if photoCount > config.MaxOrderPhotos {
		return nil, errors.New("a dish order can have at most 20 photos")
	}

	if order.PriceCharged > 0 {
		if _, err := s.paymentRepo.GetByOrderID(orderID); err != nil {
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
	}

	order.Confirmed = true
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	if profile, err := s.profileRepo.GetByUserID(userID); err == nil {
		s.notifier.NotifyAdminNewOrder(order, profile)
	}

	return order, nil
}

// GetAllOrders lists orders for staff, optionally filtered by status.
func (s *DishOrderService) GetAllOrders(status models.DishOrderStatus) ([]models.DishOrder, error) {
	return s.orderRepo.GetAll(status)
}

func (s *DishOrderService) AdminGetOrder(orderID uint) (*models.DishOrder, []models.DishPhoto, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, errors.New("order not found")
	}
	photos, err := s.photoRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, photos, nil
}

// UpdateStatus drives the staff pipeline. Terminal orders accept only
// delivery-note edits; DELIVERED additionally requires a non-empty delivery
// URL. Customer notifications for READY and DELIVERED are best-effort.
func (s *DishOrderService) UpdateStatus(orderID uint, req models.UpdateOrderStatusRequest) (*models.DishOrder, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}

	if order.Status.IsTerminal() {
		if req.Status != order.Status {
			return nil, errors.New("order is in a terminal state")
		}
		order.DeliveryNote = req.DeliveryNote
		if err := s.orderRepo.Update(order); err != nil {
			return nil, err
		}
		return order, nil
	}

	if !models.CanTransition(order.Status, req.Status) {
		return nil, errors.New("invalid status transition")
	}

	if req.Status == models.OrderStatusDelivered {
		deliveryURL := req.DeliveryURL
		if deliveryURL == "" {
			deliveryURL = order.DeliveryURL
		}
		if deliveryURL == "" {
			return nil, errors.New("a delivery URL is required before marking an order delivered")
		}
		order.DeliveryURL = deliveryURL
	} else if req.DeliveryURL != "" {
		order.DeliveryURL = req.DeliveryURL
	}

	if req.DeliveryNote != "" {
		order.DeliveryNote = req.DeliveryNote
	}
	order.Status = req.Status

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	switch order.Status {
	case models.OrderStatusReady:
		if owner, err := s.userRepo.GetByID(order.UserID); err == nil {
			s.notifier.NotifyOrderReady(owner.Email, order)
		}
	case models.OrderStatusDelivered:
		if owner, err := s.userRepo.GetByID(order.UserID); err == nil {
			s.notifier.NotifyOrderDelivered(owner.Email, order)
		}
	}

	return order, nil
}

// GetDemoOrder serves the public demo page: only delivered orders and demo
// dishes are visible without authentication.
func (s *DishOrderService) GetDemoOrder(orderID uint) (*models.DishOrder, []models.DishPhoto, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, errors.New("dish not found")
	}
	if order.Status != models.OrderStatusDelivered && !order.IsDemo {
		return nil, nil, errors.New("dish not found")
	}

	photos, err := s.photoRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, nil, err
	}

	return order, photos, nil
}
