package service

import (
	"fmt"

	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/pkg/email"
	"go.uber.org/zap"
)

type Mailer interface {
	SendNewOrderEmail(to string, data email.OrderEmailData) error
	SendOrderReadyEmail(to string, data email.OrderEmailData) error
	SendOrderDeliveredEmail(to string, data email.OrderEmailData) error
}

// NotifyResult reports the outcome of a notification without ever failing the
// caller: order workflows proceed whether or not the email went out.
type NotifyResult struct {
	Success bool
	Err     error
}

type NotificationService struct {
	mailer     Mailer
	siteURL    string
	adminEmail string
	logger     *zap.Logger
}

func NewNotificationService(mailer Mailer, siteURL, adminEmail string, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		mailer:     mailer,
		siteURL:    siteURL,
		adminEmail: adminEmail,
		logger:     logger.Named("notifications"),
	}
}

func (s *NotificationService) dashboardURL(orderID uint) string {
	return fmt.Sprintf("%s/admin/dishes/%d", s.siteURL, orderID)
}

func (s *NotificationService) demoURL(orderID uint) string {
	return fmt.Sprintf("%s/demo/dish/%d", s.siteURL, orderID)
}

// NotifyAdminNewOrder tells staff a confirmed order is waiting in the queue.
func (s *NotificationService) NotifyAdminNewOrder(order *models.DishOrder, profile *models.RestaurantProfile) NotifyResult {
	data := email.OrderEmailData{
		RestaurantName:    profile.RestaurantName,
		DishName:          order.DishName,
		InternalReference: order.InternalReference,
		City:              profile.City,
		Country:           profile.Country,
		DashboardURL:      s.dashboardURL(order.ID),
		DemoURL:           s.demoURL(order.ID),
	}

	return s.result("NEW_ORDER", s.adminEmail, order.ID, s.mailer.SendNewOrderEmail(s.adminEmail, data))
}

func (s *NotificationService) NotifyOrderReady(to string, order *models.DishOrder) NotifyResult {
	data := email.OrderEmailData{
		DishName:          order.DishName,
		InternalReference: order.InternalReference,
		DashboardURL:      s.dashboardURL(order.ID),
		DemoURL:           s.demoURL(order.ID),
	}

	return s.result("ORDER_READY", to, order.ID, s.mailer.SendOrderReadyEmail(to, data))
}

func (s *NotificationService) NotifyOrderDelivered(to string, order *models.DishOrder) NotifyResult {
	data := email.OrderEmailData{
		DishName:          order.DishName,
		InternalReference: order.InternalReference,
		DashboardURL:      s.dashboardURL(order.ID),
		DemoURL:           s.demoURL(order.ID),
	}

	return s.result("ORDER_DELIVERED", to, order.ID, s.mailer.SendOrderDeliveredEmail(to, data))
}

func (s *NotificationService) result(kind, to string, orderID uint, err error) NotifyResult {
	if err != nil {
		s.logger.Warn("notification failed",
			zap.String("kind", kind),
			zap.String("to", to),
			zap.Uint("order_id", orderID),
			zap.Error(err))
		return NotifyResult{Success: false, Err: err}
	}
	return NotifyResult{Success: true}
}
