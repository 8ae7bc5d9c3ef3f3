package repository

import (
	"github.com/menublend/menublend-backend/internal/models"
	"gorm.io/gorm"
)

type PaymentRecordRepository struct {
	db *gorm.DB
}

func NewPaymentRecordRepository(db *gorm.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{db: db}
}

func (r *PaymentRecordRepository) Create(payment *models.PaymentRecord) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRecordRepository) GetByID(id uint) (*models.PaymentRecord, error) {
	var payment models.PaymentRecord
	err := r.db.First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRecordRepository) GetByOrderID(orderID uint) (*models.PaymentRecord, error) {
	var payment models.PaymentRecord
	err := r.db.Where("dish_order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// HasPaidTransaction is the webhook idempotency check: a PAID record with the
// provider's transaction id means the event has already been applied.
func (r *PaymentRecordRepository) HasPaidTransaction(providerPaymentID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.PaymentRecord{}).
		Where("provider_payment_id = ? AND status = ?", providerPaymentID, models.PaymentStatusPaid).
		Count(&count).Error
	return count > 0, err
}

// MarkOrderPaid flips the order's pending payment to PAID and stamps the
// provider transaction id.
func (r *PaymentRecordRepository) MarkOrderPaid(orderID uint, providerPaymentID string) error {
	return r.db.Model(&models.PaymentRecord{}).
		Where("dish_order_id = ? AND status = ?", orderID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":              models.PaymentStatusPaid,
			"provider_payment_id": providerPaymentID,
		}).Error
}

// RecordPackPurchase writes the settled payment row for a credit-pack
// purchase. Packs have no dish order; the row feeds purchase history and is
// the replay guard for the provider transaction id.
func (r *PaymentRecordRepository) RecordPackPurchase(userID uint, providerPaymentID string) error {
	return r.db.Create(&models.PaymentRecord{
		UserID:            userID,
		Status:            models.PaymentStatusPaid,
		Provider:          "paddle",
		ProviderPaymentID: providerPaymentID,
	}).Error
}

func (r *PaymentRecordRepository) Update(payment *models.PaymentRecord) error {
	return r.db.Save(payment).Error
}

func (r *PaymentRecordRepository) GetUserPayments(userID uint) ([]models.PaymentRecord, error) {
	var payments []models.PaymentRecord
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
