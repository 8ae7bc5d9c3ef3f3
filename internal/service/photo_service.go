package service

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/menublend/menublend-backend/internal/config"
	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/internal/repository"
	"github.com/menublend/menublend-backend/pkg/storage"
	"go.uber.org/zap"
)

const maxPhotoSizeBytes = 10 * 1024 * 1024

type PhotoService struct {
	photoRepo *repository.DishPhotoRepository
	orderRepo *repository.DishOrderRepository
	storage   storage.StorageService
	logger    *zap.Logger
}

func NewPhotoService(
	photoRepo *repository.DishPhotoRepository,
	orderRepo *repository.DishOrderRepository,
	store storage.StorageService,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		orderRepo: orderRepo,
		storage:   store,
		logger:    logger.Named("photos"),
	}
}

// UploadDishPhoto attaches one photo to an unconfirmed order. Uploads are
// capped at 20 per order; the 8-photo minimum is enforced at confirmation.
func (s *PhotoService) UploadDishPhoto(orderID uint, userID uint, file *multipart.FileHeader) (*models.DishPhoto, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.UserID != userID {
		return nil, errors.New("unauthorized")
	}
	if order.Status != models.OrderStatusNew || order.Confirmed {
		return nil, errors.New("photos can only be added before the order is submitted")
	}

	count, err := s.photoRepo.CountByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if count >= config.MaxOrderPhotos {
		return nil, errors.New("a dish order can have at most 20 photos")
	}

	if !isValidImageType(file.Header.Get("Content-Type")) {
		return nil, errors.New("invalid file type")
	}
	if file.Size > maxPhotoSizeBytes {
		return nil, errors.New("file size too large")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	key := fmt.Sprintf("dishes/%d/%s", orderID, file.Filename)
	if err := s.storage.Upload(key, src); err != nil {
		return nil, err
	}

	photo := &models.DishPhoto{
		DishOrderID: orderID,
		FileName:    file.Filename,
		FileSize:    file.Size,
		MimeType:    file.Header.Get("Content-Type"),
		StorageKey:  key,
		PublicURL:   s.storage.PublicURL(key),
	}

	if err := s.photoRepo.Create(photo); err != nil {
		// Keep the bucket consistent with the database.
		_ = s.storage.Delete(key)
		return nil, err
	}

	if err := s.orderRepo.IncrementPhotoCount(orderID); err != nil {
		s.logger.Warn("failed to bump photo count",
			zap.Uint("order_id", orderID), zap.Error(err))
	}

	return photo, nil
}

func (s *PhotoService) GetOrderPhotos(orderID uint, userID uint) ([]models.DishPhoto, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, errors.New("order not found")
	}
	if order.UserID != userID {
		return nil, errors.New("unauthorized")
	}

	return s.photoRepo.GetByOrderID(orderID)
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/heic": true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
