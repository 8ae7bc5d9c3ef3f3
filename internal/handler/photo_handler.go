package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/internal/service"
)

type PhotoHandler struct {
	photoService *service.PhotoService
}

func NewPhotoHandler(photoService *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// UploadPhoto accepts one multipart file per request under the "photo" field.
func (h *PhotoHandler) UploadPhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid order ID"))
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Photo file is required"))
	}

	photo, err := h.photoService.UploadDishPhoto(uint(orderID), userID, file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(photo, "Photo uploaded successfully"))
}

func (h *PhotoHandler) GetOrderPhotos(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid order ID"))
	}

	photos, err := h.photoService.GetOrderPhotos(uint(orderID), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(photos, ""))
}
