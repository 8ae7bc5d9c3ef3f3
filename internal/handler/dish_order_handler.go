package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/internal/service"
	"github.com/menublend/menublend-backend/pkg/qrcode"
	"github.com/menublend/menublend-backend/pkg/utils"
)

type DishOrderHandler struct {
	orderService *service.DishOrderService
	qrService    *qrcode.QRService
	validator    *utils.Validator
}

func NewDishOrderHandler(orderService *service.DishOrderService, qrService *qrcode.QRService, validator *utils.Validator) *DishOrderHandler {
	return &DishOrderHandler{
		orderService: orderService,
		qrService:    qrService,
		validator:    validator,
	}
}

func (h *DishOrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.CreateDishOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	order, err := h.orderService.CreateOrder(userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(order, "Order created successfully"))
}

func (h *DishOrderHandler) GetMyOrders(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	orders, err := h.orderService.GetUserOrders(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(orders, ""))
}

func (h *DishOrderHandler) GetOrder(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid order ID"))
	}

	order, err := h.orderService.GetOrder(uint(orderID), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(order, ""))
}

func (h *DishOrderHandler) ConfirmOrder(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid order ID"))
	}

	order, err := h.orderService.ConfirmOrder(uint(orderID), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(order, "Order submitted successfully"))
}

// GetDemoDish is public: it serves the AR demo page data without auth.
func (h *DishOrderHandler) GetDemoDish(c *fiber.Ctx) error {
	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid dish ID"))
	}

	order, photos, err := h.orderService.GetDemoOrder(uint(orderID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"order":  order,
		"photos": photos,
	}, ""))
}

// GetDemoQR returns a PNG QR code linking to the public demo page.
func (h *DishOrderHandler) GetDemoQR(c *fiber.Ctx) error {
	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid dish ID"))
	}

	// Only dishes visible on the demo page get a QR code.
	if _, _, err := h.orderService.GetDemoOrder(uint(orderID)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	}

	size := c.QueryInt("size", 256)
	if size < 64 || size > 1024 {
		size = 256
	}

	png, err := h.qrService.GenerateDemoQR(uint(orderID), size)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to generate QR code"))
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
