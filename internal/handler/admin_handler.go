package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/internal/service"
	"github.com/menublend/menublend-backend/pkg/utils"
)

// AdminHandler serves the staff fulfillment endpoints. Routes using it must be
// behind both auth and admin middleware.
type AdminHandler struct {
	orderService   *service.DishOrderService
	paymentService *service.PaymentService
	validator      *utils.Validator
}

func NewAdminHandler(orderService *service.DishOrderService, paymentService *service.PaymentService, validator *utils.Validator) *AdminHandler {
	return &AdminHandler{
		orderService:   orderService,
		paymentService: paymentService,
		validator:      validator,
	}
}

// ListOrders returns all orders, optionally filtered with ?status=.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	status := models.DishOrderStatus(c.Query("status"))

	orders, err := h.orderService.GetAllOrders(status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(orders, ""))
}

func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid order ID"))
	}

	order, photos, err := h.orderService.AdminGetOrder(uint(orderID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"order":  order,
		"photos": photos,
	}, ""))
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid order ID"))
	}

	var req models.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	order, err := h.orderService.UpdateStatus(uint(orderID), req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(order, "Order status updated"))
}

// OverridePayment lets staff settle a pending payment manually, for bank
// transfers and refund bookkeeping.
func (h *AdminHandler) OverridePayment(c *fiber.Ctx) error {
	paymentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid payment ID"))
	}

	var req struct {
		Status models.PaymentStatus `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	payment, err := h.paymentService.OverridePaymentStatus(uint(paymentID), req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(payment, "Payment status updated"))
}
