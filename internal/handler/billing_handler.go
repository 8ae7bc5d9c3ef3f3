package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/menublend/menublend-backend/internal/models"
	"github.com/menublend/menublend-backend/internal/service"
	"github.com/menublend/menublend-backend/pkg/paddle"
)

type BillingHandler struct {
	billingService *service.BillingService
	paymentService *service.PaymentService
	webhookSecret  string
}

func NewBillingHandler(billingService *service.BillingService, paymentService *service.PaymentService, webhookSecret string) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		paymentService: paymentService,
		webhookSecret:  webhookSecret,
	}
}

// HandlePaddleWebhook verifies the signature against the raw body before any
// parsing. Once the event is dispatched we always acknowledge with 200 so
// Paddle does not retry events whose processing failed internally.
func (h *BillingHandler) HandlePaddleWebhook(c *fiber.Ctx) error {
	signature := c.Get("Paddle-Signature")
	body := c.Body()

	if !paddle.Verify(h.webhookSecret, signature, body) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid signature",
		})
	}

	var event models.PaddleWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.billingService.HandleWebhookEvent(&event)

	return c.JSON(fiber.Map{
		"received": true,
	})
}

func (h *BillingHandler) GetCreditPacks(c *fiber.Ctx) error {
	packs, err := h.paymentService.GetCreditPacks()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(packs, ""))
}

func (h *BillingHandler) CreatePackCheckout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	packID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid pack ID"))
	}

	intent, err := h.paymentService.CreatePackCheckout(userID, uint(packID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(intent, ""))
}

func (h *BillingHandler) CreateDishCheckout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid order ID"))
	}

	intent, err := h.paymentService.CreateDishCheckout(userID, uint(orderID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(intent, ""))
}

func (h *BillingHandler) GetSubscription(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	sub, err := h.paymentService.GetSubscription(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("No subscription found"))
	}

	return c.JSON(models.SuccessResponse(sub, ""))
}

func (h *BillingHandler) GetPurchaseHistory(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	payments, err := h.paymentService.GetPurchaseHistory(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(payments, ""))
}
