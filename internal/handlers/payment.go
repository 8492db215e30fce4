// internal/handlers/payment.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/storefront-backend/internal/services"
	"github.com/openshelf/storefront-backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateIntent handles POST /orders/:id/payment
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	intent, err := h.paymentService.CreateIntent(orderID, userID, isAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotConfigured):
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "PAYMENT_UNAVAILABLE",
				"Payment is not available", nil)
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFoundResponse(c, "order")
		case errors.Is(err, services.ErrOrderNotPending):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}
	utils.SuccessResponse(c, intent)
}

// Confirm handles POST /orders/:id/payment/confirm
func (h *PaymentHandler) Confirm(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	order, err := h.paymentService.Confirm(orderID, userID, isAdmin(c), req.PaymentIntentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFoundResponse(c, "order")
		case errors.Is(err, services.ErrOrderNotPending):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}
	utils.SuccessResponse(c, order)
}

// Refund handles POST /admin/orders/:id/refund
func (h *PaymentHandler) Refund(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.paymentService.Refund(orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "order")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.SuccessResponse(c, order)
}

// Webhook handles POST /payments/webhook. Stripe expects a bare 2xx, not the
// usual response envelope.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 65536))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid payload")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.paymentService.HandleWebhook(payload, signature); err != nil {
		c.String(http.StatusBadRequest, "webhook error")
		return
	}
	c.Status(http.StatusOK)
}
