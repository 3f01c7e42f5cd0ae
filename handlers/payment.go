package handlers

import (
	"errors"
	"net/http"

	"roomhive/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment processor's webhook endpoint.
type PaymentHandler struct {
	reconciler *payment.Reconciler
	logger     *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(reconciler *payment.Reconciler, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{reconciler: reconciler, logger: logger}
}

// StripeWebhookHandler handles POST /api/payments/webhook. The raw body is
// read before any JSON binding: signature verification needs the exact
// bytes Stripe sent. A non-2xx response makes Stripe redeliver, so only
// internal faults fail the delivery; forged signatures are rejected with
// 400 and application-level no-ops are acknowledged.
func (h *PaymentHandler) StripeWebhookHandler(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read request body"})
		return
	}
	sigHeader := c.GetHeader("Stripe-Signature")

	if err := h.reconciler.HandleEvent(c.Request.Context(), payload, sigHeader); err != nil {
		if errors.Is(err, payment.ErrSignatureInvalid) {
			h.logger.Warn("webhook signature rejected", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		h.logger.Error("webhook processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
