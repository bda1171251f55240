package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// PaymentHandlers handles payment HTTP requests
type PaymentHandlers struct {
	paymentSvc domain.PaymentService
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(paymentSvc domain.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{paymentSvc: paymentSvc}
}

// CreateIntentRequest represents a payment intent creation request
type CreateIntentRequest struct {
	InvoiceID uint `json:"invoice_id" binding:"required"`
}

// ConfirmRequest represents a payment confirmation request
type ConfirmRequest struct {
	IntentID string `json:"intent_id" binding:"required"`
}

// CreateIntent creates a gateway payment intent for an invoice
func (h *PaymentHandlers) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	result, err := h.paymentSvc.CreateIntent(c.Request.Context(), req.InvoiceID, userID.(uint))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvoiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrInvoiceAlreadyPaid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invoice already paid"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"intent_id":     result.IntentID,
			"client_secret": result.ClientSecret,
		},
	})
}

// Confirm reconciles a gateway intent with the invoice
func (h *PaymentHandlers) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.paymentSvc.Confirm(c.Request.Context(), req.IntentID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment intent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment confirmation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"status": status},
	})
}

// Status returns the gateway status for an intent
func (h *PaymentHandlers) Status(c *gin.Context) {
	intentID := c.Param("intentId")
	if intentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Intent ID is required"})
		return
	}

	status, err := h.paymentSvc.GetStatus(c.Request.Context(), intentID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment intent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get payment status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"status": status},
	})
}

// Webhook receives gateway events. The raw body is handed to the service
// untouched so the signature can be checked against exactly what was sent.
func (h *PaymentHandlers) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature header"})
		return
	}

	if err := h.paymentSvc.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		if errors.Is(err, domain.ErrWebhookSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook signature"})
			return
		}
		log.Printf("WEBHOOK_FAILED: error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
