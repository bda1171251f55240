package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// InvoiceHandlers handles invoice HTTP requests
type InvoiceHandlers struct {
	invoiceSvc domain.InvoiceService
	paymentSvc domain.PaymentService
}

// NewInvoiceHandlers creates new invoice handlers
func NewInvoiceHandlers(invoiceSvc domain.InvoiceService, paymentSvc domain.PaymentService) *InvoiceHandlers {
	return &InvoiceHandlers{
		invoiceSvc: invoiceSvc,
		paymentSvc: paymentSvc,
	}
}

// GenerateInvoiceRequest represents invoice generation request
type GenerateInvoiceRequest struct {
	ProviderID uint    `json:"provider_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	DueDate    string  `json:"due_date" binding:"required"`
}

func invoiceJSON(inv *domain.Invoice) gin.H {
	return gin.H{
		"id":              inv.ID,
		"contract_number": inv.ContractNumber,
		"provider_id":     inv.ProviderID,
		"amount":          inv.Amount,
		"due_date":        inv.DueDate.Format("2006-01-02"),
		"status":          inv.Status,
		"is_paid":         inv.IsPaid,
		"created_at":      inv.CreatedAt,
	}
}

// Generate handles invoice generation against a provider
func (h *InvoiceHandlers) Generate(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date, expected YYYY-MM-DD"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	invoice, err := h.invoiceSvc.Generate(c.Request.Context(), userID.(uint), req.ProviderID, req.Amount, dueDate)
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": invoiceJSON(invoice)})
}

// List returns the authenticated user's invoices
func (h *InvoiceHandlers) List(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	invoices, err := h.invoiceSvc.ListForUser(c.Request.Context(), userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	out := make([]gin.H, 0, len(invoices))
	for i := range invoices {
		out = append(out, invoiceJSON(&invoices[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

// GetByID returns a single invoice
func (h *InvoiceHandlers) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	invoice, err := h.invoiceSvc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get invoice"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoiceJSON(invoice)})
}

// Pay creates a payment intent for the invoice in the path
func (h *InvoiceHandlers) Pay(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	result, err := h.paymentSvc.CreateIntent(c.Request.Context(), uint(id), userID.(uint))
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
