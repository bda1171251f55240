package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yassirrachad97/Factura-sub000/domain"
	"github.com/yassirrachad97/Factura-sub000/internal/mocks"
)

func TestPaymentHandlers_CreateIntent(t *testing.T) {
	t.Run("authenticated request returns the client secret", func(t *testing.T) {
		paymentSvc := mocks.NewMockPaymentService()
		var gotInvoice, gotUser uint
		paymentSvc.CreateIntentFunc = func(ctx context.Context, invoiceID, userID uint) (*domain.IntentResult, error) {
			gotInvoice, gotUser = invoiceID, userID
			return &domain.IntentResult{IntentID: "pi_123", ClientSecret: "pi_123_secret"}, nil
		}
		h := NewPaymentHandlers(paymentSvc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payments/intent", strings.NewReader(`{"invoice_id":10}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uint(1))

		h.CreateIntent(c)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if gotInvoice != 10 || gotUser != 1 {
			t.Errorf("expected invoice=10 user=1, got invoice=%d user=%d", gotInvoice, gotUser)
		}
		data := decodeBody(t, w)["data"].(map[string]interface{})
		if data["client_secret"] != "pi_123_secret" {
			t.Errorf("missing client secret in %v", data)
		}
	})

	t.Run("already paid invoice maps to 400", func(t *testing.T) {
		paymentSvc := mocks.NewMockPaymentService()
		paymentSvc.CreateIntentFunc = func(ctx context.Context, invoiceID, userID uint) (*domain.IntentResult, error) {
			return nil, domain.ErrInvoiceAlreadyPaid
		}
		h := NewPaymentHandlers(paymentSvc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payments/intent", strings.NewReader(`{"invoice_id":10}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uint(1))

		h.CreateIntent(c)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestPaymentHandlers_Webhook(t *testing.T) {
	t.Run("missing signature header is rejected before any processing", func(t *testing.T) {
		paymentSvc := mocks.NewMockPaymentService()
		paymentSvc.HandleWebhookFunc = func(ctx context.Context, payload []byte, signature string) error {
			t.Error("the service must not run without a signature header")
			return nil
		}
		h := NewPaymentHandlers(paymentSvc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(`{}`))

		h.Webhook(c)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid signature maps to 400", func(t *testing.T) {
		paymentSvc := mocks.NewMockPaymentService()
		paymentSvc.HandleWebhookFunc = func(ctx context.Context, payload []byte, signature string) error {
			return domain.ErrWebhookSignature
		}
		h := NewPaymentHandlers(paymentSvc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(`{}`))
		c.Request.Header.Set("Stripe-Signature", "t=1,v1=bad")

		h.Webhook(c)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("verified event is acknowledged", func(t *testing.T) {
		paymentSvc := mocks.NewMockPaymentService()
		var gotPayload string
		var gotSignature string
		paymentSvc.HandleWebhookFunc = func(ctx context.Context, payload []byte, signature string) error {
			gotPayload, gotSignature = string(payload), signature
			return nil
		}
		h := NewPaymentHandlers(paymentSvc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(`{"type":"payment_intent.succeeded"}`))
		c.Request.Header.Set("Stripe-Signature", "t=1,v1=good")

		h.Webhook(c)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if gotPayload != `{"type":"payment_intent.succeeded"}` {
			t.Errorf("raw payload was altered: %q", gotPayload)
		}
		if gotSignature != "t=1,v1=good" {
			t.Errorf("signature header not forwarded: %q", gotSignature)
		}
	})
}

func TestPaymentHandlers_Status(t *testing.T) {
	paymentSvc := mocks.NewMockPaymentService()
	paymentSvc.GetStatusFunc = func(ctx context.Context, intentID string) (string, error) {
		if intentID != "pi_123" {
			return "", domain.ErrPaymentNotFound
		}
		return "processing", nil
	}
	h := NewPaymentHandlers(paymentSvc)

	t.Run("known intent", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payments/pi_123/status", nil)
		c.Params = gin.Params{{Key: "intentId", Value: "pi_123"}}

		h.Status(c)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		data := decodeBody(t, w)["data"].(map[string]interface{})
		if data["status"] != "processing" {
			t.Errorf("unexpected status %v", data["status"])
		}
	})

	t.Run("unknown intent", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payments/pi_ghost/status", nil)
		c.Params = gin.Params{{Key: "intentId", Value: "pi_ghost"}}

		h.Status(c)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})
}
