package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yassirrachad97/Factura-sub000/domain"
	"github.com/yassirrachad97/Factura-sub000/internal/mocks"
)

type paymentServiceFixture struct {
	svc         domain.PaymentService
	gateway     *mocks.MockPaymentGateway
	paymentRepo *mocks.MockPaymentRepository
	invoiceRepo *mocks.MockInvoiceRepository
	userRepo    *mocks.MockUserRepository
	invoiceSvc  *mocks.MockInvoiceService
}

func createPaymentServiceForTest(t *testing.T) *paymentServiceFixture {
	t.Helper()

	f := &paymentServiceFixture{
		gateway:     mocks.NewMockPaymentGateway(),
		paymentRepo: mocks.NewMockPaymentRepository(),
		invoiceRepo: mocks.NewMockInvoiceRepository(),
		userRepo:    mocks.NewMockUserRepository(),
		invoiceSvc:  mocks.NewMockInvoiceService(),
	}

	f.invoiceRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Invoice, error) {
		return &domain.Invoice{
			ID:             id,
			ContractNumber: "FCT-1756600000000-ABCDEF12",
			UserID:         1,
			ProviderID:     2,
			Amount:         349.90,
			Status:         domain.InvoiceStatusPending,
		}, nil
	}
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: id, Email: "user@example.com", Role: domain.RoleUser}, nil
	}
	f.paymentRepo.FindByIntentIDFunc = func(ctx context.Context, intentID string) (*domain.Payment, error) {
		return &domain.Payment{ID: 1, InvoiceID: 10, UserID: 1, IntentID: intentID, Status: "created"}, nil
	}

	f.svc = NewPaymentService(f.gateway, f.paymentRepo, f.invoiceRepo, f.userRepo, f.invoiceSvc, "mad")
	return f
}

func TestPaymentServiceImpl_CreateIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("intent carries the invoice amount in minor units", func(t *testing.T) {
		f := createPaymentServiceForTest(t)

		var gotAmount int64
		var gotCurrency string
		var gotMetadata map[string]string
		f.gateway.CreateIntentFunc = func(ctx context.Context, amount int64, currency string, metadata map[string]string) (*domain.IntentResult, error) {
			gotAmount, gotCurrency, gotMetadata = amount, currency, metadata
			return &domain.IntentResult{IntentID: "pi_123", ClientSecret: "pi_123_secret"}, nil
		}

		var recorded *domain.Payment
		f.paymentRepo.CreateFunc = func(ctx context.Context, payment *domain.Payment) error {
			recorded = payment
			return nil
		}

		result, err := f.svc.CreateIntent(ctx, 10, 1)
		if err != nil {
			t.Fatalf("CreateIntent failed: %v", err)
		}
		if gotAmount != 34990 {
			t.Errorf("expected amount 34990 minor units, got %d", gotAmount)
		}
		if gotCurrency != "mad" {
			t.Errorf("expected currency mad, got %s", gotCurrency)
		}
		if gotMetadata["contract_number"] != "FCT-1756600000000-ABCDEF12" {
			t.Errorf("metadata missing contract number: %v", gotMetadata)
		}
		if gotMetadata["user_email"] != "user@example.com" {
			t.Errorf("metadata missing user email: %v", gotMetadata)
		}
		if result.ClientSecret != "pi_123_secret" {
			t.Errorf("unexpected client secret %s", result.ClientSecret)
		}
		if recorded == nil || recorded.IntentID != "pi_123" || recorded.InvoiceID != 10 {
			t.Errorf("payment record not persisted correctly: %+v", recorded)
		}
		if recorded.Status != "created" {
			t.Errorf("expected initial status created, got %s", recorded.Status)
		}
	})

	t.Run("paid invoice cannot get a new intent", func(t *testing.T) {
		f := createPaymentServiceForTest(t)
		f.invoiceRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Invoice, error) {
			return &domain.Invoice{ID: id, Status: domain.InvoiceStatusPaid, IsPaid: true}, nil
		}
		f.gateway.CreateIntentFunc = func(ctx context.Context, amount int64, currency string, metadata map[string]string) (*domain.IntentResult, error) {
			t.Error("no gateway call may happen for a paid invoice")
			return nil, nil
		}

		if _, err := f.svc.CreateIntent(ctx, 10, 1); !errors.Is(err, domain.ErrInvoiceAlreadyPaid) {
			t.Errorf("expected ErrInvoiceAlreadyPaid, got %v", err)
		}
	})

	t.Run("missing invoice is an error", func(t *testing.T) {
		f := createPaymentServiceForTest(t)
		f.invoiceRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Invoice, error) {
			return nil, domain.ErrInvoiceNotFound
		}

		if _, err := f.svc.CreateIntent(ctx, 99, 1); !errors.Is(err, domain.ErrInvoiceNotFound) {
			t.Errorf("expected ErrInvoiceNotFound, got %v", err)
		}
	})
}

func TestPaymentServiceImpl_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeded intent marks the invoice paid", func(t *testing.T) {
		f := createPaymentServiceForTest(t)

		var statusUpdated string
		f.paymentRepo.UpdateStatusFunc = func(ctx context.Context, intentID, status string) error {
			statusUpdated = status
			return nil
		}

		var paidInvoice uint
		f.invoiceSvc.MarkPaidFunc = func(ctx context.Context, id uint) error {
			paidInvoice = id
			return nil
		}

		status, err := f.svc.Confirm(ctx, "pi_123")
		if err != nil {
			t.Fatalf("Confirm failed: %v", err)
		}
		if status != "succeeded" {
			t.Errorf("expected status succeeded, got %s", status)
		}
		if statusUpdated != "succeeded" {
			t.Errorf("payment status not synced, got %s", statusUpdated)
		}
		if paidInvoice != 10 {
			t.Errorf("expected invoice 10 marked paid, got %d", paidInvoice)
		}
	})

	t.Run("non-terminal status leaves the invoice untouched", func(t *testing.T) {
		f := createPaymentServiceForTest(t)
		f.gateway.GetIntentStatusFunc = func(ctx context.Context, intentID string) (string, error) {
			return "requires_payment_method", nil
		}
		f.invoiceSvc.MarkPaidFunc = func(ctx context.Context, id uint) error {
			t.Error("invoice must not be marked paid for a non-succeeded intent")
			return nil
		}

		status, err := f.svc.Confirm(ctx, "pi_123")
		if err != nil {
			t.Fatalf("Confirm failed: %v", err)
		}
		if status != "requires_payment_method" {
			t.Errorf("unexpected status %s", status)
		}
	})

	t.Run("unknown intent is an error", func(t *testing.T) {
		f := createPaymentServiceForTest(t)
		f.paymentRepo.FindByIntentIDFunc = func(ctx context.Context, intentID string) (*domain.Payment, error) {
			return nil, domain.ErrPaymentNotFound
		}

		if _, err := f.svc.Confirm(ctx, "pi_ghost"); !errors.Is(err, domain.ErrPaymentNotFound) {
			t.Errorf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}

func TestPaymentServiceImpl_GetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("status is a pure query", func(t *testing.T) {
		f := createPaymentServiceForTest(t)
		f.paymentRepo.UpdateStatusFunc = func(ctx context.Context, intentID, status string) error {
			t.Error("GetStatus must not mutate the payment record")
			return nil
		}
		f.invoiceSvc.MarkPaidFunc = func(ctx context.Context, id uint) error {
			t.Error("GetStatus must not mutate the invoice")
			return nil
		}

		status, err := f.svc.GetStatus(ctx, "pi_123")
		if err != nil {
			t.Fatalf("GetStatus failed: %v", err)
		}
		if status != "succeeded" {
			t.Errorf("unexpected status %s", status)
		}
	})

	t.Run("unknown intent is an error", func(t *testing.T) {
		f := createPaymentServiceForTest(t)
		f.paymentRepo.FindByIntentIDFunc = func(ctx context.Context, intentID string) (*domain.Payment, error) {
			return nil, domain.ErrPaymentNotFound
		}

		if _, err := f.svc.GetStatus(ctx, "pi_ghost"); !errors.Is(err, domain.ErrPaymentNotFound) {
			t.Errorf("expected ErrPaymentNotFound, got %v", err)
		}
	})
}

func TestPaymentServiceImpl_HandleWebhook(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"type":"payment_intent.succeeded"}`)

	t.Run("bad signature rejects before any mutation", func(t *testing.T) {
		f := createPaymentServiceForTest(t)
		f.gateway.ParseWebhookFunc = func(payload []byte, signature string) (*domain.WebhookEvent, error) {
			return nil, domain.ErrWebhookSignature
		}
		f.paymentRepo.UpdateStatusFunc = func(ctx context.Context, intentID, status string) error {
			t.Error("nothing may be mutated before the signature is verified")
			return nil
		}
		f.invoiceSvc.MarkPaidFunc = func(ctx context.Context, id uint) error {
			t.Error("nothing may be mutated before the signature is verified")
			return nil
		}

		if err := f.svc.HandleWebhook(ctx, payload, "bad-sig"); !errors.Is(err, domain.ErrWebhookSignature) {
			t.Errorf("expected ErrWebhookSignature, got %v", err)
		}
	})

	t.Run("succeeded event marks the invoice paid", func(t *testing.T) {
		f := createPaymentServiceForTest(t)

		var paidInvoice uint
		f.invoiceSvc.MarkPaidFunc = func(ctx context.Context, id uint) error {
			paidInvoice = id
			return nil
		}

		if err := f.svc.HandleWebhook(ctx, payload, "good-sig"); err != nil {
			t.Fatalf("HandleWebhook failed: %v", err)
		}
		if paidInvoice != 10 {
			t.Errorf("expected invoice 10 marked paid, got %d", paidInvoice)
		}
	})

	t.Run("uninteresting event types are ignored", func(t *testing.T) {
		f := createPaymentServiceForTest(t)
		f.gateway.ParseWebhookFunc = func(payload []byte, signature string) (*domain.WebhookEvent, error) {
			return &domain.WebhookEvent{Type: "payment_intent.created", IntentID: "pi_123"}, nil
		}
		f.paymentRepo.UpdateStatusFunc = func(ctx context.Context, intentID, status string) error {
			t.Error("non-succeeded events must not touch the payment record")
			return nil
		}

		if err := f.svc.HandleWebhook(ctx, payload, "good-sig"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("event for an unknown intent is swallowed", func(t *testing.T) {
		f := createPaymentServiceForTest(t)
		f.paymentRepo.FindByIntentIDFunc = func(ctx context.Context, intentID string) (*domain.Payment, error) {
			return nil, domain.ErrPaymentNotFound
		}

		// Returning an error here would make the gateway redeliver forever
		if err := f.svc.HandleWebhook(ctx, payload, "good-sig"); err != nil {
			t.Errorf("unknown intents must be logged and swallowed, got %v", err)
		}
	})
}
