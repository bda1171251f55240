package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

const intentSucceeded = "succeeded"

// PaymentServiceImpl implements domain.PaymentService. It keeps a local
// invoice-to-intent mapping and reconciles gateway confirmations with the
// invoice lifecycle, flipping paid state at most once.
type PaymentServiceImpl struct {
	gateway     domain.PaymentGateway
	paymentRepo domain.PaymentRepository
	invoiceRepo domain.InvoiceRepository
	userRepo    domain.UserRepository
	invoiceSvc  domain.InvoiceService
	currency    string
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	gateway domain.PaymentGateway,
	paymentRepo domain.PaymentRepository,
	invoiceRepo domain.InvoiceRepository,
	userRepo domain.UserRepository,
	invoiceSvc domain.InvoiceService,
	currency string,
) domain.PaymentService {
	return &PaymentServiceImpl{
		gateway:     gateway,
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		invoiceSvc:  invoiceSvc,
		currency:    currency,
	}
}

// amountMinor converts a business amount to the gateway's minor unit
func amountMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateIntent implements domain.PaymentService
func (s *PaymentServiceImpl) CreateIntent(ctx context.Context, invoiceID, userID uint) (*domain.IntentResult, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if invoice.IsPaid {
		return nil, domain.ErrInvoiceAlreadyPaid
	}

	metadata := map[string]string{
		"invoice_id":      fmt.Sprintf("%d", invoice.ID),
		"contract_number": invoice.ContractNumber,
		"user_email":      user.Email,
	}

	result, err := s.gateway.CreateIntent(ctx, amountMinor(invoice.Amount), s.currency, metadata)
	if err != nil {
		log.Printf("INTENT_CREATE_FAILED: invoice_id=%d user_id=%d error=%v", invoiceID, userID, err)
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	payment := &domain.Payment{
		InvoiceID: invoice.ID,
		UserID:    user.ID,
		IntentID:  result.IntentID,
		Status:    "created",
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment intent: %w", err)
	}

	return result, nil
}

// Confirm implements domain.PaymentService. Reconciliation is idempotent:
// confirming an intent whose invoice is already paid is a no-op.
func (s *PaymentServiceImpl) Confirm(ctx context.Context, intentID string) (string, error) {
	payment, err := s.paymentRepo.FindByIntentID(ctx, intentID)
	if err != nil {
		return "", err
	}

	status, err := s.gateway.GetIntentStatus(ctx, intentID)
	if err != nil {
		log.Printf("INTENT_STATUS_FAILED: intent_id=%s error=%v", intentID, err)
		return "", fmt.Errorf("failed to check intent status: %w", err)
	}

	if err := s.paymentRepo.UpdateStatus(ctx, intentID, status); err != nil {
		return "", err
	}

	if status == intentSucceeded {
		if err := s.invoiceSvc.MarkPaid(ctx, payment.InvoiceID); err != nil {
			return "", fmt.Errorf("failed to mark invoice paid: %w", err)
		}
	}

	return status, nil
}

// GetStatus implements domain.PaymentService. Pure query, no state mutation.
func (s *PaymentServiceImpl) GetStatus(ctx context.Context, intentID string) (string, error) {
	if _, err := s.paymentRepo.FindByIntentID(ctx, intentID); err != nil {
		return "", err
	}
	return s.gateway.GetIntentStatus(ctx, intentID)
}

// HandleWebhook implements domain.PaymentService. Nothing is mutated until
// the gateway signature checks out against the raw payload.
func (s *PaymentServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}

	if event.Type != "payment_intent.succeeded" {
		return nil
	}

	if _, err := s.Confirm(ctx, event.IntentID); err != nil {
		// Events for intents we never created are logged, not failed, so the
		// gateway does not redeliver them forever
		if errors.Is(err, domain.ErrPaymentNotFound) {
			log.Printf("WEBHOOK_UNKNOWN_INTENT: intent_id=%s", event.IntentID)
			return nil
		}
		return err
	}

	return nil
}
