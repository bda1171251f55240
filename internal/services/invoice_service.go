package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// InvoiceServiceImpl implements domain.InvoiceService. Invoices are written
// as pending at generation time so contract-number uniqueness can be
// enforced by the database, and flipped to paid exactly once.
type InvoiceServiceImpl struct {
	invoiceRepo  domain.InvoiceRepository
	providerRepo domain.ProviderRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo domain.InvoiceRepository, providerRepo domain.ProviderRepository) domain.InvoiceService {
	return &InvoiceServiceImpl{
		invoiceRepo:  invoiceRepo,
		providerRepo: providerRepo,
	}
}

// newContractNumber synthesizes a globally unique, human-facing contract
// number. Millisecond timestamp plus a UUID fragment keeps collisions out
// without coordination.
func newContractNumber() string {
	frag := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("FCT-%d-%s", time.Now().UnixMilli(), frag)
}

// Generate implements domain.InvoiceService
func (s *InvoiceServiceImpl) Generate(ctx context.Context, userID, providerID uint, amount float64, dueDate time.Time) (*domain.Invoice, error) {
	if providerID == 0 {
		return nil, domain.ErrProviderNotFound
	}

	provider, err := s.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !provider.Active {
		return nil, domain.ErrProviderNotFound
	}

	invoice := &domain.Invoice{
		ContractNumber: newContractNumber(),
		UserID:         userID,
		ProviderID:     providerID,
		Amount:         amount,
		DueDate:        dueDate,
		Status:         domain.InvoiceStatusPending,
		IsPaid:         false,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to persist invoice: %w", err)
	}

	return invoice, nil
}

// GetByID implements domain.InvoiceService
func (s *InvoiceServiceImpl) GetByID(ctx context.Context, id uint) (*domain.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// ListForUser implements domain.InvoiceService
func (s *InvoiceServiceImpl) ListForUser(ctx context.Context, userID uint) ([]domain.Invoice, error) {
	return s.invoiceRepo.ListByUser(ctx, userID)
}

// MarkPaid implements domain.InvoiceService. Marking an already-paid invoice
// is a no-op, never an error: the paid flag only moves false to true.
func (s *InvoiceServiceImpl) MarkPaid(ctx context.Context, id uint) error {
	updated, err := s.invoiceRepo.MarkPaid(ctx, id)
	if err != nil {
		return err
	}
	if !updated {
		// Either already paid (fine) or missing (not)
		if _, err := s.invoiceRepo.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
