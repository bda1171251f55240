package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yassirrachad97/Factura-sub000/domain"
	"github.com/yassirrachad97/Factura-sub000/internal/mocks"
)

func createInvoiceServiceForTest(t *testing.T) (domain.InvoiceService, *mocks.MockInvoiceRepository, *mocks.MockProviderRepository) {
	t.Helper()

	invoiceRepo := mocks.NewMockInvoiceRepository()
	providerRepo := mocks.NewMockProviderRepository()
	providerRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
		return &domain.Provider{ID: id, Name: "Lydec", CategoryID: 1, Active: true}, nil
	}

	return NewInvoiceService(invoiceRepo, providerRepo), invoiceRepo, providerRepo
}

func TestInvoiceServiceImpl_Generate(t *testing.T) {
	ctx := context.Background()
	dueDate := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	t.Run("successful generation persists a pending invoice", func(t *testing.T) {
		invoiceSvc, invoiceRepo, _ := createInvoiceServiceForTest(t)

		var persisted *domain.Invoice
		invoiceRepo.CreateFunc = func(ctx context.Context, invoice *domain.Invoice) error {
			invoice.ID = 10
			persisted = invoice
			return nil
		}

		invoice, err := invoiceSvc.Generate(ctx, 1, 2, 349.90, dueDate)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if persisted == nil {
			t.Fatal("invoice was not persisted")
		}
		if invoice.Status != domain.InvoiceStatusPending {
			t.Errorf("expected status pending, got %s", invoice.Status)
		}
		if invoice.IsPaid {
			t.Error("fresh invoice must not be paid")
		}
		if invoice.UserID != 1 || invoice.ProviderID != 2 {
			t.Errorf("unexpected ownership user=%d provider=%d", invoice.UserID, invoice.ProviderID)
		}
		if invoice.Amount != 349.90 {
			t.Errorf("expected amount 349.90, got %v", invoice.Amount)
		}
		if !invoice.DueDate.Equal(dueDate) {
			t.Errorf("expected due date %v, got %v", dueDate, invoice.DueDate)
		}
		if !strings.HasPrefix(invoice.ContractNumber, "FCT-") {
			t.Errorf("contract number %q should carry the FCT prefix", invoice.ContractNumber)
		}
	})

	t.Run("contract numbers are unique across invoices", func(t *testing.T) {
		invoiceSvc, _, _ := createInvoiceServiceForTest(t)

		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			invoice, err := invoiceSvc.Generate(ctx, 1, 2, 10.0, dueDate)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if seen[invoice.ContractNumber] {
				t.Fatalf("duplicate contract number %q", invoice.ContractNumber)
			}
			seen[invoice.ContractNumber] = true
		}
	})

	t.Run("zero provider id is rejected", func(t *testing.T) {
		invoiceSvc, invoiceRepo, _ := createInvoiceServiceForTest(t)
		invoiceRepo.CreateFunc = func(ctx context.Context, invoice *domain.Invoice) error {
			t.Error("nothing should be persisted for a missing provider")
			return nil
		}

		if _, err := invoiceSvc.Generate(ctx, 1, 0, 10.0, dueDate); !errors.Is(err, domain.ErrProviderNotFound) {
			t.Errorf("expected ErrProviderNotFound, got %v", err)
		}
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		invoiceSvc, _, providerRepo := createInvoiceServiceForTest(t)
		providerRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
			return nil, domain.ErrProviderNotFound
		}

		if _, err := invoiceSvc.Generate(ctx, 1, 99, 10.0, dueDate); !errors.Is(err, domain.ErrProviderNotFound) {
			t.Errorf("expected ErrProviderNotFound, got %v", err)
		}
	})

	t.Run("inactive provider is rejected", func(t *testing.T) {
		invoiceSvc, _, providerRepo := createInvoiceServiceForTest(t)
		providerRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
			return &domain.Provider{ID: id, Name: "Defunct", Active: false}, nil
		}

		if _, err := invoiceSvc.Generate(ctx, 1, 3, 10.0, dueDate); !errors.Is(err, domain.ErrProviderNotFound) {
			t.Errorf("expected ErrProviderNotFound, got %v", err)
		}
	})
}

func TestInvoiceServiceImpl_MarkPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("first transition succeeds", func(t *testing.T) {
		invoiceSvc, invoiceRepo, _ := createInvoiceServiceForTest(t)

		var markedID uint
		invoiceRepo.MarkPaidFunc = func(ctx context.Context, id uint) (bool, error) {
			markedID = id
			return true, nil
		}

		if err := invoiceSvc.MarkPaid(ctx, 10); err != nil {
			t.Fatalf("MarkPaid failed: %v", err)
		}
		if markedID != 10 {
			t.Errorf("expected invoice 10 marked, got %d", markedID)
		}
	})

	t.Run("already paid invoice is a no-op", func(t *testing.T) {
		invoiceSvc, invoiceRepo, _ := createInvoiceServiceForTest(t)
		invoiceRepo.MarkPaidFunc = func(ctx context.Context, id uint) (bool, error) {
			return false, nil
		}
		invoiceRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Invoice, error) {
			return &domain.Invoice{ID: id, Status: domain.InvoiceStatusPaid, IsPaid: true}, nil
		}

		if err := invoiceSvc.MarkPaid(ctx, 10); err != nil {
			t.Errorf("re-marking a paid invoice must be a no-op, got %v", err)
		}
	})

	t.Run("missing invoice is an error", func(t *testing.T) {
		invoiceSvc, invoiceRepo, _ := createInvoiceServiceForTest(t)
		invoiceRepo.MarkPaidFunc = func(ctx context.Context, id uint) (bool, error) {
			return false, nil
		}

		if err := invoiceSvc.MarkPaid(ctx, 99); !errors.Is(err, domain.ErrInvoiceNotFound) {
			t.Errorf("expected ErrInvoiceNotFound, got %v", err)
		}
	})
}
