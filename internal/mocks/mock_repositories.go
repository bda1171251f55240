package mocks

import (
	"context"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// MockProviderRepository implements domain.ProviderRepository for testing
type MockProviderRepository struct {
	CreateFunc   func(ctx context.Context, provider *domain.Provider) error
	UpdateFunc   func(ctx context.Context, provider *domain.Provider) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Provider, error)
	ListFunc     func(ctx context.Context, categoryID uint) ([]domain.Provider, error)
}

func NewMockProviderRepository() *MockProviderRepository {
	return &MockProviderRepository{}
}

func (m *MockProviderRepository) Create(ctx context.Context, provider *domain.Provider) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, provider)
	}
	return nil
}

func (m *MockProviderRepository) Update(ctx context.Context, provider *domain.Provider) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, provider)
	}
	return nil
}

func (m *MockProviderRepository) FindByID(ctx context.Context, id uint) (*domain.Provider, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrProviderNotFound
}

func (m *MockProviderRepository) List(ctx context.Context, categoryID uint) ([]domain.Provider, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, categoryID)
	}
	return nil, nil
}

var _ domain.ProviderRepository = (*MockProviderRepository)(nil)

// MockCategoryRepository implements domain.CategoryRepository for testing
type MockCategoryRepository struct {
	CreateFunc   func(ctx context.Context, category *domain.Category) error
	UpdateFunc   func(ctx context.Context, category *domain.Category) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Category, error)
	ListFunc     func(ctx context.Context) ([]domain.Category, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	return nil
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

var _ domain.CategoryRepository = (*MockCategoryRepository)(nil)

// MockInvoiceRepository implements domain.InvoiceRepository for testing
type MockInvoiceRepository struct {
	CreateFunc     func(ctx context.Context, invoice *domain.Invoice) error
	FindByIDFunc   func(ctx context.Context, id uint) (*domain.Invoice, error)
	ListByUserFunc func(ctx context.Context, userID uint) ([]domain.Invoice, error)
	MarkPaidFunc   func(ctx context.Context, id uint) (bool, error)
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{}
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, invoice)
	}
	return nil
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uint) (*domain.Invoice, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrInvoiceNotFound
}

func (m *MockInvoiceRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Invoice, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockInvoiceRepository) MarkPaid(ctx context.Context, id uint) (bool, error) {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, id)
	}
	return true, nil
}

var _ domain.InvoiceRepository = (*MockInvoiceRepository)(nil)

// MockPaymentRepository implements domain.PaymentRepository for testing
type MockPaymentRepository struct {
	CreateFunc         func(ctx context.Context, payment *domain.Payment) error
	FindByIntentIDFunc func(ctx context.Context, intentID string) (*domain.Payment, error)
	UpdateStatusFunc   func(ctx context.Context, intentID, status string) error
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payment)
	}
	return nil
}

func (m *MockPaymentRepository) FindByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	if m.FindByIntentIDFunc != nil {
		return m.FindByIntentIDFunc(ctx, intentID)
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, intentID, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, intentID, status)
	}
	return nil
}

var _ domain.PaymentRepository = (*MockPaymentRepository)(nil)
