package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// InvoiceRepositoryImpl implements domain.InvoiceRepository using GORM
type InvoiceRepositoryImpl struct {
	db *gorm.DB
}

// DBInvoice represents the database model for Invoice
type DBInvoice struct {
	ID             uint      `gorm:"primaryKey"`
	ContractNumber string    `gorm:"uniqueIndex;size:64"`
	UserID         uint      `gorm:"index"`
	ProviderID     uint      `gorm:"index"`
	Amount         float64
	DueDate        time.Time
	Status         string    `gorm:"index;size:16"`
	IsPaid         bool      `gorm:"index"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (DBInvoice) TableName() string {
	return "invoices"
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domain.InvoiceRepository {
	return &InvoiceRepositoryImpl{db: db}
}

// Create implements domain.InvoiceRepository
func (r *InvoiceRepositoryImpl) Create(ctx context.Context, invoice *domain.Invoice) error {
	dbInv := domainToDBInvoice(invoice)
	if err := r.db.WithContext(ctx).Create(dbInv).Error; err != nil {
		return err
	}
	invoice.ID = dbInv.ID
	invoice.CreatedAt = dbInv.CreatedAt
	return nil
}

// FindByID implements domain.InvoiceRepository
func (r *InvoiceRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Invoice, error) {
	var dbInv DBInvoice
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbInv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return dbToDomainInvoice(&dbInv), nil
}

// ListByUser implements domain.InvoiceRepository
func (r *InvoiceRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]domain.Invoice, error) {
	var dbInvs []DBInvoice
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&dbInvs).Error; err != nil {
		return nil, err
	}
	invoices := make([]domain.Invoice, 0, len(dbInvs))
	for i := range dbInvs {
		invoices = append(invoices, *dbToDomainInvoice(&dbInvs[i]))
	}
	return invoices, nil
}

// MarkPaid implements domain.InvoiceRepository. The conditional update is
// the serialization point for concurrent payment confirmations: only one of
// them can observe is_paid = false.
func (r *InvoiceRepositoryImpl) MarkPaid(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&DBInvoice{}).
		Where("id = ? AND is_paid = ?", id, false).
		Updates(map[string]interface{}{"is_paid": true, "status": domain.InvoiceStatusPaid})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func domainToDBInvoice(inv *domain.Invoice) *DBInvoice {
	return &DBInvoice{
		ID:             inv.ID,
		ContractNumber: inv.ContractNumber,
		UserID:         inv.UserID,
		ProviderID:     inv.ProviderID,
		Amount:         inv.Amount,
		DueDate:        inv.DueDate,
		Status:         inv.Status,
		IsPaid:         inv.IsPaid,
	}
}

func dbToDomainInvoice(dbInv *DBInvoice) *domain.Invoice {
	return &domain.Invoice{
		ID:             dbInv.ID,
		ContractNumber: dbInv.ContractNumber,
		UserID:         dbInv.UserID,
		ProviderID:     dbInv.ProviderID,
		Amount:         dbInv.Amount,
		DueDate:        dbInv.DueDate,
		Status:         dbInv.Status,
		IsPaid:         dbInv.IsPaid,
		CreatedAt:      dbInv.CreatedAt,
		UpdatedAt:      dbInv.UpdatedAt,
	}
}
