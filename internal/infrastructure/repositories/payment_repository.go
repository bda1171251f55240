package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// PaymentRepositoryImpl implements domain.PaymentRepository using GORM
type PaymentRepositoryImpl struct {
	db *gorm.DB
}

// DBPayment maps a gateway intent id to an invoice for reconciliation
type DBPayment struct {
	ID        uint   `gorm:"primaryKey"`
	InvoiceID uint   `gorm:"index"`
	UserID    uint   `gorm:"index"`
	IntentID  string `gorm:"uniqueIndex;size:128"`
	Status    string `gorm:"index;size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBPayment) TableName() string {
	return "payments"
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domain.PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

// Create implements domain.PaymentRepository
func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *domain.Payment) error {
	dbPay := &DBPayment{
		InvoiceID: payment.InvoiceID,
		UserID:    payment.UserID,
		IntentID:  payment.IntentID,
		Status:    payment.Status,
	}
	if err := r.db.WithContext(ctx).Create(dbPay).Error; err != nil {
		return err
	}
	payment.ID = dbPay.ID
	return nil
}

// FindByIntentID implements domain.PaymentRepository
func (r *PaymentRepositoryImpl) FindByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	var dbPay DBPayment
	err := r.db.WithContext(ctx).Where("intent_id = ?", intentID).First(&dbPay).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &domain.Payment{
		ID:        dbPay.ID,
		InvoiceID: dbPay.InvoiceID,
		UserID:    dbPay.UserID,
		IntentID:  dbPay.IntentID,
		Status:    dbPay.Status,
		CreatedAt: dbPay.CreatedAt,
		UpdatedAt: dbPay.UpdatedAt,
	}, nil
}

// UpdateStatus implements domain.PaymentRepository
func (r *PaymentRepositoryImpl) UpdateStatus(ctx context.Context, intentID, status string) error {
	res := r.db.WithContext(ctx).Model(&DBPayment{}).Where("intent_id = ?", intentID).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}
