package mocks

import (
	"context"
	"time"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed:"+password
}

var _ domain.PasswordService = (*MockPasswordService)(nil)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateSessionTokenFunc func(userID uint, email, role string) (string, error)
	GenerateEmailTokenFunc   func(userID uint, email string) (string, error)
	ValidateFunc             func(token string) (*domain.TokenClaims, error)
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) GenerateSessionToken(userID uint, email, role string) (string, error) {
	if m.GenerateSessionTokenFunc != nil {
		return m.GenerateSessionTokenFunc(userID, email, role)
	}
	return "session-token", nil
}

func (m *MockTokenService) GenerateEmailToken(userID uint, email string) (string, error) {
	if m.GenerateEmailTokenFunc != nil {
		return m.GenerateEmailTokenFunc(userID, email)
	}
	return "email-token", nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return &domain.TokenClaims{
		UserID:    1,
		Email:     "user@example.com",
		Role:      domain.RoleUser,
		Purpose:   domain.TokenPurposeSession,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil
}

var _ domain.TokenService = (*MockTokenService)(nil)

// MockMailer implements domain.Mailer and records every delivery
type MockMailer struct {
	SendFunc func(to, subject, body string) error
	Sent     []MockMail
}

// MockMail captures the arguments of a Send call
type MockMail struct {
	To      string
	Subject string
	Body    string
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(to, subject, body string) error {
	m.Sent = append(m.Sent, MockMail{To: to, Subject: subject, Body: body})
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, body)
	}
	return nil
}

var _ domain.Mailer = (*MockMailer)(nil)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	GenerateFunc  func(ctx context.Context, email string) (*domain.OTPChallenge, error)
	VerifyFunc    func(ctx context.Context, email, code, deviceID string) (bool, error)
	CanResendFunc func(ctx context.Context, email string) (bool, int64, error)
}

func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Generate(ctx context.Context, email string) (*domain.OTPChallenge, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, email)
	}
	return &domain.OTPChallenge{Email: email, Code: "123456"}, nil
}

func (m *MockOTPService) Verify(ctx context.Context, email, code, deviceID string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code, deviceID)
	}
	return code == "123456", nil
}

func (m *MockOTPService) CanResend(ctx context.Context, email string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, email)
	}
	return true, 0, nil
}

var _ domain.OTPService = (*MockOTPService)(nil)

// MockDeviceTrustService implements domain.DeviceTrustService for testing
type MockDeviceTrustService struct {
	IsTrustedFunc       func(user *domain.User, identifier string) bool
	RegisterTrustedFunc func(ctx context.Context, userID uint, identifier string) error
}

func NewMockDeviceTrustService() *MockDeviceTrustService {
	return &MockDeviceTrustService{}
}

func (m *MockDeviceTrustService) IsTrusted(user *domain.User, identifier string) bool {
	if m.IsTrustedFunc != nil {
		return m.IsTrustedFunc(user, identifier)
	}
	return user.TrustedDevice(identifier)
}

func (m *MockDeviceTrustService) RegisterTrusted(ctx context.Context, userID uint, identifier string) error {
	if m.RegisterTrustedFunc != nil {
		return m.RegisterTrustedFunc(ctx, userID, identifier)
	}
	return nil
}

var _ domain.DeviceTrustService = (*MockDeviceTrustService)(nil)

// MockPaymentGateway implements domain.PaymentGateway for testing
type MockPaymentGateway struct {
	CreateIntentFunc    func(ctx context.Context, amount int64, currency string, metadata map[string]string) (*domain.IntentResult, error)
	GetIntentStatusFunc func(ctx context.Context, intentID string) (string, error)
	ParseWebhookFunc    func(payload []byte, signature string) (*domain.WebhookEvent, error)
}

func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*domain.IntentResult, error) {
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, amount, currency, metadata)
	}
	return &domain.IntentResult{IntentID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func (m *MockPaymentGateway) GetIntentStatus(ctx context.Context, intentID string) (string, error) {
	if m.GetIntentStatusFunc != nil {
		return m.GetIntentStatusFunc(ctx, intentID)
	}
	return "succeeded", nil
}

func (m *MockPaymentGateway) ParseWebhook(payload []byte, signature string) (*domain.WebhookEvent, error) {
	if m.ParseWebhookFunc != nil {
		return m.ParseWebhookFunc(payload, signature)
	}
	return &domain.WebhookEvent{Type: "payment_intent.succeeded", IntentID: "pi_test"}, nil
}

var _ domain.PaymentGateway = (*MockPaymentGateway)(nil)

// MockInvoiceService implements domain.InvoiceService for testing
type MockInvoiceService struct {
	GenerateFunc    func(ctx context.Context, userID, providerID uint, amount float64, dueDate time.Time) (*domain.Invoice, error)
	GetByIDFunc     func(ctx context.Context, id uint) (*domain.Invoice, error)
	ListForUserFunc func(ctx context.Context, userID uint) ([]domain.Invoice, error)
	MarkPaidFunc    func(ctx context.Context, id uint) error
}

func NewMockInvoiceService() *MockInvoiceService {
	return &MockInvoiceService{}
}

func (m *MockInvoiceService) Generate(ctx context.Context, userID, providerID uint, amount float64, dueDate time.Time) (*domain.Invoice, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, userID, providerID, amount, dueDate)
	}
	return &domain.Invoice{UserID: userID, ProviderID: providerID, Amount: amount, DueDate: dueDate, Status: domain.InvoiceStatusPending}, nil
}

func (m *MockInvoiceService) GetByID(ctx context.Context, id uint) (*domain.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrInvoiceNotFound
}

func (m *MockInvoiceService) ListForUser(ctx context.Context, userID uint) ([]domain.Invoice, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockInvoiceService) MarkPaid(ctx context.Context, id uint) error {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, id)
	}
	return nil
}

var _ domain.InvoiceService = (*MockInvoiceService)(nil)

// MockCasbinEnforcer implements domain.CasbinEnforcer for testing
type MockCasbinEnforcer struct {
	AddPolicyFunc    func(params ...interface{}) (bool, error)
	RemovePolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc      func(rvals ...interface{}) (bool, error)
	GetPolicyFunc    func() ([][]string, error)
	SavePolicyFunc   func() error
}

func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{}
}

func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	return true, nil
}

func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	return true, nil
}

func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	return true, nil
}

func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	return nil, nil
}

func (m *MockCasbinEnforcer) SavePolicy() error {
	if m.SavePolicyFunc != nil {
		return m.SavePolicyFunc()
	}
	return nil
}

var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)
