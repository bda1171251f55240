package mocks

import (
	"context"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, email, username, phone, password string) (*domain.User, error)
	VerifyEmailFunc    func(ctx context.Context, token string) error
	LoginFunc          func(ctx context.Context, email, password, deviceID string) (*domain.LoginResult, error)
	ValidateTokenFunc  func(token string) (*domain.TokenClaims, error)
	ResetPasswordFunc  func(ctx context.Context, email, code, newPassword string) error
	ChangePasswordFunc func(ctx context.Context, userID uint, oldPassword, newPassword string) error
	GetUserProfileFunc func(ctx context.Context, userID uint) (*domain.User, error)
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, email, username, phone, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, username, phone, password)
	}
	return &domain.User{ID: 1, Email: email, Username: username, Phone: phone, Role: domain.RoleUser}, nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password, deviceID string) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, deviceID)
	}
	return &domain.LoginResult{
		Session: &domain.SessionIssued{
			Token:     "session-token",
			ExpiresIn: 900,
			User:      &domain.User{ID: 1, Email: email, Role: domain.RoleUser},
		},
	}, nil
}

func (m *MockAuthService) ValidateToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(token)
	}
	return &domain.TokenClaims{UserID: 1, Email: "user@example.com", Role: domain.RoleUser, Purpose: domain.TokenPurposeSession}, nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, code, newPassword)
	}
	return nil
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, oldPassword, newPassword)
	}
	return nil
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return &domain.User{ID: userID, Email: "user@example.com", Role: domain.RoleUser}, nil
}

var _ domain.AuthService = (*MockAuthService)(nil)

// MockPaymentService implements domain.PaymentService for testing
type MockPaymentService struct {
	CreateIntentFunc  func(ctx context.Context, invoiceID, userID uint) (*domain.IntentResult, error)
	ConfirmFunc       func(ctx context.Context, intentID string) (string, error)
	GetStatusFunc     func(ctx context.Context, intentID string) (string, error)
	HandleWebhookFunc func(ctx context.Context, payload []byte, signature string) error
}

func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{}
}

func (m *MockPaymentService) CreateIntent(ctx context.Context, invoiceID, userID uint) (*domain.IntentResult, error) {
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, invoiceID, userID)
	}
	return &domain.IntentResult{IntentID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func (m *MockPaymentService) Confirm(ctx context.Context, intentID string) (string, error) {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, intentID)
	}
	return "succeeded", nil
}

func (m *MockPaymentService) GetStatus(ctx context.Context, intentID string) (string, error) {
	if m.GetStatusFunc != nil {
		return m.GetStatusFunc(ctx, intentID)
	}
	return "succeeded", nil
}

func (m *MockPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if m.HandleWebhookFunc != nil {
		return m.HandleWebhookFunc(ctx, payload, signature)
	}
	return nil
}

var _ domain.PaymentService = (*MockPaymentService)(nil)
