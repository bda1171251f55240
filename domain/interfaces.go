package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations. Reads preload the
// user's device list.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID uint, hash string) error
	UpdateRole(ctx context.Context, userID uint, role string) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	// AddTrustedDevice inserts the identifier as a trusted device, or flips
	// an existing untrusted entry. Never creates a duplicate identifier.
	AddTrustedDevice(ctx context.Context, userID uint, identifier string) error
}

// ProviderRepository defines provider data access operations
type ProviderRepository interface {
	Create(ctx context.Context, provider *Provider) error
	Update(ctx context.Context, provider *Provider) error
	FindByID(ctx context.Context, id uint) (*Provider, error)
	List(ctx context.Context, categoryID uint) ([]Provider, error)
}

// CategoryRepository defines category data access operations
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	List(ctx context.Context) ([]Category, error)
}

// InvoiceRepository defines invoice data access operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uint) (*Invoice, error)
	ListByUser(ctx context.Context, userID uint) ([]Invoice, error)
	// MarkPaid flips is_paid with a conditional update and reports whether a
	// row actually transitioned. False means absent or already paid.
	MarkPaid(ctx context.Context, id uint) (bool, error)
}

// PaymentRepository maps gateway intents to invoices
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByIntentID(ctx context.Context, intentID string) (*Payment, error)
	UpdateStatus(ctx context.Context, intentID, status string) error
}

// AuthService defines the login orchestration and account lifecycle
type AuthService interface {
	Register(ctx context.Context, email, username, phone, password string) (*User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password, deviceID string) (*LoginResult, error)
	ValidateToken(token string) (*TokenClaims, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// OTPService defines OTP operations
type OTPService interface {
	Generate(ctx context.Context, email string) (*OTPChallenge, error)
	Verify(ctx context.Context, email, code, deviceID string) (bool, error)
	CanResend(ctx context.Context, email string) (bool, int64, error)
}

// DeviceTrustService decides whether a device skips the OTP challenge
type DeviceTrustService interface {
	IsTrusted(user *User, identifier string) bool
	RegisterTrusted(ctx context.Context, userID uint, identifier string) error
}

// InvoiceService defines the invoice lifecycle
type InvoiceService interface {
	Generate(ctx context.Context, userID, providerID uint, amount float64, dueDate time.Time) (*Invoice, error)
	GetByID(ctx context.Context, id uint) (*Invoice, error)
	ListForUser(ctx context.Context, userID uint) ([]Invoice, error)
	MarkPaid(ctx context.Context, id uint) error
}

// PaymentService coordinates gateway intents with the invoice lifecycle
type PaymentService interface {
	CreateIntent(ctx context.Context, invoiceID, userID uint) (*IntentResult, error)
	Confirm(ctx context.Context, intentID string) (string, error)
	GetStatus(ctx context.Context, intentID string) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// PaymentGateway is the external card-payment integration
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*IntentResult, error)
	GetIntentStatus(ctx context.Context, intentID string) (string, error)
	// ParseWebhook verifies the signature against the raw payload before
	// returning the embedded event. Unverified payloads are rejected.
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateSessionToken(userID uint, email, role string) (string, error)
	GenerateEmailToken(userID uint, email string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// Mailer delivers out-of-band messages to users
type Mailer interface {
	Send(to, subject, body string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
