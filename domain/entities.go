package domain

import "time"

// Roles accepted by the system
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsValidRole reports whether r is a role the system knows about
func IsValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

// Invoice statuses
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// User represents an account in the system
type User struct {
	ID            uint
	Email         string
	Username      string
	Phone         string
	PasswordHash  string `gorm:"column:password"`
	Role          string
	EmailVerified bool
	Devices       []Device
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Device is a client identifier the user has previously completed an OTP
// challenge from. A trusted device skips the OTP step at login.
type Device struct {
	ID         uint
	UserID     uint
	Identifier string
	Trusted    bool
	CreatedAt  time.Time
}

// TrustedDevice reports whether identifier matches a device the user has
// already verified. An empty identifier never matches, so clients that send
// no device header always go through the OTP path.
func (u *User) TrustedDevice(identifier string) bool {
	if identifier == "" {
		return false
	}
	for _, d := range u.Devices {
		if d.Identifier == identifier && d.Trusted {
			return true
		}
	}
	return false
}

// OTPChallenge is the transient state of a one-time code sent to an email
type OTPChallenge struct {
	Email     string
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// Invoice is a bill generated against a provider. It is written as pending at
// generation time and flipped to paid exactly once by payment confirmation.
type Invoice struct {
	ID             uint
	ContractNumber string
	UserID         uint
	ProviderID     uint
	Amount         float64
	DueDate        time.Time
	Status         string
	IsPaid         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Payment is the local record of a gateway payment intent for an invoice
type Payment struct {
	ID        uint
	InvoiceID uint
	UserID    uint
	IntentID  string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Provider is a billable service provider (fournisseur)
type Provider struct {
	ID         uint
	Name       string
	CategoryID uint
	LogoURL    string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Category groups providers for browsing
type Category struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionIssued is the login outcome for a trusted device
type SessionIssued struct {
	Token     string
	ExpiresIn int64
	User      *User
}

// VerificationRequired is the login outcome for an unrecognized device: an
// OTP has been emailed and no token is issued yet
type VerificationRequired struct {
	Email string
}

// LoginResult is a tagged union of the two login outcomes; exactly one of
// the fields is set
type LoginResult struct {
	Session      *SessionIssued
	Verification *VerificationRequired
}

// IntentResult is returned when a payment intent is created at the gateway
type IntentResult struct {
	IntentID     string
	ClientSecret string
}

// WebhookEvent is a gateway event whose signature has been verified
type WebhookEvent struct {
	Type     string
	IntentID string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Purpose   string `json:"purpose,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Token purposes
const (
	TokenPurposeSession     = "session"
	TokenPurposeEmailVerify = "email_verify"
)
