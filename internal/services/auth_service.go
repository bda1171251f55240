package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// AuthServiceImpl implements domain.AuthService. Login is a small state
// machine: password check, then device-trust check, then either a session
// token or an OTP challenge.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	deviceSvc   domain.DeviceTrustService
	mailer      domain.Mailer
	sessionTTL  time.Duration
	baseURL     string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	deviceSvc domain.DeviceTrustService,
	mailer domain.Mailer,
	sessionTTL time.Duration,
	baseURL string,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		deviceSvc:   deviceSvc,
		mailer:      mailer,
		sessionTTL:  sessionTTL,
		baseURL:     baseURL,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, email, username, phone, password string) (*domain.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if _, err := s.userRepo.FindByPhone(ctx, phone); err == nil {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:         email,
		Username:      username,
		Phone:         phone,
		PasswordHash:  hashedPassword,
		Role:          domain.RoleUser,
		EmailVerified: false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenSvc.GenerateEmailToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	body := fmt.Sprintf("Welcome! Verify your email address: %s/auth/verify-email?token=%s", s.baseURL, token)
	if err := s.mailer.Send(user.Email, "Verify your email", body); err != nil {
		// The account exists either way; delivery can be retried via resend
		log.Printf("VERIFICATION_MAIL_FAILED: user_id=%d email=%s error=%v", user.ID, user.Email, err)
	}

	return user, nil
}

// VerifyEmail implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return err
	}
	if claims.Purpose != domain.TokenPurposeEmailVerify {
		return domain.ErrTokenInvalid
	}
	return s.userRepo.MarkEmailVerified(ctx, claims.UserID)
}

// Login implements domain.AuthService. A missing user and a wrong password
// collapse into the same error so callers cannot enumerate accounts.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, deviceID string) (*domain.LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if s.deviceSvc.IsTrusted(user, deviceID) {
		token, err := s.tokenSvc.GenerateSessionToken(user.ID, user.Email, user.Role)
		if err != nil {
			return nil, fmt.Errorf("failed to generate session token: %w", err)
		}
		return &domain.LoginResult{
			Session: &domain.SessionIssued{
				Token:     token,
				ExpiresIn: int64(s.sessionTTL.Seconds()),
				User:      user,
			},
		}, nil
	}

	// Unknown device: challenge it before issuing anything
	if _, err := s.otpSvc.Generate(ctx, email); err != nil {
		// Throttled means a code is already in flight; still route to OTP
		if !errors.Is(err, domain.ErrOTPResendLimit) {
			return nil, fmt.Errorf("failed to send OTP: %w", err)
		}
	}

	log.Printf("NEW_DEVICE_CHALLENGE: user_id=%d email=%s device=%q", user.ID, user.Email, deviceID)

	return &domain.LoginResult{
		Verification: &domain.VerificationRequired{Email: email},
	}, nil
}

// ValidateToken implements domain.AuthService
func (s *AuthServiceImpl) ValidateToken(token string) (*domain.TokenClaims, error) {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != domain.TokenPurposeSession {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// ResetPassword implements domain.AuthService. The OTP proves inbox
// possession; no device is registered on this path.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	ok, err := s.otpSvc.Verify(ctx, email, code, "")
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrOTPInvalid
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}

// ChangePassword implements domain.AuthService
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, oldPassword) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
