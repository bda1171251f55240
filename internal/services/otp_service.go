package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// consumeScript deletes the stored code only when it matches the submitted
// one, in a single round trip. A wrong guess leaves the code in place, a
// right one can be redeemed exactly once even under concurrent verifies.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OTPServiceImpl implements domain.OTPService using Redis persistence. The
// key TTL is the validity window, so expiry needs no sweeper.
type OTPServiceImpl struct {
	mailer      domain.Mailer
	userRepo    domain.UserRepository
	deviceSvc   domain.DeviceTrustService
	redisClient *redis.Client
	config      OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new Redis-based OTP service
func NewOTPService(mailer domain.Mailer, userRepo domain.UserRepository, deviceSvc domain.DeviceTrustService, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		mailer:      mailer,
		userRepo:    userRepo,
		deviceSvc:   deviceSvc,
		redisClient: redisClient,
		config:      config,
	}
}

func otpKey(email string) string      { return "otp:" + email }
func attemptsKey(email string) string { return "otp:att:" + email }
func resendKey(email string) string   { return "otp:res:" + email }

// Generate implements domain.OTPService
func (s *OTPServiceImpl) Generate(ctx context.Context, email string) (*domain.OTPChallenge, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return nil, err
	}

	if canResend, waitTime, _ := s.CanResend(ctx, email); !canResend {
		return nil, fmt.Errorf("%w: wait %d seconds", domain.ErrOTPResendLimit, waitTime)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if err := s.redisClient.Set(ctx, otpKey(email), code, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}
	if err := s.redisClient.Set(ctx, attemptsKey(email), 0, s.config.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to initialize attempts counter: %w", err)
	}
	if err := s.redisClient.Set(ctx, resendKey(email), 1, s.config.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	challenge := &domain.OTPChallenge{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}

	subject := "Your verification code"
	body := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.mailer.Send(email, subject, body); err != nil {
		// Roll back so a code never counts as sent when delivery failed
		s.redisClient.Del(ctx, otpKey(email), attemptsKey(email), resendKey(email))
		return nil, fmt.Errorf("failed to send OTP mail: %w", err)
	}

	return challenge, nil
}

// Verify implements domain.OTPService. On success the code is consumed and,
// when a device identifier is supplied, that device becomes trusted.
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code, deviceID string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}

	// No stored code means nothing to guess against; bail before the
	// attempts counter so a verify without a challenge leaves no keys behind
	exists, err := s.redisClient.Exists(ctx, otpKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check OTP: %w", err)
	}
	if exists == 0 {
		return false, domain.ErrOTPNotFound
	}

	attempts, err := s.redisClient.Incr(ctx, attemptsKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, otpKey(email), attemptsKey(email))
		return false, domain.ErrOTPMaxAttempts
	}

	consumed, err := consumeScript.Run(ctx, s.redisClient, []string{otpKey(email)}, code).Int()
	if err != nil {
		return false, fmt.Errorf("failed to consume OTP: %w", err)
	}
	if consumed == 0 {
		// Distinguish a missing/expired code from a mismatch
		if _, err := s.redisClient.Get(ctx, otpKey(email)).Result(); errors.Is(err, redis.Nil) {
			return false, domain.ErrOTPNotFound
		}
		return false, domain.ErrOTPInvalid
	}

	s.redisClient.Del(ctx, attemptsKey(email))

	if deviceID != "" {
		if err := s.deviceSvc.RegisterTrusted(ctx, user.ID, deviceID); err != nil {
			return false, fmt.Errorf("failed to register trusted device: %w", err)
		}
	}

	return true, nil
}

// CanResend implements domain.OTPService with Redis-based throttling
func (s *OTPServiceImpl) CanResend(ctx context.Context, email string) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(email)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

// generateSecureCode generates a cryptographically secure numeric code. The
// first digit is never zero so a 6-digit code stays in 100000-999999.
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		base := int64(10)
		offset := int64(0)
		if i == 0 {
			base, offset = 9, 1
		}
		num, err := rand.Int(rand.Reader, big.NewInt(base))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + offset + num.Int64())
	}

	return string(digits), nil
}
