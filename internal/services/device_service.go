package services

import (
	"context"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// DeviceTrustServiceImpl implements domain.DeviceTrustService
type DeviceTrustServiceImpl struct {
	userRepo domain.UserRepository
}

// NewDeviceTrustService creates a new device trust service
func NewDeviceTrustService(userRepo domain.UserRepository) domain.DeviceTrustService {
	return &DeviceTrustServiceImpl{userRepo: userRepo}
}

// IsTrusted implements domain.DeviceTrustService
func (s *DeviceTrustServiceImpl) IsTrusted(user *domain.User, identifier string) bool {
	if user == nil {
		return false
	}
	return user.TrustedDevice(identifier)
}

// RegisterTrusted implements domain.DeviceTrustService. The repository
// guarantees no duplicate identifiers per user; a known untrusted device is
// flipped rather than re-inserted.
func (s *DeviceTrustServiceImpl) RegisterTrusted(ctx context.Context, userID uint, identifier string) error {
	if identifier == "" {
		return nil
	}
	return s.userRepo.AddTrustedDevice(ctx, userID, identifier)
}
