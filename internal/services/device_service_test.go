package services

import (
	"context"
	"testing"

	"github.com/yassirrachad97/Factura-sub000/domain"
	"github.com/yassirrachad97/Factura-sub000/internal/mocks"
)

func TestDeviceTrustServiceImpl_IsTrusted(t *testing.T) {
	deviceSvc := NewDeviceTrustService(mocks.NewMockUserRepository())

	user := &domain.User{
		ID: 1,
		Devices: []domain.Device{
			{UserID: 1, Identifier: "laptop-abc", Trusted: true},
			{UserID: 1, Identifier: "phone-xyz", Trusted: false},
		},
	}

	if !deviceSvc.IsTrusted(user, "laptop-abc") {
		t.Error("trusted device should be recognized")
	}
	if deviceSvc.IsTrusted(user, "phone-xyz") {
		t.Error("untrusted device must not pass")
	}
	if deviceSvc.IsTrusted(user, "") {
		t.Error("empty identifier must not pass")
	}
	if deviceSvc.IsTrusted(nil, "laptop-abc") {
		t.Error("nil user must not pass")
	}
}

func TestDeviceTrustServiceImpl_RegisterTrusted(t *testing.T) {
	ctx := context.Background()

	t.Run("identifier is forwarded to the repository", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		deviceSvc := NewDeviceTrustService(userRepo)

		var gotUser uint
		var gotIdentifier string
		userRepo.AddTrustedDeviceFunc = func(ctx context.Context, userID uint, identifier string) error {
			gotUser, gotIdentifier = userID, identifier
			return nil
		}

		if err := deviceSvc.RegisterTrusted(ctx, 1, "laptop-abc"); err != nil {
			t.Fatalf("RegisterTrusted failed: %v", err)
		}
		if gotUser != 1 || gotIdentifier != "laptop-abc" {
			t.Errorf("expected user 1 device laptop-abc, got user=%d device=%q", gotUser, gotIdentifier)
		}
	})

	t.Run("empty identifier is a no-op", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		deviceSvc := NewDeviceTrustService(userRepo)

		userRepo.AddTrustedDeviceFunc = func(ctx context.Context, userID uint, identifier string) error {
			t.Error("repository must not be called for an empty identifier")
			return nil
		}

		if err := deviceSvc.RegisterTrusted(ctx, 1, ""); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})
}
