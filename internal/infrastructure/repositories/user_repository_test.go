package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&DBUser{}, &DBDevice{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testUser(email, username, phone string) *domain.User {
	return &domain.User{
		Email:        email,
		Username:     username,
		Phone:        phone,
		PasswordHash: "hashed",
		Role:         domain.RoleUser,
	}
}

func TestUserRepositoryImpl_Create_DuplicateKey(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	if err := repo.Create(ctx, testUser("user@example.com", "user1", "+212600000000")); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	tests := []struct {
		name string
		user *domain.User
	}{
		{"duplicate email", testUser("user@example.com", "other", "+212611111111")},
		{"duplicate username", testUser("other@example.com", "user1", "+212622222222")},
		{"duplicate phone", testUser("third@example.com", "third", "+212600000000")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The service pre-checks uniqueness, but a concurrent register can
			// slip past them; the unique index is the last line of defense and
			// must still surface as the domain conflict error.
			if err := repo.Create(ctx, tt.user); !errors.Is(err, domain.ErrUserAlreadyExists) {
				t.Errorf("expected ErrUserAlreadyExists, got %v", err)
			}
		})
	}
}

func TestUserRepositoryImpl_FindByEmail_PreloadsDevices(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := testUser("user@example.com", "user1", "+212600000000")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.AddTrustedDevice(ctx, user.ID, "laptop-abc"); err != nil {
		t.Fatalf("AddTrustedDevice failed: %v", err)
	}

	found, err := repo.FindByEmail(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if len(found.Devices) != 1 || found.Devices[0].Identifier != "laptop-abc" {
		t.Errorf("expected the trusted device preloaded, got %+v", found.Devices)
	}
	if !found.TrustedDevice("laptop-abc") {
		t.Error("registered device should be trusted")
	}
}

func TestUserRepositoryImpl_AddTrustedDevice(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := testUser("user@example.com", "user1", "+212600000000")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	countDevices := func(t *testing.T) int64 {
		t.Helper()
		var n int64
		found, err := repo.FindByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		n = int64(len(found.Devices))
		return n
	}

	t.Run("re-registering a trusted device creates no duplicate", func(t *testing.T) {
		if err := repo.AddTrustedDevice(ctx, user.ID, "laptop-abc"); err != nil {
			t.Fatalf("AddTrustedDevice failed: %v", err)
		}
		if err := repo.AddTrustedDevice(ctx, user.ID, "laptop-abc"); err != nil {
			t.Fatalf("second AddTrustedDevice failed: %v", err)
		}
		if n := countDevices(t); n != 1 {
			t.Errorf("expected 1 device row, got %d", n)
		}
	})

	t.Run("a second identifier gets its own row", func(t *testing.T) {
		if err := repo.AddTrustedDevice(ctx, user.ID, "phone-xyz"); err != nil {
			t.Fatalf("AddTrustedDevice failed: %v", err)
		}
		if n := countDevices(t); n != 2 {
			t.Errorf("expected 2 device rows, got %d", n)
		}
	})
}

func TestUserRepositoryImpl_AddTrustedDevice_FlipsUntrusted(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewUserRepository(db)

	user := testUser("user@example.com", "user1", "+212600000000")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A device row can pre-exist untrusted (e.g. recorded before verification)
	if err := db.Create(&DBDevice{UserID: user.ID, Identifier: "tablet-new", Trusted: false}).Error; err != nil {
		t.Fatalf("seed device failed: %v", err)
	}

	if err := repo.AddTrustedDevice(ctx, user.ID, "tablet-new"); err != nil {
		t.Fatalf("AddTrustedDevice failed: %v", err)
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if len(found.Devices) != 1 {
		t.Fatalf("expected the existing row flipped, not duplicated; got %d rows", len(found.Devices))
	}
	if !found.Devices[0].Trusted {
		t.Error("existing untrusted device should be flipped to trusted")
	}
}

func TestUserRepositoryImpl_UpdateRole(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := testUser("user@example.com", "user1", "+212600000000")
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.UpdateRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Role != domain.RoleAdmin {
		t.Errorf("expected role admin, got %s", found.Role)
	}

	if err := repo.UpdateRole(ctx, 9999, domain.RoleAdmin); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for a missing user, got %v", err)
	}
}
