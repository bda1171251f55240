package domain

import "testing"

func TestUser_TrustedDevice(t *testing.T) {
	user := &User{
		ID:    1,
		Email: "user@example.com",
		Devices: []Device{
			{UserID: 1, Identifier: "laptop-abc", Trusted: true},
			{UserID: 1, Identifier: "phone-xyz", Trusted: false},
		},
	}

	tests := []struct {
		name       string
		identifier string
		expected   bool
	}{
		{
			name:       "trusted device matches",
			identifier: "laptop-abc",
			expected:   true,
		},
		{
			name:       "known but untrusted device does not match",
			identifier: "phone-xyz",
			expected:   false,
		},
		{
			name:       "unknown device does not match",
			identifier: "tablet-new",
			expected:   false,
		},
		{
			name:       "empty identifier never matches",
			identifier: "",
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := user.TrustedDevice(tt.identifier); got != tt.expected {
				t.Errorf("TrustedDevice(%q) = %v, want %v", tt.identifier, got, tt.expected)
			}
		})
	}
}

func TestUser_TrustedDevice_NoDevices(t *testing.T) {
	user := &User{ID: 2, Email: "fresh@example.com"}

	if user.TrustedDevice("any-device") {
		t.Error("user with no devices should not trust any identifier")
	}
	if user.TrustedDevice("") {
		t.Error("user with no devices should not trust the empty identifier")
	}
}

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{RoleUser, true},
		{RoleAdmin, true},
		{"superadmin", false},
		{"", false},
		{"Admin", false},
	}

	for _, tt := range tests {
		if got := IsValidRole(tt.role); got != tt.expected {
			t.Errorf("IsValidRole(%q) = %v, want %v", tt.role, got, tt.expected)
		}
	}
}
