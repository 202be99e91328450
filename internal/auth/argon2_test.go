package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_Format(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash should have 6 parts, got: %d", len(parts))
	}
	if parts[1] != "argon2id" || parts[2] != "v=19" {
		t.Errorf("unexpected algorithm/version: %s %s", parts[1], parts[2])
	}
	if parts[3] != "m=19456,t=2,p=2" {
		t.Errorf("Expected m=19456,t=2,p=2, got: %s", parts[3])
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct", "correct horse", true},
		{"wrong", "battery staple", false},
		{"case matters", "Correct horse", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := VerifyPassword(tt.password, hash)
			if err != nil {
				t.Fatalf("VerifyPassword error: %v", err)
			}
			if got != tt.want {
				t.Errorf("VerifyPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	t.Parallel()

	for _, h := range []string{"", "plaintext", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", "$argon2id$v=19$bad$salt$hash"} {
		if _, err := VerifyPassword("x", h); err == nil {
			t.Errorf("expected error for hash %q", h)
		}
	}
}

func TestVerifyPassword_WrongVersion(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("x", "$argon2id$v=18$m=19456,t=2,p=2$c2FsdHNhbHQ$aGFzaGhhc2g")
	if err != ErrIncompatibleVersion {
		t.Errorf("expected ErrIncompatibleVersion, got %v", err)
	}
}
