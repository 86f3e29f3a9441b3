package auth

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret-key-32-chars-min!!!")
	os.Exit(m.Run())
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v; want nil", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash %q is not a bcrypt hash", hash)
	}

	if !VerifyPassword(hash, "s3cret-pass") {
		t.Error("VerifyPassword() = false for correct password; want true")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Error("VerifyPassword() = true for wrong password; want false")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "whatever") {
		t.Error("VerifyPassword() = true for malformed hash; want false")
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-123")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v; want nil", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v; want nil", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %q; want %q", claims.UserID, "user-123")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Error("token expiry missing or already in the past")
	}
}

func TestParseJWT_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"tampered", func() string {
			tok, _ := GenerateJWT("user-123")
			return tok + "x"
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseJWT(tc.token); err == nil {
				t.Errorf("ParseJWT(%q) error = nil; want non-nil", tc.token)
			}
		})
	}
}

func TestParseJWTExpiry(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", 24 * time.Hour},
		{"12", 12 * time.Hour},
		{"abc", 24 * time.Hour},
	}
	for _, tc := range cases {
		if got := parseJWTExpiry(tc.in); got != tc.want {
			t.Errorf("parseJWTExpiry(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}
