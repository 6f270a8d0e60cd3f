package service

import (
	"strings"
	"testing"

	"coveradvisor/internal/config"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		AdminUsername: "admin",
		AdminPassword: "s3cret",
		JWTSecret:     "test-secret",
		JWTTTLHours:   1,
	}
}

func TestLoginAndValidateRoundTrip(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	resp, err := svc.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Login() returned empty token")
	}
	if !strings.HasPrefix(resp.AdminID, "admin_") {
		t.Errorf("AdminID = %q, want admin_ prefix", resp.AdminID)
	}

	claims, err := svc.ValidateAdminToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateAdminToken() error = %v", err)
	}
	if claims.AdminID != resp.AdminID {
		t.Errorf("claims.AdminID = %q, want %q", claims.AdminID, resp.AdminID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "s3cret"},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(tt.username, tt.password); err != ErrInvalidCredentials {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestValidateRejectsBadTokens(t *testing.T) {
	svc := NewAuthService(testAuthConfig())

	if _, err := svc.ValidateAdminToken("not-a-jwt"); err != ErrInvalidToken {
		t.Errorf("ValidateAdminToken(garbage) error = %v, want ErrInvalidToken", err)
	}

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "different-secret"
	other := NewAuthService(otherCfg)
	resp, err := other.Login("admin", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := svc.ValidateAdminToken(resp.Token); err != ErrInvalidToken {
		t.Errorf("ValidateAdminToken(foreign signature) error = %v, want ErrInvalidToken", err)
	}
}
