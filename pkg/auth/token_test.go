package auth

import (
	"testing"
	"time"

	"github.com/swingbaylabs/swingbay-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "swingbay-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAdminToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintAdminToken(cfg, now, AdminTokenPayload{Username: "ops"})
	if err != nil {
		t.Fatalf("MintAdminToken: %v", err)
	}

	claims, err := ParseAdminToken(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAdminToken: %v", err)
	}
	if claims.Username != "ops" {
		t.Fatalf("expected username ops, got %q", claims.Username)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti to be minted")
	}
}

func TestParseAdminTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAdminToken(cfg, time.Now(), AdminTokenPayload{Username: "ops"})
	if err != nil {
		t.Fatalf("MintAdminToken: %v", err)
	}

	bad := cfg
	bad.Secret = "other-secret"
	if _, err := ParseAdminToken(bad, signed); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAdminToken(cfg, time.Now().Add(-2*time.Hour), AdminTokenPayload{Username: "ops"})
	if err != nil {
		t.Fatalf("MintAdminToken: %v", err)
	}

	if _, err := ParseAdminToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestMintAdminTokenRequiresUsername(t *testing.T) {
	if _, err := MintAdminToken(testJWTConfig(), time.Now(), AdminTokenPayload{}); err == nil {
		t.Fatal("expected error for empty username")
	}
}
