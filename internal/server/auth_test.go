package server

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, expiresAt, err := svc.Generate(42, "aidana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("token already expired at %v", expiresAt)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 42 || claims.Name != "aidana" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "timeblock" {
		t.Errorf("unexpected issuer %q", claims.Issuer)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenService("secret-a", time.Hour).Generate(1, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewTokenService("secret-b", time.Hour).Validate(token); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	token, _, err := NewTokenService("secret", -time.Minute).Generate(1, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewTokenService("secret", time.Hour).Validate(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
