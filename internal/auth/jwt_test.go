package auth

import (
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTRoundTrip(t *testing.T) {
	mgr := NewJWTManager(testSecret, time.Hour)

	token, jti, expiresAt, err := mgr.Generate("admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if jti == "" {
		t.Fatal("empty jti")
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("token already expired at issuance")
	}

	claims, err := mgr.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "admin" {
		t.Fatalf("subject = %q", claims.Subject)
	}
	if claims.ID != jti {
		t.Fatalf("jti mismatch: %q vs %q", claims.ID, jti)
	}
}

func TestJWTExpired(t *testing.T) {
	mgr := NewJWTManager(testSecret, -time.Minute)

	token, _, _, err := mgr.Generate("admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := mgr.ParseAndValidate(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, _, _, err := NewJWTManager(testSecret, time.Hour).Generate("admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewJWTManager("ffffffffffffffffffffffffffffffff", time.Hour)
	if _, err := other.ParseAndValidate(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}
