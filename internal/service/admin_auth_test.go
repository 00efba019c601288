package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/saafhawa/petition/internal/auth"
)

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]bool
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]bool{}}
}

func (s *memSessionStore) Save(ctx context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[jti] = true
	return nil
}

func (s *memSessionStore) Active(ctx context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[jti], nil
}

func (s *memSessionStore) Revoke(ctx context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, jti)
	return nil
}

const tokenSecret = "0123456789abcdef0123456789abcdef"

func newTestAuthService(t *testing.T, ttl time.Duration) (*AdminAuthService, *memSessionStore) {
	t.Helper()

	hash, err := auth.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	sessions := newMemSessionStore()
	svc := NewAdminAuthService("admin", hash, auth.NewJWTManager(tokenSecret, ttl), sessions)
	return svc, sessions
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestAuthService(t, time.Hour)

	result, err := svc.Login(context.Background(), "admin", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("empty token")
	}
	if result.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d, want 3600", result.ExpiresIn)
	}

	claims, err := svc.Validate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "admin" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t, time.Hour)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "correct horse battery"},
		{"both wrong", "root", "nope"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.username, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestAuthService(t, time.Hour)

	result, err := svc.Login(context.Background(), "admin", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.Validate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.Validate(context.Background(), result.Token); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked after logout, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc, _ := newTestAuthService(t, -time.Minute)

	result, err := svc.Login(context.Background(), "admin", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Validate(context.Background(), result.Token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	svc, _ := newTestAuthService(t, time.Hour)

	if _, err := svc.Validate(context.Background(), "not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
