package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/saafhawa/petition/internal/auth"
)

type contextKey string

const (
	ContextKeySubject contextKey = "subject"
	ContextKeyTokenID contextKey = "token_id"
)

// TokenValidator checks a bearer token and returns its claims. Expired,
// malformed and revoked tokens all fail.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*auth.Claims, error)
}

// Auth gates admin routes on a valid bearer token and injects the subject
// and session id into the request context.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "AUTH", "missing bearer token")
				return
			}

			claims, err := validator.Validate(r.Context(), parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "AUTH", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, claims.Subject)
			ctx = context.WithValue(ctx, ContextKeyTokenID, claims.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject returns the authenticated subject from the context.
func GetSubject(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeySubject).(string)
	return val
}

// GetTokenID returns the session id (jti) from the context.
func GetTokenID(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyTokenID).(string)
	return val
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
