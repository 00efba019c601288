package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/saafhawa/petition/internal/auth"
)

var (
	// ErrInvalidCredentials indicates a failed login. The message never says
	// which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionRevoked indicates a structurally valid token whose session
	// was logged out or never issued.
	ErrSessionRevoked = errors.New("session revoked")
)

// AdminAuthService checks the single configured admin identity and manages
// bearer sessions. Tokens are HS256 JWTs; the session store holds the jti so
// logout revokes server-side.
type AdminAuthService struct {
	username     string
	passwordHash string
	jwt          *auth.JWTManager
	sessions     auth.SessionStore
}

// NewAdminAuthService wires the configured identity to the token machinery.
func NewAdminAuthService(username, passwordHash string, jwtMgr *auth.JWTManager, sessions auth.SessionStore) *AdminAuthService {
	return &AdminAuthService{
		username:     username,
		passwordHash: passwordHash,
		jwt:          jwtMgr,
		sessions:     sessions,
	}
}

// LoginResult is returned to the caller on successful authentication.
type LoginResult struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Login verifies credentials and issues a session token. The username is
// compared constant-time and the password hash is always verified, keeping
// timing flat regardless of which field is wrong.
func (s *AdminAuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	passOK, err := auth.Verify(password, s.passwordHash)
	if err != nil {
		log.Warn().Err(err).Msg("admin login: password verify failed")
		return nil, ErrInvalidCredentials
	}

	if !userOK || !passOK {
		log.Warn().Msg("admin login: invalid credentials")
		return nil, ErrInvalidCredentials
	}

	token, jti, _, err := s.jwt.Generate(s.username)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, jti, s.jwt.TTL()); err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.jwt.TTL().Seconds()),
	}, nil
}

// Validate parses the bearer token and confirms its session is still active.
func (s *AdminAuthService) Validate(ctx context.Context, tokenString string) (*auth.Claims, error) {
	claims, err := s.jwt.ParseAndValidate(tokenString)
	if err != nil {
		return nil, err
	}

	active, err := s.sessions.Active(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

// Logout revokes the session identified by the token's jti.
func (s *AdminAuthService) Logout(ctx context.Context, jti string) error {
	return s.sessions.Revoke(ctx, jti)
}
