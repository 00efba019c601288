package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Intake variants. The phone variant accepts free-form phone numbers; the
// mobile-state variant requires an exact 10-digit mobile number plus a state.
const (
	VariantPhone       = "phone"
	VariantMobileState = "mobile-state"
)

// Config holds everything loaded from the environment.
type Config struct {
	Port     int
	DBDSN    string
	RedisURL string

	AdminUsername     string
	AdminPasswordHash string
	TokenSecret       string
	TokenTTL          time.Duration

	CampaignVariant string
	CertTemplate    string

	QueryTimeout time.Duration
	AllowOrigins []string

	RateLimitPublic RateLimitConfig
	RateLimitSign   RateLimitConfig
	RateLimitAdmin  RateLimitConfig
}

// RateLimitConfig describes a simple token-bucket limit.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load reads environment variables and applies safe defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("invalid PORT")
	}
	cfg.Port = port

	cfg.DBDSN = getEnv("DB_DSN", "")
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is required")
	}

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	cfg.AdminUsername = strings.TrimSpace(getEnv("ADMIN_USERNAME", ""))
	if cfg.AdminUsername == "" {
		return nil, errors.New("ADMIN_USERNAME is required")
	}

	cfg.AdminPasswordHash = strings.TrimSpace(getEnv("ADMIN_PASSWORD_HASH", ""))
	if !strings.HasPrefix(cfg.AdminPasswordHash, "$argon2id$") {
		return nil, errors.New("ADMIN_PASSWORD_HASH must be an argon2id hash (see cmd/hashpass)")
	}

	cfg.TokenSecret = strings.TrimSpace(getEnv("TOKEN_SECRET", ""))
	if len(cfg.TokenSecret) < 32 {
		return nil, errors.New("TOKEN_SECRET must be at least 32 characters")
	}

	tokenTTL, err := parseDurationEnv("ADMIN_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = tokenTTL

	cfg.CampaignVariant = strings.TrimSpace(getEnv("CAMPAIGN_VARIANT", VariantPhone))
	if cfg.CampaignVariant != VariantPhone && cfg.CampaignVariant != VariantMobileState {
		return nil, errors.New("CAMPAIGN_VARIANT must be phone or mobile-state")
	}

	cfg.CertTemplate = strings.TrimSpace(getEnv("CERT_TEMPLATE", "assets/certificate.png"))

	queryTimeout, err := parseDurationEnv("QUERY_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.QueryTimeout = queryTimeout

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	// 5 submissions per 5 minutes per IP.
	cfg.RateLimitSign = RateLimitConfig{RequestsPerSecond: 5.0 / 300.0, Burst: 5}
	cfg.RateLimitAdmin = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return dur, nil
}
