package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	JWTIssuer    string
	JWTTTL       time.Duration
	CORSOrigins  []string
	CookieSecure bool

	// Object storage for directory images. Optional: the upload endpoint
	// answers 503 until all required S3 settings are present.
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
}

// Load reads configuration from the environment and performs minimal validation.
// A missing JWT secret or database URL is a fatal startup error, never a
// per-request one.
func Load() (Config, error) {
	cfg := Config{
		Port:            fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:       fallback(os.Getenv("JWT_ISSUER"), "agridir-backend"),
		CORSOrigins:     parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		CookieSecure:    parseBool(os.Getenv("COOKIE_SECURE"), true),
		S3Bucket:        strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:        fallback(os.Getenv("S3_REGION"), "us-east-1"),
		S3Endpoint:      strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		S3AccessKey:     strings.TrimSpace(os.Getenv("S3_ACCESS_KEY")),
		S3SecretKey:     strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
		S3PublicBaseURL: strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
	}

	// The source revisions disagreed on the session lifetime (2 vs 7 days);
	// 7 days is the canonical default, overridable per deployment.
	days := fallback(os.Getenv("JWT_TTL_DAYS"), "7")
	if ttlDays, err := strconv.Atoi(days); err == nil && ttlDays > 0 {
		cfg.JWTTTL = time.Duration(ttlDays) * 24 * time.Hour
	} else {
		cfg.JWTTTL = 7 * 24 * time.Hour
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// MediaEnabled reports whether enough S3 settings are present to hand out
// upload URLs.
func (c Config) MediaEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseBool(value string, def bool) bool {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return parsed
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
