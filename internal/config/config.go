package config

import (
	"os"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	// Path to an optional YAML catalog file overriding the built-in
	// learning paths / quiz banks / documentation cards.
	ContentPath string

	AuthHMACSecret string
	// Session-scoped token lifetime (login without "remember me").
	SessionTokenTTL time.Duration
	// Persistent token lifetime (login with "remember me").
	RememberTokenTTL time.Duration
	ResetTokenTTL    time.Duration

	EnableGoogleAuth   bool
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleAllowedHD    string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	pub := os.Getenv("PUBLIC_URL")
	return Config{
		Mode:      mode,
		HTTPAddr:  addr,
		PublicURL: pub,

		DBDriver:    envOr("DB_DRIVER", "sqlite"),
		DBDSN:       envOr("DB_DSN", ""),
		ContentPath: os.Getenv("CONTENT_PATH"),

		AuthHMACSecret:   envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		SessionTokenTTL:  envDuration("SESSION_TOKEN_TTL", 12*time.Hour),
		RememberTokenTTL: envDuration("REMEMBER_TOKEN_TTL", 30*24*time.Hour),
		ResetTokenTTL:    envDuration("RESET_TOKEN_TTL", time.Hour),

		EnableGoogleAuth:   envBool("ENABLE_GOOGLE_AUTH", false),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  envOr("GOOGLE_REDIRECT_URI", strings.TrimSuffix(pub, "/")+"/auth/google/callback"),
		GoogleAllowedHD:    os.Getenv("GOOGLE_ALLOWED_HD"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://app.xtx-training.dev"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
