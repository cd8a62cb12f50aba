package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Upstream POS backend (the single origin the proxy forwards to)
	POSAPIURL     string
	POSAPIToken   string // default auth token when no session is stored
	POSCompanyID  string // default tenant id when no session is stored
	AllowedOrigin string // site origin allowed through the CORS layer

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience (lead persistence only; the proxy path never retries)
	MaxRetries     int
	InitialBackoff time.Duration

	// Durable state
	DataDir string

	// Observability
	OTLPEndpoint string

	// Supabase (lead persistence backend)
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	UseSupabase        bool

	// Admin surface
	AdminJWTSecret string // empty disables admin auth entirely
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		POSAPIURL:     getEnv("POS_API_URL", "https://api.andinpos.com/api"),
		POSAPIToken:   getEnv("POS_API_TOKEN", "demo-public-token"),
		POSCompanyID:  getEnv("POS_COMPANY_ID", "1"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),

		DataDir: getEnv("DATA_DIR", "data"),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		UseSupabase:        getEnv("USE_SUPABASE", "true") == "true",

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
