package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is loaded once at startup and
// passed by value into constructors; nothing mutates it afterwards.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string
	LogLevel    string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// JWTSecret signs login tokens. Tokens are stateless and expire after
	// TokenTTLMinutes; there is no server-side revocation.
	JWTSecret       string
	TokenTTLMinutes int

	// AdminAuth is an optional out-of-band "email:password" pair checked
	// before the user store during login.
	AdminAuth string

	StripeAPIKey        string
	StripeAPIBase       string
	StripeWebhookSecret string
	// WebhookToleranceSeconds bounds the age of the webhook signature
	// timestamp. Zero disables the check.
	WebhookToleranceSeconds int64

	FrontendURL string

	Email EmailConfig

	RateLimit RateLimitConfig
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

type RateLimitConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LoginRate     float64
	LoginBurst    int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "windevexpert"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		Port:        getenv("APP_PORT", "8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		DBType:     getenv("DATABASE_TYPE", "postgres"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "windevexpert"),
		DBUser:     getenv("DATABASE_USER", "postgres"),
		DBPassword: getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),

		JWTSecret:       strings.TrimSpace(getenv("JWT_SECRET", "")),
		TokenTTLMinutes: int(getenvInt64("TOKEN_TTL_MINUTES", 60)),
		AdminAuth:       strings.TrimSpace(getenv("ADMIN_AUTH", "")),

		StripeAPIKey:            strings.TrimSpace(getenv("STRIPE_KEYS", "")),
		StripeAPIBase:           strings.TrimSpace(getenv("STRIPE_API_BASE", "")),
		StripeWebhookSecret:     strings.TrimSpace(getenv("STRIPE_WEBHOOK_SECRET", "")),
		WebhookToleranceSeconds: getenvInt64("WEBHOOK_TOLERANCE_SECONDS", 300),

		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),

		Email: EmailConfig{
			SMTPHost:     getenv("SMTP_HOST", ""),
			SMTPPort:     int(getenvInt64("SMTP_PORT", 587)),
			SMTPUsername: getenv("SMTP_USERNAME", ""),
			SMTPPassword: getenv("SMTP_PASSWORD", ""),
			SMTPFrom:     getenv("SMTP_FROM", "WindevExpert <no-reply@windevexpert>"),
		},

		RateLimit: RateLimitConfig{
			RedisAddr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			RedisPassword: strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
			RedisDB:       int(getenvInt64("REDIS_DB", 0)),
			LoginRate:     getenvFloat("LOGIN_RATE_PER_SECOND", 1),
			LoginBurst:    int(getenvInt64("LOGIN_BURST", 5)),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
