package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	httpapi "github.com/aussiebroadwan/habits/internal/habits/http"
	"github.com/aussiebroadwan/habits/pkg/cryptox"
	"github.com/aussiebroadwan/habits/pkg/httpx"
	"github.com/aussiebroadwan/habits/pkg/jwtx"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	LogFile           string // Optional: tee logs into a rotating file
	LogFileMaxSizeMB  int    // Rotate after this many megabytes (default: 50)
	LogFileMaxBackups int    // Rotated files kept (default: 5)
	LogFileMaxAgeDays int    // Days a rotated file is kept (default: 28)

	Port                int           // HTTP server port (default: 5000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	DatabaseDriver  string        // sqlite or postgres (default: inferred, then sqlite)
	DatabaseURL     string        // Postgres DSN, built from DB_* when unset
	DatabaseFile    string        // SQLite database path (default: habits.db)
	MaxOpenConns    int           // Postgres pool size (default: 25)
	MaxIdleConns    int           // Postgres idle connections (default: 5)
	ConnMaxLifetime time.Duration // Postgres connection lifetime (default: 5m)

	JWTSecret  string        // Required outside dev: HS256 secret, at least 32 bytes
	JWTIssuer  string        // Issuer claim (default: habits-api)
	JWTTTL     time.Duration // Token lifetime (default: 168h)
	BcryptCost int           // Password hashing cost (default: 10)

	Timezone       string   // IANA zone "today" is computed in (default: Local)
	AllowedOrigins []string // CORS origins (default: *)

	MetricsEnabled  bool          // Expose /metrics and sample pool stats (default: true)
	DBStatsInterval time.Duration // Pool stats sampling interval (default: 15s)

	Limits httpapi.Limits // Rate limit profiles with RATELIMIT_* overrides applied
}

// LoadConfig reads the environment, loading a .env file first when one
// exists in the working directory.
func LoadConfig() Config {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	cfg := Config{
		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		LogFile:           os.Getenv("LOG_FILE"),
		LogFileMaxSizeMB:  getEnvIntOrDefault("LOG_FILE_MAX_SIZE_MB", 50),
		LogFileMaxBackups: getEnvIntOrDefault("LOG_FILE_MAX_BACKUPS", 5),
		LogFileMaxAgeDays: getEnvIntOrDefault("LOG_FILE_MAX_AGE_DAYS", 28),

		Port:                getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		DatabaseDriver:  strings.ToLower(os.Getenv("DATABASE_DRIVER")),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DatabaseFile:    getEnvOrDefault("DATABASE_FILE", "habits.db"),
		MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTIssuer:  getEnvOrDefault("JWT_ISSUER", "habits-api"),
		JWTTTL:     getEnvDurationOrDefault("JWT_TTL", jwtx.DefaultTokenTTL),
		BcryptCost: getEnvIntOrDefault("BCRYPT_COST", cryptox.DefaultCost),

		Timezone:       getEnvOrDefault("APP_TIMEZONE", "Local"),
		AllowedOrigins: httpx.SplitOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		MetricsEnabled:  getEnvBoolOrDefault("METRICS_ENABLED", true),
		DBStatsInterval: getEnvDurationOrDefault("DB_STATS_INTERVAL", 15*time.Second),

		Limits: httpapi.Limits{
			Strict:   httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
			Moderate: httpx.ParseRateLimitFromEnv("MODERATE", httpx.ModerateLimit),
			Lenient:  httpx.ParseRateLimitFromEnv("LENIENT", httpx.LenientLimit),
		},
	}

	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = DriverSQLite
		if strings.HasPrefix(cfg.DatabaseURL, "postgres") || os.Getenv("DB_HOST") != "" {
			cfg.DatabaseDriver = DriverPostgres
		}
	}

	if cfg.DatabaseDriver == DriverPostgres && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = postgresDSNFromEnv()
	}

	return cfg
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("postgres driver needs DATABASE_URL or DB_HOST"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch {
	case c.JWTSecret == "" && !c.IsDev():
		errs = append(errs, ErrMissingSecret)
	case c.JWTSecret != "" && len(c.JWTSecret) < jwtx.MinSecretBytes:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", jwtx.MinSecretBytes))
	}

	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}

	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
	}

	if err := cryptox.ValidateCost(c.BcryptCost); err != nil {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d: %w", c.BcryptCost, err))
	}

	return errors.Join(errs...)
}

func (c Config) IsDev() bool { return c.Env == "dev" }

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func postgresDSNFromEnv() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   host + ":" + getEnvOrDefault("DB_PORT", "5432"),
		Path:   "/" + os.Getenv("DB_NAME"),
	}
	if user := os.Getenv("DB_USER"); user != "" {
		u.User = url.UserPassword(user, os.Getenv("DB_PASSWORD"))
	}
	q := url.Values{}
	q.Set("sslmode", getEnvOrDefault("DB_SSLMODE", "disable"))
	u.RawQuery = q.Encode()

	return u.String()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
