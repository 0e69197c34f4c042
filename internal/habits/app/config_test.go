package app

import (
	"io"
	"log/slog"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/aussiebroadwan/habits/pkg/httpx"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ENV", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "PORT", "SHUTDOWN_GRACE_PERIOD",
		"DATABASE_DRIVER", "DATABASE_URL", "DATABASE_FILE",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
		"JWT_SECRET", "JWT_ISSUER", "JWT_TTL", "BCRYPT_COST", "APP_TIMEZONE",
		"CORS_ALLOWED_ORIGINS", "METRICS_ENABLED", "DB_STATS_INTERVAL",
		"RATELIMIT_STRICT_REQUESTS", "RATELIMIT_STRICT_WINDOW_SEC", "RATELIMIT_STRICT_BURST",
		"RATELIMIT_MODERATE_REQUESTS", "RATELIMIT_LENIENT_REQUESTS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg := LoadConfig()

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 5000, cfg.Port)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "habits.db", cfg.DatabaseFile)
	require.Equal(t, "habits-api", cfg.JWTIssuer)
	require.Equal(t, 168*time.Hour, cfg.JWTTTL)
	require.Equal(t, 10, cfg.BcryptCost)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.True(t, cfg.MetricsEnabled)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, httpx.StrictLimit, cfg.Limits.Strict)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("PORT", "8081")
	t.Setenv("JWT_TTL", "90") // integer minutes
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "2")
	t.Setenv("RATELIMIT_STRICT_WINDOW_SEC", "30")

	cfg := LoadConfig()

	require.Equal(t, 8081, cfg.Port)
	require.Equal(t, 90*time.Minute, cfg.JWTTTL)
	require.False(t, cfg.MetricsEnabled)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	require.Equal(t, 2, cfg.Limits.Strict.RequestsPerWindow)
	require.Equal(t, 30*time.Second, cfg.Limits.Strict.Window)
	require.Equal(t, httpx.StrictLimit.Burst, cfg.Limits.Strict.Burst)
}

func TestLoadConfigDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(dir+"/.env", []byte("PORT=7070\nJWT_ISSUER=from-dotenv\n"), 0o600))

	// godotenv never overrides a variable that exists, even an empty one.
	require.NoError(t, os.Unsetenv("PORT"))
	require.NoError(t, os.Unsetenv("JWT_ISSUER"))

	cfg := LoadConfig()
	require.Equal(t, 7070, cfg.Port)
	require.Equal(t, "from-dotenv", cfg.JWTIssuer)
}

func TestPostgresDriverInference(t *testing.T) {
	t.Run("from url", func(t *testing.T) {
		clearEnv(t)
		t.Chdir(t.TempDir())
		t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/habits?sslmode=disable")

		cfg := LoadConfig()
		require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
		require.Equal(t, "postgres://u:p@db:5432/habits?sslmode=disable", cfg.DatabaseURL)
	})

	t.Run("from discrete settings", func(t *testing.T) {
		clearEnv(t)
		t.Chdir(t.TempDir())
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_USER", "habits")
		t.Setenv("DB_PASSWORD", "s3cret")
		t.Setenv("DB_NAME", "habits")

		cfg := LoadConfig()
		require.Equal(t, DriverPostgres, cfg.DatabaseDriver)

		u, err := url.Parse(cfg.DatabaseURL)
		require.NoError(t, err)
		require.Equal(t, "db:5432", u.Host)
		require.Equal(t, "/habits", u.Path)
		require.Equal(t, "habits", u.User.Username())
		require.Equal(t, "disable", u.Query().Get("sslmode"))
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			Env:            "prod",
			DatabaseDriver: DriverSQLite,
			JWTSecret:      "0123456789abcdef0123456789abcdef",
			JWTTTL:         time.Hour,
			BcryptCost:     10,
			Timezone:       "UTC",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, false},
		{"postgres without dsn", func(c *Config) { c.DatabaseDriver = DriverPostgres }, false},
		{"missing secret in prod", func(c *Config) { c.JWTSecret = "" }, false},
		{"missing secret in dev", func(c *Config) { c.JWTSecret = ""; c.Env = "dev" }, true},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, false},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, false},
		{"bcrypt cost too high", func(c *Config) { c.BcryptCost = 99 }, false},
		{"zero ttl", func(c *Config) { c.JWTTTL = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestResolveSecret(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	got, err := resolveSecret(Config{Env: "prod", JWTSecret: "configured"}, logger)
	require.NoError(t, err)
	require.Equal(t, []byte("configured"), got)

	_, err = resolveSecret(Config{Env: "prod"}, logger)
	require.ErrorIs(t, err, ErrMissingSecret)

	a, err := resolveSecret(Config{Env: "dev"}, logger)
	require.NoError(t, err)
	b, err := resolveSecret(Config{Env: "dev"}, logger)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(a), 32)
	require.NotEqual(t, a, b)
}
