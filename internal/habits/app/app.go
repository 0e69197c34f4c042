package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/habits/internal/habits/http"
	"github.com/aussiebroadwan/habits/internal/habits/service"
	"github.com/aussiebroadwan/habits/internal/habits/store"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/postgres"
	"github.com/aussiebroadwan/habits/internal/habits/store/drivers/sqlite"
	"github.com/aussiebroadwan/habits/pkg/httpx"
	"github.com/aussiebroadwan/habits/pkg/jwtx"
	"github.com/aussiebroadwan/habits/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	limiterCleanupInterval = 5 * time.Minute
)

// Application encapsulates the habits service with all its dependencies
type Application struct {
	cfg       Config
	logger    *slog.Logger
	logCloser io.Closer

	// Core dependencies
	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier
	registry *prometheus.Registry // nil when metrics are disabled

	// Services
	authService     *service.AuthService
	habitService    *service.HabitService
	categoryService *service.CategoryService
	checkInService  *service.CheckInService
	goalService     *service.GoalService
	statsCollector  *service.StatsCollector // Optional: only with metrics

	// HTTP server
	server        *http.Server
	router        *httpapi.Router
	cancelCleanup context.CancelFunc
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) (*slog.Logger, io.Closer) {
	return slogx.New(slogx.Config{
		Service:        "habits-api",
		Version:        BuildVersion,
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		Format:         cfg.LogFormat,
		File:           cfg.LogFile,
		FileMaxSizeMB:  cfg.LogFileMaxSizeMB,
		FileMaxBackups: cfg.LogFileMaxBackups,
		FileMaxAgeDays: cfg.LogFileMaxAgeDays,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer := NewLogger(cfg)
	app := &Application{
		cfg:       cfg,
		logger:    logger,
		logCloser: closer,
	}

	if err := app.initDatabase(); err != nil {
		_ = closer.Close()
		return nil, err
	}

	if err := app.initTokens(); err != nil {
		app.closeResources()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeResources()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.statsCollector != nil {
		app.statsCollector.Start()
	}

	app.logger.Info("habits service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			if app.statsCollector != nil {
				app.statsCollector.Stop()
			}
			_ = app.closeResources()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down habits service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.statsCollector != nil {
		app.statsCollector.Stop()
	}

	app.logger.Info("habits service stopped")
	return app.closeResources()
}

func (app *Application) closeResources() error {
	if app.cancelCleanup != nil {
		app.cancelCleanup()
	}

	var err error
	if app.db != nil {
		if err = app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
		}
	}
	if app.logCloser != nil {
		_ = app.logCloser.Close()
	}
	return err
}

// OpenStore connects to the configured database and applies migrations.
func OpenStore(cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		db  store.Store
		err error
	)

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(cfg.DatabaseURL, postgres.Pool{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
	default:
		db, err = sqlite.NewStore(sqlite.FileDSN(cfg.DatabaseFile))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)
	return db, nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := OpenStore(app.cfg, app.logger)
	if err != nil {
		return err
	}
	app.db = db
	return nil
}

// initTokens builds the HS256 signer and verifier. In dev an unset secret is
// replaced by a random one, so tokens do not survive a restart.
func (app *Application) initTokens() error {
	secret, err := resolveSecret(app.cfg, app.logger)
	if err != nil {
		return err
	}

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT signer: %w", err)
	}
	app.signer = signer
	app.verifier = jwtx.NewCommonHS256(secret, app.cfg.JWTIssuer)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	loc, err := app.cfg.Location()
	if err != nil {
		return err
	}
	clock := service.Clock{Location: loc}

	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     app.signer,
		Issuer:     app.cfg.JWTIssuer,
		TTL:        app.cfg.JWTTTL,
		BcryptCost: app.cfg.BcryptCost,
	}
	app.habitService = &service.HabitService{Store: app.db}
	app.categoryService = &service.CategoryService{Store: app.db}
	app.checkInService = &service.CheckInService{Store: app.db, Clock: clock}
	app.goalService = &service.GoalService{Store: app.db, Clock: clock}

	if !app.cfg.MetricsEnabled {
		return nil
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app.statsCollector, err = service.NewStatsCollector(app.db, app.logger, app.cfg.DBStatsInterval, app.registry)
	if err != nil {
		return fmt.Errorf("failed to register db stats: %w", err)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.verifier, BuildVersion, app.db, app.logger)

	// Wire services to router
	router.AuthService = app.authService
	router.HabitService = app.habitService
	router.CategoryService = app.categoryService
	router.CheckInService = app.checkInService
	router.GoalService = app.goalService

	router.Limits = app.cfg.Limits
	router.AllowedOrigins = app.cfg.AllowedOrigins

	if app.registry != nil {
		metrics, err := httpx.NewMetrics(app.registry)
		if err != nil {
			// Only fails on a duplicate registration, which a fresh registry rules out.
			app.logger.Error("http metrics disabled", "error", err)
		} else {
			router.Metrics = metrics
		}
	}

	router.ApplyRoutes()
	app.router = router

	ctx, cancel := context.WithCancel(context.Background())
	app.cancelCleanup = cancel
	router.StartLimiterCleanup(ctx, limiterCleanupInterval)

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
