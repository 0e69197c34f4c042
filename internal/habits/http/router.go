package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/habits/internal/habits/service"
	"github.com/aussiebroadwan/habits/internal/habits/store"
	"github.com/aussiebroadwan/habits/pkg/httpx"
	"github.com/aussiebroadwan/habits/pkg/jwtx"
	"github.com/aussiebroadwan/habits/pkg/slogx"

	_ "github.com/aussiebroadwan/habits/api/habits" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limit profiles the routes are registered with.
type Limits struct {
	Strict   httpx.RateLimitConfig // register and login, per IP
	Moderate httpx.RateLimitConfig // writes, per user
	Lenient  httpx.RateLimitConfig // reads and probes
}

// DefaultLimits returns the package level profiles, including any
// RATELIMIT_* overrides applied at startup.
func DefaultLimits() Limits {
	return Limits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	AuthService     *service.AuthService
	HabitService    *service.HabitService
	CategoryService *service.CategoryService
	CheckInService  *service.CheckInService
	GoalService     *service.GoalService

	Limits         Limits
	AllowedOrigins []string
	Metrics        *httpx.Metrics // Optional: nil disables /metrics

	limiters []*httpx.RateLimiter
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:            http.NewServeMux(),
		verifier:       verifier,
		buildVersion:   buildVersion,
		startTime:      time.Now(),
		store:          st,
		logger:         logger,
		Limits:         DefaultLimits(),
		AllowedOrigins: []string{"*"},
	}
}

// ApplyRoutes registers every route and builds the global middleware chain.
// Set the exported fields before calling it.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerHabits()
	r.registerCategories()
	r.registerCheckIns()
	r.registerGoals()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// Outermost first. CORS sits in front of the mux so preflight requests
	// never reach a method-specific route.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(r.AllowedOrigins),
	}

	var inner http.Handler = r.Mux
	if r.Metrics != nil {
		inner = r.Metrics.Middleware()(r.Mux)
	}
	r.handler = httpx.Chain(inner, r.middlewares...)
}

// StartLimiterCleanup sweeps idle rate limit keys every interval until ctx is done.
func (r *Router) StartLimiterCleanup(ctx context.Context, interval time.Duration) {
	for _, l := range r.limiters {
		go l.RunCleanup(ctx, interval)
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Habits API
//	@version		0.1.0
//	@description	Habit tracking backend: habits, daily check-ins, goals with ordered steps, and categories.
//	@description
//	@description				Every /api route except register and login needs an HS256 bearer token.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/habits
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) limiter(cfg httpx.RateLimitConfig, key httpx.KeyExtractor) httpx.Middleware {
	l := httpx.NewRateLimiter(cfg, key)
	r.limiters = append(r.limiters, l)
	return l.Middleware()
}

// secured wraps h with bearer authentication followed by a per-user limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.Middleware) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		limit,
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Register and login share one strict budget per IP (brute force prevention)
	strict := r.limiter(r.Limits.Strict, httpx.IPKeyExtractor)

	r.Mux.Handle("POST /api/auth/register", httpx.Chain(http.HandlerFunc(h.HandleRegister), strict))
	r.Mux.Handle("POST /api/auth/login", httpx.Chain(http.HandlerFunc(h.HandleLogin), strict))
	r.Mux.Handle("GET /api/auth/me", r.secured(h.HandleMe, r.limiter(r.Limits.Lenient, httpx.UserOrIPKeyExtractor)))
}

func (r *Router) registerHabits() {
	h := &HabitsHandler{HabitService: r.HabitService}
	reads := r.limiter(r.Limits.Lenient, httpx.UserOrIPKeyExtractor)
	writes := r.limiter(r.Limits.Moderate, httpx.UserOrIPKeyExtractor)

	r.Mux.Handle("GET /api/habits", r.secured(h.HandleList, reads))
	r.Mux.Handle("GET /api/habits/{id}", r.secured(h.HandleGet, reads))
	r.Mux.Handle("POST /api/habits", r.secured(h.HandleCreate, writes))
	r.Mux.Handle("PUT /api/habits/{id}", r.secured(h.HandleUpdate, writes))
	r.Mux.Handle("DELETE /api/habits/{id}", r.secured(h.HandleDelete, writes))
}

func (r *Router) registerCategories() {
	h := &CategoriesHandler{CategoryService: r.CategoryService}

	r.Mux.Handle("GET /api/categories", r.secured(h.HandleList, r.limiter(r.Limits.Lenient, httpx.UserOrIPKeyExtractor)))
	r.Mux.Handle("POST /api/categories", r.secured(h.HandleCreate, r.limiter(r.Limits.Moderate, httpx.UserOrIPKeyExtractor)))
}

func (r *Router) registerCheckIns() {
	h := &CheckInsHandler{CheckInService: r.CheckInService}

	r.Mux.Handle("GET /api/checkins", r.secured(h.HandleList, r.limiter(r.Limits.Lenient, httpx.UserOrIPKeyExtractor)))
	r.Mux.Handle("POST /api/checkins", r.secured(h.HandleCreate, r.limiter(r.Limits.Moderate, httpx.UserOrIPKeyExtractor)))
}

func (r *Router) registerGoals() {
	h := &GoalsHandler{GoalService: r.GoalService}
	reads := r.limiter(r.Limits.Lenient, httpx.UserOrIPKeyExtractor)
	writes := r.limiter(r.Limits.Moderate, httpx.UserOrIPKeyExtractor)

	r.Mux.Handle("GET /api/goals", r.secured(h.HandleList, reads))
	r.Mux.Handle("GET /api/goals/{id}", r.secured(h.HandleGet, reads))
	r.Mux.Handle("POST /api/goals", r.secured(h.HandleCreate, writes))
	r.Mux.Handle("PUT /api/goals/{id}", r.secured(h.HandleUpdate, writes))
	r.Mux.Handle("DELETE /api/goals/{id}", r.secured(h.HandleDelete, writes))

	r.Mux.Handle("GET /api/goals/{goalId}/steps", r.secured(h.HandleListSteps, reads))
	r.Mux.Handle("POST /api/goals/{goalId}/steps", r.secured(h.HandleAddStep, writes))
	r.Mux.Handle("PUT /api/goal-steps/{stepId}", r.secured(h.HandleUpdateStep, writes))
	r.Mux.Handle("DELETE /api/goal-steps/{stepId}", r.secured(h.HandleDeleteStep, writes))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	probes := r.limiter(r.Limits.Lenient, httpx.IPKeyExtractor)

	r.Mux.Handle("GET /livez", httpx.Chain(LivezHandler(r.startTime, r.buildVersion), probes))
	r.Mux.Handle("GET /readyz", httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store), probes))

	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.Metrics.Handler())
	}
}
