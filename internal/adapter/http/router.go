package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/caixinha/caixinha/internal/adapter/http/handler"
	"github.com/caixinha/caixinha/internal/adapter/http/middleware"
	"github.com/caixinha/caixinha/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler    *handler.TransactionHandler
	AccountHandler        *handler.AccountHandler
	CardHandler           *handler.CardHandler
	ForecastHandler       *handler.ForecastHandler
	ReconciliationHandler *handler.ReconciliationHandler
	GoalHandler           *handler.GoalHandler
	ShoppingHandler       *handler.ShoppingHandler
	HealthHandler         *handler.HealthHandler
	ScopeResolver         middleware.ScopeResolver
	IdempotencyStore      usecase.IdempotencyStore
	IdempotencyTTL        time.Duration
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.NewScopeMiddleware(cfg.ScopeResolver).Wrap)

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).WithTTL(cfg.IdempotencyTTL).Wrap)
		}

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Patch("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/cumulative-balance", cfg.ForecastHandler.AccountBalance)
		})

		// Cards
		r.Route("/cards", func(r chi.Router) {
			r.Post("/", cfg.CardHandler.Create)
			r.Get("/", cfg.CardHandler.List)
			r.Get("/{id}", cfg.CardHandler.Get)
		})

		// Forecast and balances
		r.Route("/forecast", func(r chi.Router) {
			r.Get("/", cfg.ForecastHandler.Forecast)
			r.Get("/balance", cfg.ForecastHandler.CumulativeBalance)
			r.Get("/investments", cfg.ForecastHandler.Investments)
		})

		// Reconciliation
		r.Post("/reconciliation", cfg.ReconciliationHandler.Run)
		r.Get("/reconciliation/report", cfg.ReconciliationHandler.Report)

		// Goals
		r.Route("/goals", func(r chi.Router) {
			r.Post("/{id}/movements", cfg.GoalHandler.Move)
			r.Get("/{id}/movements", cfg.GoalHandler.ListMovements)
		})

		// Shopping lists
		r.Post("/shopping-lists/{id}/complete", cfg.ShoppingHandler.Complete)
	})

	return r
}
