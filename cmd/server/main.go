package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/caixinha/caixinha/internal/adapter/http"
	"github.com/caixinha/caixinha/internal/adapter/http/handler"
	postgresRepo "github.com/caixinha/caixinha/internal/adapter/repository/postgres"
	redisRepo "github.com/caixinha/caixinha/internal/adapter/repository/redis"
	"github.com/caixinha/caixinha/internal/infrastructure/config"
	"github.com/caixinha/caixinha/internal/infrastructure/logger"
	"github.com/caixinha/caixinha/internal/infrastructure/metrics"
	"github.com/caixinha/caixinha/internal/infrastructure/postgres"
	"github.com/caixinha/caixinha/internal/infrastructure/redis"
	"github.com/caixinha/caixinha/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:            cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis. The service degrades without it: no forecast
	// cache, no idempotent retries.
	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
	)
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching and idempotency disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		log.Info().Msg("connected to redis")
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	cardRepo := postgresRepo.NewCardRepository(pool)
	householdRepo := postgresRepo.NewHouseholdRepository(pool)
	goalRepo := postgresRepo.NewGoalRepository(pool)
	shoppingRepo := postgresRepo.NewShoppingRepository(pool)
	investmentRepo := postgresRepo.NewInvestmentRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	appMetrics := metrics.New()

	// Initialize use cases
	transactionUC := usecase.NewTransactionUseCase(txManager, transactionRepo, accountRepo, cardRepo, idGen).
		WithMetrics(appMetrics)
	accountUC := usecase.NewAccountUseCase(accountRepo, transactionUC, idGen)
	cardUC := usecase.NewCardUseCase(cardRepo, idGen)
	reconciliationUC := usecase.NewReconciliationUseCase(txManager, transactionRepo, accountRepo, cardRepo, retrier).
		WithMetrics(appMetrics)
	forecastUC := usecase.NewForecastUseCase(transactionRepo, accountRepo, investmentRepo)
	scopeUC := usecase.NewScopeUseCase(householdRepo)
	goalUC := usecase.NewGoalUseCase(txManager, goalRepo, transactionUC, idGen).
		WithMetrics(appMetrics)
	shoppingUC := usecase.NewShoppingUseCase(txManager, shoppingRepo, transactionUC).
		WithMetrics(appMetrics)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler:    handler.NewTransactionHandler(transactionUC),
		AccountHandler:        handler.NewAccountHandler(accountUC),
		CardHandler:           handler.NewCardHandler(cardUC),
		ForecastHandler:       handler.NewForecastHandler(forecastUC, cache).WithCacheTTL(cfg.ForecastCacheTTL).WithMetrics(appMetrics),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		GoalHandler:           handler.NewGoalHandler(goalUC),
		ShoppingHandler:       handler.NewShoppingHandler(shoppingUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		ScopeResolver:         scopeUC,
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		Logger:                appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
