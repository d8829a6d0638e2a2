// Package app wires configuration, storage, services, and the HTTP server
// into a runnable marketplace backend.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusmarket/marketplace/internal/config"
	handler "github.com/campusmarket/marketplace/internal/handler/http"
	"github.com/campusmarket/marketplace/internal/repository/postgres"
	"github.com/campusmarket/marketplace/internal/routing"
	"github.com/campusmarket/marketplace/internal/service"
	"github.com/campusmarket/marketplace/migrations"
	"github.com/campusmarket/marketplace/pkg/database"
	"github.com/campusmarket/marketplace/pkg/health"
	"github.com/campusmarket/marketplace/pkg/httpclient"
	"github.com/campusmarket/marketplace/pkg/middleware"
)

// App is the assembled marketplace service.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	server *http.Server
}

// New builds the application: connects to PostgreSQL, runs migrations, and
// wires repositories, services, and handlers.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	database.RegisterPoolMetrics(pool, "marketplace")

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	routingHTTP := httpclient.New(httpclient.Config{
		Timeout:         cfg.RoutingTimeout,
		MaxRetries:      2,
		RetryWaitMin:    500 * time.Millisecond,
		RetryWaitMax:    3 * time.Second,
		MaxConnsPerHost: 100,
	})
	breakerCfg := httpclient.DefaultCircuitBreakerConfig("routing")
	breakerCfg.FailureRatio = cfg.BreakerFailureRatio
	breakerCfg.MinRequests = cfg.BreakerMinRequests
	breakerCfg.Timeout = cfg.BreakerTimeout
	routingClient := routing.NewClient(
		httpclient.NewCircuitBreakerClient(routingHTTP, breakerCfg, logger),
		routing.Config{
			BaseURL: cfg.RoutingBaseURL,
			APIKey:  cfg.RoutingAPIKey,
		},
	)

	catalogSvc := service.NewCatalogService(productRepo, logger)
	checkoutSvc := service.NewCheckoutService(productRepo, orderRepo, logger)
	estimateSvc := service.NewEstimateService(routingClient, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	router := handler.NewRouter(handler.RouterDeps{
		Logger:   logger,
		Health:   healthHandler,
		Catalog:  handler.NewCatalogHandler(catalogSvc, logger),
		Checkout: handler.NewCheckoutHandler(checkoutSvc, logger),
		Estimate: handler.NewEstimateHandler(estimateSvc, logger),
		CORS:     middleware.DefaultCORSConfig(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		server: server,
	}, nil
}

// Run starts the HTTP server and blocks until it stops.
func (a *App) Run() error {
	a.logger.Info("starting http server",
		slog.Int("port", a.cfg.Port),
		slog.String("environment", a.cfg.Environment),
	)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the database pool.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(ctx, a.cfg.ShutdownGracePeriod)
	defer cancel()

	err := a.server.Shutdown(ctx)
	a.pool.Close()
	if err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
