// Command api serves the campground booking REST API. It only wires
// configuration, storage and services together; behaviour lives in internal/.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" driver for the migration connection
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/campground-booking/internal/config"
	"github.com/pkordes/campground-booking/internal/handler"
	"github.com/pkordes/campground-booking/internal/middleware"
	"github.com/pkordes/campground-booking/internal/obs"
	"github.com/pkordes/campground-booking/internal/repo"
	"github.com/pkordes/campground-booking/internal/service"
	"github.com/pkordes/campground-booking/migrations"
)

const drainTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The configured logger needs cfg, so fall back to the default one.
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := obs.NewLogger(os.Stdout, cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if cfg.MigrateOnStart {
		if err := migrate(ctx, cfg.DatabaseURL, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database pool: %w", err)
	}
	defer pool.Close()

	// pgxpool connects lazily; fail now rather than on the first booking.
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	logger.Info("database ready")

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, logger, pool),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second, // CSV exports stream every booking
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpSrv.Addr, "env", cfg.AppEnv)
		serveErr <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("signal received, draining", "timeout", drainTimeout)
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// newRouter builds the service graph over pool and mounts it behind the
// global middleware stack. RealIP precedes the rate limiter, which keys on
// RemoteAddr.
func newRouter(cfg config.Config, logger *slog.Logger, pool *pgxpool.Pool) http.Handler {
	campgrounds := repo.NewCampgroundRepo(pool)
	bookings := repo.NewBookingRepo(pool)
	promotions := repo.NewPromotionRepo(pool)

	api := handler.NewServer(handler.Services{
		Campgrounds: service.NewCampgroundService(campgrounds),
		Bookings:    service.NewBookingService(bookings, service.NewPricingEngine(campgrounds)),
		Reviews:     service.NewReviewService(campgrounds, repo.NewReviewRepo(pool)),
		Promotions:  service.NewPromotionService(promotions),
		Applier:     service.NewPromotionApplier(promotions, time.Now, logger),
		Export:      service.NewExportService(bookings, campgrounds),
	}, logger)

	r := chi.NewRouter()
	r.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		middleware.NewSlogLogger(logger),
		middleware.NewMetrics(),
		chimiddleware.Recoverer,
		middleware.NewCORSHandler(cfg.CORSOrigins),
		middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow).Handler,
		middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes),
	)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", api.Routes(middleware.Authenticate([]byte(cfg.JWTSecret))))
	return r
}

// migrate runs pending migrations over a short-lived database/sql handle,
// since goose cannot drive a pgxpool.
func migrate(ctx context.Context, databaseURL string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "versions", applied)
	return nil
}
