package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streetbite/internal/config"
	"streetbite/internal/events"
	"streetbite/internal/handler"
	"streetbite/internal/health"
	"streetbite/internal/jobs"
	"streetbite/internal/logging"
	"streetbite/internal/metrics"
	"streetbite/internal/repository"
	"streetbite/internal/service"
	"streetbite/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Env, cfg.SlogLevel(), os.Stdout)
	slog.SetDefault(logger)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	pool, err := config.ConnectDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, pool, logger); err != nil {
		return err
	}

	metrics.Register(prometheus.DefaultRegisterer)

	// --- Auth events ---
	authEvents := events.NewBus[events.AuthEvent](logger)
	defer metrics.CountAuthEvents(authEvents)()
	defer authEvents.Subscribe(func(ctx context.Context, e events.AuthEvent) {
		logger.InfoContext(ctx, "auth event", "kind", e.Kind, "user_id", e.UserID, "role", e.Role)
	})()

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiration())
	hasher := utils.NewPasswordHasher(cfg.BcryptCost)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(pool)
	standRepo := repository.NewStandRepository(pool)
	menuItemRepo := repository.NewMenuItemRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, hasher, jwtUtil,
		service.WithInitialAdminEmail(cfg.InitialAdminEmail),
		service.WithEvents(authEvents),
		service.WithLogger(logger),
	)
	userService := service.NewUserService(userRepo)
	standService := service.NewStandService(standRepo, loc, time.Now)
	menuItemService := service.NewMenuItemService(menuItemRepo, standRepo)
	reviewService := service.NewReviewService(reviewRepo, standRepo)

	// --- Background jobs ---
	refresher := jobs.NewOpenStandsRefresher(standService, metrics.StandsOpenNow, logger)
	if err := refresher.Start(ctx, cfg.OpenStandsRefresh); err != nil {
		return err
	}
	defer refresher.Stop()

	// --- Setup Gin Router ---
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)
	router := handler.NewRouter(logger, jwtUtil, cfg.CORSAllowedOrigins, handler.Handlers{
		Auth:     handler.NewAuthHandler(authService, logger),
		User:     handler.NewUserHandler(userService, logger),
		Stand:    handler.NewStandHandler(standService, logger),
		MenuItem: handler.NewMenuItemHandler(menuItemService, logger),
		Review:   handler.NewReviewHandler(reviewService, logger),
		Health:   handler.NewHealthHandler(checker),
	})

	// --- Start Servers ---
	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	metricsSrv := metrics.NewServer(net.JoinHostPort("", cfg.MetricsPort))

	logger.Info("server starting", "port", cfg.Port, "metrics_port", cfg.MetricsPort, "env", cfg.Env, "timezone", loc.String())
	return serve(ctx, logger, 10*time.Second, srv, metricsSrv)
}

// serve runs every server until ctx is done or one of them fails, then
// shuts them all down. The first serve failure is returned.
func serve(ctx context.Context, logger *slog.Logger, shutdownTimeout time.Duration, servers ...*http.Server) error {
	errCh := make(chan error, len(servers))
	for _, s := range servers {
		go func() {
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serve %s: %w", s.Addr, err)
			}
		}()
	}

	// --- Graceful Shutdown ---
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errCh:
		logger.Error("server failed", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "addr", s.Addr, "error", err)
		}
	}

	logger.Info("server exited")
	return serveErr
}
