package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/travel-search/api/openapi"
	"github.com/donaldgifford/travel-search/internal/api/handlers"
	mw "github.com/donaldgifford/travel-search/internal/api/middleware"
	"github.com/donaldgifford/travel-search/internal/config"
	"github.com/donaldgifford/travel-search/internal/engine"
	"github.com/donaldgifford/travel-search/internal/telemetry"
	"github.com/donaldgifford/travel-search/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and token warm-up scheduler",
		Example: `  # Credentials from the environment or .env
  travel-search serve

  # Full server configuration from a file
  travel-search serve --server-config config.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

func runServe(ctx context.Context) error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, Version)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	s := buildStack(cfg, log)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := engine.NewScheduler(s.tokens, cfg.Schedule.TokenWarmupInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	e := newServer(ctx, cfg, s, sched, log)

	if err := sched.Warmup(ctx); err != nil {
		// Not fatal: readiness stays down until a token can be had.
		log.Warn("initial token warm-up failed", "error", err)
	}
	sched.Start()

	addr := cfg.Server.Addr()
	log.Info("starting server",
		"addr", addr,
		"environment", cfg.Amadeus.Environment,
		"min_delay", cfg.Amadeus.MinDelay,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// newServer builds the echo server with middleware, probes, metrics and
// the huma search API.
func newServer(
	ctx context.Context,
	cfg *config.Config,
	s *stack,
	warmer handlers.Warmer,
	log *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(mw.Recovery(log))
	e.Use(echo.WrapMiddleware(telemetry.Middleware("travel-search")))
	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())

	if rl := cfg.InboundRateLimit; rl.Enabled {
		limiter := mw.NewClientLimiter(rl.PerSecond, rl.Burst, mw.WithIdleTTL(rl.IdleTTL))
		limiter.StartJanitor(ctx)
		e.Use(mw.RateLimit(limiter))
	}

	health := handlers.NewHealthHandler(s.tokens)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("travel-search API", Version))
	openapi.RegisterRoutes(e, api)

	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(
		s.flights, s.hotels, s.activities,
		handlers.WithSearchTimeout(cfg.Search.Timeout),
	))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(s.limiter, s.tokens, cfg.Amadeus.Environment))
	handlers.RegisterTriggerRoutes(api, handlers.NewWarmupHandler(warmer))

	return e
}
