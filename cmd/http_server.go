package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/auth"
	"github.com/frahmantamala/user-dashboard/internal/core/events"
	"github.com/frahmantamala/user-dashboard/internal/dashboard"
	"github.com/frahmantamala/user-dashboard/internal/effects"
	"github.com/frahmantamala/user-dashboard/internal/gateway"
	"github.com/frahmantamala/user-dashboard/internal/transport"
	"github.com/frahmantamala/user-dashboard/internal/transport/rest"
	"github.com/frahmantamala/user-dashboard/pkg/logger"
	"github.com/frahmantamala/user-dashboard/pkg/metrics"
	"github.com/frahmantamala/user-dashboard/pkg/tracing"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the dashboard API in front of the configured user directory`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	Router   *chi.Mux
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Pool     *effects.Pool
	Sessions *dashboard.Manager
	Shutdown func(context.Context) error
}

func startHTTPServer() {
	cfg := mustLoadConfig()

	deps, err := initializeDependencies(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "directory", cfg.Directory.BaseURL, "auth_enabled", cfg.Security.AuthEnabled)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serve(server, deps.Logger, func(ctx context.Context) {
		deps.Sessions.Close()
		deps.Pool.Shutdown()
		if err := deps.Shutdown(ctx); err != nil {
			deps.Logger.Error("Tracer shutdown error", "error", err)
		}
	})
}

// serve runs server until SIGINT or SIGTERM, then drains it and calls
// cleanup with the remaining shutdown budget.
func serve(server *http.Server, lg *slog.Logger, cleanup func(context.Context)) {
	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		lg.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			lg.Error("Server shutdown error", "error", err)
		}
		cleanup(ctx)
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			lg.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	lg.Info("Server stopped")
}

func initializeDependencies(cfg *internal.Config) (*Dependencies, error) {
	lg := logger.LoggerWrapper()

	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Observability.Tracing.Enabled,
		ServiceName:  cfg.Observability.Tracing.ServiceName,
		Endpoint:     cfg.Observability.Tracing.Endpoint,
		SamplingRate: cfg.Observability.Tracing.SamplingRate,
		Insecure:     cfg.Observability.Tracing.Insecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Observability.Metrics.Enabled {
		m = metrics.New()
	}

	client := gateway.NewClient(gateway.Config{
		BaseURL: cfg.Directory.BaseURL,
		APIKey:  cfg.Directory.APIKey,
		Timeout: cfg.Directory.Timeout,
	}, lg, m)

	pool := effects.NewPool(effects.Config{
		MaxWorkers:   cfg.Directory.MaxWorkers,
		JobQueueSize: cfg.Directory.JobQueueSize,
	}, lg, m)

	eventBus := events.NewEventBus(lg)
	dashboard.NewAuditHandler(lg).RegisterEventHandlers(eventBus)

	sessions := dashboard.NewManager(client, pool, eventBus, lg, m)

	base := transport.NewBaseHandler(lg)
	handlers := rest.Handlers{
		Dashboard: dashboard.NewHandler(base, sessions),
		Health: rest.NewHealthHandler(rest.HealthCheck{
			Name: "directory",
			Ping: client.Ping,
		}),
	}

	if cfg.Security.AuthEnabled {
		operators := auth.NewOperatorStore(cfg.Security.AllOperators())
		if operators.Len() == 0 {
			lg.Warn("auth is enabled but no operators are configured")
		}
		tokens := auth.NewJWTTokenGenerator(
			cfg.Security.JWTAccessSecret,
			cfg.Security.JWTRefreshSecret,
			cfg.Security.AccessTokenDuration,
			cfg.Security.RefreshTokenDuration,
		)
		handlers.Auth = auth.NewHandler(base, auth.NewService(operators, tokens, cfg.Security.BCryptCost))
	} else {
		lg.Warn("auth is disabled, every request acts as the anonymous operator")
	}

	serviceName := ""
	if cfg.Observability.Tracing.Enabled {
		serviceName = cfg.Observability.Tracing.ServiceName
	}

	router := chi.NewRouter()
	err = rest.RegisterAllRoutes(router, handlers, rest.Options{
		AuthEnabled:    cfg.Security.AuthEnabled,
		AllowedOrigins: cfg.Server.Origins(),
		Metrics:        m,
		MetricsPath:    cfg.Observability.Metrics.Path,
		ServiceName:    serviceName,
	}, lg)
	if err != nil {
		pool.Shutdown()
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return &Dependencies{
		Config:   cfg,
		Router:   router,
		Logger:   lg,
		Metrics:  m,
		Pool:     pool,
		Sessions: sessions,
		Shutdown: shutdownTracing,
	}, nil
}
