package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/frahmantamala/user-dashboard/internal/directory"
	"github.com/frahmantamala/user-dashboard/internal/directory/postgres"
	"github.com/frahmantamala/user-dashboard/internal/transport"
	"github.com/frahmantamala/user-dashboard/internal/transport/rest"
	"github.com/frahmantamala/user-dashboard/pkg/logger"
	"github.com/frahmantamala/user-dashboard/pkg/metrics"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "Serve a user directory",
	Long:  `Serve the JSONPlaceholder-compatible /users resource from the configured database`,
	Run: func(cmd *cobra.Command, args []string) {
		startDirectoryServer()
	},
}

func startDirectoryServer() {
	cfg := mustLoadConfig()
	lg := logger.LoggerWrapper()

	dbConn, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	gormDB, err := initGormDB(cfg.Database, dbConn, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	var m *metrics.Metrics
	if cfg.Observability.Metrics.Enabled {
		m = metrics.New()
	}

	svc := directory.NewService(postgres.NewUserRepository(gormDB), lg, cfg.DirectoryServer.PersistWrites)
	handler := directory.NewHandler(transport.NewBaseHandler(lg), svc)
	health := rest.NewHealthHandler(rest.HealthCheck{
		Name: "database",
		Ping: dbConn.PingContext,
	})

	router := chi.NewRouter()
	rest.RegisterDirectoryRoutes(router, handler, health, m, cfg.Observability.Metrics.Path, lg)

	addr := fmt.Sprintf(":%d", cfg.DirectoryServer.Port)
	lg.Info("Starting directory server", "address", addr, "persist_writes", cfg.DirectoryServer.PersistWrites)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serve(server, lg, func(context.Context) {
		if err := dbConn.Close(); err != nil {
			lg.Error("Database close error", "error", err)
		}
	})
}
