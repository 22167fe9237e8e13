package rest

import (
	"log/slog"

	"github.com/frahmantamala/user-dashboard/internal/directory"
	"github.com/frahmantamala/user-dashboard/internal/transport/middleware"
	"github.com/frahmantamala/user-dashboard/pkg/metrics"
	"github.com/go-chi/chi"
)

// RegisterDirectoryRoutes mounts the JSONPlaceholder-compatible /users
// resource served by the directory command.
func RegisterDirectoryRoutes(router *chi.Mux, h *directory.Handler, health *HealthHandler, m *metrics.Metrics, metricsPath string, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger, metricsPath, "/ping"))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORS([]string{"*"}))
	router.Use(middleware.Tracing("directory"))
	if m != nil {
		router.Use(middleware.Metrics(m))
		router.Handle(metricsPath, m.Handler())
	}

	router.Get("/health", health.Health)
	router.Get("/ping", health.Ping)

	router.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})
}
