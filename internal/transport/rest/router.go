package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/user-dashboard/api"
	"github.com/frahmantamala/user-dashboard/internal/auth"
	"github.com/frahmantamala/user-dashboard/internal/dashboard"
	"github.com/frahmantamala/user-dashboard/internal/transport/middleware"
	"github.com/frahmantamala/user-dashboard/internal/transport/swagger"
	"github.com/frahmantamala/user-dashboard/pkg/metrics"
	"github.com/go-chi/chi"
)

const APIPrefix = "/api/v1"

type Handlers struct {
	Auth      *auth.Handler
	Dashboard *dashboard.Handler
	Health    *HealthHandler
}

type Options struct {
	// AuthEnabled false serves every request as auth.Anonymous.
	AuthEnabled    bool
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	MetricsPath    string
	ServiceName    string
}

// RegisterAllRoutes mounts the dashboard API under APIPrefix plus the
// OpenAPI document, swagger UI and metrics at the root.
func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options, logger *slog.Logger) error {
	validateRequest, err := middleware.OpenAPIValidator(api.Spec, APIPrefix, logger)
	if err != nil {
		return err
	}

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger, opts.MetricsPath, "/api/v1/ping"))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.ServiceName != "" {
		router.Use(middleware.Tracing(opts.ServiceName))
	}
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
		router.Handle(opts.MetricsPath, opts.Metrics.Handler())
	}

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Spec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route(APIPrefix, func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/ping", h.Health.Ping)

		r.Group(func(vr chi.Router) {
			vr.Use(validateRequest)

			if h.Auth != nil {
				vr.Route("/auth", func(sr chi.Router) {
					sr.Post("/login", h.Auth.Login)
					sr.Post("/refresh", h.Auth.RefreshToken)
				})
			}

			vr.Group(func(pr chi.Router) {
				if opts.AuthEnabled {
					pr.Use(h.Auth.AuthMiddleware)
				} else {
					pr.Use(auth.AnonymousMiddleware)
				}

				if h.Auth != nil {
					pr.Get("/auth/me", h.Auth.Me)
				}

				canView := middleware.RequirePermissions(logger, auth.PermissionViewUsers, auth.PermissionManageUsers)
				canManage := middleware.RequirePermissions(logger, auth.PermissionManageUsers)

				pr.Route("/dashboard", func(dr chi.Router) {
					dr.Use(canView)
					dr.Get("/", h.Dashboard.GetView)
					dr.Put("/search", h.Dashboard.SetSearch)
					dr.Put("/filters", h.Dashboard.SetFilters)
					dr.Delete("/filters", h.Dashboard.ClearFilters)
					dr.Post("/sort", h.Dashboard.Sort)
					dr.Put("/page-size", h.Dashboard.SetPageSize)
					dr.Put("/page", h.Dashboard.SetPage)
					dr.Post("/reload", h.Dashboard.Reload)
					dr.Delete("/error", h.Dashboard.DismissError)
					dr.Delete("/session", h.Dashboard.EndSession)
				})

				pr.Route("/users", func(ur chi.Router) {
					ur.With(canView).Get("/{id}", h.Dashboard.GetUser)

					ur.Group(func(mr chi.Router) {
						mr.Use(canManage)
						mr.Post("/", h.Dashboard.CreateUser)
						mr.Put("/{id}", h.Dashboard.UpdateUser)
						mr.Delete("/{id}", h.Dashboard.DeleteUser)
					})
				})
			})
		})
	})

	return nil
}
