package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/auth"
	"github.com/frahmantamala/user-dashboard/internal/transport"
)

// RequirePermissions lets the request through when the operator holds any of
// permissions.
func RequirePermissions(logger *slog.Logger, permissions ...string) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op, ok := auth.OperatorFromContext(r.Context())
			if !ok {
				base.WriteAppError(w, internal.NewUnauthorizedError("missing authorization token", internal.ErrCodeInvalidToken))
				return
			}

			if !op.HasAnyPermission(permissions) {
				logger.Warn("access denied: operator lacks required permissions",
					"operator_id", op.ID,
					"required_permissions", permissions,
					"operator_permissions", op.Permissions)
				base.WriteAppError(w, internal.ErrMissingPermission)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
