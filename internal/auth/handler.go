package auth

import (
	"net/http"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/transport"
	"github.com/frahmantamala/user-dashboard/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	logger.From(r.Context()).Info("operator signed in", "email", dto.Email)
	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Me returns the operator attached to the request.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	op, ok := OperatorFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.NewUnauthorizedError("missing authorization token", internal.ErrCodeInvalidToken))
		return
	}
	h.WriteJSON(w, http.StatusOK, op)
}

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteAppError(w, internal.NewUnauthorizedError("missing authorization token", internal.ErrCodeInvalidToken))
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		op, err := h.Service.GetOperator(claims.OperatorID)
		if err != nil {
			h.Logger.Warn("auth middleware: operator no longer configured", "operator_id", claims.OperatorID)
			h.WriteAppError(w, internal.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithOperator(r.Context(), op)))
	})
}

// AnonymousMiddleware attaches the Anonymous operator to every request.
func AnonymousMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op := Anonymous
		next.ServeHTTP(w, r.WithContext(ContextWithOperator(r.Context(), &op)))
	})
}
