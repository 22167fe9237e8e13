package directory

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/core/datamodel/directoryuser"
	"github.com/frahmantamala/user-dashboard/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]directoryuser.RawUser, error)
	Get(ctx context.Context, id int64) (directoryuser.RawUser, error)
	Create(ctx context.Context, u directoryuser.RawUser) (directoryuser.RawUser, error)
	Update(ctx context.Context, id int64, u directoryuser.RawUser) (directoryuser.RawUser, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, perr := h.PathID(r)
	if perr != nil {
		h.WriteAppError(w, perr)
		return
	}
	user, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.decodeUser(w, r)
	if !ok {
		return
	}
	created, err := h.Service.Create(r.Context(), user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, perr := h.PathID(r)
	if perr != nil {
		h.WriteAppError(w, perr)
		return
	}
	user, ok := h.decodeUser(w, r)
	if !ok {
		return
	}
	updated, err := h.Service.Update(r.Context(), id, user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, perr := h.PathID(r)
	if perr != nil {
		h.WriteAppError(w, perr)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, struct{}{})
}

// decodeUser accepts unknown fields, like the public directory does.
func (h *Handler) decodeUser(w http.ResponseWriter, r *http.Request) (directoryuser.RawUser, bool) {
	var user directoryuser.RawUser
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		h.WriteAppError(w, apperrors.NewValidationError(msg, apperrors.ErrCodeInvalidBody).WithCause(err))
		return directoryuser.RawUser{}, false
	}
	return user, true
}
