package dashboard

import (
	"net/http"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/core/common/validation"
	"github.com/frahmantamala/user-dashboard/internal/pagination"
	"github.com/frahmantamala/user-dashboard/internal/query"
	"github.com/frahmantamala/user-dashboard/internal/record"
	"github.com/frahmantamala/user-dashboard/internal/transport"
	"github.com/frahmantamala/user-dashboard/pkg/logger"
)

// SessionProvider hands out the session of the calling operator.
type SessionProvider interface {
	Session(operatorID string) (*Session, error)
	End(operatorID string)
}

type Handler struct {
	*transport.BaseHandler
	Sessions SessionProvider
}

func NewHandler(baseHandler *transport.BaseHandler, sessions SessionProvider) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Sessions:    sessions,
	}
}

// session resolves the operator's session and waits for its first load so
// every response reflects fetched data.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	operatorID := internal.OperatorIDFromContext(r.Context())
	if operatorID == "" {
		h.WriteAppError(w, internal.NewUnauthorizedError("unauthorized", internal.ErrCodeInvalidToken))
		return nil, false
	}
	s, err := h.Sessions.Session(operatorID)
	if err != nil {
		h.HandleServiceError(w, err)
		return nil, false
	}
	if err := s.WaitStarted(r.Context()); err != nil {
		h.HandleServiceError(w, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, s *Session, e Event) {
	v, err := s.Dispatch(r.Context(), e)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	logger.From(r.Context()).Debug("dashboard event applied", "event", e.Name(), "visible", v.VisibleCount, "page", v.CurrentPage)
	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, s.View())
}

func (h *Handler) SetSearch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SearchRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}
	if req.Search == nil {
		h.WriteAppError(w, internal.NewValidationFieldError("search", "search is required", internal.ErrCodeRequired))
		return
	}
	h.dispatch(w, r, s, SearchChanged{Term: *req.Search})
}

func (h *Handler) SetFilters(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req map[string]string
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}

	patch := make(map[record.Field]string, len(req))
	var invalid []internal.ValidationError
	for name, pattern := range req {
		field, err := query.ParseFilterField(name)
		if err != nil {
			invalid = append(invalid, internal.ValidationError{
				Field:   name,
				Message: err.Error(),
				Code:    string(internal.ErrCodeInvalidQuery),
			})
			continue
		}
		patch[field] = pattern
	}
	if len(invalid) > 0 {
		h.WriteAppError(w, internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: invalid}))
		return
	}
	h.dispatch(w, r, s, FiltersChanged{Patch: patch})
}

func (h *Handler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.dispatch(w, r, s, FiltersCleared{})
}

func (h *Handler) Sort(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SortRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}
	field, err := query.ParseSortField(req.Field)
	if err != nil {
		h.WriteAppError(w, internal.NewValidationFieldError("field", err.Error(), internal.ErrCodeInvalidQuery))
		return
	}
	if req.Order == "" {
		h.dispatch(w, r, s, SortRequested{Field: field})
		return
	}
	order, err := query.ParseOrder(req.Order)
	if err != nil {
		h.WriteAppError(w, internal.NewValidationFieldError("order", err.Error(), internal.ErrCodeInvalidQuery))
		return
	}
	h.dispatch(w, r, s, SortSet{Field: field, Order: order})
}

func (h *Handler) SetPageSize(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req PageSizeRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}
	v := validation.NewValidator()
	v.Field("page_size", req.PageSize).Labeled("Page size").OneOf(pagination.PageSizes, internal.ErrCodeInvalidPageSize)
	if verr := v.ValidateAs(internal.ErrInvalidPageSize.Message, internal.ErrCodeInvalidPageSize); verr != nil {
		h.WriteAppError(w, verr)
		return
	}
	h.dispatch(w, r, s, PageSizeChanged{Size: req.PageSize})
}

func (h *Handler) SetPage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req PageRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}
	switch {
	case req.Direction == "previous":
		h.dispatch(w, r, s, PreviousPage{})
	case req.Direction == "next":
		h.dispatch(w, r, s, NextPage{})
	case req.Direction != "":
		h.WriteAppError(w, internal.NewValidationFieldError("direction", "direction must be previous or next", internal.ErrCodeInvalidQuery))
	case req.Page == nil || *req.Page < 1:
		h.WriteAppError(w, internal.NewValidationFieldError("page", "page must be a positive integer", internal.ErrCodeInvalidQuery))
	default:
		h.dispatch(w, r, s, PageChanged{Page: *req.Page})
	}
}

func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	v, err := s.Reload(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) DismissError(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.dispatch(w, r, s, ErrorDismissed{})
}

// EndSession drops the operator's dashboard state. The next request starts
// a fresh session with a new load.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	operatorID := internal.OperatorIDFromContext(r.Context())
	if operatorID == "" {
		h.WriteAppError(w, internal.NewUnauthorizedError("unauthorized", internal.ErrCodeInvalidToken))
		return
	}
	h.Sessions.End(operatorID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id, perr := h.PathID(r)
	if perr != nil {
		h.WriteAppError(w, perr)
		return
	}
	rec, err := s.Get(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, UserResponse{User: rec})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req UserRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}
	rec, v, err := s.Add(r.Context(), req.Draft())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	logger.From(r.Context()).Info("user added", "user_id", rec.ID)
	h.WriteJSON(w, http.StatusCreated, MutationResponse{User: &rec, View: v})
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id, perr := h.PathID(r)
	if perr != nil {
		h.WriteAppError(w, perr)
		return
	}
	var req UserRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteAppError(w, err)
		return
	}
	rec, v, err := s.Edit(r.Context(), id, req.Draft())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	logger.From(r.Context()).Info("user updated", "user_id", id)
	h.WriteJSON(w, http.StatusOK, MutationResponse{User: &rec, View: v})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id, perr := h.PathID(r)
	if perr != nil {
		h.WriteAppError(w, perr)
		return
	}
	v, err := s.Delete(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	logger.From(r.Context()).Info("user deleted", "user_id", id)
	h.WriteJSON(w, http.StatusOK, MutationResponse{View: v})
}
