package dashboard

import (
	"slices"

	"github.com/frahmantamala/user-dashboard/internal/pagination"
	"github.com/frahmantamala/user-dashboard/internal/query"
	"github.com/frahmantamala/user-dashboard/internal/record"
)

// View is what the rendering layer needs for one page.
type View struct {
	VisibleCount int             `json:"visible_count"`
	TotalPages   int             `json:"total_pages"`
	CurrentPage  int             `json:"current_page"`
	PageSize     int             `json:"page_size"`
	PageSizes    []int           `json:"page_sizes"`
	TotalRecords int             `json:"total_records"`
	Rows         []record.Record `json:"rows"`
	Query        query.State     `json:"query"`
	Pagination   pagination.Meta `json:"pagination"`
	Error        string          `json:"error,omitempty"`
	Loaded       bool            `json:"loaded"`
}

func Derive(s State) View {
	visible := s.Visible()
	meta := pagination.NewMeta(s.Page, len(visible))
	return View{
		VisibleCount: len(visible),
		TotalPages:   meta.TotalPages,
		CurrentPage:  s.Page.CurrentPage,
		PageSize:     s.Page.PageSize,
		PageSizes:    slices.Clone(pagination.PageSizes),
		TotalRecords: s.Store.Len(),
		Rows:         pagination.Paginate(visible, s.Page),
		Query:        s.Query,
		Pagination:   meta,
		Error:        s.Error,
		Loaded:       s.Loaded,
	}
}
