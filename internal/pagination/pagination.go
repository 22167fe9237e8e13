package pagination

import (
	"errors"
	"fmt"
	"slices"
)

const DefaultPageSize = 10

// PageSizes are the page sizes an operator can choose from.
var PageSizes = []int{10, 25, 50, 100}

var ErrInvalidPageSize = errors.New("invalid page size")

type State struct {
	PageSize    int `json:"page_size"`
	CurrentPage int `json:"current_page"`
}

func Default() State {
	return State{PageSize: DefaultPageSize, CurrentPage: 1}
}

func ParsePageSize(size int) (int, error) {
	if !slices.Contains(PageSizes, size) {
		return 0, fmt.Errorf("%w: %d (allowed %v)", ErrInvalidPageSize, size, PageSizes)
	}
	return size, nil
}

// TotalPages is never less than one, even for an empty list.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Offset is the index of the first item on the current page.
func (s State) Offset() int {
	if s.CurrentPage < 1 {
		return 0
	}
	return (s.CurrentPage - 1) * s.PageSize
}

// Clamp keeps CurrentPage within [1, TotalPages(total, PageSize)].
func Clamp(s State, total int) State {
	last := TotalPages(total, s.PageSize)
	switch {
	case s.CurrentPage < 1:
		s.CurrentPage = 1
	case s.CurrentPage > last:
		s.CurrentPage = last
	}
	return s
}

// Paginate returns a copy of the items on the current page. A page outside
// the list yields an empty slice.
func Paginate[T any](items []T, s State) []T {
	if s.PageSize <= 0 || s.CurrentPage < 1 {
		return []T{}
	}
	start := s.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+s.PageSize, len(items))
	return slices.Clone(items[start:end])
}

type Meta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

func NewMeta(s State, total int) Meta {
	pages := TotalPages(total, s.PageSize)
	return Meta{
		CurrentPage: s.CurrentPage,
		PageSize:    s.PageSize,
		TotalItems:  total,
		TotalPages:  pages,
		HasPrevious: s.CurrentPage > 1,
		HasNext:     s.CurrentPage < pages,
	}
}
