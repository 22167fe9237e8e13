package query

import (
	"errors"
	"fmt"

	"github.com/frahmantamala/user-dashboard/internal/record"
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrNotFilterable = errors.New("field is not filterable")
	ErrUnknownOrder  = errors.New("unknown sort order")
)

func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case Asc, Desc:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

func (o Order) Flip() Order {
	if o == Asc {
		return Desc
	}
	return Asc
}

// ParseSortField accepts any record column, including id.
func ParseSortField(s string) (record.Field, error) {
	f, ok := record.ParseField(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// ParseFilterField accepts only the string columns.
func ParseFilterField(s string) (record.Field, error) {
	f, ok := record.ParseField(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	if !f.IsText() {
		return "", fmt.Errorf("%w: %q", ErrNotFilterable, s)
	}
	return f, nil
}

// Filters holds one substring pattern per string column. An empty pattern
// places no constraint.
type Filters struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func (f Filters) Get(field record.Field) string {
	switch field {
	case record.FieldFirstName:
		return f.FirstName
	case record.FieldLastName:
		return f.LastName
	case record.FieldEmail:
		return f.Email
	case record.FieldDepartment:
		return f.Department
	}
	return ""
}

func (f Filters) set(field record.Field, pattern string) Filters {
	switch field {
	case record.FieldFirstName:
		f.FirstName = pattern
	case record.FieldLastName:
		f.LastName = pattern
	case record.FieldEmail:
		f.Email = pattern
	case record.FieldDepartment:
		f.Department = pattern
	}
	return f
}

func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// State is the operator's current search, filters and sort. It is a value
// type; the setters return a modified copy.
type State struct {
	Search    string       `json:"search"`
	Filters   Filters      `json:"filters"`
	SortField record.Field `json:"sortField"`
	SortOrder Order        `json:"sortOrder"`
}

func Default() State {
	return State{SortField: record.FieldID, SortOrder: Asc}
}

func (s State) WithSearch(term string) State {
	s.Search = term
	return s
}

func (s State) WithFilter(field record.Field, pattern string) (State, error) {
	if !field.IsText() {
		return s, fmt.Errorf("%w: %q", ErrNotFilterable, field)
	}
	s.Filters = s.Filters.set(field, pattern)
	return s, nil
}

// WithFilters merges every key of patch. Nothing is applied if any key is
// not a string column.
func (s State) WithFilters(patch map[record.Field]string) (State, error) {
	for field := range patch {
		if !field.IsText() {
			return s, fmt.Errorf("%w: %q", ErrNotFilterable, field)
		}
	}
	for field, pattern := range patch {
		s.Filters = s.Filters.set(field, pattern)
	}
	return s, nil
}

func (s State) WithoutFilters() State {
	s.Filters = Filters{}
	return s
}

func (s State) WithSort(field record.Field, order Order) State {
	s.SortField = field
	s.SortOrder = order
	return s
}

// ToggleSort is a column header click: the active ascending column flips to
// descending, anything else sorts ascending by field.
func (s State) ToggleSort(field record.Field) State {
	if s.SortField == field && s.SortOrder == Asc {
		return s.WithSort(field, Desc)
	}
	return s.WithSort(field, Asc)
}

func (s State) Equal(other State) bool {
	return s == other
}
