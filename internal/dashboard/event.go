package dashboard

import (
	"github.com/frahmantamala/user-dashboard/internal/query"
	"github.com/frahmantamala/user-dashboard/internal/record"
)

// Event is an input to Reduce: an operator intent or the result of a
// directory call.
type Event interface {
	Name() string
}

type SearchChanged struct {
	Term string
}

// FiltersChanged merges Patch into the active filters.
type FiltersChanged struct {
	Patch map[record.Field]string
}

type FiltersCleared struct{}

// SortRequested is a column header click.
type SortRequested struct {
	Field record.Field
}

type SortSet struct {
	Field record.Field
	Order query.Order
}

type PageSizeChanged struct {
	Size int
}

type PageChanged struct {
	Page int
}

type PreviousPage struct{}

type NextPage struct{}

type ErrorDismissed struct{}

// LoadStarted marks Seq as the only list load whose result may be applied.
type LoadStarted struct {
	Seq uint64
}

type UsersLoaded struct {
	Seq     uint64
	Records []record.Record
}

type LoadFailed struct {
	Seq     uint64
	Message string
}

// MutationStarted marks Seq as the newest edit or delete issued for ID.
type MutationStarted struct {
	ID  int64
	Seq uint64
}

type UserAdded struct {
	Record record.Record
}

type UserUpdated struct {
	Record record.Record
	Seq    uint64
}

type UserDeleted struct {
	ID  int64
	Seq uint64
}

// MutationFailed reports a rejected add (ID 0), edit or delete.
type MutationFailed struct {
	ID      int64
	Seq     uint64
	Message string
}

func (SearchChanged) Name() string   { return "SearchChanged" }
func (FiltersChanged) Name() string  { return "FiltersChanged" }
func (FiltersCleared) Name() string  { return "FiltersCleared" }
func (SortRequested) Name() string   { return "SortRequested" }
func (SortSet) Name() string         { return "SortSet" }
func (PageSizeChanged) Name() string { return "PageSizeChanged" }
func (PageChanged) Name() string     { return "PageChanged" }
func (PreviousPage) Name() string    { return "PreviousPage" }
func (NextPage) Name() string        { return "NextPage" }
func (ErrorDismissed) Name() string  { return "ErrorDismissed" }
func (LoadStarted) Name() string     { return "LoadStarted" }
func (UsersLoaded) Name() string     { return "UsersLoaded" }
func (LoadFailed) Name() string      { return "LoadFailed" }
func (MutationStarted) Name() string { return "MutationStarted" }
func (UserAdded) Name() string       { return "UserAdded" }
func (UserUpdated) Name() string     { return "UserUpdated" }
func (UserDeleted) Name() string     { return "UserDeleted" }
func (MutationFailed) Name() string  { return "MutationFailed" }
