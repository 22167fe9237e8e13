package dashboard

import (
	"github.com/frahmantamala/user-dashboard/internal/pagination"
	"github.com/frahmantamala/user-dashboard/internal/query"
	"github.com/frahmantamala/user-dashboard/internal/record"
)

// Reduce applies e to s. It is pure: no I/O, and s is left untouched.
// Events that are invalid or stale return s unchanged.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case SearchChanged:
		return s.withQuery(s.Query.WithSearch(e.Term))

	case FiltersChanged:
		q, err := s.Query.WithFilters(e.Patch)
		if err != nil {
			return s
		}
		return s.withQuery(q)

	case FiltersCleared:
		return s.withQuery(s.Query.WithoutFilters())

	case SortRequested:
		if _, ok := record.ParseField(string(e.Field)); !ok {
			return s
		}
		return s.withQuery(s.Query.ToggleSort(e.Field))

	case SortSet:
		if _, ok := record.ParseField(string(e.Field)); !ok {
			return s
		}
		return s.withQuery(s.Query.WithSort(e.Field, e.Order))

	case PageSizeChanged:
		size, err := pagination.ParsePageSize(e.Size)
		if err != nil {
			return s
		}
		s.Page.PageSize = size
		return s.clamped()

	case PageChanged:
		s.Page.CurrentPage = e.Page
		return s.clamped()

	case PreviousPage:
		s.Page.CurrentPage--
		return s.clamped()

	case NextPage:
		s.Page.CurrentPage++
		return s.clamped()

	case ErrorDismissed:
		s.Error = ""
		return s

	case LoadStarted:
		s.loadSeq = e.Seq
		return s

	case UsersLoaded:
		if e.Seq != s.loadSeq {
			return s
		}
		s.Store = record.NewStore(e.Records)
		s.Loaded = true
		s.Error = ""
		return s.clamped()

	case LoadFailed:
		if e.Seq != s.loadSeq {
			return s
		}
		s.Error = e.Message
		return s

	case MutationStarted:
		return s.withIssued(e.ID, e.Seq)

	case UserAdded:
		s.Store, _ = s.Store.Insert(e.Record)
		return s.clamped()

	case UserUpdated:
		if s.stale(e.Record.ID, e.Seq) {
			return s
		}
		store, ok := s.Store.Replace(e.Record)
		if !ok {
			return s
		}
		s.Store = store
		return s.clamped()

	// A delete the directory confirmed always applies: the record is gone
	// upstream even if a later edit was issued for it.
	case UserDeleted:
		store, ok := s.Store.Remove(e.ID)
		if !ok {
			return s
		}
		s.Store = store
		return s.clamped()

	case MutationFailed:
		if e.ID != 0 && s.stale(e.ID, e.Seq) {
			return s
		}
		s.Error = e.Message
		return s
	}
	return s
}

// withQuery installs q and goes back to the first page if it differs from
// the current query.
func (s State) withQuery(q query.State) State {
	if !q.Equal(s.Query) {
		s.Query = q
		s.Page.CurrentPage = 1
	}
	return s.clamped()
}

func (s State) clamped() State {
	s.Page = pagination.Clamp(s.Page, len(s.Visible()))
	return s
}
