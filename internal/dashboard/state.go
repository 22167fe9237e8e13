package dashboard

import (
	"maps"

	"github.com/frahmantamala/user-dashboard/internal/pagination"
	"github.com/frahmantamala/user-dashboard/internal/query"
	"github.com/frahmantamala/user-dashboard/internal/record"
	"github.com/frahmantamala/user-dashboard/internal/view"
)

// State is one operator's dashboard. Values are never modified in place;
// Reduce returns a new State.
type State struct {
	Store  record.Store
	Query  query.State
	Page   pagination.State
	Error  string
	Loaded bool

	loadSeq uint64
	// latest holds, per record, the highest mutation seq issued. Entries are
	// never removed so late outcomes of older requests stay recognizable.
	latest map[int64]uint64
}

func NewState() State {
	return State{
		Query: query.Default(),
		Page:  pagination.Default(),
	}
}

// Visible is the filtered, searched and sorted record list.
func (s State) Visible() []record.Record {
	return view.ComputeVisible(s.Store.All(), s.Query)
}

func (s State) LoadSeq() uint64 {
	return s.loadSeq
}

// LatestSeq is the newest mutation sequence issued for id, or 0.
func (s State) LatestSeq(id int64) uint64 {
	return s.latest[id]
}

func (s State) withIssued(id int64, seq uint64) State {
	if seq <= s.latest[id] {
		return s
	}
	next := make(map[int64]uint64, len(s.latest)+1)
	maps.Copy(next, s.latest)
	next[id] = seq
	s.latest = next
	return s
}

// stale reports whether a mutation outcome was superseded by a newer request
// for the same record.
func (s State) stale(id int64, seq uint64) bool {
	return seq < s.latest[id]
}
