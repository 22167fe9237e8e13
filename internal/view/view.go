// Package view derives the visible record list from the store and the
// current query: filter, then search, then sort.
package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/frahmantamala/user-dashboard/internal/query"
	"github.com/frahmantamala/user-dashboard/internal/record"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ComputeVisible never modifies records and always returns a new slice.
func ComputeVisible(records []record.Record, q query.State) []record.Record {
	f := newFolder()
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if f.matchesFilters(r, q.Filters) && f.matchesSearch(r, q.Search) {
			out = append(out, r)
		}
	}
	sortRecords(out, f, q.SortField, q.SortOrder)
	return out
}

// folder lowercases with full Unicode case mapping. A cases.Caser keeps
// state between calls, so each computation owns one.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Lower(language.Und)}
}

func (f *folder) lower(s string) string {
	return f.caser.String(s)
}

func (f *folder) matchesFilters(r record.Record, filters query.Filters) bool {
	for _, field := range record.TextFields {
		pattern := filters.Get(field)
		if pattern == "" {
			continue
		}
		if !strings.Contains(f.lower(r.Text(field)), f.lower(pattern)) {
			return false
		}
	}
	return true
}

func (f *folder) matchesSearch(r record.Record, term string) bool {
	if term == "" {
		return true
	}
	needle := f.lower(term)
	for _, field := range record.TextFields {
		if strings.Contains(f.lower(r.Text(field)), needle) {
			return true
		}
	}
	// the id is matched on its decimal form without folding
	return strings.Contains(r.IDString(), term)
}

func sortRecords(rs []record.Record, f *folder, field record.Field, order query.Order) {
	if field == record.FieldID {
		slices.SortStableFunc(rs, func(a, b record.Record) int {
			return compare(a.ID, b.ID, order)
		})
		return
	}

	keyed := make([]keyedRecord, len(rs))
	for i, r := range rs {
		keyed[i] = keyedRecord{key: f.lower(r.Text(field)), record: r}
	}
	slices.SortStableFunc(keyed, func(a, b keyedRecord) int {
		return compare(a.key, b.key, order)
	})
	for i := range keyed {
		rs[i] = keyed[i].record
	}
}

type keyedRecord struct {
	key    string
	record record.Record
}

// compare orders by code point; descending reverses the operands.
func compare[T int64 | string](a, b T, order query.Order) int {
	if order == query.Desc {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}
