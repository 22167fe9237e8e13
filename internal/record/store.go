package record

import "slices"

// Store is the session's collection of records. Every mutation returns a new
// Store and leaves the receiver untouched, so a Store can be shared freely
// between the event loop and readers of a snapshot.
type Store struct {
	records []Record
}

func NewStore(records []Record) Store {
	return Store{records: slices.Clone(records)}
}

// All returns a copy of the records in insertion order.
func (s Store) All() []Record {
	return slices.Clone(s.records)
}

func (s Store) Len() int {
	return len(s.records)
}

func (s Store) Get(id int64) (Record, bool) {
	if i := s.index(id); i >= 0 {
		return s.records[i], true
	}
	return Record{}, false
}

func (s Store) Contains(id int64) bool {
	return s.index(id) >= 0
}

// NextID is one past the largest id in the store.
func (s Store) NextID() int64 {
	var maxID int64
	for _, r := range s.records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}

// Resolve returns r with an id that is unique in the store. A missing id or
// one that is already taken is replaced by NextID.
func (s Store) Resolve(r Record) Record {
	if r.ID <= 0 || s.Contains(r.ID) {
		r.ID = s.NextID()
	}
	return r
}

// Insert appends r after resolving its id.
func (s Store) Insert(r Record) (Store, Record) {
	r = s.Resolve(r)
	next := make([]Record, len(s.records), len(s.records)+1)
	copy(next, s.records)
	return Store{records: append(next, r)}, r
}

// Replace swaps the record with r.ID for r, keeping its position.
func (s Store) Replace(r Record) (Store, bool) {
	i := s.index(r.ID)
	if i < 0 {
		return s, false
	}
	next := slices.Clone(s.records)
	next[i] = r
	return Store{records: next}, true
}

func (s Store) Remove(id int64) (Store, bool) {
	i := s.index(id)
	if i < 0 {
		return s, false
	}
	next := make([]Record, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)
	return Store{records: next}, true
}

func (s Store) index(id int64) int {
	return slices.IndexFunc(s.records, func(r Record) bool { return r.ID == id })
}
