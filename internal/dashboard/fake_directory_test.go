package dashboard_test

import (
	"context"
	"sync"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/core/datamodel/directoryuser"
	"github.com/frahmantamala/user-dashboard/internal/record"
)

// fakeDirectory answers from memory. A non-nil gate makes the next call of
// that kind block until a value is sent on it.
type fakeDirectory struct {
	mu sync.Mutex

	users      []directoryuser.RawUser
	createdID  int64
	failList   bool
	failCreate bool
	failUpdate bool
	failDelete bool

	listCalls   int
	createCalls int
	updateCalls []int64
	deleteCalls []int64

	updateGates chan chan struct{}
}

func newFakeDirectory(users ...directoryuser.RawUser) *fakeDirectory {
	return &fakeDirectory{users: users, createdID: 11}
}

func (f *fakeDirectory) ListUsers(ctx context.Context) ([]directoryuser.RawUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.failList {
		return nil, internal.NewFetchFailure(nil)
	}
	return append([]directoryuser.RawUser(nil), f.users...), nil
}

func (f *fakeDirectory) CreateUser(ctx context.Context, draft record.Draft) (directoryuser.RawUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.failCreate {
		return directoryuser.RawUser{}, internal.NewSaveFailure(nil)
	}
	return directoryuser.RawUser{ID: f.createdID, Name: draft.FullName()}, nil
}

func (f *fakeDirectory) UpdateUser(ctx context.Context, id int64, draft record.Draft) (directoryuser.RawUser, error) {
	f.mu.Lock()
	gates := f.updateGates
	f.mu.Unlock()
	if gates != nil {
		gate := make(chan struct{})
		gates <- gate
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, id)
	if f.failUpdate {
		return directoryuser.RawUser{}, internal.NewSaveFailure(nil)
	}
	return directoryuser.RawUser{ID: id, Name: draft.FullName()}, nil
}

func (f *fakeDirectory) DeleteUser(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, id)
	if f.failDelete {
		return internal.NewDeleteFailure(nil)
	}
	return nil
}

func (f *fakeDirectory) set(fn func(f *fakeDirectory)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeDirectory) calls() (list, create int, update, del []int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls, append([]int64(nil), f.updateCalls...), append([]int64(nil), f.deleteCalls...)
}

func rawUsers() []directoryuser.RawUser {
	return []directoryuser.RawUser{
		{ID: 1, Name: "John Doe", Email: "john@x.com", Company: directoryuser.Company{Name: "IT"}},
		{ID: 2, Name: "Ann Lee", Email: "ann@x.com", Company: directoryuser.Company{Name: "HR"}},
		{ID: 3, Name: "Cher", Email: "cher@x.com", Company: directoryuser.Company{Name: "Music"}},
	}
}
