package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/core/events"
	"github.com/frahmantamala/user-dashboard/internal/effects"
	"github.com/frahmantamala/user-dashboard/internal/gateway"
	"github.com/frahmantamala/user-dashboard/internal/record"
	"github.com/frahmantamala/user-dashboard/internal/userform"
	"github.com/frahmantamala/user-dashboard/pkg/metrics"
)

// Submitter runs effect jobs off the event loop.
type Submitter interface {
	Submit(job effects.Job) error
}

// Publisher receives notifications about applied directory changes.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Session owns one operator's State. All transitions run on a single loop
// goroutine; directory calls run on the effect pool and report back to the
// loop as events.
type Session struct {
	operatorID string
	directory  gateway.Directory
	pool       Submitter
	publisher  Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics

	inbox     chan func()
	done      chan struct{}
	closeOnce sync.Once

	// owned by the loop goroutine
	state       State
	loadCounter uint64
	mutCounter  uint64

	mu       sync.RWMutex
	snapshot State

	startOnce sync.Once
	started   chan struct{}
}

type SessionConfig struct {
	OperatorID string
	Directory  gateway.Directory
	Pool       Submitter
	Publisher  Publisher
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		operatorID: cfg.OperatorID,
		directory:  cfg.Directory,
		pool:       cfg.Pool,
		publisher:  cfg.Publisher,
		logger:     cfg.Logger.With("operator_id", cfg.OperatorID),
		metrics:    cfg.Metrics,
		inbox:      make(chan func(), 16),
		done:       make(chan struct{}),
		state:      NewState(),
		snapshot:   NewState(),
		started:    make(chan struct{}),
	}
	go s.run()
	s.metrics.SessionOpened()
	return s
}

func (s *Session) run() {
	for {
		select {
		case fn := <-s.inbox:
			fn()
		case <-s.done:
			return
		}
	}
}

// Close stops the loop. Outcomes of calls still in flight are discarded.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.metrics.SessionClosed()
	})
}

// State returns the latest applied state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// View derives the current page from the latest applied state.
func (s *Session) View() View {
	return Derive(s.State())
}

// Start issues the initial load once. It does not wait for the result.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go func() {
			defer close(s.started)
			if _, err := s.Load(ctx); err != nil {
				s.logger.Warn("initial user load failed", "error", err)
			}
		}()
	})
}

// WaitStarted blocks until the initial load has been applied.
func (s *Session) WaitStarted(ctx context.Context) error {
	select {
	case <-s.started:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return internal.ErrSessionClosed
	}
}

// apply runs on the loop goroutine.
func (s *Session) apply(e Event) {
	s.state = Reduce(s.state, e)
	s.metrics.DashboardEvent(e.Name())

	s.mu.Lock()
	s.snapshot = s.state
	s.mu.Unlock()
}

// exec runs fn on the loop goroutine.
func (s *Session) exec(ctx context.Context, fn func()) error {
	select {
	case s.inbox <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return internal.ErrSessionClosed
	}
}

// post is exec for effect results: it never gives up while the session is
// open, so an outcome is applied even when its caller stopped waiting.
func (s *Session) post(fn func()) {
	select {
	case s.inbox <- fn:
	case <-s.done:
	}
}

type result struct {
	record record.Record
	view   View
	err    error
}

func (s *Session) await(ctx context.Context, reply <-chan result) (result, error) {
	select {
	case r := <-reply:
		return r, r.err
	case <-ctx.Done():
		return result{}, ctx.Err()
	case <-s.done:
		return result{}, internal.ErrSessionClosed
	}
}

// Dispatch applies an operator intent and returns the resulting view.
func (s *Session) Dispatch(ctx context.Context, e Event) (View, error) {
	reply := make(chan result, 1)
	err := s.exec(ctx, func() {
		s.apply(e)
		reply <- result{view: Derive(s.state)}
	})
	if err != nil {
		return View{}, err
	}
	r, err := s.await(ctx, reply)
	return r.view, err
}

// Load fetches the full user list and replaces the store with it. Only the
// most recently issued load is ever applied.
func (s *Session) Load(ctx context.Context) (View, error) {
	reply := make(chan result, 1)
	err := s.exec(ctx, func() {
		s.loadCounter++
		seq := s.loadCounter
		s.apply(LoadStarted{Seq: seq})

		job := effects.Job{Name: "list_users", Run: func(jobCtx context.Context) {
			users, err := s.directory.ListUsers(jobCtx)
			s.post(func() {
				if err != nil {
					s.loadFailed(seq, err, reply)
					return
				}
				records := record.FromRawList(users)
				s.apply(UsersLoaded{Seq: seq, Records: records})
				if s.state.LoadSeq() != seq {
					s.metrics.StaleOutcome("load")
				} else {
					s.publish(events.NewUsersLoadedEvent(s.operatorID, len(records)))
				}
				reply <- result{view: Derive(s.state)}
			})
		}}
		if err := s.pool.Submit(job); err != nil {
			s.loadFailed(seq, err, reply)
		}
	})
	if err != nil {
		return View{}, err
	}
	r, err := s.await(ctx, reply)
	return r.view, err
}

// Reload is Load triggered by the operator.
func (s *Session) Reload(ctx context.Context) (View, error) {
	return s.Load(ctx)
}

func (s *Session) loadFailed(seq uint64, err error, reply chan<- result) {
	appErr := asDirectoryError(err, internal.NewFetchFailure)
	s.apply(LoadFailed{Seq: seq, Message: appErr.Message})
	if s.state.LoadSeq() == seq {
		s.publish(events.NewFailureEvent(events.EventTypeLoadFailed, s.operatorID, 0, appErr.Message))
	}
	reply <- result{view: Derive(s.state), err: appErr}
}

// Add validates draft, creates it in the directory and inserts the result.
func (s *Session) Add(ctx context.Context, draft record.Draft) (record.Record, View, error) {
	if verr := userform.Validate(draft); verr != nil {
		return record.Record{}, View{}, verr
	}

	reply := make(chan result, 1)
	err := s.exec(ctx, func() {
		job := effects.Job{Name: "create_user", Run: func(jobCtx context.Context) {
			created, err := s.directory.CreateUser(jobCtx, draft)
			s.post(func() {
				if err != nil {
					s.mutationFailed(0, 0, err, internal.NewSaveFailure, reply)
					return
				}
				rec := s.state.Store.Resolve(draft.WithID(created.ID))
				s.apply(UserAdded{Record: rec})
				s.publish(events.NewUserChangedEvent(events.EventTypeUserAdded, s.operatorID, rec.ID, rec.Email))
				reply <- result{record: rec, view: Derive(s.state)}
			})
		}}
		if err := s.pool.Submit(job); err != nil {
			s.mutationFailed(0, 0, err, internal.NewSaveFailure, reply)
		}
	})
	if err != nil {
		return record.Record{}, View{}, err
	}
	r, err := s.await(ctx, reply)
	return r.record, r.view, err
}

// Edit validates draft and replaces record id after the directory accepts it.
func (s *Session) Edit(ctx context.Context, id int64, draft record.Draft) (record.Record, View, error) {
	if verr := userform.Validate(draft); verr != nil {
		return record.Record{}, View{}, verr
	}

	reply := make(chan result, 1)
	err := s.exec(ctx, func() {
		if !s.state.Store.Contains(id) {
			reply <- result{err: internal.ErrUserNotFound}
			return
		}
		seq := s.nextMutation(id)
		job := effects.Job{Name: "update_user", Run: func(jobCtx context.Context) {
			_, err := s.directory.UpdateUser(jobCtx, id, draft)
			s.post(func() {
				if err != nil {
					s.mutationFailed(id, seq, err, internal.NewSaveFailure, reply)
					return
				}
				rec := draft.WithID(id)
				stale := s.state.stale(id, seq)
				s.apply(UserUpdated{Record: rec, Seq: seq})
				if stale {
					s.metrics.StaleOutcome("update")
				} else if s.state.Store.Contains(id) {
					s.publish(events.NewUserChangedEvent(events.EventTypeUserUpdated, s.operatorID, id, rec.Email))
				}
				reply <- result{record: rec, view: Derive(s.state)}
			})
		}}
		if err := s.pool.Submit(job); err != nil {
			s.mutationFailed(id, seq, err, internal.NewSaveFailure, reply)
		}
	})
	if err != nil {
		return record.Record{}, View{}, err
	}
	r, err := s.await(ctx, reply)
	return r.record, r.view, err
}

// Delete removes record id after the directory accepts the deletion.
func (s *Session) Delete(ctx context.Context, id int64) (View, error) {
	reply := make(chan result, 1)
	err := s.exec(ctx, func() {
		if !s.state.Store.Contains(id) {
			reply <- result{err: internal.ErrUserNotFound}
			return
		}
		seq := s.nextMutation(id)
		job := effects.Job{Name: "delete_user", Run: func(jobCtx context.Context) {
			err := s.directory.DeleteUser(jobCtx, id)
			s.post(func() {
				if err != nil {
					s.mutationFailed(id, seq, err, internal.NewDeleteFailure, reply)
					return
				}
				existed := s.state.Store.Contains(id)
				s.apply(UserDeleted{ID: id, Seq: seq})
				if existed {
					s.publish(events.NewUserChangedEvent(events.EventTypeUserDeleted, s.operatorID, id, ""))
				}
				reply <- result{view: Derive(s.state)}
			})
		}}
		if err := s.pool.Submit(job); err != nil {
			s.mutationFailed(id, seq, err, internal.NewDeleteFailure, reply)
		}
	})
	if err != nil {
		return View{}, err
	}
	r, err := s.await(ctx, reply)
	return r.view, err
}

// Get returns the stored record for id, for prefilling the edit form.
func (s *Session) Get(id int64) (record.Record, error) {
	rec, ok := s.State().Store.Get(id)
	if !ok {
		return record.Record{}, internal.ErrUserNotFound
	}
	return rec, nil
}

func (s *Session) nextMutation(id int64) uint64 {
	s.mutCounter++
	s.apply(MutationStarted{ID: id, Seq: s.mutCounter})
	return s.mutCounter
}

func (s *Session) mutationFailed(id int64, seq uint64, err error, wrap func(error) *internal.AppError, reply chan<- result) {
	appErr := asDirectoryError(err, wrap)
	if id != 0 && s.state.stale(id, seq) {
		s.metrics.StaleOutcome("mutation_failure")
	} else {
		s.publish(events.NewFailureEvent(events.EventTypeMutationFailed, s.operatorID, id, appErr.Message))
	}
	s.apply(MutationFailed{ID: id, Seq: seq, Message: appErr.Message})
	reply <- result{view: Derive(s.state), err: appErr}
}

func (s *Session) publish(e events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.Background(), e); err != nil {
		s.logger.Warn("failed to publish dashboard event", "event_type", e.EventType(), "error", err)
	}
}

// asDirectoryError keeps AppErrors from the gateway as they are and wraps
// anything else, such as a full effect queue.
func asDirectoryError(err error, wrap func(error) *internal.AppError) *internal.AppError {
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr
	}
	return wrap(err)
}
