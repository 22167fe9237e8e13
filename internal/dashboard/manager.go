package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/gateway"
	"github.com/frahmantamala/user-dashboard/pkg/metrics"
)

// Manager keeps one Session per operator. Sessions share the directory
// client and the effect pool.
type Manager struct {
	directory gateway.Directory
	pool      Submitter
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

func NewManager(directory gateway.Directory, pool Submitter, publisher Publisher, logger *slog.Logger, m *metrics.Metrics) *Manager {
	return &Manager{
		directory: directory,
		pool:      pool,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
		sessions:  make(map[string]*Session),
	}
}

// Session returns the operator's session, creating it and issuing its
// initial load on first use.
func (m *Manager) Session(operatorID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, internal.ErrSessionClosed
	}
	if s, ok := m.sessions[operatorID]; ok {
		return s, nil
	}

	s := NewSession(SessionConfig{
		OperatorID: operatorID,
		Directory:  m.directory,
		Pool:       m.pool,
		Publisher:  m.publisher,
		Logger:     m.logger,
		Metrics:    m.metrics,
	})
	m.sessions[operatorID] = s
	s.Start(context.Background())

	m.logger.Info("dashboard session opened", "operator_id", operatorID, "sessions", len(m.sessions))
	return s, nil
}

// End closes and forgets the operator's session, if any.
func (m *Manager) End(operatorID string) {
	m.mu.Lock()
	s, ok := m.sessions[operatorID]
	delete(m.sessions, operatorID)
	remaining := len(m.sessions)
	m.mu.Unlock()

	if ok {
		s.Close()
		m.logger.Info("dashboard session closed", "operator_id", operatorID, "sessions", remaining)
	}
}

func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.closed = true
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
