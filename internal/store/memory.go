package store

import (
	"context"
	"sync"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

// Memory implements SessionRepository with a mutex-guarded map. Sessions live
// for the process lifetime; there is no eviction.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]*domain.Session)}
}

// Create inserts the session.
func (m *Memory) Create(_ context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = cloneSession(session)
	return nil
}

// Get returns a copy of the session so callers cannot race with appenders.
func (m *Memory) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(s), nil
}

// AppendHistory appends an entry and updates the pending-question state.
func (m *Memory) AppendHistory(_ context.Context, sessionID string, entry domain.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	applyEntry(s, entry)
	return nil
}

// SetLanguage updates the session's language.
func (m *Memory) SetLanguage(_ context.Context, sessionID string, lang domain.Language) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	s.Language = lang
	return nil
}

// Count reports the number of sessions.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }

func cloneSession(s *domain.Session) *domain.Session {
	out := *s
	out.History = append([]domain.HistoryEntry(nil), s.History...)
	if s.Pending != nil {
		p := *s.Pending
		out.Pending = &p
	}
	return &out
}
