// Package store provides session persistence interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

// ErrSessionNotFound is returned when a session id is unknown. Endpoints must
// surface it as a client-visible "session not found" error.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is the single serialization point for session mutation.
// Implementations must be safe for concurrent use.
type SessionRepository interface {
	// Create inserts a new session. It never fails for duplicate-free ids.
	Create(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by id, or ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// AppendHistory appends an entry to a session's history and maintains the
	// pending-question state: a continuation clears it, an entry whose result
	// carries an ask_user action requiring a response sets it.
	AppendHistory(ctx context.Context, sessionID string, entry domain.HistoryEntry) error

	// SetLanguage updates the session's response language.
	SetLanguage(ctx context.Context, sessionID string, lang domain.Language) error

	// Count reports the number of live sessions.
	Count(ctx context.Context) (int, error)

	// Close releases any underlying resources.
	Close() error
}

// applyEntry mutates the session for one appended history entry. Shared by
// implementations so both keep identical pending-question semantics.
func applyEntry(s *domain.Session, entry domain.HistoryEntry) {
	if entry.Continuation {
		s.Pending = nil
	}
	s.History = append(s.History, entry)
	if ask := entry.Result.PendingAsk(); ask != nil {
		s.Pending = &domain.PendingQuestion{
			Context:  ask.Context,
			Question: ask.Question,
			RaisedAt: entry.Timestamp,
		}
	}
}
