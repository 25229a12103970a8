package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dineshreddy8742/Bheema/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements SessionRepository backed by SQLite. It is an optional
// durable archive for conversation history; the default deployment keeps
// sessions in memory only.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex // serializes read-modify-write of history rows
}

// NewSQLite opens or creates the session database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS agent_sessions (
		session_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		language TEXT NOT NULL,
		current_task TEXT,
		pending_json TEXT,
		history_json TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_agent_sessions_user ON agent_sessions(user_id);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Create inserts a new session row.
func (s *SQLiteStore) Create(ctx context.Context, session *domain.Session) error {
	history, err := json.Marshal(session.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO agent_sessions (session_id, user_id, language, current_task, pending_json, history_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULL, ?, ?, ?)`,
		session.ID, session.UserID, string(session.Language), session.CurrentTask,
		string(history), session.CreatedAt.Unix(), now,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get retrieves a session by id, or ErrSessionNotFound.
func (s *SQLiteStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT session_id, user_id, language, current_task, pending_json, history_json, created_at
		FROM agent_sessions WHERE session_id = ?`, sessionID)

	var sess domain.Session
	var lang string
	var currentTask, pendingJSON sql.NullString
	var historyJSON string
	var createdAt int64

	err := row.Scan(&sess.ID, &sess.UserID, &lang, &currentTask, &pendingJSON, &historyJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	sess.Language = domain.Language(lang)
	sess.CurrentTask = currentTask.String
	sess.CreatedAt = time.Unix(createdAt, 0).UTC()
	if err := json.Unmarshal([]byte(historyJSON), &sess.History); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	if pendingJSON.Valid && pendingJSON.String != "" {
		var pending domain.PendingQuestion
		if err := json.Unmarshal([]byte(pendingJSON.String), &pending); err != nil {
			return nil, fmt.Errorf("unmarshal pending question: %w", err)
		}
		sess.Pending = &pending
	}
	return &sess, nil
}

// AppendHistory appends an entry and updates the pending-question state.
func (s *SQLiteStore) AppendHistory(ctx context.Context, sessionID string, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	applyEntry(sess, entry)

	history, err := json.Marshal(sess.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	var pending any
	if sess.Pending != nil {
		raw, err := json.Marshal(sess.Pending)
		if err != nil {
			return fmt.Errorf("marshal pending question: %w", err)
		}
		pending = string(raw)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE agent_sessions SET history_json = ?, pending_json = ?, updated_at = ?
		WHERE session_id = ?`,
		string(history), pending, time.Now().Unix(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("update session history: %w", err)
	}
	return nil
}

// SetLanguage updates the session's language.
func (s *SQLiteStore) SetLanguage(ctx context.Context, sessionID string, lang domain.Language) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE agent_sessions SET language = ?, updated_at = ? WHERE session_id = ?`,
		string(lang), time.Now().Unix(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("update session language: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Count reports the number of stored sessions.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM agent_sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
