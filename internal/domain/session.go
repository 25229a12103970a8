// Package domain contains core domain types for the Kisan agent backend.
package domain

import (
	"time"
)

// Language identifies a supported response language.
type Language string

// Supported languages. Unknown codes fall back to English at render time.
const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageTelugu  Language = "te"
)

// PendingQuestion records an ask_user action the client has not answered yet.
// It is set whenever a task result carries an action with requires_response
// and cleared by the next continuation.
type PendingQuestion struct {
	Context  string    `json:"context"`
	Question string    `json:"question"`
	RaisedAt time.Time `json:"raised_at"`
}

// Session is a conversation context identified by an opaque token.
// It lives for the process lifetime and is never evicted.
type Session struct {
	ID          string           `json:"session_id"`
	UserID      string           `json:"user_id"`
	Language    Language         `json:"language"`
	CurrentTask string           `json:"current_task,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	History     []HistoryEntry   `json:"history"`
	Pending     *PendingQuestion `json:"pending_question,omitempty"`
}

// HistoryEntry is one executed task or continuation in a session.
// Entries are append-only; insertion order is significant.
type HistoryEntry struct {
	Task         TaskType    `json:"task,omitempty"`
	Continuation bool        `json:"continuation,omitempty"`
	Input        string      `json:"input,omitempty"`
	Result       *TaskResult `json:"result"`
	Timestamp    time.Time   `json:"timestamp"`
}
