package store

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

func newTestSession(id string) *domain.Session {
	return &domain.Session{
		ID:        id,
		UserID:    "farmer-1",
		Language:  domain.LanguageEnglish,
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemory_CreateAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Create(ctx, newTestSession("s1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := m.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.UserID != "farmer-1" {
		t.Errorf("Expected user farmer-1, got %q", got.UserID)
	}
}

func TestMemory_GetUnknown(t *testing.T) {
	m := NewMemory()

	_, err := m.Get(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if err := m.Create(ctx, newTestSession("s1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first, _ := m.Get(ctx, "s1")
	first.UserID = "tampered"
	first.History = append(first.History, domain.HistoryEntry{Task: domain.TaskChat})

	second, _ := m.Get(ctx, "s1")
	if second.UserID != "farmer-1" {
		t.Errorf("Stored session mutated through Get copy: user %q", second.UserID)
	}
	if len(second.History) != 0 {
		t.Errorf("Stored history mutated through Get copy: %d entries", len(second.History))
	}
}

func TestMemory_AppendHistoryIsAppendOnly(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if err := m.Create(ctx, newTestSession("s1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		entry := domain.HistoryEntry{
			Task:      domain.TaskGeneralQuery,
			Input:     "q" + strconv.Itoa(i),
			Result:    &domain.TaskResult{SessionID: "s1", TaskType: domain.TaskGeneralQuery, Status: domain.StatusCompleted},
			Timestamp: time.Now().UTC(),
		}
		if err := m.AppendHistory(ctx, "s1", entry); err != nil {
			t.Fatalf("AppendHistory %d failed: %v", i, err)
		}
	}

	got, _ := m.Get(ctx, "s1")
	if len(got.History) != 5 {
		t.Fatalf("Expected 5 history entries, got %d", len(got.History))
	}
	for i, entry := range got.History {
		if entry.Input != "q"+strconv.Itoa(i) {
			t.Errorf("History out of order at %d: %q", i, entry.Input)
		}
	}
}

func TestMemory_PendingQuestionLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if err := m.Create(ctx, newTestSession("s1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ask := domain.HistoryEntry{
		Task: domain.TaskFormFilling,
		Result: &domain.TaskResult{
			SessionID: "s1",
			TaskType:  domain.TaskFormFilling,
			Status:    domain.StatusAwaitingInfo,
			Actions: []domain.Action{{
				Kind:             domain.ActionAskUser,
				Question:         "I need these details to complete your form: name. Please provide them.",
				Context:          "form_completion",
				RequiresResponse: true,
			}},
		},
		Timestamp: time.Now().UTC(),
	}
	if err := m.AppendHistory(ctx, "s1", ask); err != nil {
		t.Fatalf("AppendHistory failed: %v", err)
	}

	got, _ := m.Get(ctx, "s1")
	if got.Pending == nil {
		t.Fatal("Expected pending question to be set")
	}
	if got.Pending.Context != "form_completion" {
		t.Errorf("Expected context form_completion, got %q", got.Pending.Context)
	}

	cont := domain.HistoryEntry{
		Continuation: true,
		Input:        "my name is Ravi",
		Result:       &domain.TaskResult{SessionID: "s1", TaskType: domain.TaskFormFilling, Status: domain.StatusCompleted},
		Timestamp:    time.Now().UTC(),
	}
	if err := m.AppendHistory(ctx, "s1", cont); err != nil {
		t.Fatalf("AppendHistory failed: %v", err)
	}

	got, _ = m.Get(ctx, "s1")
	if got.Pending != nil {
		t.Errorf("Expected pending question cleared after continuation, got %+v", got.Pending)
	}
}

func TestMemory_ContinuationCanRaiseNewPending(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if err := m.Create(ctx, newTestSession("s1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	entry := domain.HistoryEntry{
		Continuation: true,
		Result: &domain.TaskResult{
			SessionID: "s1",
			TaskType:  domain.TaskFormFilling,
			Status:    domain.StatusAwaitingInfo,
			Actions: []domain.Action{{
				Kind:             domain.ActionAskUser,
				Question:         "still missing: area",
				Context:          "form_completion",
				RequiresResponse: true,
			}},
		},
		Timestamp: time.Now().UTC(),
	}
	if err := m.AppendHistory(ctx, "s1", entry); err != nil {
		t.Fatalf("AppendHistory failed: %v", err)
	}

	got, _ := m.Get(ctx, "s1")
	if got.Pending == nil || got.Pending.Question != "still missing: area" {
		t.Errorf("Expected new pending question from continuation, got %+v", got.Pending)
	}
}

func TestMemory_SetLanguage(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if err := m.Create(ctx, newTestSession("s1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := m.SetLanguage(ctx, "s1", domain.LanguageTelugu); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}
	got, _ := m.Get(ctx, "s1")
	if got.Language != domain.LanguageTelugu {
		t.Errorf("Expected language te, got %q", got.Language)
	}

	if err := m.SetLanguage(ctx, "missing", domain.LanguageHindi); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemory_Count(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := m.Create(ctx, newTestSession("s"+strconv.Itoa(i))); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	n, err := m.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 sessions, got %d", n)
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if err := m.Create(ctx, newTestSession("s1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			entry := domain.HistoryEntry{
				Task:      domain.TaskChat,
				Input:     strconv.Itoa(i),
				Result:    &domain.TaskResult{SessionID: "s1", TaskType: domain.TaskChat, Status: domain.StatusCompleted},
				Timestamp: time.Now().UTC(),
			}
			if err := m.AppendHistory(ctx, "s1", entry); err != nil {
				t.Errorf("AppendHistory failed: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			if _, err := m.Get(ctx, "s1"); err != nil {
				t.Errorf("Get failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := m.Get(ctx, "s1")
	if len(got.History) != 50 {
		t.Errorf("Expected 50 history entries, got %d", len(got.History))
	}
}
