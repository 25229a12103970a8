// Package agent implements the smart-agent task dispatcher and handlers.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dineshreddy8742/Bheema/internal/collab"
	"github.com/dineshreddy8742/Bheema/internal/domain"
	"github.com/dineshreddy8742/Bheema/internal/i18n"
	"github.com/dineshreddy8742/Bheema/internal/store"
	"github.com/google/uuid"
)

// ErrNoPendingAction is returned by Continue when the session has no
// unanswered question. It is a value-level condition, not a server failure.
var ErrNoPendingAction = errors.New("No pending action requiring response")

var errNoTextGenerator = errors.New("text generator not configured")

// request carries the per-invocation handler inputs.
type request struct {
	SessionID string
	Input     string
	Image     []byte
}

type handlerFunc func(ctx context.Context, req request) (*domain.TaskResult, error)

// Deps are the collaborators and stores the agent is wired with. Any
// collaborator may be nil; the affected handlers then take their fallback
// paths.
type Deps struct {
	Sessions    store.SessionRepository
	TextGen     collab.TextGenerator
	Vision      collab.VisionLabeler
	Transcriber collab.Transcriber
	Responder   *i18n.Responder
	Spectral    *SpectralSimulator
}

// Agent routes task requests to handlers and owns session bookkeeping.
type Agent struct {
	sessions    store.SessionRepository
	textGen     collab.TextGenerator
	vision      collab.VisionLabeler
	transcriber collab.Transcriber
	responder   *i18n.Responder
	spectral    *SpectralSimulator

	handlers map[domain.TaskType]handlerFunc
}

// New creates an Agent with its dispatch table.
func New(deps Deps) *Agent {
	a := &Agent{
		sessions:    deps.Sessions,
		textGen:     deps.TextGen,
		vision:      deps.Vision,
		transcriber: deps.Transcriber,
		responder:   deps.Responder,
		spectral:    deps.Spectral,
	}
	if a.responder == nil {
		a.responder = i18n.NewResponder()
	}
	if a.spectral == nil {
		a.spectral = NewSpectralSimulator(nil)
	}
	a.handlers = map[domain.TaskType]handlerFunc{
		domain.TaskDiseaseAnalysis:              a.handleDiseaseAnalysis,
		domain.TaskAdvancedDiseaseAnalysis:      a.handleAdvancedDiseaseAnalysis,
		domain.TaskHyperspectralDiseaseAnalysis: a.handleHyperspectralDiseaseAnalysis,
		domain.TaskFormFilling:                  a.handleFormFilling,
		domain.TaskColdStorageBooking:           a.handleColdStorageBooking,
		domain.TaskCropRecommendation:           a.handleCropRecommendation,
		domain.TaskMarketAnalysis:               a.handleMarketAnalysis,
		domain.TaskGovSchemeApplication:         a.handleGovSchemeApplication,
		domain.TaskArtisanMarketplace:           a.handleArtisanMarketplace,
		domain.TaskChat:                         a.handleChat,
		domain.TaskCropMonitor:                  a.stubHandler(domain.TaskCropMonitor),
		domain.TaskCommunity:                    a.stubHandler(domain.TaskCommunity),
		domain.TaskProfile:                      a.stubHandler(domain.TaskProfile),
		domain.TaskGroceryMarketplace:           a.stubHandler(domain.TaskGroceryMarketplace),
		domain.TaskOrders:                       a.stubHandler(domain.TaskOrders),
	}
	return a
}

// StartResult is the response of StartSession.
type StartResult struct {
	SessionID      string            `json:"session_id"`
	Greeting       string            `json:"greeting"`
	Status         string            `json:"status"`
	AvailableTasks []domain.TaskType `json:"available_tasks"`
}

// StartSession creates a fresh session and returns its id with a localized
// greeting.
func (a *Agent) StartSession(ctx context.Context, userID string, language domain.Language, initialTask string) (*StartResult, error) {
	if language == "" {
		language = domain.LanguageEnglish
	}
	session := &domain.Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		Language:    language,
		CurrentTask: initialTask,
		CreatedAt:   time.Now().UTC(),
	}
	if err := a.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &StartResult{
		SessionID:      session.ID,
		Greeting:       a.responder.Get(i18n.KeyGreeting, language),
		Status:         "session_created",
		AvailableTasks: domain.AllTaskTypes(),
	}, nil
}

// Session returns the full session record.
func (a *Agent) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return a.sessions.Get(ctx, sessionID)
}

// SessionCount reports the number of live sessions.
func (a *Agent) SessionCount(ctx context.Context) (int, error) {
	return a.sessions.Count(ctx)
}

// Execute dispatches one task invocation. Unknown task types fall back to the
// general handler. The result is appended to the session history.
func (a *Agent) Execute(ctx context.Context, sessionID string, taskType domain.TaskType, input string, image []byte, language domain.Language) (*domain.TaskResult, error) {
	if _, err := a.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	if language != "" {
		if err := a.sessions.SetLanguage(ctx, sessionID, language); err != nil {
			return nil, err
		}
	}

	handler, ok := a.handlers[taskType]
	if !ok {
		handler = a.handleGeneral
	}
	result, err := handler(ctx, request{SessionID: sessionID, Input: input, Image: image})
	if err != nil {
		return nil, err
	}

	entry := domain.HistoryEntry{
		Task:      taskType,
		Input:     input,
		Result:    result,
		Timestamp: time.Now().UTC(),
	}
	if err := a.sessions.AppendHistory(ctx, sessionID, entry); err != nil {
		return nil, err
	}
	return result, nil
}

// Chat classifies a free-text message and delegates to the matching handler.
func (a *Agent) Chat(ctx context.Context, sessionID, message string, language domain.Language) (*domain.TaskResult, error) {
	if _, err := a.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	if language != "" {
		if err := a.sessions.SetLanguage(ctx, sessionID, language); err != nil {
			return nil, err
		}
	}

	result, err := a.handleChat(ctx, request{SessionID: sessionID, Input: message})
	if err != nil {
		return nil, err
	}

	entry := domain.HistoryEntry{
		Task:      domain.TaskChat,
		Input:     message,
		Result:    result,
		Timestamp: time.Now().UTC(),
	}
	if err := a.sessions.AppendHistory(ctx, sessionID, entry); err != nil {
		return nil, err
	}
	return result, nil
}

// Continue resumes a task paused on an ask_user action. The session's pending
// question decides the resumption handler; ErrNoPendingAction when none.
func (a *Agent) Continue(ctx context.Context, sessionID, userResponse string, language domain.Language) (*domain.TaskResult, error) {
	session, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if language != "" {
		if err := a.sessions.SetLanguage(ctx, sessionID, language); err != nil {
			return nil, err
		}
	}
	if session.Pending == nil {
		return nil, ErrNoPendingAction
	}

	req := request{SessionID: sessionID, Input: userResponse}
	var result *domain.TaskResult
	switch session.Pending.Context {
	case "image_capture":
		result, err = a.handleDiseaseAnalysis(ctx, req)
	case "form_completion":
		result, err = a.handleFormFilling(ctx, req)
	case "booking_completion":
		result, err = a.handleColdStorageBooking(ctx, req)
	default:
		result, err = a.handleGeneral(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	entry := domain.HistoryEntry{
		Continuation: true,
		Input:        userResponse,
		Result:       result,
		Timestamp:    time.Now().UTC(),
	}
	if err := a.sessions.AppendHistory(ctx, sessionID, entry); err != nil {
		return nil, err
	}
	return result, nil
}

// generateText forwards a prompt to the text-generation collaborator.
func (a *Agent) generateText(ctx context.Context, prompt string) (string, error) {
	if a.textGen == nil {
		return "", errNoTextGenerator
	}
	return a.textGen.Generate(ctx, prompt)
}

// stubHandler returns a handler for the intentionally unimplemented tasks.
func (a *Agent) stubHandler(task domain.TaskType) handlerFunc {
	return func(_ context.Context, req request) (*domain.TaskResult, error) {
		return &domain.TaskResult{
			SessionID: req.SessionID,
			TaskType:  task,
			Status:    domain.StatusNotImplemented,
		}, nil
	}
}

// logCollabFailure records a collaborator failure that was replaced by a
// fallback value.
func logCollabFailure(what string, err error) {
	slog.Error("collaborator call failed, using fallback", "op", what, "error", err)
}
