package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dineshreddy8742/Bheema/internal/agent"
	"github.com/dineshreddy8742/Bheema/internal/domain"
	"github.com/dineshreddy8742/Bheema/internal/i18n"
	"github.com/dineshreddy8742/Bheema/internal/store"
	"github.com/go-chi/chi/v5"
)

// AgentHandler handles session and task endpoints.
type AgentHandler struct {
	*Handler
	responder *i18n.Responder
}

// NewAgentHandler creates a new agent handler.
func NewAgentHandler(base *Handler) *AgentHandler {
	return &AgentHandler{Handler: base, responder: i18n.NewResponder()}
}

// RegisterRoutes registers the agent routes.
func (h *AgentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/agent", func(r chi.Router) {
		r.Post("/start-session", h.StartSession)
		r.Post("/execute-task", h.ExecuteTask)
		r.Post("/continue-task", h.ContinueTask)
		r.Get("/session/{sessionID}", h.GetSession)
		r.Post("/chat", h.Chat)
		r.Post("/voice-command", h.VoiceCommand)
		r.Post("/generate-workflow", h.GenerateWorkflow)
		r.Post("/navigate", h.Navigate)
	})
}

// StartSession creates a new agent session.
func (h *AgentHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID := r.FormValue("user_id")
	if userID == "" {
		Error(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}
	language := domain.Language(r.FormValue("language"))
	initialTask := r.FormValue("initial_task")

	result, err := h.agent.StartSession(r.Context(), userID, language, initialTask)
	if err != nil {
		slog.Error("Failed to start session", "error", err, "user_id", userID)
		Error(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	slog.Info("Session started", "session_id", result.SessionID, "user_id", userID, "language", language)
	JSON(w, http.StatusOK, result)
}

// ExecuteTask runs one task invocation for a session.
func (h *AgentHandler) ExecuteTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		Error(w, http.StatusBadRequest, "invalid form data")
		return
	}

	sessionID := r.FormValue("session_id")
	taskType := domain.TaskType(r.FormValue("task_type"))
	userInput := r.FormValue("user_input")
	language := domain.Language(r.FormValue("language"))
	image := h.readUpload(r, "file")

	result, err := h.agent.Execute(r.Context(), sessionID, taskType, userInput, image, language)
	if err != nil {
		h.taskError(w, sessionID, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

// ContinueTask resumes a task paused on an ask_user action.
func (h *AgentHandler) ContinueTask(w http.ResponseWriter, r *http.Request) {
	sessionID := r.FormValue("session_id")
	userResponse := r.FormValue("user_response")
	language := domain.Language(r.FormValue("language"))

	result, err := h.agent.Continue(r.Context(), sessionID, userResponse, language)
	if errors.Is(err, agent.ErrNoPendingAction) {
		// Value-level condition, not a server failure.
		JSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		h.taskError(w, sessionID, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

// GetSession returns the full session record.
func (h *AgentHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.agent.Session(r.Context(), sessionID)
	if err != nil {
		h.taskError(w, sessionID, err)
		return
	}
	JSON(w, http.StatusOK, session)
}

// Chat handles a free-text chat message.
func (h *AgentHandler) Chat(w http.ResponseWriter, r *http.Request) {
	sessionID := r.FormValue("session_id")
	message := r.FormValue("message")
	language := domain.Language(r.FormValue("language"))

	result, err := h.agent.Chat(r.Context(), sessionID, message, language)
	if err != nil {
		h.taskError(w, sessionID, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

// VoiceCommand transcribes uploaded audio and runs the detected task.
func (h *AgentHandler) VoiceCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		Error(w, http.StatusBadRequest, "invalid form data")
		return
	}

	sessionID := r.FormValue("session_id")
	language := domain.Language(r.FormValue("language"))
	audio := h.readUpload(r, "audio_file")
	if len(audio) == 0 {
		Error(w, http.StatusBadRequest, "audio_file is required")
		return
	}

	result, err := h.agent.VoiceCommand(r.Context(), sessionID, audio, language)
	if errors.Is(err, agent.ErrEmptyTranscription) {
		Error(w, http.StatusBadRequest, "Could not understand audio.")
		return
	}
	if err != nil {
		h.taskError(w, sessionID, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

// GenerateWorkflow builds a dynamic UI workflow from the posted prompts and
// returns the raw workflow object.
func (h *AgentHandler) GenerateWorkflow(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SystemPrompt string          `json:"system_prompt"`
		UserPrompt   string          `json:"user_prompt"`
		UISchema     json.RawMessage `json:"ui_schema"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	workflow, err := h.agent.GenerateWorkflow(r.Context(), payload.SystemPrompt, payload.UserPrompt, string(payload.UISchema))
	if err != nil {
		slog.Error("Failed to generate workflow", "error", err)
		Error(w, http.StatusInternalServerError, "Error generating workflow: "+err.Error())
		return
	}
	JSON(w, http.StatusOK, workflow)
}

// Navigate builds a navigation action with a localized message.
func (h *AgentHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	sessionID := r.FormValue("session_id")
	pageID := r.FormValue("page_id")
	if pageID == "" {
		Error(w, http.StatusUnprocessableEntity, "page_id is required")
		return
	}

	language := domain.LanguageEnglish
	if session, err := h.agent.Session(r.Context(), sessionID); err == nil {
		language = session.Language
	}

	result := h.agent.NavigateToPage(sessionID, pageID)
	message := h.responder.Get(i18n.KeyNavigation, language, pageTitle(pageID))

	JSON(w, http.StatusOK, map[string]interface{}{
		"session_id":  sessionID,
		"action":      result.Actions[0],
		"message":     message,
		"target_page": pageID,
	})
}

// taskError maps agent errors onto the wire contract.
func (h *AgentHandler) taskError(w http.ResponseWriter, sessionID string, err error) {
	if errors.Is(err, store.ErrSessionNotFound) {
		Error(w, http.StatusNotFound, "Session not found")
		return
	}
	slog.Error("Task failed", "error", err, "session_id", sessionID)
	JSON(w, http.StatusInternalServerError, map[string]string{
		"error":      err.Error(),
		"session_id": sessionID,
		"status":     "error",
	})
}

// readUpload returns the named uploaded file's bytes, or nil when absent.
func (h *AgentHandler) readUpload(r *http.Request, field string) []byte {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes))
	if err != nil {
		slog.Warn("Failed to read upload", "field", field, "error", err)
		return nil
	}
	return data
}
