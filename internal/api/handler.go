// Package api provides HTTP handlers for the smart-agent API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/dineshreddy8742/Bheema/internal/agent"
)

// Handler provides common handler utilities.
type Handler struct {
	agent          *agent.Agent
	maxUploadBytes int64
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(a *agent.Agent, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{agent: a, maxUploadBytes: maxUploadBytes}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
