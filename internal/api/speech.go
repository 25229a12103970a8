package api

import (
	"log/slog"
	"net/http"

	"github.com/dineshreddy8742/Bheema/internal/collab"
	"github.com/go-chi/chi/v5"
)

// SpeechHandler handles text-to-speech endpoints.
type SpeechHandler struct {
	synth collab.SpeechSynthesizer
}

// NewSpeechHandler creates a new speech handler. A nil synthesizer makes
// every request take the empty-audio fallback.
func NewSpeechHandler(synth collab.SpeechSynthesizer) *SpeechHandler {
	return &SpeechHandler{synth: synth}
}

// RegisterRoutes registers the speech routes.
func (h *SpeechHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/tts/speak", h.Speak)
}

// Speak synthesizes the posted text and streams back MP3 audio. Synthesis
// failures return an empty 200 body so the client degrades to text silently.
func (h *SpeechHandler) Speak(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("text")
	language := r.FormValue("language")
	if language == "" {
		language = "en"
	}

	var audio []byte
	if h.synth != nil && text != "" {
		var err error
		audio, err = h.synth.Synthesize(r.Context(), text, language)
		if err != nil {
			slog.Error("Speech synthesis failed", "error", err, "language", language)
			audio = nil
		}
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		slog.Warn("Failed to write audio response", "error", err)
	}
}
