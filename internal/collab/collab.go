// Package collab defines the external AI collaborator ports and their Google
// Cloud adapters. The core treats each collaborator as an opaque function and
// never retries a failed call; call sites substitute fixed fallbacks instead.
package collab

import "context"

// Label is one image annotation returned by the vision collaborator.
type Label struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VisionLabeler annotates an image with scored labels.
type VisionLabeler interface {
	LabelImage(ctx context.Context, image []byte) ([]Label, error)
}

// Transcriber converts recorded speech to text. An empty transcript with a
// nil error means the audio was processed but nothing was recognized.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, languageCode string) (string, error)
}

// SpeechSynthesizer converts text to spoken audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}
