package collab

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel matches the hosted model the assistant was tuned against.
const DefaultGeminiModel = "gemini-2.5-pro"

// Gemini implements TextGenerator using the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini text generator. model falls back to
// DefaultGeminiModel when empty.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate forwards the prompt verbatim and returns the trimmed reply.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini generate: empty response")
	}
	return text, nil
}
