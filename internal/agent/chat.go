package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

// Intent labels returned by the classifier. Part of the collaborator contract.
const (
	IntentDiseaseAnalysis    = "DISEASE_ANALYSIS"
	IntentColdStorageBooking = "COLD_STORAGE_BOOKING"
	IntentFormFilling        = "FORM_FILLING"
	IntentCropRecommendation = "CROP_RECOMMENDATION"
	IntentNavigation         = "NAVIGATION"
	IntentGeneralQuery       = "GENERAL_QUERY"
)

// pageNames is the fixed navigable page-id list; part of the client contract.
var pageNames = []string{
	"dashboard", "crop-monitor", "disease-detector", "market-trends",
	"cold-storage", "gov-schemes", "community", "profile",
}

// detectIntent classifies free text; any classifier failure degrades to
// GENERAL_QUERY.
func (a *Agent) detectIntent(ctx context.Context, userInput string) string {
	reply, err := a.generateText(ctx, intentPrompt(userInput))
	if err != nil {
		logCollabFailure("intent detection", err)
		return IntentGeneralQuery
	}
	return strings.TrimSpace(reply)
}

// handleChat classifies the message and delegates to the matching handler.
func (a *Agent) handleChat(ctx context.Context, req request) (*domain.TaskResult, error) {
	switch a.detectIntent(ctx, req.Input) {
	case IntentDiseaseAnalysis:
		return a.handleDiseaseAnalysis(ctx, req)
	case IntentColdStorageBooking:
		return a.handleColdStorageBooking(ctx, req)
	case IntentFormFilling:
		return a.handleFormFilling(ctx, req)
	case IntentCropRecommendation:
		return a.handleCropRecommendation(ctx, req)
	case IntentNavigation:
		if page := matchPage(req.Input); page != "" {
			return &domain.TaskResult{
				SessionID: req.SessionID,
				TaskType:  domain.TaskChat,
				Actions:   []domain.Action{navigateAction(page)},
				Status:    domain.StatusCompleted,
			}, nil
		}
		return a.handleGeneral(ctx, req)
	default:
		return a.handleGeneral(ctx, req)
	}
}

// matchPage returns the first page id contained in the input, or "".
func matchPage(input string) string {
	lower := strings.ToLower(input)
	for _, page := range pageNames {
		if strings.Contains(lower, page) {
			return page
		}
	}
	return ""
}

// NavigateToPage builds the navigate result for an explicit page request.
func (a *Agent) NavigateToPage(sessionID, pageID string) *domain.TaskResult {
	return &domain.TaskResult{
		SessionID: sessionID,
		TaskType:  domain.TaskChat,
		Actions:   []domain.Action{navigateAction(pageID)},
		Status:    domain.StatusCompleted,
	}
}

// handleGeneral forwards the input verbatim to the text-generation
// collaborator and wraps the reply in a single speak_response action.
func (a *Agent) handleGeneral(ctx context.Context, req request) (*domain.TaskResult, error) {
	reply, err := a.generateText(ctx, req.Input)
	if err != nil {
		logCollabFailure("general query", err)
		reply = fmt.Sprintf("I received your message: %s, but I couldn't generate a smart response right now.", req.Input)
	}
	return &domain.TaskResult{
		SessionID: req.SessionID,
		TaskType:  domain.TaskGeneralQuery,
		Actions:   []domain.Action{speakAction(reply)},
		Status:    domain.StatusCompleted,
	}, nil
}

// handleCropRecommendation asks for the details needed to recommend crops.
func (a *Agent) handleCropRecommendation(_ context.Context, req request) (*domain.TaskResult, error) {
	return &domain.TaskResult{
		SessionID: req.SessionID,
		TaskType:  domain.TaskCropRecommendation,
		Actions: []domain.Action{
			speakAction("I can help you with crop recommendations. What is your location and soil type?"),
		},
		Status: domain.StatusAwaitingInfo,
	}, nil
}
