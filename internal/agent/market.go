package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

// marketQuery is the structured interpretation of a free-text market question.
type marketQuery struct {
	ProductCategories []string `json:"product_categories"`
	SpecificItems     []string `json:"specific_items"`
	Locations         []string `json:"locations"`
	TimePeriod        string   `json:"time_period"`
}

// handleMarketAnalysis interprets the question, fetches market intelligence
// from the collaborator, and returns it alongside a spoken summary.
func (a *Agent) handleMarketAnalysis(ctx context.Context, req request) (*domain.TaskResult, error) {
	actions := []domain.Action{navigateAction("market-trends")}

	query := a.analyzeMarketQuery(ctx, req.Input)
	data, err := a.generateText(ctx, marketDataPrompt(query))
	if err != nil {
		logCollabFailure("market data", err)
		actions = append(actions, speakAction("I'm having trouble accessing market data right now. Please try again later or visit the market trends page."))
		return &domain.TaskResult{
			SessionID: req.SessionID,
			TaskType:  domain.TaskMarketAnalysis,
			Actions:   actions,
			Status:    domain.StatusCompleted,
		}, nil
	}

	actions = append(actions, domain.Action{
		Kind:      domain.ActionMarketAnalysis,
		Query:     req.Input,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	actions = append(actions, speakAction(truncateForSpeech(data, 200)))

	return &domain.TaskResult{
		SessionID: req.SessionID,
		TaskType:  domain.TaskMarketAnalysis,
		Actions:   actions,
		Status:    domain.StatusCompleted,
	}, nil
}

// analyzeMarketQuery returns a structured query, empty on any failure so the
// data prompt falls back to its defaults.
func (a *Agent) analyzeMarketQuery(ctx context.Context, input string) marketQuery {
	var query marketQuery
	reply, err := a.generateText(ctx, marketQueryPrompt(input))
	if err != nil {
		logCollabFailure("market query analysis", err)
		return query
	}
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &query); err != nil {
		slog.Warn("market query analysis returned malformed JSON", "error", err)
	}
	return query
}

// handleGovSchemeApplication looks up relevant government schemes for the
// farmer's query.
func (a *Agent) handleGovSchemeApplication(ctx context.Context, req request) (*domain.TaskResult, error) {
	actions := []domain.Action{navigateAction("gov-schemes")}

	info, err := a.generateText(ctx, govSchemePrompt(req.Input))
	if err != nil {
		logCollabFailure("gov scheme lookup", err)
		actions = append(actions, speakAction("I'm having trouble accessing government scheme information right now. Please visit the government schemes page or try again later."))
		return &domain.TaskResult{
			SessionID: req.SessionID,
			TaskType:  domain.TaskGovSchemeApplication,
			Actions:   actions,
			Status:    domain.StatusCompleted,
		}, nil
	}

	actions = append(actions, speakAction("Here are the relevant government schemes for your query: "+truncateForSpeech(info, 200)))
	actions = append(actions, domain.Action{
		Kind:      domain.ActionGovSchemeInfo,
		Query:     req.Input,
		Data:      info,
		Timestamp: time.Now().UTC(),
	})

	return &domain.TaskResult{
		SessionID: req.SessionID,
		TaskType:  domain.TaskGovSchemeApplication,
		Actions:   actions,
		Status:    domain.StatusCompleted,
	}, nil
}

// handleArtisanMarketplace produces marketing guidance and ready-to-use
// product content for a craft seller.
func (a *Agent) handleArtisanMarketplace(ctx context.Context, req request) (*domain.TaskResult, error) {
	actions := []domain.Action{navigateAction("grocery-marketplace")}

	marketing, err := a.generateText(ctx, artisanPrompt(req.Input))
	if err != nil {
		logCollabFailure("artisan marketing", err)
		actions = append(actions, speakAction("I'm having trouble generating marketing assistance right now. Please try again later."))
		return &domain.TaskResult{
			SessionID: req.SessionID,
			TaskType:  domain.TaskArtisanMarketplace,
			Actions:   actions,
			Status:    domain.StatusCompleted,
		}, nil
	}

	content, err := a.generateText(ctx, artisanProductPrompt(marketing))
	if err != nil {
		logCollabFailure("artisan product content", err)
		content = marketing
	}

	actions = append(actions, domain.Action{
		Kind:      domain.ActionArtisanAssistance,
		Query:     req.Input,
		Data:      marketing,
		Timestamp: time.Now().UTC(),
	})
	actions = append(actions, speakAction(truncateForSpeech(marketing, 150)))
	actions = append(actions, domain.Action{
		Kind:       domain.ActionMarketplaceListing,
		Data:       content,
		Suggestion: "Consider listing your products on platforms like Etsy, Amazon Handmade, or local craft marketplaces",
		Timestamp:  time.Now().UTC(),
	})

	return &domain.TaskResult{
		SessionID: req.SessionID,
		TaskType:  domain.TaskArtisanMarketplace,
		Actions:   actions,
		Status:    domain.StatusCompleted,
	}, nil
}
