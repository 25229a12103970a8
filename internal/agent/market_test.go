package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

func TestMarketAnalysis_ReturnsDataAndSummary(t *testing.T) {
	gen := &fakeTextGen{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Analyze this market query") {
			return `{"product_categories": ["vegetables"], "specific_items": ["tomato"], "locations": ["Andhra Pradesh"], "time_period": "weekly"}`, nil
		}
		return "Tomato prices are rising across Andhra Pradesh markets.", nil
	}}
	a, sid := newTestAgent(t, Deps{TextGen: gen})

	result, err := a.Execute(context.Background(), sid, domain.TaskMarketAnalysis, "tomato prices this week", nil, "")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Status != domain.StatusCompleted {
		t.Fatalf("Expected completed, got %q", result.Status)
	}
	if result.Actions[0].Kind != domain.ActionNavigate || result.Actions[0].Page != "market-trends" {
		t.Errorf("Expected navigation to market-trends first, got %+v", result.Actions[0])
	}

	var data *domain.Action
	var spoken bool
	for i := range result.Actions {
		if result.Actions[i].Kind == domain.ActionMarketAnalysis {
			data = &result.Actions[i]
		}
		if result.Actions[i].Kind == domain.ActionSpeak {
			spoken = true
		}
	}
	if data == nil {
		t.Fatal("Expected a market_analysis action")
	}
	if data.Query != "tomato prices this week" {
		t.Errorf("Expected query echoed, got %q", data.Query)
	}
	if !strings.Contains(data.Data, "Tomato prices") {
		t.Errorf("Expected market data payload, got %q", data.Data)
	}
	if !spoken {
		t.Error("Expected a spoken summary")
	}
}

func TestMarketAnalysis_MalformedQueryJSONFailsSoft(t *testing.T) {
	gen := &fakeTextGen{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Analyze this market query") {
			return "not json at all", nil
		}
		return "market intelligence", nil
	}}
	a, sid := newTestAgent(t, Deps{TextGen: gen})

	result, err := a.Execute(context.Background(), sid, domain.TaskMarketAnalysis, "onion prices", nil, "")
	if err != nil {
		t.Fatalf("Expected soft failure, got error: %v", err)
	}
	if result.Status != domain.StatusCompleted {
		t.Errorf("Expected completed, got %q", result.Status)
	}
}

func TestMarketAnalysis_CollaboratorFailureSpeaksApology(t *testing.T) {
	a, sid := newTestAgent(t, Deps{})

	result, err := a.Execute(context.Background(), sid, domain.TaskMarketAnalysis, "wheat prices", nil, "")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Status != domain.StatusCompleted {
		t.Fatalf("Expected completed, got %q", result.Status)
	}
	var apology bool
	for _, action := range result.Actions {
		if action.Kind == domain.ActionSpeak && strings.Contains(action.Message, "trouble accessing market data") {
			apology = true
		}
	}
	if !apology {
		t.Errorf("Expected a spoken apology, got %+v", result.Actions)
	}
}

func TestGovSchemeApplication(t *testing.T) {
	gen := &fakeTextGen{generate: func(string) (string, error) {
		return "PM-KISAN provides income support of 6000 rupees per year.", nil
	}}
	a, sid := newTestAgent(t, Deps{TextGen: gen})

	result, err := a.Execute(context.Background(), sid, domain.TaskGovSchemeApplication, "income support schemes", nil, "")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Actions[0].Page != "gov-schemes" {
		t.Errorf("Expected navigation to gov-schemes, got %+v", result.Actions[0])
	}

	var info *domain.Action
	for i := range result.Actions {
		if result.Actions[i].Kind == domain.ActionGovSchemeInfo {
			info = &result.Actions[i]
		}
	}
	if info == nil {
		t.Fatal("Expected a gov_scheme_info action")
	}
	if !strings.Contains(info.Data, "PM-KISAN") {
		t.Errorf("Expected scheme details, got %q", info.Data)
	}
}

func TestArtisanMarketplace_TwoStageContent(t *testing.T) {
	var calls int
	gen := &fakeTextGen{generate: func(prompt string) (string, error) {
		calls++
		if strings.Contains(prompt, "marketing consultant") {
			return "marketing plan for handloom sarees", nil
		}
		return "product titles and captions", nil
	}}
	a, sid := newTestAgent(t, Deps{TextGen: gen})

	result, err := a.Execute(context.Background(), sid, domain.TaskArtisanMarketplace, "help me sell handloom sarees", nil, "")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if calls != 2 {
		t.Errorf("Expected two collaborator calls, got %d", calls)
	}

	var listing *domain.Action
	for i := range result.Actions {
		if result.Actions[i].Kind == domain.ActionMarketplaceListing {
			listing = &result.Actions[i]
		}
	}
	if listing == nil {
		t.Fatal("Expected a marketplace_listing action")
	}
	if listing.Data != "product titles and captions" {
		t.Errorf("Expected second-stage content, got %q", listing.Data)
	}
	if !strings.Contains(listing.Suggestion, "Etsy") {
		t.Errorf("Expected listing suggestion, got %q", listing.Suggestion)
	}
}

func TestTruncateForSpeech(t *testing.T) {
	if got := truncateForSpeech("short", 10); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	long := strings.Repeat("x", 30)
	if got := truncateForSpeech(long, 10); got != long[:10]+"..." {
		t.Errorf("Expected truncation, got %q", got)
	}
	// Multibyte text must not be split inside a rune.
	hindi := strings.Repeat("क", 20)
	got := truncateForSpeech(hindi, 5)
	if got != strings.Repeat("क", 5)+"..." {
		t.Errorf("Expected rune-safe truncation, got %q", got)
	}
}
