package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/dineshreddy8742/Bheema/internal/collab"
	"github.com/dineshreddy8742/Bheema/internal/domain"
)

func TestSeverityScore(t *testing.T) {
	tests := []struct {
		name       string
		indicators int
		buckets    []string
		want       int
	}{
		{"no indicators", 0, []string{"high"}, 0},
		{"one indicator no bucket", 1, nil, 5},
		{"two indicators no bucket capped", 2, nil, 5},
		{"one indicator high", 1, []string{"high"}, 10},
		{"one indicator medium", 1, []string{"medium"}, 8},
		{"one indicator low", 1, []string{"low"}, 5},
		{"high wins over medium", 1, []string{"medium", "high"}, 10},
		{"many indicators medium capped", 4, []string{"medium"}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := severityScore(tt.indicators, tt.buckets)
			if got != tt.want {
				t.Errorf("severityScore(%d, %v) = %d, want %d", tt.indicators, tt.buckets, got, tt.want)
			}
		})
	}
}

func TestCropNameFromInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Analyze tomato", "tomato"},
		{"analyze rice plant", "rice plant"},
		{"wheat", "wheat"},
		{"", "crop"},
		{"Analyze ", "crop"},
	}

	for _, tt := range tests {
		if got := cropNameFromInput(tt.input); got != tt.want {
			t.Errorf("cropNameFromInput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDiseaseAnalysis_DetectsDiseaseFromLabels(t *testing.T) {
	vision := &fakeVision{labels: []collab.Label{
		{Description: "Leaf blight", Score: 0.92},
		{Description: "Severe lesion damage", Score: 0.85},
		{Description: "Tomato leaf", Score: 0.80},
	}}
	gen := &fakeTextGen{generate: func(prompt string) (string, error) {
		if strings.Contains(prompt, "diagnostic report") {
			return "full diagnostic narrative", nil
		}
		return "structured medical report", nil
	}}
	a, sid := newTestAgent(t, Deps{Vision: vision, TextGen: gen})

	result, err := a.Execute(context.Background(), sid, domain.TaskDiseaseAnalysis, "Analyze tomato", []byte("img"), "")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.AnalysisComplete {
		t.Fatal("Expected analysis_complete")
	}
	analysis := result.AnalysisResult
	if analysis == nil {
		t.Fatal("Expected an analysis result")
	}
	if !analysis.HasDisease {
		t.Fatal("Expected disease detected")
	}
	if analysis.Crop != "tomato" {
		t.Errorf("Expected crop tomato, got %q", analysis.Crop)
	}
	// "Leaf blight" and "Severe lesion damage" match disease keywords; the
	// second label also carries a high-severity adjective.
	if len(analysis.Indicators) != 2 {
		t.Fatalf("Expected 2 indicators, got %d: %+v", len(analysis.Indicators), analysis.Indicators)
	}
	if analysis.DiseaseType != "Leaf blight" {
		t.Errorf("Expected disease type from first indicator, got %q", analysis.DiseaseType)
	}
	if analysis.SeverityScore != 10 {
		t.Errorf("Expected severity 10 (high bucket, 2 indicators), got %d", analysis.SeverityScore)
	}
	if analysis.Confidence != 0.92 {
		t.Errorf("Expected confidence from first label, got %v", analysis.Confidence)
	}
	if analysis.Recommendation.Treatment != "full diagnostic narrative" {
		t.Errorf("Expected narrative treatment, got %q", analysis.Recommendation.Treatment)
	}
	if analysis.Report != "structured medical report" {
		t.Errorf("Expected detailed report, got %q", analysis.Report)
	}

	var hasUrgent, hasTreatmentNav bool
	for _, action := range result.Actions {
		if action.Kind == domain.ActionUrgentAttention {
			hasUrgent = true
		}
		if action.Kind == domain.ActionNavigate && action.Page == "treatment-suggestions" {
			hasTreatmentNav = true
		}
	}
	if !hasUrgent {
		t.Error("Expected urgent_attention action for severity above 7")
	}
	if !hasTreatmentNav {
		t.Error("Expected navigation to treatment-suggestions")
	}
}

func TestDiseaseAnalysis_HealthyPlant(t *testing.T) {
	vision := &fakeVision{labels: []collab.Label{
		{Description: "Green leaf", Score: 0.95},
		{Description: "Plant", Score: 0.90},
	}}
	a, sid := newTestAgent(t, Deps{Vision: vision})

	result, err := a.Execute(context.Background(), sid, domain.TaskDiseaseAnalysis, "Analyze rice", []byte("img"), "")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	analysis := result.AnalysisResult
	if analysis.HasDisease {
		t.Error("Expected no disease")
	}
	if analysis.SeverityScore != 0 {
		t.Errorf("Expected severity 0, got %d", analysis.SeverityScore)
	}
	if analysis.DiseaseType != "None" {
		t.Errorf("Expected disease type None, got %q", analysis.DiseaseType)
	}
	if analysis.Recommendation.SeverityLevel != "None" {
		t.Errorf("Expected severity level None, got %q", analysis.Recommendation.SeverityLevel)
	}
	// "Green leaf" names a plant part, so it is an affected area even when
	// healthy; the recommendation stays on the healthy branch regardless.
	if !strings.HasPrefix(analysis.Recommendation.Title, "✅") {
		t.Errorf("Expected healthy title, got %q", analysis.Recommendation.Title)
	}

	for _, action := range result.Actions {
		if action.Kind == domain.ActionNavigate && action.Page == "treatment-suggestions" {
			t.Error("Healthy plant must not navigate to treatment-suggestions")
		}
		if action.Kind == domain.ActionUrgentAttention {
			t.Error("Healthy plant must not get an urgent_attention action")
		}
	}
}

func TestDiseaseAnalysis_NarrativeFallback(t *testing.T) {
	vision := &fakeVision{labels: []collab.Label{
		{Description: "Leaf rust", Score: 0.9},
	}}
	a, sid := newTestAgent(t, Deps{Vision: vision})

	result, err := a.Execute(context.Background(), sid, domain.TaskDiseaseAnalysis, "Analyze wheat", []byte("img"), "")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	analysis := result.AnalysisResult
	if analysis.Recommendation.Treatment != analysisUnavailable {
		t.Errorf("Expected fallback treatment, got %q", analysis.Recommendation.Treatment)
	}
	want := "Detailed analysis report could not be generated. Please consult local agricultural experts."
	if analysis.Report != want {
		t.Errorf("Expected fallback report, got %q", analysis.Report)
	}
}

func TestDiseaseAnalysis_VisionUnavailable(t *testing.T) {
	a, sid := newTestAgent(t, Deps{})

	_, err := a.Execute(context.Background(), sid, domain.TaskDiseaseAnalysis, "Analyze maize", []byte("img"), "")
	if err == nil {
		t.Fatal("Expected an error when no vision labeler is configured")
	}
}

func TestAdvancedDiseaseAnalysis_SchedulesFollowup(t *testing.T) {
	vision := &fakeVision{labels: []collab.Label{
		{Description: "Stem rot", Score: 0.88},
	}}
	gen := &fakeTextGen{generate: func(string) (string, error) { return "advanced narrative", nil }}
	a, sid := newTestAgent(t, Deps{Vision: vision, TextGen: gen})

	result, err := a.Execute(context.Background(), sid, domain.TaskAdvancedDiseaseAnalysis, "Analyze chili", []byte("img"), "")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.AnalysisLevel != "advanced" {
		t.Errorf("Expected analysis level advanced, got %q", result.AnalysisLevel)
	}

	var followup *domain.Action
	for i := range result.Actions {
		if result.Actions[i].Kind == domain.ActionScheduleFollowup {
			followup = &result.Actions[i]
		}
	}
	if followup == nil {
		t.Fatal("Expected a schedule_followup action")
	}
	if !strings.HasSuffix(followup.FollowupDate, "T09:00:00Z") {
		t.Errorf("Expected 09:00 UTC followup, got %q", followup.FollowupDate)
	}
}

func TestHyperspectralAnalysis_MonitoringSchedule(t *testing.T) {
	vision := &fakeVision{labels: []collab.Label{
		{Description: "Leaf spot", Score: 0.8},
	}}
	gen := &fakeTextGen{generate: func(string) (string, error) { return "spectral narrative", nil }}
	a, sid := newTestAgent(t, Deps{Vision: vision, TextGen: gen})

	result, err := a.Execute(context.Background(), sid, domain.TaskHyperspectralDiseaseAnalysis, "Analyze banana", []byte("img"), "")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.AnalysisLevel != "hyperspectral" {
		t.Errorf("Expected analysis level hyperspectral, got %q", result.AnalysisLevel)
	}

	first := result.Actions[0]
	if first.Kind != domain.ActionHyperspectralComplete {
		t.Fatalf("Expected hyperspectral_analysis_complete first, got %q", first.Kind)
	}
	if first.Spectral == nil || first.Analysis == nil {
		t.Error("Expected spectral data and analysis on the completion action")
	}

	var schedule []domain.MonitoringCheck
	for _, action := range result.Actions {
		if action.Kind == domain.ActionSpectralSchedule {
			schedule = action.Schedule
		}
	}
	wantDays := []int{1, 3, 7, 14}
	if len(schedule) != len(wantDays) {
		t.Fatalf("Expected %d monitoring checks, got %d", len(wantDays), len(schedule))
	}
	for i, day := range wantDays {
		if schedule[i].Day != day {
			t.Errorf("Expected check %d on day %d, got %d", i, day, schedule[i].Day)
		}
	}
}
