package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

// Keyword sets scanned against vision labels. Matching is case-insensitive
// substring containment; the first matching disease keyword per label wins.
var (
	diseaseKeywords = []string{
		"disease", "blight", "fungus", "mold", "rot", "spot", "lesion", "wilt",
		"yellowing", "discoloration", "pest", "insect", "damage", "decay",
		"rust", "mildew", "scab", "canker", "gall", "smut",
	}
	plantPartKeywords   = []string{"leaf", "stem", "root", "fruit", "flower", "bark"}
	severityHighWords   = []string{"severe", "extensive", "widespread", "heavy"}
	severityMediumWords = []string{"moderate", "partial", "some"}
	severityLowWords    = []string{"mild", "slight", "minor"}
)

const analysisUnavailable = "AI-powered detailed analysis not available. Please consult local agricultural experts."

// cropNameFromInput strips the "analyze " prefix to obtain the crop name.
func cropNameFromInput(input string) string {
	name := strings.ReplaceAll(input, "Analyze ", "")
	name = strings.ReplaceAll(name, "analyze ", "")
	name = strings.TrimSpace(name)
	if name == "" {
		name = "crop"
	}
	return name
}

// severityScore computes the 0-10 severity from the indicator count and the
// observed severity buckets. Zero whenever no indicators were found.
func severityScore(indicatorCount int, buckets []string) int {
	if indicatorCount == 0 {
		return 0
	}
	base := indicatorCount * 2
	switch {
	case contains(buckets, "high"):
		return minInt(9+base, 10)
	case contains(buckets, "medium"):
		return minInt(6+base, 8)
	default:
		return minInt(3+base, 5)
	}
}

// handleDiseaseAnalysis runs the standard disease analysis workflow.
func (a *Agent) handleDiseaseAnalysis(ctx context.Context, req request) (*domain.TaskResult, error) {
	actions := []domain.Action{navigateAction("disease-detector")}

	if len(req.Image) == 0 {
		actions = append(actions, askUserAction(
			"Please capture a clear image of your crop showing the affected area for accurate disease analysis",
			"image_capture",
		))
		return &domain.TaskResult{
			SessionID: req.SessionID,
			TaskType:  domain.TaskDiseaseAnalysis,
			Actions:   actions,
			Status:    domain.StatusAwaitingImage,
		}, nil
	}

	crop := cropNameFromInput(req.Input)
	analysis, err := a.analyzeDisease(ctx, req.Image, crop)
	if err != nil {
		return nil, err
	}
	actions = append(actions, analysisAction(analysis))

	report, err := a.generateText(ctx, diseaseReportPrompt(crop, analysis))
	if err != nil {
		logCollabFailure("disease report", err)
		report = "Detailed analysis report could not be generated. Please consult local agricultural experts."
	}
	analysis.Report = report

	actions = append(actions, speakAction(diseaseAnalysisSummary(analysis)))

	if analysis.HasDisease {
		actions = append(actions, navigateAction("treatment-suggestions"))
		if analysis.SeverityScore > 7 {
			actions = append(actions, domain.Action{
				Kind:    domain.ActionUrgentAttention,
				Message: "⚠️ HIGH PRIORITY: This appears to be a severe infection. Please contact agricultural experts immediately.",
				Recommendations: []string{
					"Isolate affected plants",
					"Contact local agricultural officer",
					"Consider professional pest control services",
					"Monitor neighboring plants closely",
				},
				Timestamp: time.Now().UTC(),
			})
		}
	}

	return &domain.TaskResult{
		SessionID:        req.SessionID,
		TaskType:         domain.TaskDiseaseAnalysis,
		Actions:          actions,
		Status:           domain.StatusCompleted,
		AnalysisComplete: true,
		AnalysisResult:   analysis,
	}, nil
}

// handleAdvancedDiseaseAnalysis adds a simulated spectral reading and a longer
// narrative on top of the standard analysis.
func (a *Agent) handleAdvancedDiseaseAnalysis(ctx context.Context, req request) (*domain.TaskResult, error) {
	if len(req.Image) == 0 {
		return &domain.TaskResult{
			SessionID: req.SessionID,
			TaskType:  domain.TaskAdvancedDiseaseAnalysis,
			Actions: []domain.Action{askUserAction(
				"Please capture a high-quality image of your crop for advanced disease analysis. Make sure to show both healthy and affected areas clearly.",
				"image_capture",
			)},
			Status:        domain.StatusAwaitingImage,
			AnalysisLevel: "advanced",
		}, nil
	}

	crop := cropNameFromInput(req.Input)
	analysis, err := a.analyzeDisease(ctx, req.Image, crop)
	if err != nil {
		return nil, err
	}
	spectral := a.spectral.Generate(analysis.HasDisease, analysis.SeverityScore)

	if analysis.HasDisease {
		treatment, err := a.generateText(ctx, advancedAnalysisPrompt(crop, analysis, spectral))
		if err != nil {
			logCollabFailure("advanced analysis", err)
			treatment = "Advanced analysis temporarily unavailable. Please consult local agricultural experts for detailed diagnosis."
		}
		analysis.Recommendation.AdvancedTreatment = treatment
		analysis.Method = "Advanced AI + Hyperspectral Analysis"
	}

	actions := []domain.Action{advancedAnalysisAction(analysis, spectral)}
	actions = append(actions, speakAction(advancedAnalysisSummary(analysis, spectral)))

	if analysis.HasDisease {
		followup := time.Now().UTC().AddDate(0, 0, 7)
		followup = time.Date(followup.Year(), followup.Month(), followup.Day(), 9, 0, 0, 0, time.UTC)
		actions = append(actions, domain.Action{
			Kind:         domain.ActionScheduleFollowup,
			Message:      "Follow-up analysis recommended in 7 days to monitor treatment effectiveness",
			FollowupDate: followup.Format(time.RFC3339),
			Reminder:     "Monitor plant recovery and re-analyze if symptoms persist",
			Timestamp:    time.Now().UTC(),
		})
	}

	return &domain.TaskResult{
		SessionID:     req.SessionID,
		TaskType:      domain.TaskAdvancedDiseaseAnalysis,
		Actions:       actions,
		Status:        domain.StatusCompleted,
		AnalysisLevel: "advanced",
	}, nil
}

// handleHyperspectralDiseaseAnalysis produces the full simulated spectral
// workflow with a monitoring schedule.
func (a *Agent) handleHyperspectralDiseaseAnalysis(ctx context.Context, req request) (*domain.TaskResult, error) {
	if len(req.Image) == 0 {
		return &domain.TaskResult{
			SessionID: req.SessionID,
			TaskType:  domain.TaskHyperspectralDiseaseAnalysis,
			Actions: []domain.Action{askUserAction(
				"Please capture a hyperspectral image for detailed spectral analysis. Ensure good lighting and clear view of the affected area.",
				"image_capture",
			)},
			Status:        domain.StatusAwaitingImage,
			AnalysisLevel: "hyperspectral",
		}, nil
	}

	crop := cropNameFromInput(req.Input)
	analysis, err := a.analyzeDisease(ctx, req.Image, crop)
	if err != nil {
		return nil, err
	}
	spectral := a.spectral.Generate(analysis.HasDisease, analysis.SeverityScore)

	narrative, err := a.generateText(ctx, hyperspectralPrompt(crop, analysis, spectral))
	if err != nil {
		logCollabFailure("hyperspectral analysis", err)
		narrative = "Advanced hyperspectral analysis temporarily unavailable. Basic spectral data is still provided for reference."
	}

	actions := []domain.Action{{
		Kind:           domain.ActionHyperspectralComplete,
		Analysis:       analysis,
		Spectral:       spectral,
		Data:           narrative,
		SpectralAdvice: spectralRecommendations(spectral, analysis),
		Timestamp:      time.Now().UTC(),
	}}
	actions = append(actions, speakAction(hyperspectralSummary(analysis, spectral)))
	actions = append(actions, domain.Action{
		Kind:    domain.ActionSpectralSchedule,
		Message: "Spectral monitoring recommended every 3-5 days during treatment period",
		Schedule: []domain.MonitoringCheck{
			{Day: 1, Type: "Baseline measurement"},
			{Day: 3, Type: "Treatment response check"},
			{Day: 7, Type: "Recovery assessment"},
			{Day: 14, Type: "Final evaluation"},
		},
		Alerts:    "System will notify if spectral signatures indicate worsening condition",
		Timestamp: time.Now().UTC(),
	})

	return &domain.TaskResult{
		SessionID:     req.SessionID,
		TaskType:      domain.TaskHyperspectralDiseaseAnalysis,
		Actions:       actions,
		Status:        domain.StatusCompleted,
		AnalysisLevel: "hyperspectral",
	}, nil
}

// analyzeDisease runs the detailed pipeline and falls back to the simplified
// one when it fails.
func (a *Agent) analyzeDisease(ctx context.Context, image []byte, crop string) (*domain.DiseaseAnalysis, error) {
	analysis, err := a.analyzeDiseaseDetailed(ctx, image, crop)
	if err == nil {
		return analysis, nil
	}
	logCollabFailure("detailed disease analysis", err)
	return a.analyzeDiseaseBasic(ctx, image, crop)
}

// analyzeDiseaseDetailed scans vision labels for disease indicators, affected
// plant parts and severity cues, then scores severity.
func (a *Agent) analyzeDiseaseDetailed(ctx context.Context, image []byte, crop string) (*domain.DiseaseAnalysis, error) {
	labels, err := a.labelImage(ctx, image)
	if err != nil {
		return nil, err
	}

	var (
		indicators    []domain.DiseaseIndicator
		affectedAreas []string
		buckets       []string
	)
	for _, label := range labels {
		desc := strings.ToLower(label.Description)

		for _, keyword := range diseaseKeywords {
			if strings.Contains(desc, keyword) {
				indicators = append(indicators, domain.DiseaseIndicator{
					Term:        keyword,
					Description: label.Description,
					Confidence:  label.Score,
				})
				break
			}
		}

		if containsAny(desc, plantPartKeywords) {
			affectedAreas = append(affectedAreas, label.Description)
		}

		switch {
		case containsAny(desc, severityHighWords):
			buckets = append(buckets, "high")
		case containsAny(desc, severityMediumWords):
			buckets = append(buckets, "medium")
		case containsAny(desc, severityLowWords):
			buckets = append(buckets, "low")
		}
	}

	hasDisease := len(indicators) > 0
	score := severityScore(len(indicators), buckets)

	var confidence float64
	if len(labels) > 0 {
		confidence = labels[0].Score
	}
	diseaseType := "None"
	if hasDisease {
		diseaseType = indicators[0].Description
	}

	analysis := &domain.DiseaseAnalysis{
		Crop:          crop,
		HasDisease:    hasDisease,
		DiseaseType:   diseaseType,
		Confidence:    confidence,
		SeverityScore: score,
		AffectedAreas: affectedAreas,
		Indicators:    indicators,
		Method:        "AI-powered Vision Analysis + Gemini AI",
		AnalyzedAt:    time.Now().UTC(),
	}

	narrative, err := a.generateText(ctx, diseaseAnalysisPrompt(crop, analysis))
	if err != nil {
		logCollabFailure("disease analysis narrative", err)
		narrative = analysisUnavailable
	}
	analysis.Recommendation = buildRecommendation(analysis, narrative)
	return analysis, nil
}

// analyzeDiseaseBasic only checks for the literal substrings "disease" and
// "blight" in label text.
func (a *Agent) analyzeDiseaseBasic(ctx context.Context, image []byte, crop string) (*domain.DiseaseAnalysis, error) {
	labels, err := a.labelImage(ctx, image)
	if err != nil {
		return nil, err
	}

	hasDisease := false
	for _, label := range labels {
		desc := strings.ToLower(label.Description)
		if strings.Contains(desc, "disease") || strings.Contains(desc, "blight") {
			hasDisease = true
			break
		}
	}

	var confidence float64
	diseaseType := "None"
	if len(labels) > 0 {
		confidence = labels[0].Score
		if hasDisease {
			diseaseType = labels[0].Description
		}
	}
	score := 0
	if hasDisease {
		score = 5
	}

	finding := "Healthy Plant"
	indicatorNote := "No disease indicators detected"
	if hasDisease {
		finding = "Disease Detected"
		indicatorNote = "Disease indicators found"
	}

	return &domain.DiseaseAnalysis{
		Crop:          crop,
		HasDisease:    hasDisease,
		DiseaseType:   diseaseType,
		Confidence:    confidence,
		SeverityScore: score,
		Recommendation: domain.Recommendation{
			Title:         fmt.Sprintf("%s in %s", finding, crop),
			Description:   fmt.Sprintf("Basic analysis completed. %s.", indicatorNote),
			Treatment:     "Please consult local agricultural experts for detailed diagnosis and treatment.",
			SeverityLevel: "Unknown",
			Urgency:       "Consult expert",
			NextSteps:     []string{"Contact agricultural extension office", "Get professional diagnosis"},
		},
		Method:     "Basic Vision Analysis",
		AnalyzedAt: time.Now().UTC(),
	}, nil
}

func (a *Agent) labelImage(ctx context.Context, image []byte) ([]labeled, error) {
	if a.vision == nil {
		return nil, errors.New("vision labeler not configured")
	}
	labels, err := a.vision.LabelImage(ctx, image)
	if err != nil {
		return nil, err
	}
	out := make([]labeled, len(labels))
	for i, l := range labels {
		out[i] = labeled{Description: l.Description, Score: l.Score}
	}
	return out, nil
}

type labeled struct {
	Description string
	Score       float64
}

// buildRecommendation branches only on disease presence and severity. The
// treatment narrative comes from the text-generation collaborator (or its
// fallback string) and is carried through unchanged.
func buildRecommendation(a *domain.DiseaseAnalysis, treatment string) domain.Recommendation {
	if !a.HasDisease {
		return domain.Recommendation{
			Title:         fmt.Sprintf("✅ Healthy %s Plant Detected", a.Crop),
			Description:   fmt.Sprintf("Analysis shows no significant disease indicators. Plant appears healthy with %.1f%% confidence in identification.", a.Confidence*100),
			Treatment:     "No treatment required. Continue regular monitoring and maintenance.",
			SeverityLevel: "None",
			Urgency:       "No action required",
			NextSteps: []string{
				"Continue regular crop monitoring",
				"Maintain proper irrigation and fertilization",
				"Implement preventive measures",
				"Regular scouting for early disease detection",
			},
		}
	}

	level := "Low"
	urgency := "Monitor and treat as needed"
	if a.SeverityScore > 7 {
		level = "High"
		urgency = "Immediate action required"
	} else if a.SeverityScore > 4 {
		level = "Medium"
		urgency = "Address within 24-48 hours"
	}

	areas := "Various plant parts"
	if len(a.AffectedAreas) > 0 {
		limit := minInt(len(a.AffectedAreas), 3)
		areas = strings.Join(a.AffectedAreas[:limit], ", ")
	}

	return domain.Recommendation{
		Title:         fmt.Sprintf("🚨 Disease Detected: %s in %s", a.DiseaseType, a.Crop),
		Description:   fmt.Sprintf("Analysis shows %d disease indicators with %d/10 severity. Affected areas: %s.", len(a.Indicators), a.SeverityScore, areas),
		Treatment:     treatment,
		SeverityLevel: level,
		Urgency:       urgency,
		NextSteps: []string{
			"Isolate affected plants to prevent spread",
			"Remove and destroy severely infected plant material",
			"Apply recommended treatments immediately",
			"Monitor neighboring plants for symptoms",
			"Contact local agricultural extension office if unsure",
		},
	}
}

func analysisAction(analysis *domain.DiseaseAnalysis) domain.Action {
	return domain.Action{
		Kind:      domain.ActionDiseaseAnalysisDetailed,
		Analysis:  analysis,
		Timestamp: time.Now().UTC(),
	}
}

func advancedAnalysisAction(analysis *domain.DiseaseAnalysis, spectral *domain.SpectralData) domain.Action {
	return domain.Action{
		Kind:      domain.ActionDiseaseAnalysisDetailed,
		Analysis:  analysis,
		Spectral:  spectral,
		Timestamp: time.Now().UTC(),
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
