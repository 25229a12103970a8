package agent

import (
	"fmt"
	"strings"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

// Prompt assembly for the text-generation collaborator. These are literal
// templates; the collaborator owns all interpretation.

func intentPrompt(userInput string) string {
	return fmt.Sprintf(`Classify the user's intent into one of the following categories: DISEASE_ANALYSIS, COLD_STORAGE_BOOKING, FORM_FILLING, CROP_RECOMMENDATION, NAVIGATION, or GENERAL_QUERY.

User input: "%s"

Intent:`, userInput)
}

func diseaseAnalysisPrompt(crop string, a *domain.DiseaseAnalysis) string {
	var indicators []string
	limit := minInt(len(a.Indicators), 5)
	for _, ind := range a.Indicators[:limit] {
		indicators = append(indicators, fmt.Sprintf("- %s (%.1f%%)", ind.Description, ind.Confidence*100))
	}
	areas := "None identified"
	if len(a.AffectedAreas) > 0 {
		areas = strings.Join(a.AffectedAreas, ", ")
	}

	return fmt.Sprintf(`Analyze this crop disease detection result for %s:

DETECTED FEATURES:
- Disease Indicators: %d found
- Confidence: %.2f%%
- Affected Areas: %s
- Severity Score: %d/10

DISEASE INDICATORS FOUND:
%s

Please provide:
1. **Disease Diagnosis**: What specific disease/condition is likely present?
2. **Symptom Analysis**: Detailed explanation of visible symptoms
3. **Causal Factors**: What might be causing this condition?
4. **Impact Assessment**: How this affects crop health and yield
5. **Immediate Actions**: What to do right now
6. **Treatment Options**: Specific treatments with dosages/timing
7. **Prevention Strategies**: Long-term prevention measures

Format as a comprehensive agricultural diagnostic report.`,
		crop, len(a.Indicators), a.Confidence*100, areas, a.SeverityScore, strings.Join(indicators, "\n"))
}

func diseaseReportPrompt(crop string, a *domain.DiseaseAnalysis) string {
	areas := "Unknown"
	if len(a.AffectedAreas) > 0 {
		areas = strings.Join(a.AffectedAreas, ", ")
	}
	return fmt.Sprintf(`Based on the crop disease analysis results, provide a comprehensive report for %s:

Analysis Results:
- Disease Detected: %t
- Primary Finding: %s
- Confidence Level: %.2f%%
- Affected Areas: %s

Please provide:
1. **Disease Identification**: Detailed description of the identified disease/symptoms
2. **Severity Assessment**: Rate the severity (Low/Medium/High) and explain why
3. **Spread Analysis**: How the disease might spread and current containment status
4. **Treatment Plan**: Step-by-step treatment recommendations with specific products/dosages
5. **Prevention Measures**: Long-term prevention strategies
6. **Expected Recovery**: Timeline and success factors
7. **Monitoring Plan**: How to monitor progress and when to seek expert help

Format the response as a structured medical report for farmers.`,
		crop, a.HasDisease, a.DiseaseType, a.Confidence*100, areas)
}

func advancedAnalysisPrompt(crop string, a *domain.DiseaseAnalysis, s *domain.SpectralData) string {
	areas := "Unknown"
	if len(a.AffectedAreas) > 0 {
		areas = strings.Join(a.AffectedAreas, ", ")
	}
	return fmt.Sprintf(`Provide comprehensive advanced disease analysis for %s:

DISEASE ANALYSIS RESULTS:
- Disease Type: %s
- Severity Score: %d/10
- Confidence: %.2f%%
- Affected Areas: %s

HYPERSPECTRAL DATA:
- Chlorophyll Content: %.1f µg/cm²
- Water Stress Level: %.1f%%
- Nutrient Deficiency: %s
- Disease Stress Index: %.1f%%

Please provide:
1. **Advanced Disease Diagnosis**: Specific pathogen identification based on visual and hyperspectral data
2. **Physiological Impact**: How the disease affects plant physiology (photosynthesis, water uptake, nutrient absorption)
3. **Stress Analysis**: Interpretation of hyperspectral stress indicators
4. **Precision Treatment**: Specific fungicides/herbicides with exact dosages and application methods
5. **Recovery Timeline**: Expected recovery time and monitoring milestones
6. **Preventive Protocols**: Advanced prevention strategies including resistant varieties
7. **Economic Impact**: Potential yield loss and cost-benefit analysis of treatments
8. **Expert Consultation**: When and why to consult agricultural pathologists

Format as a professional agricultural pathology report with actionable recommendations.`,
		crop, a.DiseaseType, a.SeverityScore, a.Confidence*100, areas,
		s.ChlorophyllContent, s.WaterStress, s.NutrientDeficiency, s.DiseaseStressIndex)
}

func hyperspectralPrompt(crop string, a *domain.DiseaseAnalysis, s *domain.SpectralData) string {
	areas := "None"
	if len(a.AffectedAreas) > 0 {
		areas = strings.Join(a.AffectedAreas, ", ")
	}
	return fmt.Sprintf(`Provide comprehensive hyperspectral disease analysis for %s:

VISUAL ANALYSIS RESULTS:
- Disease Detected: %t
- Disease Type: %s
- Severity Score: %d/10
- Affected Areas: %s

HYPERSPECTRAL MEASUREMENTS:
- Chlorophyll Content: %.1f µg/cm²
- Water Stress Level: %.1f%%
- Nutrient Deficiency: %s
- Disease Stress Index: %.1f%%
- Photosynthetic Efficiency: %.1f%%
- Leaf Temperature: %.1f°C
- Stomatal Conductance: %.2f mol/m²/s

SPECTRAL INDICES:
- NDVI (Normalized Difference Vegetation Index): %.3f
- PRI (Photochemical Reflectance Index): %.3f
- ARI (Anthocyanin Reflectance Index): %.3f
- CRI (Carotenoid Reflectance Index): %.3f

Please provide:
1. **Spectral Disease Signature**: Analysis of how the disease affects light absorption/reflection patterns
2. **Physiological Stress Assessment**: Impact on photosynthesis, water relations, and nutrient uptake
3. **Early Detection Markers**: Spectral indicators that appear before visible symptoms
4. **Disease Progression Mapping**: How spectral signatures change as disease advances
5. **Precision Treatment Zones**: Identify specific areas needing different treatment intensities
6. **Recovery Monitoring**: Spectral indicators of treatment effectiveness and plant recovery
7. **Preventive Spectral Monitoring**: Baseline measurements for early warning systems
8. **Economic Optimization**: Cost-benefit analysis based on spectral treatment zoning

Include spectral data interpretation, treatment precision recommendations, and long-term monitoring protocols.
Format as a professional hyperspectral agricultural analysis report.`,
		crop, a.HasDisease, a.DiseaseType, a.SeverityScore, areas,
		s.ChlorophyllContent, s.WaterStress, s.NutrientDeficiency, s.DiseaseStressIndex,
		s.PhotosyntheticEfficiency, s.LeafTemperature, s.StomatalConductance,
		s.NDVI, s.PRI, s.ARI, s.CRI)
}

func bookingExtractionPrompt(text string) string {
	return fmt.Sprintf(`Extract the following details from the user's request: crop_type, quantity, duration, and storage_date.
Respond with ONLY a minified JSON object. Example: {"crop_type": "tomatoes", "quantity": "50kg", "duration": "2 weeks", "storage_date": "2025-07-01"}

User Request: "%s"
JSON Output:`, text)
}

func marketQueryPrompt(userInput string) string {
	return fmt.Sprintf(`Analyze this market query: "%s"

Determine:
1. What type of products/commodities are they asking about (crops, fruits, vegetables, artifacts, etc.)
2. What specific items they want prices for
3. Any location preferences (All India or specific states)
4. Time period (current, weekly, monthly trends)

Respond with a JSON object containing:
{
    "product_categories": ["list of categories"],
    "specific_items": ["list of specific products"],
    "locations": ["list of locations"],
    "time_period": "current/weekly/monthly"
}`, userInput)
}

func marketDataPrompt(q marketQuery) string {
	locations := q.Locations
	if len(locations) == 0 {
		locations = []string{"All India"}
	}
	period := q.TimePeriod
	if period == "" {
		period = "current"
	}
	return fmt.Sprintf(`You are an expert agricultural market analyst. Provide comprehensive market price information for:

Categories: %s
Specific Items: %s
Locations: %s
Time Period: %s

For each product, provide:
1. Current market price per kg/quintal
2. Price range (min-max)
3. Major markets where it's traded
4. Price trends (increasing/decreasing/stable)
5. Factors affecting prices
6. Best time to sell
7. Alternative markets

Structure the response as detailed market intelligence that farmers can use for decision making.`,
		strings.Join(q.ProductCategories, ", "), strings.Join(q.SpecificItems, ", "),
		strings.Join(locations, ", "), period)
}

func workflowPrompt(systemPrompt, userPrompt, uiSchema string) string {
	return fmt.Sprintf("%s\n\nHere is the user's request: \"%s\"\n\nHere is the UI schema:\n%s\n\nWorkflow:", systemPrompt, userPrompt, uiSchema)
}

func govSchemePrompt(userInput string) string {
	return fmt.Sprintf(`You are an expert agricultural consultant specializing in Indian government schemes for farmers.
Based on the user's query: "%s"

Provide detailed information about relevant government schemes including:
1. Scheme name and full details
2. Eligibility criteria
3. Benefits and subsidies
4. Application process
5. Required documents
6. Contact information for help

Focus on schemes like PM-KISAN, PMFBY, Soil Health Card Scheme, Kisan Credit Card, eNAM, and other relevant schemes based on the query.

Structure your response as a clear, actionable summary that a farmer can understand and use.`, userInput)
}

func artisanPrompt(userInput string) string {
	return fmt.Sprintf(`You are an expert marketing consultant specializing in traditional Indian crafts and artisan products.
Analyze this artisan query/request: "%s"

Provide comprehensive assistance for marketing their craft including:
1. **Craft Analysis**: Identify the type of craft/artisan product
2. **Story Development**: Create compelling narratives about the artisan's heritage, techniques, and cultural significance
3. **Market Positioning**: Suggest pricing strategies, target audiences, and unique selling propositions
4. **Digital Marketing**: Provide social media content ideas, product descriptions, and online presence strategies
5. **Sales Channels**: Recommend platforms, marketplaces, and distribution strategies

Structure your response as actionable marketing intelligence that artisans can implement immediately.`, userInput)
}

func artisanProductPrompt(marketing string) string {
	return fmt.Sprintf(`Based on this craft analysis:

%s

Create:
1. **Product Title**: Catchy, SEO-friendly titles for their products
2. **Product Description**: Engaging descriptions highlighting craftsmanship, heritage, and unique features
3. **Social Media Posts**: Ready-to-use captions for Instagram, Facebook, and other platforms
4. **Storytelling Content**: Narrative content about the artisan's journey and craft tradition
5. **Pricing Strategy**: Suggested price ranges and positioning
6. **Target Audience**: Specific customer segments and marketing channels

Make it culturally authentic and commercially viable.`, marketing)
}

// Spoken summaries rendered from analysis results.

func diseaseAnalysisSummary(a *domain.DiseaseAnalysis) string {
	if !a.HasDisease {
		return fmt.Sprintf("Good news! Your %s appears healthy with no disease indicators detected. Continue regular monitoring and maintenance practices.", a.Crop)
	}

	severityText := "low"
	if a.SeverityScore > 7 {
		severityText = "high"
	} else if a.SeverityScore > 4 {
		severityText = "medium"
	}

	summary := fmt.Sprintf("Disease analysis complete for your %s. I detected %s with %s severity rating of %d out of 10. ",
		a.Crop, a.DiseaseType, severityText, a.SeverityScore)
	switch {
	case a.SeverityScore > 7:
		summary += "This requires immediate attention. Please isolate affected plants and contact agricultural experts right away. "
	case a.SeverityScore > 4:
		summary += "Treatment should be applied within the next 24 to 48 hours. "
	default:
		summary += "Monitor the situation and apply preventive measures. "
	}
	return summary + "I've provided detailed treatment recommendations and next steps in the analysis report."
}

func advancedAnalysisSummary(a *domain.DiseaseAnalysis, s *domain.SpectralData) string {
	if !a.HasDisease {
		return fmt.Sprintf("Advanced analysis shows your %s is healthy. Chlorophyll levels at %.1f µg/cm², water stress minimal at %.1f%%. All spectral indicators within optimal ranges. Continue preventive maintenance.",
			a.Crop, s.ChlorophyllContent, s.WaterStress)
	}

	summary := fmt.Sprintf("Advanced analysis complete for your %s. Detected %s with severity score %d/10. ",
		a.Crop, a.DiseaseType, a.SeverityScore)
	summary += fmt.Sprintf("Spectral data shows chlorophyll content at %.1f µg/cm² and water stress at %.1f%%. ",
		s.ChlorophyllContent, s.WaterStress)
	switch {
	case a.SeverityScore > 7:
		summary += "Critical condition detected. Immediate isolation and professional treatment required. "
	case a.SeverityScore > 4:
		summary += "Moderate to severe infection. Treatment should begin within 48 hours. "
	default:
		summary += "Early stage infection detected. Monitor closely and apply preventive treatments. "
	}
	return summary + "Detailed hyperspectral analysis and precision treatment recommendations are now available."
}

func hyperspectralSummary(a *domain.DiseaseAnalysis, s *domain.SpectralData) string {
	summary := fmt.Sprintf("Hyperspectral analysis complete for %s. ", a.Crop)

	if !a.HasDisease {
		summary += fmt.Sprintf("Plant health excellent with NDVI of %.3f and photosynthetic efficiency at %.1f%%. ", s.NDVI, s.PhotosyntheticEfficiency)
		return summary + "All spectral indicators within healthy ranges. No disease signatures detected."
	}

	summary += fmt.Sprintf("Detected %s with spectral disease stress index at %.1f%%. ", a.DiseaseType, s.DiseaseStressIndex)
	summary += fmt.Sprintf("Chlorophyll content measured at %.1f µg/cm², water stress at %.1f%%. ", s.ChlorophyllContent, s.WaterStress)
	if a.SeverityScore > 7 {
		summary += "Spectral signatures indicate severe physiological stress. Immediate precision treatment recommended. "
	} else {
		summary += "Spectral analysis confirms disease presence with moderate stress levels. "
	}
	return summary + "Detailed spectral mapping and treatment zone identification completed."
}
