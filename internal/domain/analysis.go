package domain

import "time"

// DiseaseIndicator is one vision label matched against the disease keyword set.
type DiseaseIndicator struct {
	Term        string  `json:"term"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// Recommendation summarizes what the farmer should do about a finding.
type Recommendation struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Treatment         string   `json:"treatment"`
	AdvancedTreatment string   `json:"advanced_treatment,omitempty"`
	SeverityLevel     string   `json:"severity_level"`
	Urgency           string   `json:"urgency"`
	NextSteps         []string `json:"next_steps"`
}

// DiseaseAnalysis is the full output of the disease analysis pipeline.
type DiseaseAnalysis struct {
	Crop           string             `json:"crop"`
	HasDisease     bool               `json:"has_disease"`
	DiseaseType    string             `json:"disease_type"`
	Confidence     float64            `json:"confidence"`
	SeverityScore  int                `json:"severity_score"`
	AffectedAreas  []string           `json:"affected_areas,omitempty"`
	Indicators     []DiseaseIndicator `json:"disease_indicators,omitempty"`
	Recommendation Recommendation     `json:"recommendation"`
	Report         string             `json:"detailed_report,omitempty"`
	Method         string             `json:"method"`
	AnalyzedAt     time.Time          `json:"analysis_date"`
}

// SpectralData is a simulated hyperspectral reading. Values stand in for real
// sensor measurements and must not drive decisions beyond severity reporting.
type SpectralData struct {
	ChlorophyllContent       float64 `json:"chlorophyll_content"`
	WaterStress              float64 `json:"water_stress"`
	NutrientDeficiency       string  `json:"nutrient_deficiency"`
	DiseaseStressIndex       float64 `json:"disease_stress_index"`
	PhotosyntheticEfficiency float64 `json:"photosynthetic_efficiency"`
	LeafTemperature          float64 `json:"leaf_temperature"`
	StomatalConductance      float64 `json:"stomatal_conductance"`
	NDVI                     float64 `json:"ndvi"`
	PRI                      float64 `json:"pri"`
	ARI                      float64 `json:"ari"`
	CRI                      float64 `json:"cri"`
	SpectralBands            string  `json:"spectral_bands_analyzed"`
	MeasurementAccuracy      string  `json:"measurement_accuracy"`
	DataQuality              string  `json:"data_quality"`
}

// SpectralRecommendation is a treatment hint derived from spectral readings.
type SpectralRecommendation struct {
	Type          string `json:"type"`
	Priority      string `json:"priority"`
	Action        string `json:"action"`
	SpectralBasis string `json:"spectral_basis"`
}

// MonitoringCheck is one entry in a follow-up monitoring schedule.
type MonitoringCheck struct {
	Day  int    `json:"day"`
	Type string `json:"type"`
}
