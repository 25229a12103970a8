package domain

import "time"

// TaskType selects which handler processes a request.
type TaskType string

// The fixed task enumeration. The string values are part of the client
// contract and must not change.
const (
	TaskFormFilling                  TaskType = "form_filling"
	TaskDiseaseAnalysis              TaskType = "disease_analysis"
	TaskColdStorageBooking           TaskType = "cold_storage_booking"
	TaskMarketAnalysis               TaskType = "market_analysis"
	TaskCropRecommendation           TaskType = "crop_recommendation"
	TaskGovSchemeApplication         TaskType = "gov_scheme_application"
	TaskCropMonitor                  TaskType = "crop_monitor"
	TaskCommunity                    TaskType = "community"
	TaskProfile                      TaskType = "profile"
	TaskGroceryMarketplace           TaskType = "grocery_marketplace"
	TaskOrders                       TaskType = "orders"
	TaskChat                         TaskType = "chat"
	TaskAdvancedDiseaseAnalysis      TaskType = "advanced_disease_analysis"
	TaskHyperspectralDiseaseAnalysis TaskType = "hyperspectral_disease_analysis"
	TaskArtisanMarketplace           TaskType = "artisan_marketplace"
	TaskGeneralQuery                 TaskType = "general_query"
)

// AllTaskTypes returns the tasks advertised to new sessions, in a stable order.
func AllTaskTypes() []TaskType {
	return []TaskType{
		TaskFormFilling,
		TaskDiseaseAnalysis,
		TaskColdStorageBooking,
		TaskMarketAnalysis,
		TaskCropRecommendation,
		TaskGovSchemeApplication,
		TaskCropMonitor,
		TaskCommunity,
		TaskProfile,
		TaskGroceryMarketplace,
		TaskOrders,
		TaskChat,
		TaskAdvancedDiseaseAnalysis,
		TaskHyperspectralDiseaseAnalysis,
		TaskArtisanMarketplace,
	}
}

// TaskStatus is the terminal or waiting state of a single task invocation.
type TaskStatus string

const (
	StatusCompleted      TaskStatus = "completed"
	StatusAwaitingInfo   TaskStatus = "awaiting_info"
	StatusAwaitingImage  TaskStatus = "awaiting_image"
	StatusNotImplemented TaskStatus = "not_implemented"
	StatusError          TaskStatus = "error"
)

// ActionKind tags one unit of client-facing instruction.
type ActionKind string

const (
	ActionNavigate     ActionKind = "navigate"
	ActionFillForm     ActionKind = "fill_form"
	ActionCaptureImage ActionKind = "capture_image"
	ActionAskUser      ActionKind = "ask_user"
	ActionSpeak        ActionKind = "speak_response"
	ActionCompleteTask ActionKind = "complete_task"
	ActionCheckStatus  ActionKind = "check_status"

	// Informational kinds carrying task-specific payloads.
	ActionDiseaseAnalysisDetailed ActionKind = "analyze_disease_detailed"
	ActionDiseaseAnalysisBasic    ActionKind = "analyze_disease_basic"
	ActionUrgentAttention         ActionKind = "urgent_attention"
	ActionScheduleFollowup        ActionKind = "schedule_followup"
	ActionSpectralSchedule        ActionKind = "spectral_monitoring_schedule"
	ActionHyperspectralComplete   ActionKind = "hyperspectral_analysis_complete"
	ActionMarketAnalysis          ActionKind = "market_analysis"
	ActionMarketAnalysisFallback  ActionKind = "market_analysis_fallback"
	ActionGovSchemeInfo           ActionKind = "gov_scheme_info"
	ActionArtisanAssistance       ActionKind = "artisan_marketplace_assistance"
	ActionMarketplaceListing      ActionKind = "marketplace_listing"
)

// Action is a tagged variant; only the fields relevant to its kind are set.
type Action struct {
	Kind ActionKind `json:"action"`

	Page             string `json:"page,omitempty"`
	Form             string `json:"form,omitempty"`
	Field            string `json:"field,omitempty"`
	Value            string `json:"value,omitempty"`
	Message          string `json:"message,omitempty"`
	Question         string `json:"question,omitempty"`
	Context          string `json:"context,omitempty"`
	RequiresResponse bool   `json:"requires_response,omitempty"`
	Summary          string `json:"summary,omitempty"`
	Item             string `json:"item,omitempty"`
	Status           string `json:"status,omitempty"`
	Query            string `json:"query,omitempty"`
	Note             string `json:"note,omitempty"`
	Reminder         string `json:"reminder,omitempty"`
	FollowupDate     string `json:"followup_date,omitempty"`
	Suggestion       string `json:"suggestion,omitempty"`
	Alerts           string `json:"alerts,omitempty"`

	// Free-text collaborator output (market data, scheme info, marketing copy).
	Data string `json:"data,omitempty"`

	Recommendations []string                 `json:"recommendations,omitempty"`
	Analysis        *DiseaseAnalysis         `json:"analysis,omitempty"`
	Spectral        *SpectralData            `json:"spectral_data,omitempty"`
	SpectralAdvice  []SpectralRecommendation `json:"spectral_recommendations,omitempty"`
	Schedule        []MonitoringCheck        `json:"schedule,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// TaskResult is the envelope returned by every handler invocation.
type TaskResult struct {
	SessionID string     `json:"session_id"`
	TaskType  TaskType   `json:"task_type"`
	Actions   []Action   `json:"actions,omitempty"`
	Status    TaskStatus `json:"status"`

	// Optional task-specific payloads carried through unchanged.
	Error            string           `json:"error,omitempty"`
	AnalysisComplete bool             `json:"analysis_complete,omitempty"`
	AnalysisResult   *DiseaseAnalysis `json:"analysis_result,omitempty"`
	AnalysisLevel    string           `json:"analysis_level,omitempty"`
}

// PendingAsk returns the first ask_user action requiring a response, or nil.
func (r *TaskResult) PendingAsk() *Action {
	if r == nil {
		return nil
	}
	for i := range r.Actions {
		if r.Actions[i].Kind == ActionAskUser && r.Actions[i].RequiresResponse {
			return &r.Actions[i]
		}
	}
	return nil
}
