package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

// Required fields per form. Order fixes the emitted fill_form sequence.
var (
	formRequiredFields    = []string{"name", "location", "crop_type", "area"}
	bookingRequiredFields = []string{"crop_type", "quantity", "duration", "storage_date"}
)

// handleFormFilling extracts registration fields from free text and either
// fills the form or asks for the missing ones.
func (a *Agent) handleFormFilling(_ context.Context, req request) (*domain.TaskResult, error) {
	provided := extractFormData(req.Input)

	var missing []string
	for _, field := range formRequiredFields {
		if _, ok := provided[field]; !ok {
			missing = append(missing, field)
		}
	}

	var actions []domain.Action
	status := domain.StatusCompleted
	if len(missing) > 0 {
		status = domain.StatusAwaitingInfo
		question := fmt.Sprintf("I need these details to complete your form: %s. Please provide them.", strings.Join(missing, ", "))
		actions = append(actions, askUserAction(question, "form_completion"))
	} else {
		for _, field := range formRequiredFields {
			actions = append(actions, fillFormAction("registration_form", field, provided[field]))
		}
		actions = append(actions, completeTaskAction("Form filled successfully!"))
	}

	return &domain.TaskResult{
		SessionID: req.SessionID,
		TaskType:  domain.TaskFormFilling,
		Actions:   actions,
		Status:    status,
	}, nil
}

// handleColdStorageBooking extracts booking details via the text-generation
// collaborator and fills the booking form or asks for missing fields.
func (a *Agent) handleColdStorageBooking(ctx context.Context, req request) (*domain.TaskResult, error) {
	details := a.extractBookingDetails(ctx, req.Input)

	actions := []domain.Action{navigateAction("cold-storage")}
	if v, ok := details["crop_type"]; ok {
		actions = append(actions, fillFormAction("cold_storage_form", "crop_type", v))
	}
	if v, ok := details["quantity"]; ok {
		actions = append(actions, fillFormAction("cold_storage_form", "quantity", v))
	}

	var missing []string
	for _, field := range bookingRequiredFields {
		if _, ok := details[field]; !ok {
			missing = append(missing, field)
		}
	}

	status := domain.StatusCompleted
	if len(missing) > 0 {
		status = domain.StatusAwaitingInfo
		question := fmt.Sprintf("To complete your cold storage booking, I need: %s", strings.Join(missing, ", "))
		actions = append(actions, askUserAction(question, "booking_completion"))
	} else {
		actions = append(actions, completeTaskAction("Cold storage booking completed!"))
		actions = append(actions, speakAction("Your cold storage has been booked successfully!"))
	}

	return &domain.TaskResult{
		SessionID: req.SessionID,
		TaskType:  domain.TaskColdStorageBooking,
		Actions:   actions,
		Status:    status,
	}, nil
}

// extractBookingDetails asks the collaborator for strict JSON. Malformed
// output degrades to an empty extraction rather than failing the request.
func (a *Agent) extractBookingDetails(ctx context.Context, text string) map[string]string {
	reply, err := a.generateText(ctx, bookingExtractionPrompt(text))
	if err != nil {
		logCollabFailure("booking extraction", err)
		return map[string]string{}
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &raw); err != nil {
		slog.Warn("booking extraction returned malformed JSON", "error", err)
		return map[string]string{}
	}

	details := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		details[k] = s
	}
	return details
}

// extractFormData pulls known fields out of free text by keyword lookup.
func extractFormData(text string) map[string]string {
	lower := strings.ToLower(text)
	data := map[string]string{}
	if strings.Contains(lower, "name") {
		data["name"] = extractValueAfterKeyword(text, "name")
	}
	if strings.Contains(lower, "location") || strings.Contains(lower, "village") {
		data["location"] = extractValueAfterKeyword(text, "location")
	}
	if strings.Contains(lower, "crop") {
		data["crop_type"] = extractValueAfterKeyword(text, "crop")
	}
	if strings.Contains(lower, "area") || strings.Contains(lower, "acre") {
		data["area"] = extractValueAfterKeyword(text, "area")
	}
	return data
}

// extractValueAfterKeyword returns the word following the keyword, or
// "unknown" when the keyword is absent or last.
func extractValueAfterKeyword(text, keyword string) string {
	words := strings.Fields(strings.ToLower(text))
	for i, w := range words {
		if w == keyword && i+1 < len(words) {
			return words[i+1]
		}
	}
	return "unknown"
}

// extractJSONObject trims markdown fences and anything outside the outermost
// braces so lightly-decorated collaborator output still parses.
func extractJSONObject(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}
