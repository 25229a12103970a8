package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

// ErrEmptyTranscription is returned when the audio contains no recognizable
// speech.
var ErrEmptyTranscription = errors.New("could not understand the audio")

var errNoTranscriber = errors.New("transcriber not configured")

// VoiceResult is the response of VoiceCommand.
type VoiceResult struct {
	SessionID      string             `json:"session_id"`
	DetectedText   string             `json:"detected_text"`
	DetectedIntent string             `json:"detected_intent"`
	Result         *domain.TaskResult `json:"result"`
}

// VoiceCommand transcribes spoken audio, classifies the intent, and runs the
// matching task.
func (a *Agent) VoiceCommand(ctx context.Context, sessionID string, audio []byte, language domain.Language) (*VoiceResult, error) {
	if _, err := a.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	if a.transcriber == nil {
		return nil, errNoTranscriber
	}
	if language == "" {
		language = domain.LanguageEnglish
	}

	text, err := a.transcriber.Transcribe(ctx, audio, string(language))
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}
	if text == "" {
		return nil, ErrEmptyTranscription
	}

	intent := a.detectIntent(ctx, text)

	var result *domain.TaskResult
	reported := intent
	if page := matchPage(text); intent == IntentNavigation && page != "" {
		result = a.NavigateToPage(sessionID, page)
		entry := domain.HistoryEntry{
			Task:      domain.TaskChat,
			Input:     text,
			Result:    result,
			Timestamp: time.Now().UTC(),
		}
		if err := a.sessions.AppendHistory(ctx, sessionID, entry); err != nil {
			return nil, err
		}
	} else {
		// Navigation without a recognizable page degrades to a general query.
		if intent == IntentNavigation {
			intent = IntentGeneralQuery
		}
		task := intentTask(intent)
		result, err = a.Execute(ctx, sessionID, task, text, nil, language)
		if err != nil {
			return nil, err
		}
		// Task intents are reported with the task tag, general queries
		// with the classifier label.
		if task != domain.TaskGeneralQuery {
			reported = string(task)
		} else {
			reported = IntentGeneralQuery
		}
	}

	return &VoiceResult{
		SessionID:      sessionID,
		DetectedText:   text,
		DetectedIntent: reported,
		Result:         result,
	}, nil
}

// intentTask maps a classifier label to the task that serves it.
func intentTask(intent string) domain.TaskType {
	switch intent {
	case IntentDiseaseAnalysis:
		return domain.TaskDiseaseAnalysis
	case IntentColdStorageBooking:
		return domain.TaskColdStorageBooking
	case IntentFormFilling:
		return domain.TaskFormFilling
	case IntentCropRecommendation:
		return domain.TaskCropRecommendation
	default:
		return domain.TaskGeneralQuery
	}
}
