// Package i18n renders localized response templates for client-facing strings.
package i18n

import (
	"fmt"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

// Template keys.
const (
	KeyGreeting       = "greeting"
	KeyAskingName     = "asking_name"
	KeyAskingLocation = "asking_location"
	KeyTaskComplete   = "task_complete"
	KeyNeedMoreInfo   = "need_more_info"
	KeyDiseaseFound   = "disease_found"
	KeyNavigation     = "navigation"
)

var templates = map[domain.Language]map[string]string{
	domain.LanguageEnglish: {
		KeyGreeting:       "Hello! I'm Kisan AI assistant. I can help you with any problem.",
		KeyAskingName:     "Please tell me your name.",
		KeyAskingLocation: "What is your location?",
		KeyTaskComplete:   "Task completed!",
		KeyNeedMoreInfo:   "Please provide more information: %s",
		KeyDiseaseFound:   "I found %s disease in your crop. Recommendation: %s",
		KeyNavigation:     "I'm navigating you to %s page.",
	},
	domain.LanguageHindi: {
		KeyGreeting:       "नमस्ते! मैं किसान AI सहायक हूं। मैं आपकी किसी भी समस्या में मदद कर सकता हूं।",
		KeyAskingName:     "कृपया अपना नाम बताएं।",
		KeyAskingLocation: "आपका स्थान क्या है?",
		KeyTaskComplete:   "कार्य पूरा हो गया!",
		KeyNeedMoreInfo:   "कृपया अधिक जानकारी दें: %s",
		KeyDiseaseFound:   "मुझे आपकी फसल में %s रोग मिला है। सुझाव: %s",
		KeyNavigation:     "मैं आपको %s पेज पर ले जा रहा हूं।",
	},
	domain.LanguageTelugu: {
		KeyGreeting:       "నమస్కారం! నేను కిసాన్ AI సహాయకుడిని. నేను మీకు ఏదైనా సమస్యలో సహాయపడగలను.",
		KeyAskingName:     "దయచేసి మీ పేరు చెప్పండి.",
		KeyAskingLocation: "మీ స్థానం ఏమిటి?",
		KeyTaskComplete:   "పని పూర్తయింది!",
		KeyNeedMoreInfo:   "దయచేసి మరింత సమాచారం అందించండి: %s",
		KeyDiseaseFound:   "నేను మీ పంటలో %s రోగాన్ని కనుగొన్నాను. సిఫార్సు: %s",
		KeyNavigation:     "నేను మిమ్మల్ని %s పేజీకి నడిపిస్తున్నాను.",
	},
}

// Responder formats localized template strings. The zero value is not usable;
// use NewResponder.
type Responder struct{}

// NewResponder returns a Responder over the built-in template sets.
func NewResponder() *Responder { return &Responder{} }

// Get renders the template for key in lang, falling back to English for
// unknown languages and to the key itself for unknown keys.
func (r *Responder) Get(key string, lang domain.Language, args ...any) string {
	set, ok := templates[lang]
	if !ok {
		set = templates[domain.LanguageEnglish]
	}
	tpl, ok := set[key]
	if !ok {
		tpl = key
	}
	if len(args) == 0 {
		return tpl
	}
	return fmt.Sprintf(tpl, args...)
}
