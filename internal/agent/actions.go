package agent

import (
	"strings"
	"time"

	"github.com/dineshreddy8742/Bheema/internal/domain"
)

func navigateAction(page string) domain.Action {
	return domain.Action{
		Kind:      domain.ActionNavigate,
		Page:      page,
		Message:   "Navigating to " + titleCase(strings.ReplaceAll(page, "-", " ")),
		Timestamp: time.Now().UTC(),
	}
}

func fillFormAction(form, field, value string) domain.Action {
	return domain.Action{
		Kind:      domain.ActionFillForm,
		Form:      form,
		Field:     field,
		Value:     value,
		Message:   "Filled " + field + " with " + value,
		Timestamp: time.Now().UTC(),
	}
}

func askUserAction(question, context string) domain.Action {
	return domain.Action{
		Kind:             domain.ActionAskUser,
		Question:         question,
		Context:          context,
		RequiresResponse: true,
		Timestamp:        time.Now().UTC(),
	}
}

func speakAction(message string) domain.Action {
	return domain.Action{
		Kind:      domain.ActionSpeak,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func completeTaskAction(summary string) domain.Action {
	return domain.Action{
		Kind:      domain.ActionCompleteTask,
		Summary:   summary,
		Timestamp: time.Now().UTC(),
	}
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// truncateForSpeech shortens long collaborator output for a spoken summary.
func truncateForSpeech(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
