package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGenerateWorkflow(t *testing.T) {
	var seenPrompt string
	gen := &fakeTextGen{generate: func(prompt string) (string, error) {
		seenPrompt = prompt
		return "Here is your workflow:\n```json\n{\"steps\": [{\"action\": \"navigate\", \"page\": \"cold-storage\"}]}\n```", nil
	}}
	a, _ := newTestAgent(t, Deps{TextGen: gen})

	workflow, err := a.GenerateWorkflow(context.Background(), "You build workflows.", "book cold storage", `{"fields":["crop"]}`)
	if err != nil {
		t.Fatalf("GenerateWorkflow failed: %v", err)
	}
	if !strings.Contains(string(workflow), `"action": "navigate"`) {
		t.Errorf("Workflow missing expected step: %s", workflow)
	}
	if strings.Contains(string(workflow), "```") {
		t.Errorf("Code fences not stripped: %s", workflow)
	}
	for _, part := range []string{"You build workflows.", `"book cold storage"`, `{"fields":["crop"]}`, "Workflow:"} {
		if !strings.Contains(seenPrompt, part) {
			t.Errorf("Prompt missing %q:\n%s", part, seenPrompt)
		}
	}
}

func TestGenerateWorkflow_InvalidJSON(t *testing.T) {
	gen := &fakeTextGen{generate: func(string) (string, error) {
		return "I could not produce a workflow.", nil
	}}
	a, _ := newTestAgent(t, Deps{TextGen: gen})

	if _, err := a.GenerateWorkflow(context.Background(), "sys", "user", "{}"); !errors.Is(err, errInvalidWorkflow) {
		t.Errorf("Expected invalid-workflow error, got %v", err)
	}
}

func TestGenerateWorkflow_NoGenerator(t *testing.T) {
	a, _ := newTestAgent(t, Deps{})

	if _, err := a.GenerateWorkflow(context.Background(), "sys", "user", "{}"); err == nil {
		t.Error("Expected error without a text generator")
	}
}
