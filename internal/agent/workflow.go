package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var errInvalidWorkflow = errors.New("workflow response is not valid JSON")

// GenerateWorkflow asks the text collaborator for a JSON workflow definition
// built from the caller's system prompt, request text, and UI schema. The
// reply is trimmed to its outermost JSON object before validation.
func (a *Agent) GenerateWorkflow(ctx context.Context, systemPrompt, userPrompt, uiSchema string) (json.RawMessage, error) {
	reply, err := a.generateText(ctx, workflowPrompt(systemPrompt, userPrompt, uiSchema))
	if err != nil {
		return nil, fmt.Errorf("generate workflow: %w", err)
	}

	workflow := json.RawMessage(extractJSONObject(reply))
	if !json.Valid(workflow) {
		return nil, errInvalidWorkflow
	}
	return workflow, nil
}
