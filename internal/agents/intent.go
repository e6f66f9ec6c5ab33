package agents

import (
	"context"
	"errors"
	"strings"
	"time"
)

const intentInstruction = `You are a moderation assistant. Determine whether the following chat message expresses an intent by the sender to share personal information (their own or someone else's). Answer strictly "true" or "false" and nothing else.`

// errMalformedOutput marks an agent response that could not be parsed.
var errMalformedOutput = errors.New("malformed agent output")

// IntentAgent judges whether a message's sender intends to disclose personal
// information. It is only consulted after the PII detector reports presence.
type IntentAgent struct {
	agent *Agent[bool]
}

// NewIntentAgent creates the intent agent.
func NewIntentAgent(runner Runner, timeout time.Duration) *IntentAgent {
	return &IntentAgent{
		agent: NewAgent(runner, intentInstruction, timeout, parseBool),
	}
}

// Infer returns the agent's intent verdict. A malformed or non-boolean
// response resolves to false: absence of clear intent is not escalated.
// A failed call is returned as an error because intent materially changes
// the downstream action.
func (a *IntentAgent) Infer(ctx context.Context, text string) (bool, error) {
	result, err := a.agent.Run(ctx, text)
	if err != nil {
		if errors.Is(err, errMalformedOutput) {
			return false, nil
		}
		return false, err
	}
	return result, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "."))) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errMalformedOutput
}
