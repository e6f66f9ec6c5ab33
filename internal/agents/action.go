package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/moderalabs/modera/internal/domain"
)

const actionInstruction = `You are a moderation assistant. A chat message was classified under the harmful-content category given below. Choose exactly one action: "warn" for mild or first-time violations, "remove_from_conversation" for serious or repeated violations, "ban_pending_review" for severe violations that need human sign-off. Respond with a JSON object {"action": "...", "reason": "..."} and nothing else.`

// ActionAgent proposes a moderation action for a detected harmful-content
// category. Unlike the intent agent, it has no conservative default: any
// failure, including an unparsable response, surfaces to the caller because
// no safe action can be synthesized confidently.
type ActionAgent struct {
	agent *Agent[*domain.ActionDecision]
}

// NewActionAgent creates the action agent.
func NewActionAgent(runner Runner, timeout time.Duration) *ActionAgent {
	return &ActionAgent{
		agent: NewAgent(runner, actionInstruction, timeout, parseActionDecision),
	}
}

// Decide asks the agent for an action given the category and message text.
func (a *ActionAgent) Decide(ctx context.Context, category domain.ContentCategory, text string) (*domain.ActionDecision, error) {
	input := fmt.Sprintf("category: %s\nmessage: %s", category, text)
	return a.agent.Run(ctx, input)
}

func parseActionDecision(raw string) (*domain.ActionDecision, error) {
	var payload struct {
		Action string `json:"action"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedOutput, err)
	}

	action, err := domain.ParseAction(payload.Action)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedOutput, err)
	}

	return &domain.ActionDecision{Action: action, Reason: payload.Reason}, nil
}
