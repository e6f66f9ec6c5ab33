// Package agents implements the two reasoning agents used by the moderation
// pipeline. Both share one capability: send a fixed instruction plus
// message-derived text to the reasoning service and parse a typed result.
package agents

import (
	"context"
	"fmt"
	"time"

	agentapi "github.com/moderalabs/modera/internal/api/agent"
)

// Runner abstracts the reasoning-agent service so tests can stub it once for
// both agents.
type Runner interface {
	Complete(ctx context.Context, req *agentapi.CompletionRequest) (*agentapi.CompletionResponse, error)
}

// Agent binds a fixed instruction and an output parser to a Runner. The two
// instantiations are the boolean-output intent agent and the
// structured-output action agent.
type Agent[T any] struct {
	runner      Runner
	instruction string
	parse       func(raw string) (T, error)
	timeout     time.Duration
}

// NewAgent creates an agent from its instruction and parser.
func NewAgent[T any](runner Runner, instruction string, timeout time.Duration, parse func(string) (T, error)) *Agent[T] {
	return &Agent[T]{
		runner:      runner,
		instruction: instruction,
		parse:       parse,
		timeout:     timeout,
	}
}

// Run executes the agent against input and parses the typed result.
// Transport failures and parse failures are both surfaced; each concrete
// agent documents which of the two it recovers from.
func (a *Agent[T]) Run(ctx context.Context, input string) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.runner.Complete(ctx, &agentapi.CompletionRequest{
		Instruction: a.instruction,
		Input:       truncateToBudget(input),
	})
	if err != nil {
		return zero, fmt.Errorf("agent call: %w", err)
	}

	result, err := a.parse(resp.Output)
	if err != nil {
		return zero, fmt.Errorf("agent output: %w", err)
	}
	return result, nil
}
