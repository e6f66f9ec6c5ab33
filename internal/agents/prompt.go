package agents

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// promptTokenBudget caps the message text included in an agent prompt.
const promptTokenBudget = 4096

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
	codecErr  error
)

func getCodec() (tokenizer.Codec, error) {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	return codec, codecErr
}

// truncateToBudget trims text to the prompt token budget. If the tokenizer is
// unavailable the text passes through unchanged; the remote service enforces
// its own limits.
func truncateToBudget(text string) string {
	c, err := getCodec()
	if err != nil {
		return text
	}

	ids, _, err := c.Encode(text)
	if err != nil || len(ids) <= promptTokenBudget {
		return text
	}

	truncated, err := c.Decode(ids[:promptTokenBudget])
	if err != nil {
		return text
	}
	return truncated
}
