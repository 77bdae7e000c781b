// Package llm provides the text-generation contract the agents depend on,
// an OpenAI-compatible HTTP client, and a deterministic mock for offline
// runs and tests.
package llm

import (
	"context"
	"strings"
)

// Usage is an approximate token accounting for one generation call. Counts
// fall back to whitespace-split word counts when the backend reports none,
// so callers must not rely on them for billing precision.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// GenerateResult is the outcome of one generation call.
type GenerateResult struct {
	Text  string `json:"text"`
	Usage Usage  `json:"usage"`
}

// TextGenerator is the opaque text-completion contract. Implementations
// signal failure by returning an error; the calling agent wraps it with its
// own identity.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (*GenerateResult, error)
}

// approxTokens estimates a token count by splitting on whitespace.
func approxTokens(s string) int {
	return len(strings.Fields(s))
}
