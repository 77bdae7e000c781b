// Package agents implements the specialized processing steps of the
// code-generation pipeline. Each agent owns one MCP client, registers its
// tools with the dispatch server, and only ever talks to other agents through
// the server.
package agents

import (
	"context"
	"fmt"
	"log"

	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
)

// UsageRecorder receives per-call token accounting. It is an observability
// sink; recording failures are logged, not propagated.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, agentName string, inputTokens, outputTokens int, requestType string) error
}

// agent carries the state shared by every pipeline agent.
type agent struct {
	name   string
	client *mcp.Client
	gen    llm.TextGenerator
	usage  UsageRecorder
}

func newAgent(name string, server *mcp.Server, gen llm.TextGenerator, usage UsageRecorder) agent {
	return agent{
		name:   name,
		client: mcp.NewClient(name, server),
		gen:    gen,
		usage:  usage,
	}
}

// callLLM runs one generation call, records usage, and wraps any failure
// with the agent's identity for diagnosis.
func (a *agent) callLLM(ctx context.Context, prompt string, temperature float64, requestType string) (string, error) {
	res, err := a.gen.Generate(ctx, prompt, temperature)
	if err != nil {
		return "", fmt.Errorf("llm call failed for %s: %w", a.name, err)
	}
	if a.usage != nil {
		if err := a.usage.RecordUsage(ctx, a.name, res.Usage.InputTokens, res.Usage.OutputTokens, requestType); err != nil {
			log.Printf("failed to record usage for %s: %v", a.name, err)
		}
	}
	return res.Text, nil
}

// stringParam reads a string parameter, tolerating absence.
func stringParam(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return s
}

// mapParam reads an object parameter, tolerating absence.
func mapParam(params map[string]any, key string) map[string]any {
	m, _ := params[key].(map[string]any)
	return m
}
