package agents

import (
	"context"

	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
)

// TestGenerator produces pytest cases for the generated backend source.
type TestGenerator struct {
	agent
}

// NewTestGenerator creates the test generator agent and registers its tool.
func NewTestGenerator(server *mcp.Server, gen llm.TextGenerator, usage UsageRecorder) *TestGenerator {
	t := &TestGenerator{agent: newAgent("test_generator", server, gen, usage)}
	t.client.RegisterToolFunc("generate_tests", t.generateTests)
	return t
}

func (t *TestGenerator) generateTests(ctx context.Context, params map[string]any) (any, error) {
	code := stringParam(params, "code")
	return t.callLLM(ctx, llm.TestPrompt(code), 0.5, "test_generation")
}
