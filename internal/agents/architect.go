package agents

import (
	"context"

	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
)

// Architect turns a description and requirements into a free-text
// architecture document. The document is consumed as-is downstream.
type Architect struct {
	agent
}

// NewArchitect creates the architect agent and registers its tool.
func NewArchitect(server *mcp.Server, gen llm.TextGenerator, usage UsageRecorder) *Architect {
	a := &Architect{agent: newAgent("architect", server, gen, usage)}
	a.client.RegisterToolFunc("create_architecture", a.createArchitecture)
	return a
}

func (a *Architect) createArchitecture(ctx context.Context, params map[string]any) (any, error) {
	description := stringParam(params, "description")
	requirements := stringParam(params, "requirements")
	return a.callLLM(ctx, llm.ArchitectPrompt(description, requirements), 0.7, "architecture_design")
}
