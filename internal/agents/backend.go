package agents

import (
	"context"
	"encoding/json"

	"github.com/amansingh-swe/EngAi/internal/extract"
	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
)

// Backend generates the FastAPI backend source from the route plan and
// schema, splitting out the generated requirements list.
type Backend struct {
	agent
}

// NewBackend creates the backend code generator agent and registers its tool.
func NewBackend(server *mcp.Server, gen llm.TextGenerator, usage UsageRecorder) *Backend {
	b := &Backend{agent: newAgent("code_generator", server, gen, usage)}
	b.client.RegisterToolFunc("generate_code", b.generateCode)
	return b
}

func (b *Backend) generateCode(ctx context.Context, params map[string]any) (any, error) {
	routePlan := mapParam(params, "api_route_plan")
	databaseSchema := stringParam(params, "database_schema")

	planJSON := "{}"
	if len(routePlan) > 0 {
		if data, err := json.MarshalIndent(routePlan, "", "  "); err == nil {
			planJSON = string(data)
		}
	}

	raw, err := b.callLLM(ctx, llm.BackendPrompt(planJSON, databaseSchema), 0.3, "code_generation")
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"code":             extract.StripRequirements(raw),
		"requirements_txt": extract.Requirements(raw),
		"agent":            b.name,
	}, nil
}
