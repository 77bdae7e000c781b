package agents

import (
	"context"
	"encoding/json"

	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
)

// Frontend generates a multi-file React bundle from the route plan. The raw
// text is returned; the bundle is extracted by the orchestrator so the HTTP
// response can also carry the unparsed output.
type Frontend struct {
	agent
}

// NewFrontend creates the frontend generator agent and registers its tool.
func NewFrontend(server *mcp.Server, gen llm.TextGenerator, usage UsageRecorder) *Frontend {
	f := &Frontend{agent: newAgent("frontend_generator", server, gen, usage)}
	f.client.RegisterToolFunc("generate_frontend", f.generateFrontend)
	return f
}

func (f *Frontend) generateFrontend(ctx context.Context, params map[string]any) (any, error) {
	routePlan := mapParam(params, "api_route_plan")
	description := stringParam(params, "application_description")

	planJSON := "{}"
	if len(routePlan) > 0 {
		if data, err := json.MarshalIndent(routePlan, "", "  "); err == nil {
			planJSON = string(data)
		}
	}

	raw, err := f.callLLM(ctx, llm.FrontendPrompt(description, planJSON), 0.4, "frontend_generation")
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"frontend_code": raw,
		"agent":         f.name,
	}, nil
}
