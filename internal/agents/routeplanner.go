package agents

import (
	"context"

	"github.com/amansingh-swe/EngAi/internal/extract"
	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
)

// RoutePlanner derives a structured API route plan from the architecture
// document. A plan that cannot be extracted degrades to an empty mapping
// rather than an error.
type RoutePlanner struct {
	agent
}

// NewRoutePlanner creates the route planner agent and registers its tool.
func NewRoutePlanner(server *mcp.Server, gen llm.TextGenerator, usage UsageRecorder) *RoutePlanner {
	p := &RoutePlanner{agent: newAgent("api_route_planner", server, gen, usage)}
	p.client.RegisterToolFunc("plan_api_routes", p.planAPIRoutes)
	return p
}

func (p *RoutePlanner) planAPIRoutes(ctx context.Context, params map[string]any) (any, error) {
	architecture := stringParam(params, "architecture")
	raw, err := p.callLLM(ctx, llm.RoutePlannerPrompt(architecture), 0.5, "api_route_planning")
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"api_route_plan": map[string]any(extract.RoutePlan(raw)),
		"raw_output":     raw,
		"agent":          p.name,
	}, nil
}
