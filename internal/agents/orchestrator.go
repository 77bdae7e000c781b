package agents

import (
	"context"
	"fmt"

	"github.com/amansingh-swe/EngAi/internal/domain"
	"github.com/amansingh-swe/EngAi/internal/extract"
	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
)

// Notifier receives pipeline progress events. A nil notifier is valid.
type Notifier interface {
	PublishEvent(event string, data map[string]any)
}

// Orchestrator drives the six-step generation pipeline. It never touches
// another agent's methods directly; every step goes through the dispatch
// server, and any step failure aborts the run.
type Orchestrator struct {
	agent
	notifier Notifier
}

// NewOrchestrator creates the orchestrator. The other agents must be
// constructed against the same server before Run is called.
func NewOrchestrator(server *mcp.Server, gen llm.TextGenerator, usage UsageRecorder, notifier Notifier) *Orchestrator {
	return &Orchestrator{
		agent:    newAgent("orchestrator", server, gen, usage),
		notifier: notifier,
	}
}

// NewSystem constructs the full agent set (all six specialized agents plus
// the orchestrator) against one dispatch server.
func NewSystem(server *mcp.Server, gen llm.TextGenerator, usage UsageRecorder, notifier Notifier) *Orchestrator {
	NewArchitect(server, gen, usage)
	NewDatabase(server, gen, usage)
	NewRoutePlanner(server, gen, usage)
	NewBackend(server, gen, usage)
	NewFrontend(server, gen, usage)
	NewTestGenerator(server, gen, usage)
	return NewOrchestrator(server, gen, usage, notifier)
}

// Run executes the pipeline: architecture, schema, route plan, backend code,
// frontend bundle, tests. Outputs flow strictly forward; only the route plan
// is allowed to be empty.
func (o *Orchestrator) Run(ctx context.Context, description, requirements string) (*domain.Artifacts, error) {
	o.emit("architecture", "started", nil)
	archRes, err := o.client.CallAgent(ctx, "architect", "create_architecture", map[string]any{
		"description":  description,
		"requirements": requirements,
	})
	if err != nil {
		return nil, err
	}
	architecture := resultString(archRes, "architecture")
	o.emit("architecture", "done", map[string]any{"chars": len(architecture)})

	o.emit("database_schema", "started", nil)
	schemaRes, err := o.client.CallAgent(ctx, "database_agent", "create_database_schema", map[string]any{
		"architecture": architecture,
	})
	if err != nil {
		return nil, err
	}
	databaseSchema := resultString(schemaRes, "database_schema")
	o.emit("database_schema", "done", map[string]any{"chars": len(databaseSchema)})

	o.emit("api_route_plan", "started", nil)
	planRes, err := o.client.CallAgent(ctx, "api_route_planner", "plan_api_routes", map[string]any{
		"architecture": architecture,
	})
	if err != nil {
		return nil, err
	}
	routePlan := resultPlan(planRes)
	o.emit("api_route_plan", "done", map[string]any{"routes": len(routePlan.Routes())})

	o.emit("backend_code", "started", nil)
	codeRes, err := o.client.CallAgent(ctx, "code_generator", "generate_code", map[string]any{
		"api_route_plan":  map[string]any(routePlan),
		"database_schema": databaseSchema,
		"requirements":    requirements,
	})
	if err != nil {
		return nil, err
	}
	backendCode := resultString(codeRes, "code")
	requirementsTxt := resultString(codeRes, "requirements_txt")
	o.emit("backend_code", "done", map[string]any{"chars": len(backendCode)})

	o.emit("frontend_code", "started", nil)
	frontendRes, err := o.client.CallAgent(ctx, "frontend_generator", "generate_frontend", map[string]any{
		"api_route_plan":          map[string]any(routePlan),
		"application_description": description,
	})
	if err != nil {
		return nil, err
	}
	frontendCode := resultString(frontendRes, "frontend_code")
	o.emit("frontend_code", "done", map[string]any{"chars": len(frontendCode)})

	o.emit("tests", "started", nil)
	testRes, err := o.client.CallAgent(ctx, "test_generator", "generate_tests", map[string]any{
		"code": backendCode,
	})
	if err != nil {
		return nil, err
	}
	tests := resultString(testRes, "tests")
	o.emit("tests", "done", map[string]any{"chars": len(tests)})

	return &domain.Artifacts{
		Architecture:    architecture,
		DatabaseSchema:  databaseSchema,
		RoutePlan:       routePlan,
		BackendCode:     backendCode,
		RequirementsTxt: requirementsTxt,
		FrontendCode:    frontendCode,
		Frontend:        extract.FrontendBundle(frontendCode),
		Tests:           tests,
	}, nil
}

func (o *Orchestrator) emit(step, status string, data map[string]any) {
	if o.notifier == nil {
		return
	}
	payload := map[string]any{"step": step, "status": status}
	for k, v := range data {
		payload[k] = v
	}
	o.notifier.PublishEvent("pipeline_step", payload)
}

// resultString coerces a tool result that is either a plain string or a map
// carrying the value under the given key. Tool payloads are free-form, so
// the pipeline tolerates both shapes.
func resultString(result any, key string) string {
	switch v := result.(type) {
	case string:
		return v
	case map[string]any:
		s, _ := v[key].(string)
		return s
	default:
		if result == nil {
			return ""
		}
		return fmt.Sprintf("%v", result)
	}
}

// resultPlan coerces the route planner's result into a RoutePlan.
func resultPlan(result any) domain.RoutePlan {
	m, ok := result.(map[string]any)
	if !ok {
		return domain.RoutePlan{}
	}
	plan, ok := m["api_route_plan"].(map[string]any)
	if !ok {
		return domain.RoutePlan{}
	}
	return domain.RoutePlan(plan)
}
