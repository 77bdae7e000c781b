// Package policy evaluates tool-access rules with OPA. The dispatch server
// consults the engine before invoking a handler; a non-allow decision becomes
// a failure response, never an abort.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine prepares the given rego policy for evaluation.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.tool_policy.decision"),
		rego.Module("tool_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}
	return &Engine{query: query}, nil
}

// Evaluate checks the tool policy. Input carries tool_name, agent_id and
// args. The decision is "allow" or "block"; reason is optional.
func (e *Engine) Evaluate(ctx context.Context, input any) (string, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "allow", "default", nil
	}

	val := results[0].Expressions[0].Value
	if s, ok := val.(string); ok {
		return s, "", nil
	}
	return "allow", "unexpected return type", nil
}

// DefaultPolicy allows every tool. Deployments can swap in stricter rules
// via the POLICY_FILE setting.
const DefaultPolicy = `
package tool_policy

default decision = "allow"
`
