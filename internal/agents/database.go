package agents

import (
	"context"

	"github.com/amansingh-swe/EngAi/internal/extract"
	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
)

// Database derives a SQL schema from the architecture document.
type Database struct {
	agent
}

// NewDatabase creates the database agent and registers its tool.
func NewDatabase(server *mcp.Server, gen llm.TextGenerator, usage UsageRecorder) *Database {
	d := &Database{agent: newAgent("database_agent", server, gen, usage)}
	d.client.RegisterToolFunc("create_database_schema", d.createDatabaseSchema)
	return d
}

func (d *Database) createDatabaseSchema(ctx context.Context, params map[string]any) (any, error) {
	architecture := stringParam(params, "architecture")
	raw, err := d.callLLM(ctx, llm.DatabasePrompt(architecture), 0.5, "database_generation")
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"database_schema": extract.SQL(raw),
		"agent":           d.name,
	}, nil
}
