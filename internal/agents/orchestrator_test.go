package agents

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
)

type memoryRecorder struct {
	mu      sync.Mutex
	records []string
}

func (r *memoryRecorder) RecordUsage(ctx context.Context, agentName string, inputTokens, outputTokens int, requestType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, agentName+"/"+requestType)
	return nil
}

type memoryNotifier struct {
	mu     sync.Mutex
	events []map[string]any
}

func (n *memoryNotifier) PublishEvent(event string, data map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, data)
}

func TestPipelineRun(t *testing.T) {
	server := mcp.NewServer()
	recorder := &memoryRecorder{}
	notifier := &memoryNotifier{}
	orch := NewSystem(server, llm.NewMock(), recorder, notifier)

	artifacts, err := orch.Run(context.Background(), "a todo app", "keep it simple")
	require.NoError(t, err)

	assert.NotEmpty(t, artifacts.Architecture)
	assert.Contains(t, artifacts.DatabaseSchema, "CREATE TABLE")
	assert.NotEmpty(t, artifacts.RoutePlan.Routes())
	assert.NotEmpty(t, artifacts.BackendCode)
	assert.NotContains(t, artifacts.BackendCode, "requirements.txt")
	assert.NotEmpty(t, artifacts.RequirementsTxt)
	assert.NotEmpty(t, artifacts.Frontend)
	assert.Contains(t, artifacts.Frontend, "src/App.jsx")
	assert.NotEmpty(t, artifacts.Tests)

	// one usage record per pipeline step
	assert.Len(t, recorder.records, 6)
	assert.Contains(t, recorder.records, "architect/architecture_design")
	assert.Contains(t, recorder.records, "test_generator/test_generation")

	// started and done events for each of the six steps
	assert.Len(t, notifier.events, 12)
}

func TestPipelineStepFailureAborts(t *testing.T) {
	server := mcp.NewServer()
	orch := NewSystem(server, llm.NewMock(), nil, nil)

	// replace the database agent's tool with a failing one
	failing := mcp.NewClient("database_agent", server)
	failing.RegisterToolFunc("create_database_schema", func(ctx context.Context, params map[string]any) (any, error) {
		return nil, errors.New("schema generation broke")
	})

	_, err := orch.Run(context.Background(), "a todo app", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema generation broke")
}

type failingGenerator struct{}

func (failingGenerator) Generate(ctx context.Context, prompt string, temperature float64) (*llm.GenerateResult, error) {
	return nil, errors.New("backend unavailable")
}

func TestPipelineGeneratorFailure(t *testing.T) {
	server := mcp.NewServer()
	orch := NewSystem(server, failingGenerator{}, nil, nil)

	_, err := orch.Run(context.Background(), "a todo app", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm call failed for architect")
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "plain", resultString("plain", "any"))
	assert.Equal(t, "value", resultString(map[string]any{"key": "value"}, "key"))
	assert.Equal(t, "", resultString(map[string]any{"other": 1}, "key"))
	assert.Equal(t, "", resultString(nil, "key"))
}

func TestAgentUsageFailureDoesNotAbort(t *testing.T) {
	server := mcp.NewServer()
	orch := NewSystem(server, llm.NewMock(), erroringRecorder{}, nil)

	artifacts, err := orch.Run(context.Background(), "a todo app", "")
	require.NoError(t, err)
	assert.NotEmpty(t, artifacts.Architecture)
}

type erroringRecorder struct{}

func (erroringRecorder) RecordUsage(ctx context.Context, agentName string, inputTokens, outputTokens int, requestType string) error {
	return errors.New("sink down")
}

func TestPipelineNotifierOptional(t *testing.T) {
	server := mcp.NewServer()
	orch := NewSystem(server, llm.NewMock(), nil, nil)

	artifacts, err := orch.Run(context.Background(), "an inventory tracker", "")
	require.NoError(t, err)
	if !strings.Contains(artifacts.DatabaseSchema, "CREATE TABLE") {
		t.Fatalf("schema missing CREATE TABLE: %q", artifacts.DatabaseSchema)
	}
}
