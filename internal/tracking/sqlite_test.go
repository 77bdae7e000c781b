package tracking

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndAggregate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordUsage(ctx, "architect", 100, 200, "create_architecture"))
	require.NoError(t, store.RecordUsage(ctx, "architect", 50, 50, "create_architecture"))
	require.NoError(t, store.RecordUsage(ctx, "database_agent", 10, 20, "create_database_schema"))

	total, err := store.GetTotalUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total.TotalAPICalls)
	assert.Equal(t, 160, total.TotalInputTokens)
	assert.Equal(t, 270, total.TotalOutputTokens)
	assert.Equal(t, 430, total.TotalTokens)

	agents, err := store.GetAllAgentsUsage(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "architect", agents[0].AgentName)
	assert.Equal(t, 2, agents[0].TotalAPICalls)
	assert.Equal(t, 300, agents[0].TotalTokens)
	assert.Equal(t, "database_agent", agents[1].AgentName)
	assert.Equal(t, 30, agents[1].TotalTokens)
}

func TestEmptyStoreTotals(t *testing.T) {
	store := newTestStore(t)

	total, err := store.GetTotalUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, total.TotalAPICalls)
	assert.Equal(t, 0, total.TotalTokens)

	agents, err := store.GetAllAgentsUsage(context.Background())
	require.NoError(t, err)
	assert.Empty(t, agents)
}
