package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amansingh-swe/EngAi/internal/agents"
	"github.com/amansingh-swe/EngAi/internal/hub"
	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
	"github.com/amansingh-swe/EngAi/internal/project"
	"github.com/amansingh-swe/EngAi/internal/tracking"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	store, err := tracking.NewStore(filepath.Join(t.TempDir(), "usage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	writer, err := project.NewWriter(t.TempDir())
	require.NoError(t, err)

	server := mcp.NewServer()
	orch := agents.NewSystem(server, llm.NewMock(), store, nil)

	return NewHandler(orch, store, writer, hub.New())
}

func TestGenerateEndpoint(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()

	t.Run("full pipeline", func(t *testing.T) {
		body := `{"description": "a todo app", "requirements": "simple", "project_name": "todo"}`
		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.Generate(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Architecture)
		assert.Contains(t, resp.DatabaseSchema, "CREATE TABLE")
		assert.NotEmpty(t, resp.Code)
		assert.NotEmpty(t, resp.Tests)
		require.NotNil(t, resp.Files)
		assert.Contains(t, resp.Files.Files, "code_file")
	})

	t.Run("save disabled", func(t *testing.T) {
		body := `{"description": "a todo app", "save_files": false}`
		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.Generate(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp GenerateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Nil(t, resp.Files)
	})

	t.Run("missing description", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.Generate(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{not json`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.Generate(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUsageEndpoint(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()

	require.NoError(t, h.usage.RecordUsage(context.Background(), "architect", 10, 20, "create_architecture"))

	req := httptest.NewRequest(http.MethodGet, "/api/usage", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Usage(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalAPICalls)
	assert.Equal(t, 30, resp.TotalTokens)
	require.Len(t, resp.Agents, 1)
	assert.Equal(t, "architect", resp.Agents[0].AgentName)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Health(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
