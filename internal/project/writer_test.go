package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amansingh-swe/EngAi/internal/domain"
)

func fullArtifacts() *domain.Artifacts {
	return &domain.Artifacts{
		Architecture:    "# Architecture\n\nA simple app.",
		DatabaseSchema:  "```sql\nCREATE TABLE items (id INTEGER PRIMARY KEY);\n```",
		RoutePlan:       domain.RoutePlan{"base_url": "/api", "routes": []any{map[string]any{"method": "GET", "path": "/items"}}},
		BackendCode:     "```python\napp = FastAPI()\n```",
		RequirementsTxt: "fastapi>=0.104.0",
		Frontend: domain.FileBundle{
			"src/App.jsx":  "export default function App() { return null; }",
			"package.json": `{"name": "frontend"}`,
		},
		Tests: "```python\ndef test_ok():\n    assert True\n```",
	}
}

func TestWriteProject(t *testing.T) {
	base := t.TempDir()
	w, err := NewWriter(base)
	require.NoError(t, err)

	res, err := w.WriteProject(fullArtifacts(), "a todo app", "fast", "My Todo App!")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(res.ProjectPath), "My-Todo-App_"))

	for _, rel := range []string{
		"ARCHITECTURE.md",
		filepath.Join("database", "schema.sql"),
		"main.py",
		"requirements.txt",
		"README.md",
		filepath.Join("docs", "api_route_plan.json"),
		filepath.Join("frontend", "src", "App.jsx"),
		filepath.Join("frontend", "package.json"),
		filepath.Join("tests", "test_main.py"),
	} {
		_, err := os.Stat(filepath.Join(res.ProjectPath, rel))
		assert.NoError(t, err, rel)
	}

	schema, err := os.ReadFile(filepath.Join(res.ProjectPath, "database", "schema.sql"))
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE items (id INTEGER PRIMARY KEY);", string(schema))

	code, err := os.ReadFile(filepath.Join(res.ProjectPath, "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "app = FastAPI()", string(code))

	assert.Contains(t, res.Files, "frontend_path")
	assert.Len(t, res.FrontendFiles, 2)

	// no staging leftovers
	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".staging"), e.Name())
	}
}

func TestWriteProjectMinimal(t *testing.T) {
	base := t.TempDir()
	w, err := NewWriter(base)
	require.NoError(t, err)

	artifacts := &domain.Artifacts{
		Architecture:   "doc",
		DatabaseSchema: "CREATE TABLE t (id INTEGER);",
		BackendCode:    "app = FastAPI()",
	}
	res, err := w.WriteProject(artifacts, "desc", "", "")
	require.NoError(t, err)

	// the five guaranteed files
	for _, key := range []string{"architecture_file", "database_schema_file", "code_file", "requirements_file", "readme_file"} {
		assert.Contains(t, res.Files, key)
	}
	assert.NotContains(t, res.Files, "api_route_plan_file")
	assert.NotContains(t, res.Files, "frontend_path")
	assert.NotContains(t, res.Files, "test_file")

	// empty requirements falls back to the default set
	reqs, err := os.ReadFile(filepath.Join(res.ProjectPath, "requirements.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(reqs), "fastapi")

	assert.True(t, strings.HasPrefix(filepath.Base(res.ProjectPath), "project_"))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "My-Todo-App", sanitizeName("My Todo App!"))
	assert.Equal(t, "project", sanitizeName("!!!"))
	assert.Equal(t, "a-b", sanitizeName("  a   b  "))
	long := sanitizeName(strings.Repeat("x", 80))
	assert.Len(t, long, 50)
}
