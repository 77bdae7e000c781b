// Package project materializes pipeline artifacts as a runnable project
// tree with a fixed relative layout. Files are written into a staging
// directory that is renamed into place on success, so a partially written
// project never appears at its final path.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/amansingh-swe/EngAi/internal/domain"
	"github.com/amansingh-swe/EngAi/internal/extract"
)

var (
	invalidNameCharsRe = regexp.MustCompile(`[^\w\s-]`)
	nameSeparatorRe    = regexp.MustCompile(`[-\s]+`)
)

const maxNameLen = 50

// Writer persists generated projects under a base output directory.
type Writer struct {
	baseDir string
}

// NewWriter creates the base output directory if needed.
func NewWriter(baseDir string) (*Writer, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Result describes a written project: its final path and the logical
// file set keyed by artifact kind ("architecture_file", "code_file", ...).
type Result struct {
	ProjectPath string            `json:"project_path"`
	Files       map[string]string `json:"files"`
	// FrontendFiles maps bundle-relative paths to written paths.
	FrontendFiles map[string]string `json:"frontend_files,omitempty"`
}

// WriteProject persists the full artifact set. The project directory name is
// the sanitized project name suffixed with a timestamp, which keeps
// concurrent runs from colliding.
func (w *Writer) WriteProject(artifacts *domain.Artifacts, description, requirements, projectName string) (*Result, error) {
	folder := sanitizeName(projectName) + "_" + time.Now().Format("20060102_150405")
	finalPath := filepath.Join(w.baseDir, folder)
	staging := filepath.Join(w.baseDir, "."+folder+".staging")

	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	res, err := w.writeAll(staging, finalPath, artifacts, description, requirements)
	if err != nil {
		os.RemoveAll(staging)
		return nil, err
	}
	if err := os.Rename(staging, finalPath); err != nil {
		os.RemoveAll(staging)
		return nil, fmt.Errorf("failed to move project into place: %w", err)
	}
	return res, nil
}

func (w *Writer) writeAll(staging, finalPath string, artifacts *domain.Artifacts, description, requirements string) (*Result, error) {
	res := &Result{
		ProjectPath: finalPath,
		Files:       map[string]string{},
	}

	write := func(key, rel, content string) error {
		path := filepath.Join(staging, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(rel), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
		res.Files[key] = filepath.Join(finalPath, rel)
		return nil
	}

	if err := write("architecture_file", "ARCHITECTURE.md", artifacts.Architecture); err != nil {
		return nil, err
	}
	if err := write("database_schema_file", filepath.Join("database", "schema.sql"), extract.SQL(artifacts.DatabaseSchema)); err != nil {
		return nil, err
	}
	if err := write("code_file", "main.py", extract.Code(artifacts.BackendCode)); err != nil {
		return nil, err
	}
	reqs := artifacts.RequirementsTxt
	if reqs == "" {
		reqs = extract.DefaultRequirements
	}
	if err := write("requirements_file", "requirements.txt", reqs); err != nil {
		return nil, err
	}
	if err := write("readme_file", "README.md", readmeContent(description, requirements)); err != nil {
		return nil, err
	}

	if !artifacts.RoutePlan.Empty() {
		data, err := json.MarshalIndent(artifacts.RoutePlan, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode route plan: %w", err)
		}
		if err := write("api_route_plan_file", filepath.Join("docs", "api_route_plan.json"), string(data)); err != nil {
			return nil, err
		}
	}

	if len(artifacts.Frontend) > 0 {
		res.FrontendFiles = map[string]string{}
		paths := make([]string, 0, len(artifacts.Frontend))
		for rel := range artifacts.Frontend {
			paths = append(paths, rel)
		}
		sort.Strings(paths)
		for _, rel := range paths {
			full := filepath.Join(staging, "frontend", filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create frontend directory: %w", err)
			}
			if err := os.WriteFile(full, []byte(artifacts.Frontend[rel]), 0o644); err != nil {
				return nil, fmt.Errorf("failed to write frontend file %s: %w", rel, err)
			}
			res.FrontendFiles[rel] = filepath.Join(finalPath, "frontend", filepath.FromSlash(rel))
		}
		res.Files["frontend_path"] = filepath.Join(finalPath, "frontend")
	}

	if artifacts.Tests != "" {
		if err := write("test_file", filepath.Join("tests", "test_main.py"), extract.Code(artifacts.Tests)); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// sanitizeName restricts the project name to word characters and hyphens and
// caps its length. An empty name falls back to "project".
func sanitizeName(name string) string {
	name = invalidNameCharsRe.ReplaceAllString(name, "")
	name = nameSeparatorRe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	if name == "" {
		return "project"
	}
	return name
}

func readmeContent(description, requirements string) string {
	if requirements == "" {
		requirements = "None specified"
	}
	return fmt.Sprintf(`# Generated Project

## Description
%s

## Requirements
%s

## Generated Files
- `+"`main.py`"+`: FastAPI backend REST API
- `+"`frontend/`"+`: React frontend
- `+"`docs/api_route_plan.json`"+`: API route plan
- `+"`database/schema.sql`"+`: SQLite database schema
- `+"`ARCHITECTURE.md`"+`: Architecture document

## Running

### Backend
`+"```bash"+`
pip install -r requirements.txt
uvicorn main:app --reload
`+"```"+`

The API will be available at `+"`http://localhost:8000`"+`

### Frontend
`+"```bash"+`
cd frontend
npm install
npm start
`+"```"+`

## Testing
`+"```bash"+`
pytest tests/
`+"```"+`
`, description, requirements)
}
