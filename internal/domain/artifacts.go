// Package domain defines the typed artifacts produced by a pipeline run.
package domain

// RoutePlan is the loosely structured API route plan extracted from LLM
// output. The expected shape is {"base_url": string, "routes": [...]}, but
// generated plans may carry extra keys, so the map is kept as-is.
type RoutePlan map[string]any

// Empty reports whether extraction found no plan at all. An empty plan is a
// degraded but valid pipeline result.
func (p RoutePlan) Empty() bool { return len(p) == 0 }

// BaseURL returns the plan's base URL when present.
func (p RoutePlan) BaseURL() string {
	s, _ := p["base_url"].(string)
	return s
}

// Routes returns the plan's route descriptors when present.
func (p RoutePlan) Routes() []any {
	r, _ := p["routes"].([]any)
	return r
}

// FileBundle maps relative file paths to file contents.
type FileBundle map[string]string

// Artifacts is the full set of outputs from one pipeline run. Each field is
// immutable once its producing step has finished.
type Artifacts struct {
	Architecture    string     `json:"architecture"`
	DatabaseSchema  string     `json:"database_schema"`
	RoutePlan       RoutePlan  `json:"api_route_plan,omitempty"`
	BackendCode     string     `json:"code"`
	RequirementsTxt string     `json:"requirements_txt"`
	FrontendCode    string     `json:"frontend_code"`
	Frontend        FileBundle `json:"frontend_files,omitempty"`
	Tests           string     `json:"tests"`
}
