package llm

import "fmt"

// Prompt templates for each agent role. The fenced-block formats requested
// here are what the extract package parses back out.

const fence = "```"

const architectTemplate = `Create a high-level software architecture document.

Description: %s
Requirements: %s

Output a structured architecture document covering:
- System components and their relationships
- Technology stack recommendations
- Data flow and interactions`

// ArchitectPrompt builds the architecture-document prompt.
func ArchitectPrompt(description, requirements string) string {
	return fmt.Sprintf(architectTemplate, description, requirements)
}

var databaseTemplate = `Generate SQLite database schema from the architecture.

Architecture: %s

Output SQL CREATE TABLE statements:
` + fence + `sql
CREATE TABLE IF NOT EXISTS table_name (
    id INTEGER PRIMARY KEY,
    column_name TYPE NOT NULL,
    FOREIGN KEY (column) REFERENCES other_table(id)
);
` + fence + `

Include all tables, primary keys, foreign keys, and NOT NULL constraints. Output only SQL.`

// DatabasePrompt builds the schema-generation prompt.
func DatabasePrompt(architecture string) string {
	return fmt.Sprintf(databaseTemplate, architecture)
}

var routePlannerTemplate = `Generate API route plan JSON from the architecture.

Architecture: %s

Output JSON format:
` + fence + `json
{
  "api_route_plan": {
    "base_url": "http://localhost:8000/api",
    "routes": [
      {
        "method": "GET|POST|PUT|PATCH|DELETE",
        "path": "/resource",
        "body_schema": {"field": "type"} or null,
        "query_params": {"param": "type"} or null,
        "path_params": {"param": "type"} or null,
        "response_schema": {"field": "type"}
      }
    ]
  }
}
` + fence + `

Include all CRUD endpoints needed. Output only JSON.`

// RoutePlannerPrompt builds the route-plan prompt.
func RoutePlannerPrompt(architecture string) string {
	return fmt.Sprintf(routePlannerTemplate, architecture)
}

var backendTemplate = `Generate FastAPI backend code implementing the API routes with SQLite.

API Routes: %s
Database Schema: %s

Generate:
1. FastAPI app with imports (fastapi, uvicorn, pydantic, sqlite3)
2. Database connection and init using the SQL schema
3. Pydantic models matching database tables
4. All endpoints from the route plan with CRUD operations
5. Error handling (HTTPException)
6. CORS middleware
7. Single file: main.py (runnable with uvicorn main:app --reload)

After the code, include requirements.txt:
` + fence + `txt:requirements.txt
fastapi>=0.104.0
uvicorn[standard]>=0.24.0
pydantic>=2.5.0
` + fence + `
Add any other dependencies used.`

// BackendPrompt builds the backend code-generation prompt. The route plan is
// passed pre-serialized as JSON.
func BackendPrompt(routePlanJSON, databaseSchema string) string {
	return fmt.Sprintf(backendTemplate, routePlanJSON, databaseSchema)
}

var frontendTemplate = `Generate React JavaScript frontend for this application with CSS styling for these API routes:

Application Description: %s

Api route plan: %s

Create components, API service (fetch), forms, and lists for all routes with modern, clean CSS styling.

Output each file in this format:
` + fence + `javascript:src/path/file.jsx
// code
` + fence + `

Required files:
1. ` + fence + `html:public/index.html` + fence + ` - HTML with root div
2. ` + fence + `javascript:src/index.jsx` + fence + ` - Entry point rendering App
3. ` + fence + `javascript:src/App.jsx` + fence + ` - Main app component using className attributes
4. ` + fence + `css:src/App.css` + fence + ` - Modern CSS styling
5. ` + fence + `javascript:src/services/api.js` + fence + ` - Fetch functions for all endpoints
6. ` + fence + `json:package.json` + fence + ` - Dependencies: react, react-dom, react-scripts

Use JavaScript (.jsx/.js), not TypeScript.`

// FrontendPrompt builds the frontend code-generation prompt.
func FrontendPrompt(applicationDescription, routePlanJSON string) string {
	return fmt.Sprintf(frontendTemplate, applicationDescription, routePlanJSON)
}

const testTemplate = `Generate pytest test cases for this FastAPI code:

%s

Create tests covering:
- Normal operations
- Edge cases
- Error handling
- Boundary conditions

Use pytest fixtures where needed. Output complete, executable test code.`

// TestPrompt builds the test-generation prompt.
func TestPrompt(code string) string {
	return fmt.Sprintf(testTemplate, code)
}
