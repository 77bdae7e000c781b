package llm

import (
	"context"
	"strings"
)

// Mock is a deterministic TextGenerator used when no LLM backend is
// configured and in tests. It recognizes each agent's prompt by its leading
// instruction and answers with a canned artifact in the expected format.
type Mock struct{}

// NewMock creates a mock generator.
func NewMock() *Mock {
	return &Mock{}
}

var _ TextGenerator = (*Mock)(nil)

// Generate returns a canned response for the recognized prompt kind.
func (m *Mock) Generate(ctx context.Context, prompt string, temperature float64) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := m.respond(prompt)
	return &GenerateResult{
		Text: text,
		Usage: Usage{
			InputTokens:  approxTokens(prompt),
			OutputTokens: approxTokens(text),
		},
	}, nil
}

func (m *Mock) respond(prompt string) string {
	switch {
	case strings.Contains(prompt, "software architecture document"):
		return mockArchitecture
	case strings.Contains(prompt, "SQLite database schema"):
		return mockSchema
	case strings.Contains(prompt, "API route plan JSON"):
		return mockRoutePlan
	case strings.Contains(prompt, "FastAPI backend code"):
		return mockBackend
	case strings.Contains(prompt, "React JavaScript frontend"):
		return mockFrontend
	case strings.Contains(prompt, "pytest test cases"):
		return mockTests
	default:
		return "I cannot help with that request."
	}
}

const mockArchitecture = `# Architecture

## Components
- FastAPI backend exposing a REST API over SQLite
- React frontend consuming the API
- Items resource with full CRUD

## Technology Stack
- Backend: Python, FastAPI, SQLite
- Frontend: React (JavaScript)

## Data Flow
The frontend calls the backend API; the backend persists items in SQLite.`

var mockSchema = "Here is the schema:\n\n" + fence + `sql
CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
` + fence + "\n"

var mockRoutePlan = "Here is the plan:\n\n" + fence + `json
{
  "api_route_plan": {
    "base_url": "http://localhost:8000/api",
    "routes": [
      {"method": "GET", "path": "/items", "response_schema": {"items": "list"}},
      {"method": "POST", "path": "/items", "body_schema": {"title": "string"}, "response_schema": {"id": "int"}},
      {"method": "PUT", "path": "/items/{id}", "path_params": {"id": "int"}, "body_schema": {"title": "string", "completed": "bool"}, "response_schema": {"id": "int"}},
      {"method": "DELETE", "path": "/items/{id}", "path_params": {"id": "int"}, "response_schema": {"ok": "bool"}}
    ]
  }
}
` + fence + "\n"

var mockBackend = fence + `python
from fastapi import FastAPI, HTTPException
from fastapi.middleware.cors import CORSMiddleware
from pydantic import BaseModel
import sqlite3

app = FastAPI()
app.add_middleware(CORSMiddleware, allow_origins=["*"], allow_methods=["*"], allow_headers=["*"])


class Item(BaseModel):
    title: str
    completed: bool = False


def get_db():
    conn = sqlite3.connect("app.db")
    conn.row_factory = sqlite3.Row
    return conn


@app.get("/api/items")
def list_items():
    db = get_db()
    rows = db.execute("SELECT * FROM items").fetchall()
    return {"items": [dict(r) for r in rows]}


@app.post("/api/items")
def create_item(item: Item):
    db = get_db()
    cur = db.execute("INSERT INTO items (title, completed) VALUES (?, ?)", (item.title, item.completed))
    db.commit()
    return {"id": cur.lastrowid}
` + fence + `

` + fence + `txt:requirements.txt
fastapi>=0.104.0
uvicorn[standard]>=0.24.0
pydantic>=2.5.0
pytest>=7.0.0
httpx>=0.25.0
` + fence + "\n"

var mockFrontend = fence + `javascript:src/index.jsx
import React from 'react';
import ReactDOM from 'react-dom/client';
import App from './App';
import './App.css';

ReactDOM.createRoot(document.getElementById('root')).render(<App />);
` + fence + `

` + fence + `javascript:src/App.jsx
import React, { useEffect, useState } from 'react';
import { listItems, createItem } from './services/api';

export default function App() {
  const [items, setItems] = useState([]);
  const [title, setTitle] = useState('');

  useEffect(() => { listItems().then((d) => setItems(d.items)); }, []);

  const add = async () => {
    await createItem({ title });
    setTitle('');
    const d = await listItems();
    setItems(d.items);
  };

  return (
    <div className="app">
      <h1>Items</h1>
      <input value={title} onChange={(e) => setTitle(e.target.value)} />
      <button onClick={add}>Add</button>
      <ul>{items.map((i) => <li key={i.id}>{i.title}</li>)}</ul>
    </div>
  );
}
` + fence + `

` + fence + `javascript:src/services/api.js
const BASE = 'http://localhost:8000/api';

export async function listItems() {
  const res = await fetch(BASE + '/items');
  return res.json();
}

export async function createItem(body) {
  const res = await fetch(BASE + '/items', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify(body),
  });
  return res.json();
}
` + fence + `

` + fence + `css:src/App.css
.app { max-width: 640px; margin: 0 auto; padding: 16px; font-family: sans-serif; }
button { padding: 8px 12px; }
` + fence + `

` + fence + `json:package.json
{
  "name": "frontend",
  "version": "0.1.0",
  "dependencies": {
    "react": "^18.2.0",
    "react-dom": "^18.2.0",
    "react-scripts": "5.0.1"
  }
}
` + fence + "\n"

var mockTests = fence + `python
from fastapi.testclient import TestClient
from main import app

client = TestClient(app)


def test_list_items():
    res = client.get("/api/items")
    assert res.status_code == 200
    assert "items" in res.json()


def test_create_item():
    res = client.post("/api/items", json={"title": "write tests"})
    assert res.status_code == 200
    assert "id" in res.json()
` + fence + "\n"
