// Package tracking persists LLM usage records and serves aggregate counts.
// The store is an append-and-aggregate observability sink; nothing in the
// pipeline depends on historical values.
package tracking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store records usage events in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens the database and runs migrations.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS usage_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			agent_name TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			total_tokens INTEGER NOT NULL DEFAULT 0,
			request_type TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_agent ON usage_records(agent_name)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordUsage appends one usage event.
func (s *Store) RecordUsage(ctx context.Context, agentName string, inputTokens, outputTokens int, requestType string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_records (agent_name, input_tokens, output_tokens, total_tokens, request_type, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		agentName, inputTokens, outputTokens, inputTokens+outputTokens, requestType, time.Now().UTC())
	return err
}

// TotalUsage holds aggregate counts across all agents.
type TotalUsage struct {
	TotalAPICalls     int `json:"total_api_calls"`
	TotalInputTokens  int `json:"total_input_tokens"`
	TotalOutputTokens int `json:"total_output_tokens"`
	TotalTokens       int `json:"total_tokens"`
}

// AgentUsage holds aggregate counts for one agent.
type AgentUsage struct {
	AgentName         string `json:"agent_name"`
	TotalAPICalls     int    `json:"total_api_calls"`
	TotalInputTokens  int    `json:"total_input_tokens"`
	TotalOutputTokens int    `json:"total_output_tokens"`
	TotalTokens       int    `json:"total_tokens"`
}

// GetTotalUsage returns aggregate counts across all agents.
func (s *Store) GetTotalUsage(ctx context.Context) (*TotalUsage, error) {
	var t TotalUsage
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0), COALESCE(SUM(total_tokens), 0) FROM usage_records`).
		Scan(&t.TotalAPICalls, &t.TotalInputTokens, &t.TotalOutputTokens, &t.TotalTokens)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetAllAgentsUsage returns aggregate counts grouped by agent.
func (s *Store) GetAllAgentsUsage(ctx context.Context) ([]AgentUsage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT agent_name, COUNT(*), SUM(input_tokens), SUM(output_tokens), SUM(total_tokens)
		 FROM usage_records GROUP BY agent_name ORDER BY agent_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []AgentUsage
	for rows.Next() {
		var a AgentUsage
		if err := rows.Scan(&a.AgentName, &a.TotalAPICalls, &a.TotalInputTokens, &a.TotalOutputTokens, &a.TotalTokens); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}
