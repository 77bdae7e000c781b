package mcp

import (
	"context"
	"fmt"
)

// Client wraps one agent's identity for talking to the dispatch server.
// Creating a client registers the agent (and its inbox) with the server.
type Client struct {
	agentID string
	server  *Server
}

// NewClient creates a client for the named agent and registers it.
func NewClient(agentID string, server *Server) *Client {
	server.RegisterAgent(agentID)
	return &Client{agentID: agentID, server: server}
}

// AgentID returns the owning agent's id.
func (c *Client) AgentID() string { return c.agentID }

// RegisterTool registers a tool under this agent's fully-qualified key,
// "<agent-id>.<name>".
func (c *Client) RegisterTool(name string, tool Tool) {
	c.server.RegisterTool(c.agentID+"."+name, tool)
}

// RegisterToolFunc registers a plain function as a tool.
func (c *Client) RegisterToolFunc(name string, fn ToolFunc) {
	c.RegisterTool(name, fn)
}

// CallAgent invokes a tool on another agent and returns the raw result.
// Payload shapes are free-form LLM-derived structures, so no schema
// validation happens here; callers must know what to expect. A failure
// Response becomes an error.
func (c *Client) CallAgent(ctx context.Context, target, tool string, params map[string]any) (any, error) {
	req := NewRequest(c.agentID, target, tool, params)
	resp := c.server.Dispatch(ctx, req)
	if !resp.Success {
		return nil, fmt.Errorf("tool execution failed: %s", resp.Error)
	}
	return resp.Result, nil
}

// Notify sends a one-way event to another agent's inbox. The returned
// Response is nil on success and a failure Response when the recipient is
// unknown.
func (c *Client) Notify(target, event string, data map[string]any) *Response {
	return c.server.Enqueue(NewNotification(c.agentID, target, event, data))
}

// Drain returns and clears this agent's pending messages.
func (c *Client) Drain() []Envelope {
	return c.server.Drain(c.agentID)
}
