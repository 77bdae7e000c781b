package mcp

import (
	"context"
	"fmt"
	"sync"
)

// Tool is a named callable an agent exposes for other agents to invoke.
type Tool interface {
	Invoke(ctx context.Context, params map[string]any) (any, error)
}

// ToolFunc adapts a plain function to the Tool interface.
type ToolFunc func(ctx context.Context, params map[string]any) (any, error)

// Invoke calls f.
func (f ToolFunc) Invoke(ctx context.Context, params map[string]any) (any, error) {
	return f(ctx, params)
}

// ToolPolicy authorizes tool dispatch. Evaluate returns a decision string
// ("allow" permits the call, anything else refuses it) plus an optional
// reason.
type ToolPolicy interface {
	Evaluate(ctx context.Context, input any) (decision, reason string, err error)
}

// Server routes requests between agents. It owns the tool registry and one
// inbox per registered agent. All registry and inbox mutation goes through a
// single mutex; tool handlers run without the lock held so a handler may call
// back into the server without deadlocking.
type Server struct {
	mu      sync.Mutex
	inboxes map[string][]Envelope
	tools   map[string]Tool
	policy  ToolPolicy
}

// Option configures a Server.
type Option func(*Server)

// WithPolicy installs a tool-access policy consulted before every dispatch.
func WithPolicy(p ToolPolicy) Option {
	return func(s *Server) { s.policy = p }
}

// NewServer creates an empty dispatch server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		inboxes: make(map[string][]Envelope),
		tools:   make(map[string]Tool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterAgent creates an empty inbox for the agent. Re-registering a live
// agent resets its inbox, so callers must register each agent exactly once.
func (s *Server) RegisterAgent(agentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inboxes[agentID] = nil
}

// UnregisterAgent removes the agent's inbox. Tools registered under the
// agent's prefix stay in place; tool lifetime is not tied to the inbox.
func (s *Server) UnregisterAgent(agentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inboxes, agentID)
}

// RegisterTool stores the tool under the given key. A later registration for
// the same key silently replaces the earlier one.
func (s *Server) RegisterTool(key string, tool Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools[key] = tool
}

// Dispatch resolves the request's tool and invokes it synchronously. Lookup
// tries "<to_agent>.<tool>" first, then the bare tool name. Every failure
// mode, including a handler error or panic, comes back as a failure Response;
// Dispatch never returns an error itself.
func (s *Server) Dispatch(ctx context.Context, req *Request) *Response {
	if err := req.Validate(); err != nil {
		return NewErrorResponse(req.To, req.From, req.ID, err.Error())
	}

	s.mu.Lock()
	if _, ok := s.inboxes[req.To]; ok {
		s.inboxes[req.To] = append(s.inboxes[req.To], req)
	}
	tool, ok := s.tools[req.To+"."+req.Tool]
	if !ok {
		tool, ok = s.tools[req.Tool]
	}
	s.mu.Unlock()

	if !ok {
		return NewErrorResponse(req.To, req.From, req.ID,
			fmt.Sprintf("tool %s not found for agent %s", req.Tool, req.To))
	}

	if s.policy != nil {
		input := map[string]any{
			"tool_name": req.Tool,
			"agent_id":  req.To,
			"args":      req.Parameters,
		}
		decision, reason, err := s.policy.Evaluate(ctx, input)
		if err != nil {
			return NewErrorResponse(req.To, req.From, req.ID,
				fmt.Sprintf("policy evaluation failed: %v", err))
		}
		if decision != "allow" {
			msg := fmt.Sprintf("tool %s refused by policy (%s)", req.Tool, decision)
			if reason != "" {
				msg += ": " + reason
			}
			return NewErrorResponse(req.To, req.From, req.ID, msg)
		}
	}

	result, err := s.invoke(ctx, tool, req.Parameters)
	if err != nil {
		return NewErrorResponse(req.To, req.From, req.ID, err.Error())
	}
	return NewResponse(req, result)
}

// invoke runs the tool outside the registry lock, converting a panic into an
// error so a misbehaving handler cannot take down the dispatcher.
func (s *Server) invoke(ctx context.Context, tool Tool, params map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return tool.Invoke(ctx, params)
}

// Enqueue appends the message to the recipient's inbox. If the recipient is
// not registered the message is dropped and a failure Response is returned so
// the sender learns about it; on success Enqueue returns nil.
func (s *Server) Enqueue(msg Envelope) *Response {
	meta := msg.Meta()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inboxes[meta.To]; !ok {
		return NewErrorResponse(meta.To, meta.From, meta.ID,
			fmt.Sprintf("agent %s not found", meta.To))
	}
	s.inboxes[meta.To] = append(s.inboxes[meta.To], msg)
	return nil
}

// Drain returns and clears the agent's pending messages atomically.
func (s *Server) Drain(agentID string) []Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.inboxes[agentID]
	if _, ok := s.inboxes[agentID]; ok {
		s.inboxes[agentID] = nil
	}
	return msgs
}
