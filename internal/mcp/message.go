// Package mcp implements the in-process message-passing substrate that
// decouples agents from each other: a message protocol, a dispatch server
// and a per-agent client facade.
package mcp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageType identifies the kind of a message.
type MessageType string

const (
	MessageTypeRequest      MessageType = "request"
	MessageTypeResponse     MessageType = "response"
	MessageTypeNotification MessageType = "notification"
	MessageTypeError        MessageType = "error"
)

// Message is the envelope shared by every message kind.
type Message struct {
	ID            string         `json:"message_id"`
	Type          MessageType    `json:"message_type"`
	From          string         `json:"from_agent"`
	To            string         `json:"to_agent"`
	Payload       map[string]any `json:"payload,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
	CorrelationID string         `json:"correlation_id,omitempty"`
}

// Meta returns the envelope fields. Every message kind embeds Message,
// so all of them satisfy Envelope.
func (m Message) Meta() Message { return m }

// Envelope is implemented by every message kind that can sit in an inbox.
type Envelope interface {
	Meta() Message
}

// Request asks another agent to execute a named tool.
type Request struct {
	Message
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Validate checks the request field contract.
func (r *Request) Validate() error {
	if r.Tool == "" {
		return fmt.Errorf("request %s has an empty tool name", r.ID)
	}
	return nil
}

// Response carries the outcome of a dispatched request. Error is non-empty
// exactly when Success is false.
type Response struct {
	Message
	Result  any    `json:"result"`
	Success bool   `json:"success"`
	Error   string `json:"error_message,omitempty"`
}

// Validate checks the response field contract.
func (r *Response) Validate() error {
	if r.CorrelationID == "" {
		return fmt.Errorf("response %s has no correlation id", r.ID)
	}
	if !r.Success && r.Error == "" {
		return fmt.Errorf("response %s failed without an error message", r.ID)
	}
	if r.Success && r.Error != "" {
		return fmt.Errorf("response %s succeeded with an error message", r.ID)
	}
	return nil
}

// Notification is a one-way event message.
type Notification struct {
	Message
	Event string         `json:"event"`
	Data  map[string]any `json:"data,omitempty"`
}

// NewRequest builds a request addressed to a tool on another agent.
func NewRequest(from, to, tool string, params map[string]any) *Request {
	return &Request{
		Message: Message{
			ID:        uuid.NewString(),
			Type:      MessageTypeRequest,
			From:      from,
			To:        to,
			Timestamp: time.Now().UTC(),
		},
		Tool:       tool,
		Parameters: params,
	}
}

// NewNotification builds a one-way event message.
func NewNotification(from, to, event string, data map[string]any) *Notification {
	return &Notification{
		Message: Message{
			ID:        uuid.NewString(),
			Type:      MessageTypeNotification,
			From:      from,
			To:        to,
			Timestamp: time.Now().UTC(),
		},
		Event: event,
		Data:  data,
	}
}

// NewResponse builds a success response correlated to the given request.
func NewResponse(req *Request, result any) *Response {
	return &Response{
		Message: Message{
			ID:            uuid.NewString(),
			Type:          MessageTypeResponse,
			From:          req.To,
			To:            req.From,
			Timestamp:     time.Now().UTC(),
			CorrelationID: req.ID,
		},
		Result:  result,
		Success: true,
	}
}

// NewErrorResponse builds a failure response correlated to the given message.
func NewErrorResponse(from, to, correlationID, errMsg string) *Response {
	return &Response{
		Message: Message{
			ID:            uuid.NewString(),
			Type:          MessageTypeError,
			From:          from,
			To:            to,
			Timestamp:     time.Now().UTC(),
			CorrelationID: correlationID,
		},
		Success: false,
		Error:   errMsg,
	}
}
