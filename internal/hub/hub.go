// Package hub manages WebSocket client connections and broadcasts pipeline
// progress events to all of them.
package hub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Connection represents a single WebSocket connection.
type Connection struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	mu   sync.Mutex
}

// WriteMessage writes a message to the underlying connection.
func (c *Connection) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// SetWriteDeadline sets the write deadline on the underlying connection.
func (c *Connection) SetWriteDeadline(t time.Time) error {
	return c.Conn.SetWriteDeadline(t)
}

// Close closes the underlying connection.
func (c *Connection) Close() error {
	return c.Conn.Close()
}

// Hub tracks all live connections.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Connection
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{
		connections: make(map[string]*Connection),
	}
}

// NewConnection wraps a websocket connection for hub management.
func (h *Hub) NewConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		ID:   uuid.NewString(),
		Conn: ws,
		Send: make(chan []byte, 64),
	}
}

// Register adds a connection to the hub.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	h.connections[conn.ID] = conn
	h.mu.Unlock()
	log.Printf("websocket connection registered: %s", conn.ID)
}

// Unregister removes a connection and closes its send channel.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	if _, ok := h.connections[conn.ID]; ok {
		delete(h.connections, conn.ID)
		close(conn.Send)
	}
	h.mu.Unlock()
	log.Printf("websocket connection unregistered: %s", conn.ID)
}

// PublishEvent broadcasts an event to every connection. A connection whose
// send buffer is full is skipped rather than blocking the pipeline.
func (h *Hub) PublishEvent(event string, data map[string]any) {
	payload, err := json.Marshal(map[string]any{
		"event": event,
		"data":  data,
		"ts":    time.Now().UnixMilli(),
	})
	if err != nil {
		log.Printf("failed to encode event %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.connections {
		select {
		case conn.Send <- payload:
		default:
		}
	}
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
