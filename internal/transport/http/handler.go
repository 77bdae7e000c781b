// Package http provides the HTTP boundary of the service: a synchronous
// project-generation endpoint, usage statistics, liveness, and a WebSocket
// event stream.
package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/amansingh-swe/EngAi/internal/agents"
	"github.com/amansingh-swe/EngAi/internal/domain"
	"github.com/amansingh-swe/EngAi/internal/hub"
	"github.com/amansingh-swe/EngAi/internal/project"
	"github.com/amansingh-swe/EngAi/internal/tracking"
)

// Handler handles HTTP requests.
type Handler struct {
	orchestrator *agents.Orchestrator
	usage        *tracking.Store
	writer       *project.Writer
	hub          *hub.Hub
	upgrader     websocket.Upgrader
}

// NewHandler creates a new handler.
func NewHandler(orchestrator *agents.Orchestrator, usage *tracking.Store, writer *project.Writer, h *hub.Hub) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		usage:        usage,
		writer:       writer,
		hub:          h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/generate", h.Generate)
	e.GET("/api/usage", h.Usage)
	e.GET("/api/health", h.Health)
	e.GET("/ws", h.Events)
}

// GenerateRequest is the request body for project generation.
type GenerateRequest struct {
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	SaveFiles    *bool  `json:"save_files"`
	ProjectName  string `json:"project_name"`
}

// GenerateResponse carries the pipeline artifacts and, when persisted, the
// written file paths.
type GenerateResponse struct {
	Architecture   string           `json:"architecture"`
	DatabaseSchema string           `json:"database_schema"`
	APIRoutePlan   domain.RoutePlan `json:"api_route_plan,omitempty"`
	Code           string           `json:"code"`
	FrontendCode   string           `json:"frontend_code"`
	Tests          string           `json:"tests"`
	Success        bool             `json:"success"`
	Message        string           `json:"message,omitempty"`
	Files          *project.Result  `json:"files,omitempty"`
}

// Generate runs the full pipeline synchronously and optionally persists the
// project tree.
func (h *Handler) Generate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Description == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "description is required"})
	}

	ctx := c.Request().Context()

	artifacts, err := h.orchestrator.Run(ctx, req.Description, req.Requirements)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	resp := GenerateResponse{
		Architecture:   artifacts.Architecture,
		DatabaseSchema: artifacts.DatabaseSchema,
		APIRoutePlan:   artifacts.RoutePlan,
		Code:           artifacts.BackendCode,
		FrontendCode:   artifacts.FrontendCode,
		Tests:          artifacts.Tests,
		Success:        true,
	}

	saveFiles := req.SaveFiles == nil || *req.SaveFiles
	if saveFiles {
		result, err := h.writer.WriteProject(artifacts, req.Description, req.Requirements, req.ProjectName)
		if err != nil {
			// File persistence failing does not fail the request; the
			// artifacts themselves are still returned.
			log.Printf("failed to save project files: %v", err)
			resp.Message = "generated, but saving files failed: " + err.Error()
		} else {
			resp.Files = result
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// UsageResponse carries total and per-agent usage statistics.
type UsageResponse struct {
	tracking.TotalUsage
	Agents []tracking.AgentUsage `json:"agents"`
}

// Usage returns LLM usage statistics.
func (h *Handler) Usage(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.usage.GetTotalUsage(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	agents, err := h.usage.GetAllAgentsUsage(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, UsageResponse{TotalUsage: *total, Agents: agents})
}

// Health returns liveness status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "engai-orchestrator",
	})
}

// Events upgrades the connection and streams pipeline progress events.
func (h *Handler) Events(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("failed to upgrade websocket: %v", err)
		return err
	}

	conn := h.hub.NewConnection(ws)
	h.hub.Register(conn)

	go h.writePump(conn)
	go h.readPump(conn)

	return nil
}

const (
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
)

// readPump discards inbound frames; the stream is one-way. It exists to
// observe close frames and pong replies.
func (h *Handler) readPump(conn *hub.Connection) {
	defer func() {
		h.hub.Unregister(conn)
		conn.Close()
	}()
	for {
		if _, _, err := conn.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			return
		}
	}
}

func (h *Handler) writePump(conn *hub.Connection) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("failed to write websocket message: %v", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
