package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amansingh-swe/EngAi/config"
	"github.com/amansingh-swe/EngAi/internal/agents"
	"github.com/amansingh-swe/EngAi/internal/hub"
	"github.com/amansingh-swe/EngAi/internal/llm"
	"github.com/amansingh-swe/EngAi/internal/mcp"
	"github.com/amansingh-swe/EngAi/internal/policy"
	"github.com/amansingh-swe/EngAi/internal/project"
	"github.com/amansingh-swe/EngAi/internal/tracking"
	transport "github.com/amansingh-swe/EngAi/internal/transport/http"
)

func main() {
	cfg := config.Load()

	log.Printf("Starting orchestrator...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Output Dir: %s", cfg.OutputDir)

	// Usage tracking store
	usage, err := tracking.NewStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize usage store: %v", err)
	}
	defer usage.Close()

	// LLM backend
	var gen llm.TextGenerator
	if cfg.LLMBaseURL == "" {
		log.Printf("LLM_BASE_URL not set, using mock generator")
		gen = llm.NewMock()
	} else {
		log.Printf("LLM backend: %s (model %s)", cfg.LLMBaseURL, cfg.LLMModel)
		gen = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	}

	// Tool-access policy
	ctx := context.Background()
	policyContent := policy.DefaultPolicy
	if cfg.PolicyFile != "" {
		data, err := os.ReadFile(cfg.PolicyFile)
		if err != nil {
			log.Fatalf("Failed to read policy file: %v", err)
		}
		policyContent = string(data)
	}
	policyEngine, err := policy.NewEngine(ctx, policyContent)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Dispatch server and agents
	server := mcp.NewServer(mcp.WithPolicy(policyEngine))
	eventHub := hub.New()
	orchestrator := agents.NewSystem(server, gen, usage, eventHub)

	// Project output
	writer, err := project.NewWriter(cfg.OutputDir)
	if err != nil {
		log.Fatalf("Failed to initialize project writer: %v", err)
	}

	// HTTP server
	h := transport.NewHandler(orchestrator, usage, writer, eventHub)
	e := transport.NewServer(h)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Stopped")
}
