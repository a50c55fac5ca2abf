// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to index and ask about videos via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/vidrag/internal/llm"
	"github.com/harper/vidrag/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs vidrag as an MCP (Model Context Protocol) server, enabling
LLM agents to index transcripts and ask about videos via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  vidrag mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "vidrag": {
  #       "command": "vidrag",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - answer synthesis will not work")
	}

	s, err := newStack()
	if err != nil {
		return err
	}
	defer s.Close()

	generator, err := llm.NewOpenAIClient(s.cfg)
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	server := mcpserver.NewMCPServer(
		"Video Transcript RAG",
		"0.1.0",
	)

	mcp.RegisterTools(server, s.cfg, s.embedder, s.store, generator)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Video RAG MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
