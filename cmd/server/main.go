// ABOUTME: Main entry point for the video RAG MCP server with stdio transport
// ABOUTME: Initializes the embedder, vector store, and LLM client, then serves tools
package main

import (
	"log"
	"os"

	"github.com/harper/vidrag/internal/config"
	"github.com/harper/vidrag/internal/embed"
	"github.com/harper/vidrag/internal/llm"
	"github.com/harper/vidrag/internal/mcp"
	"github.com/harper/vidrag/internal/store"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - answer synthesis will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	embedder, err := embed.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize embedder: %v", err)
	}
	defer embedder.Close()

	vectorStore, err := store.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize vector store: %v", err)
	}
	defer vectorStore.Close()

	generator, err := llm.NewOpenAIClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	server := mcpserver.NewMCPServer(
		"Video Transcript RAG",
		"0.1.0",
	)

	mcp.RegisterTools(server, cfg, embedder, vectorStore, generator)

	log.Println("Video RAG MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
