// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Engine wiring plus small formatting helpers
package commands

import (
	"fmt"
	"os"

	"github.com/harper/vidrag/internal/config"
	"github.com/harper/vidrag/internal/embed"
	"github.com/harper/vidrag/internal/store"
	"github.com/joho/godotenv"
)

// stack holds the shared backends a command needs.
type stack struct {
	cfg      *config.Config
	embedder embed.Embedder
	store    store.VectorStore
}

// newStack loads configuration and opens the embedder and vector store.
// Callers must Close the stack when done.
func newStack() (*stack, error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Using %s embeddings and the %s store\n",
			cfg.EmbeddingProvider, cfg.StoreBackend)
	}

	embedder, err := embed.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}

	vectorStore, err := store.New(cfg)
	if err != nil {
		embedder.Close()
		return nil, fmt.Errorf("initializing vector store: %w", err)
	}

	return &stack{cfg: cfg, embedder: embedder, store: vectorStore}, nil
}

// Close releases the stack's backends.
func (s *stack) Close() {
	_ = s.store.Close()
	_ = s.embedder.Close()
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
