// ABOUTME: Embedder capability interface over local and remote providers
// ABOUTME: Every vector is validated against the configured dimension, never coerced
package embed

import (
	"context"
	"fmt"

	"github.com/harper/vidrag/internal/config"
	"github.com/harper/vidrag/internal/models"
)

// Embedder produces fixed-dimension vectors for text. Implementations
// must return vectors of exactly Dimension() elements; a mismatch from
// the underlying provider is surfaced as a DimensionError.
type Embedder interface {
	// Embed returns the vector for a single text (query time).
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per input text, in order
	// (indexing time).
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension is the vector length every call must produce.
	Dimension() int

	// Close releases provider resources.
	Close() error
}

// New selects the embedding provider from configuration.
func New(cfg *config.Config) (Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderLocal:
		return NewONNXEmbedder(cfg.ONNXModelPath, cfg.ONNXTokenizerPath, cfg.VectorDimension)
	case config.ProviderOpenAI:
		return NewOpenAIEmbedder(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}

// checkVectors validates a batch of provider vectors against dim.
func checkVectors(vectors [][]float32, dim int) error {
	for _, v := range vectors {
		if err := models.CheckDimension(v, dim); err != nil {
			return err
		}
	}
	return nil
}
