// ABOUTME: VectorStore capability interface and record shapes
// ABOUTME: Backed by Charm KV or Postgres/pgvector, selected by configuration
package store

import (
	"context"
	"fmt"

	"github.com/harper/vidrag/internal/charm"
	"github.com/harper/vidrag/internal/config"
	"github.com/harper/vidrag/internal/models"
)

// Record is one chunk with its embedding, as persisted in the store.
type Record struct {
	ID     string       `json:"id"`
	Values []float32    `json:"values"`
	Chunk  models.Chunk `json:"metadata"`
}

// VectorStore holds indexed chunk embeddings and answers filtered
// nearest-neighbor queries. Results are scoped to a single video and
// ordered by descending similarity; an empty result is not an error.
type VectorStore interface {
	// Exists reports whether any chunks are indexed for the video.
	Exists(ctx context.Context, videoID string) (bool, error)

	// Upsert writes records, replacing any with the same id.
	Upsert(ctx context.Context, records []Record) error

	// Query returns up to topK chunks of the given video ranked by
	// similarity to the query vector.
	Query(ctx context.Context, vector []float32, videoID string, topK int) ([]models.ScoredChunk, error)

	// Close releases the backend connection.
	Close() error
}

// New selects the store backend from configuration.
func New(cfg *config.Config) (VectorStore, error) {
	switch cfg.StoreBackend {
	case config.StoreCharm:
		client, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
		if err != nil {
			return nil, err
		}
		return NewCharmStore(client, cfg.VectorDimension), nil
	case config.StorePostgres:
		return NewPostgresStore(cfg.PostgresDSN, cfg.VectorDimension)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
