// ABOUTME: Vector store on Postgres with the pgvector extension
// ABOUTME: Cosine distance queries via the <=> operator, batch upsert in one tx
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/harper/vidrag/internal/models"
)

// PostgresStore keeps chunk embeddings in a pgvector-typed column and
// lets the database rank them.
type PostgresStore struct {
	db        *sql.DB
	dimension int
}

// NewPostgresStore connects and ensures the schema exists.
func NewPostgresStore(dsn string, dimension int) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, &models.ProviderError{Provider: "postgres", Op: "open", Err: err}
	}

	schema := fmt.Sprintf(`
	CREATE EXTENSION IF NOT EXISTS vector;

	CREATE TABLE IF NOT EXISTS video_chunks (
		id TEXT PRIMARY KEY,
		video_id TEXT NOT NULL,
		start_time INTEGER NOT NULL,
		end_time INTEGER NOT NULL,
		text TEXT NOT NULL,
		url TEXT NOT NULL,
		embedding vector(%d) NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_video_chunks_video ON video_chunks(video_id);
	`, dimension)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &models.ProviderError{Provider: "postgres", Op: "migrate", Err: err}
	}

	return &PostgresStore{db: db, dimension: dimension}, nil
}

// Exists reports whether any chunks are stored for the video.
func (s *PostgresStore) Exists(ctx context.Context, videoID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM video_chunks WHERE video_id = $1)`, videoID,
	).Scan(&exists)
	if err != nil {
		return false, &models.ProviderError{Provider: "postgres", Op: "exists", Err: err}
	}
	return exists, nil
}

// Upsert writes all records in one transaction, validating dimensions
// before anything is written.
func (s *PostgresStore) Upsert(ctx context.Context, records []Record) error {
	for _, rec := range records {
		if err := models.CheckDimension(rec.Values, s.dimension); err != nil {
			return err
		}
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &models.ProviderError{Provider: "postgres", Op: "upsert", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO video_chunks (id, video_id, start_time, end_time, text, url, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7::vector)
		ON CONFLICT (id) DO UPDATE SET
			video_id = EXCLUDED.video_id,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			text = EXCLUDED.text,
			url = EXCLUDED.url,
			embedding = EXCLUDED.embedding`)
	if err != nil {
		return &models.ProviderError{Provider: "postgres", Op: "upsert", Err: err}
	}
	defer stmt.Close()

	for _, rec := range records {
		c := rec.Chunk
		if _, err := stmt.ExecContext(ctx,
			rec.ID, c.VideoID, c.Start, c.End, c.Text, c.URL, vectorToString(rec.Values),
		); err != nil {
			return &models.ProviderError{Provider: "postgres", Op: "upsert", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.ProviderError{Provider: "postgres", Op: "upsert", Err: err}
	}
	return nil
}

// Query ranks the video's chunks by cosine similarity in the database.
func (s *PostgresStore) Query(ctx context.Context, vector []float32, videoID string, topK int) ([]models.ScoredChunk, error) {
	if err := models.CheckDimension(vector, s.dimension); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, video_id, start_time, end_time, text, url,
		       1 - (embedding <=> $1::vector) AS similarity
		FROM video_chunks
		WHERE video_id = $2
		ORDER BY embedding <=> $1::vector
		LIMIT $3`,
		vectorToString(vector), videoID, topK)
	if err != nil {
		return nil, &models.ProviderError{Provider: "postgres", Op: "query", Err: err}
	}
	defer rows.Close()

	var results []models.ScoredChunk
	for rows.Next() {
		var sc models.ScoredChunk
		if err := rows.Scan(&sc.ID, &sc.VideoID, &sc.Start, &sc.End, &sc.Text, &sc.URL, &sc.Score); err != nil {
			return nil, &models.ProviderError{Provider: "postgres", Op: "query", Err: err}
		}
		results = append(results, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.ProviderError{Provider: "postgres", Op: "query", Err: err}
	}
	return results, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// vectorToString converts a float32 slice to pgvector text format: [0.1,0.2,0.3].
func vectorToString(v []float32) string {
	parts := make([]string, len(v))
	for i, val := range v {
		parts[i] = fmt.Sprintf("%g", val)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
