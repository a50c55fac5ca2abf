// ABOUTME: Error taxonomy shared across embedding, storage, and retrieval
// ABOUTME: Dimension mismatches and provider failures as errors.Is/As compatible types
package models

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is the sentinel matched by every DimensionError.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// DimensionError reports an embedding vector whose length differs from
// the configured dimension. Vectors are never truncated or padded.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: expected %d, got %d", e.Want, e.Got)
}

func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// CheckDimension validates a vector against the expected dimension.
func CheckDimension(vector []float32, want int) error {
	if len(vector) != want {
		return &DimensionError{Want: want, Got: len(vector)}
	}
	return nil
}

// ProviderError wraps a failure from an external capability (embedding
// model, vector store, or generation model). The underlying cause is
// preserved for errors.Is/As; no retry happens beyond the capability's
// own retry policy.
type ProviderError struct {
	Provider string // "openai", "onnx", "charm", "postgres"
	Op       string // operation that failed, e.g. "embed", "query"
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
