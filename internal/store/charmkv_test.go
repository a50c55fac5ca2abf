// ABOUTME: Tests for the Charm KV vector store with an in-memory fake
// ABOUTME: Covers similarity ranking, video scoping, dimension guard, existence

package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/harper/vidrag/internal/models"
)

// fakeKV is an in-memory stand-in for the charm client.
type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) SetJSON(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = data
	return nil
}

func (f *fakeKV) GetJSON(key string, dest interface{}) error {
	data, ok := f.data[key]
	if !ok {
		return errors.New("key not found: " + key)
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeKV) ListKeys(prefix string) ([]string, error) {
	var keys []string
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func record(videoID string, start int, text string, values []float32) Record {
	id := models.ChunkID(videoID, start)
	return Record{
		ID:     id,
		Values: values,
		Chunk: models.Chunk{
			ID:      id,
			VideoID: videoID,
			Start:   start,
			End:     start + 30,
			Text:    text,
		},
	}
}

func TestCharmStore_UpsertAndQuery(t *testing.T) {
	s := newCharmStoreWithKV(newFakeKV(), 3)
	ctx := context.Background()

	err := s.Upsert(ctx, []Record{
		record("vid", 0, "north", []float32{1, 0, 0}),
		record("vid", 30, "east", []float32{0, 1, 0}),
		record("vid", 60, "north-ish", []float32{0.9, 0.1, 0}),
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	results, err := s.Query(ctx, []float32{0.95, 0.05, 0}, "vid", 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// Descending similarity order.
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted: score[%d]=%.4f > score[%d]=%.4f",
				i, results[i].Score, i-1, results[i-1].Score)
		}
	}

	// "east" is nearly orthogonal to the query and must rank last.
	if results[2].Text != "east" {
		t.Errorf("last result = %q, want %q", results[2].Text, "east")
	}
}

func TestCharmStore_QueryTopK(t *testing.T) {
	s := newCharmStoreWithKV(newFakeKV(), 3)
	ctx := context.Background()

	var records []Record
	for i := 0; i < 10; i++ {
		records = append(records, record("vid", i*30, "text", []float32{1, float32(i), 0}))
	}
	if err := s.Upsert(ctx, records); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	results, err := s.Query(ctx, []float32{1, 0, 0}, "vid", 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}
}

func TestCharmStore_QueryScopedToVideo(t *testing.T) {
	s := newCharmStoreWithKV(newFakeKV(), 3)
	ctx := context.Background()

	err := s.Upsert(ctx, []Record{
		record("wanted", 0, "in scope", []float32{1, 0, 0}),
		record("other", 0, "out of scope", []float32{1, 0, 0}),
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	results, err := s.Query(ctx, []float32{1, 0, 0}, "wanted", 5)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].VideoID != "wanted" {
		t.Errorf("result video = %q, want %q", results[0].VideoID, "wanted")
	}
}

func TestCharmStore_QueryEmpty(t *testing.T) {
	s := newCharmStoreWithKV(newFakeKV(), 3)

	results, err := s.Query(context.Background(), []float32{1, 0, 0}, "missing", 3)
	if err != nil {
		t.Fatalf("Query() on empty store error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestCharmStore_DimensionGuard(t *testing.T) {
	s := newCharmStoreWithKV(newFakeKV(), 384)
	ctx := context.Background()

	err := s.Upsert(ctx, []Record{record("vid", 0, "short", []float32{1, 2, 3})})
	if !errors.Is(err, models.ErrDimensionMismatch) {
		t.Errorf("Upsert short vector error = %v, want dimension mismatch", err)
	}

	_, err = s.Query(ctx, []float32{1, 2, 3}, "vid", 3)
	if !errors.Is(err, models.ErrDimensionMismatch) {
		t.Errorf("Query short vector error = %v, want dimension mismatch", err)
	}
}

func TestCharmStore_Exists(t *testing.T) {
	s := newCharmStoreWithKV(newFakeKV(), 3)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "vid")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true for empty store")
	}

	if err := s.Upsert(ctx, []Record{record("vid", 0, "x", []float32{1, 0, 0})}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	exists, err = s.Exists(ctx, "vid")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false after upsert")
	}

	exists, _ = s.Exists(ctx, "other")
	if exists {
		t.Error("Exists() = true for different video")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("cosineSimilarity = %f, want %f", got, tt.want)
			}
		})
	}
}
