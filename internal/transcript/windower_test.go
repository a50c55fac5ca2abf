// ABOUTME: Tests for the sliding-window chunker with overlap rewind
// ABOUTME: Covers coverage, overlap, determinism, and termination properties

package transcript

import (
	"reflect"
	"testing"

	"github.com/harper/vidrag/internal/models"
)

func mustWindower(t *testing.T, size, overlap int) *Windower {
	t.Helper()
	w, err := NewWindower(size, overlap)
	if err != nil {
		t.Fatalf("NewWindower(%d, %d) error = %v", size, overlap, err)
	}
	return w
}

func TestNewWindower_RejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero chunk size", 0, 0},
		{"negative chunk size", -10, 0},
		{"negative overlap", 30, -1},
		{"overlap equals size", 30, 30},
		{"overlap exceeds size", 30, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewWindower(tt.size, tt.overlap); err == nil {
				t.Errorf("NewWindower(%d, %d) accepted invalid geometry", tt.size, tt.overlap)
			}
		})
	}
}

func TestChunks_WorkedExample(t *testing.T) {
	// Four segments, 20s window, 5s overlap.
	segments := []models.Segment{
		{Start: 0, End: 10, Text: "intro"},
		{Start: 10, End: 20, Text: "setup"},
		{Start: 20, End: 35, Text: "details"},
		{Start: 35, End: 45, Text: "wrap"},
	}

	w := mustWindower(t, 20, 5)
	chunks := w.Chunks(segments, "vid")

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}

	if chunks[0].Start != 0 || chunks[0].End != 20 {
		t.Errorf("chunk 0 = [%d, %d], want [0, 20]", chunks[0].Start, chunks[0].End)
	}
	if chunks[0].Text != "intro setup" {
		t.Errorf("chunk 0 text = %q, want %q", chunks[0].Text, "intro setup")
	}
	if chunks[0].ID != "vid_000000" {
		t.Errorf("chunk 0 id = %q, want vid_000000", chunks[0].ID)
	}

	// No segment starts inside (15, 20], so there is nothing to rewind
	// over and the second chunk begins exactly where the first ended.
	if chunks[1].Start != 20 {
		t.Errorf("chunk 1 start = %d, want 20", chunks[1].Start)
	}
	if chunks[1].Text != "details wrap" {
		t.Errorf("chunk 1 text = %q, want %q", chunks[1].Text, "details wrap")
	}
}

func TestChunks_OverlapRewind(t *testing.T) {
	// Segments every 3 seconds. The 30s window ends at 30; segments
	// starting after 25 must be re-included in the next chunk.
	var segments []models.Segment
	for s := 0; s < 60; s += 3 {
		segments = append(segments, models.Segment{Start: s, End: s + 3, Text: FormatTimestamp(s)})
	}

	w := mustWindower(t, 30, 5)
	chunks := w.Chunks(segments, "vid")

	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}

	// Overlap occurred: the second chunk starts before the first ends.
	if chunks[1].Start >= chunks[0].End {
		t.Errorf("chunk 1 start %d is not inside chunk 0 end %d", chunks[1].Start, chunks[0].End)
	}
	// Specifically it starts at the first segment past end-overlap.
	if chunks[1].Start != 27 {
		t.Errorf("chunk 1 start = %d, want 27", chunks[1].Start)
	}
}

func TestChunks_CoverageInvariants(t *testing.T) {
	var segments []models.Segment
	for s := 0; s < 300; s += 7 {
		segments = append(segments, models.Segment{Start: s, End: s + 7, Text: "x"})
	}

	w := mustWindower(t, 30, 5)
	chunks := w.Chunks(segments, "vid")

	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}

	if chunks[0].Start != segments[0].Start {
		t.Errorf("first chunk starts at %d, want %d", chunks[0].Start, segments[0].Start)
	}
	last := chunks[len(chunks)-1]
	if last.End > segments[len(segments)-1].End {
		t.Errorf("last chunk ends at %d, after last segment end %d", last.End, segments[len(segments)-1].End)
	}

	for k, c := range chunks {
		if c.End-c.Start > 30 {
			t.Errorf("chunk %d spans %d seconds, exceeds window", k, c.End-c.Start)
		}
		if k == 0 {
			continue
		}
		// Consecutive chunks either overlap or abut, never leave a gap.
		if c.Start > chunks[k-1].End {
			t.Errorf("gap between chunk %d (end %d) and chunk %d (start %d)",
				k-1, chunks[k-1].End, k, c.Start)
		}
	}
}

func TestChunks_Deterministic(t *testing.T) {
	segments := []models.Segment{
		{Start: 0, End: 4, Text: "a"},
		{Start: 4, End: 11, Text: "b"},
		{Start: 11, End: 29, Text: "c"},
		{Start: 29, End: 33, Text: "d"},
		{Start: 33, End: 38, Text: "e"},
	}

	w := mustWindower(t, 30, 5)
	first := w.Chunks(segments, "vid")
	second := w.Chunks(segments, "vid")

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated runs produced different chunks")
	}
}

func TestChunks_SingleSegment(t *testing.T) {
	segments := []models.Segment{{Start: 12, End: 17, Text: "only"}}

	w := mustWindower(t, 30, 5)
	chunks := w.Chunks(segments, "vid")

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Start != 12 || chunks[0].End != 17 {
		t.Errorf("chunk = [%d, %d], want [12, 17]", chunks[0].Start, chunks[0].End)
	}
	if chunks[0].Text != "only" {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
}

func TestChunks_Empty(t *testing.T) {
	w := mustWindower(t, 30, 5)
	if chunks := w.Chunks(nil, "vid"); len(chunks) != 0 {
		t.Errorf("got %d chunks from no segments, want 0", len(chunks))
	}
}

func TestChunks_TerminatesOnShortTrailingSegment(t *testing.T) {
	// A large overlap relative to the final segment's duration makes the
	// naive rewind point back at the segment it just consumed. The
	// windower must still finish, with each chunk starting strictly
	// later than the one before.
	segments := []models.Segment{
		{Start: 0, End: 40, Text: "long opener"},
		{Start: 40, End: 45, Text: "short tail"},
	}

	w := mustWindower(t, 30, 20)
	done := make(chan []models.Chunk, 1)
	go func() { done <- w.Chunks(segments, "vid") }()

	chunks := <-done
	for k := 1; k < len(chunks); k++ {
		if chunks[k].Start <= chunks[k-1].Start {
			t.Errorf("chunk %d start %d does not advance past chunk %d start %d",
				k, chunks[k].Start, k-1, chunks[k-1].Start)
		}
	}
}

func TestChunks_RepeatedStartTimes(t *testing.T) {
	// Identical start times must not stall the rewind.
	segments := []models.Segment{
		{Start: 0, End: 5, Text: "a"},
		{Start: 0, End: 5, Text: "b"},
		{Start: 0, End: 5, Text: "c"},
	}

	w := mustWindower(t, 30, 5)
	chunks := w.Chunks(segments, "vid")

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "a b c" {
		t.Errorf("chunk text = %q, want %q", chunks[0].Text, "a b c")
	}
}
