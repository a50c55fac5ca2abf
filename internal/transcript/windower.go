// ABOUTME: Windower partitions ordered segments into overlapping chunks
// ABOUTME: Sliding window of chunkSize seconds with an overlap look-back rewind
package transcript

import (
	"fmt"
	"strings"

	"github.com/harper/vidrag/internal/models"
	"github.com/harper/vidrag/internal/util"
)

// Default window geometry, in seconds.
const (
	DefaultChunkSeconds   = 30
	DefaultOverlapSeconds = 5
)

// Windower slices a segment sequence into chunks of roughly chunkSize
// seconds, rewinding by up to overlap seconds between chunks so text
// near a boundary is retrievable from either side.
type Windower struct {
	chunkSize int
	overlap   int
}

// NewWindower validates the window geometry. overlap must be strictly
// smaller than chunkSize or the rewind step cannot guarantee forward
// progress.
func NewWindower(chunkSize, overlap int) (*Windower, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap must not be negative, got %d", overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("overlap %d must be smaller than chunk size %d", overlap, chunkSize)
	}
	return &Windower{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunks windows the segments for one video into ordered chunks.
//
// A chunk accumulates segment texts while the window start-to-cursor
// span stays under chunkSize, where the cursor advances to the next
// segment's start (or the final segment's own end). The chunk's end is
// the smaller of start+chunkSize and the cursor. After each chunk the
// index rewinds over trailing segments that start inside the last
// overlap seconds, so they are re-included at the front of the next
// chunk. The rewind never moves at or before the index the finished
// chunk started from; every chunk begins at a strictly later segment,
// which bounds the loop for every input.
func (w *Windower) Chunks(segments []models.Segment, videoID string) []models.Chunk {
	var chunks []models.Chunk
	n := len(segments)
	i := 0

	for i < n {
		startIdx := i
		chunkStart := segments[i].Start
		current := chunkStart

		var texts []string
		for i < n && current-chunkStart < w.chunkSize {
			texts = append(texts, segments[i].Text)
			if i < n-1 {
				current = segments[i+1].Start
			} else {
				current = segments[i].End
			}
			i++
		}

		chunkEnd := min(chunkStart+w.chunkSize, current)
		chunks = append(chunks, models.Chunk{
			ID:      models.ChunkID(videoID, chunkStart),
			VideoID: videoID,
			Start:   chunkStart,
			End:     chunkEnd,
			Text:    strings.Join(texts, " "),
			URL:     util.WatchURL(videoID, chunkStart),
		})

		// Overlap rewind.
		for i > 0 && segments[i-1].Start > chunkEnd-w.overlap {
			i--
		}
		if i <= startIdx {
			i = startIdx + 1
		}
	}

	return chunks
}
