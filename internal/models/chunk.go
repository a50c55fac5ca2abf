// ABOUTME: Chunk is the retrievable unit spanning one or more transcript segments
// ABOUTME: Defines the deterministic chunk id scheme used as the vector store key
package models

import "fmt"

// Chunk is a windowed slice of a video transcript, the unit of
// indexing and retrieval. Start and End are in seconds.
type Chunk struct {
	ID      string `json:"id"`
	VideoID string `json:"video_id"`
	Start   int    `json:"start_time"`
	End     int    `json:"end_time"`
	Text    string `json:"text"`
	URL     string `json:"youtube_url"`
}

// ScoredChunk pairs a chunk with the similarity score the vector store
// reported for it.
type ScoredChunk struct {
	Chunk
	Score float32 `json:"score"`
}

// ChunkID builds the deterministic chunk identifier for a video and
// start offset: "<video>_<start zero-padded to 6 digits>".
func ChunkID(videoID string, start int) string {
	return fmt.Sprintf("%s_%06d", videoID, start)
}

// Validate checks the chunk's invariants.
func (c Chunk) Validate() error {
	if c.End < c.Start {
		return fmt.Errorf("chunk %s end %d is before start %d", c.ID, c.End, c.Start)
	}
	if c.VideoID == "" {
		return fmt.Errorf("chunk %s has no video id", c.ID)
	}
	return nil
}
