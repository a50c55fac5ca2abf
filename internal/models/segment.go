// ABOUTME: Segment is one timestamped transcript line with an inferred end time
// ABOUTME: Produced by transcript parsing, consumed by the chunk windower
package models

import "fmt"

// Segment is a single timestamped line of a transcript. Start and End
// are offsets in seconds from the beginning of the video; End is
// inferred from the next line's timestamp.
type Segment struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Validate rejects segments with impossible time ranges.
func (s Segment) Validate() error {
	if s.Start < 0 {
		return fmt.Errorf("segment start %d is negative", s.Start)
	}
	if s.End <= s.Start {
		return fmt.Errorf("segment end %d is not after start %d", s.End, s.Start)
	}
	return nil
}
