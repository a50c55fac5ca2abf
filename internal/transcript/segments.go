// ABOUTME: SegmentBuilder parses raw time-stamped transcript text into segments
// ABOUTME: One segment per "[HH:MM:SS]text" line, end inferred from the following line
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/harper/vidrag/internal/models"
)

// lastSegmentPadding is the assumed duration of a segment whose end
// cannot be inferred from a following timestamp.
const lastSegmentPadding = 5

var segmentLineRe = regexp.MustCompile(`^(\[\d{2}:\d{2}:\d{2}\])(.*)`)

// ParseSegments reads transcript text and returns ordered segments,
// one per time-stamped line. Lines without a leading [HH:MM:SS] token
// are skipped. A segment's end is the timestamp of the immediately
// following line when that line carries one, otherwise start+5; the
// final line always gets start+5.
func ParseSegments(r io.Reader) ([]models.Segment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	var segments []models.Segment
	for i, line := range lines {
		m := segmentLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		start := ParseTimestamp(m[1])
		end := start + lastSegmentPadding
		if i < len(lines)-1 {
			if next := segmentLineRe.FindStringSubmatch(lines[i+1]); next != nil {
				end = ParseTimestamp(next[1])
			}
		}

		segments = append(segments, models.Segment{
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(m[2]),
		})
	}

	return segments, nil
}

// ParseSegmentFile parses the transcript file at path.
func ParseSegmentFile(path string) ([]models.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	return ParseSegments(f)
}
