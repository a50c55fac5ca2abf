// ABOUTME: CLI command to index a video transcript
// ABOUTME: Chunks, embeds, and stores timestamped transcript lines
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/vidrag/internal/rag"
	"github.com/harper/vidrag/internal/transcript"
	"github.com/harper/vidrag/internal/util"
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <video-url> <transcript-file>",
		Short: "Index a video transcript",
		Long: `Index a video transcript so it can be searched and asked about.

The transcript file must contain lines that start with a [HH:MM:SS]
timestamp. Videos that are already indexed are skipped.

Examples:
  vidrag index "https://youtube.com/watch?v=dQw4w9WgXcQ" talk.txt
  vidrag index --format json "https://youtu.be/dQw4w9WgXcQ" talk.txt`,
		Args: cobra.ExactArgs(2),
		RunE: runIndex,
	}

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	videoURL, transcriptPath := args[0], args[1]

	videoID, err := util.ExtractVideoID(videoURL)
	if err != nil {
		return fmt.Errorf("parsing video URL: %w", err)
	}

	s, err := newStack()
	if err != nil {
		return err
	}
	defer s.Close()

	windower, err := transcript.NewWindower(s.cfg.ChunkSeconds, s.cfg.OverlapSeconds)
	if err != nil {
		return fmt.Errorf("chunking configuration: %w", err)
	}

	indexer := rag.NewIndexer(windower, s.embedder, s.store, s.cfg.UpsertBatch)
	result, err := indexer.IndexFile(cmd.Context(), videoID, transcriptPath)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", videoID, err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if result.Skipped {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Video %s is already indexed, skipping\n", result.VideoID)
		}
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Indexed %s: %d segments into %d chunks\n",
			result.VideoID, result.Segments, result.Chunks)
	}
	return nil
}
