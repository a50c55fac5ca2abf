// ABOUTME: CLI command to find transcript moments by similarity
// ABOUTME: Prints ranked matches with timestamps and deep links, no synthesis
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/vidrag/internal/rag"
	"github.com/harper/vidrag/internal/transcript"
	"github.com/harper/vidrag/internal/util"
)

var (
	searchLimit int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <video-url> <query>",
		Short: "Find moments in an indexed video",
		Long: `Find the transcript moments most similar to a query.

Returns ranked matches with timestamps and links that jump straight
to the moment, without generating an answer.

Examples:
  vidrag search "https://youtube.com/watch?v=dQw4w9WgXcQ" "pricing discussion"
  vidrag search --limit 10 "https://youtu.be/dQw4w9WgXcQ" "demo"
  vidrag search --format json "https://youtu.be/dQw4w9WgXcQ" "demo"`,
		Args: cobra.ExactArgs(2),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 3, "Maximum moments to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	videoURL, query := args[0], args[1]

	videoID, err := util.ExtractVideoID(videoURL)
	if err != nil {
		return fmt.Errorf("parsing video URL: %w", err)
	}

	s, err := newStack()
	if err != nil {
		return err
	}
	defer s.Close()

	retriever := rag.NewRetriever(s.embedder, s.store, searchLimit)
	chunks, err := retriever.Retrieve(cmd.Context(), query, videoID)
	if err != nil {
		return fmt.Errorf("searching video: %w", err)
	}

	if len(chunks) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No moments found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(chunks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tTIME\tTEXT\tLINK\n")
	fmt.Fprintf(w, "-----\t----\t----\t----\n")

	for _, chunk := range chunks {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			chunk.Score,
			transcript.FormatTimestamp(chunk.Start),
			truncate(chunk.Text, 60),
			util.DeepLink(videoURL, chunk.Start))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d moment(s)\n", len(chunks))
	}

	return nil
}
