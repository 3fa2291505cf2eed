package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector store statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := checkFormat(statsFormat); err != nil {
		return err
	}

	stats, err := documentService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if done, err := writeStructured(cmd, statsFormat, stats); done {
		return err
	}

	cmd.Printf("Documents:  %d\n", stats.Documents)
	cmd.Printf("Chunks:     %d\n", stats.TotalChunks)
	cmd.Printf("Model:      %s\n", stats.ModelName)
	cmd.Printf("Embeddings: %s\n", stats.EmbeddingMode)
	return nil
}
