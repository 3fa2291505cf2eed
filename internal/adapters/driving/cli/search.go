package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchLimit     int
	searchThreshold float64
	searchFormat    string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed chunks",
	Long: `Embeds the query and ranks every stored chunk by cosine similarity.
Returns the raw chunks without synthesising an answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from settings)")
	searchCmd.Flags().Float64VarP(&searchThreshold, "threshold", "t", 0, "minimum similarity (default from settings)")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}
	if err := checkFormat(searchFormat); err != nil {
		return err
	}

	opts := queryDefaults()
	if cmd.Flags().Changed("limit") {
		opts.MaxResults = searchLimit
	}
	if cmd.Flags().Changed("threshold") {
		opts.Threshold = searchThreshold
	}

	results, err := searchService.Search(cmd.Context(), args[0], opts.MaxResults, opts.Threshold)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if done, err := writeStructured(cmd, searchFormat, results); done {
		return err
	}
	printResults(cmd, results)
	return nil
}
