// Package cli provides the cobra command tree for sercha-rag.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// version is set by the composition root.
var version = "dev"

// Services injected by the composition root.
var (
	ingestService   driving.IngestService
	queryService    driving.QueryService
	searchService   driving.SearchService
	documentService driving.DocumentService
	settingsService driving.SettingsService
	watchService    driving.WatchService
)

// verbose enables debug logging for every command.
var verbose bool

// Services holds the core services the commands drive.
type Services struct {
	Ingest    driving.IngestService
	Query     driving.QueryService
	Search    driving.SearchService
	Documents driving.DocumentService
	Settings  driving.SettingsService
	Watch     driving.WatchService
}

var rootCmd = &cobra.Command{
	Use:   "sercha-rag",
	Short: "Local retrieval-augmented question answering",
	Long: `sercha-rag ingests documents into a local vector store and answers
questions from them with extractive, citation-backed responses.

Embeddings come from Ollama or OpenAI when configured, and fall back to a
deterministic hash embedding when no model is reachable.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices wires the core services into the command tree.
func SetServices(s Services) {
	ingestService = s.Ingest
	queryService = s.Query
	searchService = s.Search
	documentService = s.Documents
	settingsService = s.Settings
	watchService = s.Watch
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
