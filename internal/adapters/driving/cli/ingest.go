package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// stdinPath selects standard input as the ingest source.
const stdinPath = "-"

var (
	ingestID   string
	ingestName string
	ingestMIME string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]... | -",
	Short: "Add documents to the vector store",
	Long: `Extracts text from each file, splits it into chunks, embeds the chunks and
stores them. Supported formats are plain text, Markdown, HTML, JSON, email,
DOCX and PDF.

Use "-" to read a single document from standard input; --name and --mime
describe the piped content. Ingesting under an existing --id replaces that
document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestID, "id", "", "document ID (single input only; generated when empty)")
	ingestCmd.Flags().StringVar(&ingestName, "name", "stdin.txt", "file name for content read from stdin")
	ingestCmd.Flags().StringVar(&ingestMIME, "mime", "", "MIME type for content read from stdin (detected when empty)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if ingestID != "" && len(args) > 1 {
		return errors.New("--id can only be used with a single input")
	}

	ctx := cmd.Context()
	failed := 0
	for _, path := range args {
		var (
			result *domain.IngestResult
			err    error
		)
		if path == stdinPath {
			result, err = ingestStdin(cmd)
		} else {
			result, err = ingestService.IngestFile(ctx, ingestID, path)
		}
		if err != nil {
			failed++
			cmd.PrintErrf("%s %s: %v\n", failure("failed"), path, err)
			continue
		}
		cmd.Printf("%s %s -> %s (%d chunks)\n", success("ingested"), result.Filename, result.DocumentID, result.Chunks)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(args))
	}
	return nil
}

func ingestStdin(cmd *cobra.Command) (*domain.IngestResult, error) {
	if stdinIsTerminal() {
		return nil, errors.New("no input piped to stdin")
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return ingestService.IngestBytes(cmd.Context(), ingestID, ingestName, ingestMIME, content)
}
