package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage indexed documents",
	Long:  `List, view, or delete indexed documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info and chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Remove a document and its embeddings",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

// documentChunks prints every chunk with document get.
var documentChunks bool

func init() {
	documentGetCmd.Flags().BoolVarP(&documentChunks, "chunks", "c", false, "print every chunk")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Printf("Documents (%d):\n", len(docs))
	for _, doc := range docs {
		cmd.Printf("  %s  %s  %d chunks\n", doc.ID, doc.Filename, doc.Chunks)
	}
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("ID:        %s\n", doc.ID)
	cmd.Printf("Filename:  %s\n", doc.Metadata.Filename)
	cmd.Printf("MIME type: %s\n", doc.Metadata.MIMEType)
	cmd.Printf("Size:      %d bytes\n", doc.Metadata.Size)
	cmd.Printf("Chunks:    %d\n", len(doc.Chunks))
	if !doc.AddedAt.IsZero() {
		cmd.Printf("Added:     %s\n", doc.AddedAt.Format("2006-01-02 15:04:05"))
	}

	if documentChunks {
		for _, chunk := range doc.Chunks {
			cmd.Println()
			cmd.Println(heading(fmt.Sprintf("[%d]", chunk.Position)))
			cmd.Println(strings.TrimSpace(chunk.Content))
		}
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", args[0])
	return nil
}
