package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Chat with your documents in the terminal",
	Long: `Launch the interactive terminal chat for sercha-rag.

Each question is answered from the indexed documents with the earlier
turns of the conversation available to the pipeline. A second view lists
the indexed documents and shows their chunks.

Controls:
  Enter      - Send question / Select
  Tab        - Documents list
  PgUp/PgDn  - Scroll conversation
  Esc        - Back
  F1         - Toggle help
  Ctrl+C     - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// newTUIProgram builds the bubbletea program. Replaced in tests.
var newTUIProgram = func(app *tui.App) interface{ Run() (tea.Model, error) } {
	return tea.NewProgram(app, tea.WithAltScreen())
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if queryService == nil {
		return errors.New("query service not configured")
	}

	ports := tui.NewPorts(queryService, documentService)
	ports.Options = queryDefaults()

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	// Warnings would draw over the alternate screen.
	logger.SetQuiet(true)
	defer logger.SetQuiet(false)

	if _, err := newTUIProgram(app).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
