package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

var (
	askMaxResults int
	askThreshold  float64
	askNoContext  bool
	askFormat     string
)

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from indexed documents",
	Long: `Retrieves the chunks most similar to the question and builds an extractive
answer from them. The answer strategy follows the question type: "how" questions
produce numbered steps, "when" questions collect dates and times, and so on.

Without a question on a terminal, ask starts a conversation loop. Type 'exit'
or press Ctrl+D to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askMaxResults, "max-results", "n", 0, "maximum chunks to retrieve (default from settings)")
	askCmd.Flags().Float64VarP(&askThreshold, "threshold", "t", 0, "minimum similarity (default from settings)")
	askCmd.Flags().BoolVar(&askNoContext, "no-context", false, "omit retrieved chunks from structured output")
	askCmd.Flags().StringVarP(&askFormat, "format", "f", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}
	if err := checkFormat(askFormat); err != nil {
		return err
	}

	opts := askOptions(cmd)

	if len(args) == 1 {
		answer, err := queryService.Query(cmd.Context(), args[0], opts)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		return writeAnswer(cmd, answer)
	}

	if !stdinIsTerminal() {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read question: %w", err)
		}
		answer, err := queryService.Query(cmd.Context(), string(data), opts)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		return writeAnswer(cmd, answer)
	}

	return askLoop(cmd, opts)
}

// askLoop reads questions until EOF or "exit". The whole conversation is
// passed on each turn and the last message is answered.
func askLoop(cmd *cobra.Command, opts domain.QueryOptions) error {
	cmd.Println(success("sercha-rag"), "ask anything about your documents. Type 'exit' to quit.")
	cmd.Println()

	var history []domain.Message
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print(success("You: "))
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			return nil
		}

		history = append(history, domain.UserMessage(input))
		answer, err := queryService.Answer(cmd.Context(), history, opts)
		if err != nil {
			cmd.PrintErrf("Error: %v\n", err)
			continue
		}

		cmd.Print(heading("Assistant: "))
		if err := writeAnswer(cmd, answer); err != nil {
			return err
		}
		cmd.Println()

		if answer.Success {
			history = append(history, domain.Message{
				Sender:    "assistant",
				Message:   answer.Suggestion,
				Timestamp: time.Now(),
			})
		}
	}
}

// askOptions starts from the configured query defaults and applies explicit flags.
func askOptions(cmd *cobra.Command) domain.QueryOptions {
	opts := queryDefaults()
	if cmd.Flags().Changed("max-results") {
		opts.MaxResults = askMaxResults
	}
	if cmd.Flags().Changed("threshold") {
		opts.Threshold = askThreshold
	}
	if askNoContext {
		opts.IncludeContext = false
	}
	return opts
}

func writeAnswer(cmd *cobra.Command, answer *domain.QueryAnswer) error {
	if done, err := writeStructured(cmd, askFormat, answer); done {
		return err
	}
	printAnswer(cmd, answer)
	return nil
}

// queryDefaults returns the configured query options, or the built-in
// defaults when settings are unavailable.
func queryDefaults() domain.QueryOptions {
	if settingsService == nil {
		return domain.DefaultQueryOptions()
	}
	settings, err := settingsService.Get()
	if err != nil {
		return domain.DefaultQueryOptions()
	}
	return settings.Query
}
