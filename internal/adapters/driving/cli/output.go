package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	success = color.New(color.FgGreen, color.Bold).SprintFunc()
	failure = color.New(color.FgRed, color.Bold).SprintFunc()
	faint   = color.New(color.Faint).SprintFunc()
)

// checkFormat rejects unknown --format values.
func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", format)
	}
}

// writeStructured prints v as JSON or YAML. It reports false for the text
// format so the caller renders its own layout.
func writeStructured(cmd *cobra.Command, format string, v any) (bool, error) {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Println(string(data))
		return true, nil
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Print(string(data))
		return true, nil
	default:
		return false, nil
	}
}

// printAnswer renders an answer in the text format.
func printAnswer(cmd *cobra.Command, answer *domain.QueryAnswer) {
	if !answer.Success {
		cmd.Printf("%s %s\n", failure("Error:"), answer.Error)
		return
	}

	cmd.Println(answer.Suggestion)
	cmd.Println()

	details := fmt.Sprintf("confidence %.2f", answer.Confidence)
	if answer.QueryType != "" {
		details += ", " + answer.QueryType.String()
	}
	cmd.Println(faint(details))

	if len(answer.Sources) > 0 {
		names := make([]string, len(answer.Sources))
		for i, s := range answer.Sources {
			names[i] = fmt.Sprintf("%s (%.2f)", s.Filename, s.Similarity)
		}
		cmd.Printf("%s %s\n", heading("Sources:"), strings.Join(names, ", "))
	}
}

// printResults renders search results in the text format.
func printResults(cmd *cobra.Command, results []domain.SearchResult) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println(heading("Results:"))
	cmd.Println()
	for i := range results {
		r := results[i]
		name := r.Metadata.Filename
		if name == "" {
			name = r.DocumentID
		}
		cmd.Printf("  [%d] %s #%d (%.2f)\n", i+1, name, r.ChunkIndex, r.Similarity)
		cmd.Printf("      %s\n", snippet(r.ChunkText, 160))
		cmd.Println()
	}
}

// snippet shortens text to at most n runes on a single line.
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
