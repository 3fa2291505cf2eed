// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// AnswerReceived carries the pipeline answer back to the model.
type AnswerReceived struct {
	Question string
	Answer   *domain.QueryAnswer
	Err      error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the conversation view.
	ViewChat ViewType = iota
	// ViewDocuments lists stored documents.
	ViewDocuments
	// ViewDocContent shows the chunks of one document.
	ViewDocContent
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewDocuments:
		return "documents"
	case ViewDocContent:
		return "doc_content"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// StatsLoaded carries store statistics for the status bar.
type StatsLoaded struct {
	Stats *domain.Stats
	Err   error
}

// DocumentsLoaded carries the stored document summaries.
type DocumentsLoaded struct {
	Documents []domain.DocumentSummary
	Err       error
}

// DocumentSelected signals a document was selected.
type DocumentSelected struct {
	Document domain.DocumentSummary
}

// DocumentContentLoaded carries a full document with its chunks.
type DocumentContentLoaded struct {
	DocumentID string
	Document   *domain.Document
	Err        error
}

// DocumentDeleted signals a document was removed.
type DocumentDeleted struct {
	DocumentID string
	Err        error
}
