// Package jsondoc provides a Normaliser for JSON documents.
package jsondoc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/fileutil"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser validates JSON and re-indents it so that each value sits on
// its own line.
type Normaliser struct{}

// New creates a new JSON normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name identifies the normaliser.
func (n *Normaliser) Name() string {
	return "json"
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/json", "text/json"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise returns the document pretty-printed with two-space indentation.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.ExtractedText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw.Content), "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON: %v", domain.ErrInvalidInput, raw.URI, err)
	}

	return &domain.ExtractedText{
		Title: fileutil.TitleFromPath(raw.URI),
		Text:  buf.String(),
	}, nil
}
