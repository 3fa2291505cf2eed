package driven

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// Normaliser extracts plain text from one family of file formats.
type Normaliser interface {
	// Name identifies the normaliser in logs.
	Name() string

	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers return 50-89, fallbacks 1-9.
	Priority() int

	// Normalise extracts text from raw bytes.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.ExtractedText, error)
}

// NormaliserRegistry selects a normaliser for a MIME type.
type NormaliserRegistry interface {
	// Register adds a normaliser.
	Register(n Normaliser)

	// Select returns the highest-priority normaliser handling mimeType.
	// Returns domain.ErrUnsupportedType when none matches.
	Select(mimeType string) (Normaliser, error)

	// SupportedMIMETypes lists every registered MIME type.
	SupportedMIMETypes() []string
}

// MIMEDetector determines the content type of a file.
type MIMEDetector interface {
	// Detect returns the MIME type, without parameters, for a file name and its content.
	Detect(name string, content []byte) string
}
