package driving

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// IngestService turns extracted text and files into stored documents.
type IngestService interface {
	// Ingest chunks, embeds and stores plain text.
	Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error)

	// IngestFile detects the file type, extracts its text and ingests it.
	// An empty id is replaced with a generated one.
	IngestFile(ctx context.Context, id, path string) (*domain.IngestResult, error)

	// IngestBytes extracts text from in-memory content and ingests it.
	// An empty mimeType is detected from the content and name.
	IngestBytes(ctx context.Context, id, name, mimeType string, content []byte) (*domain.IngestResult, error)
}

// QueryService answers natural-language queries from stored documents.
type QueryService interface {
	// Answer uses the last message of the history as the query.
	// Validation failures are reported as an unsuccessful answer with a nil error.
	Answer(ctx context.Context, messages []domain.Message, opts domain.QueryOptions) (*domain.QueryAnswer, error)

	// Query answers a single plain-text query.
	Query(ctx context.Context, query string, opts domain.QueryOptions) (*domain.QueryAnswer, error)
}
