package driving

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// DocumentService manages stored documents.
type DocumentService interface {
	// List returns summaries of every stored document ordered by ID.
	List(ctx context.Context) ([]domain.DocumentSummary, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Delete removes a document by ID.
	Delete(ctx context.Context, documentID string) error

	// Stats returns store counts and the embedding model in use.
	Stats(ctx context.Context) (*domain.Stats, error)
}
