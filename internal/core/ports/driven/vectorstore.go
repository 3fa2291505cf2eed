package driven

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// VectorStore is the durable mapping from document ID to document.
// It exclusively owns stored documents. Documents returned from Get and All
// share their chunk and embedding slices with the store and must not be mutated.
type VectorStore interface {
	// Add stores the document, replacing any document with the same ID.
	// No partially-updated document is ever observable by readers.
	Add(ctx context.Context, doc domain.Document) error

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if the document does not exist.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes a document by ID.
	// Returns domain.ErrNotFound if the document does not exist.
	Delete(ctx context.Context, id string) error

	// All returns every stored document ordered by ID.
	All(ctx context.Context) ([]domain.Document, error)

	// Stats returns the document and chunk counts.
	Stats(ctx context.Context) (domain.StoreStats, error)

	// Close releases resources.
	Close() error
}

// SnapshotStore persists full store snapshots.
// Every Save replaces the previous snapshot in its entirety.
type SnapshotStore interface {
	// Load reads the latest snapshot.
	// A missing snapshot yields an empty map and no error.
	Load(ctx context.Context) (map[string]domain.Document, error)

	// Save replaces the snapshot with docs.
	Save(ctx context.Context, docs map[string]domain.Document) error

	// Location describes where snapshots are written.
	Location() string

	// Close releases resources.
	Close() error
}
