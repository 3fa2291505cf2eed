// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// EmbeddingService generates vector embeddings from text.
//
// Implementations include:
//   - hash: deterministic, model-free fallback
//   - Ollama (all-minilm)
//   - OpenAI (text-embedding-3-small at 384 dimensions)
//   - resilient: wraps a model-backed service and falls back to hash per text
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) (domain.Vector, error)

	// EmbedBatch generates embeddings for multiple texts.
	// The returned slice is index-aligned with texts.
	EmbedBatch(ctx context.Context, texts []string) ([]domain.Vector, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	// This is used at startup to choose between model-backed and fallback mode.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
