package driving

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// SearchService provides similarity search to external actors.
type SearchService interface {
	// Search embeds the query and returns at most topK chunks with
	// similarity >= threshold, sorted by similarity descending.
	Search(ctx context.Context, query string, topK int, threshold float64) ([]domain.SearchResult, error)
}
