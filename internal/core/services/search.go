package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks stored chunks by cosine similarity to a query.
type SearchService struct {
	store            driven.VectorStore
	embeddingService driven.EmbeddingService
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.VectorStore, embeddingService driven.EmbeddingService) *SearchService {
	return &SearchService{
		store:            store,
		embeddingService: embeddingService,
	}
}

// Search embeds the query once and scans every chunk of every document.
// Results have similarity >= threshold, are sorted by similarity descending
// with ties broken by document ID then chunk index, and are cut to topK.
func (s *SearchService) Search(
	ctx context.Context, query string, topK int, threshold float64,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q, topK: %d, threshold: %.2f", query, topK, threshold)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if topK <= 0 {
		return []domain.SearchResult{}, nil
	}

	queryVec, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	docs, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	results := make([]domain.SearchResult, 0)
	scanned := 0
	for i := range docs {
		doc := &docs[i]
		for j, emb := range doc.Embeddings {
			scanned++
			sim := domain.CosineSimilarity(queryVec, emb)
			if sim < threshold {
				continue
			}
			results = append(results, domain.SearchResult{
				DocumentID: doc.ID,
				ChunkIndex: j,
				ChunkText:  doc.Chunks[j].Content,
				Similarity: sim,
				Metadata:   doc.Metadata,
			})
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortResults(results)
	if len(results) > topK {
		results = results[:topK]
	}

	logger.Debug("Scanned %d chunks across %d documents, %d results", scanned, len(docs), len(results))
	return results, nil
}

// sortResults orders by similarity descending, then document ID, then chunk index.
func sortResults(results []domain.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if a.DocumentID != b.DocumentID {
			return a.DocumentID < b.DocumentID
		}
		return a.ChunkIndex < b.ChunkIndex
	})
}
