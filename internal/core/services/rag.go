package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// Ensure RAGService implements the interface.
var _ driving.QueryService = (*RAGService)(nil)

// contextSeparator joins retrieved chunks into the synthesis context.
const contextSeparator = "\n\n"

// RAGService answers queries by retrieving similar chunks and synthesizing
// a templated answer from them. It never writes to the store.
type RAGService struct {
	search driving.SearchService
	now    func() time.Time
}

// NewRAGService creates a new RAG service on top of a search service.
func NewRAGService(search driving.SearchService) *RAGService {
	return &RAGService{
		search: search,
		now:    time.Now,
	}
}

// Query answers a single plain-text query.
func (s *RAGService) Query(ctx context.Context, query string, opts domain.QueryOptions) (*domain.QueryAnswer, error) {
	return s.Answer(ctx, []domain.Message{domain.UserMessage(query)}, opts)
}

// Answer uses the last message of the history as the query.
// Invalid input yields an unsuccessful answer and a nil error. Search
// failures yield an unsuccessful answer together with the wrapped error.
func (s *RAGService) Answer(
	ctx context.Context, messages []domain.Message, opts domain.QueryOptions,
) (*domain.QueryAnswer, error) {
	if len(messages) == 0 {
		return domain.FailedAnswer("no messages provided"), nil
	}

	query := domain.LastMessageText(messages)
	if query == "" {
		return domain.FailedAnswer(domain.ErrEmptyQuery.Error()), nil
	}

	if err := validateStruct(opts); err != nil {
		return domain.FailedAnswer(err.Error()), nil
	}

	logger.Debug("Answering %q (maxResults=%d, threshold=%.2f)", truncate(query, 100), opts.MaxResults, opts.Threshold)

	results, err := s.search.Search(ctx, query, opts.MaxResults, opts.Threshold)
	if err != nil {
		return domain.FailedAnswer(err.Error()), fmt.Errorf("answer query: %w", err)
	}

	if len(results) == 0 {
		logger.Debug("No chunks above threshold %.2f", opts.Threshold)
		return domain.NoResultsAnswer(opts.IncludeContext), nil
	}

	queryType := Classify(query)
	texts := make([]string, len(results))
	for i := range results {
		texts[i] = results[i].ChunkText
	}

	answer := &domain.QueryAnswer{
		Success:    true,
		Suggestion: Synthesize(query, strings.Join(texts, contextSeparator), queryType),
		Confidence: Confidence(results),
		QueryType:  queryType,
		Sources:    sourcesOf(results),
		Metadata: &domain.AnswerMetadata{
			ChunksUsed:    len(results),
			AvgSimilarity: averageSimilarity(results),
			ProcessedAt:   s.now().UTC(),
		},
	}
	if opts.IncludeContext {
		answer.Context = results
	}

	logger.Debug("Answered as %s from %d chunks (confidence %.2f)", queryType, len(results), answer.Confidence)
	return answer, nil
}

// sourcesOf credits each document once, with its best similarity.
// Results are sorted by similarity so the first hit per document is the best.
func sourcesOf(results []domain.SearchResult) []domain.Source {
	seen := make(map[string]bool, len(results))
	sources := make([]domain.Source, 0, len(results))
	for _, r := range results {
		if seen[r.DocumentID] {
			continue
		}
		seen[r.DocumentID] = true
		sources = append(sources, domain.Source{
			Filename:   r.Metadata.Filename,
			Similarity: r.Similarity,
		})
	}
	return sources
}

// truncate shortens s to at most n runes for log output.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
