package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages stored documents.
type DocumentService struct {
	store            driven.VectorStore
	embeddingService driven.EmbeddingService
	mode             domain.EmbeddingMode
}

// NewDocumentService creates a new document service. The embedding service
// and mode are only reported through Stats.
func NewDocumentService(
	store driven.VectorStore,
	embeddingService driven.EmbeddingService,
	mode domain.EmbeddingMode,
) *DocumentService {
	return &DocumentService{
		store:            store,
		embeddingService: embeddingService,
		mode:             mode,
	}
}

// List returns summaries of every stored document ordered by ID.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentSummary, error) {
	docs, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	summaries := make([]domain.DocumentSummary, len(docs))
	for i := range docs {
		summaries[i] = docs[i].Summary()
	}
	return summaries, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, fmt.Errorf("%w: document ID is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, documentID)
}

// Delete removes a document by ID.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return fmt.Errorf("%w: document ID is required", domain.ErrInvalidInput)
	}
	if err := s.store.Delete(ctx, documentID); err != nil {
		return err
	}
	logger.Info("Deleted document %s", documentID)
	return nil
}

// Stats returns store counts with the embedding model and mode in use.
func (s *DocumentService) Stats(ctx context.Context) (*domain.Stats, error) {
	counts, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("store stats: %w", err)
	}

	stats := &domain.Stats{
		StoreStats:    counts,
		EmbeddingMode: s.mode,
	}
	if s.embeddingService != nil {
		stats.ModelName = s.embeddingService.ModelName()
	}
	return stats, nil
}
