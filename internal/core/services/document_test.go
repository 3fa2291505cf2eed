package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

func newDocumentFixture() (*DocumentService, *mockVectorStore) {
	store := newMockVectorStore(
		storedDocument("doc-b", "b.md", []string{"b0"}, []domain.Vector{axisVector(1)}),
		storedDocument("doc-a", "a.txt", []string{"a0", "a1"}, []domain.Vector{axisVector(0), axisVector(2)}),
	)
	return NewDocumentService(store, &mockEmbeddingService{model: "all-minilm"}, domain.EmbeddingModeModel), store
}

func TestDocumentService_List(t *testing.T) {
	svc, _ := newDocumentFixture()

	summaries, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "doc-a", summaries[0].ID)
	assert.Equal(t, "a.txt", summaries[0].Filename)
	assert.Equal(t, 2, summaries[0].Chunks)
	assert.Equal(t, "doc-b", summaries[1].ID)
}

func TestDocumentService_List_Empty(t *testing.T) {
	svc := NewDocumentService(newMockVectorStore(), nil, domain.EmbeddingModeFallback)

	summaries, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestDocumentService_List_StoreError(t *testing.T) {
	store := newMockVectorStore()
	store.allErr = assert.AnError
	svc := NewDocumentService(store, nil, domain.EmbeddingModeFallback)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDocumentService_Get(t *testing.T) {
	svc, _ := newDocumentFixture()

	doc, err := svc.Get(context.Background(), " doc-a ")
	require.NoError(t, err)
	assert.Equal(t, "doc-a", doc.ID)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentService_Delete(t *testing.T) {
	svc, store := newDocumentFixture()

	require.NoError(t, svc.Delete(context.Background(), "doc-a"))
	assert.NotContains(t, store.docs, "doc-a")
	assert.Contains(t, store.docs, "doc-b")

	assert.ErrorIs(t, svc.Delete(context.Background(), "doc-a"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "  "), domain.ErrInvalidInput)
}

func TestDocumentService_Stats(t *testing.T) {
	svc, _ := newDocumentFixture()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &domain.Stats{
		StoreStats:    domain.StoreStats{Documents: 2, TotalChunks: 3},
		ModelName:     "all-minilm",
		EmbeddingMode: domain.EmbeddingModeModel,
	}, stats)
}

func TestDocumentService_Stats_WithoutEmbeddingService(t *testing.T) {
	svc := NewDocumentService(newMockVectorStore(), nil, domain.EmbeddingModeFallback)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats.ModelName)
	assert.Equal(t, domain.EmbeddingModeFallback, stats.EmbeddingMode)
}
