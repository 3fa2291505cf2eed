package services

import (
	"context"
	"maps"
	"math"
	"slices"
	"sync"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Texts listed in vectors get that vector; every other text gets axis 0.
type mockEmbeddingService struct {
	mu       sync.Mutex
	vectors  map[string]domain.Vector
	embedErr error
	batchErr error
	calls    int
	model    string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) (domain.Vector, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return axisVector(0), nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([]domain.Vector, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([]domain.Vector, len(texts))
	for i, text := range texts {
		v, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int { return domain.EmbeddingDimensions }

func (m *mockEmbeddingService) ModelName() string {
	if m.model == "" {
		return "mock-model"
	}
	return m.model
}

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	mu     sync.Mutex
	docs   map[string]domain.Document
	addErr error
	allErr error
	adds   int
}

var _ driven.VectorStore = (*mockVectorStore)(nil)

func newMockVectorStore(docs ...domain.Document) *mockVectorStore {
	m := &mockVectorStore{docs: make(map[string]domain.Document)}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

func (m *mockVectorStore) Add(_ context.Context, doc domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adds++
	if m.addErr != nil {
		return m.addErr
	}
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockVectorStore) Get(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *mockVectorStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

func (m *mockVectorStore) All(_ context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.allErr != nil {
		return nil, m.allErr
	}
	docs := make([]domain.Document, 0, len(m.docs))
	for _, id := range slices.Sorted(maps.Keys(m.docs)) {
		docs = append(docs, m.docs[id])
	}
	return docs, nil
}

func (m *mockVectorStore) Stats(_ context.Context) (domain.StoreStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := domain.StoreStats{Documents: len(m.docs)}
	for _, d := range m.docs {
		stats.TotalChunks += len(d.Chunks)
	}
	return stats, nil
}

func (m *mockVectorStore) Close() error { return nil }

// --- Helpers ---

// axisVector is the unit vector along dimension i.
func axisVector(i int) domain.Vector {
	v := make(domain.Vector, domain.EmbeddingDimensions)
	v[i] = 1
	return v
}

// blendVector is a unit vector with cosine similarity sim to axisVector(0).
func blendVector(sim float64) domain.Vector {
	v := make(domain.Vector, domain.EmbeddingDimensions)
	v[0] = float32(sim)
	v[1] = float32(math.Sqrt(1 - sim*sim))
	return v
}

// storedDocument builds an aligned document whose chunk i has vectors[i].
func storedDocument(id, filename string, texts []string, vectors []domain.Vector) domain.Document {
	doc := domain.Document{
		ID:       id,
		Metadata: domain.DocumentMetadata{Filename: filename, MIMEType: "text/plain"},
	}
	for i, text := range texts {
		doc.Chunks = append(doc.Chunks, domain.Chunk{DocumentID: id, Position: i, Content: text})
	}
	doc.Embeddings = vectors
	return doc
}
