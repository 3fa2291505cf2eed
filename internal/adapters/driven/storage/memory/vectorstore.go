package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// Option configures a VectorStore.
type Option func(*VectorStore)

// WithStrictDurability makes mutations fail when the snapshot cannot be
// written. The previous committed state is kept in that case.
func WithStrictDurability(strict bool) Option {
	return func(s *VectorStore) {
		s.strict = strict
	}
}

// WithClock overrides the time source used for AddedAt.
func WithClock(now func() time.Time) Option {
	return func(s *VectorStore) {
		s.now = now
	}
}

// VectorStore is an in-memory document map persisted through full snapshots.
//
// Readers take a read lock on the committed map. Writers hold writeMu across
// copying the map, writing the snapshot, and swapping the copy in, so readers
// never observe a half-applied mutation and never wait for snapshot I/O.
type VectorStore struct {
	mu   sync.RWMutex
	docs map[string]domain.Document

	writeMu   sync.Mutex
	snapshots driven.SnapshotStore
	strict    bool
	now       func() time.Time
}

// New creates an empty store with no persistence.
func New(opts ...Option) *VectorStore {
	s := &VectorStore{
		docs: make(map[string]domain.Document),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store backed by snapshots and loads the latest snapshot.
// A missing snapshot yields an empty store. An unreadable snapshot is
// logged and the store starts empty.
func Open(ctx context.Context, snapshots driven.SnapshotStore, opts ...Option) (*VectorStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := New(opts...)
	s.snapshots = snapshots
	if snapshots == nil {
		return s, nil
	}

	docs, err := snapshots.Load(ctx)
	if err != nil {
		logger.Warn("vector store: cannot load %s, starting empty: %v", snapshots.Location(), err)
		return s, nil
	}

	for id, doc := range docs {
		if !doc.IsAligned() {
			logger.Warn("vector store: skipping misaligned document %s", id)
			continue
		}
		doc.ID = id
		s.docs[id] = doc
	}
	logger.Debug("vector store: loaded %d documents from %s", len(s.docs), snapshots.Location())

	return s, nil
}

// Add stores doc, replacing any document with the same ID.
func (s *VectorStore) Add(ctx context.Context, doc domain.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("%w: document ID is required", domain.ErrInvalidInput)
	}
	if !doc.IsAligned() {
		return fmt.Errorf("%w: %d chunks, %d embeddings", domain.ErrMisaligned, len(doc.Chunks), len(doc.Embeddings))
	}
	for i, v := range doc.Embeddings {
		if len(v) != domain.EmbeddingDimensions {
			return fmt.Errorf("%w: embedding %d has %d dimensions", domain.ErrDimensionMismatch, i, len(v))
		}
	}

	doc.Content = ""
	if doc.AddedAt.IsZero() {
		doc.AddedAt = s.now().UTC()
	}

	return s.mutate(ctx, func(next map[string]domain.Document) error {
		next[doc.ID] = doc
		return nil
	})
}

// Get retrieves a document by ID.
func (s *VectorStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// Delete removes a document by ID.
func (s *VectorStore) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, func(next map[string]domain.Document) error {
		if _, ok := next[id]; !ok {
			return domain.ErrNotFound
		}
		delete(next, id)
		return nil
	})
}

// All returns every stored document ordered by ID.
func (s *VectorStore) All(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(s.docs))
	docs := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, s.docs[id])
	}
	return docs, nil
}

// Stats returns the document and chunk counts.
func (s *VectorStore) Stats(_ context.Context) (domain.StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.StoreStats{Documents: len(s.docs)}
	for _, doc := range s.docs {
		stats.TotalChunks += len(doc.Chunks)
	}
	return stats, nil
}

// Close releases the snapshot backend.
func (s *VectorStore) Close() error {
	if s.snapshots != nil {
		return s.snapshots.Close()
	}
	return nil
}

// mutate applies change to a copy of the committed map, persists the copy,
// and swaps it in. Documents are immutable values so a shallow copy suffices.
func (s *VectorStore) mutate(ctx context.Context, change func(map[string]domain.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	next := maps.Clone(s.docs)
	s.mu.RUnlock()

	if err := change(next); err != nil {
		return err
	}

	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, next); err != nil {
			if s.strict {
				return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
			}
			logger.Warn("vector store: snapshot to %s failed, keeping change in memory: %v", s.snapshots.Location(), err)
		}
	}

	s.mu.Lock()
	s.docs = next
	s.mu.Unlock()

	return nil
}
