// Package resilient wraps a model-backed embedding service so that every
// text always receives a usable vector.
//
// When the primary service fails for a text, returns a vector of the wrong
// size, or returns an all-zero vector, the deterministic hash generator is
// used for that text instead. Batches fan out over a bounded worker pool and
// results are written back by index so the output stays aligned with input.
package resilient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/embedding/hash"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultWorkers bounds concurrent primary calls within one batch.
const DefaultWorkers = 4

// Option configures an EmbeddingService.
type Option func(*EmbeddingService)

// WithWorkers sets the worker pool size.
func WithWorkers(n int) Option {
	return func(s *EmbeddingService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithBatching makes EmbedBatch try the primary's own batch call first.
// Per-text embedding is used only when that call fails.
func WithBatching() Option {
	return func(s *EmbeddingService) {
		s.batching = true
	}
}

// EmbeddingService embeds with a primary service and falls back to hash.
type EmbeddingService struct {
	primary  driven.EmbeddingService
	fallback *hash.EmbeddingService
	workers  int
	batching bool
	pool     *ants.Pool

	fallbacks atomic.Int64
}

// New wraps primary. A nil primary produces hash vectors only.
func New(primary driven.EmbeddingService, opts ...Option) (*EmbeddingService, error) {
	s := &EmbeddingService{
		primary:  primary,
		fallback: hash.NewEmbeddingService(),
		workers:  DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}

	pool, err := ants.NewPool(s.workers, ants.WithPanicHandler(func(p any) {
		logger.Warn("embedding worker panic: %v", p)
	}))
	if err != nil {
		return nil, fmt.Errorf("create embedding pool: %w", err)
	}
	s.pool = pool
	return s, nil
}

// Embed generates a unit-normalised vector for text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) (domain.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.primary == nil {
		return s.fallback.Embed(ctx, text)
	}

	vec, err := s.primary.Embed(ctx, text)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if accepted, ok := accept(vec, err); ok {
		return accepted, nil
	}

	s.fallbacks.Add(1)
	logger.Warn("embedding: %s unusable, using hash fallback: %v", s.primary.ModelName(), reason(vec, err))
	return s.fallback.Embed(ctx, text)
}

// EmbedBatch generates vectors for texts. The result is index-aligned with texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([]domain.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, nil
	}
	if s.primary == nil {
		return s.fallback.EmbedBatch(ctx, texts)
	}

	vectors := make([]domain.Vector, len(texts))

	if s.batching {
		batch, err := s.primary.EmbedBatch(ctx, texts)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err == nil && len(batch) == len(texts) {
			for i, vec := range batch {
				if accepted, ok := accept(vec, nil); ok {
					vectors[i] = accepted
				}
			}
		} else {
			logger.Debug("embedding: batch call failed, embedding per text: %v", err)
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range texts {
		if vectors[i] != nil {
			continue
		}
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			vec, err := s.Embed(ctx, texts[i])
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			vectors[i] = vec
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit embedding job: %w", submitErr)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return domain.EmbeddingDimensions
}

// ModelName returns the primary model name, or the hash generator's name.
func (s *EmbeddingService) ModelName() string {
	if s.primary == nil {
		return hash.ModelName
	}
	return s.primary.ModelName()
}

// Ping checks the primary service. Hash-only services are always reachable.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if s.primary == nil {
		return nil
	}
	return s.primary.Ping(ctx)
}

// Fallbacks returns how many texts were embedded by the hash fallback
// because the primary could not serve them.
func (s *EmbeddingService) Fallbacks() int64 {
	return s.fallbacks.Load()
}

// Close releases the worker pool and the primary service.
func (s *EmbeddingService) Close() error {
	s.pool.Release()
	if s.primary != nil {
		return s.primary.Close()
	}
	return nil
}

var (
	errWrongDimensions = errors.New("wrong dimensions")
	errZeroVector      = errors.New("zero vector")
)

func accept(vec domain.Vector, err error) (domain.Vector, bool) {
	if err != nil || len(vec) != domain.EmbeddingDimensions || vec.IsZero() {
		return nil, false
	}
	return vec.Normalise(), true
}

func reason(vec domain.Vector, err error) error {
	switch {
	case err != nil:
		return err
	case len(vec) != domain.EmbeddingDimensions:
		return fmt.Errorf("%w: got %d, want %d", errWrongDimensions, len(vec), domain.EmbeddingDimensions)
	default:
		return errZeroVector
	}
}
