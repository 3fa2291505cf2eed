// Package hash provides a deterministic, model-free embedding generator.
//
// The vector for a text is derived from a 32-bit rolling hash of the whole
// text spread over every dimension with a sine, plus one bump per word at a
// position chosen by the word's own hash. The result is unit-normalised.
// It is a pure function of the input and reproduces bit-identical vectors
// across runs and processes.
package hash

import (
	"context"
	"math"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// ModelName is reported for vectors produced by this generator.
const ModelName = "hash-fallback"

const (
	spread    = 0.01
	amplitude = 0.1
	wordBump  = 0.1
)

// EmbeddingService generates deterministic embeddings without a model.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a hash embedding service with the pipeline's
// fixed dimensionality.
func NewEmbeddingService() *EmbeddingService {
	return &EmbeddingService{dimensions: domain.EmbeddingDimensions}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(_ context.Context, text string) (domain.Vector, error) {
	return Vector(text, s.dimensions), nil
}

// EmbedBatch generates embeddings for multiple texts in order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([]domain.Vector, error) {
	vectors := make([]domain.Vector, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = Vector(text, s.dimensions)
	}
	return vectors, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the generator name.
func (s *EmbeddingService) ModelName() string {
	return ModelName
}

// Ping always succeeds; there is nothing to reach.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// Vector computes the deterministic embedding of text with the given size.
// Words are the pieces between whitespace runs, including the empty piece
// before leading or after trailing whitespace, so blank text still bumps
// index 0 and never yields the zero vector.
func Vector(text string, dimensions int) domain.Vector {
	h := float64(Hash(text))

	raw := make([]float64, dimensions)
	for i := range raw {
		raw[i] = math.Sin(h*float64(i+1)*spread) * amplitude
	}

	for _, word := range splitWords(strings.ToLower(text)) {
		wh := int64(Hash(word))
		if wh < 0 {
			wh = -wh
		}
		raw[wh%int64(dimensions)] += wordBump
	}

	var sum float64
	for _, x := range raw {
		sum += x * x
	}
	norm := math.Sqrt(sum)

	vec := make(domain.Vector, dimensions)
	for i, x := range raw {
		if norm > 0 {
			x /= norm
		}
		vec[i] = float32(x)
	}
	return vec
}

// splitWords splits s on runs of whitespace. Unlike strings.Fields it keeps
// the empty piece produced by leading or trailing whitespace, and returns a
// single empty piece for "".
func splitWords(s string) []string {
	var words []string
	start := 0
	inSpace := false
	for i, r := range s {
		if unicode.IsSpace(r) || r == '\uFEFF' {
			if !inSpace {
				words = append(words, s[start:i])
				inSpace = true
			}
			continue
		}
		if inSpace {
			start = i
			inSpace = false
		}
	}
	if inSpace {
		return append(words, "")
	}
	return append(words, s[start:])
}

// Hash is the 32-bit rolling hash h = (h<<5) - h + c over the UTF-16 code
// units of s, seeded at 0 and wrapping on overflow.
func Hash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}
