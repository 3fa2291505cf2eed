// Package chunker provides a sentence-aware text chunking processor.
package chunker

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// DefaultChunkSize is the default maximum number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default overlap budget. The next chunk is seeded
// with the last DefaultChunkOverlap/10 words of the previous one.
const DefaultChunkOverlap = 200

// DefaultMinLength is the minimum chunk length; shorter chunks are dropped.
const DefaultMinLength = 50

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Processor splits document content into sentence-aligned chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
	minLength int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap budget. It is independent of the chunk size:
// the seed is always overlap/10 words.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithMinLength sets the minimum chunk length in characters.
func WithMinLength(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minLength = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
		minLength: DefaultMinLength,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Content == "" {
		// Empty content produces no chunks
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texts := p.Chunk(doc.Content)
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			DocumentID: doc.ID,
			Position:   i,
			Content:    text,
		}
	}

	return chunks, nil
}

// Chunk splits text into passages in order of appearance.
//
// Sentences (split on runs of '.', '!' and '?') are accumulated into a buffer
// joined by ". ". When the next sentence would push the buffer past the chunk
// size, the buffer is emitted and the next one is seeded with the last
// overlap/10 words of the emitted chunk. A sentence longer than the chunk size
// becomes a chunk on its own; sentences are never split. Chunks shorter than
// the minimum length are dropped.
func (p *Processor) Chunk(text string) []string {
	seedWords := p.overlap / 10

	var chunks []string
	current := ""

	for _, unit := range sentenceBoundary.Split(text, -1) {
		sentence := strings.TrimSpace(unit)
		if sentence == "" {
			continue
		}

		if runeLen(current)+runeLen(sentence) > p.chunkSize {
			if current != "" {
				chunks = append(chunks, strings.TrimSpace(current))
				current = seed(current, seedWords, sentence)
			} else {
				current = sentence
			}
			continue
		}

		if current != "" {
			current += ". "
		}
		current += sentence
	}

	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	kept := chunks[:0]
	for _, c := range chunks {
		if runeLen(c) >= p.minLength {
			kept = append(kept, c)
		}
	}
	return kept
}

// seed starts a new buffer from the trailing words of the previous one.
func seed(previous string, n int, sentence string) string {
	if n <= 0 {
		return sentence
	}
	words := strings.Split(previous, " ")
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ") + " " + sentence
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
