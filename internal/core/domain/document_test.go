package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChunk_Len(t *testing.T) {
	assert.Equal(t, 5, Chunk{Content: "hello"}.Len())
	// Multi-byte characters count once.
	assert.Equal(t, 4, Chunk{Content: "ação"}.Len())
}

func TestDocument_IsAligned(t *testing.T) {
	doc := Document{
		Chunks:     []Chunk{{Content: "a"}, {Content: "b"}},
		Embeddings: []Vector{{1}, {1}},
	}
	assert.True(t, doc.IsAligned())

	doc.Embeddings = doc.Embeddings[:1]
	assert.False(t, doc.IsAligned())

	empty := Document{}
	assert.True(t, empty.IsAligned())
}

func TestDocument_ChunkTexts(t *testing.T) {
	doc := Document{
		Chunks: []Chunk{
			{Position: 0, Content: "first"},
			{Position: 1, Content: "second"},
		},
	}
	assert.Equal(t, []string{"first", "second"}, doc.ChunkTexts())
}

func TestDocument_Summary(t *testing.T) {
	now := time.Now()
	doc := Document{
		ID:     "doc-1",
		Chunks: []Chunk{{}, {}, {}},
		Metadata: DocumentMetadata{
			Filename: "guide.txt",
			MIMEType: "text/plain",
		},
		AddedAt: now,
	}

	s := doc.Summary()

	assert.Equal(t, "doc-1", s.ID)
	assert.Equal(t, "guide.txt", s.Filename)
	assert.Equal(t, "text/plain", s.MIMEType)
	assert.Equal(t, 3, s.Chunks)
	assert.Equal(t, now, s.AddedAt)
}
