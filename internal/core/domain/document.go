package domain

import (
	"time"
	"unicode/utf8"
)

// Document is an ingested document as owned by the vector store.
// Once committed to a store a Document is treated as immutable; re-ingestion
// under the same ID replaces it wholesale.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the cleaned full text. It is only populated while the
	// document flows through ingestion and is never persisted.
	Content string

	// Chunks are the retrievable passages in order of appearance.
	Chunks []Chunk

	// Embeddings are index-aligned with Chunks.
	Embeddings []Vector

	// Metadata describes the file the document was ingested from.
	Metadata DocumentMetadata

	// AddedAt is when the document was committed to the store.
	AddedAt time.Time
}

// DocumentMetadata carries the upload metadata of a document.
type DocumentMetadata struct {
	// Filename is the original file name.
	Filename string `json:"filename" yaml:"filename"`

	// MIMEType is the content type reported or detected at ingestion.
	MIMEType string `json:"mimetype" yaml:"mimetype"`

	// Size is the original size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// UploadedAt is when the file was handed to the pipeline.
	UploadedAt time.Time `json:"uploadedAt" yaml:"uploadedAt"`
}

// Chunk represents a retrievable unit within a document.
type Chunk struct {
	// DocumentID links to the parent Document.
	DocumentID string

	// Position is the ordinal position within the document.
	Position int

	// Content is the text of this chunk.
	Content string
}

// Len returns the chunk length in characters.
func (c Chunk) Len() int {
	return utf8.RuneCountInString(c.Content)
}

// IsAligned reports whether every chunk has exactly one embedding.
func (d *Document) IsAligned() bool {
	return len(d.Chunks) == len(d.Embeddings)
}

// ChunkTexts returns the chunk contents in order.
func (d *Document) ChunkTexts() []string {
	texts := make([]string, len(d.Chunks))
	for i := range d.Chunks {
		texts[i] = d.Chunks[i].Content
	}
	return texts
}

// DocumentSummary is a lightweight view of a stored document.
type DocumentSummary struct {
	ID       string    `json:"id" yaml:"id"`
	Filename string    `json:"filename" yaml:"filename"`
	MIMEType string    `json:"mimetype" yaml:"mimetype"`
	Chunks   int       `json:"chunks" yaml:"chunks"`
	AddedAt  time.Time `json:"addedAt" yaml:"addedAt"`
}

// Summary returns the lightweight view of the document.
func (d *Document) Summary() DocumentSummary {
	return DocumentSummary{
		ID:       d.ID,
		Filename: d.Metadata.Filename,
		MIMEType: d.Metadata.MIMEType,
		Chunks:   len(d.Chunks),
		AddedAt:  d.AddedAt,
	}
}
