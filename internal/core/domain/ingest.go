package domain

// MaxFileSize is the largest file, in bytes, accepted for ingestion.
const MaxFileSize int64 = 50 << 20

// IngestRequest is the plain-text hand-off from a format extractor.
type IngestRequest struct {
	// ID is optional. An empty ID is replaced with a generated one; an
	// existing ID replaces the stored document.
	ID string `json:"id,omitempty"`

	// Text is the extracted plain text.
	Text string `json:"text" validate:"required"`

	// Filename is the original file name.
	Filename string `json:"filename" validate:"required"`

	// MIMEType is the content type of the original file.
	MIMEType string `json:"mimetype"`

	// Size is the original file size in bytes.
	Size int64 `json:"size" validate:"gte=0"`
}

// IngestResult summarises a completed ingestion.
type IngestResult struct {
	DocumentID string `json:"documentId" yaml:"documentId"`
	Filename   string `json:"filename" yaml:"filename"`
	Chunks     int    `json:"chunks" yaml:"chunks"`
}

// StoreStats are the raw counts held by a vector store.
type StoreStats struct {
	Documents   int `json:"documents" yaml:"documents"`
	TotalChunks int `json:"totalChunks" yaml:"totalChunks"`
}

// Stats extends StoreStats with the embedding configuration in use.
type Stats struct {
	StoreStats    `yaml:",inline"`
	ModelName     string        `json:"modelName" yaml:"modelName"`
	EmbeddingMode EmbeddingMode `json:"embeddingMode" yaml:"embeddingMode"`
}

// EmbeddingMode records whether embeddings come from a model or the hash fallback.
// It is selected once at startup.
type EmbeddingMode string

// Embedding modes.
const (
	EmbeddingModeModel    EmbeddingMode = "model"
	EmbeddingModeFallback EmbeddingMode = "fallback"
)

// WatchEvent reports how one watched file change was applied.
type WatchEvent struct {
	Change     FileChange
	DocumentID string
	Chunks     int
	Err        error
}

// SyncReport summarises a directory sync.
type SyncReport struct {
	Files    int `json:"files" yaml:"files"`
	Ingested int `json:"ingested" yaml:"ingested"`
	Failed   int `json:"failed" yaml:"failed"`
}
