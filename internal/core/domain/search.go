package domain

// SearchResult is a single scored chunk produced by similarity search.
// Results are ephemeral and never persisted.
type SearchResult struct {
	// DocumentID identifies the document the chunk belongs to.
	DocumentID string `json:"documentId" yaml:"documentId"`

	// ChunkIndex is the chunk position within the document.
	ChunkIndex int `json:"chunkIndex" yaml:"chunkIndex"`

	// ChunkText is the matched passage.
	ChunkText string `json:"chunkText" yaml:"chunkText"`

	// Similarity is the cosine similarity to the query.
	Similarity float64 `json:"similarity" yaml:"similarity"`

	// Metadata is the owning document's metadata.
	Metadata DocumentMetadata `json:"metadata" yaml:"metadata"`
}

// Default query options.
const (
	DefaultMaxResults = 5
	DefaultThreshold  = 0.3
)

// QueryOptions configures retrieval for a query.
type QueryOptions struct {
	// MaxResults is the maximum number of chunks retrieved.
	MaxResults int `json:"maxResults" validate:"gte=1,lte=100"`

	// Threshold is the minimum similarity a chunk needs to be retrieved.
	Threshold float64 `json:"threshold" validate:"gte=0,lte=1"`

	// IncludeContext controls whether retrieved chunks are returned.
	IncludeContext bool `json:"includeContext"`
}

// DefaultQueryOptions returns maxResults=5, threshold=0.3, includeContext=true.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		MaxResults:     DefaultMaxResults,
		Threshold:      DefaultThreshold,
		IncludeContext: true,
	}
}
