package domain

const unknownDescription = "Unknown"

// AIProvider identifies the embedding backend.
type AIProvider string

// Available embedding providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderHash is the deterministic hash generator with no model.
	AIProviderHash AIProvider = "hash"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderHash:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsModelBacked returns true if the provider calls out to a model.
func (p AIProvider) IsModelBacked() bool {
	return p == AIProviderOllama || p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderHash:
		return "Deterministic hash (no model)"
	default:
		return unknownDescription
	}
}

// StoreBackend selects where vector store snapshots are written.
type StoreBackend string

// Available store backends.
const (
	StoreBackendJSON   StoreBackend = "json"
	StoreBackendSQLite StoreBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	return b == StoreBackendJSON || b == StoreBackendSQLite
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// StoreSettings holds vector store configuration.
type StoreSettings struct {
	// Backend is the snapshot format.
	Backend StoreBackend

	// Path is the snapshot location. Empty means the default under the data directory.
	Path string

	// StrictDurability fails mutations whose snapshot write fails.
	// When false the in-memory store stays authoritative and a warning is logged.
	StrictDurability bool
}

// ChunkerSettings holds chunker configuration.
type ChunkerSettings struct {
	ChunkSize int
	Overlap   int
	MinLength int
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// RateLimit caps model requests per second. Zero disables throttling.
	RateLimit float64

	// Workers is the number of concurrent embedding requests in a batch.
	Workers int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// AppSettings holds all application settings.
type AppSettings struct {
	Store     StoreSettings
	Chunker   ChunkerSettings
	Embedding EmbeddingSettings
	Query     QueryOptions
}

// DefaultAppSettings returns settings with sensible defaults.
// The embedding provider defaults to a local Ollama; when it cannot be
// reached the pipeline runs on the hash generator.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Backend: StoreBackendJSON,
		},
		Chunker: ChunkerSettings{
			ChunkSize: 1000,
			Overlap:   200,
			MinLength: 50,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    DefaultEmbeddingModels()[AIProviderOllama],
			Workers:  4,
		},
		Query: DefaultQueryOptions(),
	}
}

// AllEmbeddingProviders returns every embedding provider.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderHash,
	}
}

// DefaultEmbeddingModels returns default 384-dimension models for each provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderHash:   "hash-fallback",
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFor builds the chunking pipeline configuration from chunker settings.
func PipelineConfigFor(c ChunkerSettings) PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": c.ChunkSize,
				"overlap":    c.Overlap,
				"min_length": c.MinLength,
			},
		},
	}
}

// DefaultPipelineConfig returns the default pipeline configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfigFor(DefaultAppSettings().Chunker)
}
