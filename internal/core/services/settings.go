package services

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyStoreBackend     = "store.backend"
	keyStorePath        = "store.path"
	keyStoreStrict      = "store.strict_durability"
	keyChunkSize        = "chunker.chunk_size"
	keyChunkOverlap     = "chunker.overlap"
	keyChunkMinLength   = "chunker.min_length"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyEmbedRateLimit   = "embedding.rate_limit"
	keyEmbedWorkers     = "embedding.workers"
	keyQueryMaxResults  = "query.max_results"
	keyQueryThreshold   = "query.threshold"
	keyQueryIncludeCtxt = "query.include_context"
)

// DefaultOllamaURL is used when an ollama provider has no base URL.
const DefaultOllamaURL = "http://localhost:11434"

// envOpenAIKey supplies the OpenAI key when none is configured.
const envOpenAIKey = "OPENAI_API_KEY"

// SettingsService maps dotted config keys to application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(defaults.Embedding.Provider)
	model := s.configStore.GetString(keyEmbedModel)
	if model == "" {
		model = domain.DefaultEmbeddingModels()[provider]
	}
	baseURL := s.configStore.GetString(keyEmbedBaseURL)
	if baseURL == "" && provider == domain.AIProviderOllama {
		baseURL = DefaultOllamaURL
	}
	apiKey := s.configStore.GetString(keyEmbedAPIKey)
	if apiKey == "" && provider.RequiresAPIKey() {
		apiKey = os.Getenv(envOpenAIKey)
	}

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend:          s.getBackend(defaults.Store.Backend),
			Path:             s.configStore.GetString(keyStorePath),
			StrictDurability: s.getBool(keyStoreStrict, defaults.Store.StrictDurability),
		},
		Chunker: domain.ChunkerSettings{
			ChunkSize: s.getInt(keyChunkSize, defaults.Chunker.ChunkSize),
			Overlap:   s.getInt(keyChunkOverlap, defaults.Chunker.Overlap),
			MinLength: s.getInt(keyChunkMinLength, defaults.Chunker.MinLength),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:  provider,
			Model:     model,
			BaseURL:   baseURL,
			APIKey:    apiKey,
			RateLimit: s.getFloat(keyEmbedRateLimit, defaults.Embedding.RateLimit),
			Workers:   s.getInt(keyEmbedWorkers, defaults.Embedding.Workers),
		},
		Query: domain.QueryOptions{
			MaxResults:     s.getInt(keyQueryMaxResults, defaults.Query.MaxResults),
			Threshold:      s.getFloat(keyQueryThreshold, defaults.Query.Threshold),
			IncludeContext: s.getBool(keyQueryIncludeCtxt, defaults.Query.IncludeContext),
		},
	}

	if err := validateStruct(settings.Query); err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}

	return settings, nil
}

// Save persists every setting. An empty API key is not written.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := validateStruct(settings.Query); err != nil {
		return fmt.Errorf("query settings: %w", err)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyStoreBackend, settings.Store.Backend.String()},
		{keyStorePath, settings.Store.Path},
		{keyStoreStrict, settings.Store.StrictDurability},
		{keyChunkSize, settings.Chunker.ChunkSize},
		{keyChunkOverlap, settings.Chunker.Overlap},
		{keyChunkMinLength, settings.Chunker.MinLength},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedRateLimit, settings.Embedding.RateLimit},
		{keyEmbedWorkers, settings.Embedding.Workers},
		{keyQueryMaxResults, settings.Query.MaxResults},
		{keyQueryThreshold, settings.Query.Threshold},
		{keyQueryIncludeCtxt, settings.Query.IncludeContext},
	}
	if settings.Embedding.APIKey != "" {
		values = append(values, struct {
			key   string
			value any
		}{keyEmbedAPIKey, settings.Embedding.APIKey})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for the key's type, checks its range and persists it.
// Switching provider also resets the model to that provider's default.
func (s *SettingsService) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	if key == keyEmbedProvider {
		model := domain.DefaultEmbeddingModels()[domain.AIProvider(value)]
		if err := s.configStore.Set(keyEmbedModel, model); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedModel, err)
		}
	}
	return nil
}

// Keys lists the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyStoreBackend, keyStorePath, keyStoreStrict,
		keyChunkSize, keyChunkOverlap, keyChunkMinLength,
		keyEmbedProvider, keyEmbedModel, keyEmbedBaseURL, keyEmbedAPIKey,
		keyEmbedRateLimit, keyEmbedWorkers,
		keyQueryMaxResults, keyQueryThreshold, keyQueryIncludeCtxt,
	}
	slices.Sort(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// parseSetting converts a command-line value to the type stored for key.
//
//nolint:gocyclo // One case per key.
func parseSetting(key, value string) (any, error) {
	switch key {
	case keyStorePath, keyEmbedModel, keyEmbedBaseURL, keyEmbedAPIKey:
		return value, nil

	case keyStoreBackend:
		if !domain.StoreBackend(value).IsValid() {
			return nil, fmt.Errorf("%w: %s must be json or sqlite", domain.ErrInvalidInput, key)
		}
		return value, nil

	case keyEmbedProvider:
		if !domain.AIProvider(value).IsValid() {
			return nil, fmt.Errorf("%w: %s must be ollama, openai or hash", domain.ErrInvalidInput, key)
		}
		return value, nil

	case keyStoreStrict, keyQueryIncludeCtxt:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return b, nil

	case keyChunkSize, keyEmbedWorkers:
		return parseIntRange(key, value, 1, 0)
	case keyChunkOverlap, keyChunkMinLength:
		return parseIntRange(key, value, 0, 0)
	case keyQueryMaxResults:
		return parseIntRange(key, value, 1, 100)

	case keyEmbedRateLimit:
		return parseFloatRange(key, value, 0, 0)
	case keyQueryThreshold:
		return parseFloatRange(key, value, 0, 1)

	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// parseIntRange parses an integer >= lo, and <= hi when hi > 0.
func parseIntRange(key, value string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	if n < lo || (hi > 0 && n > hi) {
		return 0, fmt.Errorf("%w: %s out of range", domain.ErrInvalidInput, key)
	}
	return n, nil
}

// parseFloatRange parses a number >= lo, and <= hi when hi > 0.
func parseFloatRange(key, value string, lo, hi float64) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
	}
	if f < lo || (hi > 0 && f > hi) {
		return 0, fmt.Errorf("%w: %s out of range", domain.ErrInvalidInput, key)
	}
	return f, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(keyEmbedProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	backend := domain.StoreBackend(s.configStore.GetString(keyStoreBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
