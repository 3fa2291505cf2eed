package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Store, settings.Store)
	assert.Equal(t, defaults.Chunker, settings.Chunker)
	assert.Equal(t, defaults.Query, settings.Query)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "all-minilm", settings.Embedding.Model)
	assert.Equal(t, DefaultOllamaURL, settings.Embedding.BaseURL)
	assert.Equal(t, 4, settings.Embedding.Workers)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.backend", "sqlite")
	_ = store.Set("store.strict_durability", true)
	_ = store.Set("chunker.overlap", 0)
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.api_key", "sk-test")
	_ = store.Set("embedding.rate_limit", 2.5)
	_ = store.Set("query.threshold", 0.5)
	_ = store.Set("query.include_context", false)

	settings, err := NewSettingsService(store, nil).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.StoreBackendSQLite, settings.Store.Backend)
	assert.True(t, settings.Store.StrictDurability)
	assert.Equal(t, 0, settings.Chunker.Overlap, "zero overlap is a stored value, not a missing one")
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Empty(t, settings.Embedding.BaseURL)
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
	assert.InDelta(t, 2.5, settings.Embedding.RateLimit, 1e-9)
	assert.InDelta(t, 0.5, settings.Query.Threshold, 1e-9)
	assert.False(t, settings.Query.IncludeContext)
}

func TestSettingsService_Get_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "openai")

	settings, err := NewSettingsService(store, nil).Get()
	require.NoError(t, err)
	assert.Equal(t, "sk-env", settings.Embedding.APIKey)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("store.backend", "postgres")
	_ = store.Set("embedding.provider", "invalid_provider")

	settings, err := NewSettingsService(store, nil).Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Store.Backend, settings.Store.Backend)
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
}

func TestSettingsService_Get_InvalidQueryOptions(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("query.max_results", 500)

	_, err := NewSettingsService(store, nil).Get()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	settings := domain.DefaultAppSettings()
	settings.Store.Backend = domain.StoreBackendSQLite
	settings.Store.Path = "/tmp/vectors.db"
	settings.Chunker.ChunkSize = 500
	settings.Embedding.Provider = domain.AIProviderHash
	settings.Embedding.Model = "hash-fallback"
	settings.Query.MaxResults = 10

	require.NoError(t, service.Save(&settings))

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.Store, retrieved.Store)
	assert.Equal(t, 500, retrieved.Chunker.ChunkSize)
	assert.Equal(t, domain.AIProviderHash, retrieved.Embedding.Provider)
	assert.Equal(t, 10, retrieved.Query.MaxResults)

	_, exists := store.Get("embedding.api_key")
	assert.False(t, exists, "empty API key is not written")
}

func TestSettingsService_Save_RejectsInvalidQuery(t *testing.T) {
	store := memory.NewConfigStore()
	settings := domain.DefaultAppSettings()
	settings.Query.Threshold = 2

	err := NewSettingsService(store, nil).Save(&settings)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, exists := store.Get("store.backend")
	assert.False(t, exists)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  any
	}{
		{"store.backend", "sqlite", "sqlite"},
		{"store.path", " /data/v.json ", "/data/v.json"},
		{"store.strict_durability", "true", true},
		{"chunker.chunk_size", "800", 800},
		{"chunker.overlap", "0", 0},
		{"embedding.rate_limit", "1.5", 1.5},
		{"embedding.workers", "8", 8},
		{"query.max_results", "100", 100},
		{"query.threshold", "0", 0.0},
		{"query.include_context", "false", false},
		{"Query.Threshold", "0.25", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store, nil)

			require.NoError(t, service.Set(tt.key, tt.value))

			got, ok := store.Get(strings.ToLower(tt.key))
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"store.backend", "postgres"},
		{"store.strict_durability", "maybe"},
		{"chunker.chunk_size", "0"},
		{"chunker.overlap", "-1"},
		{"chunker.min_length", "ten"},
		{"embedding.provider", "anthropic"},
		{"embedding.rate_limit", "-2"},
		{"embedding.workers", "0"},
		{"query.max_results", "101"},
		{"query.threshold", "1.5"},
		{"query.threshold", "abc"},
		{"search.mode", "hybrid"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()

			err := NewSettingsService(store, nil).Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, exists := store.Get(tt.key)
			assert.False(t, exists)
		})
	}
}

func TestSettingsService_Set_ProviderResetsModel(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)
	require.NoError(t, service.Set("embedding.model", "nomic-embed-text"))

	require.NoError(t, service.Set("embedding.provider", "openai"))

	assert.Equal(t, "text-embedding-3-small", store.GetString("embedding.model"))
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore(), nil).Keys()

	assert.Len(t, keys, 15)
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "embedding.api_key")
	assert.Contains(t, keys, "query.include_context")
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

type failingConfigStore struct {
	*memory.ConfigStore
	failOn string
}

func (f *failingConfigStore) Set(key string, value interface{}) error {
	if f.failOn == "" || key == f.failOn {
		return assert.AnError
	}
	return f.ConfigStore.Set(key, value)
}

func TestSettingsService_Save_StoreError(t *testing.T) {
	store := &failingConfigStore{
		ConfigStore: memory.NewConfigStore(),
		failOn:      "chunker.overlap",
	}
	settings := domain.DefaultAppSettings()

	err := NewSettingsService(store, nil).Save(&settings)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "chunker.overlap")
}

func TestSettingsService_Set_StoreError(t *testing.T) {
	store := &failingConfigStore{ConfigStore: memory.NewConfigStore()}

	err := NewSettingsService(store, nil).Set("query.threshold", "0.4")

	assert.ErrorIs(t, err, assert.AnError)
}

// Mock AIConfigValidator for testing
type mockAIConfigValidator struct {
	embedErr error
	got      *domain.EmbeddingSettings
}

func (m *mockAIConfigValidator) ValidateEmbedding(cfg *domain.EmbeddingSettings) error {
	m.got = cfg
	return m.embedErr
}

func TestSettingsService_ValidateEmbeddingConfig_NilValidator(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	// With nil validator, should skip validation (no error)
	assert.NoError(t, service.ValidateEmbeddingConfig())
}

func TestSettingsService_ValidateEmbeddingConfig_Success(t *testing.T) {
	validator := &mockAIConfigValidator{}
	service := NewSettingsService(memory.NewConfigStore(), validator)

	assert.NoError(t, service.ValidateEmbeddingConfig())
	require.NotNil(t, validator.got)
	assert.Equal(t, domain.AIProviderOllama, validator.got.Provider)
}

func TestSettingsService_ValidateEmbeddingConfig_Error(t *testing.T) {
	validator := &mockAIConfigValidator{embedErr: assert.AnError}
	service := NewSettingsService(memory.NewConfigStore(), validator)

	assert.Error(t, service.ValidateEmbeddingConfig())
}
