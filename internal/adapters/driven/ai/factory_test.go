package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

func unreachableURL(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	return url
}

func fakeOllama(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[]}`))
		case "/api/embeddings":
			// Wrong size on purpose: the resilient wrapper must fall back.
			_, _ = w.Write([]byte(`{"embedding":[1,2,3]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestInitResult_Close(t *testing.T) {
	t.Run("close with nil services", func(t *testing.T) {
		result := &InitResult{}
		// Should not panic
		result.Close()
	})
}

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.EmbeddingSettings
		wantNil     bool
		wantErr     bool
		errContains string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "hash provider has no model service",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderHash},
			wantNil:  true,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "all-minilm",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "text-embedding-3-small",
			},
		},
		{
			name: "openai without key returns error",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
			},
			wantNil:     true,
			wantErr:     true,
			errContains: "API key is required",
		},
		{
			name: "unknown provider returns error",
			settings: &domain.EmbeddingSettings{
				Provider: "unknown",
			},
			wantNil:     true,
			wantErr:     true,
			errContains: "unsupported embedding provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.wantNil && svc != nil {
				t.Error("expected nil service, got non-nil")
			}
			if !tt.wantNil && svc == nil {
				t.Error("expected non-nil service, got nil")
			}
			if svc != nil {
				svc.Close()
			}
		})
	}
}

func TestCreateAndValidateEmbeddingService_Unreachable(t *testing.T) {
	settings := &domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  unreachableURL(t),
	}

	svc, err := CreateAndValidateEmbeddingService(settings)
	if svc != nil {
		t.Error("expected nil service")
	}
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestCreateAndValidateEmbeddingService_MissingKey(t *testing.T) {
	settings := &domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI}

	_, err := CreateAndValidateEmbeddingService(settings)
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestInitialise_FallsBackWhenUnreachable(t *testing.T) {
	result, err := Initialise(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  unreachableURL(t),
		Workers:  2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer result.Close()

	if !result.FellBack() {
		t.Error("expected fallback mode")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", result.Warnings)
	}
	if got := result.EmbeddingService.ModelName(); got != "hash-fallback" {
		t.Errorf("ModelName() = %q, want hash-fallback", got)
	}

	vec, err := result.EmbeddingService.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vec) != domain.EmbeddingDimensions {
		t.Errorf("len = %d, want %d", len(vec), domain.EmbeddingDimensions)
	}
}

func TestInitialise_HashProvider(t *testing.T) {
	result, err := Initialise(&domain.EmbeddingSettings{Provider: domain.AIProviderHash})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer result.Close()

	if result.Mode != domain.EmbeddingModeFallback {
		t.Errorf("Mode = %q, want fallback", result.Mode)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("hash provider should not warn, got %v", result.Warnings)
	}
}

func TestInitialise_ModelMode(t *testing.T) {
	result, err := Initialise(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  fakeOllama(t),
		Model:    "all-minilm",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer result.Close()

	if result.Mode != domain.EmbeddingModeModel {
		t.Errorf("Mode = %q, want model", result.Mode)
	}
	if got := result.EmbeddingService.ModelName(); got != "all-minilm" {
		t.Errorf("ModelName() = %q, want all-minilm", got)
	}

	// The fake model returns 3 dimensions, so every text is served by hash.
	vecs, err := result.EmbeddingService.EmbedBatch(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("embed batch: %v", err)
	}
	for i, v := range vecs {
		if len(v) != domain.EmbeddingDimensions {
			t.Errorf("vector %d has %d dimensions", i, len(v))
		}
	}
}

func TestValidateEmbeddingConfig(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.EmbeddingSettings
		wantErr  bool
	}{
		{name: "nil settings", settings: nil},
		{name: "hash provider", settings: &domain.EmbeddingSettings{Provider: domain.AIProviderHash}},
		{
			name: "unreachable ollama",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  unreachableURL(t),
			},
			wantErr: true,
		},
		{
			name:     "openai without key",
			settings: &domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmbeddingConfig(tt.settings)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmbeddingConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
