// Package ai provides factory functions for creating embedding service adapters
// and selecting the embedding mode at startup.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/embedding/hash"
	ollamaembed "github.com/custodia-labs/sercha-rag/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/sercha-rag/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/embedding/resilient"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of embedding service initialisation.
type InitResult struct {
	// EmbeddingService always produces vectors; it falls back to hash per text.
	EmbeddingService driven.EmbeddingService

	// Mode is fixed for the lifetime of the process.
	Mode domain.EmbeddingMode

	// Warnings are non-fatal issues that caused fallback.
	Warnings []string
}

// FellBack reports whether startup selected the hash generator.
func (r *InitResult) FellBack() bool {
	return r.Mode == domain.EmbeddingModeFallback
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
}

// Initialise selects the embedding mode once. A model-backed provider is
// created and pinged; if either step fails the hash generator is used and
// a warning is recorded.
func Initialise(settings *domain.EmbeddingSettings) (*InitResult, error) {
	result := &InitResult{Mode: domain.EmbeddingModeFallback}

	primary, err := CreateAndValidateEmbeddingService(settings)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
		logger.Warn("%v; using %s embeddings", err, hash.ModelName)
		primary = nil
	}
	if primary != nil {
		result.Mode = domain.EmbeddingModeModel
	}

	var opts []resilient.Option
	if settings != nil {
		opts = append(opts, resilient.WithWorkers(settings.Workers))
		if settings.Provider == domain.AIProviderOpenAI {
			opts = append(opts, resilient.WithBatching())
		}
	}

	svc, err := resilient.New(primary, opts...)
	if err != nil {
		if primary != nil {
			primary.Close()
		}
		return nil, err
	}
	result.EmbeddingService = svc
	logger.Debug("embedding mode %s using %s", result.Mode, svc.ModelName())

	return result, nil
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns nil without error when the settings select no model.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.Provider.IsModelBacked() {
		return nil, nil
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: %s is not configured. Run 'sercha-rag settings set embedding.api_key <key>' to fix",
			domain.ErrEmbeddingUnavailable, settings.Provider)
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
// This backs 'sercha-rag settings check'.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.Provider.IsModelBacked() {
		return nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateEmbeddingService creates the model-backed service named by settings.
// The hash provider has no model and returns nil.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		svc, err := ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			RateLimit: settings.RateLimit,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderOpenAI:
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:    settings.APIKey,
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			RateLimit: settings.RateLimit,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.AIProviderHash:
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}
