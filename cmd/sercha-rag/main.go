// Command sercha-rag ingests local documents and answers questions from them.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/ai"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-rag/internal/connectors/filesystem"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/services"
	"github.com/custodia-labs/sercha-rag/internal/logger"
	"github.com/custodia-labs/sercha-rag/internal/normalisers"
	"github.com/custodia-labs/sercha-rag/internal/postprocessors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; variables may come from the environment.
	_ = godotenv.Load()

	ctx := context.Background()

	configStore, dataDir := openConfig()

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	snapshots, err := openSnapshots(dataDir, settings.Store)
	if err != nil {
		return err
	}
	store, err := memory.Open(ctx, snapshots, memory.WithStrictDurability(settings.Store.StrictDurability))
	if err != nil {
		snapshots.Close()
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer store.Close()
	logger.Debug("vector store at %s", snapshots.Location())

	embeddings, err := ai.Initialise(&settings.Embedding)
	if err != nil {
		return fmt.Errorf("failed to initialise embeddings: %w", err)
	}
	defer embeddings.Close()

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := postprocessors.BuildPipeline(registry, domain.PipelineConfigFor(settings.Chunker))
	if err != nil {
		return err
	}

	searchService := services.NewSearchService(store, embeddings.EmbeddingService)
	ingestService := services.NewIngestService(
		store,
		embeddings.EmbeddingService,
		pipeline,
		normalisers.Default(),
		normalisers.Detector{},
	)
	documentService := services.NewDocumentService(store, embeddings.EmbeddingService, embeddings.Mode)
	watchService := services.NewWatchService(ingestService, documentService, func(root string) driven.FileSource {
		return filesystem.New(root)
	})

	cli.SetServices(cli.Services{
		Ingest:    ingestService,
		Query:     services.NewRAGService(searchService),
		Search:    searchService,
		Documents: documentService,
		Settings:  settingsService,
		Watch:     watchService,
	})
	cli.SetVersion(version)

	return cli.Execute()
}

// openConfig opens ~/.sercha-rag/config.toml. When the directory cannot be
// created, settings live in memory for this run and data goes to the temp dir.
func openConfig() (driven.ConfigStore, string) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("config unavailable, settings will not persist: %v", err)
		return memory.NewConfigStore(), filepath.Join(os.TempDir(), "sercha-rag")
	}
	return configStore, filepath.Dir(configStore.Path())
}

// openSnapshots selects the snapshot backend. An empty path uses the
// default file under the data directory.
func openSnapshots(dataDir string, cfg domain.StoreSettings) (driven.SnapshotStore, error) {
	switch cfg.Backend {
	case domain.StoreBackendSQLite:
		path := cfg.Path
		if path == "" {
			path = filepath.Join(dataDir, "vectors.db")
		}
		store, err := sqlite.NewStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil
	case domain.StoreBackendJSON:
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	path := cfg.Path
	if path == "" {
		path = filepath.Join(dataDir, "vectors.json")
	}
	return jsonfile.New(path), nil
}
