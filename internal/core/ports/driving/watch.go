package driving

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// WatchHandler receives the outcome of every applied file change.
type WatchHandler func(domain.WatchEvent)

// WatchService keeps a directory ingested.
type WatchService interface {
	// Sync ingests every file under root once. Per-file failures are
	// reported to handle and counted, and do not stop the sync.
	Sync(ctx context.Context, root string, handle WatchHandler) (*domain.SyncReport, error)

	// Watch syncs root and then applies file changes until ctx is cancelled.
	Watch(ctx context.Context, root string, handle WatchHandler) error
}
