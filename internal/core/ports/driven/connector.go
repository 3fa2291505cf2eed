package driven

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// FileSource lists and watches the files of a local directory.
type FileSource interface {
	// RootPath returns the directory being served.
	RootPath() string

	// Walk returns the absolute paths of every file to ingest, sorted.
	Walk(ctx context.Context) ([]string, error)

	// Watch reports file changes until ctx is cancelled or Close is called,
	// then closes the channel.
	Watch(ctx context.Context) (<-chan domain.FileChange, error)

	// Close releases resources.
	Close() error
}
