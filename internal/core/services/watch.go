package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService ingests the files of a directory and keeps them current.
// Changes are applied one at a time.
type WatchService struct {
	ingest    driving.IngestService
	documents driving.DocumentService
	newSource func(root string) driven.FileSource
}

// NewWatchService creates a new watch service. newSource opens the file
// source for a directory.
func NewWatchService(
	ingest driving.IngestService,
	documents driving.DocumentService,
	newSource func(root string) driven.FileSource,
) *WatchService {
	return &WatchService{
		ingest:    ingest,
		documents: documents,
		newSource: newSource,
	}
}

// FileDocumentID returns the stable document ID used for a file path, so a
// modified file replaces its previous version.
func FileDocumentID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)).String()
}

// Sync ingests every file under root once.
func (s *WatchService) Sync(ctx context.Context, root string, handle driving.WatchHandler) (*domain.SyncReport, error) {
	source := s.newSource(root)
	defer source.Close()

	return s.sync(ctx, source, handle)
}

// Watch syncs root and then applies changes until ctx is cancelled.
// Cancellation is a normal stop and returns nil.
func (s *WatchService) Watch(ctx context.Context, root string, handle driving.WatchHandler) error {
	source := s.newSource(root)
	defer source.Close()

	changes, err := source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	report, err := s.sync(ctx, source, handle)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	logger.Info("Synced %s: %d of %d files ingested", source.RootPath(), report.Ingested, report.Files)

	for change := range changes {
		s.apply(ctx, change, handle)
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

func (s *WatchService) sync(ctx context.Context, source driven.FileSource, handle driving.WatchHandler) (*domain.SyncReport, error) {
	paths, err := source.Walk(ctx)
	if err != nil {
		return nil, fmt.Errorf("sync %s: %w", source.RootPath(), err)
	}

	report := &domain.SyncReport{Files: len(paths)}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		event := s.apply(ctx, domain.FileChange{Type: domain.ChangeCreated, Path: path}, handle)
		if event.Err != nil {
			report.Failed++
		} else {
			report.Ingested++
		}
	}
	return report, nil
}

// apply ingests created and updated files and deletes removed ones.
// An updated file that no longer yields text has its old document removed.
func (s *WatchService) apply(ctx context.Context, change domain.FileChange, handle driving.WatchHandler) domain.WatchEvent {
	event := domain.WatchEvent{Change: change, DocumentID: FileDocumentID(change.Path)}

	switch change.Type {
	case domain.ChangeCreated, domain.ChangeUpdated:
		result, err := s.ingest.IngestFile(ctx, event.DocumentID, change.Path)
		if err != nil {
			event.Err = err
			if change.Type == domain.ChangeUpdated && errors.Is(err, domain.ErrEmptyDocument) {
				s.removeStale(ctx, event.DocumentID)
			}
			break
		}
		event.Chunks = result.Chunks

	case domain.ChangeDeleted:
		err := s.documents.Delete(ctx, event.DocumentID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			event.Err = err
		}
	}

	if event.Err != nil {
		logger.Warn("%s %s: %v", change.Type, change.Path, event.Err)
	} else {
		logger.Debug("%s %s as %s", change.Type, change.Path, event.DocumentID)
	}
	if handle != nil {
		handle(event)
	}
	return event
}

func (s *WatchService) removeStale(ctx context.Context, id string) {
	if err := s.documents.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("remove stale document %s: %v", id, err)
	}
}
