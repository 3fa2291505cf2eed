package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

var (
	horizontalSpace = regexp.MustCompile(`[^\S\n]+`)
	repeatedNewline = regexp.MustCompile(`\n{2,}`)
)

// IngestService turns text and files into chunked, embedded documents.
type IngestService struct {
	store            driven.VectorStore
	embeddingService driven.EmbeddingService
	pipeline         driven.PostProcessorPipeline
	registry         driven.NormaliserRegistry
	detector         driven.MIMEDetector
	maxFileSize      int64
	now              func() time.Time
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithMaxFileSize sets the largest file accepted by IngestFile and IngestBytes.
func WithMaxFileSize(n int64) IngestOption {
	return func(s *IngestService) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

// NewIngestService creates a new ingest service.
// The registry and detector are only needed for IngestFile and IngestBytes.
func NewIngestService(
	store driven.VectorStore,
	embeddingService driven.EmbeddingService,
	pipeline driven.PostProcessorPipeline,
	registry driven.NormaliserRegistry,
	detector driven.MIMEDetector,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		store:            store,
		embeddingService: embeddingService,
		pipeline:         pipeline,
		registry:         registry,
		detector:         detector,
		maxFileSize:      domain.MaxFileSize,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest cleans, chunks and embeds the text, then stores it as one document.
// The store is untouched unless every step succeeds.
func (s *IngestService) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	size := req.Size
	if size == 0 {
		size = int64(len(req.Text))
	}

	doc := &domain.Document{
		ID:      id,
		Content: CleanText(req.Text),
		Metadata: domain.DocumentMetadata{
			Filename:   req.Filename,
			MIMEType:   req.MIMEType,
			Size:       size,
			UploadedAt: s.now().UTC(),
		},
	}

	// 1. CHUNK
	chunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, req.Filename)
	}
	doc.Chunks = chunks

	// 2. EMBED (outside any store lock)
	embeddings, err := s.embeddingService.EmbedBatch(ctx, doc.ChunkTexts())
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	doc.Embeddings = embeddings

	// 3. COMMIT
	doc.Content = ""
	if err := s.store.Add(ctx, *doc); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	logger.Info("Ingested %s as %s (%d chunks)", req.Filename, id, len(chunks))
	return &domain.IngestResult{
		DocumentID: id,
		Filename:   req.Filename,
		Chunks:     len(chunks),
	}, nil
}

// IngestFile reads the file at path and ingests its extracted text.
func (s *IngestService) IngestFile(ctx context.Context, id, path string) (*domain.IngestResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if info.Size() > s.maxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", domain.ErrTooLarge, path, info.Size(), s.maxFileSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.IngestBytes(ctx, id, filepath.Base(path), "", content)
}

// IngestBytes selects a normaliser for the content, extracts its text and
// ingests it. An empty mimeType is detected from name and content.
func (s *IngestService) IngestBytes(
	ctx context.Context, id, name, mimeType string, content []byte,
) (*domain.IngestResult, error) {
	if s.registry == nil || s.detector == nil {
		return nil, fmt.Errorf("%w: no normalisers configured", domain.ErrUnsupportedType)
	}
	if int64(len(content)) > s.maxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", domain.ErrTooLarge, name, len(content), s.maxFileSize)
	}

	if mimeType == "" {
		mimeType = s.detector.Detect(name, content)
	}

	normaliser, err := s.registry.Select(mimeType)
	if err != nil {
		return nil, err
	}
	logger.Debug("Normalising %s (%s) with %s", name, mimeType, normaliser.Name())

	extracted, err := normaliser.Normalise(ctx, &domain.RawDocument{
		URI:      name,
		MIMEType: mimeType,
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}
	if strings.TrimSpace(extracted.Text) == "" {
		return nil, fmt.Errorf("%w: %s has no text", domain.ErrEmptyDocument, name)
	}

	return s.Ingest(ctx, domain.IngestRequest{
		ID:       id,
		Text:     extracted.Text,
		Filename: name,
		MIMEType: mimeType,
		Size:     int64(len(content)),
	})
}

// CleanText collapses runs of horizontal whitespace to one space, trims every
// line and drops blank lines. Line breaks are kept so numbered steps survive.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = horizontalSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	text = strings.Join(lines, "\n")

	return strings.TrimSpace(repeatedNewline.ReplaceAllString(text, "\n"))
}
