// Package jsonfile persists vector store snapshots as a single JSON file.
//
// The file is a JSON object keyed by document ID. Each save writes the whole
// object to a temporary file in the same directory, syncs it, and renames it
// over the previous snapshot, so a crash mid-write leaves the last complete
// snapshot in place.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-rag/internal/fileutil"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// DefaultFileName is the snapshot file name inside the data directory.
const DefaultFileName = "vectors.json"

// record is the on-disk form of one document.
type record struct {
	Chunks     []string                `json:"chunks"`
	Embeddings [][]float32             `json:"embeddings"`
	Metadata   domain.DocumentMetadata `json:"metadata"`
	AddedAt    time.Time               `json:"addedAt"`
}

// SnapshotStore reads and writes snapshots at a fixed path.
type SnapshotStore struct {
	path string
}

// New creates a snapshot store writing to path.
// The parent directory is created on first save.
func New(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Load reads the snapshot. A missing file yields an empty map.
func (s *SnapshotStore) Load(ctx context.Context) (map[string]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]domain.Document{}, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var records map[string]record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", filepath.Base(s.path), err)
	}

	docs := make(map[string]domain.Document, len(records))
	for id, rec := range records {
		docs[id] = rec.toDocument(id)
	}
	return docs, nil
}

// Save replaces the snapshot with docs.
func (s *SnapshotStore) Save(ctx context.Context, docs map[string]domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records := make(map[string]record, len(docs))
	for id, doc := range docs {
		records[id] = fromDocument(doc)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	return fileutil.WriteAtomic(s.path, data, 0600)
}

// Location returns the snapshot file path.
func (s *SnapshotStore) Location() string {
	return s.path
}

// Close releases resources.
func (s *SnapshotStore) Close() error {
	return nil
}

func fromDocument(doc domain.Document) record {
	rec := record{
		Chunks:     doc.ChunkTexts(),
		Embeddings: make([][]float32, len(doc.Embeddings)),
		Metadata:   doc.Metadata,
		AddedAt:    doc.AddedAt,
	}
	for i, v := range doc.Embeddings {
		rec.Embeddings[i] = []float32(v)
	}
	return rec
}

func (r record) toDocument(id string) domain.Document {
	doc := domain.Document{
		ID:         id,
		Chunks:     make([]domain.Chunk, len(r.Chunks)),
		Embeddings: make([]domain.Vector, len(r.Embeddings)),
		Metadata:   r.Metadata,
		AddedAt:    r.AddedAt,
	}
	for i, text := range r.Chunks {
		doc.Chunks[i] = domain.Chunk{DocumentID: id, Position: i, Content: text}
	}
	for i, v := range r.Embeddings {
		doc.Embeddings[i] = domain.Vector(v)
	}
	return doc
}
