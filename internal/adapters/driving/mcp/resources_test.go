package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "sercha-rag://documents/doc-456",
			expected: "doc-456",
		},
		{
			name:     "document list URI",
			uri:      "sercha-rag://documents",
			expected: "",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/doc-456",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractDocumentID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns not found", func(t *testing.T) {
		server := newTestServer(nil)

		_, err := server.handleStatsResource(ctx, makeReadResourceRequest("sercha-rag://stats"))
		require.Error(t, err)
	})

	t.Run("returns stats", func(t *testing.T) {
		server := newTestServer(&mockDocumentService{
			stats: &domain.Stats{
				StoreStats:    domain.StoreStats{Documents: 3, TotalChunks: 12},
				ModelName:     "hash-fallback",
				EmbeddingMode: domain.EmbeddingModeFallback,
			},
		})

		result, err := server.handleStatsResource(ctx, makeReadResourceRequest("sercha-rag://stats"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"documents": 3`)
		assert.Contains(t, result.Contents[0].Text, `"totalChunks": 12`)
		assert.Contains(t, result.Contents[0].Text, `"embeddingMode": "fallback"`)
	})

	t.Run("returns error on stats failure", func(t *testing.T) {
		server := newTestServer(&mockDocumentService{err: errors.New("storage error")})

		_, err := server.handleStatsResource(ctx, makeReadResourceRequest("sercha-rag://stats"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting stats")
	})
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns not found", func(t *testing.T) {
		server := newTestServer(nil)

		_, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("sercha-rag://documents"))
		require.Error(t, err)
	})

	t.Run("returns documents successfully", func(t *testing.T) {
		server := newTestServer(&mockDocumentService{
			summaries: []domain.DocumentSummary{
				{ID: "doc-1", Filename: "README.md", Chunks: 2},
				{ID: "doc-2", Filename: "guide.md", Chunks: 5},
			},
		})

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("sercha-rag://documents"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "doc-1")
		assert.Contains(t, result.Contents[0].Text, "README.md")
		assert.Contains(t, result.Contents[0].Text, "doc-2")
	})

	t.Run("handles empty document list", func(t *testing.T) {
		server := newTestServer(&mockDocumentService{summaries: []domain.DocumentSummary{}})

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("sercha-rag://documents"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server := newTestServer(&mockDocumentService{err: errors.New("storage error")})

		_, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("sercha-rag://documents"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns not found", func(t *testing.T) {
		server := newTestServer(nil)

		_, err := server.handleDocumentResource(ctx, makeReadResourceRequest("sercha-rag://documents/doc-123"))
		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(&mockDocumentService{})

		_, err := server.handleDocumentResource(ctx, makeReadResourceRequest("sercha-rag://invalid/uri"))
		require.Error(t, err)
	})

	t.Run("returns document with chunks", func(t *testing.T) {
		server := newTestServer(&mockDocumentService{
			document: &domain.Document{
				ID: "doc-123",
				Chunks: []domain.Chunk{
					{DocumentID: "doc-123", Position: 0, Content: "First passage of the document."},
					{DocumentID: "doc-123", Position: 1, Content: "Second passage of the document."},
				},
				Metadata: domain.DocumentMetadata{Filename: "notes.txt", MIMEType: "text/plain", Size: 61},
			},
		})

		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("sercha-rag://documents/doc-123"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"filename": "notes.txt"`)
		assert.Contains(t, text, "First passage of the document.")
		assert.Contains(t, text, `"index": 1`)
	})

	t.Run("returns error on get failure", func(t *testing.T) {
		server := newTestServer(&mockDocumentService{err: domain.ErrNotFound})

		_, err := server.handleDocumentResource(ctx, makeReadResourceRequest("sercha-rag://documents/doc-123"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "getting document")
	})
}
