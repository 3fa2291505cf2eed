package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer  *domain.QueryAnswer
	err     error
	gotOpts domain.QueryOptions
}

func (m *mockQueryService) Answer(
	_ context.Context,
	_ []domain.Message,
	opts domain.QueryOptions,
) (*domain.QueryAnswer, error) {
	m.gotOpts = opts
	return m.answer, m.err
}

func (m *mockQueryService) Query(
	_ context.Context,
	_ string,
	opts domain.QueryOptions,
) (*domain.QueryAnswer, error) {
	m.gotOpts = opts
	return m.answer, m.err
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results      []domain.SearchResult
	err          error
	gotTopK      int
	gotThreshold float64
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	topK int,
	threshold float64,
) ([]domain.SearchResult, error) {
	m.gotTopK = topK
	m.gotThreshold = threshold
	return m.results, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result *domain.IngestResult
	err    error
	gotReq domain.IngestRequest
}

func (m *mockIngestService) Ingest(_ context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	m.gotReq = req
	return m.result, m.err
}

func (m *mockIngestService) IngestFile(_ context.Context, _, _ string) (*domain.IngestResult, error) {
	return m.result, m.err
}

func (m *mockIngestService) IngestBytes(
	_ context.Context, _, _, _ string, _ []byte,
) (*domain.IngestResult, error) {
	return m.result, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	summaries []domain.DocumentSummary
	document  *domain.Document
	stats     *domain.Stats
	err       error
	deleted   string
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.DocumentSummary, error) {
	return m.summaries, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	m.deleted = id
	return m.err
}

func (m *mockDocumentService) Stats(_ context.Context) (*domain.Stats, error) {
	return m.stats, m.err
}

// newTestServer builds a server around the given document mock.
func newTestServer(docs *mockDocumentService) *Server {
	ports := &Ports{Query: &mockQueryService{}, Search: &mockSearchService{}}
	if docs != nil {
		ports.Document = docs
	}
	server, err := NewServer(ports)
	if err != nil {
		panic(err)
	}
	return server
}
