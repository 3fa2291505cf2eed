package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
)

// mockQueryService implements driving.QueryService.
type mockQueryService struct {
	answer     *domain.QueryAnswer
	err        error
	gotQuery   string
	gotHistory []domain.Message
	gotOpts    domain.QueryOptions
	calls      int
}

func (m *mockQueryService) Answer(
	_ context.Context, history []domain.Message, opts domain.QueryOptions,
) (*domain.QueryAnswer, error) {
	m.calls++
	m.gotHistory = append([]domain.Message(nil), history...)
	m.gotOpts = opts
	return m.answer, m.err
}

func (m *mockQueryService) Query(
	_ context.Context, query string, opts domain.QueryOptions,
) (*domain.QueryAnswer, error) {
	m.calls++
	m.gotQuery = query
	m.gotOpts = opts
	return m.answer, m.err
}

// mockSearchService implements driving.SearchService.
type mockSearchService struct {
	results      []domain.SearchResult
	err          error
	gotQuery     string
	gotTopK      int
	gotThreshold float64
}

func (m *mockSearchService) Search(
	_ context.Context, query string, topK int, threshold float64,
) ([]domain.SearchResult, error) {
	m.gotQuery = query
	m.gotTopK = topK
	m.gotThreshold = threshold
	return m.results, m.err
}

// mockIngestService implements driving.IngestService.
type mockIngestService struct {
	fail      map[string]error
	gotIDs    []string
	gotPaths  []string
	gotName   string
	gotMIME   string
	gotBytes  []byte
	bytesCall int
}

func (m *mockIngestService) Ingest(_ context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	return &domain.IngestResult{DocumentID: req.ID, Filename: req.Filename, Chunks: 1}, nil
}

func (m *mockIngestService) IngestFile(_ context.Context, id, path string) (*domain.IngestResult, error) {
	m.gotIDs = append(m.gotIDs, id)
	m.gotPaths = append(m.gotPaths, path)
	if err := m.fail[path]; err != nil {
		return nil, err
	}
	if id == "" {
		id = "generated-" + path
	}
	return &domain.IngestResult{DocumentID: id, Filename: path, Chunks: 3}, nil
}

func (m *mockIngestService) IngestBytes(
	_ context.Context, id, name, mimeType string, content []byte,
) (*domain.IngestResult, error) {
	m.bytesCall++
	m.gotIDs = append(m.gotIDs, id)
	m.gotName = name
	m.gotMIME = mimeType
	m.gotBytes = content
	if id == "" {
		id = "stdin-doc"
	}
	return &domain.IngestResult{DocumentID: id, Filename: name, Chunks: 2}, nil
}

// mockDocumentService implements driving.DocumentService.
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

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.document == nil || m.document.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.document, nil
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	m.deleted = id
	return m.err
}

func (m *mockDocumentService) Stats(_ context.Context) (*domain.Stats, error) {
	return m.stats, m.err
}

// mockSettingsService implements driving.SettingsService.
type mockSettingsService struct {
	settings    domain.AppSettings
	getErr      error
	setErr      error
	validateErr error
	gotKey      string
	gotValue    string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	m.gotKey = key
	m.gotValue = value
	return m.setErr
}

func (m *mockSettingsService) Keys() []string {
	return []string{"chunker.chunk_size", "embedding.provider", "query.threshold"}
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error {
	return m.validateErr
}

// mockWatchService implements driving.WatchService.
type mockWatchService struct {
	events  []domain.WatchEvent
	report  *domain.SyncReport
	err     error
	gotRoot string
	watched bool
}

func (m *mockWatchService) Sync(
	_ context.Context, root string, handle driving.WatchHandler,
) (*domain.SyncReport, error) {
	m.gotRoot = root
	for _, e := range m.events {
		handle(e)
	}
	return m.report, m.err
}

func (m *mockWatchService) Watch(_ context.Context, root string, handle driving.WatchHandler) error {
	m.gotRoot = root
	m.watched = true
	for _, e := range m.events {
		handle(e)
	}
	return m.err
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	query     *mockQueryService
	search    *mockSearchService
	ingest    *mockIngestService
	documents *mockDocumentService
	settings  *mockSettingsService
	watch     *mockWatchService
}

func newTestServices() *testServices {
	added := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return &testServices{
		query: &mockQueryService{answer: &domain.QueryAnswer{
			Success:    true,
			Suggestion: "The report is due on Friday.",
			Confidence: 0.74,
			QueryType:  domain.QueryTypeTemporal,
			Sources:    []domain.Source{{Filename: "policy.txt", Similarity: 0.81}},
		}},
		search: &mockSearchService{results: []domain.SearchResult{{
			DocumentID: "doc-1",
			ChunkIndex: 2,
			ChunkText:  "Reports are due on Friday.",
			Similarity: 0.81,
			Metadata:   domain.DocumentMetadata{Filename: "policy.txt"},
		}}},
		ingest: &mockIngestService{},
		documents: &mockDocumentService{
			summaries: []domain.DocumentSummary{
				{ID: "doc-1", Filename: "policy.txt", MIMEType: "text/plain", Chunks: 4, AddedAt: added},
			},
			document: &domain.Document{
				ID: "doc-1",
				Chunks: []domain.Chunk{
					{DocumentID: "doc-1", Position: 0, Content: "Reports are due on Friday."},
				},
				Metadata: domain.DocumentMetadata{Filename: "policy.txt", MIMEType: "text/plain", Size: 512},
				AddedAt:  added,
			},
			stats: &domain.Stats{
				StoreStats:    domain.StoreStats{Documents: 1, TotalChunks: 4},
				ModelName:     "all-minilm",
				EmbeddingMode: domain.EmbeddingModeModel,
			},
		},
		settings: &mockSettingsService{settings: domain.DefaultAppSettings()},
		watch:    &mockWatchService{report: &domain.SyncReport{}},
	}
}

// setupTestServices installs fresh mocks and returns a cleanup that
// clears them and resets every flag to its default.
func setupTestServices() func() {
	cleanup, _ := setupTestServicesWithMocks()
	return cleanup
}

func setupTestServicesWithMocks() (func(), *testServices) {
	ts := newTestServices()
	SetServices(Services{
		Ingest:    ts.ingest,
		Query:     ts.query,
		Search:    ts.search,
		Documents: ts.documents,
		Settings:  ts.settings,
		Watch:     ts.watch,
	})

	origTerminal := stdinIsTerminal
	return func() {
		SetServices(Services{})
		stdinIsTerminal = origTerminal
		resetFlags(rootCmd)
	}, ts
}

// resetFlags restores flag defaults; cobra keeps values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns stdout, stderr and the error.
func execute(stdin io.Reader, args ...string) (string, string, error) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

var errBoom = errors.New("boom")
