package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// MockQueryService implements driving.QueryService for testing.
type MockQueryService struct {
	AnswerFunc func(ctx context.Context, history []domain.Message, opts domain.QueryOptions) (*domain.QueryAnswer, error)
}

func (m *MockQueryService) Answer(
	ctx context.Context, history []domain.Message, opts domain.QueryOptions,
) (*domain.QueryAnswer, error) {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, history, opts)
	}
	return &domain.QueryAnswer{Success: true, Suggestion: "ok"}, nil
}

func (m *MockQueryService) Query(
	ctx context.Context, query string, opts domain.QueryOptions,
) (*domain.QueryAnswer, error) {
	return m.Answer(ctx, []domain.Message{{Sender: "user", Message: query}}, opts)
}

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	Summaries []domain.DocumentSummary
	Doc       *domain.Document
	StatsVal  *domain.Stats
	Err       error
}

func (m *MockDocumentService) List(_ context.Context) ([]domain.DocumentSummary, error) {
	return m.Summaries, m.Err
}

func (m *MockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.Doc, m.Err
}

func (m *MockDocumentService) Delete(_ context.Context, _ string) error {
	return m.Err
}

func (m *MockDocumentService) Stats(_ context.Context) (*domain.Stats, error) {
	if m.StatsVal == nil && m.Err == nil {
		return &domain.Stats{}, nil
	}
	return m.StatsVal, m.Err
}

func TestNewPorts(t *testing.T) {
	query := &MockQueryService{}
	docs := &MockDocumentService{}

	ports := NewPorts(query, docs)

	require.NotNil(t, ports)
	assert.Equal(t, query, ports.Query)
	assert.Equal(t, docs, ports.Document)
	assert.Equal(t, domain.DefaultQueryOptions(), ports.Options)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{
			name:  "query and document",
			ports: NewPorts(&MockQueryService{}, &MockDocumentService{}),
		},
		{
			name:  "query only",
			ports: NewPorts(&MockQueryService{}, nil),
		},
		{
			name:    "missing query",
			ports:   NewPorts(nil, &MockDocumentService{}),
			wantErr: ErrMissingQueryService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
		})
	}
}
