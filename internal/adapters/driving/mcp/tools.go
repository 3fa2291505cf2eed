package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// RAGQueryInput is the input schema for the rag_query tool.
type RAGQueryInput struct {
	Query          string   `json:"query" jsonschema:"the question to answer from indexed documents"`
	MaxResults     int      `json:"max_results,omitempty" jsonschema:"maximum chunks to retrieve (default 5)"`
	Threshold      *float64 `json:"threshold,omitempty" jsonschema:"minimum cosine similarity between 0 and 1 (default 0.3)"`
	IncludeContext *bool    `json:"include_context,omitempty" jsonschema:"return the retrieved chunks with the answer (default true)"`
}

// RAGQueryOutput is the output schema for the rag_query tool.
type RAGQueryOutput struct {
	Success       bool                  `json:"success"`
	Answer        string                `json:"answer,omitempty"`
	Error         string                `json:"error,omitempty"`
	Confidence    float64               `json:"confidence"`
	QueryType     string                `json:"query_type,omitempty"`
	Sources       []SourceOutput        `json:"sources"`
	ChunksUsed    int                   `json:"chunks_used"`
	AvgSimilarity float64               `json:"avg_similarity"`
	Context       *[]SearchResultOutput `json:"context,omitempty"`
}

// SourceOutput credits a document used in an answer.
type SourceOutput struct {
	Filename   string  `json:"filename"`
	Similarity float64 `json:"similarity"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query     string   `json:"query" jsonschema:"the text to find similar chunks for"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
	Threshold *float64 `json:"threshold,omitempty" jsonschema:"minimum cosine similarity between 0 and 1 (default 0.3)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
	Content    string  `json:"content"`
}

// IngestTextInput is the input schema for the ingest_text tool.
type IngestTextInput struct {
	Text     string `json:"text" jsonschema:"the plain text to index"`
	Filename string `json:"filename" jsonschema:"a file name to credit in answers"`
	ID       string `json:"id,omitempty" jsonschema:"document ID; an existing ID replaces that document"`
}

// DeleteDocumentInput is the input schema for the delete_document tool.
type DeleteDocumentInput struct {
	ID string `json:"id" jsonschema:"the document ID to delete"`
}

// DeleteDocumentOutput is the output schema for the delete_document tool.
type DeleteDocumentOutput struct {
	Deleted string `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rag_query",
		Description: "Answer a question from indexed documents with an extractive, cited response",
	}, s.handleRAGQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find the indexed chunks most similar to a text",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_text",
		Description: "Chunk, embed and index plain text as a document",
	}, s.handleIngestText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Remove a document and its embeddings from the index",
	}, s.handleDeleteDocument)
}

// handleRAGQuery handles the rag_query tool invocation.
// Unsuccessful answers are returned as output, not as tool errors.
func (s *Server) handleRAGQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RAGQueryInput,
) (*mcp.CallToolResult, RAGQueryOutput, error) {
	opts := domain.DefaultQueryOptions()
	if input.MaxResults > 0 {
		opts.MaxResults = input.MaxResults
	}
	if input.Threshold != nil {
		opts.Threshold = *input.Threshold
	}
	if input.IncludeContext != nil {
		opts.IncludeContext = *input.IncludeContext
	}

	answer, err := s.ports.Query.Query(ctx, input.Query, opts)
	if err != nil {
		return nil, RAGQueryOutput{}, err
	}

	output := RAGQueryOutput{
		Success:    answer.Success,
		Answer:     answer.Suggestion,
		Error:      answer.Error,
		Confidence: answer.Confidence,
		QueryType:  answer.QueryType.String(),
		Sources:    make([]SourceOutput, len(answer.Sources)),
	}
	if answer.Context != nil {
		results := toResultOutputs(answer.Context)
		if results == nil {
			results = []SearchResultOutput{}
		}
		output.Context = &results
	}
	for i, src := range answer.Sources {
		output.Sources[i] = SourceOutput{Filename: src.Filename, Similarity: src.Similarity}
	}
	if answer.Metadata != nil {
		output.ChunksUsed = answer.Metadata.ChunksUsed
		output.AvgSimilarity = answer.Metadata.AvgSimilarity
	}
	return nil, output, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultMaxResults
	}
	threshold := domain.DefaultThreshold
	if input.Threshold != nil {
		threshold = *input.Threshold
	}

	results, err := s.ports.Search.Search(ctx, input.Query, limit, threshold)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: toResultOutputs(results),
		Count:   len(results),
	}
	if output.Results == nil {
		output.Results = []SearchResultOutput{}
	}

	return nil, output, nil
}

func toResultOutputs(results []domain.SearchResult) []SearchResultOutput {
	if len(results) == 0 {
		return nil
	}
	out := make([]SearchResultOutput, len(results))
	for i := range results {
		out[i] = SearchResultOutput{
			DocumentID: results[i].DocumentID,
			Filename:   results[i].Metadata.Filename,
			ChunkIndex: results[i].ChunkIndex,
			Similarity: results[i].Similarity,
			Content:    results[i].ChunkText,
		}
	}
	return out
}

// handleIngestText handles the ingest_text tool invocation.
func (s *Server) handleIngestText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestTextInput,
) (*mcp.CallToolResult, domain.IngestResult, error) {
	if s.ports.Ingest == nil {
		return nil, domain.IngestResult{}, fmt.Errorf("ingest_text: %w", ErrToolUnavailable)
	}

	result, err := s.ports.Ingest.Ingest(ctx, domain.IngestRequest{
		ID:       input.ID,
		Text:     input.Text,
		Filename: input.Filename,
		MIMEType: "text/plain",
	})
	if err != nil {
		return nil, domain.IngestResult{}, err
	}
	return nil, *result, nil
}

// handleDeleteDocument handles the delete_document tool invocation.
func (s *Server) handleDeleteDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteDocumentInput,
) (*mcp.CallToolResult, DeleteDocumentOutput, error) {
	if s.ports.Document == nil {
		return nil, DeleteDocumentOutput{}, fmt.Errorf("delete_document: %w", ErrToolUnavailable)
	}

	if err := s.ports.Document.Delete(ctx, input.ID); err != nil {
		return nil, DeleteDocumentOutput{}, err
	}
	return nil, DeleteDocumentOutput{Deleted: input.ID}, nil
}
