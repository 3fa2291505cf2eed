package mcp

import (
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions from stored documents.
	Query driving.QueryService

	// Search provides raw similarity search.
	Search driving.SearchService

	// Ingest adds documents. Optional; ingest_text fails without it.
	Ingest driving.IngestService

	// Document manages stored documents. Optional.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
