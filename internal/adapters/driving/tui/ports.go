// Package tui provides an interactive terminal chat for sercha-rag.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers chat messages.
	Query driving.QueryService

	// Document lists, shows, and deletes stored documents. Optional.
	Document driving.DocumentService

	// Options configures retrieval for every question.
	Options domain.QueryOptions
}

// NewPorts creates a new Ports aggregate with the given services and
// the default query options.
func NewPorts(query driving.QueryService, document driving.DocumentService) *Ports {
	return &Ports{
		Query:    query,
		Document: document,
		Options:  domain.DefaultQueryOptions(),
	}
}

// Validate ensures all required ports are set.
// Returns an error if the query service is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
