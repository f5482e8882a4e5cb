package mcp

import (
	"errors"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// Ports aggregates the service interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Documents serves converted corpus pages.
	Documents qtdoc.DocumentService

	// Search provides ranked full-text search.
	Search qtdoc.SearchService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
