// Package mock provides hand-written test doubles for qtdoc interfaces.
package mock

import qtdoc "github.com/jztan/qt4-doc-mcp-server"

var _ qtdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of qtdoc.Extractor.
type Extractor struct {
	ExtractFn func(html string, opts qtdoc.ExtractOptions) (*qtdoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string, opts qtdoc.ExtractOptions) (*qtdoc.ExtractResult, error) {
	return e.ExtractFn(html, opts)
}

var _ qtdoc.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor is a mock implementation of qtdoc.FieldExtractor.
type FieldExtractor struct {
	ExtractSearchFieldsFn func(html string) (*qtdoc.SearchFields, error)
}

func (e *FieldExtractor) ExtractSearchFields(html string) (*qtdoc.SearchFields, error) {
	return e.ExtractSearchFieldsFn(html)
}
