package mock

import (
	"context"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

var _ qtdoc.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of qtdoc.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]qtdoc.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]qtdoc.SearchResult, error) {
	return s.SearchFn(ctx, query, limit)
}

var _ qtdoc.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of qtdoc.IndexService.
type IndexService struct {
	BuildFn func(ctx context.Context, docBase string, force bool, progress qtdoc.BuildProgressFunc) (*qtdoc.BuildStats, error)
	MetaFn  func(ctx context.Context) (*qtdoc.IndexMeta, error)
}

func (s *IndexService) Build(ctx context.Context, docBase string, force bool, progress qtdoc.BuildProgressFunc) (*qtdoc.BuildStats, error) {
	return s.BuildFn(ctx, docBase, force, progress)
}

func (s *IndexService) Meta(ctx context.Context) (*qtdoc.IndexMeta, error) {
	return s.MetaFn(ctx)
}
