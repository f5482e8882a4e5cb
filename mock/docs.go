package mock

import (
	"context"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

var _ qtdoc.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of qtdoc.DocumentService.
type DocumentService struct {
	ReadFn       func(ctx context.Context, url string, opts qtdoc.ReadOptions) (*qtdoc.ReadResult, error)
	WarmAllFn    func(ctx context.Context, progress qtdoc.WarmProgressFunc) (int, error)
	InvalidateFn func(ctx context.Context, url string) error
}

func (s *DocumentService) Read(ctx context.Context, url string, opts qtdoc.ReadOptions) (*qtdoc.ReadResult, error) {
	return s.ReadFn(ctx, url, opts)
}

func (s *DocumentService) WarmAll(ctx context.Context, progress qtdoc.WarmProgressFunc) (int, error) {
	return s.WarmAllFn(ctx, progress)
}

func (s *DocumentService) Invalidate(ctx context.Context, url string) error {
	return s.InvalidateFn(ctx, url)
}
