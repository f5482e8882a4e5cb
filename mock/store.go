package mock

import (
	"context"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

var _ qtdoc.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of qtdoc.DocumentStore.
type DocumentStore struct {
	ReadFn   func(ctx context.Context, canonicalURL string) (*qtdoc.Document, error)
	WriteFn  func(ctx context.Context, canonicalURL string, doc *qtdoc.Document) error
	DeleteFn func(ctx context.Context, canonicalURL string) error
}

func (s *DocumentStore) Read(ctx context.Context, canonicalURL string) (*qtdoc.Document, error) {
	return s.ReadFn(ctx, canonicalURL)
}

func (s *DocumentStore) Write(ctx context.Context, canonicalURL string, doc *qtdoc.Document) error {
	return s.WriteFn(ctx, canonicalURL, doc)
}

func (s *DocumentStore) Delete(ctx context.Context, canonicalURL string) error {
	return s.DeleteFn(ctx, canonicalURL)
}
