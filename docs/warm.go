package docs

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jztan/qt4-doc-mcp-server/fs"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

const defaultWarmConcurrency = 8

// WarmAll walks the entire corpus in lexical order and forces conversion
// plus disk persistence of every page once. It is idempotent and safe to
// re-run; existing entries are overwritten with re-derived content.
// Per-page parse failures are reported through progress and do not abort
// the walk. Returns the number of pages successfully warmed.
func (s *Service) WarmAll(ctx context.Context, progress qtdoc.WarmProgressFunc) (int, error) {
	pages, err := fs.ListPages(s.DocBase)
	if err != nil {
		return 0, err
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = defaultWarmConcurrency
	}

	var warmed, completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, relPath := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			err := s.warmPage(gctx, relPath)
			if err == nil {
				warmed.Add(1)
			} else if s.Logger != nil {
				s.Logger.Warn("failed to warm page", "page", relPath, "error", err)
			}

			if progress != nil {
				progress(qtdoc.WarmProgress{
					RelPath:   relPath,
					Completed: int(completed.Add(1)),
					Total:     len(pages),
					Err:       err,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(warmed.Load()), err
	}
	return int(warmed.Load()), nil
}

// warmPage converts one page and persists it, bypassing the LRU so warming
// a large corpus does not churn the in-memory tier.
func (s *Service) warmPage(ctx context.Context, relPath string) error {
	loc, err := s.Resolver.Resolve(relPath)
	if err != nil {
		return err
	}

	doc, err := s.convert(loc, qtdoc.ExtractOptions{PageURL: loc.Canonical})
	if err != nil {
		return err
	}

	return s.Store.Write(ctx, loc.Canonical, doc)
}
