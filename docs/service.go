// Package docs orchestrates the document read path: URL resolution, the
// two-tier cache, conversion from source HTML, fragment views, and
// pagination.
package docs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/jztan/qt4-doc-mcp-server/fs"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Ensure Service implements qtdoc.DocumentService at compile time.
var _ qtdoc.DocumentService = (*Service)(nil)

// attributionFooter is appended to every converted page.
const attributionFooter = "\n\n---\n" + qtdoc.Attribution

// Service serves converted corpus pages. Lookup order is in-memory LRU,
// then the persistent store, then conversion from source. Fragment-scoped
// views are computed from the cached whole-page conversion when possible
// and are never persisted to the disk tier.
type Service struct {
	// DocBase is the corpus root directory.
	DocBase string

	Resolver  *qtdoc.Resolver
	Extractor qtdoc.Extractor
	Converter qtdoc.Converter
	Store     qtdoc.DocumentStore
	Cache     *qtdoc.LRU
	Logger    *slog.Logger

	// Concurrency bounds the WarmAll worker pool. Defaults to 8.
	Concurrency int
}

// Read resolves url, obtains the converted page through the cache, and
// returns the requested character window.
func (s *Service) Read(ctx context.Context, url string, opts qtdoc.ReadOptions) (*qtdoc.ReadResult, error) {
	loc, err := s.Resolver.Resolve(url)
	if err != nil {
		return nil, err
	}

	fragment := opts.Fragment
	if fragment == "" {
		fragment = loc.Fragment
	}
	sectionOnly := opts.SectionOnly && fragment != ""

	var doc *qtdoc.Document
	if sectionOnly {
		doc, err = s.sectionView(ctx, loc, fragment)
	} else {
		doc, err = s.wholePage(ctx, loc)
	}
	if err != nil {
		return nil, err
	}

	slice, page := qtdoc.Paginate(doc.Markdown, opts.StartIndex, opts.MaxLength)

	return &qtdoc.ReadResult{
		Title:    doc.Title,
		URL:      loc.Canonical,
		Markdown: slice,
		Links:    doc.Links,
		Page:     page,
	}, nil
}

// wholePage returns the converted page for loc: LRU first, then the
// persistent store, then conversion from source. The cache lock is never
// held across conversion or disk I/O, so a miss for one page does not block
// a concurrent hit for another.
func (s *Service) wholePage(ctx context.Context, loc *qtdoc.Locator) (*qtdoc.Document, error) {
	key := loc.Key(false)

	if doc, ok := s.Cache.Get(key); ok {
		s.logRead(loc, "memory")
		return doc, nil
	}

	doc, err := s.Store.Read(ctx, loc.Canonical)
	if err == nil {
		s.Cache.Put(key, doc)
		s.logRead(loc, "disk")
		return doc, nil
	}
	if qtdoc.ErrorCode(err) != qtdoc.ENOTFOUND {
		return nil, err
	}

	begin := time.Now()
	doc, err = s.convert(loc, qtdoc.ExtractOptions{PageURL: loc.Canonical})
	if err != nil {
		return nil, err
	}

	// Redundant concurrent conversions of the same page are wasteful but
	// safe: store writes are atomic and idempotent.
	if err := s.Store.Write(ctx, loc.Canonical, doc); err != nil {
		return nil, err
	}
	s.Cache.Put(key, doc)

	if s.Logger != nil {
		s.Logger.Debug("converted page",
			"page", loc.RelPath,
			"duration", time.Since(begin),
		)
	}
	return doc, nil
}

// sectionView returns the fragment-scoped view of a page. When the whole
// page is already cached in either tier, the view is sliced from its
// Markdown; otherwise it is a fresh fragment-scoped extraction. Views are
// cached in memory under a composite key and never persisted.
func (s *Service) sectionView(ctx context.Context, loc *qtdoc.Locator, fragment string) (*qtdoc.Document, error) {
	key := loc.Canonical + "#" + fragment

	if doc, ok := s.Cache.Get(key); ok {
		s.logRead(loc, "memory")
		return doc, nil
	}

	if whole, ok := s.Cache.Get(loc.Key(false)); ok {
		view := sliceView(whole, fragment)
		s.Cache.Put(key, view)
		return view, nil
	}
	if whole, err := s.Store.Read(ctx, loc.Canonical); err == nil {
		view := sliceView(whole, fragment)
		s.Cache.Put(key, view)
		return view, nil
	} else if qtdoc.ErrorCode(err) != qtdoc.ENOTFOUND {
		return nil, err
	}

	doc, err := s.convert(loc, qtdoc.ExtractOptions{
		PageURL:     loc.Canonical,
		Fragment:    fragment,
		SectionOnly: true,
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Put(key, doc)
	return doc, nil
}

// sliceView narrows a cached whole-page document to the fragment's section.
// A fragment with no matching heading yields the full page, mirroring the
// extraction-time policy.
func sliceView(whole *qtdoc.Document, fragment string) *qtdoc.Document {
	md := qtdoc.SliceSection(whole.Markdown, fragment)
	if !strings.HasSuffix(md, qtdoc.Attribution) {
		md += attributionFooter
	}
	return &qtdoc.Document{
		Title:       whole.Title,
		Markdown:    md,
		Links:       whole.Links,
		ContentHash: whole.ContentHash,
		ConvertedAt: whole.ConvertedAt,
	}
}

// convert produces a new Document from the source HTML of loc.
func (s *Service) convert(loc *qtdoc.Locator, opts qtdoc.ExtractOptions) (*qtdoc.Document, error) {
	html, err := fs.ReadPage(loc.Path(s.DocBase))
	if os.IsNotExist(err) {
		return nil, qtdoc.Errorf(qtdoc.ENOTFOUND, "page %q not found in corpus", loc.RelPath)
	}
	if err != nil {
		return nil, err
	}

	extracted, err := s.Extractor.Extract(html, opts)
	if err != nil {
		return nil, err
	}

	markdown, err := s.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}
	markdown = strings.TrimRight(markdown, "\n") + attributionFooter

	return &qtdoc.Document{
		Title:       extracted.Title,
		Markdown:    markdown,
		Links:       extracted.Links,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(markdown)),
		ConvertedAt: time.Now().UTC(),
	}, nil
}

// Invalidate drops both tiers' entries for a canonical URL, including any
// fragment-scoped views held in memory.
func (s *Service) Invalidate(ctx context.Context, url string) error {
	loc, err := s.Resolver.Resolve(url)
	if err != nil {
		return err
	}

	s.Cache.Remove(loc.Key(false))
	s.Cache.RemovePrefix(loc.Canonical + "#")
	return s.Store.Delete(ctx, loc.Canonical)
}

func (s *Service) logRead(loc *qtdoc.Locator, tier string) {
	if s.Logger != nil {
		s.Logger.Debug("cache hit", "page", loc.RelPath, "tier", tier)
	}
}
