// Package goquery extracts the main content region from Qt 4.8 documentation
// pages, canonicalizes internal hyperlinks, and derives the text fields used
// by the search index.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Ensure Extractor implements qtdoc.Extractor at compile time.
var _ qtdoc.Extractor = (*Extractor)(nil)

// chromeSelectors matches the navigation and boilerplate chrome shared by
// the corpus's generated layout.
var chromeSelectors = []string{
	"div.header", "div.nav", "div.sidebar",
	"div.breadcrumbs", "div.ft", "div.footer", "div.qt-footer",
}

// contentSelectors is the fixed selection chain for the main content region,
// tried in order. The generated Qt layout always provides one of the first
// three; plain pages fall through to body.
var contentSelectors = []string{
	"div.content.mainContent", "div.mainContent", "div.content",
}

// ContentFallback produces a content region for pages outside the generated
// layout, where the fixed selector chain finds nothing.
type ContentFallback interface {
	ExtractContent(html string) (title, contentHTML string, err error)
}

// Extractor isolates main content from corpus HTML using a fixed selector
// algorithm. It is deterministic: identical input yields identical output.
type Extractor struct {
	resolver *qtdoc.Resolver

	// Fallback, when set, handles pages where no content selector matches.
	Fallback ContentFallback
}

// NewExtractor creates an Extractor that canonicalizes internal links
// through resolver.
func NewExtractor(resolver *qtdoc.Resolver) *Extractor {
	return &Extractor{resolver: resolver}
}

// Extract parses raw HTML, strips boilerplate chrome, optionally narrows to
// the fragment's section, rewrites internal links to canonical form, and
// collects the outbound link list in document order.
func (e *Extractor) Extract(rawHTML string, opts qtdoc.ExtractOptions) (*qtdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, qtdoc.Errorf(qtdoc.EPARSE, "empty document")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, qtdoc.Errorf(qtdoc.EPARSE, "failed to parse HTML: %v", err)
	}

	for _, sel := range chromeSelectors {
		doc.Find(sel).Remove()
	}

	title := pageTitle(doc)

	main := mainContent(doc)
	if main == nil {
		// Page is not in the generated layout; let the fallback isolate
		// content, then continue with the same narrowing and link pass.
		if e.Fallback != nil {
			fbTitle, contentHTML, err := e.Fallback.ExtractContent(rawHTML)
			if err == nil && contentHTML != "" {
				if title == "" {
					title = fbTitle
				}
				inner, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
				if err == nil {
					main = inner.Find("body").First()
				}
			}
		}
		if main == nil {
			main = doc.Find("body").First()
		}
		if main.Length() == 0 {
			return &qtdoc.ExtractResult{Title: title}, nil
		}
	}

	if opts.SectionOnly && opts.Fragment != "" {
		if section := narrowToFragment(main, opts.Fragment); section != nil {
			main = section
		}
		// A missing fragment id means no narrowing, not an error.
	}

	links := e.rewriteLinks(main, opts.PageURL)

	contentHTML, err := renderSelection(main)
	if err != nil {
		return nil, qtdoc.Errorf(qtdoc.EPARSE, "failed to render content: %v", err)
	}

	return &qtdoc.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
		Links:       links,
	}, nil
}

// pageTitle prefers the first h1 of the page over the head title.
func pageTitle(doc *goquery.Document) string {
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		return strings.TrimSpace(h1.Text())
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// mainContent returns the first match of the fixed content selector chain,
// or nil when the page is outside the generated layout.
func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}

// rewriteLinks canonicalizes internal hrefs in place and returns the
// outbound link list in first-occurrence document order, deduplicated by
// exact (text, URL) pair. External links pass through unchanged.
func (e *Extractor) rewriteLinks(main *goquery.Selection, pageURL string) []qtdoc.Link {
	base, _ := url.Parse(pageURL)

	type pair struct{ text, url string }
	seen := make(map[pair]bool)
	var links []qtdoc.Link

	main.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || isNonHTTPLink(href) {
			return
		}

		// Same-page anchors are kept as-is and are not outbound links.
		if strings.HasPrefix(href, "#") {
			return
		}

		target := href
		if canonical, ok := e.canonicalize(base, href); ok {
			target = canonical
			sel.SetAttr("href", canonical)
		}

		text := strings.TrimSpace(sel.Text())
		p := pair{text: text, url: target}
		if seen[p] {
			return
		}
		seen[p] = true
		links = append(links, qtdoc.Link{Text: text, URL: target})
	})

	return links
}

// canonicalize resolves href against the page URL and returns the canonical
// form when the target is inside the corpus. External targets report false.
func (e *Extractor) canonicalize(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}

	loc, err := e.resolver.Resolve(resolved.String())
	if err != nil {
		return "", false
	}

	canonical := loc.Canonical
	if loc.Fragment != "" {
		canonical += "#" + loc.Fragment
	}
	return canonical, true
}

// renderSelection renders every node of the selection in order. Fragment
// sections span multiple sibling nodes, so rendering only the first node
// would drop the section body.
func renderSelection(sel *goquery.Selection) (string, error) {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
