package qtdoc

import (
	"context"
	"time"
)

// Attribution is appended to every converted page. The corpus content is
// licensed under the GNU Free Documentation License 1.3.
const Attribution = "Content © The Qt Company Ltd./Digia — GNU Free Documentation License 1.3"

// Link is an outbound hyperlink found in the content region of a page.
// Internal links carry the canonical absolute URL.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Document is a converted corpus page. It is immutable once created;
// re-conversion produces a new instance.
type Document struct {
	Title       string    `json:"title"`
	Markdown    string    `json:"markdown"`
	Links       []Link    `json:"links"`
	ContentHash string    `json:"contentHash"`
	ConvertedAt time.Time `json:"convertedAt"`
}

// ExtractOptions controls content extraction for a single page.
type ExtractOptions struct {
	// PageURL is the canonical URL of the page being extracted, used to
	// resolve relative hrefs to canonical form.
	PageURL string

	// Fragment optionally narrows extraction to the subtree anchored at the
	// given id. A fragment that does not exist in the document means no
	// narrowing, not an error.
	Fragment string

	// SectionOnly requests only the fragment's section rather than the
	// whole page.
	SectionOnly bool
}

// ExtractResult holds the extracted content region of an HTML page.
type ExtractResult struct {
	// Title is the page title, preferring the first h1 over <title>.
	Title string

	// ContentHTML is the main content as clean HTML. Navigation and
	// boilerplate chrome have been removed and internal hyperlinks
	// rewritten to canonical form.
	ContentHTML string

	// Links are the outbound links of the content region in first-occurrence
	// document order, deduplicated by exact (text, URL) pair.
	Links []Link
}

// Extractor isolates the main content region of a raw HTML page.
type Extractor interface {
	// Extract parses raw HTML and returns the main content with canonical
	// links. It returns EPARSE only when the input cannot be parsed as a
	// document at all, not when expected elements are merely absent.
	Extract(html string, opts ExtractOptions) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML content into Markdown.
	Convert(html string) (string, error)
}

// ReadOptions controls a single document read.
type ReadOptions struct {
	// Fragment narrows the read to a named subsection anchor. When empty,
	// a fragment carried by the URL itself is used.
	Fragment string

	// SectionOnly returns only the fragment's section instead of the
	// whole page.
	SectionOnly bool

	// StartIndex and MaxLength select the returned character window.
	StartIndex int
	MaxLength  int
}

// ReadResult is the outcome of a document read: the requested window of the
// converted page plus its link annotations and pagination metadata.
type ReadResult struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Markdown string   `json:"markdown"`
	Links    []Link   `json:"links"`
	Page     PageInfo `json:"page"`
}

// WarmProgress reports progress during cache warming.
type WarmProgress struct {
	RelPath   string
	Completed int
	Total     int
	Err       error
}

// WarmProgressFunc is called as pages are warmed.
type WarmProgressFunc func(WarmProgress)

// DocumentService serves converted corpus pages through the two-tier cache.
type DocumentService interface {
	// Read resolves url, converts the page (or serves it from cache), and
	// returns the requested window.
	Read(ctx context.Context, url string, opts ReadOptions) (*ReadResult, error)

	// WarmAll converts and persists every corpus page once, for
	// pre-deployment cache priming. It is idempotent; per-page parse
	// failures are reported through progress and do not abort the walk.
	// Returns the number of pages successfully warmed.
	WarmAll(ctx context.Context, progress WarmProgressFunc) (int, error)

	// Invalidate drops both cache tiers' entries for a canonical URL.
	Invalidate(ctx context.Context, url string) error
}

// DocumentStore persists converted documents keyed by canonical URL.
// Stored entries are never evicted automatically; they are only overwritten
// by re-conversion or removed by explicit invalidation.
type DocumentStore interface {
	// Read returns the stored document for a canonical URL.
	// Returns ENOTFOUND if no entry exists.
	Read(ctx context.Context, canonicalURL string) (*Document, error)

	// Write persists a document. Writes are atomic and idempotent; a
	// concurrent duplicate write of identical content is harmless.
	Write(ctx context.Context, canonicalURL string, doc *Document) error

	// Delete removes the stored entry for a canonical URL, if present.
	Delete(ctx context.Context, canonicalURL string) error
}
