package qtdoc

import (
	"context"
	"time"
)

// Search limits. Caller-supplied limits are clamped into this range.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// SearchFields holds the separately weighted text fields of one corpus
// page, written once per index build.
type SearchFields struct {
	Title    string
	Headings string
	Body     string
}

// FieldExtractor derives the indexed text fields from raw page HTML.
type FieldExtractor interface {
	// ExtractSearchFields returns the page title, concatenated heading
	// text, and body text of the main content region.
	ExtractSearchFields(html string) (*SearchFields, error)
}

// SearchResult is a single ranked search match. Results are ephemeral;
// they are produced per query and never stored.
type SearchResult struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
	// Context is a short highlighted snippet: the minimal window of
	// surrounding text with matched terms wrapped in <b> tags and
	// non-adjacent matches joined by an ellipsis.
	Context string `json:"context"`
}

// SearchService executes ranked full-text queries against a built index.
type SearchService interface {
	// Search returns up to limit results ordered by descending relevance,
	// ties broken by canonical URL ascending. An empty query yields an
	// empty result list. Returns EUNAVAILABLE when no index exists and
	// EINVALID on malformed query syntax.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// IndexMeta describes a built index, used by callers for staleness checks.
type IndexMeta struct {
	PageCount   int       `json:"pageCount"`
	BuiltAt     time.Time `json:"builtAt"`
	Fingerprint string    `json:"fingerprint"`
	BuildID     string    `json:"buildId"`
	DocBase     string    `json:"docBase"`
}

// BuildStats summarizes an index build.
type BuildStats struct {
	// Indexed is the number of pages written to the index.
	Indexed int `json:"indexed"`

	// Skipped is the number of pages with no indexable content.
	Skipped int `json:"skipped"`

	// Reused reports that an up-to-date index was left in place and no
	// build was performed.
	Reused bool `json:"reused"`

	Duration    time.Duration `json:"duration"`
	Fingerprint string        `json:"fingerprint"`
	BuildID     string        `json:"buildId"`
}

// BuildProgress reports progress during an index build.
type BuildProgress struct {
	Current int
	Total   int
	RelPath string
}

// BuildProgressFunc is called as pages are indexed.
type BuildProgressFunc func(BuildProgress)

// IndexService builds the search index from the corpus. The build is
// all-or-nothing: a single unparseable page aborts it. A finished index is
// published atomically so queries never observe a half-built structure.
type IndexService interface {
	// Build walks the corpus in lexical path order and writes one record
	// per page. Without force, an existing index whose fingerprint matches
	// the current corpus is reused.
	Build(ctx context.Context, docBase string, force bool, progress BuildProgressFunc) (*BuildStats, error)

	// Meta returns metadata of the published index.
	// Returns EUNAVAILABLE when no index exists.
	Meta(ctx context.Context) (*IndexMeta, error)
}
