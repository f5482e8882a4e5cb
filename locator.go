package qtdoc

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Canonical address of the corpus. Every page is reachable under
// BaseURL + corpus-relative path.
const (
	CanonicalHost = "doc.qt.io"
	ArchivePrefix = "/archives/qt-4.8/"
	BaseURL       = "https://" + CanonicalHost + ArchivePrefix
)

// Locator is the canonical identity of a corpus page. It is constructed by
// Resolver.Resolve and never persisted.
type Locator struct {
	// Canonical is the normalized absolute URL without fragment.
	Canonical string

	// RelPath is the corpus-relative path using forward slashes.
	RelPath string

	// Fragment is the anchor id requested with the URL, if any.
	Fragment string
}

// Path returns the location of the page on disk under the corpus root base.
func (l *Locator) Path(base string) string {
	return filepath.Join(base, filepath.FromSlash(l.RelPath))
}

// Key returns the cache key for this locator. Whole-page results are keyed
// by canonical URL alone; fragment-scoped views append the fragment so they
// never collide with the persisted whole-page entry.
func (l *Locator) Key(sectionOnly bool) string {
	if sectionOnly && l.Fragment != "" {
		return l.Canonical + "#" + l.Fragment
	}
	return l.Canonical
}

// Resolver maps any accepted URL form to a Locator. It is a pure function
// of its input plus the canonical base; it performs no I/O.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve accepts absolute canonical URLs, bare corpus-relative filenames,
// and either form with a trailing #fragment. It returns ENOTALLOWED when the
// input points outside the corpus boundary and EINVALID when it cannot be
// parsed as a URL at all.
func (r *Resolver) Resolve(input string) (*Locator, error) {
	if strings.TrimSpace(input) == "" {
		return nil, Errorf(EINVALID, "empty URL")
	}

	u, err := url.Parse(input)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q: %v", input, err)
	}

	var rel string
	switch {
	case u.Scheme == "" && u.Host == "":
		// Bare corpus-relative path, e.g. "qstring.html" or "widgets/gallery.html".
		rel = u.Path
	case u.Scheme == "http" || u.Scheme == "https":
		if !strings.EqualFold(u.Host, CanonicalHost) {
			return nil, Errorf(ENOTALLOWED, "host %q is not the documentation host", u.Host)
		}
		if !strings.HasPrefix(u.Path, ArchivePrefix) {
			return nil, Errorf(ENOTALLOWED, "path %q is outside the Qt 4.8 archive", u.Path)
		}
		rel = strings.TrimPrefix(u.Path, ArchivePrefix)
	default:
		return nil, Errorf(ENOTALLOWED, "scheme %q not allowed", u.Scheme)
	}

	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return nil, Errorf(EINVALID, "empty document path in %q", input)
	}

	// Normalize with forward-slash semantics regardless of host OS. A path
	// that still escapes upward after cleaning is outside the corpus root.
	cleaned := path.Clean(rel)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") || path.IsAbs(cleaned) {
		return nil, Errorf(ENOTALLOWED, "path %q escapes the corpus root", rel)
	}

	return &Locator{
		Canonical: BaseURL + cleaned,
		RelPath:   cleaned,
		Fragment:  u.Fragment,
	}, nil
}

// CanonicalURL returns the canonical absolute URL for a corpus-relative path.
func CanonicalURL(relPath string) string {
	return BaseURL + strings.TrimPrefix(path.Clean(relPath), "/")
}
