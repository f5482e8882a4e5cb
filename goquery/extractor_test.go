package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
	"github.com/jztan/qt4-doc-mcp-server/goquery"
)

const qtPage = `<!DOCTYPE html>
<html>
<head><title>QString Class | Qt 4.8</title></head>
<body>
<div class="header">Qt Documentation</div>
<div class="sidebar"><a href="index.html">Home</a></div>
<div class="content mainContent">
<h1 class="title">QString Class Reference</h1>
<p>The <a href="qstring.html#details">QString</a> class provides a Unicode
character string. See also <a href="qstringlist.html">QStringList</a> and
<a href="qstringlist.html">QStringList</a>.</p>
<h2 id="details">Detailed Description</h2>
<p>Strings are implicitly shared. External reference:
<a href="https://unicode.org/">Unicode</a>.
Skip <a href="mailto:docs@qt.io">this</a> and <a href="#details">this</a>.</p>
</div>
<div class="footer">Copyright notice</div>
</body>
</html>`

const pageURL = "https://doc.qt.io/archives/qt-4.8/qstring.html"

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("isolates the main content region", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(qtdoc.NewResolver())
		res, err := e.Extract(qtPage, qtdoc.ExtractOptions{PageURL: pageURL})

		require.NoError(t, err)
		assert.Contains(t, res.ContentHTML, "Unicode")
		assert.NotContains(t, res.ContentHTML, "Qt Documentation", "header chrome must be stripped")
		assert.NotContains(t, res.ContentHTML, "Copyright notice", "footer chrome must be stripped")
		assert.NotContains(t, res.ContentHTML, "Home", "sidebar chrome must be stripped")
	})

	t.Run("prefers the h1 over the head title", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(qtdoc.NewResolver())
		res, err := e.Extract(qtPage, qtdoc.ExtractOptions{PageURL: pageURL})

		require.NoError(t, err)
		assert.Equal(t, "QString Class Reference", res.Title)
	})

	t.Run("canonicalizes internal links", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(qtdoc.NewResolver())
		res, err := e.Extract(qtPage, qtdoc.ExtractOptions{PageURL: pageURL})

		require.NoError(t, err)
		assert.Contains(t, res.ContentHTML,
			`href="https://doc.qt.io/archives/qt-4.8/qstringlist.html"`)
		assert.Contains(t, res.ContentHTML,
			`href="https://doc.qt.io/archives/qt-4.8/qstring.html#details"`)
	})

	t.Run("collects outbound links deduplicated in document order", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(qtdoc.NewResolver())
		res, err := e.Extract(qtPage, qtdoc.ExtractOptions{PageURL: pageURL})

		require.NoError(t, err)
		require.Len(t, res.Links, 3)
		assert.Equal(t, "QString", res.Links[0].Text)
		assert.Equal(t, "https://doc.qt.io/archives/qt-4.8/qstring.html#details", res.Links[0].URL)
		assert.Equal(t, "QStringList", res.Links[1].Text)
		assert.Equal(t, "Unicode", res.Links[2].Text)
		assert.Equal(t, "https://unicode.org/", res.Links[2].URL, "external links pass through")
	})

	t.Run("skips same-page anchors and non-http links", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(qtdoc.NewResolver())
		res, err := e.Extract(qtPage, qtdoc.ExtractOptions{PageURL: pageURL})

		require.NoError(t, err)
		for _, l := range res.Links {
			assert.False(t, strings.HasPrefix(l.URL, "#"), "anchor leaked: %q", l.URL)
			assert.False(t, strings.HasPrefix(l.URL, "mailto:"), "mailto leaked: %q", l.URL)
		}
	})

	t.Run("narrows to the fragment section when requested", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(qtdoc.NewResolver())
		res, err := e.Extract(qtPage, qtdoc.ExtractOptions{
			PageURL:     pageURL,
			Fragment:    "details",
			SectionOnly: true,
		})

		require.NoError(t, err)
		assert.Contains(t, res.ContentHTML, "Detailed Description")
		assert.Contains(t, res.ContentHTML, "implicitly shared")
		assert.NotContains(t, res.ContentHTML, "QString Class Reference")
	})

	t.Run("a missing fragment id falls back to the whole page", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(qtdoc.NewResolver())
		res, err := e.Extract(qtPage, qtdoc.ExtractOptions{
			PageURL:     pageURL,
			Fragment:    "no-such-anchor",
			SectionOnly: true,
		})

		require.NoError(t, err)
		assert.Contains(t, res.ContentHTML, "QString Class Reference")
		assert.Contains(t, res.ContentHTML, "Detailed Description")
	})

	t.Run("falls back to body when no content division exists", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(qtdoc.NewResolver())
		res, err := e.Extract("<html><body><p>Plain page.</p></body></html>",
			qtdoc.ExtractOptions{PageURL: pageURL})

		require.NoError(t, err)
		assert.Contains(t, res.ContentHTML, "Plain page.")
	})

	t.Run("extraction is deterministic", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(qtdoc.NewResolver())
		first, err := e.Extract(qtPage, qtdoc.ExtractOptions{PageURL: pageURL})
		require.NoError(t, err)

		second, err := e.Extract(qtPage, qtdoc.ExtractOptions{PageURL: pageURL})
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor(qtdoc.NewResolver())
		_, err := e.Extract("   ", qtdoc.ExtractOptions{})

		require.Error(t, err)
		assert.Equal(t, qtdoc.EPARSE, qtdoc.ErrorCode(err))
	})
}
