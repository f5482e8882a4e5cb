package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
	"github.com/jztan/qt4-doc-mcp-server/goquery"
	"github.com/jztan/qt4-doc-mcp-server/mock"
	"github.com/jztan/qt4-doc-mcp-server/sqlite"
)

// writePage writes a minimal corpus page in the generated Qt layout.
func writePage(t *testing.T, dir, rel, title, body string) {
	t.Helper()
	html := fmt.Sprintf(
		`<html><head><title>%s</title></head><body><div class="content"><h1>%s</h1><p>%s</p></div></body></html>`,
		title, title, body)
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))
}

func newIndexService(t *testing.T) (*sqlite.IndexService, string) {
	t.Helper()
	indexPath := filepath.Join(t.TempDir(), "search.db")
	fields := goquery.NewExtractor(qtdoc.NewResolver())
	return sqlite.NewIndexService(indexPath, fields), indexPath
}

func TestIndexService_Build(t *testing.T) {
	t.Parallel()

	t.Run("indexes every corpus page", func(t *testing.T) {
		t.Parallel()

		corpus := t.TempDir()
		writePage(t, corpus, "qstring.html", "QString Class", "Unicode character strings.")
		writePage(t, corpus, "qwidget.html", "QWidget Class", "Base class of user interface objects.")
		writePage(t, corpus, "examples/widgets.html", "Widgets Example", "A gallery of widgets.")

		svc, indexPath := newIndexService(t)
		stats, err := svc.Build(context.Background(), corpus, false, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, stats.Indexed)
		assert.Zero(t, stats.Skipped)
		assert.False(t, stats.Reused)
		assert.NotEmpty(t, stats.Fingerprint)
		assert.NotEmpty(t, stats.BuildID)
		assert.FileExists(t, indexPath)
	})

	t.Run("reports progress in lexical page order", func(t *testing.T) {
		t.Parallel()

		corpus := t.TempDir()
		writePage(t, corpus, "qwidget.html", "QWidget", "b")
		writePage(t, corpus, "qstring.html", "QString", "a")

		svc, _ := newIndexService(t)

		var order []string
		_, err := svc.Build(context.Background(), corpus, false, func(p qtdoc.BuildProgress) {
			order = append(order, p.RelPath)
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"qstring.html", "qwidget.html"}, order)
	})

	t.Run("skips pages with no indexable content", func(t *testing.T) {
		t.Parallel()

		corpus := t.TempDir()
		writePage(t, corpus, "qstring.html", "QString Class", "Unicode character strings.")
		require.NoError(t, os.WriteFile(
			filepath.Join(corpus, "empty.html"),
			[]byte(`<html><body><div class="content"></div></body></html>`), 0o644))

		svc, _ := newIndexService(t)
		stats, err := svc.Build(context.Background(), corpus, false, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, stats.Indexed)
		assert.Equal(t, 1, stats.Skipped)
	})

	t.Run("an unchanged corpus reuses the published index", func(t *testing.T) {
		t.Parallel()

		corpus := t.TempDir()
		writePage(t, corpus, "qstring.html", "QString Class", "Unicode character strings.")

		svc, _ := newIndexService(t)
		ctx := context.Background()

		first, err := svc.Build(ctx, corpus, false, nil)
		require.NoError(t, err)

		second, err := svc.Build(ctx, corpus, false, nil)
		require.NoError(t, err)

		assert.True(t, second.Reused)
		assert.Equal(t, first.Fingerprint, second.Fingerprint)
		assert.Equal(t, first.BuildID, second.BuildID, "reuse keeps the published build")
	})

	t.Run("force rebuilds an unchanged corpus", func(t *testing.T) {
		t.Parallel()

		corpus := t.TempDir()
		writePage(t, corpus, "qstring.html", "QString Class", "Unicode character strings.")

		svc, _ := newIndexService(t)
		ctx := context.Background()

		first, err := svc.Build(ctx, corpus, false, nil)
		require.NoError(t, err)

		second, err := svc.Build(ctx, corpus, true, nil)
		require.NoError(t, err)

		assert.False(t, second.Reused)
		assert.Equal(t, first.Fingerprint, second.Fingerprint)
		assert.NotEqual(t, first.BuildID, second.BuildID)
	})

	t.Run("a changed page changes the fingerprint and rebuilds", func(t *testing.T) {
		t.Parallel()

		corpus := t.TempDir()
		writePage(t, corpus, "qstring.html", "QString Class", "Unicode character strings.")

		svc, _ := newIndexService(t)
		ctx := context.Background()

		first, err := svc.Build(ctx, corpus, false, nil)
		require.NoError(t, err)

		writePage(t, corpus, "qstring.html", "QString Class", "Unicode character strings, revised.")

		second, err := svc.Build(ctx, corpus, false, nil)
		require.NoError(t, err)

		assert.False(t, second.Reused)
		assert.NotEqual(t, first.Fingerprint, second.Fingerprint)
	})

	t.Run("identical corpus snapshots produce identical fingerprints", func(t *testing.T) {
		t.Parallel()

		makeCorpus := func() string {
			dir := t.TempDir()
			writePage(t, dir, "qstring.html", "QString Class", "Unicode character strings.")
			writePage(t, dir, "qwidget.html", "QWidget Class", "Base class of widgets.")
			return dir
		}

		svcA, _ := newIndexService(t)
		statsA, err := svcA.Build(context.Background(), makeCorpus(), false, nil)
		require.NoError(t, err)

		svcB, _ := newIndexService(t)
		statsB, err := svcB.Build(context.Background(), makeCorpus(), false, nil)
		require.NoError(t, err)

		assert.Equal(t, statsA.Fingerprint, statsB.Fingerprint)
		assert.Equal(t, statsA.Indexed, statsB.Indexed)
	})

	t.Run("an unparseable page aborts the whole build", func(t *testing.T) {
		t.Parallel()

		corpus := t.TempDir()
		writePage(t, corpus, "bad.html", "Bad", "x")
		writePage(t, corpus, "good.html", "Good", "y")

		indexPath := filepath.Join(t.TempDir(), "search.db")
		svc := sqlite.NewIndexService(indexPath, &mock.FieldExtractor{
			ExtractSearchFieldsFn: func(html string) (*qtdoc.SearchFields, error) {
				return nil, qtdoc.Errorf(qtdoc.EPARSE, "broken page")
			},
		})

		_, err := svc.Build(context.Background(), corpus, false, nil)

		require.Error(t, err)
		assert.Equal(t, qtdoc.EPARSE, qtdoc.ErrorCode(err))
		assert.NoFileExists(t, indexPath, "no index may be published on failure")
	})

	t.Run("an empty corpus reports not found", func(t *testing.T) {
		t.Parallel()

		svc, _ := newIndexService(t)
		_, err := svc.Build(context.Background(), t.TempDir(), false, nil)

		require.Error(t, err)
		assert.Equal(t, qtdoc.ENOTFOUND, qtdoc.ErrorCode(err))
	})
}

func TestIndexService_Meta(t *testing.T) {
	t.Parallel()

	t.Run("returns the published index metadata", func(t *testing.T) {
		t.Parallel()

		corpus := t.TempDir()
		writePage(t, corpus, "qstring.html", "QString Class", "Unicode character strings.")
		writePage(t, corpus, "qwidget.html", "QWidget Class", "Base class of widgets.")

		svc, _ := newIndexService(t)
		ctx := context.Background()

		stats, err := svc.Build(ctx, corpus, false, nil)
		require.NoError(t, err)

		meta, err := svc.Meta(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, meta.PageCount)
		assert.Equal(t, stats.Fingerprint, meta.Fingerprint)
		assert.Equal(t, stats.BuildID, meta.BuildID)
		assert.Equal(t, corpus, meta.DocBase)
		assert.False(t, meta.BuiltAt.IsZero())
	})

	t.Run("missing index reports unavailable", func(t *testing.T) {
		t.Parallel()

		svc, _ := newIndexService(t)
		_, err := svc.Meta(context.Background())

		require.Error(t, err)
		assert.Equal(t, qtdoc.EUNAVAILABLE, qtdoc.ErrorCode(err))
	})
}
