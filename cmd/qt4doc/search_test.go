package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
	main "github.com/jztan/qt4-doc-mcp-server/cmd/qt4doc"
	"github.com/jztan/qt4-doc-mcp-server/mock"
)

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints ranked results", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(_ context.Context, query string, limit int) ([]qtdoc.SearchResult, error) {
				assert.Equal(t, "unicode", query)
				assert.Equal(t, 10, limit)
				return []qtdoc.SearchResult{
					{
						Title:   "QString Class",
						URL:     "https://doc.qt.io/archives/qt-4.8/qstring.html",
						Score:   4.2,
						Context: "provides a <b>Unicode</b> character string",
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Search: search,
		}

		cmd := &main.SearchCmd{Query: "unicode", Limit: 10}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "QString Class")
		assert.Contains(t, output, "https://doc.qt.io/archives/qt-4.8/qstring.html")
		assert.Contains(t, output, "<b>Unicode</b>")
	})

	t.Run("shows a message when nothing matches", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(context.Context, string, int) ([]qtdoc.SearchResult, error) {
				return []qtdoc.SearchResult{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Search: search,
		}

		cmd := &main.SearchCmd{Query: "nothing", Limit: 10}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No results.")
	})

	t.Run("hints at building the index when it is missing", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(context.Context, string, int) ([]qtdoc.SearchResult, error) {
				return nil, qtdoc.Errorf(qtdoc.EUNAVAILABLE, "search index not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Search: search,
		}

		cmd := &main.SearchCmd{Query: "anything", Limit: 10}
		require.Error(t, cmd.Run(deps))

		assert.Contains(t, stderr.String(), "qt4doc build-index")
	})
}
