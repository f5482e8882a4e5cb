package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
	"github.com/jztan/qt4-doc-mcp-server/mock"
	qtslog "github.com/jztan/qt4-doc-mcp-server/slog"
)

func newLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingSearchService_Search(t *testing.T) {
	t.Parallel()

	t.Run("passes results through and logs the query", func(t *testing.T) {
		t.Parallel()

		want := []qtdoc.SearchResult{{Title: "QString Class", Score: 4.2}}
		inner := &mock.SearchService{
			SearchFn: func(_ context.Context, query string, limit int) ([]qtdoc.SearchResult, error) {
				assert.Equal(t, "unicode", query)
				assert.Equal(t, 10, limit)
				return want, nil
			},
		}

		logger, buf := newLogger()
		svc := qtslog.NewLoggingSearchService(inner, logger)

		got, err := svc.Search(context.Background(), "unicode", 10)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Contains(t, buf.String(), "query=unicode")
		assert.Contains(t, buf.String(), "results=1")
	})

	t.Run("logs failures with the error code", func(t *testing.T) {
		t.Parallel()

		inner := &mock.SearchService{
			SearchFn: func(context.Context, string, int) ([]qtdoc.SearchResult, error) {
				return nil, qtdoc.Errorf(qtdoc.EUNAVAILABLE, "no index")
			},
		}

		logger, buf := newLogger()
		svc := qtslog.NewLoggingSearchService(inner, logger)

		_, err := svc.Search(context.Background(), "unicode", 10)

		require.Error(t, err)
		assert.Equal(t, qtdoc.EUNAVAILABLE, qtdoc.ErrorCode(err))
		assert.Contains(t, buf.String(), "search failed")
		assert.Contains(t, buf.String(), "code=unavailable")
	})
}
