package sqlite

import (
	"context"
	"os"
	"strings"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Ensure SearchService implements qtdoc.SearchService at compile time.
var _ qtdoc.SearchService = (*SearchService)(nil)

// Relative column weights for ranking: a title match outranks a heading
// match, which outranks a body match at equal term frequency.
const bm25Weights = "5.0, 2.0, 1.0"

// SearchService executes ranked FTS5 queries against the published index.
// Each query opens its own read connection, so an index published by a
// concurrent rebuild is picked up by the next query.
type SearchService struct {
	// IndexPath is the location of the published index database.
	IndexPath string
}

// NewSearchService creates a SearchService querying indexPath.
func NewSearchService(indexPath string) *SearchService {
	return &SearchService{IndexPath: indexPath}
}

// Search returns up to limit results ordered by descending relevance with
// ties broken by canonical URL ascending. An empty query yields an empty
// result list; a query the FTS5 grammar rejects yields EINVALID.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]qtdoc.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []qtdoc.SearchResult{}, nil
	}

	if limit <= 0 {
		limit = qtdoc.DefaultSearchLimit
	}
	if limit > qtdoc.MaxSearchLimit {
		limit = qtdoc.MaxSearchLimit
	}

	if _, err := os.Stat(s.IndexPath); os.IsNotExist(err) {
		return nil, qtdoc.Errorf(qtdoc.EUNAVAILABLE, "search index not found at %q", s.IndexPath)
	}

	db := NewDB(s.IndexPath)
	if err := db.Open(); err != nil {
		return nil, err
	}
	defer db.Close()

	// bm25 returns more-negative values for better matches, so ascending
	// rank order is descending relevance. snippet column 2 is the body.
	rows, err := db.QueryContext(ctx, `
		SELECT
			title,
			url,
			bm25(docs, `+bm25Weights+`) AS rank,
			snippet(docs, 2, '<b>', '</b>', '…', 10) AS context
		FROM docs
		WHERE docs MATCH ?
		ORDER BY rank ASC, url ASC
		LIMIT ?
	`, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, mapQueryError(err)
	}
	defer rows.Close()

	results := make([]qtdoc.SearchResult, 0, limit)
	for rows.Next() {
		var r qtdoc.SearchResult
		var rank float64
		if err := rows.Scan(&r.Title, &r.URL, &rank, &r.Context); err != nil {
			return nil, err
		}

		// Surface scores as higher-is-better.
		r.Score = -rank

		if r.Title == "" {
			r.Title = "Untitled"
		}
		if strings.TrimSpace(r.Context) == "" {
			r.Context = r.Title
		}

		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapQueryError(err)
	}

	return results, nil
}

// mapQueryError tags FTS5 failures with the appropriate application code:
// a missing table means the index was never initialized, a grammar error is
// a caller error.
func mapQueryError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "no such table") {
		return qtdoc.Errorf(qtdoc.EUNAVAILABLE, "search index not initialized")
	}
	if strings.Contains(msg, "fts5: syntax error") || strings.Contains(msg, "unknown special query") || strings.Contains(msg, "no such column") {
		return qtdoc.Errorf(qtdoc.EINVALID, "invalid search query: %v", err)
	}
	return err
}
