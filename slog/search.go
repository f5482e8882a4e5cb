// Package slog provides logging decorators for qtdoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Ensure LoggingSearchService implements qtdoc.SearchService.
var _ qtdoc.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with query logging.
type LoggingSearchService struct {
	next   qtdoc.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next qtdoc.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the query outcome.
func (s *LoggingSearchService) Search(ctx context.Context, query string, limit int) ([]qtdoc.SearchResult, error) {
	begin := time.Now()
	results, err := s.next.Search(ctx, query, limit)
	if err != nil {
		s.logger.Error("search failed",
			"query", query,
			"code", qtdoc.ErrorCode(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}

	s.logger.Info("search",
		"query", query,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, nil
}
