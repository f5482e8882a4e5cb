package slog

import (
	"context"
	"log/slog"
	"time"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Ensure LoggingDocumentService implements qtdoc.DocumentService.
var _ qtdoc.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with read-path logging.
type LoggingDocumentService struct {
	next   qtdoc.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next qtdoc.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// Read delegates to the wrapped service and logs the outcome.
func (s *LoggingDocumentService) Read(ctx context.Context, url string, opts qtdoc.ReadOptions) (*qtdoc.ReadResult, error) {
	begin := time.Now()
	result, err := s.next.Read(ctx, url, opts)
	if err != nil {
		s.logger.Error("read failed",
			"url", url,
			"code", qtdoc.ErrorCode(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}

	s.logger.Info("read",
		"url", url,
		"returned", result.Page.ReturnedLength,
		"truncated", result.Page.Truncated,
		"duration", time.Since(begin),
	)
	return result, nil
}

// WarmAll delegates to the wrapped service and logs the summary.
func (s *LoggingDocumentService) WarmAll(ctx context.Context, progress qtdoc.WarmProgressFunc) (int, error) {
	begin := time.Now()
	warmed, err := s.next.WarmAll(ctx, progress)
	if err != nil {
		s.logger.Error("warm aborted",
			"warmed", warmed,
			"duration", time.Since(begin),
		)
		return warmed, err
	}

	s.logger.Info("warm complete",
		"warmed", warmed,
		"duration", time.Since(begin),
	)
	return warmed, nil
}

// Invalidate delegates to the wrapped service.
func (s *LoggingDocumentService) Invalidate(ctx context.Context, url string) error {
	return s.next.Invalidate(ctx, url)
}
