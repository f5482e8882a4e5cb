package sqlite

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Ensure IndexService implements qtdoc.IndexService at compile time.
var _ qtdoc.IndexService = (*IndexService)(nil)

// IndexService builds the FTS5 search index from the local HTML corpus.
// A build writes into a temporary database next to the target path and
// renames it into place once complete, so a crash mid-build never corrupts
// the queryable index.
type IndexService struct {
	// IndexPath is the location of the published index database.
	IndexPath string

	// Fields extracts the indexed text fields from raw page HTML.
	Fields qtdoc.FieldExtractor
}

// NewIndexService creates an IndexService publishing to indexPath.
func NewIndexService(indexPath string, fields qtdoc.FieldExtractor) *IndexService {
	return &IndexService{IndexPath: indexPath, Fields: fields}
}

// Build walks the corpus under docBase in lexical path order and writes one
// record per page. The build is all-or-nothing: a single unparseable page
// aborts it. Without force, an existing index whose fingerprint matches the
// current corpus is left in place.
func (s *IndexService) Build(ctx context.Context, docBase string, force bool, progress qtdoc.BuildProgressFunc) (*qtdoc.BuildStats, error) {
	begin := time.Now()

	pages, err := collectPages(docBase)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, qtdoc.Errorf(qtdoc.ENOTFOUND, "no HTML files found under %q", docBase)
	}

	fingerprint, err := corpusFingerprint(docBase, pages)
	if err != nil {
		return nil, err
	}

	if !force {
		if meta, err := s.Meta(ctx); err == nil && meta.Fingerprint == fingerprint {
			return &qtdoc.BuildStats{
				Indexed:     meta.PageCount,
				Reused:      true,
				Duration:    time.Since(begin),
				Fingerprint: fingerprint,
				BuildID:     meta.BuildID,
			}, nil
		}
	}

	tmpPath := s.IndexPath + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.IndexPath), 0o755); err != nil {
		return nil, err
	}
	removeIndexFiles(tmpPath)

	stats, err := s.buildInto(ctx, tmpPath, docBase, pages, fingerprint, progress)
	if err != nil {
		removeIndexFiles(tmpPath)
		return nil, err
	}

	// Atomic publish: queries never observe a half-built index.
	if err := os.Rename(tmpPath, s.IndexPath); err != nil {
		removeIndexFiles(tmpPath)
		return nil, err
	}

	stats.Duration = time.Since(begin)
	return stats, nil
}

func (s *IndexService) buildInto(ctx context.Context, path, docBase string, pages []string, fingerprint string, progress qtdoc.BuildProgressFunc) (*qtdoc.BuildStats, error) {
	db := NewDB(path)
	if err := db.Open(); err != nil {
		return nil, err
	}
	defer db.Close()

	if err := db.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create index schema: %w", err)
	}

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO docs (title, headings, body, url, rel_path)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer insert.Close()

	stats := &qtdoc.BuildStats{
		Fingerprint: fingerprint,
		BuildID:     uuid.New().String(),
	}

	for i, relPath := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(qtdoc.BuildProgress{Current: i + 1, Total: len(pages), RelPath: relPath})
		}

		html, err := os.ReadFile(filepath.Join(docBase, filepath.FromSlash(relPath)))
		if err != nil {
			return nil, err
		}

		fields, err := s.Fields.ExtractSearchFields(string(html))
		if err != nil {
			// All-or-nothing: an unparseable page aborts the whole build
			// rather than silently dropping content.
			return nil, qtdoc.Errorf(qtdoc.EPARSE, "failed to index %s: %s", relPath, qtdoc.ErrorMessage(err))
		}

		if fields.Title == "" && fields.Body == "" {
			stats.Skipped++
			continue
		}

		if _, err := insert.ExecContext(ctx,
			fields.Title, fields.Headings, fields.Body,
			qtdoc.CanonicalURL(relPath), relPath,
		); err != nil {
			return nil, err
		}
		stats.Indexed++
	}

	meta := []struct{ key, value string }{
		{"page_count", strconv.Itoa(stats.Indexed)},
		{"built_at", time.Now().UTC().Format(time.RFC3339)},
		{"fingerprint", fingerprint},
		{"build_id", stats.BuildID},
		{"doc_base", docBase},
	}
	for _, m := range meta {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", m.key, m.value,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// Compaction pass before the index is considered query-ready.
	if _, err := db.ExecContext(ctx, "INSERT INTO docs(docs) VALUES('optimize')"); err != nil {
		return nil, fmt.Errorf("failed to optimize index: %w", err)
	}
	if _, err := db.ExecContext(ctx, "VACUUM"); err != nil {
		return nil, fmt.Errorf("failed to compact index: %w", err)
	}

	return stats, nil
}

// Meta returns metadata of the published index.
func (s *IndexService) Meta(ctx context.Context) (*qtdoc.IndexMeta, error) {
	if _, err := os.Stat(s.IndexPath); os.IsNotExist(err) {
		return nil, qtdoc.Errorf(qtdoc.EUNAVAILABLE, "search index not found at %q", s.IndexPath)
	}

	db := NewDB(s.IndexPath)
	if err := db.Open(); err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return nil, qtdoc.Errorf(qtdoc.EUNAVAILABLE, "search index not initialized")
		}
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	meta := &qtdoc.IndexMeta{
		Fingerprint: values["fingerprint"],
		BuildID:     values["build_id"],
		DocBase:     values["doc_base"],
	}
	meta.PageCount, _ = strconv.Atoi(values["page_count"])
	if builtAt, err := time.Parse(time.RFC3339, values["built_at"]); err == nil {
		meta.BuiltAt = builtAt
	}

	return meta, nil
}

// removeIndexFiles removes a database file along with any WAL sidecars.
func removeIndexFiles(path string) {
	os.Remove(path)
	os.Remove(path + "-wal")
	os.Remove(path + "-shm")
}

// collectPages returns the corpus-relative paths of every HTML page under
// docBase in lexical order, the stable enumeration required for
// reproducible builds.
func collectPages(docBase string) ([]string, error) {
	info, err := os.Stat(docBase)
	if err != nil || !info.IsDir() {
		return nil, qtdoc.Errorf(qtdoc.ENOTFOUND, "documentation base directory not found: %q", docBase)
	}

	var pages []string
	err = filepath.WalkDir(docBase, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		rel, err := filepath.Rel(docBase, p)
		if err != nil {
			return err
		}
		pages = append(pages, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(pages)
	return pages, nil
}

// corpusFingerprint hashes the sorted page paths together with their content
// hashes. Two identical corpus snapshots always produce the same value.
func corpusFingerprint(docBase string, pages []string) (string, error) {
	digest := xxhash.New()
	for _, relPath := range pages {
		content, err := os.ReadFile(filepath.Join(docBase, filepath.FromSlash(relPath)))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(digest, "%s\x00%016x\n", relPath, xxhash.Sum64(content))
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
