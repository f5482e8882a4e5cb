// Package fs persists converted documents on disk. The store is content
// addressed by a stable hash of the canonical URL and sharded into
// subdirectories to bound per-directory file counts.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/jztan/qt4-doc-mcp-server/bloom"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// Ensure DocStore implements qtdoc.DocumentStore at compile time.
var _ qtdoc.DocumentStore = (*DocStore)(nil)

// Expected store size used to dimension the presence filter. The corpus
// holds a few thousand pages; sizing generously keeps the false positive
// rate negligible.
const (
	filterExpectedEntries   = 16384
	filterFalsePositiveRate = 0.01
)

// DocStore is the persistent tier of the document cache. Entries survive
// restarts and are never evicted automatically. A Bloom filter over entry
// hashes, seeded from the shard directories at startup, lets Read skip the
// disk for keys that were never persisted.
type DocStore struct {
	baseDir string
	filter  *bloom.Filter
}

// NewDocStore creates a DocStore rooted at baseDir and seeds the presence
// filter from any entries already on disk. The directory is created lazily
// on first write.
func NewDocStore(baseDir string) (*DocStore, error) {
	s := &DocStore{
		baseDir: baseDir,
		filter:  bloom.NewFilter(filterExpectedEntries, filterFalsePositiveRate),
	}
	if err := s.seedFilter(); err != nil {
		return nil, err
	}
	return s, nil
}

// seedFilter records the hash of every persisted entry so restarts keep the
// warm cache effective.
func (s *DocStore) seedFilter() error {
	shards, err := os.ReadDir(s.baseDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, shard := range shards {
		if !shard.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(s.baseDir, shard.Name()))
		if err != nil {
			return err
		}
		for _, e := range entries {
			if name, ok := strings.CutSuffix(e.Name(), ".json"); ok {
				s.filter.Add(name)
			}
		}
	}
	return nil
}

// entryHash returns the stable hash addressing a canonical URL's entry.
func entryHash(canonicalURL string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(canonicalURL))
}

// entryPath returns the sharded location of a canonical URL's entry:
// <base>/<h[:2]>/<h>.json with h the xxhash64 hex of the URL.
func (s *DocStore) entryPath(canonicalURL string) string {
	h := entryHash(canonicalURL)
	return filepath.Join(s.baseDir, h[:2], h+".json")
}

// Read returns the stored document for a canonical URL.
func (s *DocStore) Read(ctx context.Context, canonicalURL string) (*qtdoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !s.filter.MayHave(entryHash(canonicalURL)) {
		return nil, qtdoc.Errorf(qtdoc.ENOTFOUND, "no cached document for %q", canonicalURL)
	}

	data, err := os.ReadFile(s.entryPath(canonicalURL))
	if os.IsNotExist(err) {
		return nil, qtdoc.Errorf(qtdoc.ENOTFOUND, "no cached document for %q", canonicalURL)
	}
	if err != nil {
		return nil, err
	}

	var doc qtdoc.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt cache entry for %q: %w", canonicalURL, err)
	}
	return &doc, nil
}

// Write persists a document atomically: the entry is written to a temporary
// file in the same shard and renamed into place, so a concurrent duplicate
// write of identical content is last-writer-wins and never observed
// half-written.
func (s *DocStore) Write(ctx context.Context, canonicalURL string, doc *qtdoc.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	target := s.entryPath(canonicalURL)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, target); err != nil {
		return err
	}

	s.filter.Add(entryHash(canonicalURL))
	return nil
}

// Delete removes the stored entry for a canonical URL, if present.
func (s *DocStore) Delete(ctx context.Context, canonicalURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(s.entryPath(canonicalURL))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
