package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
)

// ListPages returns the corpus-relative paths of every HTML page under
// docBase in lexical order, using forward slashes.
func ListPages(docBase string) ([]string, error) {
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

// ReadPage reads a corpus HTML file as text. The corpus is UTF-8 with a
// handful of Latin-1 stragglers, which are transcoded byte by byte.
func ReadPage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}
