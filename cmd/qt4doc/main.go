package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	qtdoc "github.com/jztan/qt4-doc-mcp-server"
	"github.com/jztan/qt4-doc-mcp-server/docs"
	"github.com/jztan/qt4-doc-mcp-server/fs"
	"github.com/jztan/qt4-doc-mcp-server/goquery"
	"github.com/jztan/qt4-doc-mcp-server/htmltomarkdown"
	qtslog "github.com/jztan/qt4-doc-mcp-server/slog"
	"github.com/jztan/qt4-doc-mcp-server/sqlite"
	"github.com/jztan/qt4-doc-mcp-server/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config resolved from the environment. Set before calling Run()
	// to override.
	Config *Config

	// Services for end-to-end testing.
	DocumentService qtdoc.DocumentService
	SearchService   qtdoc.SearchService
	IndexService    qtdoc.IndexService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("qt4doc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'qt4doc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if m.Config == nil {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		m.Config = cfg
	}

	// Search queries only the published index; every other command walks
	// the corpus and needs its root.
	if cmd != "search" && m.Config.DocBase == "" {
		fmt.Fprintln(stderr, "Hint: Set QT_DOC_BASE in .env or the environment to your qt-4.8 doc directory")
		return fmt.Errorf("QT_DOC_BASE not configured")
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	deps.Config = m.Config
	deps.Logger = logger

	if err := m.wireServices(cli, logger); err != nil {
		return err
	}
	deps.Documents = m.DocumentService
	deps.Search = m.SearchService
	deps.Index = m.IndexService

	return kongCtx.Run(deps)
}

// wireServices constructs the service graph from the resolved config.
func (m *Main) wireServices(cli *CLI, logger *slog.Logger) error {
	if err := os.MkdirAll(m.Config.CacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory %q: %w", m.Config.CacheDir, err)
	}

	store, err := fs.NewDocStore(m.Config.CacheDir)
	if err != nil {
		return fmt.Errorf("failed to open markdown store at %q: %w", m.Config.CacheDir, err)
	}

	resolver := qtdoc.NewResolver()
	extractor := goquery.NewExtractor(resolver)
	extractor.Fallback = trafilatura.NewExtractor()

	docService := &docs.Service{
		DocBase:   m.Config.DocBase,
		Resolver:  resolver,
		Extractor: extractor,
		Converter: htmltomarkdown.NewConverter(),
		Store:     store,
		Cache:     qtdoc.NewLRU(m.Config.LRUSize),
		Logger:    logger,
	}
	if cli.Warm.Concurrency > 0 {
		docService.Concurrency = cli.Warm.Concurrency
	}

	m.DocumentService = qtslog.NewLoggingDocumentService(docService, logger)
	m.SearchService = qtslog.NewLoggingSearchService(sqlite.NewSearchService(m.Config.IndexPath), logger)
	m.IndexService = sqlite.NewIndexService(m.Config.IndexPath, extractor)

	return nil
}

// Config holds the settings resolved from the environment.
type Config struct {
	// DocBase is the root of the local qt-4.8 HTML corpus.
	DocBase string

	// CacheDir holds the persistent Markdown store.
	CacheDir string

	// IndexPath is the SQLite FTS index file.
	IndexPath string

	// LRUSize caps the in-memory document cache.
	LRUSize int
}

// LoadConfig reads settings from .env (when present) and the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DocBase:   os.Getenv("QT_DOC_BASE"),
		CacheDir:  os.Getenv("QT_DOC_CACHE_DIR"),
		IndexPath: os.Getenv("QT_DOC_INDEX"),
		LRUSize:   defaultLRUSize,
	}

	if v := os.Getenv("QT_DOC_LRU_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid QT_DOC_LRU_SIZE %q: expected a positive integer", v)
		}
		cfg.LRUSize = n
	}

	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(defaultDataDir(), "cache")
	}
	if cfg.IndexPath == "" {
		cfg.IndexPath = filepath.Join(defaultDataDir(), "search.db")
	}

	return cfg, nil
}

const defaultLRUSize = 128

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qt4doc"
	}
	return filepath.Join(home, ".qt4doc")
}
