package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/msousa/jango"
	"github.com/msousa/jango/chart"
	"github.com/msousa/jango/crawl"
	"github.com/msousa/jango/fs"
	"github.com/msousa/jango/gemini"
	"github.com/msousa/jango/goquery"
	"github.com/msousa/jango/htmltomarkdown"
	jangohttp "github.com/msousa/jango/http"
	"github.com/msousa/jango/rag"
	"github.com/msousa/jango/readability"
	jangoslog "github.com/msousa/jango/slog"
	"github.com/msousa/jango/sqlite"
	"github.com/msousa/jango/trafilatura"
	"google.golang.org/genai"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SiteService     jango.SiteService
	DocumentService jango.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jango"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jango --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set JANGO_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.SiteService = sqlite.NewSiteService(m.DB)
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.DB = m.DB
	deps.Sites = m.SiteService
	deps.Documents = m.DocumentService
	deps.Sitemaps = jangohttp.NewSitemapService(nil)

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	if cmd == "scrape" {
		limiter := crawl.NewDomainLimiter(cli.Scrape.RPS)

		scraper := &crawl.Scraper{
			Sitemaps:  jangoslog.NewLoggingSitemapService(deps.Sitemaps, logger),
			Fetcher:   jangohttp.NewFetcher(),
			Converter: htmltomarkdown.NewConverter(),
			Documents: m.DocumentService,
			Limiter:   limiter,
			Extractors: func(site *jango.Site) []jango.Extractor {
				extractors := []jango.Extractor{}
				if site.ContentSelector != "" {
					extractors = append(extractors, goquery.NewExtractor(site.ContentSelector))
				}
				return append(extractors, trafilatura.NewExtractor(), readability.NewExtractor())
			},
			Links:       goquery.SelectorForURL,
			Concurrency: cli.Scrape.Concurrency,
		}
		deps.Scraper = jangoslog.NewLoggingScraper(scraper, logger)
	}

	if cmd == "serve" || cmd == "ask" || cmd == "index" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		index, err := sqlite.NewIndexService(m.DB)
		if err != nil {
			return fmt.Errorf("failed to load index: %w", err)
		}

		embedder := gemini.NewEmbedder(client)
		generator := gemini.NewGenerator(client)

		switch cmd {
		case "index":
			deps.Indexer = &rag.Indexer{
				Documents: m.DocumentService,
				Embedder:  embedder,
				Index:     index,
			}
		case "serve", "ask":
			tokens, err := gemini.NewTokenCounter(tokenizerModel)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}

			svc := &rag.Service{
				Index:     index,
				Embedder:  embedder,
				Generator: generator,
				Documents: m.DocumentService,
				Tokens:    tokens,
			}
			if cmd == "serve" {
				svc.Renderer = chart.NewRenderer()
				svc.Charts = fs.NewChartStore(cli.Serve.ChartDir, "/charts")
				deps.ChartDir = cli.Serve.ChartDir
				deps.Answerer = jangoslog.NewLoggingAnswerer(svc, logger)
			} else {
				deps.Answerer = svc
			}
			deps.Health = svc
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for local token counting. The generation model
// itself is not yet supported by google.golang.org/genai/tokenizer.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("JANGO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "jango.db"
	}
	dir := filepath.Join(home, ".jango")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "jango.db")
}
