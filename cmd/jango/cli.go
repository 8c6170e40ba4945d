package main

import (
	"context"
	"io"

	"github.com/msousa/jango"
	"github.com/msousa/jango/sqlite"
)

// Indexer rebuilds the vector index. Satisfied by *rag.Indexer.
type Indexer interface {
	Rebuild(ctx context.Context) (int, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Sites     jango.SiteService
	Documents jango.DocumentService
	Sitemaps  jango.SitemapService
	Scraper   jango.Scraper
	Indexer   Indexer
	Answerer  jango.Answerer
	Health    jango.HealthChecker
	ChartDir  string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP question answering service"`
	Scrape ScrapeCmd `cmd:"" help:"Scrape registered sites into the document store"`
	Index  IndexCmd  `cmd:"" help:"Rebuild the vector index from stored documents"`
	Sites  SitesCmd  `cmd:"" help:"Manage registered sites"`
	Ask    AskCmd    `cmd:"" help:"Ask a one-off question from the command line"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr     string `default:":8080" help:"HTTP listen address"`
	ChartDir string `name:"chart-dir" default:"charts" help:"Directory for generated chart images"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Site        string  `arg:"" optional:"" help:"Site name (scrapes every registered site when omitted)"`
	Concurrency int     `short:"c" default:"10" help:"Concurrent fetch limit"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second per domain"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct{}

// SitesCmd groups the site management subcommands.
type SitesCmd struct {
	Add    SitesAddCmd    `cmd:"" help:"Register a site"`
	List   SitesListCmd   `cmd:"" help:"List registered sites"`
	Delete SitesDeleteCmd `cmd:"" help:"Delete a site and its documents"`
}

// SitesAddCmd is the "sites add" subcommand.
type SitesAddCmd struct {
	Name     string   `arg:"" help:"Site name"`
	URL      string   `arg:"" help:"Site base URL"`
	Selector string   `short:"s" help:"CSS selector for the main content region"`
	Filter   []string `short:"F" name:"filter" help:"Limit scraped URLs by regex (repeatable)"`
}

// SitesListCmd is the "sites list" subcommand.
type SitesListCmd struct{}

// SitesDeleteCmd is the "sites delete" subcommand.
type SitesDeleteCmd struct {
	Name string `arg:"" help:"Site name"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about the Angolan energy sector"`
}
