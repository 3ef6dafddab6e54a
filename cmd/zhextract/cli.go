package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/zhextract"
	"github.com/fwojciec/zhextract/crawl"
	"github.com/fwojciec/zhextract/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Sources   zhextract.SourceService
	Entries   zhextract.EntryService
	Parser    zhextract.PageParser
	Harvester *crawl.Harvester

	// NewExporter returns an exporter writing into dir/name.
	NewExporter func(dir, name string) zhextract.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches and missing fields to stderr"`

	Parse   ParseCmd   `cmd:"" help:"Extract records from a saved HTML page"`
	Add     AddCmd     `cmd:"" help:"Add a source and harvest its pages"`
	List    ListCmd    `cmd:"" help:"List all sources"`
	Records RecordsCmd `cmd:"" help:"List records harvested for a source"`
	Export  ExportCmd  `cmd:"" help:"Export a source's answers as Markdown files"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a source and its records"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File    string `arg:"" type:"existingfile" help:"HTML file to parse"`
	Variant string `short:"V" default:"answers" enum:"answers,author,topic,collection,question" help:"Page layout (${enum})"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name        string        `arg:"" help:"Source name"`
	URL         string        `arg:"" help:"Page URL"`
	Variant     string        `short:"V" default:"answers" enum:"answers,author,topic,collection,question" help:"Page layout (${enum})"`
	Pages       int           `short:"n" default:"1" help:"Number of listing pages to harvest"`
	Force       bool          `short:"f" help:"Delete existing source first"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	Rate        float64       `default:"1" help:"Requests per second per domain (0 disables limiting)"`
	Timeout     time.Duration `default:"10s" help:"Per-request timeout"`
	Cookie      string        `env:"ZHEXTRACT_COOKIE" help:"Cookie header sent with each request"`
	Browser     bool          `short:"b" help:"Render pages in headless Chrome"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	Name string `arg:"" help:"Source name"`
	Kind string `short:"k" help:"Only show records of this kind"`
	Full bool   `help:"Show full record content"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name string `arg:"" help:"Source name"`
	Dir  string `arg:"" type:"path" help:"Output directory"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Source name"`
	Force bool   `help:"Confirm deletion"`
}

// findSource looks up a source by name, reporting a hint on stderr when
// it does not exist.
func findSource(deps *Dependencies, name string) (*zhextract.Source, error) {
	sources, err := deps.Sources.FindSources(deps.Ctx, zhextract.SourceFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zhextract.ErrorMessage(err))
		return nil, err
	}
	if len(sources) == 0 {
		fmt.Fprintf(deps.Stderr, "error: source %q not found. Use 'zhextract list' to see available sources.\n", name)
		return nil, zhextract.Errorf(zhextract.ENOTFOUND, "source %q not found", name)
	}
	return sources[0], nil
}
