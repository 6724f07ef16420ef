package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/navsearch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Source    navsearch.Source
	Builder   navsearch.IndexBuilder
	Navigator navsearch.Navigator
	Snapshots navsearch.SnapshotService
	Stored    navsearch.IndexBuilder // latest snapshot, set with Snapshots
}

// SiteFlags select and tune the documentation site source.
type SiteFlags struct {
	BaseURL   string        `name:"base-url" env:"NAVSEARCH_BASE_URL" help:"Base URL of the documentation site"`
	Dir       string        `name:"dir" env:"NAVSEARCH_DIR" help:"Local checkout of the documentation site"`
	Registry  string        `name:"registry" env:"NAVSEARCH_REGISTRY" default:"/navigation/nav.json" help:"Registry path relative to the site root"`
	Timeout   time.Duration `default:"10s" help:"HTTP request timeout"`
	UserAgent string        `name:"user-agent" env:"NAVSEARCH_USER_AGENT" default:"navsearch" help:"User-Agent header sent to the site"`
	BatchSize int           `name:"batch-size" default:"5" help:"Pages fetched concurrently"`
	RateLimit float64       `name:"rate-limit" help:"Maximum requests per second to the site (0 disables)"`
	Render    bool          `help:"Render HTML pages in headless Chrome"`
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"JSON file with flag defaults" placeholder:"PATH"`
	DB      string          `name:"db" env:"NAVSEARCH_DB" help:"SQLite database for index snapshots"`
	Verbose int             `short:"v" type:"counter" help:"Log more (-v info, -vv debug)"`
	Site    SiteFlags       `embed:""`

	Index     IndexCmd     `cmd:"" help:"Build the search index and optionally store a snapshot"`
	Search    SearchCmd    `cmd:"" help:"Search the documentation"`
	Palette   PaletteCmd   `cmd:"" help:"Drive the search palette from events on stdin"`
	Navigate  NavigateCmd  `cmd:"" help:"Resolve a route such as '#guides/install'"`
	Snapshots SnapshotsCmd `cmd:"" help:"List or delete stored index snapshots"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search query"`
	Limit   int    `short:"n" default:"20" help:"Maximum number of results"`
	Offline bool   `help:"Search the latest snapshot in --db instead of the site"`
}

// PaletteCmd is the "palette" subcommand.
type PaletteCmd struct {
	Offline bool          `help:"Search the latest snapshot in --db instead of the site"`
	Delay   time.Duration `default:"1s" help:"Delay before the background index build starts"`
}

// NavigateCmd is the "navigate" subcommand.
type NavigateCmd struct {
	Route string `arg:"" help:"Route hash, e.g. '#guides/install#requirements'"`
}

// SnapshotsCmd is the "snapshots" subcommand.
type SnapshotsCmd struct {
	Delete string `help:"Delete the snapshot with this ID" placeholder:"ID"`
	Limit  int    `short:"n" default:"10" help:"Maximum number of snapshots to list"`
}
