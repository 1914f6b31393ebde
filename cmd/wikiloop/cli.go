package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiloop"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Journeys wikiloop.JourneyService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout   time.Duration `default:"10s" help:"Timeout for a single page fetch"`
	UserAgent string        `name:"user-agent" help:"User-Agent header for page requests"`
	Rate      float64       `default:"0" help:"Maximum requests per second per host (0 disables throttling)"`
	Browser   bool          `help:"Fetch pages with headless Chrome"`
	Domain    string        `default:"wikipedia.org" help:"Domain that article pages must belong to"`
	LogFormat string        `name:"log-format" enum:"text,json" default:"text" help:"Log record format (text, json)"`
	LogFile   string        `name:"log-file" type:"path" help:"Write logs to a file instead of stderr"`

	Serve  ServeCmd  `cmd:"" help:"Serve the journey API over HTTP"`
	Follow FollowCmd `cmd:"" help:"Follow links from one article to another"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":5000" help:"HTTP listen address"`
}

// FollowCmd is the "follow" subcommand.
type FollowCmd struct {
	Start  string `arg:"" help:"URL of the first article"`
	Stop   string `arg:"" help:"URL of the goal article"`
	Format string `short:"f" enum:"text,json,xml" default:"text" help:"Output format (text, json, xml)"`
}
