package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/sitewalk/crawl"
	"github.com/fwojciec/sitewalk/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Crawler *crawl.Crawler

	// Store is nil unless --output was given.
	Store *fs.ListStore
}

// CrawlCmd crawls a site and prints what it found.
type CrawlCmd struct {
	URL string
}
