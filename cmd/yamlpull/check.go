// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/yamlpull/yamlpull"
)

// CheckCommand parses a set of files concurrently and reports the ones that
// are not well-formed YAML.
type CheckCommand struct {
	src     source
	log     *LoggerConfig
	printer Printer

	files       []string
	concurrency int
	comments    bool
}

// checkStats accumulates counts across concurrent checks.
type checkStats struct {
	files     atomic.Int64
	bytes     atomic.Int64
	documents atomic.Int64
	events    atomic.Int64
	failed    atomic.Int64
}

// Register is used to register the command to a parent command.
func (c *CheckCommand) Register(app *kingpin.Application, src source, logConfig *LoggerConfig, printer Printer) {
	c.src = src
	c.log = logConfig
	c.printer = printer

	cmd := app.Command("check", "Parse files and report the ones that fail.").Action(c.run)
	cmd.Arg("files", "YAML files to check.").Required().StringsVar(&c.files)
	cmd.Flag("concurrency", "How many files to parse at once.").Default("4").IntVar(&c.concurrency)
	cmd.Flag("comments", "Parse with comment preservation on.").BoolVar(&c.comments)
}

func (c *CheckCommand) run(_ *kingpin.ParseContext) error {
	if c.concurrency <= 0 {
		return errors.New("--concurrency must be positive")
	}
	logger := c.log.Logger()

	var stats checkStats
	reports := make([]string, len(c.files))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(c.concurrency)
	for i, path := range c.files {
		i, path := i, path
		g.Go(func() error {
			chunks, err := c.src.read(ctx, path)
			if err != nil {
				return err
			}
			stats.files.Inc()
			stats.bytes.Add(int64(chunksLen(chunks)))

			docs, events, err := checkChunks(chunks, parserOptions(c.comments, logger))
			stats.documents.Add(docs)
			stats.events.Add(events)
			if err != nil {
				stats.failed.Inc()
				reports[i] = path + ": " + yamlpull.FormatError(bytes.Join(chunks, nil), err)
				level.Warn(logger).Log("msg", "check failed", "file", path, "err", err)
				return nil
			}
			level.Debug(logger).Log("msg", "check passed", "file", path, "documents", docs, "events", events)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range reports {
		if r != "" {
			c.printer.PrintLine(r)
		}
	}
	c.printer.PrintLine(fmt.Sprintf("checked %s files (%s): %s documents, %s events, %d failed",
		humanize.Comma(stats.files.Load()),
		humanize.Bytes(uint64(stats.bytes.Load())),
		humanize.Comma(stats.documents.Load()),
		humanize.Comma(stats.events.Load()),
		stats.failed.Load()))

	if n := stats.failed.Load(); n > 0 {
		return errors.Errorf("%d of %d files failed", n, len(c.files))
	}
	return nil
}

// checkChunks reads every event of the input and counts documents and
// events up to the first error.
func checkChunks(chunks [][]byte, opts []yamlpull.Option) (documents, events int64, err error) {
	p, err := yamlpull.NewParserFromChunks(chunks, opts...)
	if err != nil {
		return 0, 0, err
	}
	for {
		ok, err := p.Read()
		if err != nil {
			return documents, events, err
		}
		if !ok {
			return documents, events, nil
		}
		events++
		if p.CurrentEventType() == yamlpull.DocumentStartEvent {
			documents++
		}
	}
}
