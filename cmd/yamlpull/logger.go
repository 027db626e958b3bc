// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// LoggerConfig builds the logfmt logger shared by all commands.
type LoggerConfig struct {
	level  string
	out    io.Writer
	logger log.Logger
}

// Register adds the --log.level flag and builds the logger before any
// command action runs.
func (c *LoggerConfig) Register(app *kingpin.Application, out io.Writer) {
	c.out = out
	app.Flag("log.level", "Only log messages with the given severity or above.").
		Default("info").
		EnumVar(&c.level, "debug", "info", "warn", "error")
	app.PreAction(c.setup)
}

func (c *LoggerConfig) setup(*kingpin.ParseContext) error {
	var allow level.Option
	switch c.level {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}
	c.logger = level.NewFilter(log.NewLogfmtLogger(log.NewSyncWriter(c.out)), allow)
	return nil
}

// Logger returns the configured logger, or a no-op logger before setup.
func (c *LoggerConfig) Logger() log.Logger {
	if c == nil || c.logger == nil {
		return log.NewNopLogger()
	}
	return c.logger
}
