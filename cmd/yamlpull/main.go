// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// The yamlpull command shows how the yamlpull parser sees a YAML stream:
// its tokens, its events, the values it decodes to, and whether a set of
// files parses at all. It is a tool for testing and debugging the library.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/spf13/afero"
)

const version = "0.1.0"

func main() {
	app := kingpin.New("yamlpull", "Inspect how yamlpull tokenizes, parses and decodes YAML.")
	app.Version(version)
	registerCommands(app, afero.NewOsFs(), os.Stdin, NewWriterPrinter(os.Stdout), os.Stderr)
	kingpin.MustParse(app.Parse(os.Args[1:]))
}

// registerCommands wires every command into app. Commands read files from
// fs, or from stdin when no file is named, and print through printer.
func registerCommands(app *kingpin.Application, fs afero.Fs, stdin io.Reader, printer Printer, logOut io.Writer) {
	logConfig := &LoggerConfig{}
	src := source{fs: fs, stdin: stdin}
	var (
		eventsCommand EventsCommand
		tokensCommand TokensCommand
		decodeCommand DecodeCommand
		checkCommand  CheckCommand
	)

	// Register logger first so its PreAction runs before others
	logConfig.Register(app, logOut)

	eventsCommand.Register(app, src, logConfig, printer)
	tokensCommand.Register(app, src, logConfig, printer)
	decodeCommand.Register(app, src, logConfig, printer)
	checkCommand.Register(app, src, logConfig, printer)
}
