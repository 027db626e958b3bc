// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"math"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/yamlpull/yamlpull"
)

// DecodeCommand decodes every document of a YAML input and prints it as
// JSON, one document per line.
type DecodeCommand struct {
	src     source
	log     *LoggerConfig
	printer Printer

	file   string
	pretty bool
}

// Register is used to register the command to a parent command.
func (c *DecodeCommand) Register(app *kingpin.Application, src source, logConfig *LoggerConfig, printer Printer) {
	c.src = src
	c.log = logConfig
	c.printer = printer

	cmd := app.Command("decode", "Decode every document and print it as JSON.").Action(c.run)
	cmd.Arg("file", "YAML file to read; stdin when omitted or '-'.").StringVar(&c.file)
	cmd.Flag("pretty", "Indent the JSON output.").BoolVar(&c.pretty)
}

func (c *DecodeCommand) run(_ *kingpin.ParseContext) error {
	chunks, err := c.src.read(context.Background(), c.file)
	if err != nil {
		return err
	}
	docs, err := yamlpull.DecodeAll(bytes.Join(chunks, nil), yamlpull.WithLogger(c.log.Logger()))
	if err != nil {
		return sourceError(chunks, err)
	}
	level.Debug(c.log.Logger()).Log("msg", "decoded", "documents", len(docs))

	var buf bytes.Buffer
	for _, doc := range docs {
		b, err := json.Marshal(jsonValue(doc))
		if err != nil {
			return errors.Wrap(err, "encode document")
		}
		if c.pretty {
			buf.Reset()
			if err := stdjson.Indent(&buf, b, "", "  "); err != nil {
				return errors.Wrap(err, "indent document")
			}
			b = buf.Bytes()
		}
		c.printer.PrintLine(string(b))
	}
	return nil
}

// jsonValue replaces the floats JSON cannot represent with their YAML
// spelling.
func jsonValue(v any) any {
	switch v := v.(type) {
	case float64:
		switch {
		case math.IsNaN(v):
			return ".nan"
		case math.IsInf(v, 1):
			return ".inf"
		case math.IsInf(v, -1):
			return "-.inf"
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = jsonValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = jsonValue(e)
		}
		return out
	}
	return v
}
