// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/alecthomas/kingpin/v2"

	"github.com/yamlpull/yamlpull/internal/libyaml"
)

// TokensCommand prints the token stream of a YAML input.
type TokensCommand struct {
	src     source
	log     *LoggerConfig
	printer Printer

	file      string
	comments  bool
	output    string
	positions bool
}

// tokenInfo is the JSON form of one token.
type tokenInfo struct {
	Token string    `json:"token"`
	Value *string   `json:"value,omitempty"`
	Style string    `json:"style,omitempty"`
	Start *position `json:"start,omitempty"`
	End   *position `json:"end,omitempty"`
}

// Register is used to register the command to a parent command.
func (c *TokensCommand) Register(app *kingpin.Application, src source, logConfig *LoggerConfig, printer Printer) {
	c.src = src
	c.log = logConfig
	c.printer = printer

	cmd := app.Command("tokens", "Print the token stream.").Action(c.run)
	cmd.Arg("file", "YAML file to read; stdin when omitted or '-'.").StringVar(&c.file)
	cmd.Flag("comments", "Report comments as tokens.").BoolVar(&c.comments)
	cmd.Flag("output", "Output format.").Default("text").EnumVar(&c.output, "text", "json")
	cmd.Flag("positions", "Include the start and end position of every token.").BoolVar(&c.positions)
}

func (c *TokensCommand) run(_ *kingpin.ParseContext) error {
	chunks, err := c.src.read(context.Background(), c.file)
	if err != nil {
		return err
	}
	opts, err := libyaml.ApplyOptions(parserOptions(c.comments, c.log.Logger())...)
	if err != nil {
		return err
	}
	pool := libyaml.NewScalarPool()
	s := libyaml.NewScanner(libyaml.NewChunkedCursor(chunks), pool, opts)
	for {
		t, err := s.Next()
		if err != nil {
			return sourceError(chunks, err)
		}
		line, err := c.format(&t)
		pool.Return(t.TakeScalar())
		pool.ReturnTag(t.TakeTag())
		if err != nil {
			return err
		}
		c.printer.PrintLine(line)
		if t.Type == libyaml.STREAM_END_TOKEN {
			return nil
		}
	}
}

func (c *TokensCommand) format(t *libyaml.Token) (string, error) {
	if c.output == "text" {
		line := libyaml.FormatToken(t)
		if c.positions {
			line += "\t" + span(t.StartMark, t.EndMark)
		}
		return line, nil
	}

	info := tokenInfo{Token: t.Type.String()}
	switch t.Type {
	case libyaml.SCALAR_TOKEN:
		v := string(t.Value())
		info.Value = &v
		info.Style = t.Style.String()
	case libyaml.ALIAS_TOKEN, libyaml.ANCHOR_TOKEN, libyaml.COMMENT_TOKEN:
		v := string(t.Value())
		info.Value = &v
	case libyaml.TAG_TOKEN, libyaml.TAG_DIRECTIVE_TOKEN:
		v := t.Tag().String()
		info.Value = &v
	case libyaml.VERSION_DIRECTIVE_TOKEN:
		v := t.Version().String()
		info.Value = &v
	}
	if c.positions {
		info.Start = newPosition(t.StartMark)
		info.End = newPosition(t.EndMark)
	}
	b, err := json.Marshal(info)
	return string(b), err
}
