// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/alecthomas/kingpin/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/yamlpull/yamlpull"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventsCommand prints the event stream of a YAML input.
type EventsCommand struct {
	src     source
	log     *LoggerConfig
	printer Printer

	file      string
	comments  bool
	output    string
	positions bool
}

// eventInfo is the JSON form of one event.
type eventInfo struct {
	Event    string    `json:"event"`
	Value    *string   `json:"value,omitempty"`
	Style    string    `json:"style,omitempty"`
	Tag      string    `json:"tag,omitempty"`
	Anchor   string    `json:"anchor,omitempty"`
	Implicit bool      `json:"implicit,omitempty"`
	Start    *position `json:"start,omitempty"`
	End      *position `json:"end,omitempty"`
}

// Register is used to register the command to a parent command.
func (c *EventsCommand) Register(app *kingpin.Application, src source, logConfig *LoggerConfig, printer Printer) {
	c.src = src
	c.log = logConfig
	c.printer = printer

	cmd := app.Command("events", "Print the event stream in test-suite notation.").Action(c.run)
	cmd.Arg("file", "YAML file to read; stdin when omitted or '-'.").StringVar(&c.file)
	cmd.Flag("comments", "Report comments as events.").BoolVar(&c.comments)
	cmd.Flag("output", "Output format.").Default("text").EnumVar(&c.output, "text", "json")
	cmd.Flag("positions", "Include the start and end position of every event.").BoolVar(&c.positions)
}

func (c *EventsCommand) run(_ *kingpin.ParseContext) error {
	chunks, err := c.src.read(context.Background(), c.file)
	if err != nil {
		return err
	}
	p, err := yamlpull.NewParserFromChunks(chunks, parserOptions(c.comments, c.log.Logger())...)
	if err != nil {
		return err
	}
	for {
		ok, err := p.Read()
		if err != nil {
			return sourceError(chunks, err)
		}
		if !ok {
			return nil
		}
		line, err := c.format(p)
		if err != nil {
			return err
		}
		c.printer.PrintLine(line)
	}
}

func (c *EventsCommand) format(p *yamlpull.Parser) (string, error) {
	if c.output == "text" {
		line := p.FormatEvent()
		if c.positions {
			line += "\t" + span(p.CurrentMark(), p.CurrentEndMark())
		}
		return line, nil
	}

	info := eventInfo{Event: p.CurrentEventType().String()}
	switch p.CurrentEventType() {
	case yamlpull.ScalarEvent:
		v := string(p.CurrentScalar())
		info.Value = &v
		info.Style = p.Event().ScalarStyle().String()
	case yamlpull.CommentEvent:
		v := string(p.CurrentScalar())
		info.Value = &v
	case yamlpull.DocumentStartEvent, yamlpull.DocumentEndEvent:
		info.Implicit = p.IsImplicit()
	}
	info.Tag = p.ResolvedTag()
	if a, ok := p.CurrentAnchor(); ok {
		info.Anchor = a.Name
	}
	if c.positions {
		info.Start = newPosition(p.CurrentMark())
		info.End = newPosition(p.CurrentEndMark())
	}
	b, err := json.Marshal(info)
	return string(b), err
}
