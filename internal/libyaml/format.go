// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Text renderings of tokens and events for tests and the CLI. Events use the
// notation of the YAML test suite.

package libyaml

import (
	"strings"
)

var valueEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\t", `\t`,
)

// FormatEvent renders the current event, e.g. "=VAL &a <tag:yaml.org,2002:str> :text".
// Comment events render as "=COM text".
func (p *Parser) FormatEvent() string {
	e := &p.event
	var b strings.Builder
	writeProps := func() {
		if !e.Anchor.IsZero() {
			b.WriteString(" &")
			b.WriteString(e.Anchor.Name)
		}
		if e.Tag != nil {
			b.WriteString(" <")
			b.WriteString(p.ResolvedTag())
			b.WriteString(">")
		}
	}

	switch e.Type {
	case STREAM_START_EVENT:
		b.WriteString("+STR")
	case STREAM_END_EVENT:
		b.WriteString("-STR")
	case DOCUMENT_START_EVENT:
		b.WriteString("+DOC")
		if !e.Implicit {
			b.WriteString(" ---")
		}
	case DOCUMENT_END_EVENT:
		b.WriteString("-DOC")
		if !e.Implicit {
			b.WriteString(" ...")
		}
	case ALIAS_EVENT:
		b.WriteString("=ALI *")
		b.WriteString(e.Anchor.Name)
	case SCALAR_EVENT:
		b.WriteString("=VAL")
		writeProps()
		switch e.ScalarStyle() {
		case PLAIN_SCALAR_STYLE:
			b.WriteString(" :")
		case LITERAL_SCALAR_STYLE:
			b.WriteString(" |")
		case FOLDED_SCALAR_STYLE:
			b.WriteString(" >")
		case SINGLE_QUOTED_SCALAR_STYLE:
			b.WriteString(" '")
		case DOUBLE_QUOTED_SCALAR_STYLE:
			b.WriteString(` "`)
		}
		valueEscaper.WriteString(&b, string(e.Value()))
	case SEQUENCE_START_EVENT:
		b.WriteString("+SEQ")
		if e.SequenceStyle() == FLOW_SEQUENCE_STYLE {
			b.WriteString(" []")
		}
		writeProps()
	case SEQUENCE_END_EVENT:
		b.WriteString("-SEQ")
	case MAPPING_START_EVENT:
		b.WriteString("+MAP")
		if e.MappingStyle() == FLOW_MAPPING_STYLE {
			b.WriteString(" {}")
		}
		writeProps()
	case MAPPING_END_EVENT:
		b.WriteString("-MAP")
	case COMMENT_EVENT:
		b.WriteString("=COM ")
		valueEscaper.WriteString(&b, string(e.Value()))
	}
	return b.String()
}

// FormatEvents parses input and renders every event, one per element.
func FormatEvents(input []byte, opts ...Option) ([]string, error) {
	p, err := NewParser(input, opts...)
	if err != nil {
		return nil, err
	}
	var events []string
	for {
		ok, err := p.Read()
		if err != nil {
			return events, err
		}
		if !ok {
			return events, nil
		}
		events = append(events, p.FormatEvent())
	}
}

// FormatToken renders a token as its type name followed by its payload.
func FormatToken(t *Token) string {
	var b strings.Builder
	b.WriteString(t.Type.String())
	switch t.Type {
	case VERSION_DIRECTIVE_TOKEN:
		b.WriteByte(' ')
		b.WriteString(t.version.String())
	case TAG_DIRECTIVE_TOKEN, TAG_TOKEN:
		b.WriteByte(' ')
		b.Write(t.tag.Handle())
		b.WriteByte(' ')
		b.Write(t.tag.Suffix())
	case SCALAR_TOKEN:
		b.WriteByte(' ')
		b.WriteString(t.Style.String())
		b.WriteByte(' ')
		valueEscaper.WriteString(&b, string(t.Value()))
	case ALIAS_TOKEN, ANCHOR_TOKEN, COMMENT_TOKEN:
		b.WriteByte(' ')
		valueEscaper.WriteString(&b, string(t.Value()))
	}
	return b.String()
}

// FormatTokens scans input and renders every token, one per element.
func FormatTokens(input []byte, opts ...Option) ([]string, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	pool := NewScalarPool()
	s := NewScanner(NewByteCursor(input), pool, o)
	var tokens []string
	for {
		t, err := s.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, FormatToken(&t))
		done := t.Type == STREAM_END_TOKEN
		t.release(pool)
		if done {
			return tokens, nil
		}
	}
}
