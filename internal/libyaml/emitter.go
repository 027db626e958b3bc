// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Emitter stage: writes an event stream back out as block-style YAML.
//
// The output is narrow: two-space block collections, plain or
// double-quoted scalars, comments on their own lines. Flow collections in
// the input come out in block style, and empty collections as [] and {}.

package libyaml

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	emitterIndent = 2
)

// EmitEvent is the input of [Emitter.Emit].
type EmitEvent struct {
	Type EventType

	// Anchor is the anchor name of a node, or the target of an alias.
	Anchor string

	// Tag is written as given, e.g. "!!str" or "!local".
	Tag string

	// Value is the text of a scalar or a comment.
	Value []byte

	// Quoted forces a double-quoted scalar.
	Quoted bool

	// Implicit marks a document without a "---" or "..." indicator.
	Implicit bool
}

type emitterFrame struct {
	sequence bool
	indent   int // column of the entries
	count    int // nodes written so far; for mappings keys and values alternate
}

// Emitter writes events as YAML text.
type Emitter struct {
	w    *bufio.Writer
	opts Options

	frames     []emitterFrame
	column     int
	whitespace bool // the last character written is a space
	docs       int

	// A collection start is held until the next event tells whether the
	// collection is empty.
	open     *EmitEvent
	comments []string // comments waiting for the start of a line

	err error
}

// NewEmitter returns an emitter writing to w.
func NewEmitter(w io.Writer, opts ...Option) (*Emitter, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Emitter{w: bufio.NewWriter(w), opts: o}, nil
}

// Flush writes any buffered output.
func (e *Emitter) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		e.err = WriterError{Err: err}
	}
	return e.err
}

func (e *Emitter) setEmitterError(problem string) error {
	e.err = EmitterError{Message: problem}
	return e.err
}

// Emit writes one event.
func (e *Emitter) Emit(ev EmitEvent) error {
	if e.err != nil {
		return e.err
	}

	switch ev.Type {
	case STREAM_START_EVENT:
	case STREAM_END_EVENT:
		if e.open != nil {
			return e.setEmitterError("expected the end of a collection")
		}
		e.endLine()
		e.flushComments()
		return e.Flush()
	case DOCUMENT_START_EVENT:
		e.endLine()
		e.docs++
		if e.docs > 1 || !ev.Implicit {
			e.writeString("---")
			e.endLine()
		}
	case DOCUMENT_END_EVENT:
		e.endLine()
		if !ev.Implicit {
			e.writeString("...")
			e.endLine()
		}
	case COMMENT_EVENT:
		text := "#" + string(ev.Value)
		if e.opts.StripLeadingWhitespace && len(ev.Value) > 0 {
			text = "# " + string(ev.Value)
		}
		e.comments = append(e.comments, text)
		if e.open == nil && e.column == 0 {
			e.flushComments()
		}
	case SCALAR_EVENT, ALIAS_EVENT:
		if err := e.emitNode(&ev); err != nil {
			return err
		}
	case SEQUENCE_START_EVENT, MAPPING_START_EVENT:
		if err := e.emitNode(&ev); err != nil {
			return err
		}
	case SEQUENCE_END_EVENT, MAPPING_END_EVENT:
		if e.open != nil {
			// Nothing was written inside: an empty collection.
			empty := " {}"
			if e.open.Type == SEQUENCE_START_EVENT {
				empty = " []"
			}
			if e.column == 0 {
				empty = empty[1:]
			}
			e.open = nil
			e.writeString(empty)
			e.endLine()
			break
		}
		if len(e.frames) == 0 {
			return e.setEmitterError("unexpected end of a collection")
		}
		e.endLine()
		e.frames = e.frames[:len(e.frames)-1]
		e.flushComments()
	default:
		return e.setEmitterError("unknown event " + ev.Type.String())
	}
	return e.err
}

// emitNode writes the position indicator and properties of a node, then
// the node itself. Collections are left open until their first child.
func (e *Emitter) emitNode(ev *EmitEvent) error {
	if e.open != nil {
		e.openCollection()
	}

	isKey := false
	if n := len(e.frames); n > 0 {
		f := &e.frames[n-1]
		switch {
		case f.sequence:
			e.writeIndent(f.indent)
			e.writeString("-")
		case f.count%2 == 0:
			if ev.Type != SCALAR_EVENT && ev.Type != ALIAS_EVENT {
				return e.setEmitterError("mapping keys must be scalars or aliases")
			}
			e.writeIndent(f.indent)
			isKey = true
		}
		f.count++
	}

	if ev.Type == ALIAS_EVENT {
		e.writeWord("*" + ev.Anchor)
		if isKey {
			// ':' is a valid anchor character.
			e.writeString(" :")
			return e.err
		}
		e.endLine()
		return e.err
	}

	if ev.Anchor != "" {
		e.writeWord("&" + ev.Anchor)
	}
	if ev.Tag != "" {
		e.writeWord(ev.Tag)
	}

	switch ev.Type {
	case SEQUENCE_START_EVENT, MAPPING_START_EVENT:
		held := *ev
		e.open = &held
		return e.err
	}

	wrote := true
	switch {
	case !ev.Quoted && len(ev.Value) == 0:
		wrote = false
	case !ev.Quoted && plainAllowed(ev.Value, isKey):
		e.writeWord(string(ev.Value))
	default:
		e.writeWord(doubleQuote(ev.Value))
	}
	if isKey {
		if !wrote && (ev.Anchor != "" || ev.Tag != "") {
			// ':' would be read as part of the anchor or tag.
			e.writeString(" :")
		} else {
			e.writeString(":")
		}
		return e.err
	}
	e.endLine()
	return e.err
}

// openCollection commits the held collection start as a non-empty block
// collection.
func (e *Emitter) openCollection() {
	ev := e.open
	e.open = nil
	indent := 0
	if n := len(e.frames); n > 0 {
		indent = e.frames[n-1].indent + emitterIndent
	}
	e.endLine()
	e.frames = append(e.frames, emitterFrame{
		sequence: ev.Type == SEQUENCE_START_EVENT,
		indent:   indent,
	})
	e.flushComments()
}

func (e *Emitter) currentIndent() int {
	if n := len(e.frames); n > 0 {
		return e.frames[n-1].indent
	}
	return 0
}

// flushComments writes the held comments, each on its own line.
func (e *Emitter) flushComments() {
	if e.open != nil || e.column > 0 {
		return
	}
	comments := e.comments
	e.comments = e.comments[:0]
	for _, c := range comments {
		e.writeIndent(e.currentIndent())
		e.writeString(c)
		e.endLine()
	}
}

func (e *Emitter) writeString(s string) {
	if e.err != nil {
		return
	}
	if _, err := e.w.WriteString(s); err != nil {
		e.err = WriterError{Err: err}
		return
	}
	if len(s) > 0 {
		e.column += utf8.RuneCountInString(s)
		e.whitespace = s[len(s)-1] == ' '
	}
}

// writeWord writes s separated by a space from what precedes it on the
// line.
func (e *Emitter) writeWord(s string) {
	if e.column > 0 && !e.whitespace {
		e.writeString(" ")
	}
	e.writeString(s)
}

func (e *Emitter) writeIndent(indent int) {
	if e.column > 0 {
		e.endLine()
	}
	e.writeString(strings.Repeat(" ", indent))
}

// endLine terminates a non-empty line and writes any comments that were
// waiting for it.
func (e *Emitter) endLine() {
	if e.column == 0 {
		return
	}
	if e.err == nil {
		if err := e.w.WriteByte('\n'); err != nil {
			e.err = WriterError{Err: err}
		}
	}
	e.column = 0
	if len(e.comments) > 0 {
		e.flushComments()
	}
}

// plainAllowed reports whether value reads back as the same plain scalar in
// block context.
func plainAllowed(value []byte, key bool) bool {
	if key && len(value) >= maxSimpleKeyLength {
		return false
	}
	switch value[0] {
	case ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return false
	case '-', '?', ':':
		if len(value) == 1 || isBlank(value[1]) {
			return false
		}
	}
	if len(value) >= 3 && (string(value[:3]) == "---" || string(value[:3]) == "...") {
		return false
	}
	if isBlank(value[0]) || isBlank(value[len(value)-1]) || value[len(value)-1] == ':' {
		return false
	}
	for i, c := range value {
		if !isPrintable(c) || isBreak(c) || c == '\t' || c == 0x7F {
			return false
		}
		if c == ':' && i+1 < len(value) && isBlank(value[i+1]) {
			return false
		}
		if c == '#' && i > 0 && isBlank(value[i-1]) {
			return false
		}
	}
	return utf8.Valid(value)
}

// doubleQuote renders value as a double-quoted scalar.
func doubleQuote(value []byte) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('"')
	for i := 0; i < len(value); {
		r, w := utf8.DecodeRune(value[i:])
		if r == utf8.RuneError && w == 1 {
			writeHexEscape(&b, 'x', rune(value[i]), 2)
			i++
			continue
		}
		i += w
		switch r {
		case 0x00:
			b.WriteString(`\0`)
		case 0x07:
			b.WriteString(`\a`)
		case 0x08:
			b.WriteString(`\b`)
		case 0x09:
			b.WriteString(`\t`)
		case 0x0A:
			b.WriteString(`\n`)
		case 0x0B:
			b.WriteString(`\v`)
		case 0x0C:
			b.WriteString(`\f`)
		case 0x0D:
			b.WriteString(`\r`)
		case 0x1B:
			b.WriteString(`\e`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case 0x85:
			b.WriteString(`\N`)
		case 0xA0:
			b.WriteString(`\_`)
		case 0x2028:
			b.WriteString(`\L`)
		case 0x2029:
			b.WriteString(`\P`)
		case 0xFEFF:
			writeHexEscape(&b, 'u', r, 4)
		default:
			switch {
			case r < 0x20 || r == 0x7F || r >= 0x80 && r < 0xA0:
				writeHexEscape(&b, 'x', r, 2)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func writeHexEscape(b *strings.Builder, kind byte, v rune, digits int) {
	const hex = "0123456789ABCDEF"
	b.WriteByte('\\')
	b.WriteByte(kind)
	for k := (digits - 1) * 4; k >= 0; k -= 4 {
		b.WriteByte(hex[(v>>uint(k))&0x0F])
	}
}

// emitTag renders a resolved tag in its shortest readable form.
func emitTag(resolved string) string {
	const core = "tag:yaml.org,2002:"
	switch {
	case resolved == "":
		return ""
	case strings.HasPrefix(resolved, core) && len(resolved) > len(core):
		return "!!" + resolved[len(core):]
	case resolved == "!":
		return "!"
	case strings.HasPrefix(resolved, "!") && !strings.ContainsAny(resolved[1:], "!,[]{}"):
		return resolved
	}
	return "!<" + resolved + ">"
}

// EmitFromParser reads every remaining event from p and writes it to w.
func EmitFromParser(p *Parser, w io.Writer) error {
	e, err := NewEmitter(w,
		WithStripLeadingWhitespace(p.opts.StripLeadingWhitespace),
		WithPreserveComments(p.opts.PreserveComments))
	if err != nil {
		return err
	}
	for {
		ok, err := p.Read()
		if err != nil {
			return err
		}
		if !ok {
			return e.Flush()
		}
		if err := e.Emit(p.emitEvent()); err != nil {
			return err
		}
	}
}

// emitEvent converts the current event for the emitter.
func (p *Parser) emitEvent() EmitEvent {
	ev := &p.event
	out := EmitEvent{
		Type:     ev.Type,
		Value:    ev.Value(),
		Implicit: ev.Implicit,
	}
	if !ev.Anchor.IsZero() {
		out.Anchor = ev.Anchor.Name
	}
	if ev.Type != ALIAS_EVENT {
		out.Tag = emitTag(p.ResolvedTag())
	}
	if ev.Type == SCALAR_EVENT {
		out.Quoted = ev.ScalarStyle() != PLAIN_SCALAR_STYLE
	}
	return out
}
