// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Package yamlpull implements a streaming, pull-based YAML parser.
//
// A Parser turns YAML text into a sequence of events, one per call to
// Parser.Read. Scalar buffers are pooled and recycled as the parser moves
// forward, so the bytes returned by the accessors of the current event are
// only valid until the next Read.
//
//	p, err := yamlpull.NewParser(data)
//	if err != nil {
//		return err
//	}
//	for {
//		ok, err := p.Read()
//		if err != nil {
//			return err
//		}
//		if !ok {
//			break
//		}
//		fmt.Println(p.CurrentEventType())
//	}
//
// This file contains:
// - Type and constant re-exports from internal/libyaml
// - Parser constructors, including cancellable reading from an io.Reader

package yamlpull

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/yamlpull/yamlpull/internal/libyaml"
)

//-----------------------------------------------------------------------------
// Type re-exports
//-----------------------------------------------------------------------------

type (
	// Parser produces one event per Read. See internal/libyaml.Parser.
	Parser = libyaml.Parser
	// Event is the current event of a parser.
	Event = libyaml.Event
	// EventType identifies an event.
	EventType = libyaml.EventType
	// Mark is a position in the input: byte index, 1-based line and
	// 0-based column.
	Mark = libyaml.Mark
	// Tag is a node tag split into handle and suffix.
	Tag = libyaml.Tag
	// Anchor identifies an anchored node by id.
	Anchor = libyaml.Anchor
	// VersionDirective is the %YAML directive of a document.
	VersionDirective = libyaml.VersionDirective
	// ScalarStyle is the presentation of a scalar.
	ScalarStyle = libyaml.ScalarStyle
	// Metrics holds the Prometheus collectors of one or more parsers.
	Metrics = libyaml.Metrics
	// Emitter writes events back out as block-style YAML.
	Emitter = libyaml.Emitter
	// EmitEvent is the input of Emitter.Emit.
	EmitEvent = libyaml.EmitEvent
)

// Re-export EventType constants
const (
	NoEvent            = libyaml.NO_EVENT
	StreamStartEvent   = libyaml.STREAM_START_EVENT
	StreamEndEvent     = libyaml.STREAM_END_EVENT
	DocumentStartEvent = libyaml.DOCUMENT_START_EVENT
	DocumentEndEvent   = libyaml.DOCUMENT_END_EVENT
	AliasEvent         = libyaml.ALIAS_EVENT
	ScalarEvent        = libyaml.SCALAR_EVENT
	SequenceStartEvent = libyaml.SEQUENCE_START_EVENT
	SequenceEndEvent   = libyaml.SEQUENCE_END_EVENT
	MappingStartEvent  = libyaml.MAPPING_START_EVENT
	MappingEndEvent    = libyaml.MAPPING_END_EVENT
	CommentEvent       = libyaml.COMMENT_EVENT
)

// Re-export ScalarStyle constants
const (
	PlainStyle        = libyaml.PLAIN_SCALAR_STYLE
	SingleQuotedStyle = libyaml.SINGLE_QUOTED_SCALAR_STYLE
	DoubleQuotedStyle = libyaml.DOUBLE_QUOTED_SCALAR_STYLE
	LiteralStyle      = libyaml.LITERAL_SCALAR_STYLE
	FoldedStyle       = libyaml.FOLDED_SCALAR_STYLE
)

// NoAnchor is the anchor reported for nodes without one.
var NoAnchor = libyaml.NoAnchor

//-----------------------------------------------------------------------------
// Constructors
//-----------------------------------------------------------------------------

// NewParser returns a parser over a single input buffer. The parser does not
// copy input.
func NewParser(input []byte, opts ...Option) (*Parser, error) {
	return libyaml.NewParser(input, opts...)
}

// NewParserFromChunks returns a parser over the concatenation of chunks.
// Chunk boundaries may fall anywhere, including inside a token.
func NewParserFromChunks(chunks [][]byte, opts ...Option) (*Parser, error) {
	return libyaml.NewParserFromChunks(chunks, opts...)
}

// NewParserFromReader reads r to the end with ReadInput and returns a parser
// over what was read. The chunk size comes from WithChunkSize.
func NewParserFromReader(ctx context.Context, r io.Reader, opts ...Option) (*Parser, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	chunks, err := ReadInput(ctx, r, o.ChunkSize)
	if err != nil {
		return nil, err
	}
	return libyaml.NewParserFromChunks(chunks, opts...)
}

// ReadInput reads r to the end in chunks of at most chunkSize bytes. The
// context is checked before every read; parsing itself is not cancellable,
// so this is the point where a caller bounds the work.
func ReadInput(ctx context.Context, r io.Reader, chunkSize int) ([][]byte, error) {
	if chunkSize <= 0 {
		chunkSize = libyaml.DefaultChunkSize
	}
	var (
		chunks [][]byte
		offset int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, libyaml.ReaderError{Offset: offset, Err: errors.Wrap(err, "read input")}
		}
		buf := make([]byte, chunkSize)
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			chunks = append(chunks, buf[:n])
			offset += n
		}
		switch {
		case err == io.EOF || err == io.ErrUnexpectedEOF:
			return chunks, nil
		case err != nil:
			return nil, libyaml.ReaderError{Offset: offset, Err: errors.Wrap(err, "read input")}
		}
	}
}

// FormatEvents parses input and renders every event in test-suite
// notation. On failure it returns the events read so far and the error.
func FormatEvents(input []byte, opts ...Option) ([]string, error) {
	return libyaml.FormatEvents(input, opts...)
}

// NewEmitter returns an emitter writing to w.
func NewEmitter(w io.Writer, opts ...Option) (*Emitter, error) {
	return libyaml.NewEmitter(w, opts...)
}

// EmitFromParser reads every remaining event of p and writes it to w.
func EmitFromParser(p *Parser, w io.Writer) error {
	return libyaml.EmitFromParser(p, w)
}
