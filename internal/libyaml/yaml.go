// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Core types shared by the scanner and the parser.
// Defines Mark, Token, Event and the related enumerations.

package libyaml

import (
	"fmt"
	"strings"
)

// VersionDirective holds the YAML version directive data.
type VersionDirective struct {
	major int8 // The major version number.
	minor int8 // The minor version number.
}

// Major returns the major version number.
func (v VersionDirective) Major() int { return int(v.major) }

// Minor returns the minor version number.
func (v VersionDirective) Minor() int { return int(v.minor) }

func (v VersionDirective) String() string {
	return fmt.Sprintf("%d.%d", v.major, v.minor)
}

// Mark holds a position in the input stream.
type Mark struct {
	Index  int // The byte offset.
	Line   int // The position line (1-indexed).
	Column int // The position column in characters (0-indexed internally, displayed as 1-indexed).
}

func (m Mark) String() string {
	var builder strings.Builder
	if m.Line == 0 {
		return "<unknown position>"
	}

	fmt.Fprintf(&builder, "line %d", m.Line)
	if m.Column != 0 {
		fmt.Fprintf(&builder, ", column %d", m.Column+1)
	}

	return builder.String()
}

// Node Styles

type styleInt int8

// Style is the union of the scalar, sequence and mapping styles carried by an
// event.
type Style styleInt

type ScalarStyle styleInt

// Scalar styles.
const (
	// Let the emitter choose the style.
	ANY_SCALAR_STYLE ScalarStyle = 0

	PLAIN_SCALAR_STYLE         ScalarStyle = 1 << iota // The plain scalar style.
	SINGLE_QUOTED_SCALAR_STYLE                         // The single-quoted scalar style.
	DOUBLE_QUOTED_SCALAR_STYLE                         // The double-quoted scalar style.
	LITERAL_SCALAR_STYLE                               // The literal scalar style.
	FOLDED_SCALAR_STYLE                                // The folded scalar style.
)

// String returns a string representation of a [ScalarStyle].
func (style ScalarStyle) String() string {
	switch style {
	case PLAIN_SCALAR_STYLE:
		return "Plain"
	case SINGLE_QUOTED_SCALAR_STYLE:
		return "Single"
	case DOUBLE_QUOTED_SCALAR_STYLE:
		return "Double"
	case LITERAL_SCALAR_STYLE:
		return "Literal"
	case FOLDED_SCALAR_STYLE:
		return "Folded"
	default:
		return ""
	}
}

type SequenceStyle styleInt

// Sequence styles.
const (
	// Let the emitter choose the style.
	ANY_SEQUENCE_STYLE SequenceStyle = iota

	BLOCK_SEQUENCE_STYLE // The block sequence style.
	FLOW_SEQUENCE_STYLE  // The flow sequence style.
)

type MappingStyle styleInt

// Mapping styles.
const (
	// Let the emitter choose the style.
	ANY_MAPPING_STYLE MappingStyle = iota

	BLOCK_MAPPING_STYLE // The block mapping style.
	FLOW_MAPPING_STYLE  // The flow mapping style.
)

// Tokens

type TokenType int

// Token types.
const (
	// An empty token.
	NO_TOKEN TokenType = iota

	STREAM_START_TOKEN // A STREAM-START token.
	STREAM_END_TOKEN   // A STREAM-END token.

	VERSION_DIRECTIVE_TOKEN // A VERSION-DIRECTIVE token.
	TAG_DIRECTIVE_TOKEN     // A TAG-DIRECTIVE token.
	DOCUMENT_START_TOKEN    // A DOCUMENT-START token.
	DOCUMENT_END_TOKEN      // A DOCUMENT-END token.

	BLOCK_SEQUENCE_START_TOKEN // A BLOCK-SEQUENCE-START token.
	BLOCK_MAPPING_START_TOKEN  // A BLOCK-MAPPING-START token.
	BLOCK_END_TOKEN            // A BLOCK-END token.

	FLOW_SEQUENCE_START_TOKEN // A FLOW-SEQUENCE-START token.
	FLOW_SEQUENCE_END_TOKEN   // A FLOW-SEQUENCE-END token.
	FLOW_MAPPING_START_TOKEN  // A FLOW-MAPPING-START token.
	FLOW_MAPPING_END_TOKEN    // A FLOW-MAPPING-END token.

	BLOCK_ENTRY_TOKEN // A BLOCK-ENTRY token.
	FLOW_ENTRY_TOKEN  // A FLOW-ENTRY token.
	KEY_TOKEN         // A KEY token.
	VALUE_TOKEN       // A VALUE token.

	ALIAS_TOKEN   // An ALIAS token.
	ANCHOR_TOKEN  // An ANCHOR token.
	TAG_TOKEN     // A TAG token.
	SCALAR_TOKEN  // A SCALAR token.
	COMMENT_TOKEN // A COMMENT token.
)

var tokenStrings = []string{
	NO_TOKEN:                   "NO_TOKEN",
	STREAM_START_TOKEN:         "STREAM_START_TOKEN",
	STREAM_END_TOKEN:           "STREAM_END_TOKEN",
	VERSION_DIRECTIVE_TOKEN:    "VERSION_DIRECTIVE_TOKEN",
	TAG_DIRECTIVE_TOKEN:        "TAG_DIRECTIVE_TOKEN",
	DOCUMENT_START_TOKEN:       "DOCUMENT_START_TOKEN",
	DOCUMENT_END_TOKEN:         "DOCUMENT_END_TOKEN",
	BLOCK_SEQUENCE_START_TOKEN: "BLOCK_SEQUENCE_START_TOKEN",
	BLOCK_MAPPING_START_TOKEN:  "BLOCK_MAPPING_START_TOKEN",
	BLOCK_END_TOKEN:            "BLOCK_END_TOKEN",
	FLOW_SEQUENCE_START_TOKEN:  "FLOW_SEQUENCE_START_TOKEN",
	FLOW_SEQUENCE_END_TOKEN:    "FLOW_SEQUENCE_END_TOKEN",
	FLOW_MAPPING_START_TOKEN:   "FLOW_MAPPING_START_TOKEN",
	FLOW_MAPPING_END_TOKEN:     "FLOW_MAPPING_END_TOKEN",
	BLOCK_ENTRY_TOKEN:          "BLOCK_ENTRY_TOKEN",
	FLOW_ENTRY_TOKEN:           "FLOW_ENTRY_TOKEN",
	KEY_TOKEN:                  "KEY_TOKEN",
	VALUE_TOKEN:                "VALUE_TOKEN",
	ALIAS_TOKEN:                "ALIAS_TOKEN",
	ANCHOR_TOKEN:               "ANCHOR_TOKEN",
	TAG_TOKEN:                  "TAG_TOKEN",
	SCALAR_TOKEN:               "SCALAR_TOKEN",
	COMMENT_TOKEN:              "COMMENT_TOKEN",
}

func (tt TokenType) String() string {
	if tt < 0 || int(tt) >= len(tokenStrings) {
		return "<unknown token>"
	}
	return tokenStrings[tt]
}

// ParseTokenType maps a token name as printed by [TokenType.String] back to
// its value.
func ParseTokenType(name string) (TokenType, bool) {
	for i, s := range tokenStrings {
		if s == name {
			return TokenType(i), true
		}
	}
	return NO_TOKEN, false
}

// Token holds information about a scanning token.
//
// The payload depends on Type: SCALAR, ANCHOR, ALIAS and COMMENT tokens
// carry a scalar buffer, TAG and TAG_DIRECTIVE tokens carry a tag (for a
// directive the suffix holds the prefix), VERSION_DIRECTIVE tokens carry a
// version. Buffers are owned by the token until taken.
type Token struct {
	// The token type.
	Type TokenType

	// The start/end of the token.
	StartMark, EndMark Mark

	// The scalar Style (for SCALAR_TOKEN).
	Style ScalarStyle

	scalar  *Scalar
	tag     *Tag
	version VersionDirective
}

// Value returns the scalar payload, or nil when the token has none.
func (t *Token) Value() []byte {
	if t.scalar == nil {
		return nil
	}
	return t.scalar.Bytes()
}

// Tag returns the tag payload of a TAG or TAG_DIRECTIVE token.
func (t *Token) Tag() *Tag { return t.tag }

// Version returns the version of a VERSION_DIRECTIVE token.
func (t *Token) Version() VersionDirective { return t.version }

// TakeScalar moves the scalar buffer out of the token.
func (t *Token) TakeScalar() *Scalar {
	s := t.scalar
	t.scalar = nil
	return s
}

// TakeTag moves the tag out of the token.
func (t *Token) TakeTag() *Tag {
	tag := t.tag
	t.tag = nil
	return tag
}

// release returns every buffer still owned by the token to the pool.
func (t *Token) release(pool *ScalarPool) {
	pool.Return(t.TakeScalar())
	pool.ReturnTag(t.TakeTag())
}

// Events

type EventType int8

// Event types.
const (
	// An empty event.
	NO_EVENT EventType = iota

	STREAM_START_EVENT   // A STREAM-START event.
	STREAM_END_EVENT     // A STREAM-END event.
	DOCUMENT_START_EVENT // A DOCUMENT-START event.
	DOCUMENT_END_EVENT   // A DOCUMENT-END event.
	ALIAS_EVENT          // An ALIAS event.
	SCALAR_EVENT         // A SCALAR event.
	SEQUENCE_START_EVENT // A SEQUENCE-START event.
	SEQUENCE_END_EVENT   // A SEQUENCE-END event.
	MAPPING_START_EVENT  // A MAPPING-START event.
	MAPPING_END_EVENT    // A MAPPING-END event.
	COMMENT_EVENT        // A COMMENT event.
)

var eventStrings = []string{
	NO_EVENT:             "none",
	STREAM_START_EVENT:   "stream start",
	STREAM_END_EVENT:     "stream end",
	DOCUMENT_START_EVENT: "document start",
	DOCUMENT_END_EVENT:   "document end",
	ALIAS_EVENT:          "alias",
	SCALAR_EVENT:         "scalar",
	SEQUENCE_START_EVENT: "sequence start",
	SEQUENCE_END_EVENT:   "sequence end",
	MAPPING_START_EVENT:  "mapping start",
	MAPPING_END_EVENT:    "mapping end",
	COMMENT_EVENT:        "comment",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventStrings) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventStrings[e]
}

// ParseEventType maps an event name as printed by [EventType.String] back
// to its value.
func ParseEventType(name string) (EventType, bool) {
	for i, s := range eventStrings {
		if s == name {
			return EventType(i), true
		}
	}
	return NO_EVENT, false
}

// Anchor identifies an anchored node. Two anchors are the same node when
// their ids are equal, whatever their names.
type Anchor struct {
	Name string
	ID   int32
}

// NoAnchor is the anchor of a node without properties.
var NoAnchor = Anchor{ID: -1}

// IsZero reports whether the anchor is absent.
func (a Anchor) IsZero() bool { return a.ID < 0 }

// Equal compares anchors by id.
func (a Anchor) Equal(b Anchor) bool { return a.ID == b.ID }

func (a Anchor) String() string {
	return fmt.Sprintf("%s#%d", a.Name, a.ID)
}

// Event holds information about a parsing or emitting event.
type Event struct {
	// The event type.
	Type EventType

	// The start and end of the event.
	StartMark, EndMark Mark

	// The version directive (for DOCUMENT_START_EVENT).
	version    VersionDirective
	hasVersion bool

	// The Anchor (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT, ALIAS_EVENT).
	Anchor Anchor

	// The Tag (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	Tag *Tag

	// The scalar Value (for SCALAR_EVENT and COMMENT_EVENT).
	Scalar *Scalar

	// Is the document start/end indicator Implicit, or the tag optional?
	Implicit bool

	// Is the tag optional for any non-plain style? (for SCALAR_EVENT).
	QuotedImplicit bool

	// The Style (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	Style Style
}

func (e *Event) ScalarStyle() ScalarStyle     { return ScalarStyle(e.Style) }
func (e *Event) SequenceStyle() SequenceStyle { return SequenceStyle(e.Style) }
func (e *Event) MappingStyle() MappingStyle   { return MappingStyle(e.Style) }

// Value returns the scalar bytes of a SCALAR or COMMENT event.
func (e *Event) Value() []byte {
	if e.Scalar == nil {
		return nil
	}
	return e.Scalar.Bytes()
}

// VersionDirective returns the %YAML directive of a DOCUMENT_START_EVENT.
func (e *Event) VersionDirective() (VersionDirective, bool) {
	return e.version, e.hasVersion
}

// release hands the event's buffers back to the pool and clears the event.
func (e *Event) release(pool *ScalarPool) {
	pool.Return(e.Scalar)
	pool.ReturnTag(e.Tag)
	*e = Event{Anchor: NoAnchor}
}

// Tags

const (
	NULL_TAG      = "tag:yaml.org,2002:null"      // The tag !!null with the only possible value: null.
	BOOL_TAG      = "tag:yaml.org,2002:bool"      // The tag !!bool with the values: true and false.
	STR_TAG       = "tag:yaml.org,2002:str"       // The tag !!str for string values.
	INT_TAG       = "tag:yaml.org,2002:int"       // The tag !!int for integer values.
	FLOAT_TAG     = "tag:yaml.org,2002:float"     // The tag !!float for float values.
	TIMESTAMP_TAG = "tag:yaml.org,2002:timestamp" // The tag !!timestamp for date and time values.

	SEQ_TAG = "tag:yaml.org,2002:seq" // The tag !!seq is used to denote sequences.
	MAP_TAG = "tag:yaml.org,2002:map" // The tag !!map is used to denote mapping.
)
