// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Parser stage: Transforms token stream into event stream.
// Implements an LL(1) parser for the YAML 1.2 grammar, driven by an
// explicit state stack instead of recursion.
//
// The parser implements the following grammar:
//
// stream               ::= STREAM-START implicit_document? explicit_document* STREAM-END
// implicit_document    ::= block_node DOCUMENT-END*
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
// block_node_or_indentless_sequence    ::=
//                          ALIAS
//                          | properties (block_content | indentless_block_sequence)?
//                          | block_content
//                          | indentless_block_sequence
// block_node           ::= ALIAS
//                          | properties block_content?
//                          | block_content
// flow_node            ::= ALIAS
//                          | properties flow_content?
//                          | flow_content
// properties           ::= TAG ANCHOR? | ANCHOR TAG?
// block_content        ::= block_collection | flow_collection | SCALAR
// flow_content         ::= flow_collection | SCALAR
// block_collection     ::= block_sequence | block_mapping
// flow_collection      ::= flow_sequence | flow_mapping
// block_sequence       ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
// indentless_sequence  ::= (BLOCK-ENTRY block_node?)+
// block_mapping        ::= BLOCK-MAPPING_START
//                          ((KEY block_node_or_indentless_sequence?)?
//                          (VALUE block_node_or_indentless_sequence?)?)*
//                          BLOCK-END
// flow_sequence        ::= FLOW-SEQUENCE-START
//                          (flow_sequence_entry FLOW-ENTRY)*
//                          flow_sequence_entry?
//                          FLOW-SEQUENCE-END
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
// flow_mapping         ::= FLOW-MAPPING-START
//                          (flow_mapping_entry FLOW-ENTRY)*
//                          flow_mapping_entry?
//                          FLOW-MAPPING-END
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
// COMMENT tokens sit outside the grammar. A comment at the head of the queue
// is turned into a COMMENT event before the state machine runs; comments met
// while a production is being parsed are queued and delivered afterwards.

package libyaml

import (
	"github.com/go-kit/log/level"
)

// ParserState represents the state of the parser.
type ParserState int

// Parser state constants define the different states the parser can be in.
const (
	PARSE_STREAM_START_STATE ParserState = iota

	PARSE_IMPLICIT_DOCUMENT_START_STATE           // Expect the beginning of an implicit document.
	PARSE_DOCUMENT_START_STATE                    // Expect DOCUMENT-START.
	PARSE_DOCUMENT_CONTENT_STATE                  // Expect the content of a document.
	PARSE_DOCUMENT_END_STATE                      // Expect DOCUMENT-END.
	PARSE_BLOCK_NODE_STATE                        // Expect a block node.
	PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE        // Expect the first entry of a block sequence.
	PARSE_BLOCK_SEQUENCE_ENTRY_STATE              // Expect an entry of a block sequence.
	PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE         // Expect an entry of an indentless sequence.
	PARSE_BLOCK_MAPPING_FIRST_KEY_STATE           // Expect the first key of a block mapping.
	PARSE_BLOCK_MAPPING_KEY_STATE                 // Expect a block mapping key.
	PARSE_BLOCK_MAPPING_VALUE_STATE               // Expect a block mapping value.
	PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE         // Expect the first entry of a flow sequence.
	PARSE_FLOW_SEQUENCE_ENTRY_STATE               // Expect an entry of a flow sequence.
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE   // Expect a key of an ordered mapping.
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE // Expect a value of an ordered mapping.
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE   // Expect the and of an ordered mapping entry.
	PARSE_FLOW_MAPPING_FIRST_KEY_STATE            // Expect the first key of a flow mapping.
	PARSE_FLOW_MAPPING_KEY_STATE                  // Expect a key of a flow mapping.
	PARSE_FLOW_MAPPING_VALUE_STATE                // Expect a value of a flow mapping.
	PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE          // Expect an empty value of a flow mapping.
	PARSE_END_STATE                               // Expect nothing.
)

var parserStateNames = [...]string{
	PARSE_STREAM_START_STATE:                      "PARSE_STREAM_START_STATE",
	PARSE_IMPLICIT_DOCUMENT_START_STATE:           "PARSE_IMPLICIT_DOCUMENT_START_STATE",
	PARSE_DOCUMENT_START_STATE:                    "PARSE_DOCUMENT_START_STATE",
	PARSE_DOCUMENT_CONTENT_STATE:                  "PARSE_DOCUMENT_CONTENT_STATE",
	PARSE_DOCUMENT_END_STATE:                      "PARSE_DOCUMENT_END_STATE",
	PARSE_BLOCK_NODE_STATE:                        "PARSE_BLOCK_NODE_STATE",
	PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE:        "PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE",
	PARSE_BLOCK_SEQUENCE_ENTRY_STATE:              "PARSE_BLOCK_SEQUENCE_ENTRY_STATE",
	PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE:         "PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE",
	PARSE_BLOCK_MAPPING_FIRST_KEY_STATE:           "PARSE_BLOCK_MAPPING_FIRST_KEY_STATE",
	PARSE_BLOCK_MAPPING_KEY_STATE:                 "PARSE_BLOCK_MAPPING_KEY_STATE",
	PARSE_BLOCK_MAPPING_VALUE_STATE:               "PARSE_BLOCK_MAPPING_VALUE_STATE",
	PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE:         "PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE",
	PARSE_FLOW_SEQUENCE_ENTRY_STATE:               "PARSE_FLOW_SEQUENCE_ENTRY_STATE",
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE:   "PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE",
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE: "PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE",
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE:   "PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE",
	PARSE_FLOW_MAPPING_FIRST_KEY_STATE:            "PARSE_FLOW_MAPPING_FIRST_KEY_STATE",
	PARSE_FLOW_MAPPING_KEY_STATE:                  "PARSE_FLOW_MAPPING_KEY_STATE",
	PARSE_FLOW_MAPPING_VALUE_STATE:                "PARSE_FLOW_MAPPING_VALUE_STATE",
	PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE:          "PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE",
	PARSE_END_STATE:                               "PARSE_END_STATE",
}

// String returns a string representation of the parser state.
func (ps ParserState) String() string {
	if ps < 0 || int(ps) >= len(parserStateNames) {
		return "<unknown parser state>"
	}
	return parserStateNames[ps]
}

// tagDirective maps a tag handle to its prefix.
type tagDirective struct {
	handle string
	prefix string
}

// defaultTagDirectives are implicitly available in all YAML documents.
var defaultTagDirectives = []tagDirective{
	{"!", "!"},
	{"!!", "tag:yaml.org,2002:"},
}

// State dispatcher.
func (p *Parser) stateMachine(event *Event) error {
	switch p.state {
	case PARSE_STREAM_START_STATE:
		return p.parseStreamStart(event)

	case PARSE_IMPLICIT_DOCUMENT_START_STATE:
		return p.parseDocumentStart(event, true)

	case PARSE_DOCUMENT_START_STATE:
		return p.parseDocumentStart(event, false)

	case PARSE_DOCUMENT_CONTENT_STATE:
		return p.parseDocumentContent(event)

	case PARSE_DOCUMENT_END_STATE:
		return p.parseDocumentEnd(event)

	case PARSE_BLOCK_NODE_STATE:
		return p.parseNode(event, true, false)

	case PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE:
		return p.parseBlockSequenceEntry(event, true)

	case PARSE_BLOCK_SEQUENCE_ENTRY_STATE:
		return p.parseBlockSequenceEntry(event, false)

	case PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE:
		return p.parseIndentlessSequenceEntry(event)

	case PARSE_BLOCK_MAPPING_FIRST_KEY_STATE:
		return p.parseBlockMappingKey(event, true)

	case PARSE_BLOCK_MAPPING_KEY_STATE:
		return p.parseBlockMappingKey(event, false)

	case PARSE_BLOCK_MAPPING_VALUE_STATE:
		return p.parseBlockMappingValue(event)

	case PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE:
		return p.parseFlowSequenceEntry(event, true)

	case PARSE_FLOW_SEQUENCE_ENTRY_STATE:
		return p.parseFlowSequenceEntry(event, false)

	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE:
		return p.parseFlowSequenceEntryMappingKey(event)

	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE:
		return p.parseFlowSequenceEntryMappingValue(event)

	case PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE:
		return p.parseFlowSequenceEntryMappingEnd(event)

	case PARSE_FLOW_MAPPING_FIRST_KEY_STATE:
		return p.parseFlowMappingKey(event, true)

	case PARSE_FLOW_MAPPING_KEY_STATE:
		return p.parseFlowMappingKey(event, false)

	case PARSE_FLOW_MAPPING_VALUE_STATE:
		return p.parseFlowMappingValue(event, false)

	case PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE:
		return p.parseFlowMappingValue(event, true)

	default:
		panic("invalid parser state")
	}
}

func (p *Parser) popState() {
	p.state = p.states[len(p.states)-1]
	p.states = p.states[:len(p.states)-1]
}

func (p *Parser) popMark() Mark {
	m := p.marks[len(p.marks)-1]
	p.marks = p.marks[:len(p.marks)-1]
	return m
}

// Parse the production:
// stream   ::= STREAM-START implicit_document? explicit_document* STREAM-END
//
//	************
func (p *Parser) parseStreamStart(event *Event) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}
	if token.Type != STREAM_START_TOKEN {
		return formatParserError("did not find expected <stream-start>", token.StartMark)
	}
	p.state = PARSE_IMPLICIT_DOCUMENT_START_STATE
	*event = Event{
		Type:      STREAM_START_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.EndMark,
		Anchor:    NoAnchor,
	}
	p.skipToken()
	return nil
}

// Parse the productions:
// implicit_document    ::= block_node DOCUMENT-END*
//
//	*
//
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
//
//	*************************
func (p *Parser) parseDocumentStart(event *Event, implicit bool) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}

	// Parse extra document end indicators.
	for token.Type == DOCUMENT_END_TOKEN {
		p.skipToken()
		if token, err = p.peekToken(); err != nil {
			return err
		}
	}

	switch {
	case implicit && token.Type != VERSION_DIRECTIVE_TOKEN &&
		token.Type != TAG_DIRECTIVE_TOKEN &&
		token.Type != DOCUMENT_START_TOKEN &&
		token.Type != STREAM_END_TOKEN:
		// Parse an implicit document.
		if _, _, err := p.processDirectives(); err != nil {
			return err
		}
		p.states = append(p.states, PARSE_DOCUMENT_END_STATE)
		p.state = PARSE_BLOCK_NODE_STATE
		p.anchors.ResetNames()
		*event = Event{
			Type:      DOCUMENT_START_EVENT,
			StartMark: token.StartMark,
			EndMark:   token.StartMark,
			Anchor:    NoAnchor,
			Implicit:  true,
		}

	case token.Type != STREAM_END_TOKEN:
		// Parse an explicit document.
		start := token.StartMark
		version, hasVersion, err := p.processDirectives()
		if err != nil {
			return err
		}
		if token, err = p.peekToken(); err != nil {
			return err
		}
		if token.Type != DOCUMENT_START_TOKEN {
			return formatParserError(
				"did not find expected <document start>", token.StartMark)
		}
		p.states = append(p.states, PARSE_DOCUMENT_END_STATE)
		p.state = PARSE_DOCUMENT_CONTENT_STATE
		p.anchors.ResetNames()
		*event = Event{
			Type:       DOCUMENT_START_EVENT,
			StartMark:  start,
			EndMark:    token.EndMark,
			Anchor:     NoAnchor,
			version:    version,
			hasVersion: hasVersion,
		}
		p.skipToken()

	default:
		// Parse the stream end.
		p.state = PARSE_END_STATE
		*event = Event{
			Type:      STREAM_END_EVENT,
			StartMark: token.StartMark,
			EndMark:   token.EndMark,
			Anchor:    NoAnchor,
		}
		p.skipToken()
		return nil
	}

	level.Debug(p.logger).Log("msg", "document start", "line", event.StartMark.Line, "implicit", event.Implicit)
	return nil
}

// Parse the productions:
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
//
//	***********
func (p *Parser) parseDocumentContent(event *Event) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}

	switch token.Type {
	case VERSION_DIRECTIVE_TOKEN, TAG_DIRECTIVE_TOKEN, DOCUMENT_START_TOKEN, DOCUMENT_END_TOKEN, STREAM_END_TOKEN:
		p.popState()
		return p.processEmptyScalar(event, token.StartMark)
	}
	return p.parseNode(event, true, false)
}

// Parse the productions:
// implicit_document    ::= block_node DOCUMENT-END*
//
//	*************
//
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
func (p *Parser) parseDocumentEnd(event *Event) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}

	start := token.StartMark
	end := token.StartMark

	implicit := true
	if token.Type == DOCUMENT_END_TOKEN {
		end = token.EndMark
		p.skipToken()
		implicit = false
	}

	p.tagDirectives = p.tagDirectives[:0]

	p.state = PARSE_DOCUMENT_START_STATE
	*event = Event{
		Type:      DOCUMENT_END_EVENT,
		StartMark: start,
		EndMark:   end,
		Anchor:    NoAnchor,
		Implicit:  implicit,
	}
	return nil
}

// Parse directives.
func (p *Parser) processDirectives() (version VersionDirective, hasVersion bool, err error) {
	token, err := p.peekToken()
	if err != nil {
		return version, false, err
	}

	for token.Type == VERSION_DIRECTIVE_TOKEN || token.Type == TAG_DIRECTIVE_TOKEN {
		switch token.Type {
		case VERSION_DIRECTIVE_TOKEN:
			if hasVersion {
				return version, false, formatParserError(
					"found duplicate %YAML directive", token.StartMark)
			}
			if token.version.major != 1 {
				return version, false, formatParserError(
					"found incompatible YAML document", token.StartMark)
			}
			version, hasVersion = token.version, true
		case TAG_DIRECTIVE_TOKEN:
			tag := token.Tag()
			value := tagDirective{
				handle: string(tag.Handle()),
				prefix: string(tag.Suffix()),
			}
			if err := p.appendTagDirective(value, false, token.StartMark); err != nil {
				return version, false, err
			}
		}

		p.skipToken()
		if token, err = p.peekToken(); err != nil {
			return version, false, err
		}
	}

	for _, d := range defaultTagDirectives {
		if err := p.appendTagDirective(d, true, token.StartMark); err != nil {
			return version, false, err
		}
	}
	return version, hasVersion, nil
}

// Append a tag directive to the directives stack.
func (p *Parser) appendTagDirective(value tagDirective, allowDuplicates bool, mark Mark) error {
	for _, d := range p.tagDirectives {
		if d.handle == value.handle {
			if allowDuplicates {
				return nil
			}
			return formatParserError("found duplicate %TAG directive", mark)
		}
	}
	p.tagDirectives = append(p.tagDirectives, value)
	return nil
}

// lookupTagPrefix returns the prefix bound to handle in the current document.
func (p *Parser) lookupTagPrefix(handle []byte) (string, bool) {
	for _, d := range p.tagDirectives {
		if d.handle == string(handle) {
			return d.prefix, true
		}
	}
	return "", false
}

// Parse the productions:
// block_node_or_indentless_sequence    ::=
//
//	ALIAS
//	*****
//	| properties (block_content | indentless_block_sequence)?
//	  **********  *
//	| block_content | indentless_block_sequence
//	  *
//
// block_node           ::= ALIAS
//
//	*****
//	| properties block_content?
//	  ********** *
//	| block_content
//	  *
//
// flow_node            ::= ALIAS
//
//	*****
//	| properties flow_content?
//	  ********** *
//	| flow_content
//	  *
//
// properties           ::= TAG ANCHOR? | ANCHOR TAG?
//
//	*************************
//
// block_content        ::= block_collection | flow_collection | SCALAR
//
//	******
//
// flow_content         ::= flow_collection | SCALAR
//
//	******
func (p *Parser) parseNode(event *Event, block, indentlessSequence bool) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}

	if token.Type == ALIAS_TOKEN {
		name := token.TakeScalar()
		id, err := p.anchors.ResolveAlias(name.Bytes(), token.StartMark)
		p.pool.Return(name)
		if err != nil {
			return err
		}
		p.popState()
		*event = Event{
			Type:      ALIAS_EVENT,
			StartMark: token.StartMark,
			EndMark:   token.EndMark,
			Anchor:    p.anchors.anchor(id),
		}
		p.skipToken()
		return nil
	}

	start := token.StartMark
	end := token.StartMark

	anchor := NoAnchor
	var tag *Tag
	var tagMark Mark

	takeAnchor := func() {
		name := token.TakeScalar()
		anchor = p.anchors.anchor(p.anchors.RegisterAnchor(name.Bytes()))
		p.pool.Return(name)
		end = token.EndMark
		p.skipToken()
	}
	takeTag := func() {
		tag = token.TakeTag()
		tagMark = token.StartMark
		end = token.EndMark
		p.skipToken()
	}

	switch token.Type {
	case ANCHOR_TOKEN:
		takeAnchor()
		if token, err = p.peekToken(); err != nil {
			return err
		}
		if token.Type == TAG_TOKEN {
			takeTag()
			if token, err = p.peekToken(); err != nil {
				p.pool.ReturnTag(tag)
				return err
			}
		}
	case TAG_TOKEN:
		takeTag()
		if token, err = p.peekToken(); err != nil {
			p.pool.ReturnTag(tag)
			return err
		}
		if token.Type == ANCHOR_TOKEN {
			takeAnchor()
			if token, err = p.peekToken(); err != nil {
				p.pool.ReturnTag(tag)
				return err
			}
		}
	}

	if tag != nil && len(tag.Handle()) > 0 {
		if _, ok := p.lookupTagPrefix(tag.Handle()); !ok {
			p.pool.ReturnTag(tag)
			return formatParserErrorContext(
				"while parsing a node", start,
				"found undefined tag handle", tagMark)
		}
	}

	implicit := tag == nil
	*event = Event{
		StartMark: start,
		EndMark:   end,
		Anchor:    anchor,
		Tag:       tag,
		Implicit:  implicit,
	}

	switch {
	case indentlessSequence && token.Type == BLOCK_ENTRY_TOKEN:
		event.Type = SEQUENCE_START_EVENT
		event.EndMark = token.EndMark
		event.Style = Style(BLOCK_SEQUENCE_STYLE)
		p.state = PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE
		return nil

	case token.Type == SCALAR_TOKEN:
		// A scalar is plain-implicit when untagged and plain, or tagged with
		// the non-specific '!' tag.
		var plainImplicit, quotedImplicit bool
		if tag == nil && token.Style == PLAIN_SCALAR_STYLE || tag != nil && tag.Equals("!") {
			plainImplicit = true
		} else if tag == nil {
			quotedImplicit = true
		}
		p.popState()
		event.Type = SCALAR_EVENT
		event.EndMark = token.EndMark
		event.Scalar = token.TakeScalar()
		event.Implicit = plainImplicit
		event.QuotedImplicit = quotedImplicit
		event.Style = Style(token.Style)
		p.skipToken()
		return nil

	case token.Type == FLOW_SEQUENCE_START_TOKEN:
		event.Type = SEQUENCE_START_EVENT
		event.EndMark = token.EndMark
		event.Style = Style(FLOW_SEQUENCE_STYLE)
		p.state = PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE
		return nil

	case token.Type == FLOW_MAPPING_START_TOKEN:
		event.Type = MAPPING_START_EVENT
		event.EndMark = token.EndMark
		event.Style = Style(FLOW_MAPPING_STYLE)
		p.state = PARSE_FLOW_MAPPING_FIRST_KEY_STATE
		return nil

	case block && token.Type == BLOCK_SEQUENCE_START_TOKEN:
		event.Type = SEQUENCE_START_EVENT
		event.EndMark = token.EndMark
		event.Style = Style(BLOCK_SEQUENCE_STYLE)
		p.state = PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE
		return nil

	case block && token.Type == BLOCK_MAPPING_START_TOKEN:
		event.Type = MAPPING_START_EVENT
		event.EndMark = token.EndMark
		event.Style = Style(BLOCK_MAPPING_STYLE)
		p.state = PARSE_BLOCK_MAPPING_FIRST_KEY_STATE
		return nil

	case !anchor.IsZero() || tag != nil:
		// Properties without content: an empty scalar.
		p.popState()
		event.Type = SCALAR_EVENT
		event.Scalar = NullScalar
		event.Style = Style(PLAIN_SCALAR_STYLE)
		return nil
	}

	*event = Event{Anchor: NoAnchor}
	p.pool.ReturnTag(tag)
	context := "while parsing a flow node"
	if block {
		context = "while parsing a block node"
	}
	return formatParserErrorContext(context, start,
		"did not find expected node content", token.StartMark)
}

// Parse the productions:
// block_sequence ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
//
//	********************  *********** *             *********
func (p *Parser) parseBlockSequenceEntry(event *Event, first bool) error {
	if first {
		token, err := p.peekToken()
		if err != nil {
			return err
		}
		p.marks = append(p.marks, token.StartMark)
		p.skipToken()
	}

	token, err := p.peekToken()
	if err != nil {
		return err
	}

	switch token.Type {
	case BLOCK_ENTRY_TOKEN:
		mark := token.EndMark
		p.skipToken()
		if token, err = p.peekToken(); err != nil {
			return err
		}
		if token.Type != BLOCK_ENTRY_TOKEN && token.Type != BLOCK_END_TOKEN {
			p.states = append(p.states, PARSE_BLOCK_SEQUENCE_ENTRY_STATE)
			return p.parseNode(event, true, false)
		}
		p.state = PARSE_BLOCK_SEQUENCE_ENTRY_STATE
		return p.processEmptyScalar(event, mark)

	case BLOCK_END_TOKEN:
		p.popState()
		p.popMark()
		*event = Event{
			Type:      SEQUENCE_END_EVENT,
			StartMark: token.StartMark,
			EndMark:   token.EndMark,
			Anchor:    NoAnchor,
		}
		p.skipToken()
		return nil
	}

	return formatParserErrorContext(
		"while parsing a block collection", p.popMark(),
		"did not find expected '-' indicator", token.StartMark)
}

// Parse the productions:
// indentless_sequence  ::= (BLOCK-ENTRY block_node?)+
//
//	*********** *
func (p *Parser) parseIndentlessSequenceEntry(event *Event) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}

	if token.Type == BLOCK_ENTRY_TOKEN {
		mark := token.EndMark
		p.skipToken()
		if token, err = p.peekToken(); err != nil {
			return err
		}
		if token.Type != BLOCK_ENTRY_TOKEN &&
			token.Type != KEY_TOKEN &&
			token.Type != VALUE_TOKEN &&
			token.Type != BLOCK_END_TOKEN {
			p.states = append(p.states, PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE)
			return p.parseNode(event, true, false)
		}
		p.state = PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE
		return p.processEmptyScalar(event, mark)
	}
	p.popState()
	*event = Event{
		Type:      SEQUENCE_END_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.StartMark,
		Anchor:    NoAnchor,
	}
	return nil
}

// Parse the productions:
// block_mapping        ::= BLOCK-MAPPING_START
//
//	*******************
//	((KEY block_node_or_indentless_sequence?)?
//	  *** *
//	(VALUE block_node_or_indentless_sequence?)?)*
//
//	BLOCK-END
//	*********
func (p *Parser) parseBlockMappingKey(event *Event, first bool) error {
	if first {
		token, err := p.peekToken()
		if err != nil {
			return err
		}
		p.marks = append(p.marks, token.StartMark)
		p.skipToken()
	}

	token, err := p.peekToken()
	if err != nil {
		return err
	}

	switch token.Type {
	case KEY_TOKEN:
		mark := token.EndMark
		p.skipToken()
		if token, err = p.peekToken(); err != nil {
			return err
		}
		if token.Type != KEY_TOKEN &&
			token.Type != VALUE_TOKEN &&
			token.Type != BLOCK_END_TOKEN {
			p.states = append(p.states, PARSE_BLOCK_MAPPING_VALUE_STATE)
			return p.parseNode(event, true, true)
		}
		p.state = PARSE_BLOCK_MAPPING_VALUE_STATE
		return p.processEmptyScalar(event, mark)

	case BLOCK_END_TOKEN:
		p.popState()
		p.popMark()
		*event = Event{
			Type:      MAPPING_END_EVENT,
			StartMark: token.StartMark,
			EndMark:   token.EndMark,
			Anchor:    NoAnchor,
		}
		p.skipToken()
		return nil
	}

	return formatParserErrorContext(
		"while parsing a block mapping", p.popMark(),
		"did not find expected key", token.StartMark)
}

// Parse the productions:
// block_mapping        ::= BLOCK-MAPPING_START
//
//	((KEY block_node_or_indentless_sequence?)?
//
//	(VALUE block_node_or_indentless_sequence?)?)*
//	 ***** *
//	BLOCK-END
func (p *Parser) parseBlockMappingValue(event *Event) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}
	if token.Type == VALUE_TOKEN {
		mark := token.EndMark
		p.skipToken()
		if token, err = p.peekToken(); err != nil {
			return err
		}
		if token.Type != KEY_TOKEN &&
			token.Type != VALUE_TOKEN &&
			token.Type != BLOCK_END_TOKEN {
			p.states = append(p.states, PARSE_BLOCK_MAPPING_KEY_STATE)
			return p.parseNode(event, true, true)
		}
		p.state = PARSE_BLOCK_MAPPING_KEY_STATE
		return p.processEmptyScalar(event, mark)
	}
	p.state = PARSE_BLOCK_MAPPING_KEY_STATE
	return p.processEmptyScalar(event, token.StartMark)
}

// Parse the productions:
// flow_sequence        ::= FLOW-SEQUENCE-START
//
//	*******************
//	(flow_sequence_entry FLOW-ENTRY)*
//	 *                   **********
//	flow_sequence_entry?
//	*
//	FLOW-SEQUENCE-END
//	*****************
//
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*
func (p *Parser) parseFlowSequenceEntry(event *Event, first bool) error {
	if first {
		token, err := p.peekToken()
		if err != nil {
			return err
		}
		p.marks = append(p.marks, token.StartMark)
		p.skipToken()
	}
	token, err := p.peekToken()
	if err != nil {
		return err
	}
	if token.Type != FLOW_SEQUENCE_END_TOKEN {
		if !first {
			if token.Type != FLOW_ENTRY_TOKEN {
				return formatParserErrorContext(
					"while parsing a flow sequence", p.popMark(),
					"did not find expected ',' or ']'", token.StartMark)
			}
			p.skipToken()
			if token, err = p.peekToken(); err != nil {
				return err
			}
		}

		if token.Type == KEY_TOKEN {
			p.state = PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE
			*event = Event{
				Type:      MAPPING_START_EVENT,
				StartMark: token.StartMark,
				EndMark:   token.EndMark,
				Anchor:    NoAnchor,
				Implicit:  true,
				Style:     Style(FLOW_MAPPING_STYLE),
			}
			p.skipToken()
			return nil
		} else if token.Type != FLOW_SEQUENCE_END_TOKEN {
			p.states = append(p.states, PARSE_FLOW_SEQUENCE_ENTRY_STATE)
			return p.parseNode(event, false, false)
		}
	}

	p.popState()
	p.popMark()
	*event = Event{
		Type:      SEQUENCE_END_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.EndMark,
		Anchor:    NoAnchor,
	}
	p.skipToken()
	return nil
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*** *
func (p *Parser) parseFlowSequenceEntryMappingKey(event *Event) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}
	if token.Type != VALUE_TOKEN &&
		token.Type != FLOW_ENTRY_TOKEN &&
		token.Type != FLOW_SEQUENCE_END_TOKEN {
		p.states = append(p.states, PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE)
		return p.parseNode(event, false, false)
	}
	mark := token.EndMark
	p.state = PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE
	return p.processEmptyScalar(event, mark)
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	***** *
func (p *Parser) parseFlowSequenceEntryMappingValue(event *Event) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}
	if token.Type == VALUE_TOKEN {
		p.skipToken()
		if token, err = p.peekToken(); err != nil {
			return err
		}
		if token.Type != FLOW_ENTRY_TOKEN && token.Type != FLOW_SEQUENCE_END_TOKEN {
			p.states = append(p.states, PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE)
			return p.parseNode(event, false, false)
		}
	}
	p.state = PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE
	return p.processEmptyScalar(event, token.StartMark)
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*
func (p *Parser) parseFlowSequenceEntryMappingEnd(event *Event) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}
	p.state = PARSE_FLOW_SEQUENCE_ENTRY_STATE
	*event = Event{
		Type:      MAPPING_END_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.StartMark,
		Anchor:    NoAnchor,
	}
	return nil
}

// Parse the productions:
// flow_mapping         ::= FLOW-MAPPING-START
//
//	******************
//	(flow_mapping_entry FLOW-ENTRY)*
//	 *                  **********
//	flow_mapping_entry?
//	******************
//	FLOW-MAPPING-END
//	****************
//
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//   - *** *
func (p *Parser) parseFlowMappingKey(event *Event, first bool) error {
	if first {
		token, err := p.peekToken()
		if err != nil {
			return err
		}
		p.marks = append(p.marks, token.StartMark)
		p.skipToken()
	}

	token, err := p.peekToken()
	if err != nil {
		return err
	}

	if token.Type != FLOW_MAPPING_END_TOKEN {
		if !first {
			if token.Type != FLOW_ENTRY_TOKEN {
				return formatParserErrorContext(
					"while parsing a flow mapping", p.popMark(),
					"did not find expected ',' or '}'", token.StartMark)
			}
			p.skipToken()
			if token, err = p.peekToken(); err != nil {
				return err
			}
		}

		if token.Type == KEY_TOKEN {
			p.skipToken()
			if token, err = p.peekToken(); err != nil {
				return err
			}
			if token.Type != VALUE_TOKEN &&
				token.Type != FLOW_ENTRY_TOKEN &&
				token.Type != FLOW_MAPPING_END_TOKEN {
				p.states = append(p.states, PARSE_FLOW_MAPPING_VALUE_STATE)
				return p.parseNode(event, false, false)
			}
			p.state = PARSE_FLOW_MAPPING_VALUE_STATE
			return p.processEmptyScalar(event, token.StartMark)
		} else if token.Type != FLOW_MAPPING_END_TOKEN {
			p.states = append(p.states, PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE)
			return p.parseNode(event, false, false)
		}
	}

	p.popState()
	p.popMark()
	*event = Event{
		Type:      MAPPING_END_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.EndMark,
		Anchor:    NoAnchor,
	}
	p.skipToken()
	return nil
}

// Parse the productions:
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//   - ***** *
func (p *Parser) parseFlowMappingValue(event *Event, empty bool) error {
	token, err := p.peekToken()
	if err != nil {
		return err
	}
	if empty {
		p.state = PARSE_FLOW_MAPPING_KEY_STATE
		return p.processEmptyScalar(event, token.StartMark)
	}
	if token.Type == VALUE_TOKEN {
		p.skipToken()
		if token, err = p.peekToken(); err != nil {
			return err
		}
		if token.Type != FLOW_ENTRY_TOKEN && token.Type != FLOW_MAPPING_END_TOKEN {
			p.states = append(p.states, PARSE_FLOW_MAPPING_KEY_STATE)
			return p.parseNode(event, false, false)
		}
	}
	p.state = PARSE_FLOW_MAPPING_KEY_STATE
	return p.processEmptyScalar(event, token.StartMark)
}

// peekToken returns the next grammar token. COMMENT tokens found on the way
// are moved into the pending event queue.
func (p *Parser) peekToken() (*Token, error) {
	for {
		token, err := p.scanner.Peek()
		if err != nil {
			return nil, err
		}
		if token.Type != COMMENT_TOKEN {
			return token, nil
		}
		p.pending = append(p.pending, commentEvent(token))
		p.scanner.Skip()
	}
}

// Remove the next token from the queue (must be called after peekToken).
func (p *Parser) skipToken() {
	p.scanner.Skip()
}

// commentEvent moves the text of a COMMENT token into a new event.
func commentEvent(token *Token) Event {
	return Event{
		Type:      COMMENT_EVENT,
		StartMark: token.StartMark,
		EndMark:   token.EndMark,
		Anchor:    NoAnchor,
		Scalar:    token.TakeScalar(),
	}
}

// formatParserError creates a ParserError with the given problem message
// and mark position.
func formatParserError(problem string, problemMark Mark) error {
	return ParserError{
		Mark:    problemMark,
		Message: problem,
	}
}

// formatParserErrorContext creates a ParserError with both context and
// problem information, each with their own mark positions.
func formatParserErrorContext(context string, contextMark Mark, problem string, problemMark Mark) error {
	return ParserError{
		ContextMark:    contextMark,
		ContextMessage: context,

		Mark:    problemMark,
		Message: problem,
	}
}

// Generate an empty scalar event.
func (p *Parser) processEmptyScalar(event *Event, mark Mark) error {
	*event = Event{
		Type:      SCALAR_EVENT,
		StartMark: mark,
		EndMark:   mark,
		Anchor:    NoAnchor,
		Scalar:    NullScalar,
		Implicit:  true,
		Style:     Style(PLAIN_SCALAR_STYLE),
	}
	return nil
}
