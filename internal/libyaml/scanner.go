// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Scanner stage: transforms the input bytes into a token stream.
//
// The scanner follows the libyaml design. Tokens are appended to a queue
// that the parser drains from the head. Two things make the queue more
// than a FIFO:
//
//   - A plain or quoted scalar, an alias, a tag or a flow collection may
//     turn out to be a simple key once a ':' follows it. Its queue position
//     is remembered, and when the ':' arrives a KEY token (and possibly a
//     BLOCK-MAPPING-START token) is inserted in front of it.
//   - Block collections have no start indicator. The scanner tracks the
//     indentation column stack and synthesizes BLOCK-SEQUENCE-START,
//     BLOCK-MAPPING-START and BLOCK-END tokens as columns change.
//
// The parser is never handed the head token while it may still become a
// simple key.

package libyaml

import (
	"io"
)

const (
	maxFlowLevel       = 10000
	maxIndents         = 10000
	maxSimpleKeyLength = 1024
	maxNumberLength    = 2
)

// simpleKey holds information about a potential simple key.
type simpleKey struct {
	possible    bool // Is a simple key possible?
	required    bool // Is a simple key required?
	tokenNumber int  // The number of the token.
	mark        Mark // The position mark.
}

// Scanner produces tokens from a ByteCursor.
type Scanner struct {
	cur  *ByteCursor
	pool *ScalarPool

	preserveComments bool
	stripLeading     bool

	tokens         *TokenQueue
	tokensParsed   int  // The number of tokens fetched from the queue.
	tokenAvailable bool // Does the tokens queue contain a token ready for dequeueing.

	streamStartProduced bool
	streamEndFetched    bool

	indent  int   // The current indentation level.
	indents []int // The indentation levels stack.

	simpleKeyAllowed bool        // May a simple key occur at the current position?
	simpleKeys       []simpleKey // The stack of simple keys, one per flow level.

	flowLevel int // The number of unclosed '[' and '{' indicators.

	truncated     bool // A multibyte character was cut off by the end of input.
	truncatedMark Mark

	err error
}

// NewScanner returns a scanner reading from cur and renting scalar buffers
// from pool.
func NewScanner(cur *ByteCursor, pool *ScalarPool, opts Options) *Scanner {
	s := &Scanner{
		pool:             pool,
		preserveComments: opts.PreserveComments,
		stripLeading:     opts.StripLeadingWhitespace,
		tokens:           NewTokenQueue(initialQueueCapacity),
	}
	s.Reset(cur)
	return s
}

// Reset rewinds the scanner onto cur, keeping its allocations.
func (s *Scanner) Reset(cur *ByteCursor) {
	s.tokens.Clear(s.pool)
	s.cur = cur
	s.tokensParsed = 0
	s.tokenAvailable = false
	s.streamStartProduced = false
	s.streamEndFetched = false
	s.indent = -1
	s.indents = s.indents[:0]
	s.simpleKeyAllowed = false
	s.simpleKeys = s.simpleKeys[:0]
	s.flowLevel = 0
	s.truncated = false
	s.err = nil
}

// Peek returns the next token without consuming it. After STREAM-END has
// been consumed it returns io.EOF.
func (s *Scanner) Peek() (*Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !s.tokenAvailable {
		if err := s.fetchMoreTokens(); err != nil {
			return nil, err
		}
	}
	t := s.tokens.Peek()
	if t == nil {
		return nil, io.EOF
	}
	return t, nil
}

// Next removes and returns the next token. Ownership of its buffers passes
// to the caller.
func (s *Scanner) Next() (Token, error) {
	if _, err := s.Peek(); err != nil {
		return Token{}, err
	}
	s.tokenAvailable = false
	s.tokensParsed++
	return s.tokens.Dequeue(), nil
}

// Skip discards the next token, returning any buffers it still owns to the
// pool.
func (s *Scanner) Skip() {
	if s.tokens.Len() == 0 {
		return
	}
	s.tokenAvailable = false
	s.tokensParsed++
	t := s.tokens.Dequeue()
	t.release(s.pool)
}

// Err returns the error that stopped the scanner, if any.
func (s *Scanner) Err() error { return s.err }

func (s *Scanner) fail(context string, contextMark Mark, problem string) error {
	s.err = ScannerError{
		ContextMessage: context,
		ContextMark:    contextMark,
		Mark:           s.cur.Mark(),
		Message:        problem,
	}
	return s.err
}

func (s *Scanner) failTag(directive bool, contextMark Mark, problem string) error {
	context := "while parsing a tag"
	if directive {
		context = "while parsing a %TAG directive"
	}
	return s.fail(context, contextMark, problem)
}

func (s *Scanner) ch(k int) byte { return s.cur.at(k) }

func (s *Scanner) mark() Mark { return s.cur.Mark() }

// charWidth returns the byte length of the character at the cursor. A
// multibyte sequence cut off by the end of input is recorded in truncated
// and shortened to the bytes that remain.
func (s *Scanner) charWidth() int {
	w := width(s.ch(0))
	if w <= 1 {
		return 1
	}
	if !s.cur.Remaining(w) {
		if !s.truncated {
			s.truncated = true
			s.truncatedMark = s.mark()
		}
		for w > 1 && !s.cur.Remaining(w) {
			w--
		}
	}
	return w
}

// skip advances past one character.
func (s *Scanner) skip() {
	s.cur.Advance(s.charWidth())
}

// skipLine advances past one line break.
func (s *Scanner) skipLine() {
	switch {
	case s.ch(0) == '\r' && s.ch(1) == '\n':
		s.cur.Advance(2)
	case isBreak(s.ch(0)):
		s.cur.Advance(1)
	}
}

// read copies one character into sc and advances past it.
func (s *Scanner) read(sc *Scalar) {
	w := s.charWidth()
	for i := 0; i < w; i++ {
		sc.AppendByte(s.ch(i))
	}
	s.cur.Advance(w)
}

// readLine copies one line break into sc, normalized to LF.
func (s *Scanner) readLine(sc *Scalar) {
	if isBreak(s.ch(0)) {
		sc.AppendByte('\n')
		s.skipLine()
	}
}

func (s *Scanner) release(bufs ...*Scalar) {
	for _, b := range bufs {
		s.pool.Return(b)
	}
}

func (s *Scanner) atDocumentIndicator() bool {
	if s.mark().Column != 0 {
		return false
	}
	c0, c1, c2 := s.ch(0), s.ch(1), s.ch(2)
	return (c0 == '-' && c1 == '-' && c2 == '-' || c0 == '.' && c1 == '.' && c2 == '.') && isBlankOrZero(s.ch(3))
}

// Ensure that the tokens queue contains at least one token which can be
// returned to the parser.
func (s *Scanner) fetchMoreTokens() error {
	for {
		needMore := false
		if s.tokens.Len() == 0 {
			needMore = !s.streamEndFetched
		} else {
			if err := s.staleSimpleKeys(); err != nil {
				return err
			}
			for i := range s.simpleKeys {
				k := &s.simpleKeys[i]
				if k.possible && k.tokenNumber == s.tokensParsed {
					needMore = true
					break
				}
			}
		}
		if !needMore || s.streamEndFetched {
			break
		}
		if err := s.fetchNextToken(); err != nil {
			return err
		}
		if s.truncated {
			return s.fail("while reading input", s.truncatedMark,
				"incomplete UTF-8 octet sequence")
		}
	}
	s.tokenAvailable = true
	return nil
}

// The dispatcher for token fetchers.
func (s *Scanner) fetchNextToken() error {
	if !s.streamStartProduced {
		s.fetchStreamStart()
		return nil
	}

	if err := s.scanToNextToken(); err != nil {
		return err
	}
	if err := s.staleSimpleKeys(); err != nil {
		return err
	}
	s.unrollIndent(s.mark().Column, s.mark())

	c := s.ch(0)
	if isZ(c) {
		if !s.cur.EOF() {
			return s.fail("while scanning for the next token", s.mark(),
				"control characters are not allowed")
		}
		return s.fetchStreamEnd()
	}

	if s.mark().Column == 0 && c == '%' {
		return s.fetchDirective()
	}
	if s.atDocumentIndicator() {
		if c == '-' {
			return s.fetchDocumentIndicator(DOCUMENT_START_TOKEN)
		}
		return s.fetchDocumentIndicator(DOCUMENT_END_TOKEN)
	}

	switch {
	case c == '[':
		return s.fetchFlowCollectionStart(FLOW_SEQUENCE_START_TOKEN)
	case c == '{':
		return s.fetchFlowCollectionStart(FLOW_MAPPING_START_TOKEN)
	case c == ']':
		return s.fetchFlowCollectionEnd(FLOW_SEQUENCE_END_TOKEN)
	case c == '}':
		return s.fetchFlowCollectionEnd(FLOW_MAPPING_END_TOKEN)
	case c == ',':
		return s.fetchFlowEntry()
	case c == '-' && isBlankOrZero(s.ch(1)):
		return s.fetchBlockEntry()
	case c == '?' && (s.flowLevel > 0 || isBlankOrZero(s.ch(1))):
		return s.fetchKey()
	case c == ':' && (s.flowLevel > 0 && (isFlowIndicator(s.ch(1)) || isBlankOrZero(s.ch(1))) || isBlankOrZero(s.ch(1))):
		return s.fetchValue()
	case c == '*':
		return s.fetchAnchor(ALIAS_TOKEN)
	case c == '&':
		return s.fetchAnchor(ANCHOR_TOKEN)
	case c == '!':
		return s.fetchTag()
	case c == '|' && s.flowLevel == 0:
		return s.fetchBlockScalar(true)
	case c == '>' && s.flowLevel == 0:
		return s.fetchBlockScalar(false)
	case c == '\'':
		return s.fetchFlowScalar(true)
	case c == '"':
		return s.fetchFlowScalar(false)
	}

	// A plain scalar may start with any non-blank characters except
	//
	//      '-', '?', ':', ',', '[', ']', '{', '}',
	//      '#', '&', '*', '!', '|', '>', '\'', '\"',
	//      '%', '@', '`'.
	//
	// In the block context (and, for the '-' indicator, in the flow context
	// too), it may also start with the characters
	//
	//      '-', '?', ':'
	//
	// if it is followed by a non-space character.
	switch c {
	case '-', '?', ':', ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
	default:
		if !isBlankOrZero(c) {
			return s.fetchPlainScalar()
		}
	}
	if c == '-' && !isBlank(s.ch(1)) ||
		s.flowLevel == 0 && (c == '?' || c == ':') && !isBlankOrZero(s.ch(1)) {
		return s.fetchPlainScalar()
	}

	if c == '\t' && s.flowLevel == 0 {
		return s.fail("while scanning for the next token", s.mark(),
			"found a tab character that violates indentation")
	}
	return s.fail("while scanning for the next token", s.mark(),
		"found character that cannot start any token")
}

// Check the list of potential simple keys and remove the positions that
// cannot contain simple keys anymore.
func (s *Scanner) staleSimpleKeys() error {
	m := s.mark()
	for i := range s.simpleKeys {
		k := &s.simpleKeys[i]
		// A simple key is limited to a single line and to 1024 characters.
		if k.possible && (k.mark.Line < m.Line || k.mark.Index+maxSimpleKeyLength < m.Index) {
			if k.required {
				return s.fail("while scanning a simple key", k.mark,
					"could not find expected ':'")
			}
			k.possible = false
		}
	}
	return nil
}

// Check if a simple key may start at the current position and add it if
// needed.
func (s *Scanner) saveSimpleKey() error {
	// A simple key is required at the current position if the scanner is
	// in the block context and the current column coincides with the
	// indentation level.
	required := s.flowLevel == 0 && s.indent == s.mark().Column

	if s.simpleKeyAllowed {
		k := simpleKey{
			possible:    true,
			required:    required,
			tokenNumber: s.tokensParsed + s.tokens.Len(),
			mark:        s.mark(),
		}
		if err := s.removeSimpleKey(); err != nil {
			return err
		}
		s.simpleKeys[len(s.simpleKeys)-1] = k
	}
	return nil
}

// Remove a potential simple key at the current flow level.
func (s *Scanner) removeSimpleKey() error {
	i := len(s.simpleKeys) - 1
	if s.simpleKeys[i].possible && s.simpleKeys[i].required {
		return s.fail("while scanning a simple key", s.simpleKeys[i].mark,
			"could not find expected ':'")
	}
	s.simpleKeys[i].possible = false
	return nil
}

// Increase the flow level and resize the simple key list if needed.
func (s *Scanner) increaseFlowLevel() error {
	if s.flowLevel >= maxFlowLevel {
		return s.fail("while increasing flow level", s.mark(),
			"exceeded max depth of 10000")
	}
	s.simpleKeys = append(s.simpleKeys, simpleKey{})
	s.flowLevel++
	return nil
}

// Decrease the flow level.
func (s *Scanner) decreaseFlowLevel() {
	if s.flowLevel > 0 {
		s.flowLevel--
		s.simpleKeys = s.simpleKeys[:len(s.simpleKeys)-1]
	}
}

// Push the current indentation level to the stack and set the new level if
// the current column is greater than the indentation level. In this case,
// append or insert the specified token into the token queue. A number of
// -1 appends.
func (s *Scanner) rollIndent(column, number int, typ TokenType, mark Mark) error {
	if s.flowLevel > 0 {
		return nil
	}
	if s.indent < column {
		if len(s.indents) >= maxIndents {
			return s.fail("while increasing indent level", s.mark(),
				"exceeded max depth of 10000")
		}
		s.indents = append(s.indents, s.indent)
		s.indent = column

		t := Token{Type: typ, StartMark: mark, EndMark: mark}
		if number > -1 {
			s.tokens.Insert(number-s.tokensParsed, t)
		} else {
			s.tokens.Enqueue(t)
		}
	}
	return nil
}

// Pop indentation levels from the indents stack until the current level
// becomes less or equal to the column. For each indentation level, append
// the BLOCK-END token.
func (s *Scanner) unrollIndent(column int, mark Mark) {
	if s.flowLevel > 0 {
		return
	}
	for s.indent > column {
		s.tokens.Enqueue(Token{Type: BLOCK_END_TOKEN, StartMark: mark, EndMark: mark})
		s.indent = s.indents[len(s.indents)-1]
		s.indents = s.indents[:len(s.indents)-1]
	}
}

// Initialize the scanner and produce the STREAM-START token.
func (s *Scanner) fetchStreamStart() {
	s.cur.skipBOM()
	s.indent = -1
	s.simpleKeys = append(s.simpleKeys, simpleKey{})
	s.simpleKeyAllowed = true
	s.streamStartProduced = true
	m := s.mark()
	s.tokens.Enqueue(Token{Type: STREAM_START_TOKEN, StartMark: m, EndMark: m})
}

// Produce the STREAM-END token and shut down the scanner.
func (s *Scanner) fetchStreamEnd() error {
	// Force new line.
	m := s.mark()
	if m.Column != 0 {
		m.Column = 0
		m.Line++
	}
	s.unrollIndent(-1, m)
	// No key spans the end of input, whatever its flow level.
	for i := range s.simpleKeys {
		k := &s.simpleKeys[i]
		if k.possible && k.required {
			return s.fail("while scanning a simple key", k.mark,
				"could not find expected ':'")
		}
		k.possible = false
	}
	s.simpleKeyAllowed = false
	s.streamEndFetched = true
	s.tokens.Enqueue(Token{Type: STREAM_END_TOKEN, StartMark: m, EndMark: m})
	return nil
}

// Produce a VERSION-DIRECTIVE or TAG-DIRECTIVE token.
func (s *Scanner) fetchDirective() error {
	s.unrollIndent(-1, s.mark())
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	return s.scanDirective()
}

// Produce the DOCUMENT-START or DOCUMENT-END token.
func (s *Scanner) fetchDocumentIndicator(typ TokenType) error {
	s.unrollIndent(-1, s.mark())
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false

	start := s.mark()
	s.cur.Advance(3)
	s.tokens.Enqueue(Token{Type: typ, StartMark: start, EndMark: s.mark()})
	return nil
}

// Produce the FLOW-SEQUENCE-START or FLOW-MAPPING-START token.
func (s *Scanner) fetchFlowCollectionStart(typ TokenType) error {
	// The indicators '[' and '{' may start a simple key.
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	if err := s.increaseFlowLevel(); err != nil {
		return err
	}
	// A simple key may follow the indicators '[' and '{'.
	s.simpleKeyAllowed = true

	start := s.mark()
	s.skip()
	s.tokens.Enqueue(Token{Type: typ, StartMark: start, EndMark: s.mark()})
	return nil
}

// Produce the FLOW-SEQUENCE-END or FLOW-MAPPING-END token.
func (s *Scanner) fetchFlowCollectionEnd(typ TokenType) error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.decreaseFlowLevel()
	// No simple keys after the indicators ']' and '}'.
	s.simpleKeyAllowed = false

	start := s.mark()
	s.skip()
	s.tokens.Enqueue(Token{Type: typ, StartMark: start, EndMark: s.mark()})
	return nil
}

// Produce the FLOW-ENTRY token.
func (s *Scanner) fetchFlowEntry() error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = true

	start := s.mark()
	s.skip()
	s.tokens.Enqueue(Token{Type: FLOW_ENTRY_TOKEN, StartMark: start, EndMark: s.mark()})
	return nil
}

// Produce the BLOCK-ENTRY token.
func (s *Scanner) fetchBlockEntry() error {
	if s.flowLevel == 0 {
		if !s.simpleKeyAllowed {
			return s.fail("", s.mark(),
				"block sequence entries are not allowed in this context")
		}
		if err := s.rollIndent(s.mark().Column, -1, BLOCK_SEQUENCE_START_TOKEN, s.mark()); err != nil {
			return err
		}
	}
	// A '-' in the flow context is reported by the parser, which can point
	// at the enclosing collection.

	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = true

	start := s.mark()
	s.skip()
	s.tokens.Enqueue(Token{Type: BLOCK_ENTRY_TOKEN, StartMark: start, EndMark: s.mark()})
	return nil
}

// Produce the KEY token.
func (s *Scanner) fetchKey() error {
	if s.flowLevel == 0 {
		if !s.simpleKeyAllowed {
			return s.fail("", s.mark(),
				"mapping keys are not allowed in this context")
		}
		if err := s.rollIndent(s.mark().Column, -1, BLOCK_MAPPING_START_TOKEN, s.mark()); err != nil {
			return err
		}
	}

	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	// Simple keys are allowed after '?' in the block context.
	s.simpleKeyAllowed = s.flowLevel == 0

	start := s.mark()
	s.skip()
	s.tokens.Enqueue(Token{Type: KEY_TOKEN, StartMark: start, EndMark: s.mark()})
	return nil
}

// Produce the VALUE token.
func (s *Scanner) fetchValue() error {
	k := &s.simpleKeys[len(s.simpleKeys)-1]

	if k.possible {
		// Insert the KEY token in front of the simple key.
		s.tokens.Insert(k.tokenNumber-s.tokensParsed, Token{
			Type:      KEY_TOKEN,
			StartMark: k.mark,
			EndMark:   k.mark,
		})

		// In the block context, we may need to add the BLOCK-MAPPING-START
		// token.
		if err := s.rollIndent(k.mark.Column, k.tokenNumber, BLOCK_MAPPING_START_TOKEN, k.mark); err != nil {
			return err
		}

		k.possible = false
		// A simple key cannot follow another simple key.
		s.simpleKeyAllowed = false
	} else {
		// The ':' indicator follows a complex key.
		if s.flowLevel == 0 {
			if !s.simpleKeyAllowed {
				return s.fail("", s.mark(),
					"mapping values are not allowed in this context")
			}
			if err := s.rollIndent(s.mark().Column, -1, BLOCK_MAPPING_START_TOKEN, s.mark()); err != nil {
				return err
			}
		}
		// Simple keys after ':' are allowed in the block context.
		s.simpleKeyAllowed = s.flowLevel == 0
	}

	start := s.mark()
	s.skip()
	s.tokens.Enqueue(Token{Type: VALUE_TOKEN, StartMark: start, EndMark: s.mark()})
	return nil
}

// Produce the ALIAS or ANCHOR token.
func (s *Scanner) fetchAnchor(typ TokenType) error {
	// An anchor or an alias could be a simple key.
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	return s.scanAnchor(typ)
}

// Produce the TAG token.
func (s *Scanner) fetchTag() error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	return s.scanTag()
}

// Produce the SCALAR(...,literal) or SCALAR(...,folded) tokens.
func (s *Scanner) fetchBlockScalar(literal bool) error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	// A simple key may follow a block scalar.
	s.simpleKeyAllowed = true
	return s.scanBlockScalar(literal)
}

// Produce the SCALAR(...,single-quoted) or SCALAR(...,double-quoted) tokens.
func (s *Scanner) fetchFlowScalar(single bool) error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	return s.scanFlowScalar(single)
}

// Produce the SCALAR(...,plain) token.
func (s *Scanner) fetchPlainScalar() error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	return s.scanPlainScalar()
}

// Eat whitespaces and comments until the next token is found.
func (s *Scanner) scanToNextToken() error {
	for {
		// Tabs are allowed in the flow context, and in the block context
		// anywhere a simple key cannot start.
		for s.ch(0) == ' ' || (s.flowLevel > 0 || !s.simpleKeyAllowed) && s.ch(0) == '\t' {
			s.skip()
		}

		if s.ch(0) == '#' {
			s.scanComment()
		}

		if !isBreak(s.ch(0)) {
			return nil
		}
		s.skipLine()

		// In the block context, a new line may start a simple key.
		if s.flowLevel == 0 {
			s.simpleKeyAllowed = true
		}
	}
}

// scanComment consumes a comment up to the line break and, when comments
// are preserved, queues a COMMENT token holding its text.
func (s *Scanner) scanComment() {
	if !s.preserveComments {
		for !isBreakOrZero(s.ch(0)) {
			s.skip()
		}
		return
	}

	start := s.mark()
	s.skip()
	if s.stripLeading {
		for isBlank(s.ch(0)) {
			s.skip()
		}
	}
	text := s.pool.Rent()
	for !isBreakOrZero(s.ch(0)) {
		s.read(text)
	}
	s.tokens.Enqueue(Token{
		Type:      COMMENT_TOKEN,
		StartMark: start,
		EndMark:   s.mark(),
		scalar:    text,
	})
}

// Eat blanks and an optional comment up to the end of the line. Anything
// else before the line break is an error.
func (s *Scanner) scanLineTail(context string, start Mark) error {
	for isBlank(s.ch(0)) {
		s.skip()
	}
	if s.ch(0) == '#' {
		s.scanComment()
	}
	if !isBreakOrZero(s.ch(0)) {
		return s.fail(context, start, "did not find expected comment or line break")
	}
	s.skipLine()
	return nil
}

// Scan a VERSION-DIRECTIVE or TAG-DIRECTIVE token.
//
// Scope:
//
//	%YAML    1.1    # a comment \n
//	^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
func (s *Scanner) scanDirective() error {
	start := s.mark()
	s.skip()

	name := s.pool.Rent()
	defer s.pool.Return(name)
	if err := s.scanDirectiveName(start, name); err != nil {
		return err
	}

	var t Token
	switch {
	case name.Equal("YAML"):
		var major, minor int8
		if err := s.scanVersionDirectiveValue(start, &major, &minor); err != nil {
			return err
		}
		t = Token{
			Type:      VERSION_DIRECTIVE_TOKEN,
			StartMark: start,
			EndMark:   s.mark(),
			version:   VersionDirective{major: major, minor: minor},
		}
	case name.Equal("TAG"):
		tag := s.pool.RentTag()
		if err := s.scanTagDirectiveValue(start, tag); err != nil {
			s.pool.ReturnTag(tag)
			return err
		}
		t = Token{
			Type:      TAG_DIRECTIVE_TOKEN,
			StartMark: start,
			EndMark:   s.mark(),
			tag:       tag,
		}
	default:
		return s.fail("while scanning a directive", start,
			"found unknown directive name")
	}

	if err := s.scanLineTail("while scanning a directive", start); err != nil {
		t.release(s.pool)
		return err
	}
	s.tokens.Enqueue(t)
	return nil
}

// Scan the directive name.
//
// Scope:
//
//	%YAML   1.1     # a comment \n
//	 ^^^^
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	 ^^^
func (s *Scanner) scanDirectiveName(start Mark, name *Scalar) error {
	for isAlpha(s.ch(0)) {
		s.read(name)
	}
	if name.Len() == 0 {
		return s.fail("while scanning a directive", start,
			"could not find expected directive name")
	}
	if !isBlankOrZero(s.ch(0)) {
		return s.fail("while scanning a directive", start,
			"found unexpected non-alphabetical character")
	}
	return nil
}

// Scan the value of VERSION-DIRECTIVE.
//
// Scope:
//
//	%YAML   1.1     # a comment \n
//	     ^^^^^^
func (s *Scanner) scanVersionDirectiveValue(start Mark, major, minor *int8) error {
	for isBlank(s.ch(0)) {
		s.skip()
	}
	if err := s.scanVersionDirectiveNumber(start, major); err != nil {
		return err
	}
	if s.ch(0) != '.' {
		return s.fail("while scanning a %YAML directive", start,
			"did not find expected digit or '.' character")
	}
	s.skip()
	return s.scanVersionDirectiveNumber(start, minor)
}

// Scan the version number of VERSION-DIRECTIVE.
//
// Scope:
//
//	%YAML   1.1     # a comment \n
//	        ^
//	%YAML   1.1     # a comment \n
//	          ^
func (s *Scanner) scanVersionDirectiveNumber(start Mark, number *int8) error {
	var value, length int8
	for isDigit(s.ch(0)) {
		length++
		if length > maxNumberLength {
			return s.fail("while scanning a %YAML directive", start,
				"found extremely long version number")
		}
		value = value*10 + int8(asDigit(s.ch(0)))
		s.skip()
	}
	if length == 0 {
		return s.fail("while scanning a %YAML directive", start,
			"did not find expected version number")
	}
	*number = value
	return nil
}

// Scan the value of a TAG-DIRECTIVE token.
//
// Scope:
//
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	    ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
func (s *Scanner) scanTagDirectiveValue(start Mark, tag *Tag) error {
	for isBlank(s.ch(0)) {
		s.skip()
	}
	if err := s.scanTagHandle(true, start, tag.handle); err != nil {
		return err
	}
	if !isBlank(s.ch(0)) {
		return s.fail("while scanning a %TAG directive", start,
			"did not find expected whitespace")
	}
	for isBlank(s.ch(0)) {
		s.skip()
	}
	if err := s.scanTagURI(true, true, nil, start, tag.suffix); err != nil {
		return err
	}
	if !isBlankOrZero(s.ch(0)) {
		return s.fail("while scanning a %TAG directive", start,
			"did not find expected whitespace or line break")
	}
	return nil
}

// Scan an ANCHOR or ALIAS token.
func (s *Scanner) scanAnchor(typ TokenType) error {
	start := s.mark()
	s.skip()

	name := s.pool.Rent()
	for isAnchorChar(s.ch(0)) {
		s.read(name)
	}
	end := s.mark()

	if name.Len() == 0 {
		s.pool.Return(name)
		context := "while scanning an alias"
		if typ == ANCHOR_TOKEN {
			context = "while scanning an anchor"
		}
		return s.fail(context, start,
			"did not find expected alphabetic or numeric character")
	}

	s.tokens.Enqueue(Token{Type: typ, StartMark: start, EndMark: end, scalar: name})
	return nil
}

// Scan a TAG token.
func (s *Scanner) scanTag() error {
	start := s.mark()
	tag := s.pool.RentTag()

	if s.ch(1) == '<' {
		// Verbatim tag: keep the handle empty.
		s.skip()
		s.skip()
		if err := s.scanTagURI(false, true, nil, start, tag.suffix); err != nil {
			s.pool.ReturnTag(tag)
			return err
		}
		if s.ch(0) != '>' {
			s.pool.ReturnTag(tag)
			return s.fail("while scanning a tag", start,
				"did not find the expected '>'")
		}
		s.skip()
	} else {
		// The tag has either the '!suffix' or the '!handle!suffix' form.
		if err := s.scanTagHandle(false, start, tag.handle); err != nil {
			s.pool.ReturnTag(tag)
			return err
		}
		h := tag.handle.Bytes()
		if len(h) > 1 && h[0] == '!' && h[len(h)-1] == '!' {
			if err := s.scanTagURI(false, false, nil, start, tag.suffix); err != nil {
				s.pool.ReturnTag(tag)
				return err
			}
		} else {
			// It wasn't a handle after all. Scan the rest of the tag.
			if err := s.scanTagURI(false, false, h, start, tag.suffix); err != nil {
				s.pool.ReturnTag(tag)
				return err
			}
			tag.handle.Clear()
			if tag.suffix.Len() == 0 {
				// The '!' tag: an empty handle and a '!' suffix.
				tag.suffix.AppendByte('!')
			} else {
				tag.handle.AppendByte('!')
			}
		}
	}

	c := s.ch(0)
	if !isBlankOrZero(c) && !(s.flowLevel > 0 && isFlowIndicator(c)) {
		s.pool.ReturnTag(tag)
		return s.fail("while scanning a tag", start,
			"did not find expected whitespace or line break")
	}

	s.tokens.Enqueue(Token{Type: TAG_TOKEN, StartMark: start, EndMark: s.mark(), tag: tag})
	return nil
}

// Scan a tag handle.
func (s *Scanner) scanTagHandle(directive bool, start Mark, handle *Scalar) error {
	if s.ch(0) != '!' {
		return s.failTag(directive, start, "did not find expected '!'")
	}
	s.read(handle)
	for isAlpha(s.ch(0)) {
		s.read(handle)
	}
	if s.ch(0) == '!' {
		s.read(handle)
	} else if directive && handle.Len() != 1 {
		// A %TAG handle is either '!' or ends with '!'. In a tag token the
		// characters read so far are part of the suffix.
		return s.failTag(directive, start, "did not find expected '!'")
	}
	return nil
}

// Scan a tag URI. head holds the characters already consumed as a
// would-be handle, including its leading '!'. Unless verbatim, flow
// indicators end the URI in the flow context.
func (s *Scanner) scanTagURI(directive, verbatim bool, head []byte, start Mark, uri *Scalar) error {
	length := len(head)
	if length > 1 {
		uri.Append(head[1:])
	}

	for {
		c := s.ch(0)
		if c == '%' {
			if err := s.scanURIEscapes(directive, start, uri); err != nil {
				return err
			}
			length++
			continue
		}
		if !isURIChar(c) || !verbatim && !directive && s.flowLevel > 0 && isFlowIndicator(c) {
			break
		}
		s.read(uri)
		length++
	}

	if length == 0 {
		return s.failTag(directive, start, "did not find expected tag URI")
	}
	return nil
}

// Decode an URI-escape sequence corresponding to a single UTF-8 character.
func (s *Scanner) scanURIEscapes(directive bool, start Mark, uri *Scalar) error {
	w := 1024
	for w > 0 {
		if !(s.ch(0) == '%' && isHex(s.ch(1)) && isHex(s.ch(2))) {
			return s.failTag(directive, start, "did not find URI escaped octet")
		}
		octet := byte(asHex(s.ch(1))<<4 + asHex(s.ch(2)))

		if w == 1024 {
			// The leading octet determines the length of the sequence.
			w = width(octet)
			if w == 0 {
				return s.failTag(directive, start, "found an incorrect leading UTF-8 octet")
			}
		} else if octet&0xC0 != 0x80 {
			return s.failTag(directive, start, "found an incorrect trailing UTF-8 octet")
		}

		uri.AppendByte(octet)
		s.cur.Advance(3)
		w--
	}
	return nil
}

// Scan a block scalar.
func (s *Scanner) scanBlockScalar(literal bool) error {
	start := s.mark()
	s.skip()

	// Chomping: -1 strip, 0 clip, +1 keep.
	var chomping, increment int
	c := s.ch(0)
	if c == '+' || c == '-' {
		chomping = +1
		if c == '-' {
			chomping = -1
		}
		s.skip()
		if isDigit(s.ch(0)) {
			if s.ch(0) == '0' {
				return s.fail("while scanning a block scalar", start,
					"found an indentation indicator equal to 0")
			}
			increment = asDigit(s.ch(0))
			s.skip()
		}
	} else if isDigit(c) {
		if c == '0' {
			return s.fail("while scanning a block scalar", start,
				"found an indentation indicator equal to 0")
		}
		increment = asDigit(c)
		s.skip()
		if c := s.ch(0); c == '+' || c == '-' {
			chomping = +1
			if c == '-' {
				chomping = -1
			}
			s.skip()
		}
	}

	if err := s.scanLineTail("while scanning a block scalar", start); err != nil {
		return err
	}

	end := s.mark()

	var indent int
	if increment > 0 {
		if s.indent >= 0 {
			indent = s.indent + increment
		} else {
			indent = increment
		}
	}

	value := s.pool.Rent()
	leadingBreak := s.pool.Rent()
	trailingBreaks := s.pool.Rent()
	defer s.release(leadingBreak, trailingBreaks)

	// Scan the leading line breaks and determine the indentation level if
	// needed.
	if err := s.scanBlockScalarBreaks(&indent, trailingBreaks, start, &end); err != nil {
		s.pool.Return(value)
		return err
	}

	var leadingBlank, trailingBlank bool
	for s.mark().Column == indent && !isZ(s.ch(0)) {
		// We are at the beginning of a non-empty line.
		trailingBlank = isBlank(s.ch(0))

		// Check if we need to fold the leading line break.
		if !literal && !leadingBlank && !trailingBlank && leadingBreak.Len() > 0 && leadingBreak.Bytes()[0] == '\n' {
			// Do we need to join the lines by space?
			if trailingBreaks.Len() == 0 {
				value.AppendByte(' ')
			}
		} else {
			value.Append(leadingBreak.Bytes())
		}
		leadingBreak.Clear()

		value.Append(trailingBreaks.Bytes())
		trailingBreaks.Clear()

		leadingBlank = isBlank(s.ch(0))

		for !isBreakOrZero(s.ch(0)) {
			s.read(value)
		}
		s.readLine(leadingBreak)

		if err := s.scanBlockScalarBreaks(&indent, trailingBreaks, start, &end); err != nil {
			s.pool.Return(value)
			return err
		}
	}

	// Chomp the tail.
	if chomping != -1 {
		value.Append(leadingBreak.Bytes())
	}
	if chomping == 1 {
		value.Append(trailingBreaks.Bytes())
	}

	style := LITERAL_SCALAR_STYLE
	if !literal {
		style = FOLDED_SCALAR_STYLE
	}
	s.tokens.Enqueue(Token{
		Type:      SCALAR_TOKEN,
		StartMark: start,
		EndMark:   end,
		Style:     style,
		scalar:    value,
	})
	return nil
}

// Scan indentation spaces and line breaks for a block scalar. Determine the
// indentation level if needed.
func (s *Scanner) scanBlockScalarBreaks(indent *int, breaks *Scalar, start Mark, end *Mark) error {
	*end = s.mark()

	maxIndent := 0
	for {
		for (*indent == 0 || s.mark().Column < *indent) && isSpace(s.ch(0)) {
			s.skip()
		}
		if col := s.mark().Column; col > maxIndent {
			maxIndent = col
		}

		if (*indent == 0 || s.mark().Column < *indent) && isTab(s.ch(0)) {
			return s.fail("while scanning a block scalar", start,
				"found a tab character where an indentation space is expected")
		}

		if !isBreak(s.ch(0)) {
			break
		}
		s.readLine(breaks)
		*end = s.mark()
	}

	if *indent == 0 {
		*indent = maxIndent
		if *indent < s.indent+1 {
			*indent = s.indent + 1
		}
		if *indent < 1 {
			*indent = 1
		}
	}
	return nil
}

// Scan a quoted scalar.
func (s *Scanner) scanFlowScalar(single bool) error {
	start := s.mark()
	s.skip()

	value := s.pool.Rent()
	leadingBreak := s.pool.Rent()
	trailingBreaks := s.pool.Rent()
	whitespaces := s.pool.Rent()
	defer s.release(leadingBreak, trailingBreaks, whitespaces)

	failed := func(problem string) error {
		s.pool.Return(value)
		return s.fail("while scanning a quoted scalar", start, problem)
	}

	for {
		if s.atDocumentIndicator() {
			return failed("found unexpected document indicator")
		}
		if isZ(s.ch(0)) {
			return failed("found unexpected end of stream")
		}

		// Consume non-blank characters.
		leadingBlanks := false
		for !isBlankOrZero(s.ch(0)) {
			c := s.ch(0)
			switch {
			case single && c == '\'' && s.ch(1) == '\'':
				// An escaped single quote.
				value.AppendByte('\'')
				s.cur.Advance(2)
				continue
			case single && c == '\'':
			case !single && c == '"':
			case !single && c == '\\' && isBreak(s.ch(1)):
				// An escaped line break.
				s.skip()
				s.skipLine()
				leadingBlanks = true
			case !single && c == '\\':
				if err := s.scanEscape(start, value); err != nil {
					s.pool.Return(value)
					return err
				}
				continue
			default:
				s.read(value)
				continue
			}
			break
		}

		// Check if we are at the end of the scalar.
		if single && s.ch(0) == '\'' || !single && s.ch(0) == '"' {
			break
		}

		// Consume blank characters.
		for isBlank(s.ch(0)) || isBreak(s.ch(0)) {
			if isBlank(s.ch(0)) {
				if !leadingBlanks {
					s.read(whitespaces)
				} else {
					s.skip()
				}
			} else {
				if !leadingBlanks {
					whitespaces.Clear()
					s.readLine(leadingBreak)
					leadingBlanks = true
				} else {
					s.readLine(trailingBreaks)
				}
			}
		}

		// Join the whitespaces or fold line breaks.
		if leadingBlanks {
			if leadingBreak.Len() > 0 && leadingBreak.Bytes()[0] == '\n' {
				if trailingBreaks.Len() == 0 {
					value.AppendByte(' ')
				} else {
					value.Append(trailingBreaks.Bytes())
				}
			} else {
				value.Append(leadingBreak.Bytes())
				value.Append(trailingBreaks.Bytes())
			}
			trailingBreaks.Clear()
			leadingBreak.Clear()
		} else {
			value.Append(whitespaces.Bytes())
			whitespaces.Clear()
		}
	}

	// Eat the right quote.
	s.skip()

	style := SINGLE_QUOTED_SCALAR_STYLE
	if !single {
		style = DOUBLE_QUOTED_SCALAR_STYLE
	}
	s.tokens.Enqueue(Token{
		Type:      SCALAR_TOKEN,
		StartMark: start,
		EndMark:   s.mark(),
		Style:     style,
		scalar:    value,
	})
	return nil
}

// scanEscape decodes one backslash escape of a double-quoted scalar.
func (s *Scanner) scanEscape(start Mark, value *Scalar) error {
	codeLength := 0
	switch s.ch(1) {
	case '0':
		value.AppendByte(0)
	case 'a':
		value.AppendByte('\x07')
	case 'b':
		value.AppendByte('\x08')
	case 't', '\t':
		value.AppendByte('\x09')
	case 'n':
		value.AppendByte('\x0A')
	case 'v':
		value.AppendByte('\x0B')
	case 'f':
		value.AppendByte('\x0C')
	case 'r':
		value.AppendByte('\x0D')
	case 'e':
		value.AppendByte('\x1B')
	case ' ':
		value.AppendByte('\x20')
	case '"':
		value.AppendByte('"')
	case '\'':
		value.AppendByte('\'')
	case '/':
		value.AppendByte('/')
	case '\\':
		value.AppendByte('\\')
	case 'N': // NEL (#x85)
		value.AppendRune('\u0085')
	case '_': // #xA0
		value.AppendRune('\u00A0')
	case 'L': // LS (#x2028)
		value.AppendRune('\u2028')
	case 'P': // PS (#x2029)
		value.AppendRune('\u2029')
	case 'x':
		codeLength = 2
	case 'u':
		codeLength = 4
	case 'U':
		codeLength = 8
	default:
		return s.fail("while parsing a quoted scalar", start,
			"found unknown escape character")
	}
	s.cur.Advance(2)

	if codeLength == 0 {
		return nil
	}
	var code rune
	for k := 0; k < codeLength; k++ {
		if !isHex(s.ch(k)) {
			return s.fail("while parsing a quoted scalar", start,
				"did not find expected hexdecimal number")
		}
		code = code<<4 + rune(asHex(s.ch(k)))
	}
	if code >= 0xD800 && code <= 0xDFFF || code > 0x10FFFF {
		return s.fail("while parsing a quoted scalar", start,
			"found invalid Unicode character escape code")
	}
	value.AppendRune(code)
	s.cur.Advance(codeLength)
	return nil
}

// Scan a plain scalar.
func (s *Scanner) scanPlainScalar() error {
	value := s.pool.Rent()
	leadingBreak := s.pool.Rent()
	trailingBreaks := s.pool.Rent()
	whitespaces := s.pool.Rent()
	defer s.release(leadingBreak, trailingBreaks, whitespaces)

	var leadingBlanks bool
	indent := s.indent + 1

	start := s.mark()
	end := s.mark()

	for {
		if s.atDocumentIndicator() {
			break
		}
		if s.ch(0) == '#' {
			break
		}

		// Consume non-blank characters.
		for !isBlankOrZero(s.ch(0)) {
			c, next := s.ch(0), s.ch(1)
			// ': ' ends a plain scalar anywhere; in the flow context so do
			// the flow indicators and ':' before one.
			if c == ':' && isBlankOrZero(next) ||
				s.flowLevel > 0 && (isFlowIndicator(c) || c == ':' && isFlowIndicator(next)) {
				break
			}

			// Check if we need to join whitespaces and breaks.
			if leadingBlanks || whitespaces.Len() > 0 {
				if leadingBlanks {
					if leadingBreak.Len() > 0 && leadingBreak.Bytes()[0] == '\n' {
						if trailingBreaks.Len() == 0 {
							value.AppendByte(' ')
						} else {
							value.Append(trailingBreaks.Bytes())
						}
					} else {
						value.Append(leadingBreak.Bytes())
						value.Append(trailingBreaks.Bytes())
					}
					trailingBreaks.Clear()
					leadingBreak.Clear()
					leadingBlanks = false
				} else {
					value.Append(whitespaces.Bytes())
					whitespaces.Clear()
				}
			}

			s.read(value)
			end = s.mark()
		}

		// Is it the end?
		if !(isBlank(s.ch(0)) || isBreak(s.ch(0))) {
			break
		}

		// Consume blank characters.
		for isBlank(s.ch(0)) || isBreak(s.ch(0)) {
			if isBlank(s.ch(0)) {
				// Check for a tab character that abuses indentation.
				if leadingBlanks && s.mark().Column < indent && isTab(s.ch(0)) {
					s.pool.Return(value)
					return s.fail("while scanning a plain scalar", start,
						"found a tab character that violates indentation")
				}
				if !leadingBlanks {
					s.read(whitespaces)
				} else {
					s.skip()
				}
			} else {
				if !leadingBlanks {
					whitespaces.Clear()
					s.readLine(leadingBreak)
					leadingBlanks = true
				} else {
					s.readLine(trailingBreaks)
				}
			}
		}

		// Check indentation level.
		if s.flowLevel == 0 && s.mark().Column < indent {
			break
		}
	}

	s.tokens.Enqueue(Token{
		Type:      SCALAR_TOKEN,
		StartMark: start,
		EndMark:   end,
		Style:     PLAIN_SCALAR_STYLE,
		scalar:    value,
	})

	// A new line after the scalar may start a simple key.
	if leadingBlanks {
		s.simpleKeyAllowed = true
	}
	return nil
}
