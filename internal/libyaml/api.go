// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Pull API of the parser: construction, Read, event accessors, typed scalar
// accessors and node skipping.

package libyaml

import (
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Parser produces one event per Read from a YAML byte stream.
//
// The parser owns a scalar pool. Scalar and tag buffers of the current event
// are handed back to the pool on the next Read, so byte slices obtained from
// the current event are only valid until then.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	opts    Options
	logger  log.Logger
	metrics *Metrics

	cur     *ByteCursor
	pool    *ScalarPool
	scanner *Scanner
	anchors *AnchorTable

	state         ParserState    // The current parser state.
	states        []ParserState  // The parser states stack.
	marks         []Mark         // The stack of marks.
	tagDirectives []tagDirective // The TAG directives of the current document.

	event Event // The current event.

	// Events ready to be delivered ahead of the state machine.
	pending     []Event
	pendingHead int

	done bool // STREAM-END has been delivered.
	err  error
}

// NewParser returns a parser over a single input buffer.
func NewParser(input []byte, opts ...Option) (*Parser, error) {
	return NewParserFromChunks([][]byte{input}, opts...)
}

// NewParserFromChunks returns a parser over the concatenation of chunks.
func NewParserFromChunks(chunks [][]byte, opts ...Option) (*Parser, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	pool := NewScalarPool()
	pool.onAllocate = o.Metrics.allocationHook()

	p := &Parser{
		opts:    o,
		logger:  o.Logger,
		metrics: o.Metrics,
		cur:     NewChunkedCursor(nil),
		pool:    pool,
		anchors: NewAnchorTable(),
	}
	p.scanner = NewScanner(p.cur, pool, o)
	p.ResetChunks(chunks)
	return p, nil
}

// Options returns the configuration the parser was built with.
func (p *Parser) Options() Options { return p.opts }

// Reset points the parser at new input. The pool and queue allocations are
// kept.
func (p *Parser) Reset(input []byte) {
	p.ResetChunks([][]byte{input})
}

// ResetChunks points the parser at new chunked input.
func (p *Parser) ResetChunks(chunks [][]byte) {
	p.event.release(p.pool)
	for i := p.pendingHead; i < len(p.pending); i++ {
		p.pending[i].release(p.pool)
	}
	p.pending = p.pending[:0]
	p.pendingHead = 0

	p.cur.Reset(chunks)
	p.scanner.Reset(p.cur)
	p.anchors.Reset()

	p.state = PARSE_STREAM_START_STATE
	p.states = p.states[:0]
	p.marks = p.marks[:0]
	p.tagDirectives = p.tagDirectives[:0]
	p.done = false
	p.err = nil

	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	p.metrics.observeInput(n)
}

// Read advances to the next event. It returns false once the STREAM-END
// event has been consumed. After a failure every call returns the same
// error until the parser is reset.
func (p *Parser) Read() (bool, error) {
	p.event.release(p.pool)

	if p.err != nil {
		return false, p.err
	}
	if p.done {
		return false, nil
	}

	if p.pendingHead < len(p.pending) {
		p.deliverPending()
	} else if err := p.next(); err != nil {
		p.fail(err)
		return false, err
	}

	if p.event.Type == STREAM_END_EVENT {
		p.done = true
	}
	p.metrics.observeEvent(p.event.Type)
	return true, nil
}

// next produces an event from the token stream.
func (p *Parser) next() error {
	if p.state != PARSE_END_STATE {
		t, err := p.scanner.Peek()
		if err != nil {
			return err
		}
		if t.Type == COMMENT_TOKEN {
			p.event = commentEvent(t)
			p.scanner.Skip()
			return nil
		}
	}

	if err := p.stateMachine(&p.event); err != nil {
		p.event.release(p.pool)
		return err
	}

	// Comments read ahead of the stream end belong before it.
	if p.event.Type == STREAM_END_EVENT && p.pendingHead < len(p.pending) {
		p.pending = append(p.pending, p.event)
		p.event = Event{}
		p.deliverPending()
	}
	return nil
}

func (p *Parser) deliverPending() {
	p.event = p.pending[p.pendingHead]
	p.pending[p.pendingHead] = Event{}
	p.pendingHead++
	if p.pendingHead == len(p.pending) {
		p.pending = p.pending[:0]
		p.pendingHead = 0
	}
}

func (p *Parser) fail(err error) {
	p.err = err
	p.metrics.observeError(err)
	level.Warn(p.logger).Log("msg", "parse failed", "kind", ErrorKind(err), "err", err)
}

// Err returns the error that stopped the parser, if any.
func (p *Parser) Err() error { return p.err }

// Event returns the current event. It is overwritten by the next Read.
func (p *Parser) Event() *Event { return &p.event }

// Pool returns the parser's scalar pool.
func (p *Parser) Pool() *ScalarPool { return p.pool }

// Anchors returns the parser's anchor table.
func (p *Parser) Anchors() *AnchorTable { return p.anchors }

// CurrentEventType returns the type of the current event.
func (p *Parser) CurrentEventType() EventType { return p.event.Type }

// CurrentMark returns the start mark of the current event.
func (p *Parser) CurrentMark() Mark { return p.event.StartMark }

// CurrentEndMark returns the end mark of the current event.
func (p *Parser) CurrentEndMark() Mark { return p.event.EndMark }

// CurrentStyle returns the scalar, sequence or mapping style of the current
// event.
func (p *Parser) CurrentStyle() Style { return p.event.Style }

// CurrentScalar returns the text of the current SCALAR or COMMENT event.
func (p *Parser) CurrentScalar() []byte { return p.event.Value() }

// CurrentTag returns the tag of the current event as written.
func (p *Parser) CurrentTag() (*Tag, bool) {
	return p.event.Tag, p.event.Tag != nil
}

// CurrentAnchor returns the anchor of the current node or the target of the
// current alias.
func (p *Parser) CurrentAnchor() (Anchor, bool) {
	return p.event.Anchor, !p.event.Anchor.IsZero()
}

// IsImplicit reports the implicit flag of the current event.
func (p *Parser) IsImplicit() bool { return p.event.Implicit }

// VersionDirective returns the %YAML directive of the current
// DOCUMENT-START event.
func (p *Parser) VersionDirective() (VersionDirective, bool) {
	return p.event.VersionDirective()
}

// ResolvedTag returns the tag of the current event with its handle
// expanded, or "" for an untagged node.
func (p *Parser) ResolvedTag() string {
	tag := p.event.Tag
	if tag == nil {
		return ""
	}
	if len(tag.Handle()) == 0 {
		return string(tag.Suffix())
	}
	prefix, _ := p.lookupTagPrefix(tag.Handle())
	return prefix + string(tag.Suffix())
}

// tagIs compares the resolved tag of the current event with full without
// allocating.
func (p *Parser) tagIs(full string) bool {
	tag := p.event.Tag
	if tag == nil {
		return false
	}
	prefix := ""
	if len(tag.Handle()) > 0 {
		prefix, _ = p.lookupTagPrefix(tag.Handle())
	}
	suffix := tag.Suffix()
	if len(prefix)+len(suffix) != len(full) {
		return false
	}
	return full[:len(prefix)] == prefix && full[len(prefix):] == string(suffix)
}

// IsNullScalar reports whether the current event is a null scalar: an
// implicit empty node, or a plain ~, null, Null or NULL. Quoted scalars
// and scalars tagged with anything but !!null are never null.
func (p *Parser) IsNullScalar() bool {
	e := &p.event
	if e.Type != SCALAR_EVENT || e.ScalarStyle() != PLAIN_SCALAR_STYLE {
		return false
	}
	if e.Tag != nil && !p.tagIs(NULL_TAG) {
		return false
	}
	return IsNullValue(e.Value())
}

func (p *Parser) conversionError(target string, cause error) error {
	return &ScalarConversionError{
		Value:  string(p.event.Value()),
		Target: target,
		Mark:   p.event.StartMark,
		Err:    cause,
	}
}

// scalarBytes returns the current scalar text, or an error naming target
// when the current event is not a scalar.
func (p *Parser) scalarBytes(target string) ([]byte, error) {
	if p.event.Type != SCALAR_EVENT {
		return nil, p.conversionError(target, ErrNotScalar)
	}
	return p.event.Value(), nil
}

// GetScalarAsString returns the current scalar text. A null scalar yields
// the empty string.
func (p *Parser) GetScalarAsString() (string, error) {
	b, err := p.scalarBytes("string")
	if err != nil {
		return "", err
	}
	if p.IsNullScalar() {
		return "", nil
	}
	return string(b), nil
}

// TryGetScalarAsString is GetScalarAsString without the error.
func (p *Parser) TryGetScalarAsString() (string, bool) {
	v, err := p.GetScalarAsString()
	return v, err == nil
}

// GetScalarAsBool converts the current scalar to a bool.
func (p *Parser) GetScalarAsBool() (bool, error) {
	b, err := p.scalarBytes("bool")
	if err != nil {
		return false, err
	}
	v, ok := ParseBool(b)
	if !ok {
		return false, p.conversionError("bool", nil)
	}
	return v, nil
}

// TryGetScalarAsBool is GetScalarAsBool without the error.
func (p *Parser) TryGetScalarAsBool() (bool, bool) {
	b, err := p.scalarBytes("bool")
	if err != nil {
		return false, false
	}
	return ParseBool(b)
}

func getSigned[T int32 | int64](p *Parser, target string) (T, error) {
	b, err := p.scalarBytes(target)
	if err != nil {
		return 0, err
	}
	v, ok := ParseSigned[T](b)
	if !ok {
		return 0, p.conversionError(target, nil)
	}
	return v, nil
}

func getUnsigned[T uint32 | uint64](p *Parser, target string) (T, error) {
	b, err := p.scalarBytes(target)
	if err != nil {
		return 0, err
	}
	v, ok := ParseUnsigned[T](b)
	if !ok {
		return 0, p.conversionError(target, nil)
	}
	return v, nil
}

// GetScalarAsInt32 converts the current scalar to an int32.
func (p *Parser) GetScalarAsInt32() (int32, error) { return getSigned[int32](p, "int32") }

// GetScalarAsInt64 converts the current scalar to an int64.
func (p *Parser) GetScalarAsInt64() (int64, error) { return getSigned[int64](p, "int64") }

// GetScalarAsUint32 converts the current scalar to a uint32.
func (p *Parser) GetScalarAsUint32() (uint32, error) { return getUnsigned[uint32](p, "uint32") }

// GetScalarAsUint64 converts the current scalar to a uint64.
func (p *Parser) GetScalarAsUint64() (uint64, error) { return getUnsigned[uint64](p, "uint64") }

// TryGetScalarAsInt32 is GetScalarAsInt32 without the error.
func (p *Parser) TryGetScalarAsInt32() (int32, bool) {
	v, err := p.GetScalarAsInt32()
	return v, err == nil
}

// TryGetScalarAsInt64 is GetScalarAsInt64 without the error.
func (p *Parser) TryGetScalarAsInt64() (int64, bool) {
	v, err := p.GetScalarAsInt64()
	return v, err == nil
}

// TryGetScalarAsUint32 is GetScalarAsUint32 without the error.
func (p *Parser) TryGetScalarAsUint32() (uint32, bool) {
	v, err := p.GetScalarAsUint32()
	return v, err == nil
}

// TryGetScalarAsUint64 is GetScalarAsUint64 without the error.
func (p *Parser) TryGetScalarAsUint64() (uint64, bool) {
	v, err := p.GetScalarAsUint64()
	return v, err == nil
}

// GetScalarAsFloat32 converts the current scalar to a float32. Finite
// values outside the float32 range are an error.
func (p *Parser) GetScalarAsFloat32() (float32, error) {
	b, err := p.scalarBytes("float32")
	if err != nil {
		return 0, err
	}
	v, ok := ParseFloat(b, 32)
	if !ok || !math.IsInf(v, 0) && math.Abs(v) > math.MaxFloat32 {
		return 0, p.conversionError("float32", nil)
	}
	return float32(v), nil
}

// GetScalarAsFloat64 converts the current scalar to a float64.
func (p *Parser) GetScalarAsFloat64() (float64, error) {
	b, err := p.scalarBytes("float64")
	if err != nil {
		return 0, err
	}
	v, ok := ParseFloat(b, 64)
	if !ok {
		return 0, p.conversionError("float64", nil)
	}
	return v, nil
}

// TryGetScalarAsFloat32 is GetScalarAsFloat32 without the error.
func (p *Parser) TryGetScalarAsFloat32() (float32, bool) {
	v, err := p.GetScalarAsFloat32()
	return v, err == nil
}

// TryGetScalarAsFloat64 is GetScalarAsFloat64 without the error.
func (p *Parser) TryGetScalarAsFloat64() (float64, bool) {
	v, err := p.GetScalarAsFloat64()
	return v, err == nil
}

// SkipCurrentNode moves past the node that starts at the current event.
// Leading COMMENT events are passed over first. For a scalar or alias the
// parser advances once; for a collection it advances past the matching end
// event. Any other event is simply advanced over.
func (p *Parser) SkipCurrentNode() error {
	for p.event.Type == COMMENT_EVENT {
		if err := p.mustRead(); err != nil {
			return err
		}
	}

	switch p.event.Type {
	case SEQUENCE_START_EVENT, MAPPING_START_EVENT:
		depth := 1
		for depth > 0 {
			if err := p.mustRead(); err != nil {
				return err
			}
			switch p.event.Type {
			case SEQUENCE_START_EVENT, MAPPING_START_EVENT:
				depth++
			case SEQUENCE_END_EVENT, MAPPING_END_EVENT:
				depth--
			}
		}
	}
	_, err := p.Read()
	return err
}

// SkipAfter reads until the current event has type t, then reads once more.
func (p *Parser) SkipAfter(t EventType) error {
	for p.event.Type != t {
		if err := p.mustRead(); err != nil {
			return err
		}
	}
	_, err := p.Read()
	return err
}

// mustRead is Read where the end of the stream is an error.
func (p *Parser) mustRead() error {
	ok, err := p.Read()
	if err != nil {
		return err
	}
	if !ok {
		return formatParserError("found unexpected end of stream", p.cur.Mark())
	}
	return nil
}
