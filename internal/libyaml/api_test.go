// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Tests for the pull API: Read semantics, event accessors and typed scalar
// accessors.

package libyaml

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rootNode returns a parser positioned on the root node of the first
// document of input.
func rootNode(t *testing.T, input string, opts ...Option) *Parser {
	t.Helper()
	p, err := NewParser([]byte(input), opts...)
	require.NoError(t, err)
	require.NoError(t, p.SkipAfter(DOCUMENT_START_EVENT))
	return p
}

func TestParserIntegerAccessors(t *testing.T) {
	p := rootNode(t, "2147483647")
	i32, err := p.GetScalarAsInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), i32)

	p = rootNode(t, "2147483648")
	_, ok := p.TryGetScalarAsInt32()
	assert.False(t, ok)
	i64, ok := p.TryGetScalarAsInt64()
	assert.True(t, ok)
	assert.Equal(t, int64(2147483648), i64)

	p = rootNode(t, "-9223372036854775808")
	i64, err = p.GetScalarAsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), i64)
	_, err = p.GetScalarAsUint64()
	assert.Error(t, err)

	p = rootNode(t, "4294967295")
	u32, err := p.GetScalarAsUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), u32)

	p = rootNode(t, "18446744073709551615")
	u64, ok := p.TryGetScalarAsUint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), u64)
	_, ok = p.TryGetScalarAsUint32()
	assert.False(t, ok)
	_, ok = p.TryGetScalarAsInt64()
	assert.False(t, ok)
}

func TestParserHexIntegers(t *testing.T) {
	p := rootNode(t, "[0xC, -0xC, 0o14, 0b1100]")
	require.NoError(t, p.SkipAfter(SEQUENCE_START_EVENT))
	var got []int64
	for p.CurrentEventType() == SCALAR_EVENT {
		v, err := p.GetScalarAsInt64()
		require.NoError(t, err)
		got = append(got, v)
		_, err = p.Read()
		require.NoError(t, err)
	}
	assert.Equal(t, []int64{12, -12, 12, 12}, got)
}

func TestParserFloatAccessors(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"-2e3", -2000},
		{".inf", math.Inf(1)},
		{"+.Inf", math.Inf(1)},
		{"-.INF", math.Inf(-1)},
		{"7", 7},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := rootNode(t, tt.in).GetScalarAsFloat64()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	v, ok := rootNode(t, ".NaN").TryGetScalarAsFloat64()
	assert.True(t, ok)
	assert.True(t, math.IsNaN(v))

	f32, err := rootNode(t, "0.25").GetScalarAsFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), f32)

	_, err = rootNode(t, "1e39").GetScalarAsFloat32()
	assert.Error(t, err)
	f32, ok = rootNode(t, "-.inf").TryGetScalarAsFloat32()
	assert.True(t, ok)
	assert.True(t, math.IsInf(float64(f32), -1))
}

func TestParserBoolAndStringAccessors(t *testing.T) {
	b, err := rootNode(t, "True").GetScalarAsBool()
	require.NoError(t, err)
	assert.True(t, b)

	_, ok := rootNode(t, "yes").TryGetScalarAsBool()
	assert.False(t, ok)

	s, err := rootNode(t, "'quoted text'").GetScalarAsString()
	require.NoError(t, err)
	assert.Equal(t, "quoted text", s)

	s, ok = rootNode(t, "~").TryGetScalarAsString()
	assert.True(t, ok)
	assert.Equal(t, "", s)
}

func TestParserConversionError(t *testing.T) {
	p := rootNode(t, "--- abc")
	_, err := p.GetScalarAsInt32()
	require.Error(t, err)

	var convErr *ScalarConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "abc", convErr.Value)
	assert.Equal(t, "int32", convErr.Target)
	assert.Equal(t, Mark{Index: 4, Line: 1, Column: 4}, convErr.Mark)
	assert.EqualError(t, err, `yaml: line 1, column 5: cannot convert "abc" to int32`)

	// A failed conversion leaves the parser usable.
	ok, err := p.Read()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParserAccessorsOnNonScalar(t *testing.T) {
	p := rootNode(t, "[1]")
	require.Equal(t, SEQUENCE_START_EVENT, p.CurrentEventType())

	_, err := p.GetScalarAsString()
	assert.True(t, errors.Is(err, ErrNotScalar))
	_, err = p.GetScalarAsFloat64()
	assert.True(t, errors.Is(err, ErrNotScalar))
	_, ok := p.TryGetScalarAsBool()
	assert.False(t, ok)
	assert.False(t, p.IsNullScalar())
}

func TestParserIsNullScalar(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"---\n", true},
		{"~", true},
		{"null", true},
		{"NULL", true},
		{"!!null ~", true},
		{"'~'", false},
		{"\"null\"", false},
		{"!!str null", false},
		{"nil", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, rootNode(t, tt.in).IsNullScalar())
		})
	}
}

func TestParserTags(t *testing.T) {
	p := rootNode(t, "!!int 3")
	tag, ok := p.CurrentTag()
	require.True(t, ok)
	assert.Equal(t, "!!", string(tag.Handle()))
	assert.Equal(t, "int", string(tag.Suffix()))
	assert.Equal(t, INT_TAG, p.ResolvedTag())
	assert.True(t, p.tagIs(INT_TAG))
	assert.False(t, p.tagIs(STR_TAG))
	assert.False(t, p.IsImplicit())

	p = rootNode(t, "!local x")
	assert.Equal(t, "!local", p.ResolvedTag())

	p = rootNode(t, "!<tag:example.com,2000:app> x")
	assert.Equal(t, "tag:example.com,2000:app", p.ResolvedTag())

	p = rootNode(t, "plain")
	_, ok = p.CurrentTag()
	assert.False(t, ok)
	assert.Equal(t, "", p.ResolvedTag())
	assert.True(t, p.IsImplicit())
}

func TestParserMarksAndStyle(t *testing.T) {
	p := rootNode(t, "key: \"v\"\n")
	require.NoError(t, p.SkipAfter(MAPPING_START_EVENT))
	require.NoError(t, p.SkipCurrentNode())

	assert.Equal(t, Mark{Index: 5, Line: 1, Column: 5}, p.CurrentMark())
	assert.Equal(t, Mark{Index: 8, Line: 1, Column: 8}, p.CurrentEndMark())
	assert.Equal(t, DOUBLE_QUOTED_SCALAR_STYLE, ScalarStyle(p.CurrentStyle()))
	assert.Equal(t, "v", string(p.CurrentScalar()))
	_, ok := p.CurrentAnchor()
	assert.False(t, ok)
}

func TestParserReadAfterEnd(t *testing.T) {
	p, err := NewParser([]byte("a"))
	require.NoError(t, err)
	readAllEvents(t, p)

	for i := 0; i < 3; i++ {
		ok, err := p.Read()
		assert.False(t, ok)
		assert.NoError(t, err)
	}
	assert.Equal(t, NO_EVENT, p.CurrentEventType())
}

func TestParserErrorIsSticky(t *testing.T) {
	p, err := NewParser([]byte("[a"))
	require.NoError(t, err)

	var first error
	for first == nil {
		var ok bool
		ok, first = p.Read()
		require.True(t, ok || first != nil, "stream ended without an error")
	}
	var pe ParserError
	require.ErrorAs(t, first, &pe)

	for i := 0; i < 2; i++ {
		ok, err := p.Read()
		assert.False(t, ok)
		assert.Equal(t, first, err)
	}
	assert.Equal(t, first, p.Err())

	p.Reset([]byte("b"))
	assert.NoError(t, p.Err())
	assert.Equal(t, []string{"+STR", "+DOC", "=VAL :b", "-DOC", "-STR"}, readAllEvents(t, p))
}

func TestParserReleasesBuffers(t *testing.T) {
	inputs := []string{
		"a: &x !!str 1\nb: [*x, 'q', \"d\"]\nc: |\n  lit\n",
		"%TAG !e! tag:e.com:\n--- !e!x {k: v}\n",
		"# c\n- a # d\n",
	}
	for _, in := range inputs {
		p, err := NewParser([]byte(in), WithPreserveComments())
		require.NoError(t, err)
		readAllEvents(t, p)
		assert.Equal(t, p.Pool().Allocated(), p.Pool().Len(), "input %q", in)
	}

	// Buffers are also returned when parsing stops early.
	p, err := NewParser([]byte("a: 'x'\nb: [1, 2]"))
	require.NoError(t, err)
	require.NoError(t, p.SkipAfter(SEQUENCE_START_EVENT))
	p.Reset(nil)
	assert.Equal(t, p.Pool().Allocated(), p.Pool().Len())
}

func TestParserSteadyStateAllocations(t *testing.T) {
	document := func(entries int) []byte {
		var b strings.Builder
		for i := 0; i < entries; i++ {
			fmt.Fprintf(&b, "k%03d:\n  - v%03d\n  - [w%03d]\n", i, i, i)
		}
		return []byte(b.String())
	}
	small, large := document(5), document(200)

	p, err := NewParser(nil)
	require.NoError(t, err)
	parse := func(input []byte) func() {
		return func() {
			p.Reset(input)
			for {
				ok, err := p.Read()
				if err != nil || !ok {
					return
				}
			}
		}
	}
	smallAllocs := testing.AllocsPerRun(20, parse(small))
	largeAllocs := testing.AllocsPerRun(20, parse(large))
	assert.Equal(t, smallAllocs, largeAllocs, "allocations grow with input size")
}

func TestParserOptions(t *testing.T) {
	p, err := NewParser(nil, WithPreserveComments(), WithStripLeadingWhitespace(false))
	require.NoError(t, err)
	assert.True(t, p.Options().PreserveComments)
	assert.False(t, p.Options().StripLeadingWhitespace)

	_, err = NewParser(nil, WithChunkSize(0))
	assert.Error(t, err)
}
