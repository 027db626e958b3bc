// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(c *ByteCursor) []byte {
	var out []byte
	for {
		b, ok := c.Peek()
		if !ok {
			return out
		}
		out = append(out, b)
		c.Advance(1)
	}
}

func TestByteCursorChunks(t *testing.T) {
	tests := []struct {
		name   string
		chunks [][]byte
	}{
		{"single", [][]byte{[]byte("abc: def")}},
		{"split", [][]byte{[]byte("ab"), []byte("c: d"), []byte("ef")}},
		{"empty chunks", [][]byte{nil, []byte("a"), {}, {}, []byte("bc: def"), nil}},
		{"byte per chunk", [][]byte{
			[]byte("a"), []byte("b"), []byte("c"), []byte(":"),
			[]byte(" "), []byte("d"), []byte("e"), []byte("f"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunkedCursor(tt.chunks)
			assert.Equal(t, "abc: def", string(readAll(c)))
			assert.True(t, c.EOF())
			assert.Equal(t, Mark{Index: 8, Line: 1, Column: 8}, c.Mark())
		})
	}
}

func TestByteCursorPeekAt(t *testing.T) {
	c := NewChunkedCursor([][]byte{[]byte("ab"), nil, []byte("cd")})

	for i, want := range []byte("abcd") {
		b, ok := c.PeekAt(i)
		require.True(t, ok)
		assert.Equal(t, want, b)
	}
	_, ok := c.PeekAt(4)
	assert.False(t, ok)

	assert.True(t, c.Remaining(4))
	assert.False(t, c.Remaining(5))
	assert.True(t, c.Remaining(0))

	c.Advance(3)
	b, ok := c.PeekAt(0)
	require.True(t, ok)
	assert.Equal(t, byte('d'), b)
	_, ok = c.PeekAt(1)
	assert.False(t, ok)
}

func TestByteCursorPastEnd(t *testing.T) {
	c := NewByteCursor([]byte("x"))
	c.Advance(10)
	b, ok := c.Peek()
	assert.False(t, ok)
	assert.Equal(t, byte(0), b)
	assert.True(t, c.EOF())
	assert.Equal(t, 1, c.Mark().Index)
}

func TestByteCursorLineBreaks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Mark
	}{
		{"lf", "a\nb", Mark{Index: 3, Line: 2, Column: 1}},
		{"crlf counted once", "a\r\nb", Mark{Index: 4, Line: 2, Column: 1}},
		{"lone cr", "a\rb", Mark{Index: 3, Line: 2, Column: 1}},
		{"cr cr", "\r\r", Mark{Index: 2, Line: 3, Column: 0}},
		{"lf lf", "\n\n", Mark{Index: 2, Line: 3, Column: 0}},
		{"multibyte", "é€x", Mark{Index: 6, Line: 1, Column: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewByteCursor([]byte(tt.input))
			c.Advance(len(tt.input))
			assert.Equal(t, tt.want, c.Mark())
		})
	}
}

func TestByteCursorCRLFAcrossChunks(t *testing.T) {
	c := NewChunkedCursor([][]byte{[]byte("a\r"), []byte("\nb")})
	readAll(c)
	assert.Equal(t, Mark{Index: 4, Line: 2, Column: 1}, c.Mark())
}

func TestByteCursorSkipBOM(t *testing.T) {
	c := NewChunkedCursor([][]byte{{0xEF}, {0xBB, 0xBF, 'a'}})
	c.skipBOM()
	b, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('a'), b)
	assert.Equal(t, Mark{Index: 3, Line: 1, Column: 0}, c.Mark())

	c = NewByteCursor([]byte("ab"))
	c.skipBOM()
	assert.Equal(t, Mark{Line: 1}, c.Mark())
}

func TestByteCursorReset(t *testing.T) {
	c := NewByteCursor([]byte("a\nb"))
	readAll(c)
	c.Reset([][]byte{[]byte("xy")})
	assert.Equal(t, Mark{Line: 1}, c.Mark())
	assert.Equal(t, "xy", string(readAll(c)))
}
