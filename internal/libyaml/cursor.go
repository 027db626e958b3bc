// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Input cursor over a contiguous buffer or a sequence of chunks.
// The scanner reads through this cursor only, so chunk boundaries are never
// visible to it.

package libyaml

// ByteCursor is a forward-only reader over the input bytes that tracks the
// current Mark.
type ByteCursor struct {
	chunks [][]byte
	chunk  int    // index of buf in chunks
	buf    []byte // current chunk
	pos    int    // offset into buf
	mark   Mark

	// A CR was the last byte consumed; a following LF does not start
	// another line.
	pendingCR bool
}

// NewByteCursor returns a cursor over a single contiguous buffer.
func NewByteCursor(input []byte) *ByteCursor {
	c := &ByteCursor{}
	c.Reset([][]byte{input})
	return c
}

// NewChunkedCursor returns a cursor over the concatenation of chunks.
// Empty chunks are allowed.
func NewChunkedCursor(chunks [][]byte) *ByteCursor {
	c := &ByteCursor{}
	c.Reset(chunks)
	return c
}

// Reset points the cursor at new input and rewinds the mark.
func (c *ByteCursor) Reset(chunks [][]byte) {
	c.chunks = chunks
	c.chunk = 0
	c.buf = nil
	c.pos = 0
	c.mark = Mark{Line: 1}
	c.pendingCR = false
	if len(chunks) > 0 {
		c.buf = chunks[0]
	}
	c.skipEmpty()
}

func (c *ByteCursor) skipEmpty() {
	for c.pos >= len(c.buf) && c.chunk+1 < len(c.chunks) {
		c.chunk++
		c.buf = c.chunks[c.chunk]
		c.pos = 0
	}
}

// Mark returns the position of the next unread byte.
func (c *ByteCursor) Mark() Mark { return c.mark }

// EOF reports whether all input has been consumed.
func (c *ByteCursor) EOF() bool {
	return c.pos >= len(c.buf)
}

// Peek returns the next unread byte.
func (c *ByteCursor) Peek() (byte, bool) {
	if c.pos < len(c.buf) {
		return c.buf[c.pos], true
	}
	return 0, false
}

// PeekAt returns the byte offset bytes ahead of the next unread byte.
func (c *ByteCursor) PeekAt(offset int) (byte, bool) {
	if p := c.pos + offset; p < len(c.buf) {
		return c.buf[p], true
	}
	offset -= len(c.buf) - c.pos
	for i := c.chunk + 1; i < len(c.chunks); i++ {
		if offset < len(c.chunks[i]) {
			return c.chunks[i][offset], true
		}
		offset -= len(c.chunks[i])
	}
	return 0, false
}

// at is PeekAt with a zero byte past the end of input.
func (c *ByteCursor) at(offset int) byte {
	if p := c.pos + offset; p < len(c.buf) {
		return c.buf[p]
	}
	b, _ := c.PeekAt(offset)
	return b
}

// skipBOM consumes a UTF-8 byte order mark at the cursor. The BOM does
// not occupy a column.
func (c *ByteCursor) skipBOM() {
	if c.at(0) != 0xEF || c.at(1) != 0xBB || c.at(2) != 0xBF {
		return
	}
	col := c.mark.Column
	c.Advance(3)
	c.mark.Column = col
}

// Remaining reports whether at least n more bytes are available.
func (c *ByteCursor) Remaining(n int) bool {
	if n <= 0 {
		return true
	}
	_, ok := c.PeekAt(n - 1)
	return ok
}

// Advance consumes n bytes, updating the mark. A line ends at LF, at CR LF
// (counted once) and at a lone CR. UTF-8 continuation bytes do
// not count as columns.
func (c *ByteCursor) Advance(n int) {
	for ; n > 0; n-- {
		if c.pos >= len(c.buf) {
			c.skipEmpty()
			if c.pos >= len(c.buf) {
				return
			}
		}
		b := c.buf[c.pos]
		c.pos++
		c.mark.Index++
		switch {
		case b == '\n':
			if !c.pendingCR {
				c.mark.Line++
			}
			c.mark.Column = 0
			c.pendingCR = false
		case b == '\r':
			c.mark.Line++
			c.mark.Column = 0
			c.pendingCR = true
		case b&0xC0 == 0x80:
			c.pendingCR = false
		default:
			c.mark.Column++
			c.pendingCR = false
		}
		if c.pos >= len(c.buf) {
			c.skipEmpty()
		}
	}
}
