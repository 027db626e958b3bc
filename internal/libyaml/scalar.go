// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Reusable scalar buffers and the pool that recycles them.
// A parser owns one pool; buffers move from the pool into tokens, from
// tokens into the current event, and back into the pool on the next read.

package libyaml

import (
	"unicode/utf8"
)

const minScalarCapacity = 32

// Scalar is a growable byte buffer holding decoded scalar, anchor, alias,
// tag or comment text.
type Scalar struct {
	buf []byte
}

// NullScalar is the shared empty scalar of implicit empty nodes. It is never
// pooled and must not be written to.
var NullScalar = &Scalar{}

// NewScalar returns an unpooled scalar holding s.
func NewScalar(s string) *Scalar {
	return &Scalar{buf: []byte(s)}
}

// Len returns the number of bytes in the scalar.
func (s *Scalar) Len() int { return len(s.buf) }

// Cap returns the capacity of the underlying buffer.
func (s *Scalar) Cap() int { return cap(s.buf) }

// Bytes returns the scalar contents. The slice is only valid until the
// scalar is returned to its pool.
func (s *Scalar) Bytes() []byte { return s.buf }

func (s *Scalar) String() string { return string(s.buf) }

// Equal compares the contents with str without allocating.
func (s *Scalar) Equal(str string) bool { return string(s.buf) == str }

// Clear truncates the scalar, keeping its capacity.
func (s *Scalar) Clear() { s.buf = s.buf[:0] }

func (s *Scalar) grow(n int) {
	if len(s.buf)+n <= cap(s.buf) {
		return
	}
	c := 2 * cap(s.buf)
	if c < minScalarCapacity {
		c = minScalarCapacity
	}
	for c < len(s.buf)+n {
		c *= 2
	}
	buf := make([]byte, len(s.buf), c)
	copy(buf, s.buf)
	s.buf = buf
}

// AppendByte appends a single byte.
func (s *Scalar) AppendByte(b byte) {
	s.grow(1)
	s.buf = append(s.buf, b)
}

// Append appends raw bytes.
func (s *Scalar) Append(b []byte) {
	s.grow(len(b))
	s.buf = append(s.buf, b...)
}

// AppendString appends the bytes of str.
func (s *Scalar) AppendString(str string) {
	s.grow(len(str))
	s.buf = append(s.buf, str...)
}

// AppendRune appends the UTF-8 encoding of r.
func (s *Scalar) AppendRune(r rune) {
	s.grow(utf8.UTFMax)
	s.buf = utf8.AppendRune(s.buf, r)
}

// TrimRight drops trailing bytes contained in cutset.
func (s *Scalar) TrimRight(cutset string) {
	n := len(s.buf)
	for n > 0 && indexByte(cutset, s.buf[n-1]) {
		n--
	}
	s.buf = s.buf[:n]
}

func indexByte(set string, b byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == b {
			return true
		}
	}
	return false
}

// ScalarPool is a LIFO free list of scalar buffers. It never shrinks: its
// size is bounded by the largest number of buffers alive at once.
type ScalarPool struct {
	free      []*Scalar
	allocated int

	// onAllocate, when set, is called every time the pool has to allocate.
	onAllocate func()
}

// NewScalarPool returns an empty pool.
func NewScalarPool() *ScalarPool {
	return &ScalarPool{}
}

// Rent returns an empty scalar, reusing a returned one when possible.
func (p *ScalarPool) Rent() *Scalar {
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return s
	}
	p.allocated++
	if p.onAllocate != nil {
		p.onAllocate()
	}
	return &Scalar{buf: make([]byte, 0, minScalarCapacity)}
}

// Return gives s back to the pool. Nil and NullScalar are ignored.
func (p *ScalarPool) Return(s *Scalar) {
	if s == nil || s == NullScalar {
		return
	}
	s.Clear()
	p.free = append(p.free, s)
}

// RentTag returns a tag with empty handle and suffix buffers.
func (p *ScalarPool) RentTag() *Tag {
	return &Tag{handle: p.Rent(), suffix: p.Rent()}
}

// ReturnTag gives both buffers of t back to the pool.
func (p *ScalarPool) ReturnTag(t *Tag) {
	if t == nil {
		return
	}
	p.Return(t.handle)
	p.Return(t.suffix)
	t.handle, t.suffix = nil, nil
}

// Len returns the number of idle buffers.
func (p *ScalarPool) Len() int { return len(p.free) }

// Allocated returns how many buffers the pool has ever created.
func (p *ScalarPool) Allocated() int { return p.allocated }

// Tag is a node tag split into its handle and suffix, e.g. "!!" and "str".
// Verbatim tags have an empty handle.
type Tag struct {
	handle *Scalar
	suffix *Scalar
}

// NewTag returns an unpooled tag.
func NewTag(handle, suffix string) *Tag {
	return &Tag{handle: NewScalar(handle), suffix: NewScalar(suffix)}
}

// Handle returns the tag handle.
func (t *Tag) Handle() []byte { return t.handle.Bytes() }

// Suffix returns the tag suffix.
func (t *Tag) Suffix() []byte { return t.suffix.Bytes() }

func (t *Tag) String() string {
	return string(t.handle.Bytes()) + string(t.suffix.Bytes())
}

// Equals reports whether handle+suffix spells s.
func (t *Tag) Equals(s string) bool {
	h, x := t.handle.Bytes(), t.suffix.Bytes()
	if len(h)+len(x) != len(s) {
		return false
	}
	return string(h) == s[:len(h)] && string(x) == s[len(h):]
}
