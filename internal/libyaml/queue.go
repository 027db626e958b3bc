// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Ring buffer of tokens between the scanner and the parser.
// Besides FIFO access it supports insertion at a logical index, which the
// scanner needs to place KEY and BLOCK-MAPPING-START tokens in front of a
// simple key it has already queued.

package libyaml

const initialQueueCapacity = 16

// TokenQueue is a growable ring buffer of tokens. Its capacity is always a
// power of two.
type TokenQueue struct {
	buf   []Token
	head  int
	count int
}

// NewTokenQueue returns a queue able to hold capacity tokens before
// growing. The capacity is rounded up to a power of two.
func NewTokenQueue(capacity int) *TokenQueue {
	n := 1
	for n < capacity {
		n <<= 1
	}
	return &TokenQueue{buf: make([]Token, n)}
}

func (q *TokenQueue) index(i int) int {
	return (q.head + i) & (len(q.buf) - 1)
}

func (q *TokenQueue) grow() {
	buf := make([]Token, 2*len(q.buf))
	for i := 0; i < q.count; i++ {
		buf[i] = q.buf[q.index(i)]
	}
	q.buf = buf
	q.head = 0
}

// Len returns the number of queued tokens.
func (q *TokenQueue) Len() int { return q.count }

// Cap returns the current capacity.
func (q *TokenQueue) Cap() int { return len(q.buf) }

// Enqueue appends a token at the tail.
func (q *TokenQueue) Enqueue(t Token) {
	if q.count == len(q.buf) {
		q.grow()
	}
	q.buf[q.index(q.count)] = t
	q.count++
}

// Dequeue removes and returns the head token. It panics on an empty queue.
func (q *TokenQueue) Dequeue() Token {
	if q.count == 0 {
		panic("libyaml: dequeue from empty token queue")
	}
	t := q.buf[q.head]
	q.buf[q.head] = Token{}
	q.head = (q.head + 1) & (len(q.buf) - 1)
	q.count--
	return t
}

// Insert places t at logical index i, shifting later tokens towards the
// tail. Index Len() appends.
func (q *TokenQueue) Insert(i int, t Token) {
	if i < 0 || i > q.count {
		panic("libyaml: token queue insert out of range")
	}
	if q.count == len(q.buf) {
		q.grow()
	}
	for j := q.count; j > i; j-- {
		q.buf[q.index(j)] = q.buf[q.index(j-1)]
	}
	q.buf[q.index(i)] = t
	q.count++
}

// Peek returns the head token, or nil when the queue is empty.
func (q *TokenQueue) Peek() *Token {
	if q.count == 0 {
		return nil
	}
	return &q.buf[q.head]
}

// At returns the token at logical index i.
func (q *TokenQueue) At(i int) *Token {
	if i < 0 || i >= q.count {
		panic("libyaml: token queue index out of range")
	}
	return &q.buf[q.index(i)]
}

// Last returns the tail token, or nil when the queue is empty.
func (q *TokenQueue) Last() *Token {
	if q.count == 0 {
		return nil
	}
	return &q.buf[q.index(q.count-1)]
}

// Clear empties the queue, handing any buffers still held by queued tokens
// back to pool.
func (q *TokenQueue) Clear(pool *ScalarPool) {
	for q.count > 0 {
		t := q.Dequeue()
		if pool != nil {
			t.release(pool)
		}
	}
	q.head = 0
}
