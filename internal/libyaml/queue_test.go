// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(typ TokenType) Token { return Token{Type: typ} }

func drain(q *TokenQueue) []TokenType {
	var out []TokenType
	for q.Len() > 0 {
		out = append(out, q.Dequeue().Type)
	}
	return out
}

func TestTokenQueueInsert(t *testing.T) {
	const a, b, c, d = ALIAS_TOKEN, BLOCK_END_TOKEN, COMMENT_TOKEN, DOCUMENT_START_TOKEN

	q := NewTokenQueue(4)
	q.Enqueue(tok(a))
	q.Enqueue(tok(b))
	q.Enqueue(tok(c))
	q.Insert(1, tok(d))
	assert.Equal(t, []TokenType{a, d, b, c}, drain(q))
}

func TestTokenQueueInsertWrapped(t *testing.T) {
	const a, b, c, d = ALIAS_TOKEN, BLOCK_END_TOKEN, COMMENT_TOKEN, DOCUMENT_START_TOKEN

	q := NewTokenQueue(4)
	// Move the head near the end of the ring so the next tokens wrap.
	for i := 0; i < 3; i++ {
		q.Enqueue(tok(KEY_TOKEN))
		q.Dequeue()
	}
	q.Enqueue(tok(a))
	q.Enqueue(tok(b))
	q.Enqueue(tok(c))
	require.Equal(t, 4, q.Cap())
	q.Insert(1, tok(d))
	assert.Equal(t, 4, q.Cap())
	assert.Equal(t, []TokenType{a, d, b, c}, drain(q))
}

func TestTokenQueueGrowWrapped(t *testing.T) {
	q := NewTokenQueue(4)
	q.Enqueue(tok(KEY_TOKEN))
	q.Enqueue(tok(KEY_TOKEN))
	q.Dequeue()
	q.Dequeue()

	want := []TokenType{SCALAR_TOKEN, VALUE_TOKEN, ANCHOR_TOKEN, TAG_TOKEN, ALIAS_TOKEN}
	for _, typ := range want[1:] {
		q.Enqueue(tok(typ))
	}
	q.Insert(0, tok(want[0]))
	assert.Equal(t, 8, q.Cap())
	assert.Equal(t, len(want), q.Len())
	assert.Equal(t, want, drain(q))
}

func TestTokenQueueAccessors(t *testing.T) {
	q := NewTokenQueue(0)
	assert.Nil(t, q.Peek())
	assert.Nil(t, q.Last())

	q.Enqueue(tok(KEY_TOKEN))
	q.Insert(q.Len(), tok(VALUE_TOKEN))
	assert.Equal(t, KEY_TOKEN, q.Peek().Type)
	assert.Equal(t, VALUE_TOKEN, q.Last().Type)
	assert.Equal(t, VALUE_TOKEN, q.At(1).Type)

	assert.Panics(t, func() { q.At(2) })
	assert.Panics(t, func() { q.Insert(3, tok(KEY_TOKEN)) })

	q.Clear(nil)
	assert.Equal(t, 0, q.Len())
	assert.Panics(t, func() { q.Dequeue() })
}

func TestTokenQueueClearReleases(t *testing.T) {
	pool := NewScalarPool()
	q := NewTokenQueue(2)
	q.Enqueue(Token{Type: SCALAR_TOKEN, scalar: pool.Rent()})
	q.Enqueue(Token{Type: TAG_TOKEN, tag: pool.RentTag()})
	q.Clear(pool)
	assert.Equal(t, 3, pool.Len())
}
