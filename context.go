// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package yamlpull

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// ErrUnresolvedAlias is returned by DeserializationContext.ResolveAlias for an
// anchor that has no value yet.
var ErrUnresolvedAlias = errors.New("yaml: alias refers to a node that has not been constructed")

// DeserializationContext maps anchor ids to the values built for the
// anchored nodes, so that aliases resolve to the same value.
//
// A context is not safe for concurrent use.
type DeserializationContext struct {
	values map[int32]any
}

// NewDeserializationContext returns an empty context.
func NewDeserializationContext() *DeserializationContext {
	return &DeserializationContext{values: make(map[int32]any)}
}

// AddAlias records v as the value of the node anchored with a. Absent
// anchors are ignored.
func (c *DeserializationContext) AddAlias(a Anchor, v any) {
	if a.IsZero() {
		return
	}
	c.values[a.ID] = v
}

// ResolveAlias returns the value recorded for a.
func (c *DeserializationContext) ResolveAlias(a Anchor) (any, error) {
	v, ok := c.values[a.ID]
	if !ok {
		return nil, ErrUnresolvedAlias
	}
	return v, nil
}

// Len returns the number of recorded values.
func (c *DeserializationContext) Len() int { return len(c.values) }

// Reset forgets every recorded value.
func (c *DeserializationContext) Reset() {
	clear(c.values)
}

// ContextPool hands out reset contexts and takes them back for reuse. It is
// safe for concurrent use; a context obtained from Get belongs to the caller
// until it is Put back.
type ContextPool struct {
	pool sync.Pool
	gets atomic.Int64
	news atomic.Int64
}

// NewContextPool returns an empty pool.
func NewContextPool() *ContextPool {
	cp := &ContextPool{}
	cp.pool.New = func() any {
		cp.news.Inc()
		return NewDeserializationContext()
	}
	return cp
}

// Get returns an empty context.
func (cp *ContextPool) Get() *DeserializationContext {
	cp.gets.Inc()
	return cp.pool.Get().(*DeserializationContext)
}

// Put resets c and returns it to the pool.
func (cp *ContextPool) Put(c *DeserializationContext) {
	if c == nil {
		return
	}
	c.Reset()
	cp.pool.Put(c)
}

// Stats returns how many contexts were handed out and how many of those had
// to be allocated.
func (cp *ContextPool) Stats() (gets, news int64) {
	return cp.gets.Load(), cp.news.Load()
}

var defaultContextPool = NewContextPool()
