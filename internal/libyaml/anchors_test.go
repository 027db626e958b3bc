// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorTable(t *testing.T) {
	table := NewAnchorTable()

	a := table.RegisterAnchor([]byte("a"))
	b := table.RegisterAnchor([]byte("b"))
	assert.Equal(t, int32(0), a)
	assert.Equal(t, int32(1), b)

	id, err := table.ResolveAlias([]byte("a"), Mark{Line: 3})
	require.NoError(t, err)
	assert.Equal(t, a, id)

	name, ok := table.Lookup(b)
	assert.True(t, ok)
	assert.Equal(t, "b", name)
	_, ok = table.Lookup(7)
	assert.False(t, ok)
	_, ok = table.Lookup(-1)
	assert.False(t, ok)
}

func TestAnchorTableRedefinition(t *testing.T) {
	table := NewAnchorTable()
	first := table.RegisterAnchor([]byte("x"))
	second := table.RegisterAnchor([]byte("x"))
	assert.NotEqual(t, first, second)

	id, err := table.ResolveAlias([]byte("x"), Mark{})
	require.NoError(t, err)
	assert.Equal(t, second, id)
	assert.Equal(t, 2, table.Len())
}

func TestAnchorTableUnknownAlias(t *testing.T) {
	table := NewAnchorTable()
	mark := Mark{Index: 10, Line: 2, Column: 4}
	id, err := table.ResolveAlias([]byte("missing"), mark)
	assert.Equal(t, int32(-1), id)

	var aliasErr *AliasError
	require.True(t, errors.As(err, &aliasErr))
	assert.Equal(t, "missing", aliasErr.Name)
	assert.Equal(t, mark, aliasErr.Mark)
	assert.EqualError(t, err, "yaml: line 2, column 5: unknown anchor 'missing' referenced")
}

func TestAnchorTableReset(t *testing.T) {
	table := NewAnchorTable()
	table.RegisterAnchor([]byte("a"))

	table.ResetNames()
	_, err := table.ResolveAlias([]byte("a"), Mark{})
	assert.Error(t, err)
	// Ids keep increasing across documents.
	assert.Equal(t, int32(1), table.RegisterAnchor([]byte("a")))

	table.Reset()
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, int32(0), table.RegisterAnchor([]byte("b")))
}
