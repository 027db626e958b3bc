// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package libyaml

// AnchorTable assigns ids to anchor names and resolves aliases to them.
//
// Ids increase monotonically for the lifetime of the table, so an id never
// refers to two different nodes even when a name is redefined or when the
// names are reset at a document boundary.
type AnchorTable struct {
	ids   map[string]int32
	names []string // indexed by id
}

// NewAnchorTable returns an empty table.
func NewAnchorTable() *AnchorTable {
	return &AnchorTable{ids: make(map[string]int32)}
}

// RegisterAnchor binds name to a fresh id and returns it. A later
// definition of the same name shadows the earlier one.
func (t *AnchorTable) RegisterAnchor(name []byte) int32 {
	id := int32(len(t.names))
	s := string(name)
	t.names = append(t.names, s)
	t.ids[s] = id
	return id
}

// ResolveAlias returns the id currently bound to name. mark is the position
// of the alias, reported in the error when name is unknown.
func (t *AnchorTable) ResolveAlias(name []byte, mark Mark) (int32, error) {
	if id, ok := t.ids[string(name)]; ok {
		return id, nil
	}
	return -1, &AliasError{Name: string(name), Mark: mark}
}

// Lookup returns the name an id was registered under.
func (t *AnchorTable) Lookup(id int32) (string, bool) {
	if id < 0 || int(id) >= len(t.names) {
		return "", false
	}
	return t.names[id], true
}

// Len returns the number of ids handed out.
func (t *AnchorTable) Len() int { return len(t.names) }

// ResetNames forgets every name binding but keeps the id sequence, so ids
// stay unique across documents.
func (t *AnchorTable) ResetNames() {
	clear(t.ids)
}

// Reset empties the table and restarts ids at zero.
func (t *AnchorTable) Reset() {
	clear(t.ids)
	t.names = t.names[:0]
}

func (t *AnchorTable) anchor(id int32) Anchor {
	name, _ := t.Lookup(id)
	return Anchor{Name: name, ID: id}
}
