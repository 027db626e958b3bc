// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package yamlpull

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/yamlpull/yamlpull/internal/libyaml"
)

// Decode builds the node that starts at the current event of p and leaves
// p on the first non-comment event after it.
//
// Mappings become map[string]any, sequences []any. Untagged plain scalars
// resolve to nil, bool, int, int64, uint64, float64 or string, in that order
// of preference; quoted scalars are strings. The tags !!str, !!int, !!float,
// !!bool and !!null force the corresponding conversion, any other tag leaves
// the text as a string. Anchored values are recorded in ctx once complete,
// and aliases resolve through it.
func Decode(p *Parser, ctx *DeserializationContext) (any, error) {
	for p.CurrentEventType() == CommentEvent {
		if err := advance(p); err != nil {
			return nil, err
		}
	}

	switch p.CurrentEventType() {
	case AliasEvent:
		anchor, _ := p.CurrentAnchor()
		v, err := ctx.ResolveAlias(anchor)
		if err != nil {
			return nil, constructError(p.CurrentMark(), errors.Wrapf(err, "alias *%s", anchor.Name))
		}
		return v, advance(p)

	case ScalarEvent:
		v, err := decodeScalar(p)
		if err != nil {
			return nil, err
		}
		anchor, _ := p.CurrentAnchor()
		ctx.AddAlias(anchor, v)
		return v, advance(p)

	case SequenceStartEvent:
		anchor, _ := p.CurrentAnchor()
		if err := advance(p); err != nil {
			return nil, err
		}
		s := make([]any, 0)
		for p.CurrentEventType() != SequenceEndEvent {
			v, err := Decode(p, ctx)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		ctx.AddAlias(anchor, s)
		return s, advance(p)

	case MappingStartEvent:
		anchor, _ := p.CurrentAnchor()
		if err := advance(p); err != nil {
			return nil, err
		}
		m := make(map[string]any)
		for p.CurrentEventType() != MappingEndEvent {
			mark := p.CurrentMark()
			key, err := decodeKey(p, ctx)
			if err != nil {
				return nil, err
			}
			if _, ok := m[key]; ok {
				return nil, constructError(mark, errors.Errorf("mapping key %q already defined", key))
			}
			v, err := Decode(p, ctx)
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		ctx.AddAlias(anchor, m)
		return m, advance(p)
	}

	return nil, constructError(p.CurrentMark(),
		errors.Errorf("expected a node, found %s", p.CurrentEventType()))
}

// DecodeAll decodes every document of data, in stream order. An empty
// document decodes to nil.
func DecodeAll(data []byte, opts ...Option) ([]any, error) {
	p, err := NewParser(data, opts...)
	if err != nil {
		return nil, err
	}
	ctx := defaultContextPool.Get()
	defer defaultContextPool.Put(ctx)

	if err := p.SkipAfter(StreamStartEvent); err != nil {
		return nil, err
	}
	var docs []any
	for {
		switch p.CurrentEventType() {
		case CommentEvent:
			if _, err := p.Read(); err != nil {
				return docs, err
			}
		case DocumentStartEvent:
			if err := advance(p); err != nil {
				return docs, err
			}
			v, err := Decode(p, ctx)
			if err != nil {
				return docs, err
			}
			docs = append(docs, v)
			if err := p.SkipAfter(DocumentEndEvent); err != nil {
				return docs, err
			}
			ctx.Reset()
		case StreamEndEvent:
			return docs, nil
		default:
			return docs, constructError(p.CurrentMark(),
				errors.Errorf("expected a document, found %s", p.CurrentEventType()))
		}
	}
}

func decodeScalar(p *Parser) (any, error) {
	b := p.CurrentScalar()
	switch p.ResolvedTag() {
	case "":
		if p.Event().ScalarStyle() != PlainStyle {
			return string(b), nil
		}
		return libyaml.ResolvePlain(b), nil
	case libyaml.STR_TAG:
		return string(b), nil
	case libyaml.BOOL_TAG:
		return p.GetScalarAsBool()
	case libyaml.INT_TAG:
		if v, ok := libyaml.ParseSigned[int32](b); ok {
			return int(v), nil
		}
		if v, ok := libyaml.ParseSigned[int64](b); ok {
			return v, nil
		}
		if v, ok := libyaml.ParseUnsigned[uint64](b); ok {
			return v, nil
		}
		return p.GetScalarAsInt64()
	case libyaml.FLOAT_TAG:
		return p.GetScalarAsFloat64()
	case libyaml.NULL_TAG:
		if !libyaml.IsNullValue(b) {
			return nil, &libyaml.ScalarConversionError{
				Value:  string(b),
				Target: "null",
				Mark:   p.CurrentMark(),
			}
		}
		return nil, nil
	}
	return string(b), nil
}

// decodeKey reads a mapping key and returns its text.
func decodeKey(p *Parser, ctx *DeserializationContext) (string, error) {
	for p.CurrentEventType() == CommentEvent {
		if err := advance(p); err != nil {
			return "", err
		}
	}
	mark := p.CurrentMark()
	switch p.CurrentEventType() {
	case ScalarEvent:
		key := string(p.CurrentScalar())
		if anchor, ok := p.CurrentAnchor(); ok {
			v, err := decodeScalar(p)
			if err != nil {
				return "", err
			}
			ctx.AddAlias(anchor, v)
		}
		return key, advance(p)
	case AliasEvent:
		v, err := Decode(p, ctx)
		if err != nil {
			return "", err
		}
		key, ok := keyText(v)
		if !ok {
			return "", constructError(mark, errors.New("alias used as a mapping key does not refer to a scalar"))
		}
		return key, nil
	}
	return "", constructError(mark,
		errors.Errorf("mapping keys must be scalars, found %s", p.CurrentEventType()))
}

func keyText(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int, int64, uint64:
		return fmt.Sprint(v), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	}
	return "", false
}

// advance reads the next event that is not a comment.
func advance(p *Parser) error {
	for {
		ok, err := p.Read()
		if err != nil {
			return err
		}
		if !ok {
			return constructError(p.CurrentMark(), errors.New("unexpected end of stream"))
		}
		if p.CurrentEventType() != CommentEvent {
			return nil
		}
	}
}

func constructError(mark Mark, err error) error {
	return &libyaml.ConstructError{Err: err, Line: mark.Line, Column: mark.Column}
}
