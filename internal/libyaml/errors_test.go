// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Tests for error types.
// Verifies error formatting, unwrapping, and error classification.

package libyaml

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	mark := Mark{Index: 12, Line: 2, Column: 3}
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "scanner error",
			err:  ScannerError{Mark: mark, Message: "found character that cannot start any token"},
			want: "yaml: line 2, column 4: found character that cannot start any token",
		},
		{
			name: "parser error with context",
			err: ParserError{
				ContextMessage: "while parsing a flow node",
				ContextMark:    Mark{Line: 1},
				Mark:           mark,
				Message:        "did not find expected node content",
			},
			want: "yaml: while parsing a flow node at line 1: line 2, column 4: did not find expected node content",
		},
		{
			name: "context at the problem mark",
			err: MarkedYAMLError{
				ContextMessage: "while scanning a tag",
				ContextMark:    mark,
				Mark:           mark,
				Message:        "did not find expected '>'",
			},
			want: "yaml: while scanning a tag at line 2, column 4: did not find expected '>'",
		},
		{
			name: "alias error",
			err:  &AliasError{Name: "x", Mark: mark},
			want: "yaml: line 2, column 4: unknown anchor 'x' referenced",
		},
		{
			name: "conversion error with cause",
			err:  &ScalarConversionError{Value: "[", Target: "bool", Mark: mark, Err: ErrNotScalar},
			want: `yaml: line 2, column 4: cannot convert "[" to bool: current event is not a scalar`,
		},
		{
			name: "reader error",
			err:  ReaderError{Offset: 7, Err: errors.New("boom")},
			want: "yaml: offset 7: boom",
		},
		{
			name: "emitter error",
			err:  EmitterError{Message: "bad"},
			want: "yaml: bad",
		},
		{
			name: "construct error",
			err:  &ConstructError{Err: errors.New("bad value"), Line: 4},
			want: "yaml: line 4: bad value",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestErrorMark(t *testing.T) {
	mark := Mark{Index: 1, Line: 1, Column: 1}
	tests := []struct {
		err    error
		want   Mark
		wantOK bool
	}{
		{ScannerError{Mark: mark}, mark, true},
		{ParserError{Mark: mark}, mark, true},
		{MarkedYAMLError{Mark: mark}, mark, true},
		{&AliasError{Mark: mark}, mark, true},
		{&ScalarConversionError{Mark: mark}, mark, true},
		{&ConstructError{Err: errors.New("x"), Line: 5, Column: 2}, Mark{Line: 5, Column: 2}, true},
		{fmt.Errorf("wrapped: %w", ParserError{Mark: mark}), mark, true},
		{ReaderError{Err: errors.New("x")}, Mark{}, false},
		{errors.New("plain"), Mark{}, false},
	}
	for _, tt := range tests {
		got, ok := ErrorMark(tt.err)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.err)
		assert.Equal(t, tt.want, got, "%v", tt.err)
	}
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "scanner", ErrorKind(ScannerError{}))
	assert.Equal(t, "parser", ErrorKind(fmt.Errorf("x: %w", ParserError{})))
	assert.Equal(t, "alias", ErrorKind(&AliasError{}))
	assert.Equal(t, "conversion", ErrorKind(&ScalarConversionError{}))
	assert.Equal(t, "reader", ErrorKind(ReaderError{Err: errors.New("x")}))
	assert.Equal(t, "other", ErrorKind(errors.New("x")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	assert.ErrorIs(t, ReaderError{Err: cause}, cause)
	assert.ErrorIs(t, WriterError{Err: cause}, cause)
	assert.ErrorIs(t, &ConstructError{Err: cause}, cause)
	assert.ErrorIs(t, &ScalarConversionError{Err: cause}, cause)
}
