// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Error types for YAML scanning, parsing and scalar conversion.
// Every error raised while reading a stream carries the Mark it refers to.

package libyaml

import (
	"errors"
	"fmt"
	"strings"
)

type MarkedYAMLError struct {
	// optional context
	ContextMark    Mark
	ContextMessage string

	Mark    Mark
	Message string
}

func (e MarkedYAMLError) Error() string {
	var builder strings.Builder
	builder.WriteString("yaml: ")
	if len(e.ContextMessage) > 0 {
		fmt.Fprintf(&builder, "%s at %s: ", e.ContextMessage, e.ContextMark)
	}
	if len(e.ContextMessage) == 0 || e.ContextMark != e.Mark {
		fmt.Fprintf(&builder, "%s: ", e.Mark)
	}
	builder.WriteString(e.Message)
	return builder.String()
}

// ParserError reports input that is well formed lexically but violates the
// YAML grammar.
type ParserError MarkedYAMLError

func (e ParserError) Error() string {
	return MarkedYAMLError(e).Error()
}

// ScannerError reports malformed input found while tokenizing.
type ScannerError MarkedYAMLError

func (e ScannerError) Error() string {
	return MarkedYAMLError(e).Error()
}

// AliasError reports an alias that names no anchor defined earlier in the
// document.
type AliasError struct {
	Name string
	Mark Mark
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("yaml: %s: unknown anchor '%s' referenced", e.Mark, e.Name)
}

// ScalarConversionError reports that the current scalar cannot be read as
// the requested type.
type ScalarConversionError struct {
	Value  string
	Target string
	Mark   Mark
	Err    error
}

func (e *ScalarConversionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "yaml: %s: cannot convert %q to %s", e.Mark, e.Value, e.Target)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ScalarConversionError) Unwrap() error {
	return e.Err
}

// ErrNotScalar is wrapped by conversion errors raised on a non-scalar event.
var ErrNotScalar = errors.New("current event is not a scalar")

type ReaderError struct {
	Offset int
	Err    error
}

func (e ReaderError) Error() string {
	return fmt.Sprintf("yaml: offset %d: %s", e.Offset, e.Err)
}

func (e ReaderError) Unwrap() error {
	return e.Err
}

type EmitterError struct {
	Message string
}

func (e EmitterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Message)
}

type WriterError struct {
	Err error
}

func (e WriterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Err)
}

func (e WriterError) Unwrap() error {
	return e.Err
}

// ConstructError represents a failure to materialize a node into a Go
// value.
type ConstructError struct {
	Err    error
	Line   int
	Column int
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("yaml: line %d: %s", e.Line, e.Err.Error())
}

func (e *ConstructError) Unwrap() error {
	return e.Err
}

// ErrorMark extracts the position carried by any error of this package.
func ErrorMark(err error) (Mark, bool) {
	var (
		pe ParserError
		se ScannerError
		ae *AliasError
		ce *ScalarConversionError
		me MarkedYAMLError
		ke *ConstructError
	)
	switch {
	case errors.As(err, &se):
		return se.Mark, true
	case errors.As(err, &pe):
		return pe.Mark, true
	case errors.As(err, &me):
		return me.Mark, true
	case errors.As(err, &ae):
		return ae.Mark, true
	case errors.As(err, &ce):
		return ce.Mark, true
	case errors.As(err, &ke):
		return Mark{Line: ke.Line, Column: ke.Column}, true
	}
	return Mark{}, false
}

// ErrorKind names the error class, for metrics and logs.
func ErrorKind(err error) string {
	var (
		pe ParserError
		se ScannerError
		ae *AliasError
		ce *ScalarConversionError
		re ReaderError
	)
	switch {
	case errors.As(err, &se):
		return "scanner"
	case errors.As(err, &pe):
		return "parser"
	case errors.As(err, &ae):
		return "alias"
	case errors.As(err, &ce):
		return "conversion"
	case errors.As(err, &re):
		return "reader"
	}
	return "other"
}
