// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package yamlpull

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/yamlpull/yamlpull/internal/libyaml"
)

type (
	// LexicalError reports malformed input found while tokenizing.
	LexicalError = libyaml.ScannerError
	// GrammarError reports tokens that violate the YAML grammar.
	GrammarError = libyaml.ParserError
	// AliasError reports an alias to an anchor that was never defined.
	AliasError = libyaml.AliasError
	// ScalarConversionError reports a scalar that cannot be read as the
	// requested type.
	ScalarConversionError = libyaml.ScalarConversionError
	// ReaderError reports a failure while reading input.
	ReaderError = libyaml.ReaderError
	// ConstructError reports a failure to build a value in Decode.
	ConstructError = libyaml.ConstructError
)

// ErrorMark returns the input position an error refers to.
func ErrorMark(err error) (Mark, bool) {
	return libyaml.ErrorMark(err)
}

// FormatError renders err followed by the offending line of src and a caret
// under the reported column. Errors without a position render as their
// message alone.
func FormatError(src []byte, err error) string {
	var b strings.Builder
	b.WriteString(err.Error())

	mark, ok := ErrorMark(err)
	if !ok || mark.Line < 1 {
		return b.String()
	}
	line, ok := sourceLine(src, mark.Line)
	if !ok {
		return b.String()
	}

	gutter := fmt.Sprintf("%4d | ", mark.Line)
	b.WriteByte('\n')
	b.WriteString(gutter)
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", len(gutter)-2))
	b.WriteString("| ")
	b.WriteString(caretPadding(line, mark.Column))
	b.WriteByte('^')
	return b.String()
}

// sourceLine returns the 1-based line n of src without its line break.
func sourceLine(src []byte, n int) (string, bool) {
	for i := 1; ; i++ {
		end := bytes.IndexAny(src, "\r\n")
		if i == n {
			if end < 0 {
				return string(src), true
			}
			return string(src[:end]), true
		}
		if end < 0 {
			return "", false
		}
		if src[end] == '\r' && end+1 < len(src) && src[end+1] == '\n' {
			end++
		}
		src = src[end+1:]
	}
}

// caretPadding returns the blanks that put a caret under the character at
// column, counting display width. Tabs are kept so the caret lines up
// whatever the terminal tab width.
func caretPadding(line string, column int) string {
	var prefix strings.Builder
	for i := 0; i < column && len(line) > 0; i++ {
		r, size := utf8.DecodeRuneInString(line)
		if r == '\t' {
			prefix.WriteByte('\t')
		} else {
			prefix.WriteString(strings.Repeat(" ", uniseg.StringWidth(line[:size])))
		}
		line = line[size:]
	}
	return prefix.String()
}
