// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Tests for the scanner stage.
// Verifies input stream to token stream transformation, indentation handling,
// and simple keys.

package libyaml

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlpull/yamlpull/internal/testutil/datatest"
)

func TestScanner(t *testing.T) {
	datatest.RunTestCases(t, "scanner.yaml", map[string]datatest.TestHandler{
		"scan-tokens": runScanTokensTest,
		"scan-error":  runScanErrorTest,
	})
}

// caseOptions reads the option fields shared by scanner and parser cases.
func caseOptions(tc map[string]any) []Option {
	var opts []Option
	if v, ok := datatest.GetBool(tc, "preserve_comments"); ok {
		opts = append(opts, WithPreserveComments(v))
	}
	if v, ok := datatest.GetBool(tc, "strip_leading_whitespace"); ok {
		opts = append(opts, WithStripLeadingWhitespace(v))
	}
	return opts
}

func runScanTokensTest(t *testing.T, tc map[string]any) {
	got, err := FormatTokens(datatest.Input(t, tc), caseOptions(tc)...)
	require.NoError(t, err)
	want := datatest.StringSlice(t, tc, "want")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func runScanErrorTest(t *testing.T, tc map[string]any) {
	_, err := FormatTokens(datatest.Input(t, tc), caseOptions(tc)...)
	require.Error(t, err)

	var se ScannerError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Message, datatest.RequireString(t, tc, "error"))
	assert.NotZero(t, se.Mark.Line)
}

func TestScannerPeekAfterEnd(t *testing.T) {
	pool := NewScalarPool()
	s := NewScanner(NewByteCursor([]byte("a")), pool, DefaultOptions())

	var types []TokenType
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		types = append(types, tok.Type)
		tok.release(pool)
		if tok.Type == STREAM_END_TOKEN {
			break
		}
	}
	assert.Equal(t, []TokenType{STREAM_START_TOKEN, SCALAR_TOKEN, STREAM_END_TOKEN}, types)

	_, err := s.Peek()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, pool.Allocated(), pool.Len())
}

func TestScannerErrorIsSticky(t *testing.T) {
	s := NewScanner(NewByteCursor([]byte("a: `b")), NewScalarPool(), DefaultOptions())
	var first error
	for first == nil {
		_, first = s.Next()
	}
	_, err := s.Peek()
	assert.Equal(t, first, err)
	assert.Equal(t, first, s.Err())
}

func TestScannerSimpleKeyLength(t *testing.T) {
	short := strings.Repeat("k", maxSimpleKeyLength-1) + ": v"
	tokens, err := FormatTokens([]byte(short))
	require.NoError(t, err)
	assert.Contains(t, tokens, "KEY_TOKEN")

	long := strings.Repeat("k", maxSimpleKeyLength+10) + ": v"
	_, err = FormatTokens([]byte(long))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapping values are not allowed in this context")
}

func TestScannerSimpleKeyAcrossLines(t *testing.T) {
	// A key cannot span a line break.
	_, err := FormatTokens([]byte("'multi\n line': v"))
	require.Error(t, err)
}

func TestScannerChunkBoundaries(t *testing.T) {
	input := "%YAML 1.2\n---\nkey: \"quo\\u00e9ted\"\nlist:\n  - &a [1, {b: c}]\n  - *a\nlit: |\n  text\n# done\n"
	want, err := FormatTokens([]byte(input), WithPreserveComments())
	require.NoError(t, err)

	for i := 0; i <= len(input); i++ {
		chunks := [][]byte{[]byte(input[:i]), []byte(input[i:])}
		got := scanChunks(t, chunks, WithPreserveComments())
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("split at %d (-want +got):\n%s", i, diff)
		}
	}
}

func scanChunks(t *testing.T, chunks [][]byte, opts ...Option) []string {
	t.Helper()
	o, err := ApplyOptions(opts...)
	require.NoError(t, err)
	pool := NewScalarPool()
	s := NewScanner(NewChunkedCursor(chunks), pool, o)
	var out []string
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		out = append(out, FormatToken(&tok))
		done := tok.Type == STREAM_END_TOKEN
		tok.release(pool)
		if done {
			return out
		}
	}
}

func TestScannerMarks(t *testing.T) {
	pool := NewScalarPool()
	s := NewScanner(NewByteCursor([]byte("a: b\nc: d\n")), pool, DefaultOptions())
	var scalars []Token
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		if tok.Type == SCALAR_TOKEN {
			scalars = append(scalars, tok)
		}
		if tok.Type == STREAM_END_TOKEN {
			break
		}
	}
	require.Len(t, scalars, 4)
	assert.Equal(t, Mark{Index: 0, Line: 1, Column: 0}, scalars[0].StartMark)
	assert.Equal(t, Mark{Index: 3, Line: 1, Column: 3}, scalars[1].StartMark)
	assert.Equal(t, Mark{Index: 5, Line: 2, Column: 0}, scalars[2].StartMark)
	assert.Equal(t, Mark{Index: 9, Line: 2, Column: 4}, scalars[3].EndMark)
}
