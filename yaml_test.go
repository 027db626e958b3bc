// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package yamlpull_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlpull/yamlpull"
)

func TestReadInput(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		chunkSize int
		want      []string
	}{
		{name: "short tail", input: "abcdefgh", chunkSize: 3, want: []string{"abc", "def", "gh"}},
		{name: "exact multiple", input: "abcdef", chunkSize: 3, want: []string{"abc", "def"}},
		{name: "default size", input: "a: 1\n", chunkSize: 0, want: []string{"a: 1\n"}},
		{name: "empty", input: "", chunkSize: 4, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := yamlpull.ReadInput(context.Background(), strings.NewReader(tt.input), tt.chunkSize)
			require.NoError(t, err)
			var got []string
			for _, c := range chunks {
				got = append(got, string(c))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadInputErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := yamlpull.ReadInput(ctx, strings.NewReader("a: 1\n"), 2)
	var re yamlpull.ReaderError
	require.ErrorAs(t, err, &re)
	assert.Zero(t, re.Offset)
	assert.ErrorIs(t, err, context.Canceled)

	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("abcd"), iotest.ErrReader(boom))
	_, err = yamlpull.ReadInput(context.Background(), r, 2)
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 4, re.Offset)
	assert.ErrorIs(t, err, boom)

	_, err = yamlpull.NewParserFromReader(context.Background(), iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)

	_, err = yamlpull.NewParserFromReader(context.Background(), strings.NewReader(""), yamlpull.WithChunkSize(0))
	assert.EqualError(t, err, "yaml: chunk size must be positive")
}

func TestNewParserFromReader(t *testing.T) {
	input := "doc: &a\n  - 'one'\n  - two # c\nref: *a\n---\n[x, {y: z}]\n"
	want, err := yamlpull.FormatEvents([]byte(input), yamlpull.WithPreserveComments())
	require.NoError(t, err)

	for _, size := range []int{1, 2, 7, 64} {
		p, err := yamlpull.NewParserFromReader(context.Background(), strings.NewReader(input),
			yamlpull.WithChunkSize(size), yamlpull.WithPreserveComments())
		require.NoError(t, err)
		var got []string
		for {
			ok, err := p.Read()
			require.NoError(t, err)
			if !ok {
				break
			}
			got = append(got, p.FormatEvent())
		}
		assert.Equal(t, want, got, "chunk size %d", size)
	}
}

func TestEmitFromParser(t *testing.T) {
	p, err := yamlpull.NewParser([]byte("a: [1, 2]\nb: {}\n"))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, yamlpull.EmitFromParser(p, &buf))
	assert.Equal(t, "a:\n  - 1\n  - 2\nb: {}\n", buf.String())
}

func TestEventTypeConstants(t *testing.T) {
	events, err := yamlpull.FormatEvents([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"+STR", "+DOC", "=VAL :a", "-DOC", "-STR"}, events)

	p, err := yamlpull.NewParser([]byte("'q'"))
	require.NoError(t, err)
	require.NoError(t, p.SkipAfter(yamlpull.DocumentStartEvent))
	assert.Equal(t, yamlpull.ScalarEvent, p.CurrentEventType())
	assert.Equal(t, yamlpull.SingleQuotedStyle, p.Event().ScalarStyle())
	a, ok := p.CurrentAnchor()
	assert.False(t, ok)
	assert.Equal(t, yamlpull.NoAnchor, a)
}
