// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Tests for options.go functions.

package libyaml

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.False(t, o.PreserveComments)
	assert.True(t, o.StripLeadingWhitespace)
	assert.Equal(t, DefaultChunkSize, o.ChunkSize)
	assert.NotNil(t, o.Logger)
	assert.Nil(t, o.Metrics)
}

func TestApplyOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		check   func(t *testing.T, o Options)
		wantErr string
	}{
		{
			name:  "preserve comments without argument",
			opts:  []Option{WithPreserveComments()},
			check: func(t *testing.T, o Options) { assert.True(t, o.PreserveComments) },
		},
		{
			name:  "last option wins",
			opts:  []Option{WithPreserveComments(true), WithPreserveComments(false)},
			check: func(t *testing.T, o Options) { assert.False(t, o.PreserveComments) },
		},
		{
			name:  "strip leading whitespace off",
			opts:  []Option{WithStripLeadingWhitespace(false)},
			check: func(t *testing.T, o Options) { assert.False(t, o.StripLeadingWhitespace) },
		},
		{
			name:  "nil options are skipped",
			opts:  []Option{nil, WithChunkSize(16)},
			check: func(t *testing.T, o Options) { assert.Equal(t, 16, o.ChunkSize) },
		},
		{
			name:    "too many arguments",
			opts:    []Option{WithPreserveComments(true, false)},
			wantErr: "yaml: WithPreserveComments accepts at most one argument",
		},
		{
			name:    "too many strip arguments",
			opts:    []Option{WithStripLeadingWhitespace(true, true)},
			wantErr: "yaml: WithStripLeadingWhitespace accepts at most one argument",
		},
		{
			name:    "nil logger",
			opts:    []Option{WithLogger(nil)},
			wantErr: "yaml: logger must not be nil",
		},
		{
			name:    "zero chunk size",
			opts:    []Option{WithChunkSize(0)},
			wantErr: "yaml: chunk size must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ApplyOptions(tt.opts...)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, o)
		})
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)

	p, err := NewParser([]byte("a: [b"), WithLogger(logger))
	require.NoError(t, err)
	for {
		ok, err := p.Read()
		if err != nil || !ok {
			break
		}
	}
	out := buf.String()
	assert.Contains(t, out, "level=debug msg=\"document start\"")
	assert.Contains(t, out, "level=warn msg=\"parse failed\" kind=parser")
}
