// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/yamlpull/yamlpull"
)

// source opens command inputs. An empty path or "-" means stdin.
type source struct {
	fs    afero.Fs
	stdin io.Reader
}

func (s source) read(ctx context.Context, path string) ([][]byte, error) {
	if path == "" || path == "-" {
		chunks, err := yamlpull.ReadInput(ctx, s.stdin, 0)
		return chunks, errors.Wrap(err, "read stdin")
	}
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	chunks, err := yamlpull.ReadInput(ctx, f, 0)
	return chunks, errors.Wrapf(err, "read %s", path)
}

func parserOptions(comments bool, logger log.Logger) []yamlpull.Option {
	return []yamlpull.Option{
		yamlpull.WithPreserveComments(comments),
		yamlpull.WithLogger(logger),
	}
}

// sourceError renders a parse error against the input it came from.
func sourceError(chunks [][]byte, err error) error {
	return errors.New(yamlpull.FormatError(bytes.Join(chunks, nil), err))
}

func chunksLen(chunks [][]byte) int {
	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	return n
}

type position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Index  int `json:"index"`
}

func newPosition(m yamlpull.Mark) *position {
	return &position{Line: m.Line, Column: m.Column + 1, Index: m.Index}
}

// span renders two marks as "line:column-line:column" with 1-based columns.
func span(start, end yamlpull.Mark) string {
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Column+1, end.Line, end.Column+1)
}
