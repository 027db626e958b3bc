// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
)

// Printer receives command output one line at a time.
type Printer interface {
	PrintLine(line string)
}

// WriterPrinter prints lines to an io.Writer.
type WriterPrinter struct {
	w io.Writer
}

func NewWriterPrinter(w io.Writer) *WriterPrinter {
	return &WriterPrinter{w: w}
}

func (p *WriterPrinter) PrintLine(line string) {
	fmt.Fprintln(p.w, line)
}
