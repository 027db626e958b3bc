// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Functional options for the scanner and parser.

package libyaml

import (
	"errors"

	"github.com/go-kit/log"
)

// DefaultChunkSize is the read size used when input comes from an
// io.Reader.
const DefaultChunkSize = 4096

// Options holds the parser configuration.
type Options struct {
	// PreserveComments makes the scanner emit COMMENT tokens and the parser
	// COMMENT events. Off by default.
	PreserveComments bool

	// StripLeadingWhitespace drops the blanks between '#' and the comment
	// text. On by default.
	StripLeadingWhitespace bool

	Logger    log.Logger
	Metrics   *Metrics
	ChunkSize int
}

// Option allows configuring the parser.
type Option func(*Options) error

// DefaultOptions returns the configuration used when no option is given.
func DefaultOptions() Options {
	return Options{
		StripLeadingWhitespace: true,
		Logger:                 log.NewNopLogger(),
		ChunkSize:              DefaultChunkSize,
	}
}

// ApplyOptions applies opts on top of the defaults.
func ApplyOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}
	return o, nil
}

func boolArg(args []bool) bool {
	if len(args) == 0 {
		return true
	}
	return args[0]
}

// WithPreserveComments enables comment tokens and events.
// When called without arguments, defaults to true.
func WithPreserveComments(preserve ...bool) Option {
	return func(o *Options) error {
		if len(preserve) > 1 {
			return errors.New("yaml: WithPreserveComments accepts at most one argument")
		}
		o.PreserveComments = boolArg(preserve)
		return nil
	}
}

// WithStripLeadingWhitespace controls whether the blanks following '#' are
// part of the comment text.
// When called without arguments, defaults to true.
func WithStripLeadingWhitespace(strip ...bool) Option {
	return func(o *Options) error {
		if len(strip) > 1 {
			return errors.New("yaml: WithStripLeadingWhitespace accepts at most one argument")
		}
		o.StripLeadingWhitespace = boolArg(strip)
		return nil
	}
}

// WithLogger sets the logger used for debug tracing and parse failures.
func WithLogger(logger log.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			return errors.New("yaml: logger must not be nil")
		}
		o.Logger = logger
		return nil
	}
}

// WithMetrics instruments the parser with m. A nil m disables
// instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) error {
		o.Metrics = m
		return nil
	}
}

// WithChunkSize sets the read size used when input comes from an io.Reader.
func WithChunkSize(size int) Option {
	return func(o *Options) error {
		if size <= 0 {
			return errors.New("yaml: chunk size must be positive")
		}
		o.ChunkSize = size
		return nil
	}
}
