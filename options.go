// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package yamlpull

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yamlpull/yamlpull/internal/libyaml"
)

// Options is the resolved parser configuration.
type Options = libyaml.Options

// Option allows configuring a Parser or an Emitter.
type Option = libyaml.Option

// Option configuration functions
var (
	// WithPreserveComments makes the parser report comments as COMMENT
	// events, in stream order. Comments are dropped by default.
	// When called without arguments, defaults to true.
	WithPreserveComments = libyaml.WithPreserveComments

	// WithStripLeadingWhitespace controls whether the blanks between '#'
	// and the comment text are dropped. On by default.
	// When called without arguments, defaults to true.
	WithStripLeadingWhitespace = libyaml.WithStripLeadingWhitespace

	// WithLogger sets the go-kit logger used for debug tracing and parse
	// failures. The default discards everything.
	WithLogger = libyaml.WithLogger

	// WithMetrics instruments the parser. See NewMetrics.
	WithMetrics = libyaml.WithMetrics

	// WithChunkSize sets the read size used by NewParserFromReader.
	WithChunkSize = libyaml.WithChunkSize
)

// DefaultOptions returns the configuration used when no option is given.
func DefaultOptions() Options {
	return libyaml.DefaultOptions()
}

// NewMetrics creates the parser collectors and registers them with reg. A
// nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return libyaml.NewMetrics(reg)
}
