// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package yamlpull_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlpull/yamlpull"
)

func TestDefaultOptions(t *testing.T) {
	o := yamlpull.DefaultOptions()
	assert.False(t, o.PreserveComments)
	assert.True(t, o.StripLeadingWhitespace)
	assert.Equal(t, 4096, o.ChunkSize)
	assert.NotNil(t, o.Logger)
	assert.Nil(t, o.Metrics)
}

func TestStripLeadingWhitespaceOption(t *testing.T) {
	input := []byte("#   padded\na\n")

	events, err := yamlpull.FormatEvents(input, yamlpull.WithPreserveComments())
	require.NoError(t, err)
	assert.Contains(t, events, "=COM padded")

	events, err = yamlpull.FormatEvents(input,
		yamlpull.WithPreserveComments(), yamlpull.WithStripLeadingWhitespace(false))
	require.NoError(t, err)
	assert.Contains(t, events, "=COM    padded")

	events, err = yamlpull.FormatEvents(input, yamlpull.WithPreserveComments(false))
	require.NoError(t, err)
	assert.NotContains(t, strings.Join(events, "\n"), "=COM")
}

func TestMetricsOption(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := yamlpull.NewMetrics(reg)

	_, err := yamlpull.DecodeAll([]byte("a\n---\nb\n---\nc\n"), yamlpull.WithMetrics(m))
	require.NoError(t, err)

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP yamlpull_documents_total Total number of YAML documents parsed.
# TYPE yamlpull_documents_total counter
yamlpull_documents_total 3
`), "yamlpull_documents_total"))

	assert.NotNil(t, yamlpull.NewMetrics(nil))
}

func TestLoggerOption(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(log.NewSyncWriter(&buf))

	_, err := yamlpull.DecodeAll([]byte("a: [\n"), yamlpull.WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), `msg="parse failed"`)
}
