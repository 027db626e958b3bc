// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the parser collectors. One Metrics value may be shared by
// many parsers.
type Metrics struct {
	documents       prometheus.Counter
	events          prometheus.Counter
	parseErrors     *prometheus.CounterVec
	poolAllocations prometheus.Counter
	inputBytes      prometheus.Counter
}

// NewMetrics creates the parser collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		documents: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "yamlpull_documents_total",
			Help: "Total number of YAML documents parsed.",
		}),
		events: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "yamlpull_events_total",
			Help: "Total number of parse events produced.",
		}),
		parseErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "yamlpull_parse_errors_total",
			Help: "Total number of parse failures by error kind.",
		}, []string{"kind"}),
		poolAllocations: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "yamlpull_scalar_pool_allocations_total",
			Help: "Total number of scalar buffers allocated because the pool was empty.",
		}),
		inputBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "yamlpull_input_bytes_total",
			Help: "Total number of input bytes handed to parsers.",
		}),
	}
}

func (m *Metrics) observeInput(n int) {
	if m != nil {
		m.inputBytes.Add(float64(n))
	}
}

func (m *Metrics) observeEvent(t EventType) {
	if m == nil {
		return
	}
	m.events.Inc()
	if t == DOCUMENT_START_EVENT {
		m.documents.Inc()
	}
}

func (m *Metrics) observeError(err error) {
	if m != nil {
		m.parseErrors.WithLabelValues(ErrorKind(err)).Inc()
	}
}

func (m *Metrics) allocationHook() func() {
	if m == nil {
		return nil
	}
	return m.poolAllocations.Inc
}
