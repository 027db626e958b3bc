// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package datatest

import (
	"path/filepath"
	"testing"
)

// TestHandler runs a single test case.
type TestHandler func(t *testing.T, tc map[string]any)

// TestRunner dispatches cases to handlers by type.
type TestRunner struct {
	handlers map[string]TestHandler
}

// NewTestRunner creates a runner without handlers.
func NewTestRunner() *TestRunner {
	return &TestRunner{handlers: make(map[string]TestHandler)}
}

// RegisterHandler registers the handler for a case type.
func (r *TestRunner) RegisterHandler(testType string, handler TestHandler) {
	r.handlers[testType] = handler
}

// RunWithCases runs every case as a subtest named after its "name" field.
func (r *TestRunner) RunWithCases(t *testing.T, cases []map[string]any) {
	t.Helper()
	for _, tc := range cases {
		name, _ := GetString(tc, "name")
		if name == "" {
			name = "unnamed"
		}
		testType, _ := GetString(tc, "type")
		t.Run(name, func(t *testing.T) {
			handler, ok := r.handlers[testType]
			if !ok {
				t.Fatalf("unknown test type: %s", testType)
			}
			handler(t, tc)
		})
	}
}

// RunTestCases loads testdata/<file> and runs its cases with handlers.
func RunTestCases(t *testing.T, file string, handlers map[string]TestHandler) {
	t.Helper()
	cases, err := LoadTestCasesFromFile(filepath.Join("testdata", file))
	if err != nil {
		t.Fatalf("failed to load test cases: %v", err)
	}
	runner := NewTestRunner()
	for testType, handler := range handlers {
		runner.RegisterHandler(testType, handler)
	}
	runner.RunWithCases(t, cases)
}
