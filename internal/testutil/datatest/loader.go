// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Package datatest runs table tests whose cases are stored in YAML files.
//
// A case file is a sequence of mappings. Each case names its handler either
// with a "type" field or by being written as a single-key mapping whose key
// is the handler name:
//
//	- parse-events:
//	    name: empty document
//	    yaml: "---\n"
//	    want: [+STR, +DOC ---, =VAL :, -DOC, -STR]
package datatest

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadTestCasesFromFile reads filename and returns its cases in file order,
// normalized to carry a "type" field.
func LoadTestCasesFromFile(filename string) ([]map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read test cases")
	}
	return LoadTestCases(data)
}

// LoadTestCases parses a case file held in memory.
func LoadTestCases(data []byte) ([]map[string]any, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse test cases")
	}
	cases := make([]map[string]any, 0, len(raw))
	for i, rc := range raw {
		tc := NormalizeTypeAsKey(rc)
		if _, ok := tc["type"]; !ok {
			return nil, fmt.Errorf("test case %d has no type", i)
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

// NormalizeTypeAsKey rewrites {handler: {...}} as {type: handler, ...}.
// Maps that already have a type field are returned as is.
func NormalizeTypeAsKey(m map[string]any) map[string]any {
	if _, ok := m["type"]; ok || len(m) != 1 {
		return m
	}
	for key, value := range m {
		sub, ok := value.(map[string]any)
		if !ok || !IsTypeName(key) {
			return m
		}
		out := make(map[string]any, len(sub)+1)
		for k, v := range sub {
			out[k] = v
		}
		out["type"] = key
		return out
	}
	return m
}

// IsTypeName reports whether s looks like a handler name: lower case words
// joined by hyphens, or an upper case constant.
func IsTypeName(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// UnmarshalTestCase decodes tc into target, a pointer to a struct with yaml
// field tags.
func UnmarshalTestCase(tc map[string]any, target any) error {
	data, err := yaml.Marshal(tc)
	if err != nil {
		return errors.Wrap(err, "encode test case")
	}
	return errors.Wrap(yaml.Unmarshal(data, target), "decode test case")
}
