// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package datatest

import (
	"encoding/hex"
	"fmt"
	"testing"
)

// GetString extracts a string field.
func GetString(tc map[string]any, key string) (string, bool) {
	s, ok := tc[key].(string)
	return s, ok
}

// GetBool extracts a bool field.
func GetBool(tc map[string]any, key string) (bool, bool) {
	b, ok := tc[key].(bool)
	return b, ok
}

// RequireString extracts a string field, failing the test if it is absent.
func RequireString(t *testing.T, tc map[string]any, key string) string {
	t.Helper()
	s, ok := GetString(tc, key)
	if !ok {
		t.Fatalf("required field %q missing or not a string", key)
	}
	return s
}

// StringSlice extracts a sequence field as strings. Non-string items are
// formatted with %v; a missing field yields nil.
func StringSlice(t *testing.T, tc map[string]any, key string) []string {
	t.Helper()
	v, ok := tc[key]
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		t.Fatalf("field %q is a %T, want a sequence", key, v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		if s, ok := item.(string); ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprint(item)
		}
	}
	return out
}

// Input returns the input bytes of a case: the "yaml" field, or the
// "input_hex" field decoded from hex.
func Input(t *testing.T, tc map[string]any) []byte {
	t.Helper()
	if s, ok := GetString(tc, "input_hex"); ok {
		b, err := hex.DecodeString(s)
		if err != nil {
			t.Fatalf("invalid hex input %q: %v", s, err)
		}
		return b
	}
	return []byte(RequireString(t, tc, "yaml"))
}
