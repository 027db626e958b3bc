// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Package yts runs the parser against a checkout of the YAML test suite.
package yts

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"

	"github.com/yamlpull/yamlpull"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var knownFailingTests = loadKnownFailingTests()

func loadKnownFailingTests() map[string]bool {
	fileContent, err := os.ReadFile("known-failing-tests")
	if err != nil {
		return make(map[string]bool)
	}
	knownTests := make(map[string]bool)
	for _, line := range strings.Split(string(fileContent), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			knownTests[trimmed] = true
		}
	}
	return knownTests
}

func shouldSkipTest(t *testing.T) {
	if os.Getenv("RUNALL") == "1" {
		return
	}
	name := t.Name()
	runFailing := os.Getenv("RUNFAILING") == "1"
	isKnownFailing := knownFailingTests[name]

	switch {
	case runFailing && !isKnownFailing:
		t.Skipf("Skipping non-failing test: %s", name)
	case !runFailing && isKnownFailing:
		t.Skipf("Skipping known failing test: %s", name)
	}
}

// suiteDir is where the data branch of yaml-test-suite is checked out.
func suiteDir() string {
	if dir := os.Getenv("YAML_TEST_SUITE_DIR"); dir != "" {
		return dir
	}
	return filepath.Join("testdata", "data-2022-01-17")
}

func TestYAMLSuite(t *testing.T) {
	testDir := suiteDir()
	if _, err := os.Stat(filepath.Join(testDir, "229Q")); err != nil {
		t.Skipf("YAML test suite data not found at %q; set YAML_TEST_SUITE_DIR to run it", testDir)
	}
	runTestsInDir(t, testDir)
}

func runTestsInDir(t *testing.T, dirPath string) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dirPath, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		entryPath := filepath.Join(dirPath, entry.Name())
		if fileExists(entryPath, "in.yaml") {
			t.Run(entry.Name(), func(t *testing.T) {
				runTest(t, entryPath)
			})
		} else {
			runTestsInDir(t, entryPath)
		}
	}
}

func mustRead(t *testing.T, path, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(path, name))
	if err != nil {
		t.Fatalf("Failed to read %s (%s): %v", name, path, err)
	}
	return data
}

func fileExists(path, name string) bool {
	_, err := os.Stat(filepath.Join(path, name))
	return err == nil
}

func runTest(t *testing.T, testPath string) {
	t.Helper()

	description := strings.TrimSpace(string(mustRead(t, testPath, "===")))
	inYAML := mustRead(t, testPath, "in.yaml")
	expectError := fileExists(testPath, "error")

	t.Run("Events", func(t *testing.T) {
		shouldSkipTest(t)
		events, err := yamlpull.FormatEvents(inYAML)
		if expectError {
			if err == nil {
				t.Errorf("%s: expected a parse error, got none", description)
			}
			return
		}
		if err != nil {
			t.Errorf("%s: unexpected parse error: %v", description, err)
			return
		}
		want := strings.Split(strings.TrimSuffix(strings.ReplaceAll(
			string(mustRead(t, testPath, "test.event")), "\r", ""), "\n"), "\n")
		if diff := cmp.Diff(want, events); diff != "" {
			t.Errorf("%s: event mismatch (-want +got):\n%s", description, diff)
		}
	})

	t.Run("Chunked", func(t *testing.T) {
		shouldSkipTest(t)
		want, wantErr := yamlpull.FormatEvents(inYAML)
		mid := len(inYAML) / 2
		p, err := yamlpull.NewParserFromChunks([][]byte{inYAML[:mid], inYAML[mid:]})
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		var gotErr error
		for {
			ok, err := p.Read()
			if err != nil {
				gotErr = err
				break
			}
			if !ok {
				break
			}
			got = append(got, p.FormatEvent())
		}
		if (wantErr == nil) != (gotErr == nil) {
			t.Errorf("%s: chunked error %v, single buffer error %v", description, gotErr, wantErr)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: chunked events differ (-single +chunked):\n%s", description, diff)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		shouldSkipTest(t)
		if expectError || !fileExists(testPath, "in.json") {
			return
		}
		docs, err := yamlpull.DecodeAll(inYAML)
		if err != nil {
			t.Errorf("%s: unexpected decode error: %v", description, err)
			return
		}
		want, err := readJSONStream(mustRead(t, testPath, "in.json"))
		if err != nil {
			t.Fatalf("%s: bad in.json: %v", description, err)
		}
		got, err := normalizeJSON(docs)
		if err != nil {
			t.Errorf("%s: decoded value is not JSON: %v", description, err)
			return
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: decoded value mismatch (-in.json +decoded):\n%s", description, diff)
		}
	})
}

// readJSONStream reads every JSON document of data.
func readJSONStream(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var docs []any
	for {
		var v any
		err := dec.Decode(&v)
		if err == io.EOF {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}
}

// normalizeJSON round-trips docs through JSON so numbers compare the way
// in.json decodes them.
func normalizeJSON(docs []any) ([]any, error) {
	b, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}
	var out []any
	err = json.Unmarshal(b, &out)
	return out, err
}
