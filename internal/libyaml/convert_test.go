// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSigned(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"0", 0, true},
		{"123", 123, true},
		{"+123", 123, true},
		{"-123", -123, true},
		{"0xC", 12, true},
		{"-0xC", -12, true},
		{"0o17", 15, true},
		{"0b101", 5, true},
		{"007", 7, true},
		{"9223372036854775807", math.MaxInt64, true},
		{"-9223372036854775808", math.MinInt64, true},
		{"9223372036854775808", 0, false},
		{"1_000", 0, false},
		{"0x", 0, false},
		{"0b2", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"1.0", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSigned[int64]([]byte(tt.in))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSignedRange(t *testing.T) {
	_, ok := ParseSigned[int32]([]byte("2147483647"))
	assert.True(t, ok)
	_, ok = ParseSigned[int32]([]byte("2147483648"))
	assert.False(t, ok)
	v, ok := ParseSigned[int32]([]byte("-2147483648"))
	assert.True(t, ok)
	assert.Equal(t, int32(math.MinInt32), v)
	_, ok = ParseSigned[int8]([]byte("128"))
	assert.False(t, ok)
}

func TestParseUnsigned(t *testing.T) {
	v, ok := ParseUnsigned[uint64]([]byte("18446744073709551615"))
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, ok = ParseUnsigned[uint64]([]byte("18446744073709551616"))
	assert.False(t, ok)
	_, ok = ParseUnsigned[uint32]([]byte("-1"))
	assert.False(t, ok)
	_, ok = ParseUnsigned[uint32]([]byte("4294967296"))
	assert.False(t, ok)

	u, ok := ParseUnsigned[uint32]([]byte("0xFFFFFFFF"))
	assert.True(t, ok)
	assert.Equal(t, uint32(math.MaxUint32), u)
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1.5", 1.5, true},
		{"-1.5", -1.5, true},
		{".5", 0.5, true},
		{"1.", 1, true},
		{"1e3", 1000, true},
		{"1.5E-2", 0.015, true},
		{"+2", 2, true},
		{".inf", math.Inf(1), true},
		{".Inf", math.Inf(1), true},
		{".INF", math.Inf(1), true},
		{"+.inf", math.Inf(1), true},
		{"-.inf", math.Inf(-1), true},
		{"-.Inf", math.Inf(-1), true},
		{"inf", 0, false},
		{"Infinity", 0, false},
		{"NaN", 0, false},
		{"0x1p3", 0, false},
		{"1e", 0, false},
		{".", 0, false},
		{"1_0.0", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFloat([]byte(tt.in), 64)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, in := range []string{".nan", ".NaN", ".NAN"} {
		got, ok := ParseFloat([]byte(in), 64)
		assert.True(t, ok, in)
		assert.True(t, math.IsNaN(got), in)
	}
}

func TestParseBoolAndNull(t *testing.T) {
	for _, in := range []string{"true", "True", "TRUE"} {
		v, ok := ParseBool([]byte(in))
		assert.True(t, ok, in)
		assert.True(t, v, in)
	}
	for _, in := range []string{"false", "False", "FALSE"} {
		v, ok := ParseBool([]byte(in))
		assert.True(t, ok, in)
		assert.False(t, v, in)
	}
	for _, in := range []string{"yes", "on", "tRUE", "1"} {
		_, ok := ParseBool([]byte(in))
		assert.False(t, ok, in)
	}

	for _, in := range []string{"", "~", "null", "Null", "NULL"} {
		assert.True(t, IsNullValue([]byte(in)), in)
	}
	assert.False(t, IsNullValue([]byte("nULL")))
}

func TestResolvePlain(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"~", nil},
		{"", nil},
		{"true", true},
		{"123", 123},
		{"0xC", 12},
		{"-0xC", -12},
		{"8083928222794209684", int64(8083928222794209684)},
		{"18446744073709551615", uint64(math.MaxUint64)},
		{"1.5", 1.5},
		{"-.inf", math.Inf(-1)},
		{"1_000", "1_000"},
		{"hello", "hello"},
		{"12:30", "12:30"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePlain([]byte(tt.in)))
		})
	}
}

func TestParseSignedDoesNotAllocate(t *testing.T) {
	b := []byte("-0x7FFFFFFF")
	allocs := testing.AllocsPerRun(100, func() {
		ParseSigned[int64](b)
	})
	assert.Zero(t, allocs)
}
