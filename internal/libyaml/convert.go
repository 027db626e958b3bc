// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0

// Scalar text to Go value conversion, following the YAML 1.2 core schema.
// ParseSigned and ParseUnsigned work on the raw bytes and never allocate;
// ParseFloat hands a copy of the text to strconv.

package libyaml

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// IsNullValue reports whether b spells null in the core schema.
func IsNullValue(b []byte) bool {
	switch string(b) {
	case "", "~", "null", "Null", "NULL":
		return true
	}
	return false
}

// ParseBool parses the core schema booleans.
func ParseBool(b []byte) (value, ok bool) {
	switch string(b) {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

// parseMagnitude parses an unsigned integer with an optional 0x, 0o or 0b
// prefix.
func parseMagnitude(b []byte) (uint64, bool) {
	base := uint64(10)
	if len(b) > 2 && b[0] == '0' {
		switch b[1] {
		case 'x', 'X':
			base, b = 16, b[2:]
		case 'o', 'O':
			base, b = 8, b[2:]
		case 'b', 'B':
			base, b = 2, b[2:]
		}
	}
	if len(b) == 0 {
		return 0, false
	}

	var v uint64
	for _, c := range b {
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, false
		}
		if d >= base {
			return 0, false
		}
		if v > (math.MaxUint64-d)/base {
			return 0, false
		}
		v = v*base + d
	}
	return v, true
}

// ParseSigned parses b as a signed integer that must fit in T.
func ParseSigned[T constraints.Signed](b []byte) (T, bool) {
	neg := false
	if len(b) > 0 && (b[0] == '-' || b[0] == '+') {
		neg = b[0] == '-'
		b = b[1:]
	}
	mag, ok := parseMagnitude(b)
	if !ok {
		return 0, false
	}

	var v int64
	if neg {
		if mag > 1<<63 {
			return 0, false
		}
		v = -int64(mag)
	} else {
		if mag > math.MaxInt64 {
			return 0, false
		}
		v = int64(mag)
	}

	t := T(v)
	if int64(t) != v {
		return 0, false
	}
	return t, true
}

// ParseUnsigned parses b as an unsigned integer that must fit in T.
func ParseUnsigned[T constraints.Unsigned](b []byte) (T, bool) {
	if len(b) > 0 && b[0] == '+' {
		b = b[1:]
	}
	mag, ok := parseMagnitude(b)
	if !ok {
		return 0, false
	}
	t := T(mag)
	if uint64(t) != mag {
		return 0, false
	}
	return t, true
}

// isFloatSyntax matches [-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?
func isFloatSyntax(b []byte) bool {
	i := 0
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		i++
	}
	intDigits := 0
	for i < len(b) && isDigit(b[i]) {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(b) && b[i] == '.' {
		i++
		for i < len(b) && isDigit(b[i]) {
			i++
			fracDigits++
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return false
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < len(b) && (b[i] == '-' || b[i] == '+') {
			i++
		}
		expDigits := 0
		for i < len(b) && isDigit(b[i]) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(b)
}

// ParseFloat parses the core schema floats, including .inf and .nan, at the
// given precision (32 or 64). Text other than the special values is copied
// to a string for strconv.ParseFloat and may allocate.
func ParseFloat(b []byte, bitSize int) (float64, bool) {
	switch string(b) {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), true
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), true
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), true
	}
	if !isFloatSyntax(b) {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(b), bitSize)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ResolvePlain converts plain scalar text to the first matching type in
// the order null, bool, int, int64, uint64, float64. Anything else stays
// a string. Integers that fit in 32 bits become int.
func ResolvePlain(b []byte) any {
	if IsNullValue(b) {
		return nil
	}
	if v, ok := ParseBool(b); ok {
		return v
	}
	if v, ok := ParseSigned[int32](b); ok {
		return int(v)
	}
	if v, ok := ParseSigned[int64](b); ok {
		return v
	}
	if v, ok := ParseUnsigned[uint64](b); ok {
		return v
	}
	if v, ok := ParseFloat(b, 64); ok {
		return v
	}
	return string(b)
}
