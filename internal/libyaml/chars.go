// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The yamlpull Authors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Byte classification used by the scanner.
// A zero byte stands for the end of input.

package libyaml

// isAlpha reports [0-9A-Za-z_-].
func isAlpha(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b == '_' || b == '-'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func asDigit(b byte) int {
	return int(b) - '0'
}

func isHex(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'A' && b <= 'F' || b >= 'a' && b <= 'f'
}

func asHex(b byte) int {
	switch {
	case b >= 'A' && b <= 'F':
		return int(b) - 'A' + 10
	case b >= 'a' && b <= 'f':
		return int(b) - 'a' + 10
	}
	return int(b) - '0'
}

func isSpace(b byte) bool { return b == ' ' }

func isTab(b byte) bool { return b == '\t' }

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

// isBreak reports a line break. Only LF and CR break lines.
func isBreak(b byte) bool { return b == '\r' || b == '\n' }

func isZ(b byte) bool { return b == 0 }

func isBreakOrZero(b byte) bool { return isBreak(b) || b == 0 }

func isBlankOrZero(b byte) bool { return isBlank(b) || isBreakOrZero(b) }

func isFlowIndicator(b byte) bool {
	return b == '[' || b == ']' || b == '{' || b == '}' || b == ','
}

// isAnchorChar reports a byte allowed in an anchor or alias name: any
// non-blank character except the flow indicators.
func isAnchorChar(b byte) bool {
	return !isBlankOrZero(b) && !isFlowIndicator(b)
}

// isURIChar reports a byte allowed in a tag URI (besides '%' escapes).
func isURIChar(b byte) bool {
	if isAlpha(b) {
		return true
	}
	switch b {
	case ';', '/', '?', ':', '@', '&', '=', '+', '$', ',', '.', '!', '~', '*', '\'', '(', ')', '[', ']':
		return true
	}
	return false
}

// isPrintable reports whether the byte may start a printable character.
// Control characters other than tab and line breaks are rejected.
func isPrintable(b byte) bool {
	return b == 0x09 || b == 0x0A || b == 0x0D || (b >= 0x20 && b != 0x7F)
}

// width returns the length in bytes of the UTF-8 sequence starting with b.
func width(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	}
	return 0
}
