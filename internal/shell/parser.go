// Copyright (c) 2025 Pebbleshell
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import "strings"

// Tokenize splits line on ASCII whitespace. There is no quoting or escaping;
// commands that need free text declare it in their registry schema.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, isASCIISpace)
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
