// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRun matches one or more consecutive whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// nonSlugChars matches anything that isn't a word character or hyphen.
	nonSlugChars = regexp.MustCompile(`[^\w-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Make creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// An all-punctuation input yields an empty slug; callers are expected to
// handle that case themselves.
func Make(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = nonSlugChars.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
