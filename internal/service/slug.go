package service

import (
	"regexp"
	"strings"
)

var (
	slugStrip  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe identifier from a title: lowercase, trimmed,
// punctuation stripped, whitespace collapsed to hyphens. The transform is
// idempotent, so re-slugifying a slug is a no-op.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return s
}
