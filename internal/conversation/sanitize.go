package conversation

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ContainsTraversal reports whether a title looks like a path-traversal or
// absolute-path attempt. Such titles are rejected outright rather than
// sanitized, so the attempt can be logged.
func ContainsTraversal(title string) bool {
	if filepath.IsAbs(title) || strings.HasPrefix(title, "/") || strings.HasPrefix(title, "\\") {
		return true
	}
	for _, sep := range []string{"/", "\\"} {
		for _, part := range strings.Split(title, sep) {
			if part == ".." {
				return true
			}
		}
	}
	return false
}

// SanitizeTitle sanitizes a title for safe use in a filename.
// Removes/replaces characters that could corrupt file names, then truncates
// to maxChars runes. Returns "" if nothing printable survives.
func SanitizeTitle(s string, maxChars int) string {
	// Replace path separators with dashes
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")

	// Replace ".." sequences (could be embedded)
	s = strings.ReplaceAll(s, "..", "-")

	// Remove null bytes and other control characters
	var result strings.Builder
	for _, r := range s {
		if r >= 32 && r != 127 {
			result.WriteRune(r)
		}
	}
	s = strings.TrimSpace(result.String())

	if maxChars > 0 && utf8.RuneCountInString(s) > maxChars {
		runes := []rune(s)
		s = strings.TrimSpace(string(runes[:maxChars]))
	}
	return s
}

// Slugify converts a title into a lowercase filename fragment: alphanumerics
// kept, everything else collapsed to single dashes.
func Slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	prevDash := true // suppress leading dash
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// StripControl removes control characters from free text, preserving
// newlines, carriage returns, and tabs. Applied to content before storage so
// stored text cannot inject fake log lines or corrupt rendered output.
func StripControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DeriveTitle produces a default title from content: the first non-empty
// line, stripped of leading markdown header markers, truncated to 60 runes.
func DeriveTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > 60 {
			runes := []rune(line)
			line = strings.TrimSpace(string(runes[:60]))
		}
		return line
	}
	return "Untitled conversation"
}
