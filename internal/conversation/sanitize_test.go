package conversation

import (
	"strings"
	"testing"
)

func TestContainsTraversal(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{"clean title", "weekly planning notes", false},
		{"dotdot slash", "../../etc/passwd", true},
		{"dotdot backslash", "..\\..\\windows", true},
		{"embedded dotdot component", "notes/../secret", true},
		{"absolute path", "/etc/passwd", true},
		{"leading backslash", "\\share\\file", true},
		{"version range is not traversal", "v1..2 migration", false},
		{"ellipsis is not traversal", "wait... what", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsTraversal(tt.title); got != tt.want {
				t.Errorf("ContainsTraversal(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"plain", "Planning session", 100, "Planning session"},
		{"path separators", "a/b\\c", 100, "a-b-c"},
		{"embedded dotdot", "v1..2 notes", 100, "v1-2 notes"},
		{"control chars stripped", "line\x00one\x07", 100, "lineone"},
		{"truncated", strings.Repeat("a", 150), 100, strings.Repeat("a", 100)},
		{"only control chars", "\x00\x01\x02", 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.input, tt.max); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Planning Session", "planning-session"},
		{"  spaced   out  ", "spaced-out"},
		{"symbols!@#here", "symbols-here"},
		{"", ""},
		{"---", ""},
		{"CamelCase123", "camelcase123"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStripControl(t *testing.T) {
	in := "line one\nline two\ttabbed\r\nbad:\x00\x07\x1b[31m"
	got := StripControl(in)
	if strings.ContainsAny(got, "\x00\x07\x1b") {
		t.Errorf("StripControl left control characters in %q", got)
	}
	if !strings.Contains(got, "line one\nline two\ttabbed\r\n") {
		t.Errorf("StripControl removed whitespace it should keep: %q", got)
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"first line", "Fixing the login bug\nmore text", "Fixing the login bug"},
		{"skips blank lines", "\n\n  \nActual title here", "Actual title here"},
		{"strips markdown header", "## Session notes\nbody", "Session notes"},
		{"empty content", "   \n\n ", "Untitled conversation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(tt.content); got != tt.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestDeriveTitleTruncates(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := DeriveTitle(long)
	if len([]rune(got)) > 60 {
		t.Errorf("DeriveTitle returned %d runes, want <= 60", len([]rune(got)))
	}
}
