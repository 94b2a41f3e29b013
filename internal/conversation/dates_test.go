package conversation

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"rfc3339", "2026-03-05T14:30:00Z"},
		{"rfc3339 with offset", "2026-03-05T14:30:00+02:00"},
		{"datetime no zone", "2026-03-05T14:30:00"},
		{"datetime with space", "2026-03-05 14:30:00"},
		{"date only", "2026-03-05"},
		{"surrounding whitespace", "  2026-03-05  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.input, err)
			}
			if got.Year() != 2026 || got.Month() != time.March || got.Day() != 5 {
				t.Errorf("ParseDate(%q) = %v, want 2026-03-05", tt.input, got)
			}
		})
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not a date", "05/03/2026", "March 5th"} {
		if _, err := ParseDate(input); err == nil {
			t.Errorf("ParseDate(%q) should fail", input)
		}
	}
}

func TestParseDateLocalZone(t *testing.T) {
	got, err := ParseDate("2026-03-05")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if got.Location() != time.Local {
		t.Errorf("zoneless date parsed in %v, want local", got.Location())
	}
}
