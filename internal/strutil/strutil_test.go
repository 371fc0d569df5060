package strutil

import "testing"

func TestRepeat(t *testing.T) {
	tests := []struct {
		s        string
		count    int
		expected string
	}{
		{"ab", 2, "abab"},
		{"x", 0, ""},
		{"x", -3, ""},
	}
	for _, tt := range tests {
		if got := Repeat(tt.s, tt.count); got != tt.expected {
			t.Errorf("Repeat(%q, %d) = %q; want %q", tt.s, tt.count, got, tt.expected)
		}
	}
}

func TestLimit(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		tail     string
		expected string
	}{
		{"Notes", 10, "…", "Notes"},
		{"Notes pad", 5, "…", "Note…"},
		{"Notes", 3, "", "Not"},
		{"\x1b[1mBold\x1b[0m", 4, "", "\x1b[1mBold\x1b[0m"},
		{"Notes", 0, "…", ""},
	}
	for _, tt := range tests {
		if got := Limit(tt.in, tt.width, tt.tail); got != tt.expected {
			t.Errorf("Limit(%q, %d) = %q; want %q", tt.in, tt.width, got, tt.expected)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 3, "abc"},
		{"abc", 3, "abc"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := Fit(tt.in, tt.width); got != tt.expected {
			t.Errorf("Fit(%q, %d) = %q; want %q", tt.in, tt.width, got, tt.expected)
		}
	}
}
