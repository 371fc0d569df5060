// Package strutil provides additional string manipulation functions for
// text that may carry ANSI styling.
package strutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Repeat returns a string consisting of count copies of s.
// Unlike strings.Repeat, it returns an empty string if count is negative.
func Repeat(s string, count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(s, count)
}

// Limit truncates s to width cells, ignoring ANSI codes when measuring.
// Truncated text ends in tail, which counts towards width.
func Limit(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, tail)
}

// Fit pads or cuts s to exactly width cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "")
	case w < width:
		return s + Repeat(" ", width-w)
	}
	return s
}
