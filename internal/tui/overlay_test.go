package tui

import (
	"strings"
	"testing"
)

func TestOverlay(t *testing.T) {
	bg := "......\n......\n......"

	tests := []struct {
		name     string
		fg       string
		x, y     int
		expected string
	}{
		{"inside", "ab\ncd", 2, 1, "......\n..ab..\n..cd.."},
		{"clipped left", "abc", -1, 0, "bc....\n......\n......"},
		{"clipped right", "abc", 5, 0, ".....a\n......\n......"},
		{"clipped top", "ab\ncd", 0, -1, "cd....\n......\n......"},
		{"clipped bottom", "ab\ncd", 0, 2, "......\n......\nab...."},
		{"outside", "ab", 7, 0, bg},
		{"empty foreground", "", 0, 0, bg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlay(tt.fg, bg, tt.x, tt.y); got != tt.expected {
				t.Errorf("Overlay() =\n%s\nwant\n%s", got, tt.expected)
			}
		})
	}
}

func TestFitBlock(t *testing.T) {
	block := fitBlock("one\ntwo\nthree", 4, 2)
	if strings.Join(block, "|") != "one |two " {
		t.Errorf("fitBlock = %q", block)
	}
}

func TestLayoutRegions(t *testing.T) {
	l := DefaultLayout()
	const total, logH = 30, 1

	if got := l.DesktopHeight(total, logH); got != 25 {
		t.Fatalf("DesktopHeight = %d; want 25", got)
	}

	tests := []struct {
		y        int
		expected Region
	}{
		{0, RegionLauncher},
		{1, RegionSeparator},
		{2, RegionDesktop},
		{26, RegionDesktop},
		{27, RegionTray},
		{28, RegionHelpline},
		{29, RegionLog},
		{30, RegionNone},
		{-1, RegionNone},
	}
	for _, tt := range tests {
		if got := l.RegionAt(tt.y, total, logH); got != tt.expected {
			t.Errorf("RegionAt(%d) = %d; want %d", tt.y, got, tt.expected)
		}
	}
}
