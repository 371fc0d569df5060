package tui

import (
	"StackWin/internal/strutil"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay composites a foreground string over a background string with its
// top-left corner at (x, y). Parts of the foreground outside the background
// are clipped, so x and y may be negative.
func Overlay(foreground, background string, x, y int) string {
	if foreground == "" {
		return background
	}
	if background == "" {
		return foreground
	}

	bgLines := strings.Split(background, "\n")
	fgLines := strings.Split(foreground, "\n")

	bgWidth := 0
	for _, line := range bgLines {
		bgWidth = max(bgWidth, ansi.StringWidth(line))
	}

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}

		startX := x
		if startX < 0 {
			fgLine = ansi.TruncateLeft(fgLine, -startX, "")
			startX = 0
		}
		if startX >= bgWidth {
			continue
		}
		if room := bgWidth - startX; ansi.StringWidth(fgLine) > room {
			fgLine = ansi.Truncate(fgLine, room, "")
		}
		fgWidth := ansi.StringWidth(fgLine)
		if fgWidth == 0 {
			continue
		}

		bgLine := bgLines[row]
		bgLineWidth := ansi.StringWidth(bgLine)

		// Ensure background line is wide enough
		if bgLineWidth < startX {
			bgLine += strutil.Repeat(" ", startX-bgLineWidth)
			bgLineWidth = startX
		}

		var b strings.Builder
		b.WriteString(ansi.Truncate(bgLine, startX, ""))
		b.WriteString(fgLine)
		if end := startX + fgWidth; end < bgLineWidth {
			b.WriteString(ansi.TruncateLeft(bgLine, end, ""))
		}
		bgLines[row] = b.String()
	}

	return strings.Join(bgLines, "\n")
}

// fitBlock makes s exactly width x height cells.
func fitBlock(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range height {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = strutil.Fit(line, width)
	}
	return out
}
