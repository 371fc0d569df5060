package tui

import (
	"StackWin/internal/apps"
	"StackWin/internal/strutil"
	"StackWin/pkg/geometry"
	"StackWin/pkg/window"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// controls returns the title-bar buttons for a window.
func controls(maximized bool) string {
	if maximized {
		return glyphClose + glyphMinimize + glyphRestore
	}
	return glyphClose + glyphMinimize + glyphMaximize
}

// titleBar lays out the controls and the title across width cells.
func titleBar(title string, maximized, right bool, width int) string {
	ctrl := controls(maximized)
	room := width - ansi.StringWidth(ctrl) - 2
	title = strutil.Limit(title, room, "…")
	if right {
		pad := room - ansi.StringWidth(title)
		return strutil.Fit(ctrl+" "+strutil.Repeat(" ", pad)+title+" ", width)
	}
	return strutil.Fit(ctrl+" "+title, width)
}

// renderFrame draws a window of width x height cells around body.
func renderFrame(title string, active, maximized bool, body string, width, height int, s Styles) string {
	if width < 2 || height < 3 {
		return ""
	}
	b := s.Border
	border, bar := s.InactiveBorder, s.InactiveTitle
	if active {
		border, bar = s.ActiveBorder, s.ActiveTitle
	}
	inner := width - 2

	lines := make([]string, 0, height)
	lines = append(lines, border.Render(b.TopLeft+strutil.Repeat(b.Top, inner)+b.TopRight))
	lines = append(lines, border.Render(b.Left)+bar.Render(titleBar(title, maximized, s.TitleRight, inner))+border.Render(b.Right))
	for _, l := range fitBlock(body, inner, height-3) {
		lines = append(lines, border.Render(b.Left)+s.Content.Render(l)+border.Render(b.Right))
	}
	lines = append(lines, border.Render(b.BottomLeft+strutil.Repeat(b.Bottom, inner)+b.BottomRight))
	return strings.Join(lines, "\n")
}

// renderShadow draws the drop shadow of frame f onto bg: a column on the
// right and a band along the bottom, sized by the layout.
func renderShadow(bg string, f geometry.Rect, l Layout, s Styles) string {
	colLine := s.Shadow.Render(strutil.Repeat(shadowCell, l.ShadowWidth))
	col := strings.TrimSuffix(strutil.Repeat(colLine+"\n", f.Height), "\n")
	bg = Overlay(col, bg, f.X+f.Width, f.Y+l.ShadowHeight)

	rowLine := s.Shadow.Render(strutil.Repeat(shadowCell, f.Width))
	band := strings.TrimSuffix(strutil.Repeat(rowLine+"\n", l.ShadowHeight), "\n")
	return Overlay(band, bg, f.X+l.ShadowWidth, f.Y+f.Height)
}

// desktopFill returns an empty desktop.
func desktopFill(width, height int, s Styles) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := s.Desktop.Render(strutil.Repeat(" ", width))
	return strings.TrimSuffix(strutil.Repeat(line+"\n", height), "\n")
}

// Render draws the desktop and its windows, bottom of the stack first.
func (d *Desktop) Render(width, height int, s Styles) string {
	out := desktopFill(width, height, s)
	if out == "" {
		return out
	}
	for _, v := range d.mgr.Contents(d.reg.Content) {
		w, ok := d.windows[v.Record.ID]
		if !ok {
			continue
		}
		out = d.renderWindow(out, w, v.Content, s)
	}
	return out
}

func (d *Desktop) renderWindow(bg string, w *window.Window, content any, s Styles) string {
	f := w.Frame()
	body := ""
	if c, ok := content.(apps.Content); ok {
		body = c.View(max(f.Width-2, 0), max(f.Height-3, 0))
	}
	if s.ShadowOn && !w.IsMaximized() {
		bg = renderShadow(bg, f, GetLayout(), s)
	}
	frame := renderFrame(w.Title(), w.IsActive(), w.IsMaximized(), body, f.Width, f.Height, s)
	return Overlay(frame, bg, f.X, f.Y)
}
