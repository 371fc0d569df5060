package tui

import (
	"StackWin/internal/strutil"
	"StackWin/internal/version"
	"StackWin/pkg/launcher"
	"StackWin/pkg/tray"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// barItem is a clickable span of a one-line bar.
type barItem struct {
	ID    string
	X     int
	Width int
}

// itemAt returns the item under column x.
func itemAt(items []barItem, x int) (string, bool) {
	for _, it := range items {
		if x >= it.X && x < it.X+it.Width {
			return it.ID, true
		}
	}
	return "", false
}

// HeaderModel is the launcher bar at the top of the TUI.
type HeaderModel struct {
	width     int
	lineChars bool
	items     []barItem
}

// NewHeaderModel creates a new header model
func NewHeaderModel(lineChars bool) HeaderModel {
	return HeaderModel{lineChars: lineChars}
}

// SetWidth sets the header width
func (m *HeaderModel) SetWidth(width int) {
	m.width = width
}

// buttonText returns the label of b with its status marker.
func (m HeaderModel) buttonText(b launcher.Button) string {
	text := "[" + b.Text()
	if b.Status.Indicator().Dot {
		if m.lineChars {
			text += " " + trayDot
		} else {
			text += " " + trayDotASCII
		}
	}
	return text + "]"
}

func buttonStyle(s Styles, st launcher.Status) lipgloss.Style {
	switch st.Indicator().Border {
	case "active":
		return s.LauncherActive
	case "inactive":
		return s.LauncherInactive
	default:
		return s.LauncherClosed
	}
}

// Layout computes the button positions and returns the rendered bar.
func (m *HeaderModel) Layout(buttons []launcher.Button) string {
	styles := GetStyles()
	m.items = m.items[:0]

	var b strings.Builder
	x := 1
	b.WriteString(" ")
	for _, btn := range buttons {
		text := m.buttonText(btn)
		w := ansi.StringWidth(text)
		if x+w > m.width {
			break
		}
		m.items = append(m.items, barItem{ID: btn.ID, X: x, Width: w})
		b.WriteString(buttonStyle(styles, btn.Status).Render(text))
		b.WriteString(" ")
		x += w + 1
	}

	name := version.ApplicationName + " " + version.Version + " "
	if pad := m.width - x - ansi.StringWidth(name); pad > 0 {
		b.WriteString(strutil.Repeat(" ", pad))
		b.WriteString(name)
	}
	return styles.LauncherBar.Render(strutil.Fit(b.String(), m.width))
}

// ButtonAt returns the launcher id under column x.
func (m HeaderModel) ButtonAt(x int) (string, bool) {
	return itemAt(m.items, x)
}

// Separator renders the line under the launcher bar.
func Separator(width int) string {
	styles := GetStyles()
	return styles.LauncherInactive.Render(strutil.Repeat(styles.SepChar, width))
}

// TrayModel is the strip listing minimized windows.
type TrayModel struct {
	width int
	items []barItem
}

// SetWidth sets the strip width
func (m *TrayModel) SetWidth(width int) {
	m.width = width
}

// Layout computes the entry positions and returns the rendered strip.
func (m *TrayModel) Layout(entries []tray.Entry) string {
	styles := GetStyles()
	m.items = m.items[:0]

	if len(entries) == 0 {
		return styles.Tray.Render(strutil.Fit(" No minimized windows", m.width))
	}

	var b strings.Builder
	label := " Minimized: "
	b.WriteString(label)
	x := ansi.StringWidth(label)
	for _, e := range entries {
		text := "[" + e.Title + "]"
		w := ansi.StringWidth(text)
		if x+w > m.width {
			break
		}
		m.items = append(m.items, barItem{ID: e.ID, X: x, Width: w})
		b.WriteString(styles.TrayEntry.Render(text))
		b.WriteString(" ")
		x += w + 1
	}
	return styles.Tray.Render(strutil.Fit(b.String(), m.width))
}

// EntryAt returns the window id under column x.
func (m TrayModel) EntryAt(x int) (string, bool) {
	return itemAt(m.items, x)
}
