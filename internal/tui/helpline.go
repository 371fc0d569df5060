package tui

import (
	"StackWin/internal/strutil"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
)

// HelplineModel represents the help line at the bottom of the TUI
type HelplineModel struct {
	text string
}

// NewHelplineModel creates a helpline listing bindings.
func NewHelplineModel(bindings []key.Binding) HelplineModel {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return HelplineModel{text: strings.Join(parts, " • ")}
}

// SetText updates the help text
func (m *HelplineModel) SetText(text string) {
	m.text = text
}

// Text returns the help text
func (m HelplineModel) Text() string {
	return m.text
}

// View renders the helpline
func (m HelplineModel) View(width int) string {
	styles := GetStyles()

	// Center the help text
	helpStyle := styles.HelpLine.Width(width).MaxWidth(width).Align(lipgloss.Center)
	return helpStyle.Render(strutil.Fit(m.text, min(width, lipgloss.Width(m.text))))
}
