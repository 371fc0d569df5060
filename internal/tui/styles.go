package tui

import (
	"StackWin/internal/config"

	"charm.land/lipgloss/v2"
)

// Styles holds all lipgloss styles derived from the UI settings
type Styles struct {
	// Desktop
	Desktop lipgloss.Style

	// Window chrome
	Border         lipgloss.Border
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
	ActiveTitle    lipgloss.Style
	InactiveTitle  lipgloss.Style
	Content        lipgloss.Style
	TitleRight     bool

	// Shadow
	Shadow   lipgloss.Style
	ShadowOn bool

	// Launcher bar
	LauncherBar      lipgloss.Style
	LauncherClosed   lipgloss.Style
	LauncherActive   lipgloss.Style
	LauncherInactive lipgloss.Style

	// Tray strip
	Tray      lipgloss.Style
	TrayEntry lipgloss.Style

	// Help line
	HelpLine lipgloss.Style

	// Log panel
	LogStrip   lipgloss.Style
	LogConsole lipgloss.Style

	// Separator
	SepChar string
}

// currentStyles holds the active styles
var currentStyles = buildStyles(config.Default().UI)

// GetStyles returns the current styles
func GetStyles() Styles {
	return currentStyles
}

// InitStyles rebuilds the styles from the UI settings
func InitStyles(ui config.UIConfig) {
	currentStyles = buildStyles(ui)
}

func buildStyles(ui config.UIConfig) Styles {
	var s Styles

	// Border style based on LineCharacters setting
	if ui.LineCharacters {
		s.Border = lipgloss.RoundedBorder()
		s.SepChar = "─"
	} else {
		s.Border = lipgloss.ASCIIBorder()
		s.SepChar = "-"
	}
	s.TitleRight = ui.TitlePosition == "right"

	desktop := lipgloss.Color(ui.DesktopColor)
	s.Desktop = lipgloss.NewStyle().Background(desktop)

	activeTitle := lipgloss.Color(ui.ActiveTitleColor)
	inactiveTitle := lipgloss.Color(ui.InactiveTitleColor)

	s.ActiveBorder = lipgloss.NewStyle().Foreground(activeTitle)
	s.InactiveBorder = lipgloss.NewStyle().Foreground(inactiveTitle)
	s.ActiveTitle = lipgloss.NewStyle().
		Background(activeTitle).
		Foreground(lipgloss.Color(ui.ActiveTitleTextColor)).
		Bold(true)
	s.InactiveTitle = lipgloss.NewStyle().
		Background(inactiveTitle).
		Foreground(lipgloss.Color(ui.InactiveTitleTextColor))
	s.Content = lipgloss.NewStyle()

	s.ShadowOn = ui.Shadow
	s.Shadow = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(desktop)

	s.LauncherBar = lipgloss.NewStyle().Background(desktop)
	s.LauncherClosed = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.LauncherClosedColor))
	s.LauncherActive = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.LauncherActiveColor)).Bold(true)
	s.LauncherInactive = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.LauncherInactiveColor))

	s.Tray = lipgloss.NewStyle().Background(desktop).Foreground(inactiveTitle)
	s.TrayEntry = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.LauncherClosedColor))

	s.HelpLine = lipgloss.NewStyle().Foreground(inactiveTitle)

	s.LogStrip = lipgloss.NewStyle().Foreground(inactiveTitle)
	s.LogConsole = lipgloss.NewStyle()

	return s
}
