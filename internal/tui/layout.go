package tui

// Region is a horizontal band of the screen.
type Region int

const (
	RegionNone Region = iota
	RegionLauncher
	RegionSeparator
	RegionDesktop
	RegionTray
	RegionHelpline
	RegionLog
)

// Layout contains all the constants and calculations for TUI positioning.
// This is the single source of truth - no magic numbers elsewhere.
//
// Top to bottom: launcher bar, separator, desktop, tray strip, helpline and
// the log panel. The desktop takes whatever height is left.
type Layout struct {
	LauncherHeight  int // 1 line
	SeparatorHeight int // 1 line
	TrayHeight      int // 1 line
	HelplineHeight  int // 1 line

	// Shadow (when enabled)
	ShadowWidth  int // 1 char to the right
	ShadowHeight int // 1 line at the bottom
}

// DefaultLayout returns the standard layout configuration
func DefaultLayout() Layout {
	return Layout{
		LauncherHeight:  1,
		SeparatorHeight: 1,
		TrayHeight:      1,
		HelplineHeight:  1,
		ShadowWidth:     1,
		ShadowHeight:    1,
	}
}

// GetLayout returns the current layout configuration
func GetLayout() Layout {
	return DefaultLayout()
}

// -------------------------------------------------------------------
// Computed properties
// -------------------------------------------------------------------

// DesktopTop returns the first screen row of the desktop.
func (l Layout) DesktopTop() int {
	return l.LauncherHeight + l.SeparatorHeight
}

// DesktopHeight returns the rows left for windows.
func (l Layout) DesktopHeight(total, logHeight int) int {
	return max(total-l.DesktopTop()-l.TrayHeight-l.HelplineHeight-logHeight, 0)
}

// TrayRow returns the screen row of the tray strip.
func (l Layout) TrayRow(total, logHeight int) int {
	return l.DesktopTop() + l.DesktopHeight(total, logHeight)
}

// HelplineRow returns the screen row of the helpline.
func (l Layout) HelplineRow(total, logHeight int) int {
	return l.TrayRow(total, logHeight) + l.TrayHeight
}

// LogRow returns the first screen row of the log panel.
func (l Layout) LogRow(total, logHeight int) int {
	return l.HelplineRow(total, logHeight) + l.HelplineHeight
}

// RegionAt returns the band that screen row y falls in.
func (l Layout) RegionAt(y, total, logHeight int) Region {
	switch {
	case y < 0 || y >= total:
		return RegionNone
	case y < l.LauncherHeight:
		return RegionLauncher
	case y < l.DesktopTop():
		return RegionSeparator
	case y < l.TrayRow(total, logHeight):
		return RegionDesktop
	case y < l.HelplineRow(total, logHeight):
		return RegionTray
	case y < l.LogRow(total, logHeight):
		return RegionHelpline
	default:
		return RegionLog
	}
}
