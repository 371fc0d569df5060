package tui

const (
	// Title-bar controls, three cells each.
	glyphClose    = "[x]"
	glyphMinimize = "[-]"
	glyphMaximize = "[+]"
	glyphRestore  = "[=]"

	// trayDot (●) - Black Circle (U+25CF) marks a minimized launcher app
	trayDot = "●"
	// trayDotASCII is used without line characters
	trayDotASCII = "*"

	// shadowCell (░) - Light Shade (U+2591)
	shadowCell = "░"

	controlWidth = 3
)
