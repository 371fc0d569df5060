package tui

import (
	"StackWin/internal/logger"
	"StackWin/internal/strutil"
	"bufio"
	"os"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// logLineMsg carries a new log line from the subscription channel.
type logLineMsg string

// toggleLogPanelMsg requests the log panel to expand or collapse.
type toggleLogPanelMsg struct{}

const maxLogLines = 500

// LogPanelModel is the slide-up log viewer that lives below the helpline.
// When collapsed it shows only a 1-line toggle strip (^).
// When expanded it occupies a third of the terminal height.
type LogPanelModel struct {
	expanded bool
	viewport viewport.Model
	lines    []string
	width    int
	// totalHeight is the full height of the terminal (used for max constraint)
	totalHeight int
}

// NewLogPanelModel creates a new log panel in collapsed state.
func NewLogPanelModel() LogPanelModel {
	return LogPanelModel{viewport: viewport.New()}
}

// Expanded reports whether the panel is open.
func (m LogPanelModel) Expanded() bool {
	return m.expanded
}

// Height returns the current rendered height of the panel.
func (m LogPanelModel) Height() int {
	if m.expanded && m.totalHeight > 6 {
		return m.totalHeight / 3
	}
	return 1
}

// SetSize stores dimensions so the panel can size itself when expanded.
func (m *LogPanelModel) SetSize(width, totalTermHeight int) {
	m.width = width
	m.totalHeight = totalTermHeight
	m.viewport.SetWidth(width)
	m.viewport.SetHeight(max(m.Height()-1, 1))
}

// Init preloads the log file and starts the live subscription.
func (m LogPanelModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return preloadLogFile() },
		waitForLogLine(),
	)
}

// preloadLogFile reads the tail of the log file so the panel can display
// history immediately.
func preloadLogFile() tea.Msg {
	path := logger.GetLogFilePath()
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var all []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		all = append(all, sc.Text())
	}

	const preload = 200
	if len(all) > preload {
		all = all[len(all)-preload:]
	}
	if len(all) == 0 {
		return nil
	}
	return logLineMsg(strings.Join(all, "\n"))
}

// waitForLogLine blocks until the logger sends a line, then returns it as a message.
func waitForLogLine() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-logger.SubscribeLogLines()
		if !ok {
			return nil
		}
		return logLineMsg(line)
	}
}

// Append adds lines to the panel and scrolls to the newest.
func (m *LogPanelModel) Append(text string) {
	m.lines = append(m.lines, strings.Split(text, "\n")...)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// Lines returns the buffered log lines.
func (m LogPanelModel) Lines() []string {
	return m.lines
}

// Update handles log lines, toggle requests, and scroll events.
func (m LogPanelModel) Update(msg tea.Msg) (LogPanelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logLineMsg:
		m.Append(string(msg))
		return m, waitForLogLine()

	case toggleLogPanelMsg:
		m.expanded = !m.expanded
		m.SetSize(m.width, m.totalHeight)
		// Lines may have arrived while the panel had no height.
		m.viewport.GotoBottom()
		return m, nil

	case tea.MouseWheelMsg:
		if m.expanded {
			switch msg.Button {
			case tea.MouseWheelUp:
				m.viewport.ScrollUp(3)
			case tea.MouseWheelDown:
				m.viewport.ScrollDown(3)
			}
		}
		return m, nil

	case tea.KeyPressMsg:
		if m.expanded {
			switch {
			case key.Matches(msg, Keys.LogUp):
				m.viewport.HalfPageUp()
			case key.Matches(msg, Keys.LogDown):
				m.viewport.HalfPageDown()
			}
		}
		return m, nil
	}
	return m, nil
}

// View renders the toggle strip and, when expanded, the log lines below it.
func (m LogPanelModel) View() string {
	styles := GetStyles()

	marker := "^"
	if m.expanded {
		marker = "v"
	}
	label := " " + marker + " Log " + marker + " "

	labelW := ansi.StringWidth(label)
	dashW := max((m.width-labelW)/2, 0)
	rightW := max(m.width-dashW-labelW, 0)
	strip := styles.LogStrip.Render(strutil.Repeat(styles.SepChar, dashW) + label + strutil.Repeat(styles.SepChar, rightW))
	if !m.expanded {
		return strip
	}

	body := make([]string, 0, m.viewport.Height())
	for _, line := range strings.Split(m.viewport.View(), "\n") {
		body = append(body, styles.LogConsole.Render(strutil.Fit(line, m.width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, strip, strings.Join(body, "\n"))
}
