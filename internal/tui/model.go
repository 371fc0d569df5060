package tui

import (
	"StackWin/internal/apps"
	"StackWin/internal/config"
	"StackWin/internal/logger"
	"StackWin/pkg/geometry"
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

// clockTickMsg redraws windows that show the time.
type clockTickMsg time.Time

// ConfigChangedMsg carries a reloaded configuration.
type ConfigChangedMsg struct {
	Config config.AppConfig
	Err    error
}

// AppModel is the root Bubble Tea model: launcher bar, desktop, tray,
// helpline and log panel.
type AppModel struct {
	ctx context.Context
	cfg config.AppConfig
	d   *Desktop

	header   *HeaderModel
	tray     *TrayModel
	helpline HelplineModel
	logPanel LogPanelModel
	layout   Layout

	width   int
	height  int
	ready   bool
	ticking bool

	// startup holds ids to open on the first WindowSizeMsg.
	startup []string

	now  func() time.Time
	copy func(string) error
}

// NewAppModel creates the root model for d.
func NewAppModel(ctx context.Context, cfg config.AppConfig, d *Desktop) AppModel {
	header := NewHeaderModel(cfg.UI.LineCharacters)
	return AppModel{
		ctx:      ctx,
		cfg:      cfg,
		d:        d,
		header:   &header,
		tray:     &TrayModel{},
		helpline: NewHelplineModel(Keys.ShortHelp()),
		logPanel: NewLogPanelModel(),
		layout:   GetLayout(),
		now:      time.Now,
		copy:     clipboard.WriteAll,
	}
}

// WithStartupWindows queues ids to open on the first WindowSizeMsg.
func (m AppModel) WithStartupWindows(ids []string) AppModel {
	m.startup = ids
	return m
}

// Init implements tea.Model
func (m AppModel) Init() tea.Cmd {
	return logger.RecoverTUI(m.ctx, m.logPanel.Init())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

// Update implements tea.Model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			// Suppress further panics during recovery
			defer func() { recover() }()

			Shutdown()
			logger.SetConsoleEnabled(true)

			if _, ok := r.(logger.FatalError); ok {
				return
			}
			logger.FatalWithStackSkip(m.ctx, 2, "TUI Update Panic: %v", r)
		}
	}()

	next, cmd := m.update(msg)
	if !next.ticking && next.d.Ticking() {
		next.ticking = true
		cmd = tea.Batch(cmd, tick())
	}
	return next, logger.RecoverTUI(m.ctx, cmd)
}

func (m AppModel) update(msg tea.Msg) (AppModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		if len(m.startup) > 0 {
			OpenWindows(m.ctx, m.d, m.startup)
			m.startup = nil
		}
		return m, nil

	case toggleLogPanelMsg:
		var cmd tea.Cmd
		m.logPanel, cmd = m.logPanel.Update(msg)
		m.resize()
		return m, cmd

	case logLineMsg:
		var cmd tea.Cmd
		m.logPanel, cmd = m.logPanel.Update(msg)
		return m, cmd

	case clockTickMsg:
		if m.d.Ticking() {
			return m, tick()
		}
		m.ticking = false
		return m, nil

	case ConfigChangedMsg:
		if msg.Err != nil {
			logger.Warn(m.ctx, "Configuration reload failed: %v", msg.Err)
			return m, nil
		}
		m.applyConfig(msg.Config)
		logger.Info(m.ctx, "Configuration reloaded")
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return m, nil
		}
		return m.handleClick(msg.X, msg.Y)

	case tea.MouseMotionMsg:
		if m.d.Capturing() {
			m.d.Move(m.toDesktop(msg.X, msg.Y))
		}
		return m, nil

	case tea.MouseReleaseMsg:
		if m.d.Capturing() {
			m.d.Release(m.toDesktop(msg.X, msg.Y))
		}
		return m, nil

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.logPanel, cmd = m.logPanel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyPressMsg) (AppModel, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, Keys.ToggleLog):
		return m, func() tea.Msg { return toggleLogPanelMsg{} }
	case key.Matches(msg, Keys.Next):
		m.d.Cycle(1)
	case key.Matches(msg, Keys.Prev):
		m.d.Cycle(-1)
	case key.Matches(msg, Keys.Close):
		m.d.CloseActive()
	case key.Matches(msg, Keys.Minimize):
		m.d.MinimizeActive()
	case key.Matches(msg, Keys.Maximize):
		m.d.MaximizeActive()
	case key.Matches(msg, Keys.Restore):
		m.d.RestoreLast()
	case key.Matches(msg, Keys.NewInstance):
		id := m.d.OpenInstance()
		logger.Debug(m.ctx, "Opened window %s", id)
	case key.Matches(msg, Keys.Copy):
		if text, ok := m.d.ActiveText(); ok && text != "" {
			if err := m.copy(text); err != nil {
				logger.Warn(m.ctx, "Copy to clipboard failed: %v", err)
			}
		}
	case key.Matches(msg, Keys.Launch):
		s := msg.String()
		m.d.LaunchAt(int(s[len(s)-1] - '1'))
	case m.logPanel.Expanded() && (key.Matches(msg, Keys.LogUp) || key.Matches(msg, Keys.LogDown)):
		var cmd tea.Cmd
		m.logPanel, cmd = m.logPanel.Update(msg)
		return m, cmd
	default:
		m.d.Type(apps.Key{Name: msg.String(), Text: msg.Text})
	}
	return m, nil
}

func (m AppModel) handleClick(x, y int) (AppModel, tea.Cmd) {
	logH := m.logPanel.Height()
	region := m.layout.RegionAt(y, m.height, logH)
	logger.Trace(m.ctx, "Click at %d,%d in region %d", x, y, region)
	switch region {
	case RegionLauncher:
		if id, ok := m.header.ButtonAt(x); ok {
			m.d.Launch(id)
		}
	case RegionDesktop:
		m.d.Press(m.toDesktop(x, y), m.now())
	case RegionTray:
		if id, ok := m.tray.EntryAt(x); ok {
			m.d.RestoreFromTray(id)
		}
	case RegionLog:
		if y == m.layout.LogRow(m.height, logH) {
			return m, func() tea.Msg { return toggleLogPanelMsg{} }
		}
	}
	return m, nil
}

// toDesktop converts screen cells to desktop coordinates.
func (m AppModel) toDesktop(x, y int) geometry.Point {
	return geometry.Point{X: x, Y: y - m.layout.DesktopTop()}
}

// resize propagates the terminal size to every component.
func (m *AppModel) resize() {
	m.logPanel.SetSize(m.width, m.height)
	m.header.SetWidth(m.width)
	m.tray.SetWidth(m.width)
	m.d.SetViewport(geometry.Size{
		Width:  m.width,
		Height: m.layout.DesktopHeight(m.height, m.logPanel.Height()),
	})
}

// applyConfig takes over the settings that can change while running.
func (m *AppModel) applyConfig(cfg config.AppConfig) {
	m.cfg = cfg
	InitStyles(cfg.UI)
	m.header.lineChars = cfg.UI.LineCharacters
	m.d.SetDoubleClick(time.Duration(cfg.UI.DoubleClickMS) * time.Millisecond)
	m.d.Registry().SetLauncher(cfg.Apps)
}

// ViewString renders the whole screen.
func (m AppModel) ViewString() string {
	styles := GetStyles()
	parts := []string{
		m.header.Layout(m.d.Buttons()),
		Separator(m.width),
	}
	if h := m.layout.DesktopHeight(m.height, m.logPanel.Height()); h > 0 {
		parts = append(parts, m.d.Render(m.width, h, styles))
	}
	parts = append(parts,
		m.tray.Layout(m.d.Tray().Entries()),
		m.helpline.View(m.width),
		m.logPanel.View(),
	)
	return strings.Join(parts, "\n")
}

// View implements tea.Model
func (m AppModel) View() tea.View {
	if !m.ready {
		return tea.NewView("Initializing...")
	}
	v := tea.NewView(m.ViewString())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}
