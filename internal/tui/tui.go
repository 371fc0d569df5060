package tui

import (
	"StackWin/internal/apps"
	"StackWin/internal/config"
	"StackWin/internal/logger"
	"StackWin/internal/version"
	"StackWin/pkg/wm"
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
)

// program holds the running Bubble Tea program
var program *tea.Program

// Options configure a TUI session.
type Options struct {
	Config config.AppConfig
	// Open lists window ids to open once the terminal size is known.
	Open []string
}

// NewRegistry builds the content apps for cfg.
func NewRegistry(cfg config.AppConfig) *apps.Registry {
	return apps.NewRegistry(cfg.Apps, apps.AboutInfo{
		Version:   version.String(),
		Namespace: cfg.Store.Namespace,
		StoreDir:  cfg.StoreDir,
		Codec:     cfg.Store.Codec,
	})
}

// OpenWindows opens ids on d, using launcher titles where known.
func OpenWindows(ctx context.Context, d *Desktop, ids []string) {
	for _, id := range ids {
		if !apps.IsIDValid(id) {
			logger.Warn(ctx, "Skipping invalid window id %q", id)
			continue
		}
		if !d.Launch(id) {
			d.Manager().Open(id, d.Registry().Title(id))
		}
	}
}

// Start runs the desktop over mgr until the user quits.
func Start(ctx context.Context, mgr *wm.Manager, opts Options) error {
	logger.Info(ctx, "TUI Starting...")

	InitStyles(opts.Config.UI)

	d := NewDesktop(mgr, NewRegistry(opts.Config))
	defer d.Close()
	d.SetDoubleClick(time.Duration(opts.Config.UI.DoubleClickMS) * time.Millisecond)

	model := NewAppModel(ctx, opts.Config, d).WithStartupWindows(opts.Open)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	program = p
	logger.TUIShutdown = Shutdown
	logger.SetConsoleEnabled(false)
	defer func() {
		logger.SetConsoleEnabled(true)
		logger.TUIShutdown = nil
		program = nil
	}()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := config.Watch(watchCtx, func(conf config.AppConfig, err error) {
		p.Send(ConfigChangedMsg{Config: conf, Err: err})
	}); err != nil {
		logger.Warn(ctx, "Configuration changes will not be picked up: %v", err)
	}

	_, err := p.Run()
	// Reset terminal colors on exit to prevent "bleeding" into the shell prompt
	fmt.Print("\x1b[0m")
	return err
}

// Shutdown stops the running program and restores the terminal.
func Shutdown() {
	if program != nil {
		program.Kill()
	}
}
