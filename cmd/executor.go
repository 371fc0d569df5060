package cmd

import (
	"StackWin/internal/config"
	"StackWin/internal/constants"
	"StackWin/internal/logger"
	"StackWin/internal/tui"
	"StackWin/internal/version"
	"StackWin/pkg/kv"
	"StackWin/pkg/wm"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/docker/go-units"
	"github.com/k0kubun/pp/v3"
)

// out is where one-shot actions print. Tests point it at a buffer.
var out io.Writer = os.Stdout

// Execute runs the parsed command line and returns the exit code.
func Execute(ctx context.Context, opts Options) int {
	if opts.Help {
		PrintHelp("")
		return 0
	}
	if opts.Version {
		fmt.Fprintln(out, version.String())
		return 0
	}
	switch {
	case opts.Debug:
		logger.SetLevel(logger.LevelDebug)
	case opts.Verbose:
		logger.SetLevel(logger.LevelInfo)
	}

	conf, err := loadConfig(ctx, opts)
	if err != nil {
		logger.Error(ctx, "Invalid configuration: %v", err)
		return 1
	}

	store, err := openStore(conf)
	if err != nil {
		logger.Error(ctx, "Failed to open the window store: %v", err)
		return 1
	}
	codec, err := wm.CodecByName(conf.Store.Codec)
	if err != nil {
		logger.Error(ctx, "Invalid codec: %v", err)
		return 1
	}
	mgr := wm.New(store, wm.Config{
		Namespace: conf.Store.Namespace,
		DataKey:   conf.Store.DataKey,
		Codec:     codec,
		Limits:    conf.Geometry.Limits(),
	})

	switch {
	case opts.Reset:
		mgr.Reset()
		logger.Notice(ctx, "Forgot all windows in namespace '%s'.", conf.Store.Namespace)
		return 0
	case opts.List:
		listWindows(out, mgr, store, conf)
		return 0
	case opts.Dump:
		dumpState(out, mgr)
		return 0
	}

	if err := tui.Start(ctx, mgr, tui.Options{Config: conf, Open: opts.Open}); err != nil {
		logger.Error(ctx, "TUI error: %v", err)
		return 1
	}
	return 0
}

// loadConfig reads the configuration and applies the command line on top.
// A file that does not parse falls back to the defaults with a warning.
func loadConfig(ctx context.Context, opts Options) (config.AppConfig, error) {
	if opts.Config != "" {
		os.Setenv(constants.EnvConfigFile, opts.Config)
	}
	conf, err := config.LoadAppConfig()
	if err != nil {
		logger.Warn(ctx, "Using default settings: %v", err)
	}
	if opts.Namespace != "" {
		conf.Store.Namespace = opts.Namespace
	}
	if opts.Store != "" {
		conf.Store.Backend = opts.Store
	}
	if opts.Codec != "" {
		conf.Store.Codec = opts.Codec
	}
	return conf, conf.Validate()
}

func openStore(conf config.AppConfig) (kv.Store, error) {
	if conf.Store.Backend == constants.StoreBackendMem {
		return kv.NewMemory(), nil
	}
	return kv.NewFile(conf.StoreDir)
}

// sizer is implemented by stores that can report how much they hold.
type sizer interface {
	Size(key string) (int64, error)
}

func storedSize(store kv.Store, key string) string {
	s, ok := store.(sizer)
	if !ok {
		return "-"
	}
	n, err := s.Size(key)
	if err != nil {
		return "-"
	}
	return units.HumanSize(float64(n))
}

func listWindows(w io.Writer, mgr *wm.Manager, store kv.Store, conf config.AppConfig) {
	records := mgr.Records()
	dataKey := conf.Store.DataKey
	if dataKey == "" {
		dataKey = conf.Store.Namespace + ".data"
	}
	fmt.Fprintf(w, "Namespace %s (%s, %s; data %s)\n",
		conf.Store.Namespace,
		storedSize(store, conf.Store.Namespace),
		conf.Store.Codec,
		storedSize(store, dataKey),
	)
	if f, ok := store.(*kv.File); ok {
		fmt.Fprintf(w, "Directory %s\n", f.Dir())
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No stored windows.")
		return
	}

	idWidth, titleWidth := len("ID"), len("TITLE")
	for _, r := range records {
		idWidth = max(idWidth, len(r.ID))
		titleWidth = max(titleWidth, len(r.Title))
	}
	row := fmt.Sprintf("%%-%ds  %%-%ds  %%-10s  %%6s  %%s\n", idWidth, titleWidth)
	fmt.Fprintf(w, row, "ID", "TITLE", "STATE", "Z", "FRAME")
	for _, r := range records {
		fmt.Fprintf(w, row, r.ID, r.Title, windowState(r), fmt.Sprint(r.ZIndex),
			fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y))
	}
}

func windowState(r wm.Record) string {
	var states []string
	switch {
	case r.IsMinimized:
		states = append(states, "minimized")
	case r.Active:
		states = append(states, "active")
	}
	if r.IsMaximized {
		states = append(states, "max")
	}
	if len(states) == 0 {
		return "normal"
	}
	return strings.Join(states, ",")
}

func dumpState(w io.Writer, mgr *wm.Manager) {
	records := mgr.Records()
	data := make(map[string]any, len(records))
	for _, r := range records {
		if v := mgr.AppData(r.ID); v != nil {
			data[r.ID] = v
		}
	}
	printer := pp.New()
	printer.SetColoringEnabled(false)
	printer.SetOutput(w)
	printer.Println(records)
	printer.Println(data)
}
