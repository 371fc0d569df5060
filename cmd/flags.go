package cmd

import (
	"StackWin/internal/version"
	"io"

	"github.com/spf13/pflag"
)

// Options holds the parsed command line.
type Options struct {
	Config    string
	Namespace string
	Store     string
	Codec     string
	Open      []string

	List    bool
	Dump    bool
	Reset   bool
	Debug   bool
	Verbose bool
	Version bool
	Help    bool
}

// OneShot reports whether the options ask for an action that runs instead
// of the desktop.
func (o Options) OneShot() bool {
	return o.List || o.Dump || o.Reset || o.Version || o.Help
}

// newFlagSet defines the flags used for argument validation and help.
func newFlagSet(o *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(version.CommandName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	// Modifiers
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVarP(&o.Debug, "debug", "x", false, "Debug output")
	fs.BoolVarP(&o.Help, "help", "h", false, "Show help")
	fs.BoolVarP(&o.Version, "version", "V", false, "Show version")

	// Settings
	fs.StringVarP(&o.Config, "config", "c", "", "Configuration file")
	fs.StringVarP(&o.Namespace, "namespace", "n", "", "Window state namespace")
	fs.StringVar(&o.Store, "store", "", "Store backend (file or memory)")
	fs.StringVar(&o.Codec, "codec", "", "Store codec (json or yaml)")

	// Actions
	fs.StringArrayVarP(&o.Open, "open", "o", nil, "Open a window on start")
	fs.BoolVarP(&o.List, "list", "l", false, "List stored windows")
	fs.BoolVar(&o.Dump, "dump", false, "Dump stored window state")
	fs.BoolVarP(&o.Reset, "reset", "R", false, "Forget all stored windows")

	return fs
}
