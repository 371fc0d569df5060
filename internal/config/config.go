package config

import (
	"StackWin/internal/constants"
	"StackWin/internal/paths"
	"StackWin/pkg/geometry"
	"StackWin/pkg/launcher"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	UI       UIConfig              `toml:"ui"`
	Store    StoreConfig           `toml:"store"`
	Geometry GeometryConfig        `toml:"geometry"`
	Apps     []launcher.Descriptor `toml:"apps"`

	// Helper fields for runtime use, not saved to TOML
	StoreDir string `toml:"-"`
}

// UIConfig holds user interface related settings.
type UIConfig struct {
	LineCharacters bool `toml:"line_characters"`
	Shadow         bool `toml:"shadow"`
	// TitlePosition places window titles: "left" or "right".
	TitlePosition          string `toml:"title_position"`
	ActiveTitleColor       string `toml:"active_title_color"`
	ActiveTitleTextColor   string `toml:"active_title_text_color"`
	InactiveTitleColor     string `toml:"inactive_title_color"`
	InactiveTitleTextColor string `toml:"inactive_title_text_color"`
	LauncherClosedColor    string `toml:"launcher_closed_color"`
	LauncherActiveColor    string `toml:"launcher_active_color"`
	LauncherInactiveColor  string `toml:"launcher_inactive_color"`
	DesktopColor           string `toml:"desktop_color"`
	DoubleClickMS          int    `toml:"double_click_ms"`
}

// StoreConfig selects where window state is persisted.
type StoreConfig struct {
	// Backend is "file" or "memory".
	Backend string `toml:"backend"`
	// Folder holds the file backend. Empty means the state directory.
	Folder    string `toml:"folder"`
	Codec     string `toml:"codec"`
	Namespace string `toml:"namespace"`
	DataKey   string `toml:"data_key"`
}

// GeometryConfig holds the placement limits in terminal cells.
type GeometryConfig struct {
	MinWidth    int     `toml:"min_width"`
	MinHeight   int     `toml:"min_height"`
	Margin      int     `toml:"margin"`
	Cascade     int     `toml:"cascade"`
	MaxWidth    int     `toml:"max_width"`
	MaxHeight   int     `toml:"max_height"`
	WidthRatio  float64 `toml:"width_ratio"`
	HeightRatio float64 `toml:"height_ratio"`
}

// Limits converts the settings to geometry limits.
func (g GeometryConfig) Limits() geometry.Limits {
	l := geometry.CellLimits()
	l.MinWidth = g.MinWidth
	l.MinHeight = g.MinHeight
	l.Margin = g.Margin
	l.Cascade = g.Cascade
	l.MaxWidth = g.MaxWidth
	l.MaxHeight = g.MaxHeight
	l.WidthRatio = g.WidthRatio
	l.HeightRatio = g.HeightRatio
	return l
}

// Default returns the built-in configuration.
func Default() AppConfig {
	cells := geometry.CellLimits()
	return AppConfig{
		UI: UIConfig{
			LineCharacters:         true,
			Shadow:                 true,
			TitlePosition:          "left",
			ActiveTitleColor:       "#1987cf",
			ActiveTitleTextColor:   "#ffffff",
			InactiveTitleColor:     "#9ca3af",
			InactiveTitleTextColor: "#1f2937",
			LauncherClosedColor:    "#ffffff",
			LauncherActiveColor:    "#1987cf",
			LauncherInactiveColor:  "#9ca3af",
			DesktopColor:           "#0f172a",
			DoubleClickMS:          400,
		},
		Store: StoreConfig{
			Backend:   constants.StoreBackendFile,
			Codec:     constants.DefaultCodec,
			Namespace: constants.DefaultNamespace,
		},
		Geometry: GeometryConfig{
			MinWidth:    cells.MinWidth,
			MinHeight:   cells.MinHeight,
			Margin:      cells.Margin,
			Cascade:     cells.Cascade,
			MaxWidth:    cells.MaxWidth,
			MaxHeight:   cells.MaxHeight,
			WidthRatio:  cells.WidthRatio,
			HeightRatio: cells.HeightRatio,
		},
		Apps: []launcher.Descriptor{
			{ID: "notes", Title: "Notes"},
			{ID: "clock", Title: "Clock"},
			{ID: "about", Title: "About"},
		},
	}
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
// Anything else is looked up in the environment.
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return os.Getenv(varName)
	}
	return os.Expand(val, mapper)
}

// LoadAppConfig reads the configuration file. A missing file is created
// with defaults. A file that does not parse is left alone and the defaults
// are returned together with the error.
func LoadAppConfig() (AppConfig, error) {
	conf := Default()
	path := paths.GetConfigFilePath()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := SaveAppConfig(conf); err != nil {
			return conf.resolve(), fmt.Errorf("writing default config: %w", err)
		}
	case err != nil:
		return conf.resolve(), fmt.Errorf("reading %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &conf); err != nil {
			return Default().resolve(), fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	conf = conf.resolve()
	return conf, conf.Validate()
}

// resolve fills in runtime fields and applies environment overrides.
func (c AppConfig) resolve() AppConfig {
	if ns := os.Getenv(constants.EnvNamespace); ns != "" {
		c.Store.Namespace = ns
	}
	if dir := os.Getenv(constants.EnvStoreDir); dir != "" {
		c.Store.Folder = dir
	}
	if c.Store.Folder == "" {
		c.StoreDir = paths.GetStoreDir()
	} else {
		c.StoreDir = ExpandVariables(c.Store.Folder)
	}
	return c
}

// Validate reports settings the application cannot run with.
func (c AppConfig) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case constants.StoreBackendFile, constants.StoreBackendMem:
	default:
		errs = append(errs, fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend))
	}
	switch strings.ToLower(c.Store.Codec) {
	case "json", "yaml", "yml":
	default:
		errs = append(errs, fmt.Errorf("store.codec: unknown codec %q", c.Store.Codec))
	}
	if c.Store.Namespace == "" {
		errs = append(errs, errors.New("store.namespace: must not be empty"))
	}
	switch c.UI.TitlePosition {
	case "left", "right":
	default:
		errs = append(errs, fmt.Errorf("ui.title_position: must be left or right, got %q", c.UI.TitlePosition))
	}
	if c.Geometry.MinWidth < 8 || c.Geometry.MinHeight < 4 {
		errs = append(errs, fmt.Errorf("geometry: minimum window size %dx%d is too small", c.Geometry.MinWidth, c.Geometry.MinHeight))
	}
	seen := map[string]bool{}
	for _, app := range c.Apps {
		if app.ID == "" {
			errs = append(errs, errors.New("apps: entry without id"))
			continue
		}
		if seen[app.ID] {
			errs = append(errs, fmt.Errorf("apps: duplicate id %q", app.ID))
		}
		seen[app.ID] = true
	}
	return errors.Join(errs...)
}

// SaveAppConfig writes the configuration to stackwin.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
