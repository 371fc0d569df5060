package paths

import (
	"StackWin/internal/constants"
	"StackWin/internal/version"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

var (
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
)

func appDirName() string {
	return strings.ToLower(version.ApplicationName)
}

// GetConfigFilePath returns the absolute path to the stackwin.toml file.
// STACKWIN_CONFIG wins when set.
func GetConfigFilePath() string {
	if p := os.Getenv(constants.EnvConfigFile); p != "" {
		return p
	}
	return filepath.Join(GetConfigDir(), constants.AppConfigFileName)
}

// GetConfigDir returns the absolute path to the configuration directory,
// e.g. ~/.config/stackwin.
func GetConfigDir() string {
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appDirName())
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appDirName())
	}
	return filepath.Join(xdg.ConfigHome, appDirName())
}

// GetStateDir returns the absolute path to the state directory.
func GetStateDir() string {
	if StateHomeOverride != "" {
		return StateHomeOverride
	}
	return filepath.Join(xdg.StateHome, appDirName())
}

// GetStoreDir returns the default directory of the file-backed window store.
func GetStoreDir() string {
	return filepath.Join(GetStateDir(), constants.StoreDirName)
}

// GetLogFilePath returns the path of the application log.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), constants.LogDirName, constants.LogFileName)
}
