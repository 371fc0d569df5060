package config

import (
	"StackWin/internal/constants"
	"StackWin/internal/paths"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	paths.StateHomeOverride = filepath.Join(tempDir, "state")
	paths.ConfigHomeOverride = tempDir
	t.Cleanup(func() {
		paths.StateHomeOverride = ""
		paths.ConfigHomeOverride = ""
	})
	return tempDir
}

func TestLoadWritesDefaults(t *testing.T) {
	useTempHome(t)

	conf, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if _, err := os.Stat(paths.GetConfigFilePath()); err != nil {
		t.Errorf("default config was not written: %v", err)
	}
	if conf.Store.Namespace != constants.DefaultNamespace {
		t.Errorf("Expected namespace %q, got %q", constants.DefaultNamespace, conf.Store.Namespace)
	}
	if conf.StoreDir != paths.GetStoreDir() {
		t.Errorf("Expected store dir %q, got %q", paths.GetStoreDir(), conf.StoreDir)
	}
	if len(conf.Apps) != 3 {
		t.Errorf("Expected 3 default apps, got %d", len(conf.Apps))
	}
}

func TestSaveAndLoad(t *testing.T) {
	useTempHome(t)

	conf := Default()
	conf.UI.TitlePosition = "right"
	conf.Store.Codec = "yaml"
	conf.Geometry.MinWidth = 30

	if err := SaveAppConfig(conf); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded.UI.TitlePosition != "right" {
		t.Errorf("Expected title position 'right', got '%s'", loaded.UI.TitlePosition)
	}
	if loaded.Store.Codec != "yaml" {
		t.Errorf("Expected codec 'yaml', got '%s'", loaded.Store.Codec)
	}
	if loaded.Geometry.Limits().MinWidth != 30 {
		t.Errorf("Expected min width 30, got %d", loaded.Geometry.Limits().MinWidth)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	useTempHome(t)

	path := paths.GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	content := "[store]\nnamespace = 'desk'\nfolder = '${HOME}/windows'\n\n[[apps]]\nid = 'log'\ntitle = 'Log'\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	conf, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if conf.Store.Namespace != "desk" || conf.Store.Backend != constants.StoreBackendFile {
		t.Errorf("unexpected store config %+v", conf.Store)
	}
	home, _ := os.UserHomeDir()
	if conf.StoreDir != filepath.Join(home, "windows") {
		t.Errorf("store dir not expanded: %q", conf.StoreDir)
	}
	if len(conf.Apps) != 1 || conf.Apps[0].ID != "log" {
		t.Errorf("apps = %+v", conf.Apps)
	}
	if conf.UI.DoubleClickMS != 400 {
		t.Errorf("unset ui keys should keep defaults, got %d", conf.UI.DoubleClickMS)
	}
}

func TestInvalidFileIsNotOverwritten(t *testing.T) {
	useTempHome(t)

	path := paths.GetConfigFilePath()
	os.MkdirAll(filepath.Dir(path), 0755)
	os.WriteFile(path, []byte("[ui\n"), 0644)

	conf, err := LoadAppConfig()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if conf.Store.Namespace != constants.DefaultNamespace {
		t.Errorf("defaults should be returned on error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "[ui\n" {
		t.Errorf("broken config was overwritten: %q", data)
	}
}

func TestEnvOverrides(t *testing.T) {
	useTempHome(t)
	t.Setenv(constants.EnvNamespace, "from-env")
	t.Setenv(constants.EnvStoreDir, "/tmp/stackwin-env")

	conf, err := LoadAppConfig()
	if err != nil {
		t.Fatal(err)
	}
	if conf.Store.Namespace != "from-env" || conf.StoreDir != "/tmp/stackwin-env" {
		t.Errorf("env overrides not applied: %q %q", conf.Store.Namespace, conf.StoreDir)
	}
}

func TestValidate(t *testing.T) {
	conf := Default()
	conf.Store.Backend = "s3"
	conf.UI.TitlePosition = "center"
	conf.Apps = append(conf.Apps, conf.Apps[0])

	err := conf.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"store.backend", "ui.title_position", "duplicate id"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestWatchReloads(t *testing.T) {
	useTempHome(t)
	if _, err := LoadAppConfig(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan AppConfig, 4)
	if err := Watch(ctx, func(c AppConfig, err error) {
		if err == nil {
			changes <- c
		}
	}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	conf := Default()
	conf.UI.TitlePosition = "right"
	if err := SaveAppConfig(conf); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-changes:
		if c.UI.TitlePosition != "right" {
			t.Errorf("reloaded title position = %q", c.UI.TitlePosition)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}
