package cmd

import (
	"StackWin/internal/constants"
	"StackWin/internal/paths"
	"StackWin/pkg/kv"
	"StackWin/pkg/wm"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// setupEnv points configuration and state at temporary directories and
// returns the store directory.
func setupEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	storeDir := filepath.Join(tmp, "store")

	oldState, oldConfig := paths.StateHomeOverride, paths.ConfigHomeOverride
	paths.StateHomeOverride = filepath.Join(tmp, "state")
	paths.ConfigHomeOverride = filepath.Join(tmp, "config")
	t.Cleanup(func() {
		paths.StateHomeOverride, paths.ConfigHomeOverride = oldState, oldConfig
	})
	t.Setenv(constants.EnvConfigFile, filepath.Join(tmp, "config", constants.AppConfigFileName))
	t.Setenv(constants.EnvStoreDir, storeDir)
	t.Setenv(constants.EnvNamespace, "")

	var buf bytes.Buffer
	oldOut := out
	out = &buf
	t.Cleanup(func() { out = oldOut })
	return storeDir
}

func output() string {
	return out.(*bytes.Buffer).String()
}

func seed(t *testing.T, dir string) {
	t.Helper()
	store, err := kv.NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	mgr := wm.New(store, wm.Config{Namespace: constants.DefaultNamespace})
	mgr.Open("notes", "Notes")
	mgr.Open("clock", "Clock")
	mgr.SetAppData("notes", "hello")
}

func TestExecuteList(t *testing.T) {
	dir := setupEnv(t)
	seed(t, dir)

	if code := Execute(context.Background(), Options{List: true}); code != 0 {
		t.Fatalf("Execute returned %d", code)
	}
	got := output()
	for _, want := range []string{"Namespace stackwin.windows", "Directory " + dir, "notes", "Clock", "active", "normal"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}

func TestExecuteListEmpty(t *testing.T) {
	setupEnv(t)

	if code := Execute(context.Background(), Options{List: true, Namespace: "other"}); code != 0 {
		t.Fatalf("Execute returned %d", code)
	}
	if !strings.Contains(output(), "No stored windows.") {
		t.Errorf("output = %q", output())
	}
}

func TestExecuteDump(t *testing.T) {
	dir := setupEnv(t)
	seed(t, dir)

	if code := Execute(context.Background(), Options{Dump: true}); code != 0 {
		t.Fatalf("Execute returned %d", code)
	}
	got := output()
	if !strings.Contains(got, `"notes"`) || !strings.Contains(got, `"hello"`) {
		t.Errorf("dump output:\n%s", got)
	}
}

func TestExecuteReset(t *testing.T) {
	dir := setupEnv(t)
	seed(t, dir)

	if code := Execute(context.Background(), Options{Reset: true}); code != 0 {
		t.Fatalf("Execute returned %d", code)
	}

	store, err := kv.NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(constants.DefaultNamespace); !kv.IsNotFound(err) {
		t.Errorf("namespace key should be gone, got %v", err)
	}
}

func TestExecuteRejectsBadConfig(t *testing.T) {
	setupEnv(t)

	if code := Execute(context.Background(), Options{List: true, Codec: "xml"}); code != 1 {
		t.Errorf("Execute with a bad codec returned %d; want 1", code)
	}
}

func TestExecuteVersion(t *testing.T) {
	setupEnv(t)

	if code := Execute(context.Background(), Options{Version: true}); code != 0 {
		t.Fatalf("Execute returned %d", code)
	}
	if !strings.HasPrefix(output(), "StackWin ") {
		t.Errorf("version output = %q", output())
	}
}
