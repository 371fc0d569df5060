package tui

import (
	"StackWin/internal/apps"
	"StackWin/internal/config"
	"StackWin/pkg/geometry"
	"StackWin/pkg/kv"
	"StackWin/pkg/launcher"
	"StackWin/pkg/wm"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

var testDesk = geometry.Size{Width: 100, Height: 40}

func newTestDesktop(t *testing.T) *Desktop {
	t.Helper()
	mgr := wm.New(kv.NewMemory(), wm.Config{
		Limits:   geometry.CellLimits(),
		Viewport: testDesk,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	reg := apps.NewRegistry([]launcher.Descriptor{
		{ID: "notes", Title: "Notes"},
		{ID: "clock", Title: "Clock"},
	}, apps.AboutInfo{})
	d := NewDesktop(mgr, reg)
	t.Cleanup(d.Close)
	return d
}

// openTwo opens a at {10,6,80,28} and b at {12,8,80,28}; b ends up on top.
func openTwo(t *testing.T) *Desktop {
	t.Helper()
	d := newTestDesktop(t)
	d.Manager().Open("a", "A")
	d.Manager().Open("b", "B")
	return d
}

func frameOf(t *testing.T, d *Desktop, id string) geometry.Rect {
	t.Helper()
	rec, ok := d.Manager().Record(id)
	if !ok {
		t.Fatalf("no record for %q", id)
	}
	return rec.Rect()
}

func TestHitTest(t *testing.T) {
	d := openTwo(t)

	tests := []struct {
		name string
		p    geometry.Point
		id   string
		zone Zone
		dir  geometry.Direction
	}{
		{"lower window peeking out", geometry.Point{X: 11, Y: 7}, "a", ZoneClose, 0},
		{"overlap goes to the top", geometry.Point{X: 40, Y: 20}, "b", ZoneContent, 0},
		{"corner", geometry.Point{X: 12, Y: 8}, "b", ZoneResize, geometry.NorthWest},
		{"far corner", geometry.Point{X: 91, Y: 35}, "b", ZoneResize, geometry.SouthEast},
		{"east edge", geometry.Point{X: 91, Y: 20}, "b", ZoneResize, geometry.East},
		{"close", geometry.Point{X: 13, Y: 9}, "b", ZoneClose, 0},
		{"minimize", geometry.Point{X: 16, Y: 9}, "b", ZoneMinimize, 0},
		{"maximize", geometry.Point{X: 21, Y: 9}, "b", ZoneMaximize, 0},
		{"title", geometry.Point{X: 22, Y: 9}, "b", ZoneTitle, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := d.HitTest(tt.p)
			if !ok {
				t.Fatalf("HitTest(%v) found nothing", tt.p)
			}
			if hit.ID != tt.id || hit.Zone != tt.zone || hit.Dir != tt.dir {
				t.Errorf("HitTest(%v) = %+v; want {%s %d %v}", tt.p, hit, tt.id, tt.zone, tt.dir)
			}
		})
	}

	if _, ok := d.HitTest(geometry.Point{X: 0, Y: 0}); ok {
		t.Error("empty desktop area should not hit a window")
	}
}

func TestHitTestMaximizedHasNoResizeEdges(t *testing.T) {
	d := openTwo(t)
	d.MaximizeActive()

	hit, ok := d.HitTest(geometry.Point{X: 1, Y: 1})
	if !ok || hit.ID != "b" || hit.Zone != ZoneFrame {
		t.Errorf("HitTest on maximized corner = %+v, %v", hit, ok)
	}
}

func TestPressDrag(t *testing.T) {
	d := openTwo(t)
	t0 := time.Now()

	d.Press(geometry.Point{X: 30, Y: 9}, t0)
	if !d.Capturing() {
		t.Fatal("title press should start a drag")
	}
	d.Move(geometry.Point{X: 35, Y: 12})
	if w, _ := d.Window("b"); w.Frame().X != 17 {
		t.Errorf("live frame = %+v", w.Frame())
	}
	if got := frameOf(t, d, "b"); got.X != 12 {
		t.Errorf("manager should not see the drag before release, got %+v", got)
	}
	d.Release(geometry.Point{X: 35, Y: 12})

	if d.Capturing() {
		t.Error("release should drop the capture")
	}
	want := geometry.Rect{X: 17, Y: 11, Width: 80, Height: 28}
	if got := frameOf(t, d, "b"); got != want {
		t.Errorf("frame = %+v; want %+v", got, want)
	}
}

func TestPressResize(t *testing.T) {
	d := openTwo(t)

	d.Press(geometry.Point{X: 12, Y: 8}, time.Now())
	d.Move(geometry.Point{X: 14, Y: 10})
	d.Release(geometry.Point{X: 14, Y: 10})

	want := geometry.Rect{X: 14, Y: 10, Width: 78, Height: 26}
	if got := frameOf(t, d, "b"); got != want {
		t.Errorf("frame = %+v; want %+v", got, want)
	}
}

func TestPressActivatesLowerWindow(t *testing.T) {
	d := openTwo(t)

	d.Press(geometry.Point{X: 11, Y: 20}, time.Now())

	if !d.Manager().IsTop("a") {
		t.Error("pressing a covered window should bring it to the top")
	}
	if rec, _ := d.Manager().Active(); rec.ID != "a" {
		t.Errorf("active = %q; want a", rec.ID)
	}
	if d.Capturing() {
		t.Error("content press should not capture the pointer")
	}
}

func TestDoubleClickTitleMaximizes(t *testing.T) {
	d := openTwo(t)
	t0 := time.Now()
	p := geometry.Point{X: 30, Y: 9}

	d.Press(p, t0)
	d.Release(p)
	d.Press(p, t0.Add(100*time.Millisecond))

	rec, _ := d.Manager().Record("b")
	if !rec.IsMaximized {
		t.Fatal("double click on the title should maximize")
	}
	if got, want := rec.Rect(), geometry.CellLimits().Maximized(testDesk); got != want {
		t.Errorf("maximized frame = %+v; want %+v", got, want)
	}

	// Too slow for a double click: the second press only focuses.
	d.Press(geometry.Point{X: 30, Y: 2}, t0.Add(time.Second))
	d.Press(geometry.Point{X: 30, Y: 2}, t0.Add(2*time.Second))
	if rec, _ := d.Manager().Record("b"); !rec.IsMaximized {
		t.Error("slow clicks should not toggle maximize")
	}
}

func TestTitleButtons(t *testing.T) {
	d := openTwo(t)

	d.Press(geometry.Point{X: 16, Y: 9}, time.Now())
	rec, _ := d.Manager().Record("b")
	if !rec.IsMinimized || rec.Active {
		t.Fatalf("minimize button: %+v", rec)
	}
	if d.Capturing() {
		t.Error("buttons must not start a drag")
	}
	if e, ok := d.Tray().Last(); !ok || e.ID != "b" {
		t.Errorf("tray = %+v", d.Tray().Entries())
	}

	if !d.RestoreLast() {
		t.Fatal("RestoreLast should find b")
	}
	if rec, _ := d.Manager().Active(); rec.ID != "b" {
		t.Errorf("restored window should be active, got %q", rec.ID)
	}

	d.Press(geometry.Point{X: 13, Y: 9}, time.Now())
	if _, ok := d.Manager().Record("b"); ok {
		t.Error("close button should remove b")
	}
	if _, ok := d.Window("b"); ok {
		t.Error("closed window state should be dropped")
	}
	if rec, _ := d.Manager().Active(); rec.ID != "a" {
		t.Errorf("active after close = %q; want a", rec.ID)
	}
}

func TestCycle(t *testing.T) {
	d := openTwo(t)
	d.Manager().Open("c", "C")

	for _, want := range []string{"a", "b", "c"} {
		d.Cycle(1)
		if rec, _ := d.Manager().Active(); rec.ID != want {
			t.Fatalf("Cycle(1) focused %q; want %q", rec.ID, want)
		}
	}
	d.Cycle(-1)
	if rec, _ := d.Manager().Active(); rec.ID != "b" {
		t.Errorf("Cycle(-1) focused %q; want b", rec.ID)
	}
}

func TestLaunchTypeAndInstances(t *testing.T) {
	d := newTestDesktop(t)

	if d.LaunchAt(5) {
		t.Error("LaunchAt out of range should fail")
	}
	if !d.Launch("notes") {
		t.Fatal("Launch(notes) failed")
	}
	if rec, ok := d.Manager().Record("notes"); !ok || rec.Title != "Notes" {
		t.Fatalf("notes record = %+v, %v", rec, ok)
	}
	if got := d.Buttons()[0].Status; got != launcher.Active {
		t.Errorf("notes button status = %v", got)
	}

	d.Type(apps.Key{Name: "h", Text: "h"})
	d.Type(apps.Key{Name: "i", Text: "i"})
	if text, _ := d.ActiveText(); text != "hi" {
		t.Errorf("ActiveText = %q; want hi", text)
	}

	id := d.OpenInstance()
	if apps.BaseID(id) != "notes" || id == "notes" {
		t.Errorf("OpenInstance = %q", id)
	}
	if rec, _ := d.Manager().Active(); rec.ID != id || !strings.HasPrefix(rec.Title, "Notes (") {
		t.Errorf("instance record = %+v", rec)
	}
	if text, _ := d.ActiveText(); text != "" {
		t.Errorf("new instance should start empty, got %q", text)
	}
}

func TestViewportChangeFollowsMaximized(t *testing.T) {
	d := openTwo(t)
	d.MaximizeActive()

	size := geometry.Size{Width: 60, Height: 20}
	d.SetViewport(size)

	w, _ := d.Window("b")
	if got, want := w.Frame(), geometry.CellLimits().Maximized(size); got != want {
		t.Errorf("maximized frame = %+v; want %+v", got, want)
	}
}

func TestRender(t *testing.T) {
	d := newTestDesktop(t)
	d.Launch("notes")

	ui := config.Default().UI
	ui.Shadow = false
	out := ansi.Strip(d.Render(testDesk.Width, testDesk.Height, buildStyles(ui)))

	lines := strings.Split(out, "\n")
	if len(lines) != testDesk.Height {
		t.Fatalf("rendered %d lines; want %d", len(lines), testDesk.Height)
	}
	// notes sits at {10,6,80,28}
	if !strings.Contains(lines[7], "[x][-][+] Notes") {
		t.Errorf("title row = %q", lines[7])
	}
	if !strings.Contains(lines[8], "Type to take notes.") {
		t.Errorf("first content row = %q", lines[8])
	}
	if strings.TrimSpace(lines[0]) != "" {
		t.Errorf("row above the window should be empty, got %q", lines[0])
	}
}

func TestClickOnFocusedTitleKeepsZIndex(t *testing.T) {
	d := openTwo(t)
	before, _ := d.Manager().Record("b")

	p := geometry.Point{X: 30, Y: 9}
	d.Press(p, time.Now())
	d.Release(p)

	after, _ := d.Manager().Record("b")
	if after.ZIndex != before.ZIndex {
		t.Errorf("zIndex changed from %d to %d", before.ZIndex, after.ZIndex)
	}
	if !after.Active {
		t.Error("b should stay active")
	}
}

func TestOpenWindowsWithoutViewportCascades(t *testing.T) {
	mgr := wm.New(kv.NewMemory(), wm.Config{
		Limits: geometry.CellLimits(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	d := NewDesktop(mgr, apps.NewRegistry(nil, apps.AboutInfo{}))
	t.Cleanup(d.Close)

	OpenWindows(context.Background(), d, []string{"notes", "clock", "about"})

	seen := map[geometry.Rect]string{}
	for _, rec := range mgr.Records() {
		if other, ok := seen[rec.Rect()]; ok {
			t.Errorf("%s and %s share the frame %+v", other, rec.ID, rec.Rect())
		}
		seen[rec.Rect()] = rec.ID
	}
	if len(seen) != 3 {
		t.Errorf("opened %d distinct windows; want 3", len(seen))
	}
}

func TestRenderShadow(t *testing.T) {
	d := newTestDesktop(t)
	d.Launch("notes")

	ui := config.Default().UI
	ui.Shadow = true
	lines := strings.Split(ansi.Strip(d.Render(testDesk.Width, testDesk.Height, buildStyles(ui))), "\n")

	// notes sits at {10,6,80,28}: the shadow column is x=90, the band y=34.
	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"right column", 90, 20, '░'},
		{"above the column", 90, 6, ' '},
		{"bottom band", 11, 34, '░'},
		{"bottom band end", 90, 34, '░'},
		{"left of the band", 10, 34, ' '},
	}
	for _, tt := range tests {
		if got := []rune(lines[tt.y])[tt.x]; got != tt.want {
			t.Errorf("%s: cell (%d,%d) = %q; want %q", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestTypingPersistsWindowData(t *testing.T) {
	store := kv.NewMemory()
	cfg := wm.Config{
		Limits:   geometry.CellLimits(),
		Viewport: testDesk,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	d := NewDesktop(wm.New(store, cfg), apps.NewRegistry(nil, apps.AboutInfo{}))
	t.Cleanup(d.Close)

	d.Manager().Open("notes", "Notes")
	d.Type(apps.Key{Name: "o", Text: "o"})
	d.Type(apps.Key{Name: "k", Text: "k"})

	reloaded := wm.New(store, cfg)
	if got := apps.TextOf(reloaded.AppData("notes")); got != "ok" {
		t.Errorf("reloaded text = %q; want ok", got)
	}
}
