package window

import (
	"StackWin/pkg/geometry"
	"StackWin/pkg/kv"
	"StackWin/pkg/pointer"
	"StackWin/pkg/wm"
	"io"
	"log/slog"
	"testing"
)

var viewport = geometry.Size{Width: 1920, Height: 1080}

type recordingReporter struct {
	*wm.Manager
	reports     int
	activations int
}

func (r *recordingReporter) ReportGeometry(id string, rect geometry.Rect, maximized, minimized bool, saved geometry.Rect) {
	r.reports++
	r.Manager.ReportGeometry(id, rect, maximized, minimized, saved)
}

func (r *recordingReporter) Activate(id string) {
	r.activations++
	r.Manager.Activate(id)
}

func setup(t *testing.T) (*Window, *recordingReporter, *pointer.Bus) {
	t.Helper()
	m := wm.New(kv.NewMemory(), wm.Config{
		Viewport: viewport,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	m.Open("b", "Background")
	m.Open("a", "Notes")
	rec, _ := m.Record("a")

	rep := &recordingReporter{Manager: m}
	bus := pointer.NewBus()
	return New(rec, rep, bus, m.Limits(), viewport), rep, bus
}

func TestDragCommitsOnRelease(t *testing.T) {
	w, rep, bus := setup(t)
	start := w.Frame()

	if !w.BeginDrag(geometry.Point{X: 400, Y: 170}, false) {
		t.Fatal("drag should start from the normal state")
	}
	if w.Mode() != Dragging || bus.Len() != 1 {
		t.Fatalf("expected dragging with one capture, got %v and %d", w.Mode(), bus.Len())
	}

	bus.DispatchMove(geometry.Point{X: 450, Y: 200})
	bus.DispatchMove(geometry.Point{X: 300, Y: 100})
	if rep.reports != 0 {
		t.Errorf("moves must not report, got %d reports", rep.reports)
	}
	want := geometry.Rect{X: start.X - 100, Y: start.Y - 70, Width: start.Width, Height: start.Height}
	if w.Frame() != want {
		t.Errorf("live frame = %+v, want %+v", w.Frame(), want)
	}

	bus.DispatchUp(geometry.Point{X: 300, Y: 100})
	if rep.reports != 1 {
		t.Errorf("release should report once, got %d", rep.reports)
	}
	if bus.Len() != 0 || w.Mode() != Normal {
		t.Errorf("release should drop the capture, got %d and %v", bus.Len(), w.Mode())
	}

	rec, _ := rep.Record("a")
	if rec.Rect() != want || rec.Saved() != want {
		t.Errorf("committed record = %+v, want frame and restore point %+v", rec, want)
	}
}

func TestDragExemptAndBlockedStates(t *testing.T) {
	w, _, bus := setup(t)
	if w.BeginDrag(geometry.Point{}, true) {
		t.Error("presses on controls must not drag")
	}

	w.ToggleMaximize()
	if w.BeginDrag(geometry.Point{}, false) {
		t.Error("maximized windows must not drag")
	}
	if w.BeginResize(geometry.Point{}, geometry.SouthEast) {
		t.Error("maximized windows must not resize")
	}
	if bus.Len() != 0 {
		t.Errorf("no capture expected, got %d", bus.Len())
	}
}

func TestResizeFromCorner(t *testing.T) {
	w, rep, bus := setup(t)
	start := w.Frame()

	if !w.BeginResize(geometry.Point{X: 0, Y: 0}, geometry.SouthEast) {
		t.Fatal("resize should start")
	}
	if w.Direction() != geometry.SouthEast {
		t.Errorf("direction = %v", w.Direction())
	}
	bus.DispatchUp(geometry.Point{X: -100, Y: -50})

	want := geometry.Rect{X: start.X, Y: start.Y, Width: start.Width - 100, Height: start.Height - 50}
	if w.Frame() != want {
		t.Errorf("frame = %+v, want %+v", w.Frame(), want)
	}
	rec, _ := rep.Record("a")
	if rec.Rect() != want {
		t.Errorf("committed = %+v, want %+v", rec.Rect(), want)
	}
}

func TestResizeHonoursMinimum(t *testing.T) {
	w, _, bus := setup(t)
	start := w.Frame()

	w.BeginResize(geometry.Point{}, geometry.West)
	bus.DispatchUp(geometry.Point{X: 5000})

	if w.Frame().Width != 300 {
		t.Errorf("width = %d, want minimum 300", w.Frame().Width)
	}
	if right := w.Frame().X + w.Frame().Width; right != start.X+start.Width {
		t.Errorf("right edge moved from %d to %d", start.X+start.Width, right)
	}
}

func TestMaximizeRestore(t *testing.T) {
	w, rep, _ := setup(t)
	windowed := w.Frame()

	w.ToggleMaximize()
	if !w.IsMaximized() || w.Frame() != rep.Limits().Maximized(viewport) {
		t.Errorf("maximize: %v %+v", w.IsMaximized(), w.Frame())
	}
	if w.Saved() != windowed {
		t.Errorf("restore point = %+v, want %+v", w.Saved(), windowed)
	}
	rec, _ := rep.Record("a")
	if !rec.IsMaximized || rec.Saved() != windowed {
		t.Errorf("maximize not reported: %+v", rec)
	}

	w.ToggleMaximize()
	if w.IsMaximized() || w.Frame() != windowed {
		t.Errorf("restore: %v %+v", w.IsMaximized(), w.Frame())
	}
}

func TestMinimizeKeepsMaximized(t *testing.T) {
	w, rep, _ := setup(t)
	windowed := w.Frame()

	w.ToggleMaximize()
	w.ToggleMinimize()
	rec, _ := rep.Record("a")
	if !rec.IsMinimized || !rec.IsMaximized || rec.Active {
		t.Errorf("minimized record = %+v", rec)
	}

	w.ToggleMaximize()
	if !w.IsMaximized() || !w.IsMinimized() {
		t.Error("maximize must be ignored while minimized")
	}

	smaller := geometry.Size{Width: 1280, Height: 720}
	w.SetViewport(smaller)
	activations := rep.activations
	w.ToggleMinimize()

	if w.IsMinimized() || !w.IsMaximized() {
		t.Errorf("restore state: minimized=%v maximized=%v", w.IsMinimized(), w.IsMaximized())
	}
	if w.Frame() != rep.Limits().Maximized(smaller) {
		t.Errorf("restored maximized frame = %+v, want the current viewport", w.Frame())
	}
	if rep.activations != activations+1 {
		t.Error("restoring from the tray should activate")
	}
	rec, _ = rep.Record("a")
	if !rec.Active || rec.IsMinimized {
		t.Errorf("restored record = %+v", rec)
	}

	w.ToggleMaximize()
	if w.Frame() != windowed {
		t.Errorf("un-maximize after round trip = %+v, want %+v", w.Frame(), windowed)
	}
}

func TestMinimizeSnapshotsWindowedFrame(t *testing.T) {
	w, rep, _ := setup(t)
	windowed := w.Frame()

	w.ToggleMinimize()
	rec, _ := rep.Record("a")
	if rec.Saved() != windowed {
		t.Errorf("restore point = %+v, want %+v", rec.Saved(), windowed)
	}

	w.ToggleMinimize()
	if w.Frame() != windowed {
		t.Errorf("restored frame = %+v, want %+v", w.Frame(), windowed)
	}
}

func TestDisposeReleasesCapture(t *testing.T) {
	w, rep, bus := setup(t)
	start := w.Frame()

	w.BeginDrag(geometry.Point{}, false)
	bus.DispatchMove(geometry.Point{X: 40, Y: 40})
	w.Dispose()

	if bus.Len() != 0 {
		t.Errorf("dispose leaked %d captures", bus.Len())
	}
	if w.Frame() != start {
		t.Errorf("abandoned drag should restore the frame, got %+v", w.Frame())
	}
	if rep.reports != 0 {
		t.Errorf("abandoned drag must not report, got %d", rep.reports)
	}
}

func TestCloseRemovesWindow(t *testing.T) {
	w, rep, bus := setup(t)
	w.BeginResize(geometry.Point{}, geometry.North)
	w.Close()

	if bus.Len() != 0 {
		t.Errorf("close leaked %d captures", bus.Len())
	}
	if _, ok := rep.Record("a"); ok {
		t.Error("closed window still in the record set")
	}
	if active, ok := rep.Active(); !ok || active.ID != "b" {
		t.Errorf("remaining window should take focus, got %+v", active)
	}
}

func TestSyncDuringGesture(t *testing.T) {
	w, rep, bus := setup(t)
	w.BeginDrag(geometry.Point{}, false)
	bus.DispatchMove(geometry.Point{X: 10, Y: 10})
	live := w.Frame()

	rec, _ := rep.Record("a")
	w.Sync(rec)
	if w.Frame() != live {
		t.Errorf("sync clobbered the live frame: %+v", w.Frame())
	}
	if !w.IsActive() {
		t.Error("sync should still pick up focus changes")
	}
	w.Dispose()
}

func TestGestureOnFocusedTopWindowKeepsZIndex(t *testing.T) {
	w, rep, bus := setup(t)
	before, _ := rep.Record("a")

	w.BeginDrag(geometry.Point{X: 400, Y: 170}, false)
	bus.DispatchUp(geometry.Point{X: 400, Y: 170})

	if rep.activations != 0 {
		t.Errorf("focused top window should not be activated again, got %d activations", rep.activations)
	}
	after, _ := rep.Record("a")
	if after.ZIndex != before.ZIndex {
		t.Errorf("zIndex changed from %d to %d", before.ZIndex, after.ZIndex)
	}
	if rep.reports != 1 {
		t.Errorf("click and release should write once, got %d reports", rep.reports)
	}
}

func TestGestureOnLowerWindowActivates(t *testing.T) {
	w, rep, bus := setup(t)
	rep.Activate("b")
	rec, _ := rep.Record("a")
	w.Sync(rec)
	rep.activations = 0

	w.BeginResize(geometry.Point{}, geometry.SouthEast)
	bus.DispatchUp(geometry.Point{})

	if rep.activations != 1 {
		t.Errorf("gesture on a covered window should activate it once, got %d", rep.activations)
	}
	if !rep.IsTop("a") {
		t.Error("window should be on top after the gesture")
	}
}
