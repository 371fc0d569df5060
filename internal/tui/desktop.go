package tui

import (
	"StackWin/internal/apps"
	"StackWin/pkg/geometry"
	"StackWin/pkg/launcher"
	"StackWin/pkg/pointer"
	"StackWin/pkg/tray"
	"StackWin/pkg/window"
	"StackWin/pkg/wm"
	"slices"
	"time"
)

// Zone is the part of a window under the pointer.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneContent
	// ZoneFrame is the border of a maximized window, which does not resize.
	ZoneFrame
	ZoneTitle
	ZoneClose
	ZoneMinimize
	ZoneMaximize
	ZoneResize
)

// DragExempt reports whether a press on z must not start a drag.
func (z Zone) DragExempt() bool {
	return z == ZoneClose || z == ZoneMinimize || z == ZoneMaximize
}

// titleRow is the frame row holding the title bar.
const titleRow = 1

// Hit is the result of a hit test on the desktop.
type Hit struct {
	ID   string
	Zone Zone
	Dir  geometry.Direction
}

// zoneAt classifies p, which must lie inside frame.
func zoneAt(frame geometry.Rect, maximized bool, p geometry.Point) (Zone, geometry.Direction) {
	rx, ry := p.X-frame.X, p.Y-frame.Y

	var dir geometry.Direction
	switch ry {
	case 0:
		dir |= geometry.North
	case frame.Height - 1:
		dir |= geometry.South
	}
	switch rx {
	case 0:
		dir |= geometry.West
	case frame.Width - 1:
		dir |= geometry.East
	}
	if dir != 0 {
		if maximized {
			return ZoneFrame, 0
		}
		return ZoneResize, dir
	}

	if ry == titleRow {
		if c := rx - 1; c < 3*controlWidth {
			return [...]Zone{ZoneClose, ZoneMinimize, ZoneMaximize}[c/controlWidth], 0
		}
		return ZoneTitle, 0
	}
	return ZoneContent, 0
}

// Desktop binds the window manager to one window state machine per open
// window and routes pointer gestures to them. Coordinates are relative to
// the top-left cell of the desktop.
type Desktop struct {
	mgr     *wm.Manager
	reg     *apps.Registry
	bus     *pointer.Bus
	windows map[string]*window.Window
	records []wm.Record
	cancel  func()

	doubleClick time.Duration
	lastTitleID string
	lastTitleAt time.Time
}

// NewDesktop creates a desktop over mgr and follows its changes.
func NewDesktop(mgr *wm.Manager, reg *apps.Registry) *Desktop {
	d := &Desktop{
		mgr:         mgr,
		reg:         reg,
		bus:         pointer.NewBus(),
		windows:     make(map[string]*window.Window),
		doubleClick: 400 * time.Millisecond,
	}
	d.reconcile(mgr.Records())
	d.cancel = mgr.Subscribe(d.reconcile)
	return d
}

// SetDoubleClick sets the longest gap between two title clicks that still
// counts as a double click.
func (d *Desktop) SetDoubleClick(gap time.Duration) {
	if gap > 0 {
		d.doubleClick = gap
	}
}

// Close stops following the manager and drops every window.
func (d *Desktop) Close() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	for id, w := range d.windows {
		w.Dispose()
		delete(d.windows, id)
	}
}

// reconcile creates, syncs and disposes window state to match records.
func (d *Desktop) reconcile(records []wm.Record) {
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		seen[rec.ID] = true
		if w, ok := d.windows[rec.ID]; ok {
			w.Sync(rec)
			continue
		}
		d.windows[rec.ID] = window.New(rec, d.mgr, d.bus, d.mgr.Limits(), d.mgr.Viewport())
	}
	for id, w := range d.windows {
		if !seen[id] {
			w.Dispose()
			delete(d.windows, id)
		}
	}
	d.records = records
}

// Manager returns the window manager.
func (d *Desktop) Manager() *wm.Manager {
	return d.mgr
}

// Registry returns the content apps.
func (d *Desktop) Registry() *apps.Registry {
	return d.reg
}

// Records returns the last record set seen.
func (d *Desktop) Records() []wm.Record {
	return d.records
}

// Window returns the state machine of id.
func (d *Desktop) Window(id string) (*window.Window, bool) {
	w, ok := d.windows[id]
	return w, ok
}

// SetViewport resizes the desktop.
func (d *Desktop) SetViewport(size geometry.Size) {
	d.mgr.SetViewport(size)
	for _, w := range d.windows {
		w.SetViewport(size)
	}
}

// Capturing reports whether a gesture holds the pointer.
func (d *Desktop) Capturing() bool {
	return d.bus.Active()
}

// stack returns the visible windows, bottom first.
func (d *Desktop) stack() []*window.Window {
	out := make([]*window.Window, 0, len(d.windows))
	for _, w := range d.windows {
		if !w.IsMinimized() {
			out = append(out, w)
		}
	}
	slices.SortFunc(out, func(a, b *window.Window) int { return a.ZIndex() - b.ZIndex() })
	return out
}

// HitTest finds the topmost visible window under p.
func (d *Desktop) HitTest(p geometry.Point) (Hit, bool) {
	stack := d.stack()
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		frame := w.Frame()
		if !frame.Contains(p) {
			continue
		}
		zone, dir := zoneAt(frame, w.IsMaximized(), p)
		return Hit{ID: w.ID(), Zone: zone, Dir: dir}, true
	}
	return Hit{}, false
}

// Press handles a left-button press at p.
func (d *Desktop) Press(p geometry.Point, now time.Time) {
	hit, ok := d.HitTest(p)
	if !ok {
		return
	}
	w := d.windows[hit.ID]

	switch hit.Zone {
	case ZoneResize:
		if w.BeginResize(p, hit.Dir) {
			return
		}
		d.focus(w)

	case ZoneTitle, ZoneClose, ZoneMinimize, ZoneMaximize:
		if hit.Zone == ZoneTitle && d.isDoubleClick(hit.ID, now) {
			d.focus(w)
			w.ToggleMaximize()
			return
		}
		if w.BeginDrag(p, hit.Zone.DragExempt()) {
			return
		}
		switch hit.Zone {
		case ZoneClose:
			w.Close()
		case ZoneMinimize:
			w.ToggleMinimize()
		case ZoneMaximize:
			d.focus(w)
			w.ToggleMaximize()
		default:
			d.focus(w)
		}

	default:
		d.focus(w)
	}
}

// isDoubleClick records a title click and reports whether it completes a
// double click.
func (d *Desktop) isDoubleClick(id string, now time.Time) bool {
	double := id == d.lastTitleID && now.Sub(d.lastTitleAt) <= d.doubleClick
	if double {
		d.lastTitleID = ""
		return true
	}
	d.lastTitleID = id
	d.lastTitleAt = now
	return false
}

// Move forwards pointer motion to the gesture holding the capture.
func (d *Desktop) Move(p geometry.Point) {
	d.bus.DispatchMove(p)
}

// Release ends the gesture holding the capture.
func (d *Desktop) Release(p geometry.Point) {
	d.bus.DispatchUp(p)
}

// focus activates w unless it already is the focused top window.
func (d *Desktop) focus(w *window.Window) {
	if !w.IsActive() || !d.mgr.IsTop(w.ID()) {
		d.mgr.Activate(w.ID())
	}
}

// Active returns the focused window.
func (d *Desktop) Active() (*window.Window, bool) {
	rec, ok := d.mgr.Active()
	if !ok {
		return nil, false
	}
	return d.Window(rec.ID)
}

// Cycle moves focus by step through the visible windows in creation order.
func (d *Desktop) Cycle(step int) {
	var ids []string
	for _, r := range d.records {
		if !r.IsMinimized {
			ids = append(ids, r.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	next := 0
	if rec, ok := d.mgr.Active(); ok {
		if i := slices.Index(ids, rec.ID); i >= 0 {
			next = ((i+step)%len(ids) + len(ids)) % len(ids)
		}
	}
	d.mgr.Activate(ids[next])
}

// CloseActive closes the focused window.
func (d *Desktop) CloseActive() {
	if w, ok := d.Active(); ok {
		w.Close()
	}
}

// MinimizeActive minimizes the focused window.
func (d *Desktop) MinimizeActive() {
	if w, ok := d.Active(); ok {
		w.ToggleMinimize()
	}
}

// MaximizeActive toggles maximize on the focused window.
func (d *Desktop) MaximizeActive() {
	if w, ok := d.Active(); ok {
		w.ToggleMaximize()
	}
}

// Tray returns the minimized windows.
func (d *Desktop) Tray() tray.Tray {
	return tray.New(d.mgr.Minimized())
}

// RestoreLast brings back the most recently listed minimized window.
func (d *Desktop) RestoreLast() bool {
	t := d.Tray()
	e, ok := t.Last()
	if !ok {
		return false
	}
	return t.Click(d.mgr, e.ID)
}

// RestoreFromTray brings back id if it is minimized.
func (d *Desktop) RestoreFromTray(id string) bool {
	return d.Tray().Click(d.mgr, id)
}

// Buttons returns the launcher buttons with their status.
func (d *Desktop) Buttons() []launcher.Button {
	return launcher.Buttons(d.reg.Launcher(), d.records)
}

// Launch opens the launcher app with the given id.
func (d *Desktop) Launch(id string) bool {
	for _, desc := range d.reg.Launcher() {
		if desc.ID == id {
			launcher.Click(d.mgr, desc)
			return true
		}
	}
	return false
}

// LaunchAt opens the i-th launcher app.
func (d *Desktop) LaunchAt(i int) bool {
	descs := d.reg.Launcher()
	if i < 0 || i >= len(descs) {
		return false
	}
	launcher.Click(d.mgr, descs[i])
	return true
}

// OpenInstance opens another window running the focused window's app, or a
// notes pad when nothing has focus.
func (d *Desktop) OpenInstance() string {
	base := "notes"
	if rec, ok := d.mgr.Active(); ok {
		base = apps.BaseID(rec.ID)
	}
	id := apps.NewInstanceID(base)
	d.mgr.Open(id, d.reg.Title(id))
	return id
}

// Type offers k to the focused window's content, which stores its edits
// through the manager's setData callback.
func (d *Desktop) Type(k apps.Key) bool {
	rec, ok := d.mgr.Active()
	if !ok {
		return false
	}
	for _, v := range d.mgr.Contents(d.reg.Content) {
		if v.Record.ID != rec.ID {
			continue
		}
		if c, ok := v.Content.(apps.Content); ok && c.Key != nil {
			return c.Key(k)
		}
	}
	return false
}

// ActiveText returns the text held by the focused window.
func (d *Desktop) ActiveText() (string, bool) {
	rec, ok := d.mgr.Active()
	if !ok {
		return "", false
	}
	return apps.TextOf(d.mgr.AppData(rec.ID)), true
}

// Ticking reports whether a visible window shows the time.
func (d *Desktop) Ticking() bool {
	var ids []string
	for _, r := range d.records {
		if !r.IsMinimized {
			ids = append(ids, r.ID)
		}
	}
	return d.reg.Ticks(ids)
}
