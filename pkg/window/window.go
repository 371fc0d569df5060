// Package window implements the interaction state machine of a single
// stacked window: dragging, edge resizing, maximize and minimize.
//
// A Window keeps its live frame locally while a gesture is in progress and
// reports to the manager only when the gesture ends or a control is used.
package window

import (
	"StackWin/pkg/geometry"
	"StackWin/pkg/pointer"
	"StackWin/pkg/wm"
)

// Mode is the gesture a window is in.
type Mode int

const (
	Normal Mode = iota
	Dragging
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "normal"
	}
}

// Reporter receives the committed state of a window. *wm.Manager
// satisfies it.
type Reporter interface {
	ReportGeometry(id string, rect geometry.Rect, maximized, minimized bool, saved geometry.Rect)
	Activate(id string)
	Close(id string)
	// IsTop reports whether id holds the highest z-index.
	IsTop(id string) bool
}

// Window is one panel's local state.
type Window struct {
	id       string
	title    string
	rep      Reporter
	bus      *pointer.Bus
	limits   geometry.Limits
	viewport geometry.Size

	frame     geometry.Rect
	saved     geometry.Rect
	maximized bool
	minimized bool
	active    bool
	zIndex    int

	mode       Mode
	dir        geometry.Direction
	startPoint geometry.Point
	startFrame geometry.Rect
	release    func()
}

// New creates the local state for rec.
func New(rec wm.Record, rep Reporter, bus *pointer.Bus, limits geometry.Limits, viewport geometry.Size) *Window {
	if bus == nil {
		bus = pointer.NewBus()
	}
	w := &Window{
		id:       rec.ID,
		rep:      rep,
		bus:      bus,
		limits:   limits,
		viewport: viewport,
	}
	w.Sync(rec)
	return w
}

// ID returns the window id.
func (w *Window) ID() string { return w.id }

// Title returns the last synced title.
func (w *Window) Title() string { return w.title }

// Mode returns the current gesture.
func (w *Window) Mode() Mode { return w.mode }

// Direction returns the edges being resized, if Mode is Resizing.
func (w *Window) Direction() geometry.Direction { return w.dir }

func (w *Window) IsMaximized() bool { return w.maximized }
func (w *Window) IsMinimized() bool { return w.minimized }
func (w *Window) IsActive() bool    { return w.active }
func (w *Window) ZIndex() int       { return w.zIndex }

// Saved returns the current restore point.
func (w *Window) Saved() geometry.Rect { return w.saved }

// Frame returns the live frame. A maximized window always fills the
// current viewport.
func (w *Window) Frame() geometry.Rect {
	if w.maximized {
		return w.limits.Maximized(w.viewport)
	}
	return w.frame
}

// SetViewport updates the viewport used for clamping and maximizing.
func (w *Window) SetViewport(size geometry.Size) {
	w.viewport = size
}

// Sync adopts the manager's snapshot of the window. Geometry is left alone
// while a gesture is running.
func (w *Window) Sync(rec wm.Record) {
	w.title = rec.Title
	w.active = rec.Active
	w.zIndex = rec.ZIndex
	if w.mode != Normal {
		return
	}
	w.frame = rec.Rect()
	w.saved = rec.Saved()
	w.maximized = rec.IsMaximized
	w.minimized = rec.IsMinimized
	w.snapshot()
}

// BeginDrag starts moving the window from p. Presses on drag-exempt
// controls, and windows that are maximized or minimized, do not drag.
func (w *Window) BeginDrag(p geometry.Point, exempt bool) bool {
	if exempt || w.mode != Normal || w.maximized || w.minimized {
		return false
	}
	w.begin(Dragging, 0, p)
	return true
}

// BeginResize starts resizing the edges in dir from p.
func (w *Window) BeginResize(p geometry.Point, dir geometry.Direction) bool {
	if !dir.Valid() || w.mode != Normal || w.maximized || w.minimized {
		return false
	}
	w.begin(Resizing, dir, p)
	return true
}

func (w *Window) begin(mode Mode, dir geometry.Direction, p geometry.Point) {
	w.mode = mode
	w.dir = dir
	w.startPoint = p
	w.startFrame = w.frame
	w.release = w.bus.Acquire(w)
	w.focus()
}

// focus brings the window to the front unless it already is.
func (w *Window) focus() {
	if w.active && w.rep.IsTop(w.id) {
		return
	}
	w.rep.Activate(w.id)
}

// PointerMove updates the live frame. It is delivered by the pointer bus
// only while a gesture holds the capture.
func (w *Window) PointerMove(p geometry.Point) {
	delta := p.Sub(w.startPoint)
	switch w.mode {
	case Dragging:
		w.frame = geometry.Drag(w.startFrame, delta)
	case Resizing:
		w.frame = w.limits.Resize(w.startFrame, w.dir, delta, w.viewport)
	}
}

// PointerUp ends the gesture and commits the frame.
func (w *Window) PointerUp(p geometry.Point) {
	if w.mode == Normal {
		return
	}
	w.PointerMove(p)
	w.mode = Normal
	w.dir = 0
	w.releaseCapture()
	w.snapshot()
	w.report()
}

// ToggleMaximize maximizes a windowed window or restores a maximized one.
// Minimized windows ignore it.
func (w *Window) ToggleMaximize() {
	if w.minimized || w.mode != Normal {
		return
	}
	if w.maximized {
		w.maximized = false
		w.frame = w.saved
	} else {
		w.snapshot()
		w.maximized = true
		w.frame = w.limits.Maximized(w.viewport)
	}
	w.report()
}

// ToggleMinimize hides the window or brings it back. The maximized flag
// survives a minimize, and a restored maximized window fills the viewport
// as it is now.
func (w *Window) ToggleMinimize() {
	if w.mode != Normal {
		w.cancel()
	}
	if w.minimized {
		w.minimized = false
		if w.maximized {
			w.frame = w.limits.Maximized(w.viewport)
		} else {
			w.frame = w.saved
		}
		w.report()
		w.rep.Activate(w.id)
		return
	}

	w.snapshot()
	w.minimized = true
	w.report()
}

// Close asks the manager to remove the window.
func (w *Window) Close() {
	w.Dispose()
	w.rep.Close(w.id)
}

// Dispose tears the window down, dropping any pointer capture it holds.
func (w *Window) Dispose() {
	w.cancel()
}

// cancel abandons a gesture without reporting it.
func (w *Window) cancel() {
	if w.mode != Normal {
		w.frame = w.startFrame
	}
	w.mode = Normal
	w.dir = 0
	w.releaseCapture()
}

func (w *Window) releaseCapture() {
	if w.release != nil {
		w.release()
		w.release = nil
	}
}

// snapshot records the frame as the restore point while the window sits
// plainly on the desktop.
func (w *Window) snapshot() {
	if w.mode == Normal && !w.maximized && !w.minimized {
		w.saved = w.frame
	}
}

func (w *Window) report() {
	w.rep.ReportGeometry(w.id, w.Frame(), w.maximized, w.minimized, w.saved)
}
