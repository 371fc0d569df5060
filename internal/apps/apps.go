package apps

import (
	"StackWin/pkg/launcher"
	"strings"
	"time"
)

// Key is a key press routed to the focused window.
type Key struct {
	// Name is the key name, e.g. "enter" or "backspace".
	Name string
	// Text is the printable text the key produced, if any.
	Text string
}

// Frame is what an app is asked to draw into.
type Frame struct {
	ID     string
	Data   any
	Width  int
	Height int
	Now    time.Time
}

// App renders a window body.
type App interface {
	Render(f Frame) string
}

// KeyHandler is implemented by apps that accept typing. It returns the new
// data and whether anything changed.
type KeyHandler interface {
	HandleKey(data any, k Key) (any, bool)
}

// Ticker is implemented by apps whose content changes with time.
type Ticker interface {
	Ticks() bool
}

// View draws a window body of the given size.
type View func(width, height int) string

// Content is the resolved content of a window.
type Content struct {
	View View
	// Key offers a key press to the app. Edits are stored through the
	// setData callback the content was resolved with. It reports whether
	// the data changed.
	Key func(k Key) bool
}

// Registry maps window ids to apps.
type Registry struct {
	apps     map[string]App
	launcher []launcher.Descriptor
	fallback App
	now      func() time.Time
}

// NewRegistry builds the registry for the configured launcher entries.
// Unknown ids get a notes app so any window can hold text.
func NewRegistry(descs []launcher.Descriptor, about AboutInfo) *Registry {
	notes := Notes{}
	r := &Registry{
		apps: map[string]App{
			"notes": notes,
			"clock": Clock{},
			"about": About{Info: about},
		},
		launcher: descs,
		fallback: notes,
		now:      time.Now,
	}
	return r
}

// SetClock replaces the time source.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

// Launcher returns the launcher entries.
func (r *Registry) Launcher() []launcher.Descriptor {
	return r.launcher
}

// SetLauncher replaces the launcher entries.
func (r *Registry) SetLauncher(descs []launcher.Descriptor) {
	r.launcher = descs
}

// Lookup returns the app for a window id.
func (r *Registry) Lookup(id string) App {
	if app, ok := r.apps[BaseID(id)]; ok {
		return app
	}
	return r.fallback
}

// Title returns the launcher title for id, falling back to the id itself.
func (r *Registry) Title(id string) string {
	base := BaseID(id)
	for _, d := range r.launcher {
		if d.ID == base {
			return InstanceTitle(d.Title, id)
		}
	}
	if base == "" {
		return id
	}
	return InstanceTitle(strings.ToUpper(base[:1])+base[1:], id)
}

// Content resolves the body of id. It matches wm.ContentFunc.
func (r *Registry) Content(id string, data any, setData func(any)) any {
	app := r.Lookup(id)
	now := r.now()
	return Content{
		View: func(width, height int) string {
			return app.Render(Frame{ID: id, Data: data, Width: width, Height: height, Now: now})
		},
		Key: func(k Key) bool {
			next, changed := r.HandleKey(id, data, k)
			if changed && setData != nil {
				setData(next)
			}
			return changed
		},
	}
}

// HandleKey routes k to the app of id.
func (r *Registry) HandleKey(id string, data any, k Key) (any, bool) {
	if h, ok := r.Lookup(id).(KeyHandler); ok {
		return h.HandleKey(data, k)
	}
	return data, false
}

// Ticks reports whether any of ids shows time-dependent content.
func (r *Registry) Ticks(ids []string) bool {
	for _, id := range ids {
		if t, ok := r.Lookup(id).(Ticker); ok && t.Ticks() {
			return true
		}
	}
	return false
}

// TextOf extracts the text held in window data, for copying.
func TextOf(data any) string {
	switch v := data.(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v[textKey].(string); ok {
			return s
		}
	}
	return ""
}
