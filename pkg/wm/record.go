package wm

import "StackWin/pkg/geometry"

// Record is the manager's durable description of one window.
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Active      bool   `json:"active" yaml:"active"`
	ZIndex      int    `json:"zIndex" yaml:"zIndex"`
	Order       int    `json:"order" yaml:"order"`
	IsMinimized bool   `json:"isMinimized" yaml:"isMinimized"`

	X           int  `json:"x" yaml:"x"`
	Y           int  `json:"y" yaml:"y"`
	Width       int  `json:"width" yaml:"width"`
	Height      int  `json:"height" yaml:"height"`
	IsMaximized bool `json:"isMaximized" yaml:"isMaximized"`

	// SavedGeometry is the restore point used when leaving the maximized
	// or minimized state.
	SavedGeometry *geometry.Rect `json:"savedGeometry,omitempty" yaml:"savedGeometry,omitempty"`
}

// Rect returns the window frame.
func (r Record) Rect() geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Saved returns the restore point, or the current frame if none is stored.
func (r Record) Saved() geometry.Rect {
	if r.SavedGeometry == nil {
		return r.Rect()
	}
	return *r.SavedGeometry
}

func (r *Record) setRect(rect geometry.Rect) {
	r.X, r.Y, r.Width, r.Height = rect.X, rect.Y, rect.Width, rect.Height
}

func (r *Record) setSaved(rect geometry.Rect) {
	r.SavedGeometry = &rect
}

// clone returns a copy that shares no pointers with r.
func (r Record) clone() Record {
	if r.SavedGeometry != nil {
		saved := *r.SavedGeometry
		r.SavedGeometry = &saved
	}
	return r
}

func cloneRecords(in []Record) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = r.clone()
	}
	return out
}
