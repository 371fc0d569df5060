// Package geometry holds the pure placement math for stacked windows:
// default placement, the maximized rectangle, drag deltas and edge resizing.
// Nothing here keeps state; callers pass in the viewport they are working with.
package geometry

import "math"

// Point is a pointer position in viewport coordinates.
type Point struct {
	X int
	Y int
}

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a viewport or window extent.
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether the size has not been measured yet.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is a window frame. X and Y are the top-left corner.
type Rect struct {
	X      int `json:"x" yaml:"x" toml:"x"`
	Y      int `json:"y" yaml:"y" toml:"y"`
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// IsZero reports whether r carries no size.
func (r Rect) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Limits are the tunables of the placement rules. The same rules serve a
// pixel canvas and a terminal grid; only the numbers differ.
type Limits struct {
	MinWidth  int
	MinHeight int
	// Margin is the gap kept around a maximized window.
	Margin int
	// Cascade is the per-window offset applied to default placements.
	Cascade     int
	MaxWidth    int
	MaxHeight   int
	WidthRatio  float64
	HeightRatio float64
	// Fallback is the size used when no viewport has been measured.
	Fallback Size
}

// PixelLimits returns the limits for a pixel canvas.
func PixelLimits() Limits {
	return Limits{
		MinWidth:    300,
		MinHeight:   200,
		Margin:      20,
		Cascade:     20,
		MaxWidth:    1200,
		MaxHeight:   800,
		WidthRatio:  0.8,
		HeightRatio: 0.7,
		Fallback:    Size{Width: 800, Height: 600},
	}
}

// CellLimits returns the limits for a terminal grid measured in cells.
func CellLimits() Limits {
	return Limits{
		MinWidth:    24,
		MinHeight:   6,
		Margin:      1,
		Cascade:     2,
		MaxWidth:    120,
		MaxHeight:   40,
		WidthRatio:  0.8,
		HeightRatio: 0.7,
		Fallback:    Size{Width: 60, Height: 16},
	}
}

// ClampSize raises the dimensions of r to the minimums.
func (l Limits) ClampSize(r Rect) Rect {
	r.Width = max(r.Width, l.MinWidth)
	r.Height = max(r.Height, l.MinHeight)
	return r
}

// Initial computes the default frame for a newly opened window. openCount is
// the number of windows already open and drives the cascade offset, which
// also applies to the fallback frame used before a viewport is known.
func (l Limits) Initial(viewport Size, openCount int) Rect {
	offset := openCount * l.Cascade
	if viewport.IsZero() {
		return l.ClampSize(Rect{X: offset, Y: offset, Width: l.Fallback.Width, Height: l.Fallback.Height})
	}

	w := min(scale(viewport.Width, l.WidthRatio), l.MaxWidth)
	h := min(scale(viewport.Height, l.HeightRatio), l.MaxHeight)

	return l.ClampSize(Rect{
		X:      (viewport.Width-w)/2 + offset,
		Y:      (viewport.Height-h)/2 + offset,
		Width:  w,
		Height: h,
	})
}

// Maximized returns the frame of a maximized window in the given viewport.
func (l Limits) Maximized(viewport Size) Rect {
	return l.ClampSize(Rect{
		X:      l.Margin,
		Y:      l.Margin,
		Width:  viewport.Width - 2*l.Margin,
		Height: viewport.Height - 2*l.Margin,
	})
}

// Drag moves anchor by delta. Positions are not clamped.
func Drag(anchor Rect, delta Point) Rect {
	anchor.X += delta.X
	anchor.Y += delta.Y
	return anchor
}

// Resize applies a pointer delta to the edges named by dir. West and north
// edges move the origin so the opposite edge stays put; the resulting origin
// is kept inside the viewport.
func (l Limits) Resize(anchor Rect, dir Direction, delta Point, viewport Size) Rect {
	r := anchor

	if dir.Has(East) {
		r.Width = max(l.MinWidth, anchor.Width+delta.X)
	}
	if dir.Has(West) {
		r.Width = max(l.MinWidth, anchor.Width-delta.X)
		if r.Width == l.MinWidth {
			r.X = anchor.X + (anchor.Width - l.MinWidth)
		} else {
			r.X = anchor.X + delta.X
		}
	}
	if dir.Has(South) {
		r.Height = max(l.MinHeight, anchor.Height+delta.Y)
	}
	if dir.Has(North) {
		r.Height = max(l.MinHeight, anchor.Height-delta.Y)
		if r.Height == l.MinHeight {
			r.Y = anchor.Y + (anchor.Height - l.MinHeight)
		} else {
			r.Y = anchor.Y + delta.Y
		}
	}

	r.X = max(0, min(r.X, viewport.Width-r.Width))
	r.Y = max(0, min(r.Y, viewport.Height-r.Height))
	return r
}

func scale(n int, ratio float64) int {
	return int(math.Floor(float64(n) * ratio))
}
