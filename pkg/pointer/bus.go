// Package pointer provides scoped capture of global pointer movement.
//
// A window that starts a drag or resize acquires the bus and receives every
// move and release until it lets go. Nothing stays registered between
// gestures, so a window torn down mid-gesture only has to call its release.
package pointer

import "StackWin/pkg/geometry"

// Listener receives captured pointer events.
type Listener interface {
	PointerMove(p geometry.Point)
	PointerUp(p geometry.Point)
}

// Bus fans pointer events out to the listeners holding a capture.
// It is not safe for concurrent use; it lives on the UI loop.
type Bus struct {
	next      int
	listeners map[int]Listener
	order     []int
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]Listener)}
}

// Acquire registers l until the returned release func is called.
// Release is idempotent.
func (b *Bus) Acquire(l Listener) (release func()) {
	id := b.next
	b.next++
	b.listeners[id] = l
	b.order = append(b.order, id)

	return func() {
		if _, ok := b.listeners[id]; !ok {
			return
		}
		delete(b.listeners, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Len reports how many captures are live.
func (b *Bus) Len() int {
	return len(b.listeners)
}

// Active reports whether any listener holds a capture.
func (b *Bus) Active() bool {
	return len(b.listeners) > 0
}

// DispatchMove delivers a move to every capture.
func (b *Bus) DispatchMove(p geometry.Point) {
	for _, l := range b.snapshot() {
		l.PointerMove(p)
	}
}

// DispatchUp delivers a release to every capture. Listeners normally
// release themselves in response.
func (b *Bus) DispatchUp(p geometry.Point) {
	for _, l := range b.snapshot() {
		l.PointerUp(p)
	}
}

// snapshot copies the listeners so handlers may release during dispatch.
func (b *Bus) snapshot() []Listener {
	out := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.listeners[id])
	}
	return out
}
