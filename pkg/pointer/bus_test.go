package pointer

import (
	"StackWin/pkg/geometry"
	"testing"
)

type recorder struct {
	moves   []geometry.Point
	ups     int
	release func()
}

func (r *recorder) PointerMove(p geometry.Point) { r.moves = append(r.moves, p) }

func (r *recorder) PointerUp(p geometry.Point) {
	r.ups++
	if r.release != nil {
		r.release()
	}
}

func TestAcquireRelease(t *testing.T) {
	b := NewBus()
	r := &recorder{}
	release := b.Acquire(r)

	b.DispatchMove(geometry.Point{X: 1, Y: 2})
	if len(r.moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(r.moves))
	}

	release()
	release()
	if b.Len() != 0 {
		t.Errorf("expected no captures after release, got %d", b.Len())
	}

	b.DispatchMove(geometry.Point{X: 3, Y: 4})
	if len(r.moves) != 1 {
		t.Errorf("released listener still received moves: %d", len(r.moves))
	}
}

func TestReleaseDuringDispatch(t *testing.T) {
	b := NewBus()
	first := &recorder{}
	second := &recorder{}
	first.release = b.Acquire(first)
	second.release = b.Acquire(second)

	b.DispatchUp(geometry.Point{})

	if first.ups != 1 || second.ups != 1 {
		t.Errorf("each listener should see one release, got %d and %d", first.ups, second.ups)
	}
	if b.Active() {
		t.Errorf("bus still holds %d captures", b.Len())
	}
}

func TestIndependentCaptures(t *testing.T) {
	b := NewBus()
	first, second := &recorder{}, &recorder{}
	releaseFirst := b.Acquire(first)
	b.Acquire(second)

	releaseFirst()
	b.DispatchMove(geometry.Point{X: 5, Y: 5})

	if len(first.moves) != 0 || len(second.moves) != 1 {
		t.Errorf("moves after releasing the first capture: %d and %d", len(first.moves), len(second.moves))
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d; want 1", b.Len())
	}
}
