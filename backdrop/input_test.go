package backdrop

import (
	"math"
	"testing"

	"glyphfield/backdrop/geom"
)

func TestInputScrollClamp(t *testing.T) {
	in := NewInput()
	in.ScrollBy(-50)
	if in.Scroll() != 0 {
		t.Fatalf("scroll = %v, want 0", in.Scroll())
	}
	in.ScrollBy(120)
	in.ScrollBy(30)
	if in.Scroll() != 150 {
		t.Fatalf("scroll = %v, want 150", in.Scroll())
	}
	in.SetScroll(math.NaN())
	if in.Scroll() != 0 {
		t.Fatalf("NaN scroll = %v", in.Scroll())
	}
}

func TestInputPointerNormalized(t *testing.T) {
	in := NewInput()
	if got := in.Snapshot().Pointer; got != geom.V2(0.5, 0.5) {
		t.Fatalf("initial pointer = %v", got)
	}
	in.Resize(800, 400, 1)
	in.PointerMove(200, 300)
	if got := in.Snapshot().Pointer; got != geom.V2(0.25, 0.75) {
		t.Fatalf("pointer = %v, want (0.25, 0.75)", got)
	}
	in.PointerMove(-10, 9000)
	if got := in.Snapshot().Pointer; got != geom.V2(0, 1) {
		t.Fatalf("clamped pointer = %v", got)
	}
	in.PointerAt(2, -1)
	if got := in.Snapshot().Pointer; got != geom.V2(1, 0) {
		t.Fatalf("PointerAt = %v", got)
	}
}
