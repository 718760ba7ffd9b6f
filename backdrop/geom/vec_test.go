package geom

import (
	"math"
	"testing"
)

func TestRotateKeepsLength(t *testing.T) {
	v := V2(3, 4)
	r := v.Rotate(1.1)
	if math.Abs(r.Len()-5) > 1e-9 {
		t.Fatalf("len=%v, want 5", r.Len())
	}
	back := r.Rotate(-1.1)
	if back.Dist(v) > 1e-9 {
		t.Fatalf("rotate round trip: got %v want %v", back, v)
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != (Vec2{}) {
		t.Fatalf("empty mean: %v", got)
	}
	got := Mean([]Vec2{V2(0, 0), V2(2, 0), V2(2, 4), V2(0, 4)})
	if got != V2(1, 2) {
		t.Fatalf("mean=%v", got)
	}
}

func TestFracRange(t *testing.T) {
	for _, v := range []float64{-1e-17, -0.25, 0, 0.5, 1, 7.75, -3.5} {
		f := Frac(v)
		if f < 0 || f >= 1 {
			t.Fatalf("Frac(%v)=%v out of [0,1)", v, f)
		}
	}
	if Frac(-0.25) != 0.75 {
		t.Fatalf("Frac(-0.25)=%v", Frac(-0.25))
	}
}

func TestViewportClasses(t *testing.T) {
	land := NewViewport(1024, 768, 1)
	if land.Portrait() || land.Narrow() {
		t.Fatalf("1024x768 should be landscape desktop")
	}
	phone := NewViewport(375, 812, 3)
	if !phone.Portrait() || !phone.Narrow() {
		t.Fatalf("375x812 should be portrait narrow")
	}
	w, h := phone.DeviceSize()
	if w != 1125 || h != 2436 {
		t.Fatalf("device size=%dx%d", w, h)
	}
}

func TestViewportDPR(t *testing.T) {
	for _, c := range []struct {
		dpr  float64
		w, h int
	}{
		{0.5, 50, 50}, {0.75, 75, 75}, {1, 100, 100}, {2.5, 250, 250}, {3.5, 350, 350}, {4, 400, 400},
	} {
		v := NewViewport(100, 100, c.dpr)
		if !v.Valid() || v.DPR != c.dpr {
			t.Fatalf("dpr %v: valid=%v dpr=%v", c.dpr, v.Valid(), v.DPR)
		}
		if w, h := v.DeviceSize(); w != c.w || h != c.h {
			t.Fatalf("dpr %v: device %dx%d, want %dx%d", c.dpr, w, h, c.w, c.h)
		}
	}
	for _, dpr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if NewViewport(100, 100, dpr).Valid() {
			t.Fatalf("dpr %v accepted", dpr)
		}
	}
	if (Viewport{}).Valid() {
		t.Fatalf("zero viewport must be invalid")
	}
}

func TestNormalizeClamps(t *testing.T) {
	v := NewViewport(200, 100, 1)
	got := v.Normalize(V2(300, -5))
	if got != V2(1, 0) {
		t.Fatalf("normalize=%v", got)
	}
	if d := v.Denormalize(V2(0.5, 0.5)); d != v.Center() {
		t.Fatalf("denormalize=%v", d)
	}
}
