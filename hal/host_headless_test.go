package hal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"glyphfield/backdrop"
)

type fakeScene struct {
	steps   int
	skip    int // skip the first N steps
	times   []float64
	scroll  float64
	nx, ny  float64
	w, h, r float64
}

func (s *fakeScene) Step(t float64) bool {
	s.steps++
	s.times = append(s.times, t)
	return s.steps > s.skip
}
func (s *fakeScene) Snapshot(dst []byte) ([]byte, int, int) { return dst[:0], 0, 0 }
func (s *fakeScene) SavePNG(path string) error              { return os.WriteFile(path, []byte("png"), 0o644) }
func (s *fakeScene) SetScroll(px float64)                   { s.scroll = px }
func (s *fakeScene) ScrollBy(dy float64)                    { s.scroll += dy }
func (s *fakeScene) PointerMove(x, y float64)               {}
func (s *fakeScene) PointerAt(nx, ny float64)               { s.nx, s.ny = nx, ny }
func (s *fakeScene) Resize(w, h, dpr float64)               { s.w, s.h, s.r = w, h, dpr }

func TestRunHeadlessSavesEveryN(t *testing.T) {
	dir := t.TempDir()
	sc := &fakeScene{skip: 1}
	res, err := RunHeadless(context.Background(), sc, HeadlessConfig{
		Width: 320, Height: 200, Hz: 1000, Frames: 9, Every: 3, Out: dir,
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if res.Frames != 9 || sc.steps != 10 {
		t.Fatalf("frames=%d steps=%d", res.Frames, sc.steps)
	}
	if sc.w != 320 || sc.h != 200 || sc.r != 1 {
		t.Fatalf("resize = %v x %v @ %v", sc.w, sc.h, sc.r)
	}
	files, _ := filepath.Glob(filepath.Join(dir, "frame-*.png"))
	if len(files) != 3 || len(res.Saved) != 3 {
		t.Fatalf("saved %d files (%v)", len(files), res.Saved)
	}
	if filepath.Base(res.Saved[0]) != "frame-00003.png" {
		t.Fatalf("first file = %s", res.Saved[0])
	}
	for i := 1; i < len(sc.times); i++ {
		if sc.times[i] != sc.times[i-1]+1 {
			t.Fatalf("frame times not fixed-step: %v", sc.times)
		}
	}
	if sc.scroll <= 0 {
		t.Fatalf("scripted scroll did not move: %v", sc.scroll)
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	res, err := RunHeadless(ctx, &fakeScene{}, HeadlessConfig{Width: 100, Height: 100, Hz: 200})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if res.Dir != "" || len(res.Saved) != 0 {
		t.Fatalf("unexpected output: %+v", res)
	}
}

func TestRunHeadlessRejectsSize(t *testing.T) {
	if _, err := RunHeadless(context.Background(), &fakeScene{}, HeadlessConfig{Width: 0, Height: 10}); err == nil {
		t.Fatalf("zero width accepted")
	}
}

func TestRunHeadlessScene(t *testing.T) {
	sc, err := backdrop.NewScene(backdrop.Config{Seed: 11})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	defer sc.Close()

	dir := t.TempDir()
	res, err := RunHeadless(context.Background(), sc, HeadlessConfig{
		Width: 200, Height: 120, Hz: 500, Frames: 4, Every: 2, Out: dir,
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if len(res.Saved) != 2 {
		t.Fatalf("saved = %v", res.Saved)
	}
	for _, p := range res.Saved {
		if st, err := os.Stat(p); err != nil || st.Size() == 0 {
			t.Fatalf("png %s: %v", p, err)
		}
	}
}

func TestRunHeadlessCheckStops(t *testing.T) {
	sc := &fakeScene{}
	checks := 0
	errBroken := errors.New("broken frame")
	res, err := RunHeadless(context.Background(), sc, HeadlessConfig{
		Width: 100, Height: 100, Hz: 1000, Frames: 10,
		Check: func() error {
			checks++
			if checks == 3 {
				return errBroken
			}
			return nil
		},
	})
	if !errors.Is(err, errBroken) {
		t.Fatalf("err = %v, want check error", err)
	}
	if res.Frames != 3 || sc.steps != 3 {
		t.Fatalf("frames=%d steps=%d, want 3", res.Frames, sc.steps)
	}
}
