package title

import (
	"math"
	"math/rand/v2"
	"testing"
)

func run(m *Machine, from, to, step float64, each func(now float64)) {
	for now := from; now <= to; now += step {
		m.Advance(now)
		if each != nil {
			each(now)
		}
	}
}

func TestMachineCycle(t *testing.T) {
	m := New("GLYPH", "GLYPHFIELD", DefaultTiming, rand.New(rand.NewPCG(3, 4)))

	var phases []Phase
	sawFirst, sawFinal := false, false
	run(m, 0, 30000, 10, func(float64) {
		if len(phases) == 0 || phases[len(phases)-1] != m.Phase() {
			phases = append(phases, m.Phase())
		}
		switch m.Text() {
		case "GLYPH":
			sawFirst = true
		case "GLYPHFIELD":
			sawFinal = true
		}
	})

	want := []Phase{
		PhaseInitial, PhaseTyping1, PhaseWaiting1, PhaseDeleting1, PhasePausing,
		PhaseTyping2, PhaseWaiting2, PhaseDeleting2, PhaseTyping1,
	}
	if len(phases) < len(want) {
		t.Fatalf("phases=%v, want prefix %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("phase %d = %v, want %v (all: %v)", i, phases[i], want[i], phases)
		}
	}
	if !sawFirst || !sawFinal {
		t.Fatalf("texts not reached: first=%v final=%v", sawFirst, sawFinal)
	}
}

func TestMachineInitialWait(t *testing.T) {
	m := New("AB", "ABC", DefaultTiming, nil)
	run(m, 0, 1500, 100, nil)
	if m.Phase() != PhaseInitial || m.Text() != "" {
		t.Fatalf("left initial early: phase=%v text=%q", m.Phase(), m.Text())
	}
	m.Advance(1600)
	if m.Phase() != PhaseTyping1 {
		t.Fatalf("phase=%v want typing1", m.Phase())
	}
	if !m.CursorVisible() {
		t.Fatalf("cursor hidden on phase change")
	}
}

func TestMachineOneCharPerAdvance(t *testing.T) {
	m := New("HELLO", "WORLD", DefaultTiming, nil)
	m.Advance(0)
	m.Advance(2000) // initial → typing1
	m.Advance(5000)
	if got := m.Text(); got != "H" {
		t.Fatalf("text=%q want one character", got)
	}
}

func TestPunctuationHolds(t *testing.T) {
	tm := DefaultTiming
	tm.TypeJitter = [2]float64{0, 0}
	m := New("A B", "C", tm, nil)
	m.Advance(0)
	m.Advance(1501) // typing1, next key after 80ms
	m.Advance(1582)
	m.Advance(1663)
	if m.Text() != "A " {
		t.Fatalf("text=%q want %q", m.Text(), "A ")
	}
	// Space adds 150ms on top of the 80ms key delay.
	m.Advance(1663 + 100)
	if m.Text() != "A " {
		t.Fatalf("typed through punctuation hold: %q", m.Text())
	}
	m.Advance(1663 + 231)
	if m.Text() != "A B" {
		t.Fatalf("text=%q want %q", m.Text(), "A B")
	}
}

func TestCursorBlinks(t *testing.T) {
	m := New("X", "Y", DefaultTiming, nil)
	m.Advance(0)
	if !m.CursorVisible() {
		t.Fatalf("cursor should start visible")
	}
	m.Advance(530)
	if m.CursorVisible() {
		t.Fatalf("cursor should toggle after 530ms")
	}
	m.Advance(1060)
	if !m.CursorVisible() {
		t.Fatalf("cursor should toggle back")
	}
}

func TestGlowStrengthRange(t *testing.T) {
	for now := 0.0; now < 10000; now += 37 {
		g := GlowStrength(now)
		if g < 0 || g > 1 {
			t.Fatalf("glow(%v)=%v", now, g)
		}
	}
	if math.Abs(GlowStrength(2000)-1) > 1e-12 || GlowStrength(0) != 0 {
		t.Fatalf("glow endpoints: %v %v", GlowStrength(0), GlowStrength(2000))
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseDeleting2.String() != "deleting2" || Phase(99).String() != "unknown" {
		t.Fatalf("phase names")
	}
}
