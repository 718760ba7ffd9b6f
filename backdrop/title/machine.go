// Package title is the typed-text headline that sits above the backdrop.
//
// It is a small phase machine with its own clock: type the first word, hold briefly,
// delete it, pause, type the final word, hold, delete, and start over. A blinking
// cursor follows the text.
package title

import (
	"math/rand/v2"
)

// Phase is the current step of the typing loop.
type Phase uint8

const (
	PhaseInitial Phase = iota
	PhaseTyping1
	PhaseWaiting1
	PhaseDeleting1
	PhasePausing
	PhaseTyping2
	PhaseWaiting2
	PhaseDeleting2
)

var phaseNames = [...]string{
	PhaseInitial:   "initial",
	PhaseTyping1:   "typing1",
	PhaseWaiting1:  "waiting1",
	PhaseDeleting1: "deleting1",
	PhasePausing:   "pausing",
	PhaseTyping2:   "typing2",
	PhaseWaiting2:  "waiting2",
	PhaseDeleting2: "deleting2",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Timing holds the delays of the loop in milliseconds.
type Timing struct {
	InitialWait  float64
	Type         float64
	TypeJitter   [2]float64 // added to Type, uniform in [lo, hi)
	Delete       float64
	DeleteJitter float64 // added to Delete, uniform in [0, DeleteJitter)
	Waiting1     float64
	Waiting2     float64
	Pausing      float64
	Punctuation  float64 // extra hold after ',', '.', '!', '?' and ' '
	Blink        float64
}

// DefaultTiming mirrors a human typist: quick keys, slower holds.
var DefaultTiming = Timing{
	InitialWait:  1500,
	Type:         80,
	TypeJitter:   [2]float64{-50, 100},
	Delete:       60,
	DeleteJitter: 30,
	Waiting1:     200,
	Waiting2:     3000,
	Pausing:      400,
	Punctuation:  150,
	Blink:        530,
}

// Machine is the typing state. It is driven by Advance and is not safe for concurrent use.
type Machine struct {
	first  []rune
	final  []rune
	timing Timing
	rng    *rand.Rand

	text   []rune
	phase  Phase
	cursor bool

	last      float64 // reference time of the current phase step
	wait      float64 // delay that must elapse after last
	lastBlink float64
	started   bool
}

// New creates a machine typing first, then final. rng may be nil for a fixed-seed source.
func New(first, final string, timing Timing, rng *rand.Rand) *Machine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &Machine{
		first:  []rune(first),
		final:  []rune(final),
		timing: timing,
		rng:    rng,
		cursor: true,
	}
}

func (m *Machine) Text() string        { return string(m.text) }
func (m *Machine) Phase() Phase        { return m.phase }
func (m *Machine) CursorVisible() bool { return m.cursor }

// Advance moves the machine to time now (milliseconds on the machine's own clock).
// At most one character is typed or deleted per call.
func (m *Machine) Advance(now float64) {
	if !m.started {
		m.started = true
		m.last = now
		m.lastBlink = now
		m.wait = m.timing.InitialWait
	}
	if m.timing.Blink > 0 && now-m.lastBlink >= m.timing.Blink {
		m.cursor = !m.cursor
		m.lastBlink = now
	}
	if now-m.last <= m.wait {
		return
	}

	switch m.phase {
	case PhaseInitial:
		m.enter(PhaseTyping1, now)
	case PhaseTyping1:
		m.typeNext(m.first, PhaseWaiting1, now)
	case PhaseTyping2:
		m.typeNext(m.final, PhaseWaiting2, now)
	case PhaseDeleting1, PhaseDeleting2:
		if len(m.text) > 0 {
			m.text = m.text[:len(m.text)-1]
			m.schedule(now, m.deleteDelay())
			return
		}
		if m.phase == PhaseDeleting1 {
			m.enter(PhasePausing, now)
		} else {
			m.enter(PhaseTyping1, now)
		}
	case PhaseWaiting1:
		m.enter(PhaseDeleting1, now)
	case PhaseWaiting2:
		m.enter(PhaseDeleting2, now)
	case PhasePausing:
		m.enter(PhaseTyping2, now)
	}
}

func (m *Machine) typeNext(target []rune, next Phase, now float64) {
	if len(m.text) >= len(target) {
		m.enter(next, now)
		return
	}
	r := target[len(m.text)]
	m.text = append(m.text, r)
	m.schedule(now+m.charDelay(r), m.typeDelay())
}

// enter switches phase, shows the cursor and arms the phase's first delay.
func (m *Machine) enter(p Phase, now float64) {
	m.phase = p
	m.cursor = true
	m.lastBlink = now
	switch p {
	case PhaseTyping1, PhaseTyping2:
		m.schedule(now, m.typeDelay())
	case PhaseDeleting1, PhaseDeleting2:
		m.schedule(now, m.deleteDelay())
	case PhaseWaiting1:
		m.schedule(now, m.timing.Waiting1)
	case PhaseWaiting2:
		m.schedule(now, m.timing.Waiting2)
	case PhasePausing:
		m.schedule(now, m.timing.Pausing)
	default:
		m.schedule(now, m.timing.InitialWait)
	}
}

func (m *Machine) schedule(at, wait float64) {
	m.last = at
	m.wait = wait
}

func (m *Machine) typeDelay() float64 {
	lo, hi := m.timing.TypeJitter[0], m.timing.TypeJitter[1]
	return m.timing.Type + lo + m.rng.Float64()*(hi-lo)
}

func (m *Machine) deleteDelay() float64 {
	return m.timing.Delete + m.rng.Float64()*m.timing.DeleteJitter
}

func (m *Machine) charDelay(r rune) float64 {
	switch r {
	case ',', '.', '!', '?', ' ':
		return m.timing.Punctuation
	}
	return 0
}
