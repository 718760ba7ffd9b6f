package hal

import "time"

// Clock reports milliseconds since it was started.
type Clock struct {
	now   func() time.Time
	start time.Time
}

func NewClock() *Clock { return newClockAt(time.Now) }

func newClockAt(now func() time.Time) *Clock {
	return &Clock{now: now, start: now()}
}

// Millis is the elapsed time in milliseconds. It is usable as a title overlay clock.
func (c *Clock) Millis() float64 {
	return float64(c.now().Sub(c.start)) / float64(time.Millisecond)
}

// frameClock advances in fixed steps regardless of wall time, so offscreen runs
// produce the same frames on every machine.
type frameClock struct {
	step float64 // ms
	n    uint64
}

func newFrameClock(hz int) *frameClock {
	if hz <= 0 {
		hz = 60
	}
	return &frameClock{step: 1000 / float64(hz)}
}

// next returns the time of the next frame and advances.
func (c *frameClock) next() float64 {
	c.n++
	return float64(c.n) * c.step
}

// Millis is the time of the last frame returned by next.
func (c *frameClock) Millis() float64 { return float64(c.n) * c.step }
