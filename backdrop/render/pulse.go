package render

import (
	"math"

	"glyphfield/backdrop/geom"
)

const (
	pulseBaseSpeed  = 0.0002
	pulseSpeedRange = 0.0003
	pulseScrollRate = 0.0002
)

// Hash maps a directed connection to a reproducible value in [0, 1).
func Hash(i, j int) float64 {
	return geom.Frac(math.Sin(float64(i)*12.9898+float64(j)*78.233) * 43758.5453)
}

// PulseSpeed is the progress gained per millisecond by the pulse on connection i → j.
func PulseSpeed(i, j int) float64 {
	return pulseBaseSpeed + pulseSpeedRange*geom.Frac(math.Cos(float64(i)*4.898+float64(j)*7.23)*23421.631)
}

// PulsePeriod is the time in milliseconds for one full traversal of i → j.
func PulsePeriod(i, j int) float64 { return 1 / PulseSpeed(i, j) }

// PulseProgress is the pulse position along i → j, in [0, 1).
func PulseProgress(i, j int, t, scroll float64) float64 {
	return geom.Frac(t*PulseSpeed(i, j) + scroll*pulseScrollRate + Hash(i, j))
}
