package geom

import "math"

// Vec2 is a 2D vector in logical pixels (or normalized units, depending on context).
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2         { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2         { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float64) Vec2      { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64            { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64     { return v.Sub(o).Len() }
func (v Vec2) Angle() float64          { return math.Atan2(v.Y, v.X) }
func (v Vec2) Finite() bool            { return finite(v.X) && finite(v.Y) }
func (v Vec2) Scale(x, y float64) Vec2 { return Vec2{v.X * x, v.Y * y} }

// Polar builds a vector from a radius and an angle in radians.
func Polar(r, angle float64) Vec2 {
	return Vec2{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
}

// Rotate turns v around the origin by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	return Polar(v.Len(), v.Angle()+angle)
}

// Lerp interpolates between a and b; t=0 yields a, t=1 yields b.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Mean returns the arithmetic mean of pts, or the zero vector for an empty slice.
func Mean(pts []Vec2) Vec2 {
	if len(pts) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(pts)))
}

func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Frac returns the fractional part of v in [0, 1).
func Frac(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
