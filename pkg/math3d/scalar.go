package math3d

import "github.com/chewxy/math32"

// Shared constants.
const (
	Pi     = float32(3.14159265358979323846264338327950288419716939937510582097494459)
	TwoPi  = 2 * Pi
	HalfPi = Pi / 2

	// Epsilon is the default tolerance for approximate comparisons and for
	// detecting degenerate (zero-length) inputs.
	Epsilon float32 = 1e-6
)

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * (Pi / 180)
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * (180 / Pi)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

// hypot4 returns sqrt(x²+y²+z²+w²). Components are scaled by the largest
// magnitude first so finite inputs neither overflow nor underflow.
func hypot4(x, y, z, w float32) float32 {
	m := max(math32.Abs(x), math32.Abs(y), math32.Abs(z), math32.Abs(w))
	if m == 0 || math32.IsInf(m, 0) || math32.IsNaN(m) {
		return m
	}
	x, y, z, w = x/m, y/m, z/m, w/m
	return m * math32.Sqrt(x*x+y*y+z*z+w*w)
}

// unit4 scales (x, y, z, w) to length 1. ok is false for a zero length or a
// non-finite component.
func unit4(x, y, z, w float32) (ux, uy, uz, uw float32, ok bool) {
	m := max(math32.Abs(x), math32.Abs(y), math32.Abs(z), math32.Abs(w))
	if m == 0 || math32.IsInf(m, 0) || math32.IsNaN(m) {
		return 0, 0, 0, 0, false
	}
	x, y, z, w = x/m, y/m, z/m, w/m
	l := math32.Sqrt(x*x + y*y + z*z + w*w)
	return x / l, y / l, z / l, w / l, true
}
