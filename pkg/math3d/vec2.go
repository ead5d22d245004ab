package math3d

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float32
}

// V2 creates a new Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Mul returns the component-wise product a * b.
func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float32) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Div returns the scalar division a / s.
// Division by zero follows IEEE rules.
func (a Vec2) Div(s float32) Vec2 {
	return Vec2{a.X / s, a.Y / s}
}

// Dot returns the dot product a · b.
func (a Vec2) Dot(b Vec2) float32 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z component of the 3D cross product of a and b.
func (a Vec2) Cross(b Vec2) float32 {
	return a.X*b.Y - a.Y*b.X
}

// Len returns the length of the vector.
func (a Vec2) Len() float32 {
	return hypot4(a.X, a.Y, 0, 0)
}

// LenSq returns the squared length.
func (a Vec2) LenSq() float32 {
	return a.X*a.X + a.Y*a.Y
}

// Normalize returns the unit vector in the same direction, or the zero vector
// when a has no length.
func (a Vec2) Normalize() Vec2 {
	x, y, _, _, ok := unit4(a.X, a.Y, 0, 0)
	if !ok {
		return Vec2{}
	}
	return Vec2{x, y}
}

// Negate returns the negated vector.
func (a Vec2) Negate() Vec2 {
	return Vec2{-a.X, -a.Y}
}

// Perp returns a rotated 90 degrees counter-clockwise.
func (a Vec2) Perp() Vec2 {
	return Vec2{-a.Y, a.X}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec2) Lerp(b Vec2, t float32) Vec2 {
	return Vec2{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
	}
}

// Distance returns the distance between two points.
func (a Vec2) Distance(b Vec2) float32 {
	return a.Sub(b).Len()
}

// Min returns the component-wise minimum.
func (a Vec2) Min(b Vec2) Vec2 {
	return Vec2{math32.Min(a.X, b.X), math32.Min(a.Y, b.Y)}
}

// Max returns the component-wise maximum.
func (a Vec2) Max(b Vec2) Vec2 {
	return Vec2{math32.Max(a.X, b.X), math32.Max(a.Y, b.Y)}
}

// At returns the component at index i (0=X, 1=Y).
func (a Vec2) At(i int) float32 {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	}
	panic(fmt.Sprintf("math3d: Vec2 index %d out of range", i))
}

// Vec3 extends the vector with the given z.
func (a Vec2) Vec3(z float32) Vec3 {
	return Vec3{a.X, a.Y, z}
}

// ApproxEqual reports whether every component differs by at most eps.
func (a Vec2) ApproxEqual(b Vec2, eps float32) bool {
	return ApproxEqual(a.X, b.X, eps) && ApproxEqual(a.Y, b.Y, eps)
}

func (a Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", a.X, a.Y)
}
