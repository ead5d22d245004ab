package math3d

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
//
// Products follow the Hamilton convention: a.Mul(b) rotates by b first and
// then by a, matching the order of Mat4.Mul.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity quaternion (0, 0, 0, 1).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion rotating angle radians around axis.
// A zero axis yields the identity.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	axis, ok := axis.TryNormalize()
	if !ok {
		return QuatIdentity()
	}
	half := angle / 2
	s := math32.Sin(half)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(half),
	}
}

// QuatFromEuler builds a rotation from pitch (X), yaw (Y) and roll (Z) angles
// in radians. Roll is applied first, then pitch, then yaw.
func QuatFromEuler(pitch, yaw, roll float32) Quat {
	qx := QuatFromAxisAngle(Right(), pitch)
	qy := QuatFromAxisAngle(Up(), yaw)
	qz := QuatFromAxisAngle(V3(0, 0, 1), roll)
	return qy.Mul(qx).Mul(qz)
}

// QuatFromMat3 extracts the rotation of a pure rotation matrix.
func QuatFromMat3(m Mat3) Quat {
	trace := m[0] + m[4] + m[8]
	var q Quat
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q = Quat{
			X: (m[5] - m[7]) / s,
			Y: (m[6] - m[2]) / s,
			Z: (m[1] - m[3]) / s,
			W: s / 4,
		}
	case m[0] > m[4] && m[0] > m[8]:
		s := math32.Sqrt(1+m[0]-m[4]-m[8]) * 2
		q = Quat{
			X: s / 4,
			Y: (m[3] + m[1]) / s,
			Z: (m[6] + m[2]) / s,
			W: (m[5] - m[7]) / s,
		}
	case m[4] > m[8]:
		s := math32.Sqrt(1+m[4]-m[0]-m[8]) * 2
		q = Quat{
			X: (m[3] + m[1]) / s,
			Y: s / 4,
			Z: (m[7] + m[5]) / s,
			W: (m[6] - m[2]) / s,
		}
	default:
		s := math32.Sqrt(1+m[8]-m[0]-m[4]) * 2
		q = Quat{
			X: (m[6] + m[2]) / s,
			Y: (m[7] + m[5]) / s,
			Z: s / 4,
			W: (m[1] - m[3]) / s,
		}
	}
	return q.Normalize()
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Conjugate returns (-x, -y, -z, w).
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Negate returns -q, which encodes the same rotation as q.
func (q Quat) Negate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, -q.W}
}

// Inverse returns the multiplicative inverse. The zero quaternion has none and
// yields the identity.
func (q Quat) Inverse() Quat {
	l := q.Len()
	if l == 0 || math32.IsInf(l, 0) || math32.IsNaN(l) {
		return QuatIdentity()
	}
	c := q.Normalize().Conjugate()
	return Quat{c.X / l, c.Y / l, c.Z / l, c.W / l}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Len returns the magnitude.
func (q Quat) Len() float32 {
	return hypot4(q.X, q.Y, q.Z, q.W)
}

// LenSq returns the squared magnitude.
func (q Quat) LenSq() float32 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

// Normalize returns a unit quaternion. The zero quaternion, and one with a
// non-finite component, becomes the identity.
func (q Quat) Normalize() Quat {
	x, y, z, w, ok := unit4(q.X, q.Y, q.Z, q.W)
	if !ok {
		return QuatIdentity()
	}
	return Quat{x, y, z, w}
}

// IsUnit reports whether q has length 1 within eps.
func (q Quat) IsUnit(eps float32) bool {
	return ApproxEqual(q.LenSq(), 1, eps)
}

// Rotate applies the rotation to v.
//
// A non-unit q is renormalized first, so only its direction matters. The zero
// quaternion leaves v unchanged.
func (q Quat) Rotate(v Vec3) Vec3 {
	l := q.Len()
	if l == 0 {
		return v
	}
	if !ApproxEqual(l, 1, Epsilon) {
		q = q.Normalize()
	}

	// v' = v + w*t + u × t, t = 2(u × v)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Rotate applies the rotation q to v.
func Rotate(q Quat, v Vec3) Vec3 {
	return q.Rotate(v)
}

// Slerp performs spherical linear interpolation between two quaternions.
// t should be in range [0, 1].
func (q Quat) Slerp(other Quat, t float32) Quat {
	dot := q.Dot(other)

	// Take the shorter path.
	if dot < 0 {
		other = Quat{X: -other.X, Y: -other.Y, Z: -other.Z, W: -other.W}
		dot = -dot
	}

	// Nearly parallel: lerp avoids dividing by sin(0).
	if dot > 0.9995 {
		return Quat{
			X: q.X + t*(other.X-q.X),
			Y: q.Y + t*(other.Y-q.Y),
			Z: q.Z + t*(other.Z-q.Z),
			W: q.W + t*(other.W-q.W),
		}.Normalize()
	}

	theta0 := math32.Acos(dot)
	theta := theta0 * t
	sinTheta := math32.Sin(theta)
	sinTheta0 := math32.Sin(theta0)

	s0 := math32.Cos(theta) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return Quat{
		X: q.X*s0 + other.X*s1,
		Y: q.Y*s0 + other.Y*s1,
		Z: q.Z*s0 + other.Z*s1,
		W: q.W*s0 + other.W*s1,
	}
}

// AxisAngle returns the rotation axis and angle in radians. The identity
// reports the X axis and a zero angle.
func (q Quat) AxisAngle() (Vec3, float32) {
	q = q.Normalize()
	w := Clamp(q.W, -1, 1)
	angle := 2 * math32.Acos(w)
	s := math32.Sqrt(1 - w*w)
	if s < Epsilon {
		return Right(), 0
	}
	return Vec3{q.X / s, q.Y / s, q.Z / s}, angle
}

// Mat3 converts the quaternion to a 3x3 rotation matrix.
func (q Quat) Mat3() Mat3 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw),
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw),
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy),
	}
}

// Mat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) Mat4() Mat4 {
	return q.Mat3().Mat4()
}

// ApproxEqual compares components within eps. q and -q describe the same
// rotation but are not considered equal here.
func (q Quat) ApproxEqual(other Quat, eps float32) bool {
	return ApproxEqual(q.X, other.X, eps) &&
		ApproxEqual(q.Y, other.Y, eps) &&
		ApproxEqual(q.Z, other.Z, eps) &&
		ApproxEqual(q.W, other.W, eps)
}

func (q Quat) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", q.X, q.Y, q.Z, q.W)
}
