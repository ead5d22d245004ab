package math3d

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	got := V2(1, 2).Add(V2(3, 4))
	if got != V2(4, 6) {
		t.Errorf("V2(1,2)+V2(3,4) = %v, want (4, 6)", got)
	}
}

func TestVec2Ops(t *testing.T) {
	a := V2(3, 4)
	if a.Len() != 5 {
		t.Errorf("Len = %v, want 5", a.Len())
	}
	if a.LenSq() != 25 {
		t.Errorf("LenSq = %v, want 25", a.LenSq())
	}
	if got := a.Sub(V2(1, 1)); got != V2(2, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != V2(6, 8) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(V2(2, -1)); got != 2 {
		t.Errorf("Dot = %v, want 2", got)
	}
	if got := V2(1, 0).Cross(V2(0, 1)); got != 1 {
		t.Errorf("Cross = %v, want 1", got)
	}
	if got := V2(1, 0).Perp(); got != V2(0, 1) {
		t.Errorf("Perp = %v", got)
	}
	if got := a.Normalize(); !got.ApproxEqual(V2(0.6, 0.8), 1e-6) {
		t.Errorf("Normalize = %v", got)
	}
	if got := V2(0, 0).Normalize(); got != (Vec2{}) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	if got := a.Vec3(7); got != V3(3, 4, 7) {
		t.Errorf("Vec3 = %v", got)
	}
}

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		u, v Vec3
		want Vec3
	}{
		{"x cross y", V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"y cross z", V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0)},
		{"z cross x", V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},
		{"y cross x", V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1)},
		{"parallel", V3(1, 2, 3), V3(2, 4, 6), V3(0, 0, 0)},
		{"zero", V3(0, 0, 0), V3(1, 2, 3), V3(0, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Cross(tc.u, tc.v)
			if !got.ApproxEqual(tc.want, 1e-6) {
				t.Errorf("Cross(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	v := V3(3, 0, 4).Normalize()
	if math.Abs(float64(v.Len())-1) > 1e-6 {
		t.Errorf("normalized length = %v, want 1", v.Len())
	}

	unit := V3(0, 1, 0)
	if got := unit.Normalize(); !got.ApproxEqual(unit, 1e-7) {
		t.Errorf("Normalize(unit) = %v, want %v", got, unit)
	}

	if got, ok := Zero3().TryNormalize(); ok || got != Zero3() {
		t.Errorf("TryNormalize(zero) = %v, %v; want zero, false", got, ok)
	}
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
}

func TestVec3DivByZero(t *testing.T) {
	got := V3(1, -1, 0).Div(0)
	if !math.IsInf(float64(got.X), 1) || !math.IsInf(float64(got.Y), -1) || !math.IsNaN(float64(got.Z)) {
		t.Errorf("Div(0) = %v, want (+Inf, -Inf, NaN)", got)
	}
}

func TestVec3Misc(t *testing.T) {
	a, b := V3(1, 2, 3), V3(4, 5, 6)
	if got := Dot(a, b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Lerp(b, 0.5); got != V3(2.5, 3.5, 4.5) {
		t.Errorf("Lerp = %v", got)
	}
	if got := a.Min(V3(0, 5, 3)); got != V3(0, 2, 3) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(V3(0, 5, 3)); got != V3(1, 5, 3) {
		t.Errorf("Max = %v", got)
	}
	if got := V3(-1, 2, -3).Abs(); got != V3(1, 2, 3) {
		t.Errorf("Abs = %v", got)
	}
	if got := V3(1, -1, 0).Reflect(Up()); got != V3(1, 1, 0) {
		t.Errorf("Reflect = %v", got)
	}
	if got := V3(0, 0, 0).Distance(V3(0, 3, 4)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := a.Negate(); got != V3(-1, -2, -3) {
		t.Errorf("Negate = %v", got)
	}
	if a.At(0) != 1 || a.At(1) != 2 || a.At(2) != 3 {
		t.Errorf("At mismatch for %v", a)
	}
	if got := a.XY(); got != V2(1, 2) {
		t.Errorf("XY = %v", got)
	}
	if a.String() != "(1, 2, 3)" {
		t.Errorf("String = %q", a.String())
	}
}

func TestVecAtOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("At(3) on Vec3 should panic")
		}
	}()
	_ = V3(1, 2, 3).At(3)
}

func TestVec4(t *testing.T) {
	a := V4(1, 2, 3, 4)
	if got := a.Add(V4(1, 1, 1, 1)); got != V4(2, 3, 4, 5) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Dot(a); got != 30 {
		t.Errorf("Dot = %v, want 30", got)
	}
	if got := V4(2, 4, 6, 2).PerspectiveDivide(); got != V3(1, 2, 3) {
		t.Errorf("PerspectiveDivide = %v", got)
	}
	if got := V4(2, 4, 6, 0).PerspectiveDivide(); got != V3(2, 4, 6) {
		t.Errorf("PerspectiveDivide(w=0) = %v", got)
	}
	if got := V4FromV3(V3(1, 2, 3), 1); got != V4(1, 2, 3, 1) {
		t.Errorf("V4FromV3 = %v", got)
	}
	if got := V4(0, 0, 0, 0).Normalize(); got != (Vec4{}) {
		t.Errorf("Normalize(zero) = %v", got)
	}
	if a.At(3) != 4 {
		t.Errorf("At(3) = %v", a.At(3))
	}
	if got := V4(0, 0, 0, 2).Normalize(); got != V4(0, 0, 0, 1) {
		t.Errorf("Normalize = %v", got)
	}
}

func TestScalarHelpers(t *testing.T) {
	if !ApproxEqual(Radians(180), Pi, 1e-6) {
		t.Errorf("Radians(180) = %v", Radians(180))
	}
	if !ApproxEqual(Degrees(HalfPi), 90, 1e-4) {
		t.Errorf("Degrees(pi/2) = %v", Degrees(HalfPi))
	}
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp out of range")
	}
	if !ApproxEqual(TwoPi, 2*Pi, 0) {
		t.Error("TwoPi mismatch")
	}
}

func TestLengthExtremeRange(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		len  float64
	}{
		{"large", V3(1e20, 0, 0), 1e20},
		{"large diagonal", V3(3e30, 4e30, 0), 5e30},
		{"tiny", V3(1e-23, 0, 0), 1e-23},
		{"tiny diagonal", V3(0, 3e-30, 4e-30), 5e-30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := float64(tt.v.Len()); math.Abs(got-tt.len) > tt.len*1e-6 {
				t.Errorf("Len() = %v, want %v", got, tt.len)
			}
			n, ok := tt.v.TryNormalize()
			if !ok {
				t.Fatalf("TryNormalize(%v) reported degenerate", tt.v)
			}
			want := tt.v.Scale(float32(1 / tt.len))
			if tt.len < 1 {
				want = tt.v.Div(float32(tt.len))
			}
			if !n.ApproxEqual(want, 1e-6) {
				t.Errorf("TryNormalize(%v) = %v, want %v", tt.v, n, want)
			}
		})
	}

	if got := V2(0, -1e25).Normalize(); got != V2(0, -1) {
		t.Errorf("Vec2 Normalize = %v, want (0, -1)", got)
	}
	if got := V4(1e-25, 0, 0, 0).Normalize(); got != V4(1, 0, 0, 0) {
		t.Errorf("Vec4 Normalize = %v, want (1, 0, 0, 0)", got)
	}
	if _, ok := V3(float32(math.Inf(1)), 0, 0).TryNormalize(); ok {
		t.Error("TryNormalize(+Inf) reported ok")
	}
}
