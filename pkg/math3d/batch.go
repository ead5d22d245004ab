package math3d

import (
	"errors"
	"fmt"

	"github.com/viterin/vek/vek32"
)

// ErrBatchLength is returned when two batches of different sizes are combined
// or when a batch's component slices differ in length.
var ErrBatchLength = errors.New("math3d: batch length mismatch")

// Vec3Batch holds many Vec3 values as separate component slices so bulk
// operations can run over contiguous float32 memory.
type Vec3Batch struct {
	X, Y, Z []float32
}

// NewVec3Batch splits vs into component slices.
func NewVec3Batch(vs []Vec3) Vec3Batch {
	b := Vec3Batch{
		X: make([]float32, len(vs)),
		Y: make([]float32, len(vs)),
		Z: make([]float32, len(vs)),
	}
	for i, v := range vs {
		b.X[i], b.Y[i], b.Z[i] = v.X, v.Y, v.Z
	}
	return b
}

// Len returns the number of complete vectors, the length of the shortest
// component slice.
func (b Vec3Batch) Len() int {
	return min(len(b.X), len(b.Y), len(b.Z))
}

// Validate reports ErrBatchLength when X, Y and Z differ in length.
func (b Vec3Batch) Validate() error {
	if len(b.X) != len(b.Y) || len(b.X) != len(b.Z) {
		return fmt.Errorf("%w: components %d/%d/%d", ErrBatchLength, len(b.X), len(b.Y), len(b.Z))
	}
	return nil
}

// At returns vector i.
func (b Vec3Batch) At(i int) Vec3 {
	return Vec3{b.X[i], b.Y[i], b.Z[i]}
}

// Vec3s reassembles the batch.
func (b Vec3Batch) Vec3s() []Vec3 {
	out := make([]Vec3, b.Len())
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

func (b Vec3Batch) check(other Vec3Batch) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := other.Validate(); err != nil {
		return err
	}
	if b.Len() != other.Len() {
		return fmt.Errorf("%w: %d vs %d", ErrBatchLength, b.Len(), other.Len())
	}
	return nil
}

// Add returns the element-wise sums b[i] + other[i].
func (b Vec3Batch) Add(other Vec3Batch) (Vec3Batch, error) {
	if err := b.check(other); err != nil {
		return Vec3Batch{}, err
	}
	if b.Len() == 0 {
		return Vec3Batch{}, nil
	}
	return Vec3Batch{
		X: vek32.Add(b.X, other.X),
		Y: vek32.Add(b.Y, other.Y),
		Z: vek32.Add(b.Z, other.Z),
	}, nil
}

// Scale returns every vector multiplied by s. Like Centroid and Transform it
// reads only the first Len vectors.
func (b Vec3Batch) Scale(s float32) Vec3Batch {
	n := b.Len()
	if n == 0 {
		return Vec3Batch{}
	}
	return Vec3Batch{
		X: vek32.MulNumber(b.X[:n], s),
		Y: vek32.MulNumber(b.Y[:n], s),
		Z: vek32.MulNumber(b.Z[:n], s),
	}
}

// Dot returns the per-vector dot products b[i] · other[i].
func (b Vec3Batch) Dot(other Vec3Batch) ([]float32, error) {
	if err := b.check(other); err != nil {
		return nil, err
	}
	if b.Len() == 0 {
		return []float32{}, nil
	}
	out := vek32.Mul(b.X, other.X)
	vek32.Add_Inplace(out, vek32.Mul(b.Y, other.Y))
	vek32.Add_Inplace(out, vek32.Mul(b.Z, other.Z))
	return out, nil
}

// Lengths returns the length of every vector. It returns nil for a batch
// that fails Validate.
func (b Vec3Batch) Lengths() []float32 {
	sq, _ := b.Dot(b)
	if len(sq) == 0 {
		return sq
	}
	return vek32.Sqrt(sq)
}

// Centroid returns the mean of all vectors, or the zero vector for an empty
// batch.
func (b Vec3Batch) Centroid() Vec3 {
	n := b.Len()
	if n == 0 {
		return Vec3{}
	}
	inv := 1 / float32(n)
	return Vec3{
		vek32.Sum(b.X[:n]) * inv,
		vek32.Sum(b.Y[:n]) * inv,
		vek32.Sum(b.Z[:n]) * inv,
	}
}

// Transform applies m to every vector as a point.
func (b Vec3Batch) Transform(m Mat4) Vec3Batch {
	out := Vec3Batch{
		X: make([]float32, b.Len()),
		Y: make([]float32, b.Len()),
		Z: make([]float32, b.Len()),
	}
	for i := range out.X {
		v := m.MulVec3(b.At(i))
		out.X[i], out.Y[i], out.Z[i] = v.X, v.Y, v.Z
	}
	return out
}
