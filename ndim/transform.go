package ndim

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/mat"
)

var ErrNotOrthogonal = errors.New("ndim: matrix is not orthogonal")

// A Transform is a rotation, reflection, or composition of the two in
// N-dimensional space, stored as an orthogonal matrix.
//
// Transforms are immutable. A transform acts as the identity on any
// dimensions beyond its own, so transforms of different sizes compose.
type Transform struct {
	m *mat.Dense
}

// Identity creates the identity transform in n dimensions.
func Identity(n int) Transform {
	if n == 0 {
		return Transform{}
	}
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return Transform{m: m}
}

// NewTransform creates a transform from a row-major n*n matrix.
//
// Fails with ErrNotOrthogonal if the matrix is not orthogonal.
func NewTransform(n int, rowMajor []float64) (Transform, error) {
	if len(rowMajor) != n*n {
		return Transform{}, errors.Errorf("ndim: expected %d matrix entries but got %d", n*n,
			len(rowMajor))
	}
	if n == 0 {
		return Transform{}, nil
	}
	t := Transform{m: mat.NewDense(n, n, append([]float64{}, rowMajor...))}
	res, ok := t.Canonicalize()
	if !ok {
		return Transform{}, ErrNotOrthogonal
	}
	return res, nil
}

// Dims returns the size of the matrix.
func (t Transform) Dims() int {
	if t.m == nil {
		return 0
	}
	r, _ := t.m.Dims()
	return r
}

// At returns the matrix entry at row i and column j.
func (t Transform) At(i, j int) float64 {
	if i >= t.Dims() || j >= t.Dims() {
		if i == j {
			return 1
		}
		return 0
	}
	return t.m.At(i, j)
}

// Pad returns an equivalent transform with at least n dimensions.
func (t Transform) Pad(n int) Transform {
	if n <= t.Dims() {
		return t
	}
	res := Identity(n)
	for i := 0; i < t.Dims(); i++ {
		for j := 0; j < t.Dims(); j++ {
			res.m.Set(i, j, t.m.At(i, j))
		}
	}
	return res
}

// Compose returns the transform which applies other first, then t.
func (t Transform) Compose(other Transform) Transform {
	n := essentials.MaxInt(t.Dims(), other.Dims())
	if n == 0 {
		return Transform{}
	}
	var res mat.Dense
	res.Mul(t.Pad(n).m, other.Pad(n).m)
	return Transform{m: &res}
}

// Inverse returns the inverse transform, which is the transpose.
func (t Transform) Inverse() Transform {
	if t.m == nil {
		return t
	}
	return Transform{m: mat.DenseCopyOf(t.m.T())}
}

// Conjugate computes t * other * t^-1, which is other as seen after
// applying t to space.
func (t Transform) Conjugate(other Transform) Transform {
	return t.Compose(other).Compose(t.Inverse())
}

// Apply transforms a vector.
func (t Transform) Apply(v Vector) Vector {
	n := essentials.MaxInt(t.Dims(), len(v))
	if n == 0 {
		return Vector{}
	}
	padded := t.Pad(n)
	var res mat.VecDense
	res.MulVec(padded.m, mat.NewVecDense(n, v.Pad(n)))
	return Vector(res.RawVector().Data)
}

// Determinant is 1 for rotations and -1 for reflections.
func (t Transform) Determinant() float64 {
	if t.m == nil {
		return 1
	}
	return mat.Det(t.m)
}

// IsReflection checks if the transform reverses orientation.
func (t Transform) IsReflection() bool {
	return t.Determinant() < 0
}

// IsIdentity checks if the transform is approximately the identity.
func (t Transform) IsIdentity() bool {
	return t.ApproxEq(Identity(t.Dims()))
}

// Fixes checks if the transform maps v to itself.
func (t Transform) Fixes(v Vector) bool {
	return t.Apply(v).ApproxEq(v)
}

// ApproxEq checks if two transforms have matching entries within Epsilon.
func (t Transform) ApproxEq(other Transform) bool {
	n := essentials.MaxInt(t.Dims(), other.Dims())
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !ApproxEqFloat(t.At(i, j), other.At(i, j)) {
				return false
			}
		}
	}
	return true
}

// Canonicalize validates that the transform is a finite orthogonal matrix
// and snaps entries which are approximately zero to exactly zero.
//
// Returns false if the transform is degenerate.
func (t Transform) Canonicalize() (Transform, bool) {
	n := t.Dims()
	if n == 0 {
		return t, true
	}
	data := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := t.m.At(i, j)
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return Transform{}, false
			}
			if math.Abs(x) < Epsilon*Epsilon {
				x = 0
			}
			data = append(data, x)
		}
	}
	res := mat.NewDense(n, n, data)
	var product mat.Dense
	product.Mul(res.T(), res)
	if !mat.EqualApprox(&product, Identity(n).m, Epsilon) {
		return Transform{}, false
	}
	return Transform{m: res}, true
}

// ApproxFloats returns the row-major matrix entries.
func (t Transform) ApproxFloats() []float64 {
	n := t.Dims()
	res := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			res = append(res, t.m.At(i, j))
		}
	}
	return res
}

// Transform conjugates t by another transform, which is how a transform is
// carried along when space itself is transformed.
func (t Transform) Transform(by Transform) Transform {
	return by.Conjugate(t)
}

func (t Transform) String() string {
	n := t.Dims()
	rows := make([]string, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := range row {
			row[j] = t.m.At(i, j)
		}
		rows[i] = Vector(row).String()
	}
	return "[" + strings.Join(rows, " ") + "]"
}

// RotationPlane creates a rotation by angle within the plane spanned by u and
// v, taking u toward v.
//
// The vectors needn't be orthonormal, but must span a plane.
func RotationPlane(n int, u, v Vector, angle float64) (Transform, error) {
	u, ok := u.Normalize()
	if !ok {
		return Transform{}, errors.New("ndim: rotation plane vector is zero")
	}
	v, ok = v.Sub(u.Scale(u.Dot(v))).Normalize()
	if !ok {
		return Transform{}, errors.New("ndim: rotation plane vectors are parallel")
	}
	n = essentials.MaxInt(n, essentials.MaxInt(len(u), len(v)))
	u, v = u.Pad(n), v.Pad(n)
	cos, sin := math.Cos(angle), math.Sin(angle)
	res := Identity(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := res.m.At(i, j)
			x += (cos - 1) * (u[i]*u[j] + v[i]*v[j])
			x += sin * (v[i]*u[j] - u[i]*v[j])
			res.m.Set(i, j, x)
		}
	}
	return res, nil
}

// Rotation2D creates a counter-clockwise rotation of the XY plane.
func Rotation2D(angle float64) Transform {
	res, err := RotationPlane(2, Unit(2, 0), Unit(2, 1), angle)
	if err != nil {
		panic(err)
	}
	return res
}

// RotationBetween creates the minimal rotation taking the direction of from
// to the direction of to.
//
// Fails if either vector is zero or the vectors are opposite, in which case
// the rotation plane is ambiguous.
func RotationBetween(from, to Vector) (Transform, error) {
	n := essentials.MaxInt(len(from), len(to))
	u, ok1 := from.Normalize()
	w, ok2 := to.Normalize()
	if !ok1 || !ok2 {
		return Transform{}, errors.New("ndim: cannot rotate zero vector")
	}
	cos := math.Max(-1, math.Min(1, u.Dot(w)))
	if ApproxEqFloat(cos, 1) {
		return Identity(n), nil
	} else if ApproxEqFloat(cos, -1) {
		return Transform{}, errors.New("ndim: rotation between opposite vectors is ambiguous")
	}
	return RotationPlane(n, u, w, math.Acos(cos))
}

// Reflection creates a reflection through the hyperplane through the origin
// with the given normal.
func Reflection(normal Vector) (Transform, error) {
	nv, ok := normal.Normalize()
	if !ok {
		return Transform{}, errors.New("ndim: reflection normal is zero")
	}
	n := len(nv)
	res := Identity(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			res.m.Set(i, j, res.m.At(i, j)-2*nv[i]*nv[j])
		}
	}
	return res, nil
}

// MustTransform is like NewTransform but panics on failure.
func MustTransform(n int, rowMajor ...float64) Transform {
	res, err := NewTransform(n, rowMajor)
	if err != nil {
		panic(fmt.Sprintf("invalid transform: %v", err))
	}
	return res
}
