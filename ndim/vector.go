// Package ndim implements the approximate N-dimensional geometry used to
// build puzzles: vectors, hyperplanes, orthogonal transforms, and maps keyed
// by approximately-equal floating point values.
package ndim

import (
	"fmt"
	"math"
	"strings"

	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/floats"
)

// A Vector is a point or direction in N-dimensional space.
//
// Components past the end of the slice are implicitly zero, so vectors of
// different lengths may be combined freely.
type Vector []float64

// NewVector creates a vector from its components.
func NewVector(components ...float64) Vector {
	return append(Vector{}, components...)
}

// Unit creates the i-th basis vector in a space with ndim dimensions.
func Unit(ndim, i int) Vector {
	res := make(Vector, essentials.MaxInt(ndim, i+1))
	res[i] = 1
	return res
}

// Dims returns the number of stored components.
func (v Vector) Dims() int {
	return len(v)
}

// Get returns the i-th component, which is zero past the end of v.
func (v Vector) Get(i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// Pad returns a copy of v with at least n components.
func (v Vector) Pad(n int) Vector {
	res := make(Vector, essentials.MaxInt(n, len(v)))
	copy(res, v)
	return res
}

func (v Vector) Dot(v1 Vector) float64 {
	n := essentials.MinInt(len(v), len(v1))
	return floats.Dot(v[:n], v1[:n])
}

func (v Vector) Add(v1 Vector) Vector {
	n := essentials.MaxInt(len(v), len(v1))
	return floats.AddTo(make(Vector, n), v.Pad(n), v1.Pad(n))
}

func (v Vector) Sub(v1 Vector) Vector {
	n := essentials.MaxInt(len(v), len(v1))
	return floats.SubTo(make(Vector, n), v.Pad(n), v1.Pad(n))
}

func (v Vector) Scale(s float64) Vector {
	return floats.ScaleTo(make(Vector, len(v)), s, v)
}

// Mid returns the linear interpolation between v and v1, where t=0 yields v
// and t=1 yields v1.
func (v Vector) Mid(v1 Vector, t float64) Vector {
	return v.Add(v1.Sub(v).Scale(t))
}

func (v Vector) Norm() float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, 2)
}

func (v Vector) Dist(v1 Vector) float64 {
	return v.Sub(v1).Norm()
}

// Normalize scales v to unit length.
//
// Returns false if v is approximately zero.
func (v Vector) Normalize() (Vector, bool) {
	n := v.Norm()
	if n < Epsilon {
		return nil, false
	}
	return v.Scale(1 / n), true
}

// IsApproxZero checks if every component is within Epsilon of zero.
func (v Vector) IsApproxZero() bool {
	for _, x := range v {
		if math.Abs(x) > Epsilon {
			return false
		}
	}
	return true
}

// ApproxEq checks if two vectors are equal within Epsilon per component.
func (v Vector) ApproxEq(v1 Vector) bool {
	n := essentials.MaxInt(len(v), len(v1))
	for i := 0; i < n; i++ {
		if math.Abs(v.Get(i)-v1.Get(i)) > Epsilon {
			return false
		}
	}
	return true
}

// Trim removes trailing components which are approximately zero.
func (v Vector) Trim() Vector {
	n := len(v)
	for n > 0 && math.Abs(v[n-1]) <= Epsilon {
		n--
	}
	return v[:n]
}

// ApproxFloats returns the values used to hash the vector approximately.
func (v Vector) ApproxFloats() []float64 {
	return v.Trim()
}

// Transform applies t to the vector.
func (v Vector) Transform(t Transform) Vector {
	return t.Apply(v)
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4g", x)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
