package ndim

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

var ErrDegenerateHyperplane = errors.New("ndim: hyperplane normal must be nonzero")

// PointWhichSide classifies a point relative to a hyperplane.
type PointWhichSide int

const (
	Inside PointWhichSide = iota
	On
	Outside
)

func (p PointWhichSide) String() string {
	switch p {
	case Inside:
		return "inside"
	case On:
		return "on"
	case Outside:
		return "outside"
	default:
		return fmt.Sprintf("PointWhichSide(%d)", int(p))
	}
}

// A Hyperplane is the set of points p where p.Dot(Normal) == Distance.
//
// It also represents the half-space p.Dot(Normal) < Distance, which is the
// "inside" of the hyperplane and contains the origin when Distance > 0.
// Normal is always unit length.
type Hyperplane struct {
	Normal   Vector
	Distance float64
}

// NewHyperplane creates a hyperplane, normalizing the normal vector.
//
// The distance is measured along the normalized vector.
func NewHyperplane(normal Vector, distance float64) (Hyperplane, error) {
	n, ok := normal.Normalize()
	if !ok || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return Hyperplane{}, ErrDegenerateHyperplane
	}
	return Hyperplane{Normal: n, Distance: distance}, nil
}

// HyperplaneFromPole creates the hyperplane perpendicular to pole which
// passes through pole.
func HyperplaneFromPole(pole Vector) (Hyperplane, error) {
	return NewHyperplane(pole, pole.Norm())
}

// MustHyperplane is like NewHyperplane but panics on failure.
func MustHyperplane(normal Vector, distance float64) Hyperplane {
	h, err := NewHyperplane(normal, distance)
	if err != nil {
		panic(err)
	}
	return h
}

// SignedDistance computes how far p is outside of the hyperplane.
func (h Hyperplane) SignedDistance(p Vector) float64 {
	return p.Dot(h.Normal) - h.Distance
}

// WhichSide classifies a point.
func (h Hyperplane) WhichSide(p Vector) PointWhichSide {
	d := h.SignedDistance(p)
	if d < -Epsilon {
		return Inside
	} else if d > Epsilon {
		return Outside
	}
	return On
}

// Flip returns the same hyperplane with the inside and outside swapped.
func (h Hyperplane) Flip() Hyperplane {
	return Hyperplane{Normal: h.Normal.Scale(-1), Distance: -h.Distance}
}

// Pole returns the point on the hyperplane closest to the origin.
func (h Hyperplane) Pole() Vector {
	return h.Normal.Scale(h.Distance)
}

// Transform applies an isometry which fixes the origin to the hyperplane.
func (h Hyperplane) Transform(t Transform) Hyperplane {
	return Hyperplane{Normal: t.Apply(h.Normal), Distance: h.Distance}
}

// IntersectEdge finds where the segment from p1 to p2 crosses the hyperplane.
//
// The endpoints should be on opposite sides of the hyperplane.
func (h Hyperplane) IntersectEdge(p1, p2 Vector) Vector {
	d1 := h.SignedDistance(p1)
	d2 := h.SignedDistance(p2)
	alpha := d1 / (d1 - d2)

	// Rounding error should never move the point past either end.
	alpha = math.Max(0, math.Min(1, alpha))
	return p1.Mid(p2, alpha)
}

// ApproxEq checks if two hyperplanes are equal within Epsilon.
func (h Hyperplane) ApproxEq(h1 Hyperplane) bool {
	return h.Normal.ApproxEq(h1.Normal) && ApproxEqFloat(h.Distance, h1.Distance)
}

// ApproxFloats returns the normal followed by the distance.
func (h Hyperplane) ApproxFloats() []float64 {
	return append(append([]float64{}, h.Normal.Trim()...), h.Distance)
}

func (h Hyperplane) String() string {
	return fmt.Sprintf("Hyperplane(%v, %.4g)", h.Normal, h.Distance)
}
