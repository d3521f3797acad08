package ndim

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var ErrInvalidCoxeter = errors.New("ndim: Coxeter diagram does not describe a finite group")

// CoxeterMirrors computes unit mirror normals for a linear Coxeter diagram,
// given by its Schläfli symbol such as [4, 3] (cube) or [4, 3, 3]
// (hypercube).
//
// Mirror i and mirror i+1 meet at an angle of pi/schlafli[i], and all other
// pairs of mirrors are perpendicular. The result has len(schlafli)+1 mirrors
// in as many dimensions.
func CoxeterMirrors(schlafli ...float64) ([]Vector, error) {
	n := len(schlafli) + 1
	mirrors := make([]Vector, n)
	for i := 0; i < n; i++ {
		m := make(Vector, n)
		var sqSum float64
		for j := 0; j < i; j++ {
			var target float64
			if j == i-1 {
				p := schlafli[j]
				if !(p >= 2) {
					return nil, errors.Wrapf(ErrInvalidCoxeter, "branch %d has order %v", j, p)
				}
				target = -math.Cos(math.Pi / p)
			}
			for k := 0; k < j; k++ {
				target -= m[k] * mirrors[j][k]
			}
			m[j] = target / mirrors[j][j]
			sqSum += m[j] * m[j]
		}
		if sqSum >= 1-Epsilon {
			return nil, errors.Wrapf(ErrInvalidCoxeter, "mirror %d cannot be placed", i)
		}
		m[i] = math.Sqrt(1 - sqSum)
		mirrors[i] = m
	}
	return mirrors, nil
}

// CoxeterGenerators returns the reflections through the mirrors of a linear
// Coxeter diagram.
func CoxeterGenerators(schlafli ...float64) ([]Transform, error) {
	mirrors, err := CoxeterMirrors(schlafli...)
	if err != nil {
		return nil, err
	}
	res := make([]Transform, len(mirrors))
	for i, m := range mirrors {
		res[i], err = Reflection(m)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// CoxeterPole returns the unit vector which lies on every mirror except
// mirror i, pointing to the side of mirror i given by its normal.
//
// For [4, 3], pole 2 is a face normal of the cube and pole 0 is a vertex
// direction.
func CoxeterPole(mirrors []Vector, i int) (Vector, error) {
	n := len(mirrors)
	rows := mat.NewDense(n, n, nil)
	for r, m := range mirrors {
		for c := 0; c < n; c++ {
			rows.Set(r, c, m.Get(c))
		}
	}
	target := mat.NewVecDense(n, nil)
	target.SetVec(i, 1)
	var res mat.VecDense
	if err := res.SolveVec(rows, target); err != nil {
		return nil, errors.Wrap(err, "solve Coxeter pole")
	}
	v, ok := Vector(res.RawVector().Data).Normalize()
	if !ok {
		return nil, errors.New("ndim: degenerate Coxeter pole")
	}
	return v, nil
}
