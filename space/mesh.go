package space

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/hyperpuzzle/ndim"
	"github.com/unixpickle/model3d/model3d"
)

// OrientedFacetPlane returns the plane of a facet of polytope p, flipped so
// that p is on the inside.
func (s *Space) OrientedFacetPlane(p, facet ElementID) (ndim.Hyperplane, bool) {
	plane, ok := s.FacetPlane(facet)
	if !ok {
		return plane, false
	}
	if plane.WhichSide(s.Centroid(p)) == ndim.Outside {
		plane = plane.Flip()
	}
	return plane, true
}

// ConvexPolytope3D converts a 3D polytope into a model3d polytope.
func (s *Space) ConvexPolytope3D(p ElementID) (model3d.ConvexPolytope, error) {
	if s.ndim != 3 {
		return nil, errors.Wrapf(ErrDimensionsMismatch, "cannot convert %d-dimensional polytope", s.ndim)
	}
	if err := s.check(p); err != nil {
		return nil, err
	}
	var planes []ndim.Hyperplane
	for _, f := range s.Facets(p) {
		plane, ok := s.OrientedFacetPlane(p, f)
		if !ok {
			return nil, errors.Errorf("space: facet %d has no plane", f)
		}
		planes = append(planes, plane)
	}
	return PlanesToPolytope3D(planes)
}

// PlanesToPolytope3D converts the intersection of the insides of some
// hyperplanes into a model3d polytope.
func PlanesToPolytope3D(planes []ndim.Hyperplane) (model3d.ConvexPolytope, error) {
	res := make(model3d.ConvexPolytope, 0, len(planes))
	for _, plane := range planes {
		if plane.Normal.Dims() > 3 {
			return nil, errors.Wrapf(ErrDimensionsMismatch, "plane has %d dimensions",
				plane.Normal.Dims())
		}
		n := plane.Normal.Pad(3)
		res = append(res, &model3d.LinearConstraint{
			Normal: model3d.XYZ(n[0], n[1], n[2]),
			Max:    plane.Distance,
		})
	}
	return res, nil
}

// Mesh3D creates a triangle mesh for a 3D polytope.
func (s *Space) Mesh3D(p ElementID) (*model3d.Mesh, error) {
	poly, err := s.ConvexPolytope3D(p)
	if err != nil {
		return nil, err
	}
	return poly.Mesh(), nil
}
