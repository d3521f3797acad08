package puzzle

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/hyperpuzzle/group"
	"github.com/unixpickle/hyperpuzzle/ndim"
	"github.com/unixpickle/hyperpuzzle/space"
)

// DefaultPrimordialRadius is the radius of the cube which shapes are carved
// out of.
const DefaultPrimordialRadius = 10

// A ShapeBuilder carves and slices a polytope into the pieces of a puzzle.
type ShapeBuilder struct {
	space  *space.Space
	pieces []space.ElementID
}

// NewShapeBuilder creates a shape builder containing a single cube with the
// given radius.
func NewShapeBuilder(dims int, radius float64) *ShapeBuilder {
	s, cube := space.NewPrimordialCube(dims, radius)
	return &ShapeBuilder{space: s, pieces: []space.ElementID{cube}}
}

// Space returns the arena holding the pieces.
func (s *ShapeBuilder) Space() *space.Space {
	return s.space
}

// Pieces returns the current pieces.
func (s *ShapeBuilder) Pieces() []space.ElementID {
	return append([]space.ElementID{}, s.pieces...)
}

// Carve removes everything outside of a hyperplane, coloring the new facets
// with a color (or NoColor).
//
// Fails with ErrNullShape, leaving the shape unchanged, if nothing is inside
// of the hyperplane.
func (s *ShapeBuilder) Carve(plane ndim.Hyperplane, color ColorID) error {
	if err := s.checkPlane(plane); err != nil {
		return err
	}
	if !s.anyInside(plane) {
		return errors.Wrapf(ErrNullShape, "carving %v", plane)
	}
	results, err := s.space.CutMany(s.pieces, plane, color.tag())
	if err != nil {
		return err
	}
	var pieces []space.ElementID
	for _, r := range results {
		if r.Inside != space.None {
			pieces = append(pieces, r.Inside)
		}
	}
	s.pieces = pieces
	return nil
}

// Slice splits every piece along a hyperplane, coloring the new facets with
// a color (or NoColor).
func (s *ShapeBuilder) Slice(plane ndim.Hyperplane, color ColorID) error {
	if err := s.checkPlane(plane); err != nil {
		return err
	}
	results, err := s.space.CutMany(s.pieces, plane, color.tag())
	if err != nil {
		return err
	}
	var pieces []space.ElementID
	for _, r := range results {
		for _, p := range []space.ElementID{r.Inside, r.Outside} {
			if p != space.None {
				pieces = append(pieces, p)
			}
		}
	}
	s.pieces = pieces
	return nil
}

// CarveOrbit carves the shape by every image of a hyperplane under the
// generators. If any cut fails, the shape and colors are left unchanged.
//
// If colors is non-nil, a color is added for every image and used for its
// facets, named from colorNames in orbit order. The new colors are returned.
func (s *ShapeBuilder) CarveOrbit(
	generators []group.Generator,
	plane ndim.Hyperplane,
	colors *ColorSystem,
	colorNames ...string,
) ([]ColorID, error) {
	return s.cutOrbit(generators, plane, colors, colorNames, s.Carve)
}

// SliceOrbit slices the shape by every image of a hyperplane under the
// generators, with optional colors like CarveOrbit.
func (s *ShapeBuilder) SliceOrbit(
	generators []group.Generator,
	plane ndim.Hyperplane,
	colors *ColorSystem,
	colorNames ...string,
) ([]ColorID, error) {
	return s.cutOrbit(generators, plane, colors, colorNames, s.Slice)
}

func (s *ShapeBuilder) cutOrbit(
	generators []group.Generator,
	plane ndim.Hyperplane,
	colors *ColorSystem,
	colorNames []string,
	cut func(ndim.Hyperplane, ColorID) error,
) ([]ColorID, error) {
	if err := s.checkPlane(plane); err != nil {
		return nil, err
	}
	orbit, err := group.ExpandOrbit(generators, plane)
	if err != nil {
		return nil, err
	}
	planes := orbit.PresentElements()
	for _, p := range planes {
		if err := s.checkPlane(p); err != nil {
			return nil, err
		}
	}

	// Undo every cut and color if any image fails.
	checkpoint := s.space.Checkpoint()
	oldPieces := s.pieces
	var colorState colorCheckpoint
	if colors != nil {
		colorState = colors.checkpoint()
	}
	rollback := func() {
		s.space.Rollback(checkpoint)
		s.pieces = oldPieces
		if colors != nil {
			colors.rollback(colorState)
		}
	}

	var res []ColorID
	for i, p := range planes {
		color := NoColor
		if colors != nil {
			var name string
			if i < len(colorNames) {
				name = colorNames[i]
			}
			var err error
			color, err = colors.Add(name, "")
			if err != nil {
				rollback()
				return nil, err
			}
			res = append(res, color)
		}
		if err := cut(p, color); err != nil {
			rollback()
			return nil, errors.Wrapf(err, "cut %d of orbit", i)
		}
	}
	return res, nil
}

func (s *ShapeBuilder) checkPlane(plane ndim.Hyperplane) error {
	if plane.Normal.Dims() > s.space.Dims() {
		return errors.Wrapf(ErrDimensionsMismatch, "hyperplane %v in %d dimensions", plane,
			s.space.Dims())
	}
	if _, ok := plane.Normal.Normalize(); !ok {
		return ndim.ErrDegenerateHyperplane
	}
	return nil
}

func (s *ShapeBuilder) anyInside(plane ndim.Hyperplane) bool {
	for _, p := range s.pieces {
		for _, v := range s.space.Vertices(p) {
			if plane.WhichSide(s.space.Point(v)) == ndim.Inside {
				return true
			}
		}
	}
	return false
}
