// Package space stores convex polytopes of any dimension in an arena and
// slices them with hyperplanes.
//
// Every polytope is an element whose boundary is a list of elements of one
// lower rank, down to vertices of rank 0. Elements are never modified once
// created, so cutting a polytope creates new elements and leaves the old ones
// in place.
package space

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/hyperpuzzle/ndim"
)

var (
	ErrElementOutOfRange  = errors.New("space: element id out of range")
	ErrConsumed           = errors.New("space: element has already been cut")
	ErrDimensionsMismatch = errors.New("space: dimension mismatch")
)

// An ElementID refers to an element of a Space.
type ElementID int

// None is used in place of an ElementID where there is no element.
const None ElementID = -1

type element struct {
	rank     int
	boundary []ElementID
	point    ndim.Vector

	// Set for elements which lie on a known hyperplane, including every
	// facet of a polytope.
	plane    ndim.Hyperplane
	hasPlane bool
	tag      int

	consumed bool
}

// A Space is an arena of polytope elements in a fixed number of dimensions.
//
// Cut methods are not safe for concurrent use. Read-only methods may be
// called concurrently as long as nothing is being cut.
type Space struct {
	ndim     int
	elements []element

	// consumed lists the elements marked consumed, in order.
	consumed []ElementID
}

// A Checkpoint is a saved state of a Space which later cuts can be rolled
// back to.
type Checkpoint struct {
	elements int
	consumed int
}

// Checkpoint saves the current state of the space.
func (s *Space) Checkpoint() Checkpoint {
	return Checkpoint{elements: len(s.elements), consumed: len(s.consumed)}
}

// Rollback discards every element created since a checkpoint and restores
// the polytopes consumed since then.
//
// Element ids created after the checkpoint become invalid.
func (s *Space) Rollback(c Checkpoint) {
	for _, id := range s.consumed[c.consumed:] {
		s.elements[id].consumed = false
	}
	s.consumed = s.consumed[:c.consumed]
	s.elements = s.elements[:c.elements]
}

// NewSpace creates an empty space.
func NewSpace(dims int) *Space {
	return &Space{ndim: dims}
}

// NewPrimordialCube creates a space containing a single axis-aligned cube
// centered at the origin, with every vertex coordinate equal to ±radius.
//
// Every facet of the cube lies on a hyperplane with a distance of radius.
func NewPrimordialCube(dims int, radius float64) (*Space, ElementID) {
	s := NewSpace(dims)
	cache := map[string]ElementID{}
	state := make([]int8, dims)
	return s, s.addCubeElement(state, radius, cache)
}

// addCubeElement adds the face of the cube where every coordinate with a
// state of -1 or 1 is fixed, and every coordinate with state 0 is free.
func (s *Space) addCubeElement(state []int8, radius float64, cache map[string]ElementID) ElementID {
	key := fmt.Sprint(state)
	if id, ok := cache[key]; ok {
		return id
	}
	var free int
	for _, x := range state {
		if x == 0 {
			free++
		}
	}
	var e element
	e.rank = free
	if free == 0 {
		e.point = make(ndim.Vector, s.ndim)
		for i, x := range state {
			e.point[i] = float64(x) * radius
		}
	} else {
		for i, x := range state {
			if x != 0 {
				continue
			}
			for _, sign := range []int8{-1, 1} {
				state[i] = sign
				e.boundary = append(e.boundary, s.addCubeElement(state, radius, cache))
			}
			state[i] = 0
		}
	}
	if free == s.ndim-1 {
		for i, x := range state {
			if x != 0 {
				e.plane = ndim.Hyperplane{
					Normal:   ndim.Unit(s.ndim, i).Scale(float64(x)),
					Distance: radius,
				}
				e.hasPlane = true
			}
		}
	}
	id := s.add(e)
	cache[key] = id
	return id
}

func (s *Space) add(e element) ElementID {
	s.elements = append(s.elements, e)
	return ElementID(len(s.elements) - 1)
}

// AddVertex adds a rank 0 element.
func (s *Space) AddVertex(p ndim.Vector) ElementID {
	return s.add(element{point: p.Pad(s.ndim)})
}

// AddElement adds an element with the given boundary, which must all have
// the same rank.
func (s *Space) AddElement(boundary []ElementID) (ElementID, error) {
	if len(boundary) == 0 {
		return None, errors.New("space: empty boundary")
	}
	rank := -1
	for _, b := range boundary {
		if err := s.check(b); err != nil {
			return None, err
		}
		if rank != -1 && s.elements[b].rank != rank {
			return None, errors.New("space: boundary elements have mixed ranks")
		}
		rank = s.elements[b].rank
	}
	return s.add(element{rank: rank + 1, boundary: append([]ElementID{}, boundary...)}), nil
}

// SetFacetPlane records the hyperplane on which an element lies and the tag
// it carries through future cuts.
func (s *Space) SetFacetPlane(id ElementID, plane ndim.Hyperplane, tag int) error {
	if err := s.check(id); err != nil {
		return err
	}
	s.elements[id].plane = plane
	s.elements[id].hasPlane = true
	s.elements[id].tag = tag
	return nil
}

func (s *Space) check(id ElementID) error {
	if id < 0 || int(id) >= len(s.elements) {
		return errors.Wrapf(ErrElementOutOfRange, "element %d", id)
	}
	return nil
}

// Dims returns the dimension of the space.
func (s *Space) Dims() int {
	return s.ndim
}

// Len returns the number of elements in the arena.
func (s *Space) Len() int {
	return len(s.elements)
}

// Rank returns the rank of an element: 0 for vertices, 1 for edges, etc.
func (s *Space) Rank(id ElementID) int {
	return s.elements[id].rank
}

// Boundary returns the elements one rank lower that bound an element.
func (s *Space) Boundary(id ElementID) []ElementID {
	return append([]ElementID{}, s.elements[id].boundary...)
}

// Point returns the position of a vertex.
func (s *Space) Point(id ElementID) ndim.Vector {
	return s.elements[id].point
}

// IsConsumed checks if a polytope has been split by a cut.
func (s *Space) IsConsumed(id ElementID) bool {
	return s.elements[id].consumed
}

// FacetPlane returns the hyperplane an element lies on, if known.
//
// The plane is not oriented with respect to any particular polytope, since
// the same facet may be shared by polytopes on either side.
func (s *Space) FacetPlane(id ElementID) (ndim.Hyperplane, bool) {
	e := &s.elements[id]
	return e.plane, e.hasPlane
}

// FacetTag returns the tag of a facet, or 0 if it has none.
func (s *Space) FacetTag(id ElementID) int {
	return s.elements[id].tag
}

// Vertices returns the distinct vertices of an element in a deterministic
// order.
func (s *Space) Vertices(id ElementID) []ElementID {
	var res []ElementID
	seen := map[ElementID]bool{}
	var visit func(id ElementID)
	visit = func(id ElementID) {
		if seen[id] {
			return
		}
		seen[id] = true
		e := &s.elements[id]
		if e.rank == 0 {
			res = append(res, id)
			return
		}
		for _, b := range e.boundary {
			visit(b)
		}
	}
	visit(id)
	return res
}

// Facets returns the elements of rank Dims()-1 contained in an element.
func (s *Space) Facets(id ElementID) []ElementID {
	var res []ElementID
	seen := map[ElementID]bool{}
	var visit func(id ElementID)
	visit = func(id ElementID) {
		if seen[id] {
			return
		}
		seen[id] = true
		e := &s.elements[id]
		if e.rank == s.ndim-1 {
			res = append(res, id)
		} else if e.rank >= s.ndim {
			for _, b := range e.boundary {
				visit(b)
			}
		}
	}
	visit(id)
	return res
}

// Centroid computes the mean of an element's vertices.
func (s *Space) Centroid(id ElementID) ndim.Vector {
	verts := s.Vertices(id)
	sum := make(ndim.Vector, s.ndim)
	for _, v := range verts {
		sum = sum.Add(s.elements[v].point)
	}
	return sum.Scale(1 / float64(len(verts)))
}

// Volume computes the rank-dimensional content of an element, such as the
// length of an edge or the area of a polygon.
func (s *Space) Volume(id ElementID) float64 {
	e := &s.elements[id]
	if e.rank == 0 {
		return 1
	}
	if e.rank == 1 {
		verts := s.Vertices(id)
		if len(verts) != 2 {
			return 0
		}
		return s.Point(verts[0]).Dist(s.Point(verts[1]))
	}

	// Decompose into pyramids from the centroid to every boundary element.
	center := s.Centroid(id)
	var res float64
	for _, b := range e.boundary {
		height := s.distanceToHull(center, b)
		res += height * s.Volume(b) / float64(e.rank)
	}
	return res
}

// distanceToHull computes the distance from p to the affine hull of an
// element.
func (s *Space) distanceToHull(p ndim.Vector, id ElementID) float64 {
	verts := s.Vertices(id)
	origin := s.Point(verts[0])
	var basis []ndim.Vector
	for _, v := range verts[1:] {
		d := s.Point(v).Sub(origin)
		for _, b := range basis {
			d = d.Sub(b.Scale(d.Dot(b)))
		}
		if n, ok := d.Normalize(); ok && d.Norm() > ndim.Epsilon {
			basis = append(basis, n)
		}
	}
	d := p.Sub(origin)
	for _, b := range basis {
		d = d.Sub(b.Scale(d.Dot(b)))
	}
	return d.Norm()
}

// String produces a human-readable description of an element's structure.
func (s *Space) String(id ElementID) string {
	var b strings.Builder
	var visit func(id ElementID, depth int)
	visit = func(id ElementID, depth int) {
		e := &s.elements[id]
		b.WriteString(strings.Repeat("  ", depth))
		if e.rank == 0 {
			fmt.Fprintf(&b, "vertex %d %v\n", id, e.point)
			return
		}
		fmt.Fprintf(&b, "rank %d element %d\n", e.rank, id)
		for _, c := range e.boundary {
			visit(c, depth+1)
		}
	}
	visit(id, 0)
	return b.String()
}
