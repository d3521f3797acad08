package space

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/hyperpuzzle/ndim"
)

// A CutOutcome describes the result of cutting an element by a hyperplane.
//
// If Flush is true, the element lies entirely on the hyperplane and the
// other fields are None. Otherwise, Inside and Outside are the parts of the
// element on either side (None if nothing is on that side), and Intersection
// is the element of one lower rank where the element meets the hyperplane,
// or None if they only touch in a lower-rank element or not at all.
//
// An element entirely on one side is returned unchanged as Inside or
// Outside.
type CutOutcome struct {
	Flush        bool
	Inside       ElementID
	Outside      ElementID
	Intersection ElementID
}

// IsSplit checks if the cut produced new parts on both sides.
func (c CutOutcome) IsSplit() bool {
	return !c.Flush && c.Inside != None && c.Outside != None
}

var flushOutcome = CutOutcome{Flush: true, Inside: None, Outside: None, Intersection: None}

// Cut splits a polytope by a hyperplane.
//
// If the polytope is split, it is marked consumed and its parts are returned
// as new elements. New facets created by the cut have no tag.
func (s *Space) Cut(p ElementID, divider ndim.Hyperplane) (CutOutcome, error) {
	return s.CutTagged(p, divider, 0)
}

// CutTagged is like Cut, but assigns a tag to the facet created along the
// divider.
func (s *Space) CutTagged(p ElementID, divider ndim.Hyperplane, tag int) (CutOutcome, error) {
	res, err := s.CutMany([]ElementID{p}, divider, tag)
	if err != nil {
		return CutOutcome{}, err
	}
	return res[0], nil
}

// CutMany cuts several polytopes by the same hyperplane.
//
// Elements shared between the polytopes are split exactly once, so the
// resulting parts continue to share boundary elements.
func (s *Space) CutMany(ps []ElementID, divider ndim.Hyperplane, tag int) ([]CutOutcome, error) {
	if divider.Normal.Dims() > s.ndim {
		return nil, errors.Wrapf(ErrDimensionsMismatch, "divider has %d dimensions but space has %d",
			divider.Normal.Dims(), s.ndim)
	}
	for _, p := range ps {
		if err := s.check(p); err != nil {
			return nil, err
		}
		if s.elements[p].consumed {
			return nil, errors.Wrapf(ErrConsumed, "element %d", p)
		}
	}
	c := &cutter{
		space:   s,
		divider: ndim.Hyperplane{Normal: divider.Normal.Pad(s.ndim), Distance: divider.Distance},
		tag:     tag,
		memo:    map[ElementID]CutOutcome{},
	}
	res := make([]CutOutcome, len(ps))
	for i, p := range ps {
		res[i] = c.cut(p)
		if res[i].IsSplit() {
			s.elements[p].consumed = true
			s.consumed = append(s.consumed, p)
		}
	}
	return res, nil
}

type cutter struct {
	space   *Space
	divider ndim.Hyperplane
	tag     int
	memo    map[ElementID]CutOutcome
}

func (c *cutter) cut(id ElementID) CutOutcome {
	if res, ok := c.memo[id]; ok {
		return res
	}
	var res CutOutcome
	if c.space.elements[id].rank == 0 {
		res = c.cutVertex(id)
	} else {
		res = c.cutElement(id)
	}
	c.memo[id] = res
	return res
}

func (c *cutter) cutVertex(id ElementID) CutOutcome {
	switch c.divider.WhichSide(c.space.elements[id].point) {
	case ndim.Inside:
		return CutOutcome{Inside: id, Outside: None, Intersection: None}
	case ndim.Outside:
		return CutOutcome{Inside: None, Outside: id, Intersection: None}
	default:
		return flushOutcome
	}
}

func (c *cutter) cutElement(id ElementID) CutOutcome {
	// Copy the boundary since recursive cuts may grow the arena.
	e := c.space.elements[id]

	var insides, outsides, intersections, flush []ElementID
	seenIntersection := map[ElementID]bool{}
	for _, child := range e.boundary {
		res := c.cut(child)
		if res.Flush {
			flush = append(flush, child)
			continue
		}
		if res.Inside != None {
			insides = append(insides, res.Inside)
		}
		if res.Outside != None {
			outsides = append(outsides, res.Outside)
		}
		if res.Intersection != None && !seenIntersection[res.Intersection] {
			seenIntersection[res.Intersection] = true
			intersections = append(intersections, res.Intersection)
		}
	}

	if len(insides) == 0 && len(outsides) == 0 {
		return flushOutcome
	}
	if len(outsides) == 0 || len(insides) == 0 {
		res := CutOutcome{Inside: None, Outside: None, Intersection: None}
		if len(outsides) == 0 {
			res.Inside = id
		} else {
			res.Outside = id
		}
		if len(flush) == 1 {
			res.Intersection = flush[0]
		}
		return res
	}

	var intersection ElementID
	if e.rank == 1 {
		p1 := c.space.elements[insides[0]].point
		p2 := c.space.elements[outsides[0]].point
		intersection = c.space.AddVertex(c.divider.IntersectEdge(p1, p2))
	} else {
		intersection = c.space.add(element{rank: e.rank - 1, boundary: intersections})
		if e.rank == c.space.ndim {
			c.space.elements[intersection].plane = c.divider
			c.space.elements[intersection].hasPlane = true
			c.space.elements[intersection].tag = c.tag
		}
	}

	inside := e
	inside.boundary = append(insides, intersection)
	inside.consumed = false
	outside := e
	outside.boundary = append(outsides, intersection)
	outside.consumed = false
	return CutOutcome{
		Inside:       c.space.add(inside),
		Outside:      c.space.add(outside),
		Intersection: intersection,
	}
}
