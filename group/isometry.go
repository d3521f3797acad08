package group

import (
	"fmt"

	"github.com/unixpickle/hyperpuzzle/ndim"
)

// An IsometryGroup is an AbstractGroup along with the transform represented
// by each element.
//
// IsometryGroups are immutable and safe to use from multiple Goroutines.
type IsometryGroup struct {
	*AbstractGroup

	ndims      int
	generators []ndim.Transform
	elements   []ndim.Transform
	index      *ndim.ApproxMap[ndim.Transform, ElementID]
}

// Dims returns the dimension of the space the group acts on.
func (i *IsometryGroup) Dims() int {
	return i.ndims
}

// Generators returns the canonicalized generators.
func (i *IsometryGroup) Generators() []ndim.Transform {
	return append([]ndim.Transform{}, i.generators...)
}

// OrbitGenerators returns the generators tagged for use with ExpandOrbit.
func (i *IsometryGroup) OrbitGenerators() []Generator {
	res := make([]Generator, len(i.generators))
	for j, g := range i.generators {
		res[j] = Generator{Tag: fmt.Sprintf("g%d", j), Transform: g}
	}
	return res
}

// Element returns the transform for an element.
func (i *IsometryGroup) Element(e ElementID) ndim.Transform {
	return i.elements[e]
}

// Elements returns every transform, indexed by ElementID.
func (i *IsometryGroup) Elements() []ndim.Transform {
	return append([]ndim.Transform{}, i.elements...)
}

// ElementFor looks up the element approximately equal to t.
func (i *IsometryGroup) ElementFor(t ndim.Transform) (ElementID, bool) {
	if t.Dims() > i.ndims {
		return 0, false
	}
	return i.index.Get(t.Pad(i.ndims))
}

// ElementsMapping finds every element which maps from to to.
func (i *IsometryGroup) ElementsMapping(from, to ndim.Vector) []ElementID {
	var res []ElementID
	for e, t := range i.elements {
		if t.Apply(from).ApproxEq(to) {
			res = append(res, ElementID(e))
		}
	}
	return res
}

// Stabilizer finds every element which fixes v.
func (i *IsometryGroup) Stabilizer(v ndim.Vector) []ElementID {
	return i.ElementsMapping(v, v)
}

// IsChiral checks if every element preserves orientation.
func (i *IsometryGroup) IsChiral() bool {
	for _, t := range i.elements {
		if t.IsReflection() {
			return false
		}
	}
	return true
}

// Orbit applies every element to a vector and returns the distinct results,
// in element order.
func (i *IsometryGroup) Orbit(v ndim.Vector) []ndim.Vector {
	seen := ndim.NewApproxMap[ndim.Vector, struct{}]()
	var res []ndim.Vector
	for _, t := range i.elements {
		img := t.Apply(v)
		if _, inserted := seen.InsertNew(img, struct{}{}); inserted {
			res = append(res, img)
		}
	}
	return res
}
