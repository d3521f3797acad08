package group

import "github.com/pkg/errors"

// An AbstractGroup is a finite group given by its multiplication table with
// respect to a list of generators.
//
// Element e composed with generator g is Successor(e, g).
type AbstractGroup struct {
	generatorCount int
	successors     []ElementID
	inverses       []ElementID

	// Breadth-first spanning tree from the identity, so that each element
	// is parents[e] composed with generator parentGens[e].
	parents    []ElementID
	parentGens []GeneratorID
}

func newAbstractGroup(
	generatorCount int,
	successors []ElementID,
	parents []ElementID,
	parentGens []GeneratorID,
) (*AbstractGroup, error) {
	res := &AbstractGroup{
		generatorCount: generatorCount,
		successors:     successors,
		parents:        parents,
		parentGens:     parentGens,
	}
	if err := res.Check(); err != nil {
		return nil, err
	}
	if err := res.computeInverses(); err != nil {
		return nil, err
	}
	return res, nil
}

// Order returns the number of elements in the group.
func (a *AbstractGroup) Order() int {
	return len(a.parents)
}

// GeneratorCount returns the number of generators.
func (a *AbstractGroup) GeneratorCount() int {
	return a.generatorCount
}

// Successor returns e composed with generator g.
func (a *AbstractGroup) Successor(e ElementID, g GeneratorID) ElementID {
	return a.successors[int(e)*a.generatorCount+int(g)]
}

// GeneratorElement returns the element corresponding to a generator.
func (a *AbstractGroup) GeneratorElement(g GeneratorID) ElementID {
	return a.Successor(Identity, g)
}

// Inverse returns the inverse of an element.
func (a *AbstractGroup) Inverse(e ElementID) ElementID {
	return a.inverses[e]
}

// Word returns a shortest sequence of generators which, composed onto the
// identity in order, yields e.
func (a *AbstractGroup) Word(e ElementID) []GeneratorID {
	var res []GeneratorID
	for e != Identity {
		res = append(res, a.parentGens[e])
		e = a.parents[e]
	}
	for i := 0; i < len(res)/2; i++ {
		res[i], res[len(res)-i-1] = res[len(res)-i-1], res[i]
	}
	return res
}

// Compose returns x composed with y.
func (a *AbstractGroup) Compose(x, y ElementID) ElementID {
	for _, g := range a.Word(y) {
		x = a.Successor(x, g)
	}
	return x
}

// Check verifies that the multiplication table is consistent with a group:
// every successor is a valid element, composing with a generator only fixes
// an element if the generator is the identity, and every element is the
// successor of exactly one element per generator.
func (a *AbstractGroup) Check() error {
	n := a.Order()
	if len(a.successors) != n*a.generatorCount || len(a.parentGens) != n {
		return errors.Wrap(ErrIncompleteGroup, "successor table has wrong size")
	}
	counts := make([]int, n)
	for e := 0; e < n; e++ {
		for g := 0; g < a.generatorCount; g++ {
			s := a.successors[e*a.generatorCount+g]
			if int(s) >= n {
				return errors.Wrapf(ErrBadGroupStructure, "successor of %d by %d out of range", e, g)
			}
			if int(s) == e && a.GeneratorElement(GeneratorID(g)) != Identity {
				return errors.Wrapf(ErrBadGroupStructure,
					"generator %d fixes element %d but is not the identity", g, e)
			}
			counts[s]++
		}
	}
	for e, c := range counts {
		if c != a.generatorCount {
			return errors.Wrapf(ErrBadGroupStructure, "element %d is a successor %d times", e, c)
		}
	}
	return nil
}

func (a *AbstractGroup) computeInverses() error {
	n := a.Order()
	known := make([]bool, n)
	a.inverses = make([]ElementID, n)
	known[Identity] = true

	// Whenever e*g is the identity, e and g are mutual inverses.
	for e := 0; e < n; e++ {
		for g := 0; g < a.generatorCount; g++ {
			if a.successors[e*a.generatorCount+g] == Identity {
				genElem := a.GeneratorElement(GeneratorID(g))
				a.inverses[e] = genElem
				a.inverses[genElem] = ElementID(e)
				known[e] = true
				known[genElem] = true
			}
		}
	}

	// For e = p*g, e^-1 = g^-1 * p^-1. Parents come earlier in
	// discovery order, so their inverses are already known.
	for e := 1; e < n; e++ {
		if known[e] {
			continue
		}
		p := a.parents[e]
		genElem := a.GeneratorElement(a.parentGens[e])
		if !known[p] || !known[genElem] {
			return errors.Wrapf(ErrIncompleteGroup, "missing inverse for element %d", e)
		}
		a.inverses[e] = a.Compose(a.inverses[genElem], a.inverses[p])
		known[e] = true
	}

	for e := 0; e < n; e++ {
		if a.Compose(ElementID(e), a.inverses[e]) != Identity {
			return errors.Wrapf(ErrIncompleteGroup, "inverse of element %d is inconsistent", e)
		}
	}
	return nil
}
