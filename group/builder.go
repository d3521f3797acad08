package group

import (
	"log"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/hyperpuzzle/ndim"
)

// A Builder enumerates isometry groups from generators.
//
// The zero value is ready to use.
type Builder struct {
	// Workers is the number of Goroutines used to compute successors.
	// If 0, GOMAXPROCS is used.
	Workers int

	// MaxElements bounds the order of the group, failing with ErrOverflow
	// if more elements are discovered.
	// If 0, the capacity of ElementID is used.
	MaxElements int

	// Verbose, if true, logs progress during enumeration.
	Verbose bool
}

// Build enumerates a group from generators, using the default Builder.
func Build(generators ...ndim.Transform) (*IsometryGroup, error) {
	var b Builder
	return b.Build(generators)
}

// Build enumerates every element of the group generated by the given
// transforms with a breadth-first search from the identity.
//
// Element ids are assigned in discovery order, which only depends on the
// order of the generators.
func (b *Builder) Build(generators []ndim.Transform) (*IsometryGroup, error) {
	if len(generators) == 0 {
		return nil, ErrNoGenerators
	}
	if _, err := newGeneratorID(len(generators) - 1); err != nil {
		return nil, err
	}
	maxElements := b.MaxElements
	if maxElements == 0 || maxElements > MaxElements {
		maxElements = MaxElements
	}

	var ndims int
	for _, g := range generators {
		ndims = essentials.MaxInt(ndims, g.Dims())
	}
	gens := make([]ndim.Transform, len(generators))
	for i, g := range generators {
		canonical, ok := g.Pad(ndims).Canonicalize()
		if !ok {
			return nil, errors.Wrapf(ErrInvalidGenerator, "generator %d", i)
		}
		gens[i] = canonical
	}

	queue := newTaskQueue[[]ndim.Transform](b.Workers)
	defer queue.Close()
	successorsOf := func(e ndim.Transform) func() []ndim.Transform {
		return func() []ndim.Transform {
			res := make([]ndim.Transform, len(gens))
			for i, g := range gens {
				res[i] = e.Compose(g)
			}
			return res
		}
	}

	identity := ndim.Identity(ndims)
	elements := []ndim.Transform{identity}
	parents := []ElementID{Identity}
	parentGens := []GeneratorID{0}
	index := ndim.NewApproxMap[ndim.Transform, ElementID]()
	index.Insert(identity, Identity)
	tasks := []*queueTask[[]ndim.Transform]{queue.Submit(successorsOf(identity))}

	var successors []ElementID
	for next := 0; next < len(elements); next++ {
		// Results are consumed in discovery order, regardless of which
		// worker finishes first.
		results := tasks[next].Wait()
		tasks[next] = nil
		for g, t := range results {
			id, ok := index.Get(t)
			if !ok {
				if len(elements) >= maxElements {
					return nil, errors.Wrapf(ErrOverflow, "more than %d elements", maxElements)
				}
				var err error
				id, err = newElementID(len(elements))
				if err != nil {
					return nil, err
				}
				elements = append(elements, t)
				parents = append(parents, ElementID(next))
				parentGens = append(parentGens, GeneratorID(g))
				index.Insert(t, id)
				tasks = append(tasks, queue.Submit(successorsOf(t)))
			}
			successors = append(successors, id)
		}
		if b.Verbose && (next+1)%1000 == 0 {
			log.Printf("group: processed %d/%d elements", next+1, len(elements))
		}
	}

	abstract, err := newAbstractGroup(len(gens), successors, parents, parentGens)
	if err != nil {
		return nil, err
	}
	if b.Verbose {
		log.Printf("group: order %d with %d generators", len(elements), len(gens))
	}
	return &IsometryGroup{
		AbstractGroup: abstract,
		ndims:         ndims,
		generators:    gens,
		elements:      elements,
		index:         index,
	}, nil
}
