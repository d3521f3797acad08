package group

import (
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/hyperpuzzle/ndim"
)

// NoEnd marks a GeneratorSequence which starts at a seed.
const NoEnd = -1

// An Object can be expanded into an orbit.
//
// Transform must map an object to its image under an isometry, and images
// which are geometrically identical must have approximately equal
// ApproxFloats().
type Object[T any] interface {
	ndim.Hashable
	Transform(t ndim.Transform) T
}

// A Generator is a transform along with a tag describing where it came from.
type Generator struct {
	Tag       string
	Transform ndim.Transform
}

// A GeneratorSequence describes how an orbit element was reached: the
// generators were applied, in order, to the element at index End.
//
// End is NoEnd for seeds.
type GeneratorSequence struct {
	Generators []GeneratorID
	End        int
}

// An Orbit is the set of distinct images of some seeds under a set of
// generators, in discovery order.
//
// Elements, Present, Transforms, and Sequences are parallel arrays.
// Present[i] is false if the i-th seed coincided with an earlier element,
// in which case Sequences[i].End points at that element.
type Orbit[T Object[T]] struct {
	Generators []Generator

	Elements   []T
	Present    []bool
	Transforms []ndim.Transform
	Sequences  []GeneratorSequence
}

// ExpandOrbit computes the orbit of the seeds under the generators with a
// breadth-first search.
//
// Each seed is added in order and its orbit is closed before the next seed
// is considered, so a later seed which lies in an earlier orbit is marked
// absent. Transforms[i] maps the element's seed to the element.
//
// Fails with ErrOverflow if there are more generators than a GeneratorID
// can index.
func ExpandOrbit[T Object[T]](generators []Generator, seeds ...T) (*Orbit[T], error) {
	if len(generators) > 0 {
		if _, err := newGeneratorID(len(generators) - 1); err != nil {
			return nil, err
		}
	}
	var ndims int
	for _, g := range generators {
		ndims = essentials.MaxInt(ndims, g.Transform.Dims())
	}
	identity := ndim.Identity(ndims)

	res := &Orbit[T]{Generators: append([]Generator{}, generators...)}
	index := ndim.NewApproxMap[T, int]()
	for _, seed := range seeds {
		start := len(res.Elements)
		existing, inserted := index.InsertNew(seed, start)
		res.Elements = append(res.Elements, seed)
		res.Transforms = append(res.Transforms, identity)
		res.Present = append(res.Present, inserted)
		if inserted {
			res.Sequences = append(res.Sequences, GeneratorSequence{End: NoEnd})
			res.expand(index, start)
		} else {
			res.Sequences = append(res.Sequences, GeneratorSequence{End: existing})
		}
	}
	return res, nil
}

// expand closes the orbit of the element at index start, appending every
// newly discovered image.
func (o *Orbit[T]) expand(index *ndim.ApproxMap[T, int], start int) {
	for next := start; next < len(o.Elements); next++ {
		obj := o.Elements[next]
		for g, gen := range o.Generators {
			img := obj.Transform(gen.Transform)
			if _, inserted := index.InsertNew(img, len(o.Elements)); !inserted {
				continue
			}
			o.Elements = append(o.Elements, img)
			o.Present = append(o.Present, true)
			o.Transforms = append(o.Transforms, gen.Transform.Compose(o.Transforms[next]))
			o.Sequences = append(o.Sequences, GeneratorSequence{
				Generators: []GeneratorID{GeneratorID(g)},
				End:        next,
			})
		}
	}
}

// Len returns the number of orbit positions, including absent seeds.
func (o *Orbit[T]) Len() int {
	return len(o.Elements)
}

// Get returns the element at an index, if it is present.
func (o *Orbit[T]) Get(i int) (T, bool) {
	if !o.Present[i] {
		var zero T
		return zero, false
	}
	return o.Elements[i], true
}

// Iterate calls f for every present element in order.
func (o *Orbit[T]) Iterate(f func(i int, t ndim.Transform, obj T)) {
	for i, obj := range o.Elements {
		if o.Present[i] {
			f(i, o.Transforms[i], obj)
		}
	}
}

// PresentElements returns the present elements in order.
func (o *Orbit[T]) PresentElements() []T {
	var res []T
	o.Iterate(func(_ int, _ ndim.Transform, obj T) {
		res = append(res, obj)
	})
	return res
}

// Path returns the full generator word which, applied in order to the
// element's seed, produces the element at index i.
func (o *Orbit[T]) Path(i int) []GeneratorID {
	var chunks [][]GeneratorID
	for o.Present[i] && o.Sequences[i].End != NoEnd {
		chunks = append(chunks, o.Sequences[i].Generators)
		i = o.Sequences[i].End
	}
	var res []GeneratorID
	for j := len(chunks) - 1; j >= 0; j-- {
		res = append(res, chunks[j]...)
	}
	return res
}

// Seed returns the index of the seed from which element i was reached.
func (o *Orbit[T]) Seed(i int) int {
	for o.Present[i] && o.Sequences[i].End != NoEnd {
		i = o.Sequences[i].End
	}
	return i
}

// PathTags returns the tags of the generators along Path(i).
func (o *Orbit[T]) PathTags(i int) []string {
	path := o.Path(i)
	res := make([]string, len(path))
	for j, g := range path {
		res[j] = o.Generators[g].Tag
	}
	return res
}

// Names assigns a name to every present element.
//
// Element i uses given[i] if it is non-empty, and otherwise the next name
// from auto. Absent elements get an empty name.
func (o *Orbit[T]) Names(given []string, auto func() string) []string {
	res := make([]string, o.Len())
	for i := range res {
		if !o.Present[i] {
			continue
		}
		if i < len(given) && given[i] != "" {
			res[i] = given[i]
		} else {
			res[i] = auto()
		}
	}
	return res
}
