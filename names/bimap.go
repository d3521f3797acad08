package names

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A BiMap associates ids with name specifications and resolves any name
// matched by a specification back to its id.
type BiMap[I constraints.Integer] struct {
	specs  map[I]Spec
	byName map[string]I
}

// NewBiMap creates an empty map.
func NewBiMap[I constraints.Integer]() *BiMap[I] {
	return &BiMap[I]{specs: map[I]Spec{}, byName: map[string]I{}}
}

// Set assigns a specification to an id, replacing any previous one.
//
// If any name in the specification belongs to a different id, the map is
// left unchanged and ErrNameConflict is returned.
func (b *BiMap[I]) Set(id I, spec Spec) error {
	expanded := spec.Expand()
	for _, name := range expanded {
		if other, ok := b.byName[name]; ok && other != id {
			return errors.Wrapf(ErrNameConflict, "name %q", name)
		}
	}
	b.Remove(id)
	b.specs[id] = spec
	for _, name := range expanded {
		b.byName[name] = id
	}
	return nil
}

// Clone creates an independent copy of the map.
func (b *BiMap[I]) Clone() *BiMap[I] {
	return &BiMap[I]{specs: maps.Clone(b.specs), byName: maps.Clone(b.byName)}
}

// SetName is like Set for a literal name.
func (b *BiMap[I]) SetName(id I, name string) error {
	return b.Set(id, Literal(name))
}

// Remove deletes the names of an id.
func (b *BiMap[I]) Remove(id I) {
	if old, ok := b.specs[id]; ok {
		for _, name := range old.Expand() {
			delete(b.byName, name)
		}
		delete(b.specs, id)
	}
}

// Name returns the canonical name of an id.
func (b *BiMap[I]) Name(id I) (string, bool) {
	spec, ok := b.specs[id]
	if !ok {
		return "", false
	}
	return spec.Canonical(), true
}

// Spec returns the specification of an id.
func (b *BiMap[I]) Spec(id I) (Spec, bool) {
	spec, ok := b.specs[id]
	return spec, ok
}

// ID looks up the id matching a name.
func (b *BiMap[I]) ID(name string) (I, bool) {
	id, ok := b.byName[name]
	return id, ok
}

// Taken checks if a name is in use.
func (b *BiMap[I]) Taken(name string) bool {
	_, ok := b.byName[name]
	return ok
}

// Len returns the number of named ids.
func (b *BiMap[I]) Len() int {
	return len(b.specs)
}

// IDs returns the named ids in ascending order.
func (b *BiMap[I]) IDs() []I {
	res := maps.Keys(b.specs)
	slices.Sort(res)
	return res
}
