package ndim

import (
	"encoding/binary"
	"math"

	"golang.org/x/exp/slices"
)

// Epsilon is the tolerance used for every approximate comparison.
const Epsilon = 1e-6

// ApproxEqFloat checks if |x-y| <= Epsilon.
func ApproxEqFloat(x, y float64) bool {
	return math.Abs(x-y) <= Epsilon
}

// A Hashable object can be keyed in an ApproxMap.
//
// Two objects whose ApproxFloats() agree within Epsilon (and have the same
// length) are treated as the same key.
type Hashable interface {
	ApproxFloats() []float64
}

// A FloatInterner assigns ids to floating point values such that values within
// Epsilon of an existing value reuse its id.
//
// Stored representatives are always more than Epsilon apart.
type FloatInterner struct {
	values []float64
	ids    []int
}

// Lookup finds the id of the nearest stored value within Epsilon.
func (f *FloatInterner) Lookup(x float64) (int, bool) {
	idx, ok := f.nearest(x)
	if !ok {
		return 0, false
	}
	return f.ids[idx], true
}

// Intern returns the id for x, allocating a new one if no stored value is
// within Epsilon.
func (f *FloatInterner) Intern(x float64) int {
	if id, ok := f.Lookup(x); ok {
		return id
	}
	idx, _ := slices.BinarySearch(f.values, x)
	id := len(f.values)
	f.values = slices.Insert(f.values, idx, x)
	f.ids = slices.Insert(f.ids, idx, id)
	return id
}

// Len returns the number of distinct values.
func (f *FloatInterner) Len() int {
	return len(f.values)
}

func (f *FloatInterner) nearest(x float64) (int, bool) {
	idx, _ := slices.BinarySearch(f.values, x)
	best := -1
	bestDist := math.Inf(1)
	for _, i := range [2]int{idx - 1, idx} {
		if i < 0 || i >= len(f.values) {
			continue
		}
		if d := math.Abs(f.values[i] - x); d <= Epsilon && d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best != -1
}

// An ApproxMap maps approximately-hashable keys to values.
//
// Lookups never modify the map, so concurrent calls to Get are safe once all
// insertions have finished.
type ApproxMap[K Hashable, V any] struct {
	floats  FloatInterner
	entries map[string]V
}

func NewApproxMap[K Hashable, V any]() *ApproxMap[K, V] {
	return &ApproxMap[K, V]{entries: map[string]V{}}
}

// Get looks up a value by key.
func (a *ApproxMap[K, V]) Get(key K) (V, bool) {
	fs := key.ApproxFloats()
	buf := make([]byte, 0, 2*(len(fs)+1))
	buf = binary.AppendUvarint(buf, uint64(len(fs)))
	for _, x := range fs {
		id, ok := a.floats.Lookup(x)
		if !ok {
			var zero V
			return zero, false
		}
		buf = binary.AppendUvarint(buf, uint64(id))
	}
	v, ok := a.entries[string(buf)]
	return v, ok
}

// Insert adds or replaces a value.
//
// If a value already existed for the key, it is returned.
func (a *ApproxMap[K, V]) Insert(key K, value V) (old V, replaced bool) {
	k := a.key(key)
	old, replaced = a.entries[k]
	a.entries[k] = value
	return
}

// InsertNew adds a value only if the key is not yet present, returning the
// existing value otherwise.
func (a *ApproxMap[K, V]) InsertNew(key K, value V) (existing V, inserted bool) {
	k := a.key(key)
	if old, ok := a.entries[k]; ok {
		return old, false
	}
	a.entries[k] = value
	return value, true
}

// Len returns the number of distinct keys.
func (a *ApproxMap[K, V]) Len() int {
	return len(a.entries)
}

func (a *ApproxMap[K, V]) key(key K) string {
	fs := key.ApproxFloats()
	buf := make([]byte, 0, 2*(len(fs)+1))
	buf = binary.AppendUvarint(buf, uint64(len(fs)))
	for _, x := range fs {
		buf = binary.AppendUvarint(buf, uint64(a.floats.Intern(x)))
	}
	return string(buf)
}
