// Package group enumerates finite isometry groups from their generators and
// expands objects into orbits under those generators.
package group

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrInvalidGenerator   = errors.New("group: invalid generator")
	ErrOverflow           = errors.New("group: too many elements")
	ErrBadGroupStructure  = errors.New("group: bad group structure")
	ErrIncompleteGroup    = errors.New("group: incomplete group structure")
	ErrNoGenerators       = errors.New("group: no generators")
	ErrDimensionsMismatch = errors.New("group: transform dimensions do not match group")
)

// MaxElements is the number of distinct values an ElementID can hold.
const MaxElements = math.MaxUint16 + 1

// A GeneratorID indexes the ordered generator list of a group.
type GeneratorID uint16

// An ElementID indexes the enumerated elements of a group.
// ElementID 0 is always the identity.
type ElementID uint16

// Identity is the ElementID of the identity element.
const Identity ElementID = 0

func newGeneratorID(i int) (GeneratorID, error) {
	if i < 0 || i > math.MaxUint16 {
		return 0, errors.Wrapf(ErrOverflow, "generator index %d", i)
	}
	return GeneratorID(i), nil
}

func newElementID(i int) (ElementID, error) {
	if i < 0 || i > math.MaxUint16 {
		return 0, errors.Wrapf(ErrOverflow, "element index %d", i)
	}
	return ElementID(i), nil
}
