package group

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/hyperpuzzle/ndim"
)

func cubeGenerators(t *testing.T) []Generator {
	gens, err := ndim.CoxeterGenerators(4, 3)
	require.NoError(t, err)
	res := make([]Generator, len(gens))
	for i, g := range gens {
		res[i] = Generator{Tag: string(rune('a' + i)), Transform: g}
	}
	return res
}

func TestExpandOrbitVectors(t *testing.T) {
	gens := cubeGenerators(t)
	orbit, err := ExpandOrbit(gens, ndim.NewVector(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, 6, orbit.Len())
	for i := 0; i < orbit.Len(); i++ {
		v, ok := orbit.Get(i)
		require.True(t, ok)
		require.InDelta(t, 1, v.Norm(), 1e-8)

		// The recorded transform maps the seed to the element.
		require.True(t, orbit.Transforms[i].Apply(ndim.NewVector(0, 0, 1)).ApproxEq(v))

		// The recorded path reproduces the element.
		x := ndim.NewVector(0, 0, 1)
		for _, g := range orbit.Path(i) {
			x = gens[g].Transform.Apply(x)
		}
		require.True(t, x.ApproxEq(v))
		require.Equal(t, len(orbit.Path(i)), len(orbit.PathTags(i)))
	}
	require.Equal(t, NoEnd, orbit.Sequences[0].End)
}

func TestExpandOrbitDeterministic(t *testing.T) {
	gens := cubeGenerators(t)
	seed := ndim.NewVector(0.3, 0.2, 1)
	o1, err := ExpandOrbit(gens, seed)
	require.NoError(t, err)
	o2, err := ExpandOrbit(gens, seed)
	require.NoError(t, err)
	require.Equal(t, 48, o1.Len())
	require.Equal(t, o1.Sequences, o2.Sequences)
	for i := range o1.Elements {
		require.True(t, o1.Elements[i].ApproxEq(o2.Elements[i]))
	}

	// Expanding an orbit-closed set is a fixed point.
	o3, err := ExpandOrbit(gens, o1.PresentElements()...)
	require.NoError(t, err)
	present := o3.PresentElements()
	require.Equal(t, o1.Len(), len(present))
	for i := range o1.Elements {
		require.True(t, o1.Elements[i].ApproxEq(present[i]))
	}
}

func TestExpandOrbitMirrorSeed(t *testing.T) {
	// A seed lying on mirrors has fewer images than the group has elements.
	gens := cubeGenerators(t)
	orbit, err := ExpandOrbit(gens, ndim.NewVector(1, 1, 1))
	require.NoError(t, err)
	require.Equal(t, 8, orbit.Len())
}

func TestExpandOrbitPartial(t *testing.T) {
	gens := cubeGenerators(t)
	orbit, err := ExpandOrbit(gens, ndim.NewVector(0, 0, 1), ndim.NewVector(0, 0, -1), ndim.NewVector(1, 1, 1))
	require.NoError(t, err)
	require.Equal(t, 6+1+8, orbit.Len())
	require.Equal(t, 6+8, len(orbit.PresentElements()))

	// The opposite face is already in the first orbit.
	require.False(t, orbit.Present[6])
	_, ok := orbit.Get(6)
	require.False(t, ok)
	require.True(t, orbit.Elements[orbit.Sequences[6].End].ApproxEq(ndim.NewVector(0, 0, -1)))

	require.True(t, orbit.Present[7])
	require.Equal(t, 7, orbit.Seed(orbit.Len()-1))
	require.Equal(t, 0, orbit.Seed(5))
}

func TestExpandOrbitHyperplanes(t *testing.T) {
	gens := []Generator{{Tag: "r", Transform: ndim.Rotation2D(2 * math.Pi / 5)}}
	seed := ndim.MustHyperplane(ndim.NewVector(0, 1), 1)
	orbit, err := ExpandOrbit(gens, seed)
	require.NoError(t, err)
	require.Equal(t, 5, orbit.Len())
	for i := 1; i < orbit.Len(); i++ {
		require.Equal(t, []GeneratorID{0}, orbit.Sequences[i].Generators)
		require.Equal(t, i-1, orbit.Sequences[i].End)
		require.Len(t, orbit.Path(i), i)
	}
}

func TestExpandOrbitTransforms(t *testing.T) {
	// Conjugating a face rotation by the cube group yields the rotations
	// about every face axis in both directions.
	gens := cubeGenerators(t)
	r, err := ndim.RotationPlane(3, ndim.Unit(3, 0), ndim.Unit(3, 1), math.Pi/2)
	require.NoError(t, err)
	orbit, err := ExpandOrbit(gens, r)
	require.NoError(t, err)
	require.Equal(t, 6, orbit.Len())
}

func TestOrbitNames(t *testing.T) {
	gens := cubeGenerators(t)
	orbit, err := ExpandOrbit(gens, ndim.NewVector(0, 0, 1), ndim.NewVector(0, 0, -1))
	require.NoError(t, err)
	var n int
	names := orbit.Names([]string{"U", "", "D"}, func() string {
		n++
		return string(rune('0' + n))
	})
	require.Equal(t, []string{"U", "1", "D", "2", "3", "4", ""}, names)
}

func TestExpandOrbitTooManyGenerators(t *testing.T) {
	gens := make([]Generator, MaxElements+1)
	for i := range gens {
		gens[i] = Generator{Transform: ndim.Identity(2)}
	}
	_, err := ExpandOrbit(gens, ndim.NewVector(1, 0))
	require.True(t, errors.Is(err, ErrOverflow))

	orbit, err := ExpandOrbit(gens[:MaxElements], ndim.NewVector(1, 0))
	require.NoError(t, err)
	require.Equal(t, 1, orbit.Len())
}
