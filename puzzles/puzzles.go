// Package puzzles defines the built-in puzzles.
package puzzles

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/unixpickle/hyperpuzzle/group"
	"github.com/unixpickle/hyperpuzzle/ndim"
	"github.com/unixpickle/hyperpuzzle/puzzle"
)

const (
	MinCubeSize = 2
	MaxCubeSize = 7
)

// Register adds every built-in puzzle to a catalog.
func Register(c *puzzle.Catalog) error {
	for n := MinCubeSize; n <= MaxCubeSize; n++ {
		n := n
		name := fmt.Sprintf("%dx%dx%d", n, n, n)
		err := c.Register(fmt.Sprintf("ft_cube_%d", n), name, func() (*puzzle.Builder, error) {
			return FTCube(n)
		})
		if err != nil {
			return err
		}
	}
	if err := c.Register("ft_hypercube_3", "3x3x3x3", FTHypercube3); err != nil {
		return err
	}
	return c.Register("megaminx", "Megaminx", Megaminx)
}

type face struct {
	Name  string
	Color string
}

var cubeFaces = []face{
	{"R", "red"},
	{"L", "orange"},
	{"U", "white"},
	{"D", "yellow"},
	{"F", "green"},
	{"B", "blue"},
	{"O", "purple"},
	{"I", "pink"},
}

// FTCube creates an n×n×n face-turning cube.
func FTCube(n int) (*puzzle.Builder, error) {
	if n < 1 || n > puzzle.MaxLayers {
		return nil, errors.Errorf("puzzles: unsupported cube size %d", n)
	}
	return faceTurningCube(fmt.Sprintf("%dx%dx%d", n, n, n), 3, n)
}

// FTHypercube3 creates a 3×3×3×3 face-turning hypercube.
func FTHypercube3() (*puzzle.Builder, error) {
	return faceTurningCube("3x3x3x3", 4, 3)
}

// faceTurningCube creates a measure polytope with n layers per facet, whose
// twists are the quarter turns of each facet.
func faceTurningCube(name string, dims, n int) (*puzzle.Builder, error) {
	schlafli := make([]float64, dims-1)
	schlafli[0] = 4
	for i := 1; i < len(schlafli); i++ {
		schlafli[i] = 3
	}
	mirrors, gens, err := coxeter(schlafli...)
	if err != nil {
		return nil, err
	}

	b := puzzle.NewBuilder(name, dims)
	b.Symmetry, err = group.Build(gens...)
	if err != nil {
		return nil, errors.Wrap(err, "build symmetry group")
	}

	depths := make([]float64, n+1)
	for i := range depths {
		depths[i] = 1 - 2*float64(i)/float64(n)
	}
	for i := 0; i < dims; i++ {
		for j, sign := range []float64{1, -1} {
			f := cubeFaces[2*i+j]
			v := ndim.Unit(dims, i).Scale(sign)
			color, err := b.Colors.Add(f.Name, f.Color)
			if err != nil {
				return nil, err
			}
			if err := b.Shape.Carve(ndim.MustHyperplane(v, 1), color); err != nil {
				return nil, errors.Wrapf(err, "carve face %s", f.Name)
			}
			if _, err := b.Axes.AddAxis(v, depths, f.Name); err != nil {
				return nil, err
			}
		}
	}
	if err := b.Colors.AddScheme(puzzle.DefaultSchemeName, nil); err != nil {
		return nil, err
	}

	if err := addFaceTwists(b, mirrors, gens, 1); err != nil {
		return nil, err
	}
	return b, nil
}

var megaminxFaces = []face{
	{"White", "#ffffff"},
	{"Green", "#00aa00"},
	{"Red", "#dd0000"},
	{"Blue", "#0000dd"},
	{"Yellow", "#ffee00"},
	{"Purple", "#8800aa"},
	{"Gray", "#888888"},
	{"Lime", "#88ff44"},
	{"Orange", "#ff8800"},
	{"LightBlue", "#66ccff"},
	{"Cream", "#ffeecc"},
	{"Pink", "#ff88cc"},
}

// MegaminxDepth is the depth of the cut below each face of the megaminx,
// for a dodecahedron with an inradius of 1.
const MegaminxDepth = 0.7

// Megaminx creates a megaminx.
func Megaminx() (*puzzle.Builder, error) {
	mirrors, gens, err := coxeter(5, 3)
	if err != nil {
		return nil, err
	}
	pole, err := ndim.CoxeterPole(mirrors, 2)
	if err != nil {
		return nil, err
	}

	b := puzzle.NewBuilder("Megaminx", 3)
	b.Symmetry, err = group.Build(gens...)
	if err != nil {
		return nil, errors.Wrap(err, "build symmetry group")
	}
	reflections := orbitGenerators(gens)

	names := make([]string, len(megaminxFaces))
	for i, f := range megaminxFaces {
		names[i] = f.Name
	}
	colors, err := b.Shape.CarveOrbit(reflections, ndim.MustHyperplane(pole, 1), b.Colors, names...)
	if err != nil {
		return nil, errors.Wrap(err, "carve dodecahedron")
	}
	scheme := map[string]string{}
	for i, id := range colors {
		scheme[b.Colors.Get(id).Name] = megaminxFaces[i].Color
	}
	if err := b.Colors.AddScheme(puzzle.DefaultSchemeName, scheme); err != nil {
		return nil, err
	}

	if _, err := b.Axes.AddAxisOrbit(reflections, pole, []float64{1, MegaminxDepth}, names...); err != nil {
		return nil, err
	}
	if err := addFaceTwists(b, mirrors, gens, 2); err != nil {
		return nil, err
	}
	return b, nil
}

// addFaceTwists adds rotations around every facet pole, turning by up to
// maxTurns of the smallest facet rotation, in both directions.
func addFaceTwists(b *puzzle.Builder, mirrors []ndim.Vector, gens []ndim.Transform, maxTurns int) error {
	pole, err := ndim.CoxeterPole(mirrors, len(mirrors)-1)
	if err != nil {
		return err
	}
	axis, ok := b.Axes.ByVector(pole)
	if !ok {
		return errors.Wrapf(puzzle.ErrNoSuchAxis, "facet pole %v", pole)
	}
	rotations := rotationGenerators(gens)
	turn := gens[0].Compose(gens[1])
	transform := turn
	for i := 0; i < maxTurns; i++ {
		if _, err := b.Twists.AddTwistOrbit(rotations, axis, transform, "", true); err != nil {
			return err
		}
		transform = transform.Compose(turn)
	}
	return nil
}

func coxeter(schlafli ...float64) ([]ndim.Vector, []ndim.Transform, error) {
	mirrors, err := ndim.CoxeterMirrors(schlafli...)
	if err != nil {
		return nil, nil, err
	}
	gens := make([]ndim.Transform, len(mirrors))
	for i, m := range mirrors {
		gens[i], err = ndim.Reflection(m)
		if err != nil {
			return nil, nil, err
		}
	}
	return mirrors, gens, nil
}

func orbitGenerators(gens []ndim.Transform) []group.Generator {
	res := make([]group.Generator, len(gens))
	for i, g := range gens {
		res[i] = group.Generator{Tag: fmt.Sprint(i), Transform: g}
	}
	return res
}

// rotationGenerators generates the rotation subgroup of a Coxeter group from
// products of adjacent reflections.
func rotationGenerators(gens []ndim.Transform) []group.Generator {
	res := make([]group.Generator, len(gens)-1)
	for i := range res {
		res[i] = group.Generator{
			Tag:       fmt.Sprintf("r%d", i),
			Transform: gens[i].Compose(gens[i+1]),
		}
	}
	return res
}
