package puzzle

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/hyperpuzzle/group"
	"github.com/unixpickle/hyperpuzzle/ndim"
)

func cubeRotations(t *testing.T) (*group.IsometryGroup, []group.Generator) {
	gens, err := ndim.CoxeterGenerators(4, 3)
	require.NoError(t, err)
	sym, err := group.Build(gens...)
	require.NoError(t, err)
	rotations := []group.Generator{
		{Tag: "a", Transform: gens[0].Compose(gens[1])},
		{Tag: "b", Transform: gens[1].Compose(gens[2])},
	}
	return sym, rotations
}

func newCubeBuilder(t *testing.T, n int) *Builder {
	b := NewBuilder(fmt.Sprintf("%dx%dx%d", n, n, n), 3)
	sym, rotations := cubeRotations(t)
	b.Symmetry = sym

	depths := make([]float64, n+1)
	for i := range depths {
		depths[i] = 1 - 2*float64(i)/float64(n)
	}
	faces := []struct {
		name   string
		vector ndim.Vector
	}{
		{"R", ndim.NewVector(1, 0, 0)},
		{"L", ndim.NewVector(-1, 0, 0)},
		{"U", ndim.NewVector(0, 1, 0)},
		{"D", ndim.NewVector(0, -1, 0)},
		{"F", ndim.NewVector(0, 0, 1)},
		{"B", ndim.NewVector(0, 0, -1)},
	}
	for _, face := range faces {
		color, err := b.Colors.Add(face.name, "")
		require.NoError(t, err)
		require.NoError(t, b.Shape.Carve(ndim.MustHyperplane(face.vector, 1), color))
		_, err = b.Axes.AddAxis(face.vector, depths, face.name)
		require.NoError(t, err)
	}
	r, err := ndim.RotationPlane(3, ndim.Unit(3, 1), ndim.Unit(3, 2), math.Pi/2)
	require.NoError(t, err)
	_, err = b.Twists.AddTwistOrbit(rotations, 0, r, "R", true)
	require.NoError(t, err)
	return b
}

func countTypes(p *Puzzle) map[string]int {
	res := map[string]int{}
	for _, piece := range p.Pieces {
		res[p.PieceTypes[piece.Type].Name]++
	}
	return res
}

func TestLayersFromDepths(t *testing.T) {
	layers, err := LayersFromDepths([]float64{1, -1})
	require.NoError(t, err)
	require.Equal(t, []Layer{{Top: 1, Bottom: -1}}, layers)

	layers, err = LayersFromDepths([]float64{math.Inf(1), 1, math.Inf(-1)})
	require.NoError(t, err)
	require.Len(t, layers, 2)

	// Out-of-order depths are rejected rather than sorted.
	_, err = LayersFromDepths([]float64{3, 1, 2})
	require.True(t, errors.Is(err, ErrLayersNotSorted))
	var layerErr *LayerError
	require.True(t, errors.As(err, &layerErr))
	require.Equal(t, 2, layerErr.Index)

	_, err = LayersFromDepths([]float64{1, 1})
	require.True(t, errors.Is(err, ErrLayersNotSorted))
	_, err = LayersFromDepths([]float64{1, math.NaN()})
	require.Error(t, err)

	axes := NewAxisSystem()
	_, err = axes.AddAxis(ndim.NewVector(1, 0, 0), []float64{3, 1, 2}, "X")
	require.True(t, errors.Is(err, ErrLayersNotSorted))
	require.Equal(t, 0, axes.Len())
}

func TestSingleLayerAxis(t *testing.T) {
	b := NewBuilder("slab", 3)
	b.KeepInternals = true
	id, err := b.Axes.AddAxis(ndim.NewVector(0, 0, 2), []float64{1.0, -1.0}, "Z")
	require.NoError(t, err)
	axis := b.Axes.Get(id)
	require.Len(t, axis.Layers, 1)

	top, ok := axis.Layers[0].TopPlane(axis.Vector)
	require.True(t, ok)
	require.True(t, top.ApproxEq(ndim.MustHyperplane(ndim.NewVector(0, 0, 1), 1.0)))
	bottom, ok := axis.Layers[0].BottomPlane(axis.Vector)
	require.True(t, ok)
	require.True(t, bottom.Flip().ApproxEq(ndim.MustHyperplane(ndim.NewVector(0, 0, 1), -1.0)))

	regions, err := axis.PlaneBoundedRegions(AllLayers(1))
	require.NoError(t, err)
	require.Len(t, regions, 1)
	require.Len(t, regions[0], 2)
	require.True(t, regions[0][0].ApproxEq(top))
	require.True(t, regions[0][1].ApproxEq(bottom))

	p, err := b.Build()
	require.NoError(t, err)
	require.Len(t, p.Pieces, 3)
	var inLayer int
	for _, piece := range p.Pieces {
		if layer, ok := p.LayerOf(piece.ID, id); ok {
			require.Equal(t, 0, layer)
			inLayer++
		}
	}
	require.Equal(t, 1, inLayer)
}

func TestPlaneBoundedRegions(t *testing.T) {
	axes := NewAxisSystem()
	id, err := axes.AddAxis(ndim.NewVector(1, 0), []float64{math.Inf(1), 1, 0, -1, math.Inf(-1)}, "")
	require.NoError(t, err)
	axis := axes.Get(id)
	require.Len(t, axis.Layers, 4)
	require.Equal(t, []float64{1, 0, -1}, axis.Depths)

	regions, err := axis.PlaneBoundedRegions(0b1011)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	require.Len(t, regions[0], 1)
	require.InDelta(t, 0, regions[0][0].Distance, 1e-8)
	require.True(t, regions[0][0].Normal.ApproxEq(ndim.NewVector(-1, 0)))
	require.Len(t, regions[1], 1)
	require.InDelta(t, -1, regions[1][0].Distance, 1e-8)

	regions, err = axis.PlaneBoundedRegions(AllLayers(4))
	require.NoError(t, err)
	require.Len(t, regions, 1)
	require.Len(t, regions[0], 0)

	_, err = axis.PlaneBoundedRegions(0b10000)
	require.Error(t, err)
}

func TestAxisVectorTaken(t *testing.T) {
	axes := NewAxisSystem()
	_, err := axes.AddAxis(ndim.NewVector(0, 1, 0), []float64{1, 0}, "U")
	require.NoError(t, err)

	_, err = axes.AddAxis(ndim.NewVector(0, 2+1e-9, 0), []float64{1, 0}, "U2")
	require.True(t, errors.Is(err, ErrAxisVectorTaken))
	var axisErr *AxisError
	require.True(t, errors.As(err, &axisErr))
	require.Equal(t, 1, axes.Len())

	_, err = axes.AddAxis(ndim.NewVector(0, 0, 0), []float64{1, 0}, "zero")
	require.Error(t, err)
	require.Equal(t, 1, axes.Len())
}

func TestAxisOrbit(t *testing.T) {
	_, rotations := cubeRotations(t)
	axes := NewAxisSystem()
	ids, err := axes.AddAxisOrbit(rotations, ndim.NewVector(1, 1, 1), []float64{1, 0}, "first")
	require.NoError(t, err)
	require.Len(t, ids, 8)
	require.Equal(t, "first", axes.Get(ids[0]).Name)
	require.Equal(t, "A", axes.Get(ids[1]).Name)

	_, err = axes.AddAxisOrbit(rotations, ndim.NewVector(-1, 1, 1), []float64{1, 0})
	require.True(t, errors.Is(err, ErrAxisVectorTaken))
}

func TestAxisOrbitAllOrNothing(t *testing.T) {
	_, rotations := cubeRotations(t)
	axes := NewAxisSystem()
	_, err := axes.AddAxis(ndim.NewVector(0, 0, -1), []float64{1, 0}, "B")
	require.NoError(t, err)

	_, err = axes.AddAxisOrbit(rotations, ndim.NewVector(1, 0, 0), []float64{1, 0})
	require.True(t, errors.Is(err, ErrAxisVectorTaken))
	require.Equal(t, 1, axes.Len())
	_, ok := axes.ByVector(ndim.NewVector(1, 0, 0))
	require.False(t, ok)

	_, err = axes.AddAxisOrbit(rotations, ndim.NewVector(1, 1, 1), []float64{1, 0})
	require.NoError(t, err)
	require.Equal(t, 9, axes.Len())
}

func TestTwistOrbitAllOrNothing(t *testing.T) {
	_, rotations := cubeRotations(t)
	axes := NewAxisSystem()
	x, err := axes.AddAxis(ndim.NewVector(1, 0, 0), []float64{1, 0}, "X")
	require.NoError(t, err)
	twists := NewTwistSystem(axes, 3)
	r, err := ndim.RotationPlane(3, ndim.Unit(3, 1), ndim.Unit(3, 2), math.Pi/2)
	require.NoError(t, err)

	// Only the seed's axis exists, so every other image fails.
	_, err = twists.AddTwistOrbit(rotations, x, r, "X", true)
	require.True(t, errors.Is(err, ErrNoSuchAxis))
	require.Equal(t, 0, twists.Len())

	id, err := twists.AddTwist(x, r, "X", true)
	require.NoError(t, err)
	require.Equal(t, TwistID(0), id)
}

func TestTwists(t *testing.T) {
	axes := NewAxisSystem()
	x, err := axes.AddAxis(ndim.NewVector(1, 0, 0), []float64{1, 0}, "X")
	require.NoError(t, err)
	twists := NewTwistSystem(axes, 3)

	bad, err := ndim.RotationPlane(3, ndim.Unit(3, 0), ndim.Unit(3, 1), math.Pi/2)
	require.NoError(t, err)
	_, err = twists.AddTwist(x, bad, "bad", false)
	require.True(t, errors.Is(err, ErrTwistDoesNotFixAxis))
	var twistErr *TwistError
	require.True(t, errors.As(err, &twistErr))
	require.Equal(t, "X", twistErr.Axis)
	require.Equal(t, 0, twists.Len())

	r, err := ndim.RotationPlane(3, ndim.Unit(3, 1), ndim.Unit(3, 2), math.Pi/2)
	require.NoError(t, err)
	id, err := twists.AddTwist(x, r, "", true)
	require.NoError(t, err)
	require.Equal(t, 2, twists.Len())
	require.Equal(t, "X", twists.Get(id).Name)
	inv, ok := twists.ByName("X'")
	require.True(t, ok)
	require.Equal(t, inv, twists.Get(id).Inverse)
	require.Equal(t, id, twists.Get(inv).Inverse)

	again, err := twists.AddTwist(x, r, "other", false)
	require.NoError(t, err)
	require.Equal(t, id, again)

	half := r.Compose(r)
	halfID, err := twists.AddTwist(x, half, "", true)
	require.NoError(t, err)
	require.Equal(t, 3, twists.Len())
	require.Equal(t, "X3", twists.Get(halfID).Name)
	require.Equal(t, halfID, twists.Get(halfID).Inverse)
	require.Equal(t, []TwistID{0, 1, 2}, axes.Get(x).Twists)
}

func TestCube3x3x3(t *testing.T) {
	p, err := newCubeBuilder(t, 3).Build()
	require.NoError(t, err)
	require.Len(t, p.Pieces, 26)
	require.Len(t, p.Stickers, 54)
	require.Len(t, p.Colors, 6)
	require.Len(t, p.Axes, 6)
	require.Len(t, p.Twists, 12)
	require.Equal(t, map[string]int{"center": 6, "edge": 12, "corner": 8}, countTypes(p))

	var volume float64
	for _, piece := range p.Pieces {
		volume += piece.Volume
	}
	require.InDelta(t, 8-8.0/27, volume, 1e-8)

	for _, axis := range p.Axes {
		require.Len(t, axis.Layers, 3)
		require.Len(t, axis.Twists, 2)
		for layer := 0; layer < 3; layer++ {
			expected := 9
			if layer == 1 {
				expected = 8
			}
			require.Len(t, p.PiecesInLayers(axis.ID, 1<<uint(layer)), expected)
		}
	}

	twist, err := p.TwistByName("U'")
	require.NoError(t, err)
	u, err := p.AxisByName("U")
	require.NoError(t, err)
	require.Equal(t, u.ID, twist.Axis)
	require.True(t, twist.Transform.Fixes(u.Vector))
	_, err = p.TwistByName("nope")
	require.True(t, errors.Is(err, ErrNoSuchTwist))

	red, err := p.ColorByName("R")
	require.NoError(t, err)
	var redStickers int
	for _, s := range p.Stickers {
		if s.Color == red.ID {
			redStickers++
			require.InDelta(t, 1, s.Plane.Distance, 1e-8)
			require.True(t, s.Plane.Normal.ApproxEq(ndim.NewVector(1, 0, 0)))
		}
	}
	require.Equal(t, 9, redStickers)

	// No default scheme was defined.
	var hasSchemeWarning bool
	for _, w := range p.Warnings {
		if errors.Is(w.Err, ErrMissingScheme) {
			hasSchemeWarning = true
		}
	}
	require.True(t, hasSchemeWarning)
	require.Len(t, p.Schemes[DefaultSchemeName], 6)
}

func TestCube5x5x5PieceTypes(t *testing.T) {
	p, err := newCubeBuilder(t, 5).Build()
	require.NoError(t, err)
	require.Len(t, p.Pieces, 98)

	var subtypeSizes []int
	for _, pt := range p.PieceTypes {
		if pt.Parent == NoPieceType {
			continue
		}
		parent := p.PieceTypes[pt.Parent].Name
		require.True(t, strings.HasPrefix(pt.Name, parent+"/"))
		if parent == "center" {
			subtypeSizes = append(subtypeSizes, len(p.PiecesOfType(pt.ID)))
		}
	}
	require.ElementsMatch(t, []int{6, 24, 24}, subtypeSizes)

	counts := map[string]int{}
	for _, pt := range p.PieceTypes {
		if pt.Parent == NoPieceType {
			counts[pt.Name] = len(p.PiecesOfType(pt.ID))
		}
	}
	require.Equal(t, map[string]int{"center": 54, "edge": 36, "corner": 8}, counts)
}

func TestCarveNullShape(t *testing.T) {
	b := NewBuilder("empty", 3)
	before := b.Shape.Pieces()
	err := b.Shape.Carve(ndim.MustHyperplane(ndim.NewVector(1, 0, 0), -20), NoColor)
	require.True(t, errors.Is(err, ErrNullShape))
	require.Equal(t, before, b.Shape.Pieces())

	// A shape with no stickers has no pieces to keep.
	_, err = b.Axes.AddAxis(ndim.NewVector(1, 0, 0), []float64{1, 0}, "X")
	require.NoError(t, err)
	_, err = b.Axes.AddAxis(ndim.NewVector(0, 1, 0), []float64{1, 0}, "X")
	require.NoError(t, err)
	_, err = b.Build()
	require.True(t, errors.Is(err, ErrNullShape))
	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr))
	require.Len(t, buildErr.Warnings, 1)
	require.Equal(t, KindAxis, buildErr.Warnings[0].Kind)
}

func TestCarveOrbitAllOrNothing(t *testing.T) {
	mirror, err := ndim.Reflection(ndim.NewVector(1, 0, 0))
	require.NoError(t, err)
	gens := []group.Generator{{Tag: "m", Transform: mirror}}

	b := NewBuilder("slab", 3)
	pieces := b.Shape.Pieces()
	elements := b.Shape.Space().Len()

	// The first cut keeps x < -0.5, leaving nothing for its mirror image.
	_, err = b.Shape.CarveOrbit(gens, ndim.MustHyperplane(ndim.NewVector(1, 0, 0), -0.5),
		b.Colors, "Left", "Right")
	require.True(t, errors.Is(err, ErrNullShape))
	require.Equal(t, 0, b.Colors.Len())
	_, ok := b.Colors.ByName("Left")
	require.False(t, ok)
	require.Equal(t, pieces, b.Shape.Pieces())
	require.Equal(t, elements, b.Shape.Space().Len())
	require.False(t, b.Shape.Space().IsConsumed(pieces[0]))

	colors, err := b.Shape.CarveOrbit(gens, ndim.MustHyperplane(ndim.NewVector(1, 0, 0), 1),
		b.Colors, "Left", "Right")
	require.NoError(t, err)
	require.Len(t, colors, 2)
	require.Equal(t, "Left", b.Colors.Get(colors[0]).Name)
	require.Len(t, b.Shape.Pieces(), 1)
}

func TestSliceOrbit(t *testing.T) {
	_, rotations := cubeRotations(t)
	b := NewBuilder("sliced", 3)
	b.KeepInternals = true
	colors, err := b.Shape.CarveOrbit(rotations, ndim.MustHyperplane(ndim.NewVector(1, 0, 0), 1),
		b.Colors, "R", "")
	require.NoError(t, err)
	require.Len(t, colors, 6)
	require.Equal(t, "R", b.Colors.Get(colors[0]).Name)
	require.Equal(t, "c1", b.Colors.Get(colors[1]).Name)

	_, err = b.Shape.SliceOrbit(rotations, ndim.MustHyperplane(ndim.NewVector(1, 0, 0), 0), nil)
	require.NoError(t, err)
	require.Len(t, b.Shape.Pieces(), 8)
}

func TestNameConflictWarning(t *testing.T) {
	colors := NewColorSystem()
	_, err := colors.Add("{Red,R}", "#ff0000")
	require.NoError(t, err)
	id, err := colors.Add("R", "#ff0000")
	require.NoError(t, err)
	require.Equal(t, "c1", colors.Get(id).Name)
	id, ok := colors.ByName("Red")
	require.True(t, ok)
	require.Equal(t, ColorID(0), id)

	warnings := colors.Warnings()
	require.Len(t, warnings, 2)
	require.Equal(t, KindColor, warnings[0].Kind)

	require.NoError(t, colors.AddScheme(DefaultSchemeName, map[string]string{"R": "red"}))
	require.Len(t, colors.Warnings(), 1)
	scheme, ok := colors.Scheme(DefaultSchemeName)
	require.True(t, ok)
	require.Equal(t, []string{"red", "#ff0000"}, scheme)
	require.True(t, errors.Is(colors.AddScheme("bad", map[string]string{"Blue": "blue"}), ErrNoSuchColor))
}

func TestElementName(t *testing.T) {
	p, err := newCubeBuilder(t, 2).Build()
	require.NoError(t, err)
	require.Len(t, p.Pieces, 8)

	name, err := p.ElementName(ElementRef{Kind: KindAxis, ID: 2})
	require.NoError(t, err)
	require.Equal(t, "U", name)
	name, err = p.ElementName(ElementRef{Kind: KindPuzzle})
	require.NoError(t, err)
	require.Equal(t, "2x2x2", name)
	name, err = p.ElementName(p.Pieces[0].Ref())
	require.NoError(t, err)
	require.Len(t, strings.Split(name, "-"), 3)
	name, err = p.ElementName(p.PieceTypes[0].Ref())
	require.NoError(t, err)
	require.Equal(t, "corner", name)

	_, err = p.ElementName(ElementRef{Kind: KindTwist, ID: len(p.Twists)})
	require.True(t, errors.Is(err, ErrNoSuchElement))
}

func TestPieceMeshes(t *testing.T) {
	p, err := newCubeBuilder(t, 3).Build()
	require.NoError(t, err)
	meshes, err := p.PieceMeshes()
	require.NoError(t, err)
	require.Len(t, meshes, len(p.Pieces))
	for i, m := range meshes {
		require.InDelta(t, p.Pieces[i].Volume, m.Volume(), 1e-5)
	}
}

func TestScramble(t *testing.T) {
	p, err := newCubeBuilder(t, 3).Build()
	require.NoError(t, err)

	params := ScrambleParams{Type: ScrambleFull, Seed: NewScrambleSeed(time.Unix(1700000000, 0), "beacon")}
	var progress ScrambleProgress
	moves1, err := p.Scramble(params, &progress)
	require.NoError(t, err)
	require.Len(t, moves1, FullScrambleLength)
	done, total := progress.Progress()
	require.Equal(t, int64(FullScrambleLength), done)
	require.Equal(t, int64(FullScrambleLength), total)

	moves2, err := p.Scramble(params, nil)
	require.NoError(t, err)
	require.Equal(t, moves1, moves2)

	params.Seed += "x"
	moves3, err := p.Scramble(params, nil)
	require.NoError(t, err)
	require.NotEqual(t, moves1, moves3)

	for i, m := range moves1 {
		twist := p.Twists[m.Twist]
		require.Less(t, int(m.Layers), 1<<3)
		require.NotZero(t, m.Layers)
		if i > 0 {
			require.NotEqual(t, p.Twists[moves1[i-1].Twist].Axis, twist.Axis)
		}
	}

	partial, err := p.Scramble(ScrambleParams{Type: ScramblePartial, Length: 20, Seed: "s"}, nil)
	require.NoError(t, err)
	require.Len(t, partial, 20)

	var cancelled ScrambleProgress
	cancelled.Cancel()
	moves, err := p.Scramble(params, &cancelled)
	require.True(t, errors.Is(err, ErrScrambleCancelled))
	require.Len(t, moves, 0)
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	var constructed int
	require.NoError(t, c.Register("cube2", "2x2x2", func() (*Builder, error) {
		constructed++
		return newCubeBuilder(t, 2), nil
	}))
	require.True(t, errors.Is(c.Register("cube2", "again", nil), ErrDuplicatePuzzle))
	require.NoError(t, c.Register("broken", "Broken", func() (*Builder, error) {
		return nil, errors.New("no definition")
	}))
	require.Equal(t, []string{"broken", "cube2"}, c.IDs())

	p1, err := c.Build("cube2")
	require.NoError(t, err)
	p2, err := c.Build("cube2")
	require.NoError(t, err)
	require.True(t, p1 == p2)
	require.Equal(t, 1, constructed)

	_, err = c.Build("broken")
	require.Error(t, err)
	_, err = c.Build("missing")
	require.True(t, errors.Is(err, ErrNoSuchPuzzle))
	name, err := c.Name("broken")
	require.NoError(t, err)
	require.Equal(t, "Broken", name)
}

func TestCatalogVerbose(t *testing.T) {
	c := NewCatalog()
	c.Verbose = true
	var built *Builder
	require.NoError(t, c.Register("cube2", "2x2x2", func() (*Builder, error) {
		built = newCubeBuilder(t, 2)
		return built, nil
	}))
	_, err := c.Build("cube2")
	require.NoError(t, err)
	require.True(t, built.Verbose)
}

func TestPuzzleNamesDetached(t *testing.T) {
	b := newCubeBuilder(t, 2)
	p, err := b.Build()
	require.NoError(t, err)

	_, err = b.Axes.AddAxis(ndim.NewVector(1, 1, 1), []float64{1, 0}, "Q")
	require.NoError(t, err)
	_, err = p.AxisByName("Q")
	require.True(t, errors.Is(err, ErrNoSuchAxis))
	require.Len(t, p.Axes, 6)
	axis, err := p.AxisByName("R")
	require.NoError(t, err)
	require.Equal(t, AxisID(0), axis.ID)

	_, err = b.Colors.Add("Extra", "")
	require.NoError(t, err)
	_, err = p.ColorByName("Extra")
	require.True(t, errors.Is(err, ErrNoSuchColor))
}
