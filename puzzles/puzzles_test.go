package puzzles

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/hyperpuzzle/puzzle"
)

// countTopLevelTypes counts pieces by the name of their top-level type.
func countTopLevelTypes(p *puzzle.Puzzle) map[string]int {
	res := map[string]int{}
	for _, piece := range p.Pieces {
		t := p.PieceTypes[piece.Type]
		for t.Parent != puzzle.NoPieceType {
			t = p.PieceTypes[t.Parent]
		}
		res[t.Name]++
	}
	return res
}

func TestRegister(t *testing.T) {
	c := puzzle.NewCatalog()
	require.NoError(t, Register(c))
	require.Equal(t, []string{
		"ft_cube_2", "ft_cube_3", "ft_cube_4", "ft_cube_5", "ft_cube_6", "ft_cube_7",
		"ft_hypercube_3", "megaminx",
	}, c.IDs())

	name, err := c.Name("ft_cube_5")
	require.NoError(t, err)
	require.Equal(t, "5x5x5", name)

	p, err := c.Build("ft_cube_2")
	require.NoError(t, err)
	require.Len(t, p.Pieces, 8)

	err = Register(c)
	require.True(t, errors.Is(err, puzzle.ErrDuplicatePuzzle))
}

func TestFTCube(t *testing.T) {
	_, err := FTCube(0)
	require.Error(t, err)

	b, err := FTCube(4)
	require.NoError(t, err)
	p, err := b.Build()
	require.NoError(t, err)
	require.Empty(t, p.Warnings)
	require.Equal(t, "4x4x4", p.Name)
	require.Len(t, p.Pieces, 56)
	require.Len(t, p.Stickers, 96)
	require.Len(t, p.Axes, 6)
	require.Len(t, p.Twists, 12)
	require.Equal(t, map[string]int{"center": 24, "edge": 24, "corner": 8}, countTopLevelTypes(p))

	for _, axis := range p.Axes {
		require.Len(t, axis.Layers, 4)
		require.Len(t, axis.Twists, 2)
		for layer := 0; layer < 4; layer++ {
			expected := 16
			if layer == 1 || layer == 2 {
				expected = 12
			}
			require.Len(t, p.PiecesInLayers(axis.ID, layerBit(layer)), expected)
		}
	}

	twist, err := p.TwistByName("F")
	require.NoError(t, err)
	inverse, err := p.TwistByName("F'")
	require.NoError(t, err)
	require.Equal(t, inverse.ID, twist.Inverse)
	require.True(t, twist.Transform.Compose(inverse.Transform).IsIdentity())

	color, err := p.ColorByName("U")
	require.NoError(t, err)
	require.Equal(t, "white", p.Schemes[puzzle.DefaultSchemeName][color.ID])
}

func TestFTHypercube3(t *testing.T) {
	b, err := FTHypercube3()
	require.NoError(t, err)
	p, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 4, p.Dims)
	require.Len(t, p.Pieces, 80)
	require.Len(t, p.Stickers, 216)
	require.Len(t, p.Axes, 8)
	require.Len(t, p.Colors, 8)
	require.Len(t, p.Twists, 48)
	require.Equal(t, map[string]int{
		"center":  8,
		"2-color": 24,
		"edge":    32,
		"corner":  16,
	}, countTopLevelTypes(p))

	for _, axis := range p.Axes {
		require.Len(t, axis.Twists, 6)
		require.Len(t, p.PiecesInLayers(axis.ID, layerBit(0)), 27)
	}
	for _, twist := range p.Twists {
		require.True(t, twist.Transform.Fixes(p.Axes[twist.Axis].Vector))
		require.False(t, twist.Transform.IsReflection())
	}

	_, err = p.AxisByName("O")
	require.NoError(t, err)
	_, err = p.PieceMeshes()
	require.True(t, errors.Is(err, puzzle.ErrDimensionsMismatch))
}

func TestMegaminx(t *testing.T) {
	b, err := Megaminx()
	require.NoError(t, err)
	p, err := b.Build()
	require.NoError(t, err)
	require.Empty(t, p.Warnings)
	require.Len(t, p.Colors, 12)
	require.Len(t, p.Axes, 12)
	require.Len(t, p.Twists, 48)
	require.Len(t, p.Pieces, 62)
	require.Len(t, p.Stickers, 132)
	require.Equal(t, map[string]int{"center": 12, "edge": 30, "corner": 20}, countTopLevelTypes(p))

	for i, f := range megaminxFaces {
		color, err := p.ColorByName(f.Name)
		require.NoError(t, err)
		require.Equal(t, f.Color, p.Schemes[puzzle.DefaultSchemeName][color.ID])
		axis, err := p.AxisByName(f.Name)
		require.NoError(t, err)
		require.Equal(t, puzzle.AxisID(i), axis.ID)
		require.Len(t, axis.Twists, 4)
		require.Len(t, p.PiecesInLayers(axis.ID, layerBit(0)), 11)
	}

	for _, axis := range p.Axes {
		for _, id := range axis.Twists {
			twist := p.Twists[id]
			require.Equal(t, axis.ID, twist.Axis)
			require.NotEqual(t, puzzle.NoTwist, twist.Inverse)
		}
	}
}

func layerBit(layer int) puzzle.LayerMask {
	return puzzle.LayerMask(1) << uint(layer)
}
