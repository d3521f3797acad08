// Package puzzle assembles twisty puzzles from a shape, colors, axes, and
// twists, and provides the finished puzzle to simulators and renderers.
package puzzle

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/hyperpuzzle/names"
	"github.com/unixpickle/hyperpuzzle/ndim"
	"github.com/unixpickle/hyperpuzzle/space"
	"github.com/unixpickle/model3d/model3d"
)

// A PieceID identifies a piece of a puzzle.
type PieceID int

// A StickerID identifies a sticker of a puzzle.
type StickerID int

// A PieceTypeID identifies a piece type of a puzzle.
type PieceTypeID int

// NoPieceType is the parent of top-level piece types.
const NoPieceType PieceTypeID = -1

// A Piece is a convex polytope which moves as a unit.
type Piece struct {
	ID       PieceID
	Type     PieceTypeID
	Stickers []StickerID

	Centroid ndim.Vector
	Vertices []ndim.Vector

	// Planes bound the piece, with the piece on the inside of each.
	Planes []ndim.Hyperplane

	Volume float64
}

func (p *Piece) Ref() ElementRef {
	return ElementRef{Kind: KindPiece, ID: int(p.ID)}
}

// A Sticker is a colored facet of a piece.
type Sticker struct {
	ID       StickerID
	Piece    PieceID
	Color    ColorID
	Plane    ndim.Hyperplane
	Centroid ndim.Vector
}

func (s *Sticker) Ref() ElementRef {
	return ElementRef{Kind: KindSticker, ID: int(s.ID)}
}

// A PieceType groups similar pieces, such as all of the corners of a cube.
//
// Types form a hierarchy: subtypes distinguish pieces with the same number
// of stickers that are not related by symmetry.
type PieceType struct {
	ID     PieceTypeID
	Name   string
	Parent PieceTypeID
}

func (p *PieceType) Ref() ElementRef {
	return ElementRef{Kind: KindPieceType, ID: int(p.ID)}
}

// A Puzzle is a fully constructed puzzle.
//
// Puzzles are immutable and safe to share between Goroutines.
type Puzzle struct {
	Name string
	Dims int

	Pieces     []*Piece
	Stickers   []*Sticker
	Axes       []*Axis
	Twists     []*Twist
	Colors     []*Color
	PieceTypes []*PieceType

	// Schemes maps scheme names to a display color per ColorID.
	Schemes map[string][]string

	// Warnings were recorded while building the puzzle.
	Warnings []Warning

	axisNames  *names.BiMap[AxisID]
	twistNames *names.BiMap[TwistID]
	colorNames *names.BiMap[ColorID]
}

// AxisByName looks up an axis by name.
func (p *Puzzle) AxisByName(name string) (*Axis, error) {
	id, ok := p.axisNames.ID(name)
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchAxis, "name %q", name)
	}
	return p.Axes[id], nil
}

// TwistByName looks up a twist by name.
func (p *Puzzle) TwistByName(name string) (*Twist, error) {
	id, ok := p.twistNames.ID(name)
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchTwist, "name %q", name)
	}
	return p.Twists[id], nil
}

// ColorByName looks up a color by name.
func (p *Puzzle) ColorByName(name string) (*Color, error) {
	id, ok := p.colorNames.ID(name)
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchColor, "name %q", name)
	}
	return p.Colors[id], nil
}

// LayerOf finds the layer of an axis which contains a piece.
//
// Returns false if the piece is in no layer, such as the core of a puzzle
// whose layers don't reach the center.
func (p *Puzzle) LayerOf(piece PieceID, axis AxisID) (int, bool) {
	return p.Axes[axis].LayerOf(p.Pieces[piece].Centroid)
}

// PiecesInLayers finds the pieces within a set of layers of an axis.
func (p *Puzzle) PiecesInLayers(axis AxisID, mask LayerMask) []PieceID {
	var res []PieceID
	for _, piece := range p.Pieces {
		if layer, ok := p.LayerOf(piece.ID, axis); ok && mask.Has(layer) {
			res = append(res, piece.ID)
		}
	}
	return res
}

// PiecesOfType finds the pieces of a type or any of its subtypes.
func (p *Puzzle) PiecesOfType(t PieceTypeID) []PieceID {
	var res []PieceID
	for _, piece := range p.Pieces {
		for pt := piece.Type; pt != NoPieceType; pt = p.PieceTypes[pt].Parent {
			if pt == t {
				res = append(res, piece.ID)
				break
			}
		}
	}
	return res
}

// PieceMesh creates a triangle mesh for a piece of a 3D puzzle.
func (p *Puzzle) PieceMesh(id PieceID) (*model3d.Mesh, error) {
	if p.Dims != 3 {
		return nil, errors.Wrapf(ErrDimensionsMismatch, "cannot mesh %d-dimensional piece", p.Dims)
	}
	poly, err := space.PlanesToPolytope3D(p.Pieces[id].Planes)
	if err != nil {
		return nil, err
	}
	return poly.Mesh(), nil
}

// PieceMeshes creates meshes for every piece of a 3D puzzle.
func (p *Puzzle) PieceMeshes() ([]*model3d.Mesh, error) {
	if p.Dims != 3 {
		return nil, errors.Wrapf(ErrDimensionsMismatch, "cannot mesh %d-dimensional puzzle", p.Dims)
	}
	res := make([]*model3d.Mesh, len(p.Pieces))
	essentials.ConcurrentMap(0, len(p.Pieces), func(i int) {
		res[i], _ = p.PieceMesh(PieceID(i))
	})
	return res, nil
}
