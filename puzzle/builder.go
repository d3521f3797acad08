package puzzle

import (
	"fmt"
	"log"
	"sync"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/hyperpuzzle/group"
	"github.com/unixpickle/hyperpuzzle/ndim"
	"github.com/unixpickle/hyperpuzzle/space"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Builder collects the shape, colors, axes, and twists of a puzzle and
// assembles them into a Puzzle.
//
// A Builder may be shared between Goroutines by holding its lock while
// modifying it. Build acquires the lock itself.
type Builder struct {
	sync.Mutex

	Name   string
	Shape  *ShapeBuilder
	Colors *ColorSystem
	Axes   *AxisSystem
	Twists *TwistSystem

	// Symmetry, if non-nil, splits piece types into subtypes of pieces
	// which are related by a symmetry.
	Symmetry *group.IsometryGroup

	// KeepInternals, if true, keeps pieces with no stickers.
	KeepInternals bool

	// Verbose, if true, logs progress during Build.
	Verbose bool

	dims   int
	built  bool
	result *Puzzle
	err    error
}

// NewBuilder creates a builder whose shape starts as a cube of radius
// DefaultPrimordialRadius.
func NewBuilder(name string, dims int) *Builder {
	axes := NewAxisSystem()
	return &Builder{
		Name:   name,
		Shape:  NewShapeBuilder(dims, DefaultPrimordialRadius),
		Colors: NewColorSystem(),
		Axes:   axes,
		Twists: NewTwistSystem(axes, dims),
		dims:   dims,
	}
}

// Dims returns the number of dimensions of the puzzle.
func (b *Builder) Dims() int {
	return b.dims
}

// Build cuts the layers of every axis into the shape and assembles the
// finished puzzle.
//
// Building consumes the shape, so later calls return the same result. On
// failure, the error is a *BuildError carrying any warnings.
func (b *Builder) Build() (*Puzzle, error) {
	b.Lock()
	defer b.Unlock()
	if !b.built {
		b.built = true
		b.result, b.err = b.build()
	}
	return b.result, b.err
}

func (b *Builder) build() (*Puzzle, error) {
	var warnings []Warning
	warnings = append(warnings, b.Colors.Warnings()...)
	warnings = append(warnings, b.Axes.Warnings()...)
	warnings = append(warnings, b.Twists.Warnings()...)
	fail := func(err error) (*Puzzle, error) {
		return nil, &BuildError{Warnings: warnings, Err: err}
	}

	if b.Symmetry != nil && b.Symmetry.Dims() > b.dims {
		return fail(errors.Wrapf(ErrDimensionsMismatch, "symmetry has %d dimensions but puzzle has %d",
			b.Symmetry.Dims(), b.dims))
	}
	if err := b.cutLayers(); err != nil {
		return fail(err)
	}
	pieces, stickers := b.finalizePieces()
	if len(pieces) == 0 {
		return fail(errors.Wrap(ErrNullShape, "no pieces have stickers"))
	}
	pieceTypes := b.assignPieceTypes(pieces)
	colors, schemes := b.Colors.finalize()

	if b.Verbose {
		log.Printf("puzzle %s: %d pieces, %d stickers, %d piece types", b.Name, len(pieces),
			len(stickers), len(pieceTypes))
	}
	return &Puzzle{
		Name:       b.Name,
		Dims:       b.dims,
		Pieces:     pieces,
		Stickers:   stickers,
		Axes:       b.Axes.finalize(),
		Twists:     b.Twists.finalize(),
		Colors:     colors,
		PieceTypes: pieceTypes,
		Schemes:    schemes,
		Warnings:   warnings,
		axisNames:  b.Axes.names.Clone(),
		twistNames: b.Twists.names.Clone(),
		colorNames: b.Colors.names.Clone(),
	}, nil
}

// cutLayers slices the shape along every layer boundary, going from the
// outermost to the innermost depth of each axis.
func (b *Builder) cutLayers() error {
	for i := 0; i < b.Axes.Len(); i++ {
		axis := b.Axes.Get(AxisID(i))
		for _, depth := range axis.Depths {
			plane := ndim.Hyperplane{Normal: axis.Vector, Distance: depth}
			if err := b.Shape.Slice(plane, NoColor); err != nil {
				return errors.Wrapf(err, "cut axis %s at depth %f", axis.Name, depth)
			}
		}
		if b.Verbose {
			log.Printf("puzzle %s: cut axis %s (%d pieces)", b.Name, axis.Name, len(b.Shape.pieces))
		}
	}
	return nil
}

func (b *Builder) finalizePieces() ([]*Piece, []*Sticker) {
	sp := b.Shape.Space()
	ids := b.Shape.Pieces()

	pieces := make([]*Piece, len(ids))
	pieceStickers := make([][]*Sticker, len(ids))
	essentials.ConcurrentMap(0, len(ids), func(i int) {
		pieces[i], pieceStickers[i] = finalizePiece(sp, ids[i])
	})

	var resPieces []*Piece
	var resStickers []*Sticker
	for i, piece := range pieces {
		if len(pieceStickers[i]) == 0 && !b.KeepInternals {
			continue
		}
		piece.ID = PieceID(len(resPieces))
		for _, sticker := range pieceStickers[i] {
			sticker.ID = StickerID(len(resStickers))
			sticker.Piece = piece.ID
			piece.Stickers = append(piece.Stickers, sticker.ID)
			resStickers = append(resStickers, sticker)
		}
		resPieces = append(resPieces, piece)
	}
	return resPieces, resStickers
}

func finalizePiece(sp *space.Space, id space.ElementID) (*Piece, []*Sticker) {
	piece := &Piece{
		Centroid: sp.Centroid(id),
		Volume:   sp.Volume(id),
	}
	for _, v := range sp.Vertices(id) {
		piece.Vertices = append(piece.Vertices, sp.Point(v))
	}
	var stickers []*Sticker
	for _, f := range sp.Facets(id) {
		plane, ok := sp.OrientedFacetPlane(id, f)
		if !ok {
			continue
		}
		piece.Planes = append(piece.Planes, plane)
		if color := colorFromTag(sp.FacetTag(f)); color != NoColor {
			stickers = append(stickers, &Sticker{
				Color:    color,
				Plane:    plane,
				Centroid: sp.Centroid(f),
			})
		}
	}
	return piece, stickers
}

// assignPieceTypes creates a type for every sticker count and, given a
// symmetry, a subtype for every orbit of pieces within a type.
func (b *Builder) assignPieceTypes(pieces []*Piece) []*PieceType {
	byCount := map[int][]*Piece{}
	for _, p := range pieces {
		byCount[len(p.Stickers)] = append(byCount[len(p.Stickers)], p)
	}
	counts := maps.Keys(byCount)
	slices.Sort(counts)

	var types []*PieceType
	addType := func(name string, parent PieceTypeID) PieceTypeID {
		id := PieceTypeID(len(types))
		types = append(types, &PieceType{ID: id, Name: name, Parent: parent})
		return id
	}
	for _, count := range counts {
		name := pieceTypeName(count, b.dims)
		parent := addType(name, NoPieceType)
		members := byCount[count]
		classes := b.symmetryClasses(members)
		numClasses := 0
		for _, c := range classes {
			numClasses = essentials.MaxInt(numClasses, c+1)
		}
		if numClasses <= 1 {
			for _, p := range members {
				p.Type = parent
			}
			continue
		}
		subtypes := make([]PieceTypeID, numClasses)
		for i := range subtypes {
			subtypes[i] = addType(fmt.Sprintf("%s/%d", name, i+1), parent)
		}
		for i, p := range members {
			p.Type = subtypes[classes[i]]
		}
	}
	return types
}

// symmetryClasses numbers the pieces so that pieces related by the
// symmetry share a number.
func (b *Builder) symmetryClasses(pieces []*Piece) []int {
	res := make([]int, len(pieces))
	if b.Symmetry == nil {
		return res
	}
	index := ndim.NewApproxMap[ndim.Vector, int]()
	var numClasses int
	for i, p := range pieces {
		if class, ok := index.Get(p.Centroid); ok {
			res[i] = class
			continue
		}
		res[i] = numClasses
		for _, img := range b.Symmetry.Orbit(p.Centroid) {
			index.Insert(img.Pad(b.dims), numClasses)
		}
		numClasses++
	}
	return res
}

func pieceTypeName(stickers, dims int) string {
	switch {
	case stickers == 0:
		return "internal"
	case stickers == dims:
		return "corner"
	case stickers == dims-1:
		return "edge"
	case stickers == 1:
		return "center"
	default:
		return fmt.Sprintf("%d-color", stickers)
	}
}
