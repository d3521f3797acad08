package puzzle

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/hyperpuzzle/group"
	"github.com/unixpickle/hyperpuzzle/names"
	"github.com/unixpickle/hyperpuzzle/ndim"
)

// An AxisID identifies an axis of a puzzle.
type AxisID uint16

// MaxLayers is the number of layers which fit in a LayerMask.
const MaxLayers = 32

// A LayerMask is a set of layers of one axis, where bit i is layer i.
type LayerMask uint32

// AllLayers returns a mask with the first n layers set.
func AllLayers(n int) LayerMask {
	if n >= MaxLayers {
		return ^LayerMask(0)
	}
	return LayerMask(1)<<uint(n) - 1
}

// Has checks if layer i is in the mask.
func (l LayerMask) Has(i int) bool {
	return i >= 0 && i < MaxLayers && l&(1<<uint(i)) != 0
}

// A Layer is the region of space between two depths along an axis.
//
// Top is greater than Bottom, and either may be infinite.
type Layer struct {
	Top    float64
	Bottom float64
}

// TopPlane returns the hyperplane at the top of the layer, with the layer on
// the inside. Returns false if the top is infinite.
func (l Layer) TopPlane(axis ndim.Vector) (ndim.Hyperplane, bool) {
	if math.IsInf(l.Top, 0) {
		return ndim.Hyperplane{}, false
	}
	return ndim.Hyperplane{Normal: axis, Distance: l.Top}, true
}

// BottomPlane returns the hyperplane at the bottom of the layer, flipped so
// that the layer is on the inside. Returns false if the bottom is infinite.
func (l Layer) BottomPlane(axis ndim.Vector) (ndim.Hyperplane, bool) {
	if math.IsInf(l.Bottom, 0) {
		return ndim.Hyperplane{}, false
	}
	return ndim.Hyperplane{Normal: axis, Distance: l.Bottom}.Flip(), true
}

// Contains checks if a depth is strictly within the layer.
func (l Layer) Contains(depth float64) bool {
	return depth < l.Top-ndim.Epsilon && depth > l.Bottom+ndim.Epsilon
}

// LayersFromDepths creates layers between consecutive depths, which must be
// strictly decreasing.
func LayersFromDepths(depths []float64) ([]Layer, error) {
	for i, d := range depths {
		if math.IsNaN(d) {
			return nil, &LayerError{Depths: depths, Index: i, Err: errors.New("depth is NaN")}
		}
		if i > 0 && !(depths[i-1] > d+ndim.Epsilon) {
			return nil, &LayerError{Depths: depths, Index: i, Err: ErrLayersNotSorted}
		}
	}
	if len(depths) > MaxLayers+1 {
		return nil, &LayerError{Depths: depths, Index: MaxLayers + 1, Err: ErrTooManyElements}
	}
	var res []Layer
	for i := 1; i < len(depths); i++ {
		res = append(res, Layer{Top: depths[i-1], Bottom: depths[i]})
	}
	return res, nil
}

// An Axis is a direction along which layers of a puzzle can be twisted.
type Axis struct {
	ID     AxisID
	Name   string
	Vector ndim.Vector

	// Layers are ordered from outermost to innermost.
	Layers []Layer

	// Twists are the twists around this axis.
	Twists []TwistID

	// Depths are the finite depths at which the axis cuts the puzzle.
	Depths []float64
}

func (a *Axis) Ref() ElementRef {
	return ElementRef{Kind: KindAxis, ID: int(a.ID)}
}

// LayerOf finds the layer containing a point, if any.
func (a *Axis) LayerOf(p ndim.Vector) (int, bool) {
	depth := p.Dot(a.Vector)
	for i, l := range a.Layers {
		if l.Contains(depth) {
			return i, true
		}
	}
	return 0, false
}

// PlaneBoundedRegions computes the regions of space covered by a set of
// layers. Each region is a maximal run of adjacent layers, described by the
// hyperplanes bounding it with the region on the inside.
//
// An infinite boundary contributes no hyperplane, so a region may be bounded
// by zero, one, or two hyperplanes.
func (a *Axis) PlaneBoundedRegions(mask LayerMask) ([][]ndim.Hyperplane, error) {
	if mask&^AllLayers(len(a.Layers)) != 0 {
		return nil, errors.Errorf("puzzle: layer mask %b out of range for %d layers", mask, len(a.Layers))
	}
	var res [][]ndim.Hyperplane
	for i := 0; i < len(a.Layers); i++ {
		if !mask.Has(i) {
			continue
		}
		start := i
		for i+1 < len(a.Layers) && mask.Has(i+1) && a.Layers[i].Bottom == a.Layers[i+1].Top {
			i++
		}
		var region []ndim.Hyperplane
		if p, ok := a.Layers[start].TopPlane(a.Vector); ok {
			region = append(region, p)
		}
		if p, ok := a.Layers[i].BottomPlane(a.Vector); ok {
			region = append(region, p)
		}
		res = append(res, region)
	}
	return res, nil
}

// An AxisSystem defines the axes of a puzzle.
type AxisSystem struct {
	// Autonames provides names for axes without valid names.
	// Defaults to "A", "B", etc.
	Autonames names.Autonames

	axes     []*Axis
	names    *names.BiMap[AxisID]
	index    *ndim.ApproxMap[ndim.Vector, AxisID]
	warnings []Warning
}

// NewAxisSystem creates an empty axis system.
func NewAxisSystem() *AxisSystem {
	return &AxisSystem{
		Autonames: &names.Letters{},
		names:     names.NewBiMap[AxisID](),
		index:     ndim.NewApproxMap[ndim.Vector, AxisID](),
	}
}

// AddAxis adds an axis with layers between the given depths, which must be
// sorted from outermost to innermost.
//
// The vector is normalized, and fails with ErrAxisVectorTaken if another axis
// already has the same direction.
func (a *AxisSystem) AddAxis(vector ndim.Vector, depths []float64, name string) (AxisID, error) {
	v, ok := vector.Normalize()
	if !ok {
		return 0, &AxisError{Vector: vector, Err: ndim.ErrDegenerateHyperplane}
	}
	if _, ok := a.index.Get(v); ok {
		return 0, &AxisError{Vector: vector, Err: ErrAxisVectorTaken}
	}
	if len(a.axes) > math.MaxUint16 {
		return 0, &AxisError{Vector: vector, Err: ErrTooManyElements}
	}
	layers, err := LayersFromDepths(depths)
	if err != nil {
		return 0, &AxisError{Vector: vector, Err: err}
	}
	var finite []float64
	for _, d := range depths {
		if !math.IsInf(d, 0) {
			finite = append(finite, d)
		}
	}

	id := AxisID(len(a.axes))
	a.warnings = append(a.warnings, assignName(a.names, id, name, a.Autonames, KindAxis)...)
	a.index.Insert(v, id)
	a.axes = append(a.axes, &Axis{
		ID:     id,
		Name:   mustName(a.names, id),
		Vector: v,
		Layers: layers,
		Depths: finite,
	})
	return id, nil
}

// AddAxisOrbit adds an axis for every image of a vector under the
// generators, all sharing the same depths.
//
// Names are taken from axisNames in orbit order, with empty or missing
// entries autogenerated. If any image cannot be added, no axes are added.
func (a *AxisSystem) AddAxisOrbit(
	generators []group.Generator,
	vector ndim.Vector,
	depths []float64,
	axisNames ...string,
) ([]AxisID, error) {
	v, ok := vector.Normalize()
	if !ok {
		return nil, &AxisError{Vector: vector, Err: ndim.ErrDegenerateHyperplane}
	}
	orbit, err := group.ExpandOrbit(generators, v)
	if err != nil {
		return nil, &AxisError{Vector: vector, Err: err}
	}
	images := orbit.PresentElements()
	if err := a.checkNewAxes(images, depths); err != nil {
		return nil, err
	}
	var res []AxisID
	for i, elem := range images {
		var name string
		if i < len(axisNames) {
			name = axisNames[i]
		}
		id, err := a.AddAxis(elem, depths, name)
		if err != nil {
			return res, err
		}
		res = append(res, id)
	}
	return res, nil
}

// checkNewAxes fails if AddAxis would reject any of the vectors.
func (a *AxisSystem) checkNewAxes(vectors []ndim.Vector, depths []float64) error {
	if len(vectors) == 0 {
		return nil
	}
	if _, err := LayersFromDepths(depths); err != nil {
		return &AxisError{Vector: vectors[0], Err: err}
	}
	if len(a.axes)+len(vectors) > math.MaxUint16+1 {
		return &AxisError{Vector: vectors[0], Err: ErrTooManyElements}
	}
	for _, v := range vectors {
		n, ok := v.Normalize()
		if !ok {
			return &AxisError{Vector: v, Err: ndim.ErrDegenerateHyperplane}
		}
		if _, ok := a.index.Get(n); ok {
			return &AxisError{Vector: v, Err: ErrAxisVectorTaken}
		}
	}
	return nil
}

// Len returns the number of axes.
func (a *AxisSystem) Len() int {
	return len(a.axes)
}

// Get returns an axis by id.
func (a *AxisSystem) Get(id AxisID) *Axis {
	return a.axes[id]
}

// ByName looks up an axis by any name matching its specification.
func (a *AxisSystem) ByName(name string) (AxisID, bool) {
	return a.names.ID(name)
}

// ByVector looks up the axis with the direction of v.
func (a *AxisSystem) ByVector(v ndim.Vector) (AxisID, bool) {
	n, ok := v.Normalize()
	if !ok {
		return 0, false
	}
	return a.index.Get(n)
}

// Warnings returns every warning recorded while adding axes.
func (a *AxisSystem) Warnings() []Warning {
	return append([]Warning{}, a.warnings...)
}

func (a *AxisSystem) finalize() []*Axis {
	res := make([]*Axis, len(a.axes))
	for i, axis := range a.axes {
		copied := *axis
		copied.Layers = append([]Layer{}, axis.Layers...)
		copied.Twists = append([]TwistID{}, axis.Twists...)
		copied.Depths = append([]float64{}, axis.Depths...)
		res[i] = &copied
	}
	return res
}
