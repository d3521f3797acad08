package puzzle

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/unixpickle/hyperpuzzle/group"
	"github.com/unixpickle/hyperpuzzle/names"
	"github.com/unixpickle/hyperpuzzle/ndim"
)

// A TwistID identifies a twist of a puzzle.
type TwistID uint16

// NoTwist is used where there is no twist.
const NoTwist TwistID = math.MaxUint16

// A Twist is a transform applied to some layers of an axis.
type Twist struct {
	ID        TwistID
	Name      string
	Axis      AxisID
	Transform ndim.Transform

	// Inverse is the twist which undoes this one, or NoTwist if the inverse
	// is not itself a twist of the puzzle.
	Inverse TwistID
}

func (t *Twist) Ref() ElementRef {
	return ElementRef{Kind: KindTwist, ID: int(t.ID)}
}

// An axisTwist is a twist transform attached to an axis direction, which is
// how twists are carried through symmetry orbits.
type axisTwist struct {
	Vector ndim.Vector
	Motion ndim.Transform
}

func (a axisTwist) ApproxFloats() []float64 {
	n := len(a.Vector)
	return append(append([]float64{float64(n)}, a.Vector...), a.Motion.Pad(n).ApproxFloats()...)
}

func (a axisTwist) Transform(t ndim.Transform) axisTwist {
	return axisTwist{
		Vector: t.Apply(a.Vector).Pad(len(a.Vector)),
		Motion: a.Motion.Transform(t),
	}
}

type twistKey struct {
	Axis      AxisID
	Transform ndim.Transform
	ndim      int
}

func (t twistKey) ApproxFloats() []float64 {
	return append([]float64{float64(t.Axis)}, t.Transform.Pad(t.ndim).ApproxFloats()...)
}

// A TwistSystem defines the twists of a puzzle, each bound to an axis of an
// AxisSystem.
type TwistSystem struct {
	axes     *AxisSystem
	twists   []*Twist
	names    *names.BiMap[TwistID]
	index    *ndim.ApproxMap[twistKey, TwistID]
	ndim     int
	warnings []Warning
}

// NewTwistSystem creates an empty twist system for the axes of an axis
// system.
func NewTwistSystem(axes *AxisSystem, dims int) *TwistSystem {
	return &TwistSystem{
		axes:  axes,
		names: names.NewBiMap[TwistID](),
		index: ndim.NewApproxMap[twistKey, TwistID](),
		ndim:  dims,
	}
}

// AddTwist adds a twist around an axis.
//
// The transform must fix the axis vector. If the axis already has the same
// twist, the existing twist is returned. If inverse is true, the inverse
// transform is added as well unless it is already present.
//
// An empty name is autogenerated: the first twist of an axis takes the axis
// name, the inverse of an existing twist takes its name with a "'" suffix,
// and any other twist takes the axis name with a number.
func (t *TwistSystem) AddTwist(axis AxisID, transform ndim.Transform, name string, inverse bool) (TwistID, error) {
	canonical, err := t.canonicalTwist(axis, transform)
	if err != nil {
		return NoTwist, err
	}
	id, err := t.add(axis, canonical, name)
	if err != nil {
		return NoTwist, err
	}
	if inverse {
		if _, err := t.add(axis, canonical.Inverse(), ""); err != nil {
			return NoTwist, err
		}
	}
	return id, nil
}

// canonicalTwist validates a twist transform for an axis and puts it in
// canonical form.
func (t *TwistSystem) canonicalTwist(axis AxisID, transform ndim.Transform) (ndim.Transform, error) {
	if int(axis) >= t.axes.Len() {
		return ndim.Transform{}, &TwistError{Transform: transform, Err: errors.Wrapf(ErrNoSuchAxis, "axis %d", axis)}
	}
	axisInfo := t.axes.Get(axis)
	canonical, ok := transform.Pad(t.ndim).Canonicalize()
	if !ok {
		return ndim.Transform{}, &TwistError{Axis: axisInfo.Name, Transform: transform, Err: ndim.ErrNotOrthogonal}
	}
	if !canonical.Fixes(axisInfo.Vector) {
		return ndim.Transform{}, &TwistError{Axis: axisInfo.Name, Transform: transform,
			Err: ErrTwistDoesNotFixAxis}
	}
	if canonical.IsIdentity() {
		return ndim.Transform{}, &TwistError{Axis: axisInfo.Name, Transform: transform,
			Err: errors.New("twist transform is the identity")}
	}
	return canonical, nil
}

func (t *TwistSystem) add(axis AxisID, transform ndim.Transform, name string) (TwistID, error) {
	key := twistKey{Axis: axis, Transform: transform, ndim: t.ndim}
	if existing, ok := t.index.Get(key); ok {
		return existing, nil
	}
	if len(t.twists) >= int(NoTwist) {
		return NoTwist, errors.Wrapf(ErrTooManyElements, "more than %d twists", int(NoTwist))
	}
	axisInfo := t.axes.Get(axis)

	id := TwistID(len(t.twists))
	inv, hasInverse := t.index.Get(twistKey{Axis: axis, Transform: transform.Inverse(), ndim: t.ndim})
	if !hasInverse {
		inv = NoTwist
	}
	var auto names.Autonames
	if hasInverse && inv != id {
		auto = &names.List{
			Names:    []string{t.twists[inv].Name + "'"},
			Fallback: &twistNumbers{axis: axisInfo},
		}
	} else if len(axisInfo.Twists) == 0 {
		auto = &names.List{Names: []string{axisInfo.Name}, Fallback: &twistNumbers{axis: axisInfo}}
	} else {
		auto = &twistNumbers{axis: axisInfo}
	}
	t.warnings = append(t.warnings, assignName(t.names, id, name, auto, KindTwist)...)

	twist := &Twist{
		ID:        id,
		Name:      mustName(t.names, id),
		Axis:      axis,
		Transform: transform,
		Inverse:   inv,
	}
	if hasInverse {
		t.twists[inv].Inverse = id
	} else if transform.Compose(transform).IsIdentity() {
		twist.Inverse = id
	}
	t.twists = append(t.twists, twist)
	t.index.Insert(key, id)
	axisInfo.Twists = append(axisInfo.Twists, id)
	return id, nil
}

// twistNumbers names twists by their axis name and position on the axis.
type twistNumbers struct {
	axis *Axis
	n    int
}

func (t *twistNumbers) Next() string {
	t.n++
	return t.axis.Name + strconv.Itoa(len(t.axis.Twists)+t.n)
}

// AddTwistOrbit adds a twist around an axis along with every image of the
// twist under the generators, attached to the images of the axis.
//
// Every image of the axis must already be an axis of the system. The name,
// if not empty, is used for the seed twist only. If any image cannot be
// added, no twists are added.
func (t *TwistSystem) AddTwistOrbit(
	generators []group.Generator,
	axis AxisID,
	transform ndim.Transform,
	name string,
	inverse bool,
) ([]TwistID, error) {
	if int(axis) >= t.axes.Len() {
		return nil, &TwistError{Transform: transform, Err: errors.Wrapf(ErrNoSuchAxis, "axis %d", axis)}
	}
	axisInfo := t.axes.Get(axis)
	if !transform.Fixes(axisInfo.Vector) {
		return nil, &TwistError{Axis: axisInfo.Name, Transform: transform, Err: ErrTwistDoesNotFixAxis}
	}
	seed := axisTwist{Vector: axisInfo.Vector.Pad(t.ndim), Motion: transform.Pad(t.ndim)}
	orbit, err := group.ExpandOrbit(generators, seed)
	if err != nil {
		return nil, &TwistError{Axis: axisInfo.Name, Transform: transform, Err: err}
	}
	images := orbit.PresentElements()

	imageAxes := make([]AxisID, len(images))
	for i, elem := range images {
		imageAxis, ok := t.axes.ByVector(elem.Vector)
		if !ok {
			return nil, &TwistError{
				Axis:      axisInfo.Name,
				Transform: elem.Motion,
				Err:       errors.Wrapf(ErrNoSuchAxis, "no axis along %v", elem.Vector),
			}
		}
		if _, err := t.canonicalTwist(imageAxis, elem.Motion); err != nil {
			return nil, err
		}
		imageAxes[i] = imageAxis
	}
	perImage := 1
	if inverse {
		perImage = 2
	}
	if len(t.twists)+perImage*len(images) > int(NoTwist) {
		return nil, &TwistError{Axis: axisInfo.Name, Transform: transform,
			Err: errors.Wrapf(ErrTooManyElements, "more than %d twists", int(NoTwist))}
	}

	var res []TwistID
	for i, elem := range images {
		var twistName string
		if i == 0 {
			twistName = name
		}
		id, err := t.AddTwist(imageAxes[i], elem.Motion, twistName, inverse)
		if err != nil {
			return res, err
		}
		res = append(res, id)
	}
	return res, nil
}

// Len returns the number of twists.
func (t *TwistSystem) Len() int {
	return len(t.twists)
}

// Get returns a twist by id.
func (t *TwistSystem) Get(id TwistID) *Twist {
	return t.twists[id]
}

// ByName looks up a twist by any name matching its specification.
func (t *TwistSystem) ByName(name string) (TwistID, bool) {
	return t.names.ID(name)
}

// Warnings returns every warning recorded while adding twists.
func (t *TwistSystem) Warnings() []Warning {
	return append([]Warning{}, t.warnings...)
}

func (t *TwistSystem) finalize() []*Twist {
	res := make([]*Twist, len(t.twists))
	for i, twist := range t.twists {
		copied := *twist
		res[i] = &copied
	}
	return res
}
