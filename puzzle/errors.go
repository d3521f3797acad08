package puzzle

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/hyperpuzzle/ndim"
)

var (
	ErrNullShape           = errors.New("puzzle: cut would leave no pieces")
	ErrAxisVectorTaken     = errors.New("puzzle: axis vector is already taken")
	ErrLayersNotSorted     = errors.New("puzzle: layers are not sorted from outermost to innermost")
	ErrTwistDoesNotFixAxis = errors.New("puzzle: twist transform does not fix its axis vector")
	ErrNoSuchAxis          = errors.New("puzzle: no such axis")
	ErrNoSuchColor         = errors.New("puzzle: no such color")
	ErrNoSuchTwist         = errors.New("puzzle: no such twist")
	ErrNoSuchElement       = errors.New("puzzle: no such element")
	ErrTooManyElements     = errors.New("puzzle: too many elements")
	ErrDimensionsMismatch  = errors.New("puzzle: dimension mismatch")
	ErrNoSuchPuzzle        = errors.New("puzzle: no such puzzle")
	ErrDuplicatePuzzle     = errors.New("puzzle: puzzle id is already registered")
	ErrScrambleCancelled   = errors.New("puzzle: scramble was cancelled")
	ErrCannotScramble      = errors.New("puzzle: puzzle has no twists to scramble with")
	ErrMissingScheme       = errors.New("puzzle: missing default color scheme")
)

// An AxisError identifies the axis vector which could not be added.
type AxisError struct {
	Vector ndim.Vector
	Err    error
}

func (a *AxisError) Error() string {
	return fmt.Sprintf("axis %v: %v", a.Vector, a.Err)
}

func (a *AxisError) Unwrap() error {
	return a.Err
}

// A LayerError identifies the depths which could not be turned into layers.
type LayerError struct {
	Depths []float64
	Index  int
	Err    error
}

func (l *LayerError) Error() string {
	return fmt.Sprintf("layer depths %v (at index %d): %v", l.Depths, l.Index, l.Err)
}

func (l *LayerError) Unwrap() error {
	return l.Err
}

// A TwistError identifies the twist which could not be added.
type TwistError struct {
	Axis      string
	Transform ndim.Transform
	Err       error
}

func (t *TwistError) Error() string {
	return fmt.Sprintf("twist on axis %q: %v", t.Axis, t.Err)
}

func (t *TwistError) Unwrap() error {
	return t.Err
}

// A Warning is a problem which was recovered from while building a puzzle.
type Warning struct {
	Kind ElementKind
	Name string
	Err  error
}

func (w Warning) String() string {
	if w.Name == "" {
		return fmt.Sprintf("%s: %v", w.Kind, w.Err)
	}
	return fmt.Sprintf("%s %q: %v", w.Kind, w.Name, w.Err)
}

// A BuildError is a fatal error along with every warning raised before it.
type BuildError struct {
	Warnings []Warning
	Err      error
}

func (b *BuildError) Error() string {
	if len(b.Warnings) == 0 {
		return b.Err.Error()
	}
	msgs := make([]string, len(b.Warnings))
	for i, w := range b.Warnings {
		msgs[i] = w.String()
	}
	return fmt.Sprintf("%v (warnings: %s)", b.Err, strings.Join(msgs, "; "))
}

func (b *BuildError) Unwrap() error {
	return b.Err
}
