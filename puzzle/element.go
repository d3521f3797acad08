package puzzle

import (
	"fmt"

	"github.com/pkg/errors"
)

// ElementKind enumerates the kinds of named things in a puzzle.
type ElementKind int

const (
	KindPuzzle ElementKind = iota
	KindAxis
	KindTwist
	KindColor
	KindPiece
	KindSticker
	KindPieceType
)

func (e ElementKind) String() string {
	switch e {
	case KindPuzzle:
		return "puzzle"
	case KindAxis:
		return "axis"
	case KindTwist:
		return "twist"
	case KindColor:
		return "color"
	case KindPiece:
		return "piece"
	case KindSticker:
		return "sticker"
	case KindPieceType:
		return "piece type"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(e))
	}
}

// An ElementRef refers to one element of a puzzle.
type ElementRef struct {
	Kind ElementKind
	ID   int
}

func (e ElementRef) String() string {
	return fmt.Sprintf("%s %d", e.Kind, e.ID)
}

// An Element is anything which can be referred to by an ElementRef.
type Element interface {
	Ref() ElementRef
}

// Element looks up an element by reference.
func (p *Puzzle) Element(ref ElementRef) (Element, error) {
	inRange := func(n int) bool {
		return ref.ID >= 0 && ref.ID < n
	}
	switch ref.Kind {
	case KindAxis:
		if inRange(len(p.Axes)) {
			return p.Axes[ref.ID], nil
		}
	case KindTwist:
		if inRange(len(p.Twists)) {
			return p.Twists[ref.ID], nil
		}
	case KindColor:
		if inRange(len(p.Colors)) {
			return p.Colors[ref.ID], nil
		}
	case KindPiece:
		if inRange(len(p.Pieces)) {
			return p.Pieces[ref.ID], nil
		}
	case KindSticker:
		if inRange(len(p.Stickers)) {
			return p.Stickers[ref.ID], nil
		}
	case KindPieceType:
		if inRange(len(p.PieceTypes)) {
			return p.PieceTypes[ref.ID], nil
		}
	}
	return nil, errors.Wrapf(ErrNoSuchElement, "%v", ref)
}

// ElementName returns the display name of an element.
//
// Pieces and stickers have no names of their own, so their names are
// derived from their colors.
func (p *Puzzle) ElementName(ref ElementRef) (string, error) {
	if ref.Kind == KindPuzzle {
		return p.Name, nil
	}
	elem, err := p.Element(ref)
	if err != nil {
		return "", err
	}
	switch elem := elem.(type) {
	case *Axis:
		return elem.Name, nil
	case *Twist:
		return elem.Name, nil
	case *Color:
		return elem.Name, nil
	case *PieceType:
		return elem.Name, nil
	case *Sticker:
		return fmt.Sprintf("%s sticker of piece %d", p.Colors[elem.Color].Name, elem.Piece), nil
	case *Piece:
		if len(elem.Stickers) == 0 {
			return fmt.Sprintf("%s %d", p.PieceTypes[elem.Type].Name, elem.ID), nil
		}
		var name string
		for i, s := range elem.Stickers {
			if i > 0 {
				name += "-"
			}
			name += p.Colors[p.Stickers[s].Color].Name
		}
		return name, nil
	}
	return "", errors.Wrapf(ErrNoSuchElement, "%v", ref)
}
