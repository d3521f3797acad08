package puzzle

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// FullScrambleLength is the number of moves in a full scramble.
const FullScrambleLength = 1000

// ScrambleType selects how many moves a scramble has.
type ScrambleType int

const (
	// ScrambleFull applies FullScrambleLength moves.
	ScrambleFull ScrambleType = iota

	// ScramblePartial applies ScrambleParams.Length moves.
	ScramblePartial
)

func (s ScrambleType) String() string {
	switch s {
	case ScrambleFull:
		return "full"
	case ScramblePartial:
		return "partial"
	default:
		return fmt.Sprintf("ScrambleType(%d)", int(s))
	}
}

// ScrambleParams determine a scramble completely: the same parameters always
// produce the same moves on the same puzzle.
type ScrambleParams struct {
	Type ScrambleType

	// Length is the number of moves for a partial scramble.
	Length int

	// Seed is an arbitrary string, typically from NewScrambleSeed.
	Seed string
}

// NewScrambleSeed creates a seed from a time and a random or public beacon
// value.
func NewScrambleSeed(t time.Time, beacon string) string {
	return fmt.Sprintf("%s_%s", t.UTC().Format(time.RFC3339Nano), beacon)
}

// A Move is a twist applied to some layers of its axis.
type Move struct {
	Twist  TwistID
	Layers LayerMask
}

// ScrambleProgress lets a caller monitor and cancel a scramble from another
// Goroutine.
//
// The zero value is ready to use.
type ScrambleProgress struct {
	cancelled atomic.Bool
	done      atomic.Int64
	total     atomic.Int64
}

// Cancel asks the scramble to stop as soon as possible.
func (s *ScrambleProgress) Cancel() {
	s.cancelled.Store(true)
}

// Cancelled checks if Cancel was called.
func (s *ScrambleProgress) Cancelled() bool {
	return s.cancelled.Load()
}

// Progress returns the number of moves generated so far and the total.
func (s *ScrambleProgress) Progress() (done, total int64) {
	return s.done.Load(), s.total.Load()
}

// Scramble generates a deterministic sequence of random moves.
//
// The progress argument may be nil. If the scramble is cancelled, the moves
// generated so far are returned with ErrScrambleCancelled.
func (p *Puzzle) Scramble(params ScrambleParams, progress *ScrambleProgress) ([]Move, error) {
	if progress == nil {
		progress = &ScrambleProgress{}
	}
	var length int
	switch params.Type {
	case ScrambleFull:
		length = FullScrambleLength
	case ScramblePartial:
		if params.Length < 0 {
			return nil, errors.Errorf("puzzle: invalid scramble length %d", params.Length)
		}
		length = params.Length
	default:
		return nil, errors.Errorf("puzzle: unknown scramble type %v", params.Type)
	}

	var twists []*Twist
	for _, t := range p.Twists {
		if len(p.Axes[t.Axis].Layers) > 0 {
			twists = append(twists, t)
		}
	}
	if len(twists) == 0 && length > 0 {
		return nil, ErrCannotScramble
	}

	progress.total.Store(int64(length))
	rng := rand.New(rand.NewSource(scrambleSeed(params.Seed)))
	moves := make([]Move, 0, length)
	lastAxis := -1
	for i := 0; i < length; i++ {
		if progress.Cancelled() {
			return moves, ErrScrambleCancelled
		}
		twist := twists[rng.Intn(len(twists))]
		for int(twist.Axis) == lastAxis && len(p.Axes) > 1 && !allOnAxis(twists, twist.Axis) {
			twist = twists[rng.Intn(len(twists))]
		}
		lastAxis = int(twist.Axis)
		numLayers := len(p.Axes[twist.Axis].Layers)
		moves = append(moves, Move{
			Twist:  twist.ID,
			Layers: LayerMask(1) << uint(rng.Intn(numLayers)),
		})
		progress.done.Store(int64(i + 1))
	}
	return moves, nil
}

func allOnAxis(twists []*Twist, axis AxisID) bool {
	for _, t := range twists {
		if t.Axis != axis {
			return false
		}
	}
	return true
}

// scrambleSeed hashes a length-prefixed seed string into an RNG seed.
func scrambleSeed(seed string) int64 {
	h := sha256.New()
	var prefix [8]byte
	binary.LittleEndian.PutUint64(prefix[:], uint64(len(seed)))
	h.Write(prefix[:])
	h.Write([]byte(seed))
	sum := h.Sum(nil)
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}
