package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/hyperpuzzle/puzzle"
	"github.com/unixpickle/hyperpuzzle/puzzles"
)

func main() {
	var list bool
	var scrambleLength int
	var seed string
	flag.BoolVar(&list, "list", false, "list the available puzzles")
	flag.IntVar(&scrambleLength, "scramble", 0, "number of scramble moves to print")
	flag.StringVar(&seed, "seed", "", "scramble seed (defaults to the current time)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: puzzle_info [flags] <puzzle-id>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	catalog := puzzle.NewCatalog()
	essentials.Must(puzzles.Register(catalog))

	if list {
		for _, id := range catalog.IDs() {
			name, err := catalog.Name(id)
			essentials.Must(err)
			fmt.Printf("%-16s %s\n", id, name)
		}
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	log.Println("Building puzzle...")
	p, err := catalog.Build(args[0])
	essentials.Must(err)

	fmt.Println("Name:", p.Name)
	fmt.Println("Dimensions:", p.Dims)
	fmt.Println("Pieces:", len(p.Pieces))
	fmt.Println("Stickers:", len(p.Stickers))
	fmt.Println("Colors:", len(p.Colors))
	fmt.Println("Axes:", len(p.Axes))
	fmt.Println("Twists:", len(p.Twists))

	fmt.Println()
	fmt.Println("Piece types:")
	for _, t := range p.PieceTypes {
		indent := ""
		if t.Parent != puzzle.NoPieceType {
			indent = "  "
		}
		fmt.Printf("  %s%s: %d\n", indent, t.Name, len(p.PiecesOfType(t.ID)))
	}

	fmt.Println()
	fmt.Println("Axes:")
	for _, axis := range p.Axes {
		twistNames := make([]string, len(axis.Twists))
		for i, id := range axis.Twists {
			twistNames[i] = p.Twists[id].Name
		}
		fmt.Printf("  %s %v: %d layers, twists %s\n", axis.Name, axis.Vector, len(axis.Layers),
			strings.Join(twistNames, " "))
	}

	if len(p.Warnings) > 0 {
		fmt.Println()
		fmt.Println("Warnings:")
		for _, w := range p.Warnings {
			fmt.Println("  " + w.String())
		}
	}

	if scrambleLength > 0 {
		if seed == "" {
			seed = puzzle.NewScrambleSeed(time.Now(), "puzzle_info")
		}
		log.Println("Scrambling with seed", seed)
		moves, err := p.Scramble(puzzle.ScrambleParams{
			Type:   puzzle.ScramblePartial,
			Length: scrambleLength,
			Seed:   seed,
		}, nil)
		essentials.Must(err)
		moveNames := make([]string, len(moves))
		for i, m := range moves {
			moveNames[i] = formatMove(p, m)
		}
		fmt.Println()
		fmt.Println("Scramble:", strings.Join(moveNames, " "))
	}
}

func formatMove(p *puzzle.Puzzle, m puzzle.Move) string {
	name := p.Twists[m.Twist].Name
	for i := 0; i < puzzle.MaxLayers; i++ {
		if m.Layers == puzzle.LayerMask(1)<<uint(i) {
			if i == 0 {
				return name
			}
			return fmt.Sprintf("{%d}%s", i+1, name)
		}
	}
	return fmt.Sprintf("{%b}%s", uint32(m.Layers), name)
}
