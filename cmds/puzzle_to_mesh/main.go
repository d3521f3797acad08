package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/hyperpuzzle/puzzle"
	"github.com/unixpickle/hyperpuzzle/puzzles"
	"github.com/unixpickle/model3d/model3d"
)

func main() {
	var explode float64
	var verbose bool
	flag.Float64Var(&explode, "explode", 0, "fraction of each piece centroid to move the piece outward")
	flag.BoolVar(&verbose, "verbose", false, "log progress while building")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: puzzle_to_mesh [flags] <puzzle-id> <output.stl>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(1)
	}
	puzzleID, outputPath := args[0], args[1]

	catalog := puzzle.NewCatalog()
	catalog.Verbose = verbose
	essentials.Must(puzzles.Register(catalog))

	log.Println("Building puzzle...")
	p, err := catalog.Build(puzzleID)
	essentials.Must(err)

	log.Println("Creating mesh...")
	meshes, err := p.PieceMeshes()
	essentials.Must(err)
	mesh := model3d.NewMesh()
	for i, m := range meshes {
		if explode != 0 {
			c := p.Pieces[i].Centroid.Pad(3).Scale(explode)
			m = m.Translate(model3d.XYZ(c[0], c[1], c[2]))
		}
		mesh.AddMesh(m)
	}
	essentials.Must(mesh.SaveGroupedSTL(outputPath))
}
