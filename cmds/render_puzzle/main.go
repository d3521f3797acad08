package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/hyperpuzzle/ndim"
	"github.com/unixpickle/hyperpuzzle/puzzle"
	"github.com/unixpickle/hyperpuzzle/puzzles"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/model3d/render3d"
)

func main() {
	var gridSize int
	var imageSize int
	var fps float64
	var frames int
	var explode float64
	var scheme string
	flag.IntVar(&gridSize, "grid-size", 3, "grid size (used for rows and columns)")
	flag.IntVar(&imageSize, "image-size", 300, "size of each image in the grid")
	flag.Float64Var(&fps, "fps", 10.0, "FPS for GIF outputs")
	flag.IntVar(&frames, "frames", 20, "total number of frames for GIF outputs")
	flag.Float64Var(&explode, "explode", 0.1, "fraction of each piece centroid to move the piece outward")
	flag.StringVar(&scheme, "scheme", puzzle.DefaultSchemeName, "color scheme")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: render_puzzle [flags] <puzzle-id> <output.png>")
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
	essentials.Must(puzzles.Register(catalog))

	log.Println("Building puzzle...")
	p, err := catalog.Build(puzzleID)
	essentials.Must(err)
	colors, ok := p.Schemes[scheme]
	if !ok {
		essentials.Die("unknown color scheme:", scheme)
	}

	log.Println("Creating renderable object...")
	meshes, err := p.PieceMeshes()
	essentials.Must(err)
	offsets := make([]ndim.Vector, len(p.Pieces))
	mesh := model3d.NewMesh()
	for i, m := range meshes {
		offsets[i] = p.Pieces[i].Centroid.Pad(3).Scale(explode)
		mesh.AddMesh(m.Translate(model3d.XYZ(offsets[i][0], offsets[i][1], offsets[i][2])))
	}
	stickerColors := make([]render3d.Color, len(p.Stickers))
	for i, s := range p.Stickers {
		stickerColors[i] = parseColor(colors[s.Color])
	}
	object := render3d.Objectify(
		model3d.MeshToCollider(mesh),
		func(c model3d.Coord3D, rc model3d.RayCollision) render3d.Color {
			point := ndim.NewVector(c.X, c.Y, c.Z)
			normal := ndim.NewVector(rc.Normal.X, rc.Normal.Y, rc.Normal.Z)
			for _, s := range p.Stickers {
				if s.Plane.Normal.Dot(normal) < 0.99 {
					continue
				}
				local := point.Sub(offsets[s.Piece])
				if onPiece(p.Pieces[s.Piece], s, local) {
					return stickerColors[s.ID]
				}
			}
			return render3d.NewColorRGB(0.1, 0.1, 0.1)
		},
	)

	log.Println("Rendering...")
	ext := filepath.Ext(outputPath)
	if strings.ToLower(ext) == ".gif" {
		essentials.Must(
			render3d.SaveRotatingGIF(
				outputPath,
				object,
				model3d.Z(1),
				model3d.YZ(-1, 0.1).Normalize(),
				imageSize,
				frames,
				fps,
				nil,
			),
		)
	} else {
		essentials.Must(
			render3d.SaveRandomGrid(outputPath, object, gridSize, gridSize, imageSize, nil),
		)
	}
}

func onPiece(piece *puzzle.Piece, sticker *puzzle.Sticker, point ndim.Vector) bool {
	const tolerance = 1e-3
	if d := sticker.Plane.SignedDistance(point); d < -tolerance || d > tolerance {
		return false
	}
	for _, plane := range piece.Planes {
		if plane.SignedDistance(point) > tolerance {
			return false
		}
	}
	return true
}

var namedColors = map[string][3]float64{
	"white":  {1, 1, 1},
	"yellow": {1, 0.9, 0},
	"red":    {0.85, 0, 0},
	"orange": {1, 0.5, 0},
	"green":  {0, 0.65, 0},
	"blue":   {0, 0.2, 0.85},
	"purple": {0.55, 0, 0.7},
	"pink":   {1, 0.55, 0.8},
}

// parseColor reads a color name or a "#rrggbb" hex code, using gray for
// anything else.
func parseColor(s string) render3d.Color {
	if rgb, ok := namedColors[strings.ToLower(s)]; ok {
		return render3d.NewColorRGB(rgb[0], rgb[1], rgb[2])
	}
	if len(s) == 7 && s[0] == '#' {
		if x, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return render3d.NewColorRGB(
				float64((x>>16)&0xff)/255,
				float64((x>>8)&0xff)/255,
				float64(x&0xff)/255,
			)
		}
	}
	return render3d.NewColorRGB(0.5, 0.5, 0.5)
}
