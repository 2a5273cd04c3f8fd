package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"

	"isoworld/pkg/engine/geometry"
	"isoworld/pkg/engine/terminal"
	"isoworld/pkg/engine/viewport"
	"isoworld/pkg/game/art"
	"isoworld/pkg/game/generator"
	ebitenrenderer "isoworld/pkg/game/renderer/ebiten"
	textrenderer "isoworld/pkg/game/renderer/text"
	"isoworld/pkg/game/world"
)

func initGotext() {
	gotext.Configure("mo/", "en_GB", "default")
}

func main() {
	textMode := flag.Bool("text", false, "render one frame as terminal cells instead of opening a window")
	width := flag.Int("width", 1280, "window width in pixels")
	height := flag.Int("height", 800, "window height in pixels")
	mapSize := flag.Int("map", 64, "map size in tiles per side")
	seed := flag.Int64("seed", 0, "world seed, 0 picks one from the clock")
	zoom := flag.Int("zoom", 0, "initial zoom-out level, 0 to 3")
	boxes := flag.Bool("boxes", false, "draw sprite bounding box outlines")
	flag.Parse()

	initGotext()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *zoom < int(geometry.ZoomNormal) || *zoom > int(geometry.ZoomMax) {
		fmt.Fprintf(os.Stderr, "zoom must be between %d and %d\n", geometry.ZoomNormal, geometry.ZoomMax)
		os.Exit(1)
	}

	set := art.BuildSet()
	m := generator.Generate(*mapSize, *mapSize, *seed, set)
	fmt.Println(generator.Describe(m))

	var err error
	if *textMode {
		err = runText(set, m, geometry.ZoomLevel(*zoom), *boxes)
	} else {
		err = runWindow(set, m, *width, *height, geometry.ZoomLevel(*zoom), *boxes)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runWindow opens the interactive Ebiten viewer.
func runWindow(set *art.Set, m *world.Map, width, height int, zoom geometry.ZoomLevel, boxes bool) error {
	vp := viewport.New(m, set.Atlas, 0, 0, width, height)
	vp.Zoom = zoom
	vp.DrawBoundingBoxes = boxes
	vp.CenterOn(m.Center())

	v, err := ebitenrenderer.NewViewer(vp, m)
	if err != nil {
		return err
	}
	return v.Run("isoworld")
}

// runText renders a single frame as coloured terminal cells and exits.
func runText(set *art.Set, m *world.Map, zoom geometry.ZoomLevel, boxes bool) error {
	cols, rows := terminal.GetSize()
	rows-- // leave the prompt line alone

	p := textrenderer.NewPainter(set, cols, rows)
	w, h := p.FrameSize()
	vp := viewport.New(m, set.Atlas, 0, 0, w, h)
	vp.Zoom = zoom
	vp.DrawBoundingBoxes = boxes
	vp.CenterOn(m.Center())

	p.StartFrame(vp)
	vp.Draw(p, 0, 0, w, h)
	return p.Flush(os.Stdout)
}
