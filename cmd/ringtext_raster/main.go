// Command ringtext_raster renders the unrolled arc layout of an
// inscription to an image, for visually checking glyph placement and
// truncation before generating a solid.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/ringtext"
)

func main() {
	fontPath := flag.String("font", "", "path to TTF/OTF font file")
	text := flag.String("text", "", "text to lay out")
	outPath := flag.String("out", "", "output image path (.png or .jpg)")
	size := flag.Float64("size", 3.0, "text size in millimeters")
	spacing := flag.Float64("spacing", 0.0, "letter spacing in millimeters")
	radius := flag.Float64("radius", 11.0, "ring outer radius in millimeters")
	budgetDeg := flag.Float64("budget", 360.0, "max arc budget in degrees")
	scale := flag.Float64("scale", 20.0, "pixels per millimeter")
	flag.Parse()

	if *fontPath == "" || *text == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	fontBytes, err := os.ReadFile(*fontPath)
	if err != nil {
		log.Fatalf("read font: %v", err)
	}
	fonts := ringtext.NewFontLibrary()
	if err := fonts.AddTTF("font", fontBytes); err != nil {
		log.Fatalf("parse font: %v", err)
	}

	gen := &ringtext.Generator{Source: fonts}
	layout, err := gen.Layout(
		ringtext.RingSpec{InnerRadius: *radius - 2, Thickness: 2, Height: *size * 2},
		ringtext.TextSpec{
			Text:          *text,
			FontID:        "font",
			Size:          *size,
			Depth:         1,
			LetterSpacing: *spacing,
			MaxArcBudget:  *budgetDeg * math.Pi / 180,
			Raised:        true,
		},
	)
	if err != nil {
		log.Fatalf("layout: %v", err)
	}
	if layout.Overflow {
		log.Printf("overflow: %d trailing glyphs truncated", layout.Truncated)
	}

	solid := unrolledSolid(layout, *radius)
	if solid == nil {
		log.Fatalf("no outlines produced")
	}
	if err := model2d.Rasterize(*outPath, solid, *scale); err != nil {
		log.Fatalf("rasterize: %v", err)
	}
	fmt.Printf("wrote %s\n", *outPath)
}

// unrolledSolid draws each placed glyph at its arc-length position
// along a straight baseline.
func unrolledSolid(layout *ringtext.Layout, radius float64) model2d.Solid {
	mesh := model2d.NewMesh()
	for _, p := range layout.Placements {
		penX := (p.Center - p.HalfWidth) * radius
		for _, contour := range p.Glyph.Outline {
			if len(contour) < 2 {
				continue
			}
			shift := func(c model2d.Coord) model2d.Coord {
				return model2d.Coord{X: c.X - p.Glyph.Min.X + penX, Y: c.Y}
			}
			for i := 1; i < len(contour); i++ {
				mesh.Add(&model2d.Segment{shift(contour[i-1]), shift(contour[i])})
			}
			if contour[0] != contour[len(contour)-1] {
				mesh.Add(&model2d.Segment{shift(contour[len(contour)-1]), shift(contour[0])})
			}
		}
	}
	if mesh.NumSegments() == 0 {
		return nil
	}
	return mesh.Solid()
}
