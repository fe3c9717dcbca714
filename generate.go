package ringtext

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// Generator runs generation passes against a glyph source. The zero
// value is not usable; Source must be set. A nil Logger discards.
type Generator struct {
	Source GlyphSource
	Logger *slog.Logger
}

// Result is the outcome of one completed pass. The mesh is a frozen
// snapshot: it is replaced wholesale by a newer pass, never patched.
type Result struct {
	// Mesh is the final solid: one connected, watertight triangle
	// mesh with positive enclosed volume.
	Mesh *model3d.Mesh

	Layout *Layout

	// Ring and Text are the normalized specs the pass actually used
	// (defaults applied, depth capped). EffectiveDepth is the glyph
	// depth after the recessed punch-through cap.
	Ring           RingSpec
	Text           TextSpec
	EffectiveDepth float64
}

// Layout runs only validation and the arc layout engine, without
// building any geometry. Placement transforms are filled in.
func (g *Generator) Layout(ring RingSpec, text TextSpec) (*Layout, error) {
	logger := ensureLogger(g.Logger)
	ring, text, st, capDepth, err := normalizeSpecs(ring, text, logger)
	if err != nil {
		return nil, err
	}
	layout, _, err := g.layOut(logger, &ring, &text, st, capDepth)
	return layout, err
}

func (g *Generator) layOut(logger *slog.Logger, ring *RingSpec, text *TextSpec,
	st style, capDepth float64) (*Layout, float64, error) {
	ctx := newPassContext(logger, g.Source, text.FontID, text.Size)
	allowFullTurn := st == styleRaised
	layout, err := layoutArc(ctx, text.Text, text.LetterSpacing, text.MaxArcBudget,
		ring.OuterRadius(), allowFullTurn)
	if err != nil {
		return nil, 0, err
	}
	if len(layout.Placements) == 0 {
		return nil, 0, resourceError("layout",
			fmt.Errorf("no glyph in %q could be resolved (%d skipped)", text.Text, layout.Skipped))
	}

	extrusion, radialCenter := radialPlacement(ring, st, text.Depth, capDepth)
	for i := range layout.Placements {
		placeGlyph(&layout.Placements[i], text.Orientation, radialCenter)
	}
	logger.Info("laid out inscription",
		"glyphs", len(layout.Placements),
		"spanDeg", layout.Span*180/math.Pi,
		"truncated", layout.Truncated,
		"fullTurn", layout.FullTurn)
	return layout, extrusion, nil
}

// Generate executes one full generation pass: layout, placement,
// connector synthesis, boolean composition, and manifold validation.
// It performs no I/O beyond the glyph source; exporting and mass
// estimation consume the Result.
func (g *Generator) Generate(ring RingSpec, text TextSpec) (*Result, error) {
	logger := ensureLogger(g.Logger)
	ring, text, st, capDepth, err := normalizeSpecs(ring, text, logger)
	if err != nil {
		return nil, err
	}

	layout, extrusion, err := g.layOut(logger, &ring, &text, st, capDepth)
	if err != nil {
		return nil, err
	}
	bandEmpty := layout.FullTurn && st == styleRaised

	tools := make([]model3d.Solid, 0, len(layout.Placements)+4)
	for i := range layout.Placements {
		p := &layout.Placements[i]
		solid := extrudeGlyph(p.Glyph, extrusion)
		if solid == nil {
			continue
		}
		tools = append(tools, model3d.TransformSolid(p.Transform, solid))
	}

	connectors, err := synthesizeConnectors(logger, layout, &ring,
		text.Orientation, st, capDepth, bandEmpty)
	if err != nil {
		return nil, err
	}
	tools = append(tools, connectors...)

	band := bandSolid(&ring, bandEmpty)
	composite := composeSolids(band, tools, st)

	cell := math.Min(bandCellSize(&ring, MinFeatureSize), extrusion/3)
	mesh, err := composeMesh(logger, composite, cell)
	if err != nil {
		return nil, err
	}

	return &Result{
		Mesh:           mesh,
		Layout:         layout,
		Ring:           ring,
		Text:           text,
		EffectiveDepth: capDepth,
	}, nil
}
