package ringtext

import (
	"log/slog"
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// Connectors guarantee the composite is a single connected body before
// compositing: independently placed glyph solids are disjoint from each
// other and from the band. Sleeping text uses curvature-following links
// between consecutive glyphs plus one bridge from each end glyph to the
// band (organic-link strategy); standing text uses a platform tab under
// each glyph (platform/tab strategy). Cross-sections are the fixed
// MinFeatureSize constant.

// connectorSpec is one synthesized bridge, kept as an angular sector.
type connectorSpec struct {
	start float64 // starting angle
	span  float64 // angular span, increasing angle
	rMin  float64
	rMax  float64
	zMin  float64
	zMax  float64
}

func (c *connectorSpec) solid() model3d.Solid {
	return arcSectorSolid(c.start, c.span, c.rMin, c.rMax, c.zMin, c.zMax)
}

// synthesizeConnectors builds the connector solids for a layout.
// bandEmpty marks the full-turn case where the text alone forms the
// ring. A gap wider than MaxConnectorGap is a geometry error.
func synthesizeConnectors(logger *slog.Logger, layout *Layout, ring *RingSpec,
	orientation Orientation, st style, capDepth float64, bandEmpty bool) ([]model3d.Solid, error) {
	const op = "connector"

	outer := ring.OuterRadius()
	// Radial extents: raised links float just above the surface and
	// are MinFeatureSize thick; carved links become channels spanning
	// the capped depth.
	rMin := outer + surfaceClearance
	rMax := rMin + MinFeatureSize
	if st == styleRecessed {
		rMin = outer - capDepth
		rMax = outer + surfaceEmbed
	}
	overlap := surfaceEmbed / outer // angular penetration into endpoints

	var specs []connectorSpec

	linkBetween := func(a, b *GlyphPlacement) error {
		start := a.Center + a.HalfWidth
		span := angularGap(start, b.Center-b.HalfWidth)
		if gap := arcLength(span, outer); gap > MaxConnectorGap {
			return geometryErrorf(op,
				"gap of %.2fmm between %q and %q exceeds maximum bridgeable gap %.2fmm",
				gap, a.Rune, b.Rune, MaxConnectorGap)
		}
		specs = append(specs, connectorSpec{
			start: start - overlap,
			span:  span + 2*overlap,
			rMin:  rMin,
			rMax:  rMax,
			zMin:  -MinFeatureSize / 2,
			zMax:  MinFeatureSize / 2,
		})
		return nil
	}

	useTabs := orientation == Standing && !bandEmpty && st == styleRaised
	if useTabs {
		// One thin platform per glyph, spanning its footprint from
		// just inside the band surface to just inside the glyph base.
		for i := range layout.Placements {
			p := &layout.Placements[i]
			// After the standing quarter-turn the glyph's advance runs
			// along the ring axis.
			zHalf := p.Glyph.Width() / 2
			if zHalf < MinFeatureSize/2 {
				zHalf = MinFeatureSize / 2
			}
			specs = append(specs, connectorSpec{
				start: p.Center - p.HalfWidth,
				span:  2 * p.HalfWidth,
				rMin:  outer - surfaceEmbed,
				rMax:  outer + surfaceClearance + surfaceEmbed,
				zMin:  -zHalf,
				zMax:  zHalf,
			})
		}
	} else {
		for i := 0; i+1 < len(layout.Placements); i++ {
			if err := linkBetween(&layout.Placements[i], &layout.Placements[i+1]); err != nil {
				return nil, err
			}
		}
		if bandEmpty && len(layout.Placements) > 1 {
			// No band to anchor to: close the loop glyph-to-glyph.
			last := &layout.Placements[len(layout.Placements)-1]
			first := &layout.Placements[0]
			if err := linkBetween(last, first); err != nil {
				return nil, err
			}
		}
	}

	if st == styleRaised && !bandEmpty && len(layout.Placements) > 0 {
		// One bridge from each end glyph down (or across) to the band.
		for _, p := range []*GlyphPlacement{
			&layout.Placements[0],
			&layout.Placements[len(layout.Placements)-1],
		} {
			spec, err := bandBridge(p, ring, outer)
			if err != nil {
				return nil, err
			}
			specs = append(specs, *spec)
		}
	}

	solids := make([]model3d.Solid, 0, len(specs))
	for _, s := range specs {
		solids = append(solids, s.solid())
	}
	logger.Info("synthesized connectors",
		"count", len(solids), "strategy", strategyName(useTabs), "style", styleName(st))
	return solids, nil
}

// bandBridge connects an end glyph to the band. When the band extends
// beneath the glyph the bridge is a radial tab; when the band is an
// arc that stops short, the bridge runs along the surface to the
// nearest band end cap.
func bandBridge(p *GlyphPlacement, ring *RingSpec, outer float64) (*connectorSpec, error) {
	const op = "connector"

	halfAng := MinFeatureSize / 2 / outer
	if ring.FullCircle() || angleInArc(p.Center, ring.StartAngle, normalizeAngle(ring.EndAngle-ring.StartAngle)) {
		return &connectorSpec{
			start: p.Center - halfAng,
			span:  2 * halfAng,
			rMin:  outer - surfaceEmbed,
			rMax:  outer + surfaceClearance + surfaceEmbed,
			zMin:  -MinFeatureSize / 2,
			zMax:  MinFeatureSize / 2,
		}, nil
	}

	// Nearest band edge, measured from the closer glyph edge.
	toStart := angularGap(ring.EndAngle, p.Center-p.HalfWidth)
	toEnd := angularGap(p.Center+p.HalfWidth, ring.StartAngle)
	overlap := surfaceEmbed / outer

	var start, bridgeSpan float64
	if toStart <= toEnd {
		start = ring.EndAngle - overlap
		bridgeSpan = toStart + 2*overlap
	} else {
		start = p.Center + p.HalfWidth - overlap
		bridgeSpan = toEnd + 2*overlap
	}
	if gap := arcLength(bridgeSpan-2*overlap, outer); gap > MaxConnectorGap {
		return nil, geometryErrorf(op,
			"gap of %.2fmm between %q and the band exceeds maximum bridgeable gap %.2fmm",
			gap, p.Rune, MaxConnectorGap)
	}
	return &connectorSpec{
		start: start,
		span:  bridgeSpan,
		rMin:  outer - surfaceEmbed,
		rMax:  outer + surfaceClearance + MinFeatureSize,
		zMin:  -MinFeatureSize / 2,
		zMax:  MinFeatureSize / 2,
	}, nil
}

func strategyName(tabs bool) string {
	if tabs {
		return "platform-tab"
	}
	return "organic-link"
}

func styleName(st style) string {
	if st == styleRecessed {
		return "recessed"
	}
	return "raised"
}

// angularGap is the span from one angle to another in the direction of
// increasing angle. Edges of adjacent layout slots coincide up to
// rounding, so a difference within rounding distance of zero is a
// touching pair, not a near-full-turn wrap.
func angularGap(from, to float64) float64 {
	span := to - from
	if span < 0 && span > -1e-9 {
		return 0
	}
	return normalizeAngle(span)
}

// arcSectorSolid is the volume between two radii and two heights,
// restricted to an angular sector.
func arcSectorSolid(start, span, rMin, rMax, zMin, zMax float64) model3d.Solid {
	start = normalizeAngle(start)
	return model3d.CheckedFuncSolid(
		model3d.XYZ(-rMax, -rMax, zMin),
		model3d.XYZ(rMax, rMax, zMax),
		func(c model3d.Coord3D) bool {
			r := math.Hypot(c.X, c.Y)
			if r < rMin || r > rMax {
				return false
			}
			return angleInArc(math.Atan2(c.X, c.Y), start, span)
		},
	)
}
