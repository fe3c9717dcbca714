package ringtext

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// The placement transform is composed of three named rotations plus a
// radial translation, applied in this fixed order:
//
//  1. surface-normal alignment: Rx(+π/2) tips the glyph plane up so
//     the extrusion axis is horizontal and the glyph plane lies in the
//     cylinder's tangent plane.
//  2. mirror-correction: a further Rx(π) (the source's pair of 180°
//     flips about the tangent and radial axes, composed) so the text
//     reads left-to-right under the design camera: camera on the
//     radial axis looking inward, up-vector along the negative ring
//     axis. Net effect of 1+2 is Rx(-π/2): glyph-up maps to -Z and the
//     face normal maps to the outward radial at angle 0.
//  3. radial translation to the glyph's radial center on the +Y
//     reference axis, then tangent alignment Rz(-θ) carrying the glyph
//     to its angular center with its reading direction tangent to the
//     circumference (angles follow x = r·sinθ, y = r·cosθ).
//
// Swapping 1-2 with 3 mirrors or inverts the text; the golden-angle
// regression test pins the composite down at θ=0 and θ=π/2.

// placeGlyph fills in the rigid transform for one placement. The glyph
// solid is extruded symmetrically about its local origin, so the first
// step recenters the outline bounds on that origin. radialCenter is
// the world radius of the glyph solid's center after placement.
func placeGlyph(p *GlyphPlacement, orientation Orientation, radialCenter float64) {
	center := p.Glyph.Min.Mid(p.Glyph.Max)
	parts := model3d.JoinedTransform{
		&model3d.Translate{Offset: model3d.XYZ(-center.X, -center.Y, 0)},
	}
	if orientation == Standing {
		// Quarter turn about the glyph's local normal so the baseline
		// runs parallel to the ring axis.
		parts = append(parts, model3d.Rotation(model3d.Z(1), -math.Pi/2))
	}
	parts = append(parts,
		model3d.Rotation(model3d.X(1), math.Pi/2), // surface-normal alignment
		model3d.Rotation(model3d.X(1), math.Pi),   // mirror-correction
		&model3d.Translate{Offset: model3d.Y(radialCenter)},
		model3d.Rotation(model3d.Z(1), -p.Center), // tangent alignment
	)
	p.Transform = parts
}

// radialPlacement computes the glyph solid's extrusion depth and the
// world radius of its center for the given style.
//
// Raised glyphs sit surfaceClearance off the outer surface (connectors
// provide the structural attachment). Carving tools span the capped
// depth and overshoot the surface by surfaceEmbed so the subtraction
// cuts cleanly through the outer wall.
func radialPlacement(ring *RingSpec, st style, depth, capDepth float64) (extrusion, radialCenter float64) {
	outer := ring.OuterRadius()
	if st == styleRecessed {
		extrusion = capDepth + surfaceEmbed
		radialCenter = outer + surfaceEmbed - extrusion/2
		return
	}
	extrusion = depth
	radialCenter = outer + surfaceClearance + depth/2
	return
}

// anglePosition is the point at radius r and angle theta in the ring
// plane (z=0), following the x = r·sinθ, y = r·cosθ convention.
func anglePosition(r, theta float64) model3d.Coord3D {
	return model3d.XYZ(r*math.Sin(theta), r*math.Cos(theta), 0)
}
