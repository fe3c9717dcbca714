package ringtext

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// bandSolid builds the annular band: an outer disc minus the inner
// hole, optionally restricted to the arc from start to end (increasing
// angle), extruded over -height/2..+height/2 along the ring axis.
// A zero-length arc (emptyArc) yields no band at all, the case where
// the text alone fills the ring.
func bandSolid(ring *RingSpec, emptyArc bool) model3d.Solid {
	if emptyArc {
		return nil
	}
	outer := ring.OuterRadius()
	annulus := model2d.Solid(&model2d.SubtractedSolid{
		Positive: &model2d.Circle{Radius: outer},
		Negative: &model2d.Circle{Radius: ring.InnerRadius},
	})
	if !ring.FullCircle() {
		span := normalizeAngle(ring.EndAngle - ring.StartAngle)
		start := ring.StartAngle
		full := annulus
		annulus = model2d.CheckedFuncSolid(
			full.Min(), full.Max(),
			func(c model2d.Coord) bool {
				if !full.Contains(c) {
					return false
				}
				theta := math.Atan2(c.X, c.Y)
				return angleInArc(theta, start, span)
			},
		)
	}
	return model3d.ProfileSolid(annulus, -ring.Height/2, ring.Height/2)
}

// angleInArc reports whether theta lies within the arc starting at
// start and spanning span radians of increasing angle, with wraparound.
func angleInArc(theta, start, span float64) bool {
	return normalizeAngle(theta-start) <= span
}

// bandCellSize derives the tessellation cell size from the radial
// segment count: the outer surface is sampled at least RadialSegments
// times per turn, and never coarser than half the minimum feature.
func bandCellSize(ring *RingSpec, minFeature float64) float64 {
	cell := fullTurn * ring.OuterRadius() / float64(ring.RadialSegments)
	return math.Min(cell, minFeature/2)
}
