package ringtext

import (
	"log/slog"
	"math"
	"strings"
)

const fullTurn = 2 * math.Pi

const (
	// MinFeatureSize is the connector cross-section edge length. It is
	// a fixed manufacturability constant, not derived from text
	// metrics, chosen for small-scale casting and printing.
	MinFeatureSize = 0.4

	// MaxConnectorGap is the largest arc-length gap a connector may
	// bridge. Wider gaps fail the pass instead of producing a
	// connector that itself floats.
	MaxConnectorGap = 2.0

	// surfaceClearance keeps a raised glyph's base just off the outer
	// surface so the glyph solid is never buried inside the band
	// before compositing.
	surfaceClearance = 0.05

	// surfaceEmbed is how far connectors sink into the band and
	// glyphs, and how far a carving tool overshoots the outer surface.
	surfaceEmbed = 0.2

	minRadialSegments     = 128
	defaultRadialSegments = 256

	// recessedDepthCap is the fraction of ring thickness a carved
	// depth is limited to, preventing complete punch-through.
	recessedDepthCap = 0.9
)

// Orientation selects how glyph baselines run on the band.
//
// Available options:
//   - Sleeping: baseline parallel to the circumference (ordinary band text).
//   - Standing: baseline parallel to the ring's rotational axis.
type Orientation int

const (
	Sleeping Orientation = iota
	Standing
)

func (o Orientation) String() string {
	if o == Standing {
		return "standing"
	}
	return "sleeping"
}

// style is the resolved raised-or-recessed choice after validation.
type style int

const (
	styleRaised style = iota
	styleRecessed
)

// RingSpec describes the base annular band. All lengths are
// millimeters, angles radians. StartAngle == EndAngle means a full
// circle; otherwise the band covers the arc from StartAngle to
// EndAngle in the direction of increasing angle.
type RingSpec struct {
	InnerRadius    float64
	Thickness      float64
	Height         float64
	RadialSegments int
	StartAngle     float64
	EndAngle       float64
}

// RingSpecFromDiameters builds a RingSpec from inner/outer diameters,
// the form the configuration files use.
func RingSpecFromDiameters(innerDiameter, outerDiameter, height float64) RingSpec {
	return RingSpec{
		InnerRadius: innerDiameter / 2,
		Thickness:   (outerDiameter - innerDiameter) / 2,
		Height:      height,
	}
}

// OuterRadius is the radius of the band's outer surface.
func (r *RingSpec) OuterRadius() float64 {
	return r.InnerRadius + r.Thickness
}

// FullCircle reports whether the band covers the whole turn.
func (r *RingSpec) FullCircle() bool {
	return r.StartAngle == r.EndAngle
}

// TextSpec describes the inscription. Text is case-sensitive and a
// single line; embedded line breaks are stripped during validation.
// MaxArcBudget is the largest angular span (radians) the text may
// occupy; zero defaults to a full turn. Exactly one of Raised and
// Recessed should be set; both false defaults to raised with a
// warning, both true is a validation error.
type TextSpec struct {
	Text          string
	FontID        string
	Size          float64
	Depth         float64
	LetterSpacing float64
	MaxArcBudget  float64
	Orientation   Orientation
	Raised        bool
	Recessed      bool
}

// normalizeSpecs validates both specs, applies the documented defaults
// and caps, and returns copies the rest of the pass treats as
// immutable. capDepth is the effective glyph depth after the recessed
// punch-through cap.
func normalizeSpecs(ring RingSpec, text TextSpec, logger *slog.Logger) (RingSpec, TextSpec, style, float64, error) {
	const op = "validate"

	if ring.InnerRadius <= 0 {
		return ring, text, 0, 0, validationErrorf(op, "inner radius must be positive, got %g", ring.InnerRadius)
	}
	if ring.Thickness <= 0 {
		return ring, text, 0, 0, validationErrorf(op, "ring thickness must be positive, got %g", ring.Thickness)
	}
	if ring.Height <= 0 {
		return ring, text, 0, 0, validationErrorf(op, "ring height must be positive, got %g", ring.Height)
	}
	if ring.RadialSegments == 0 {
		ring.RadialSegments = defaultRadialSegments
	} else if ring.RadialSegments < minRadialSegments {
		logger.Warn("radial segments below smoothness floor, raising",
			"requested", ring.RadialSegments, "floor", minRadialSegments)
		ring.RadialSegments = minRadialSegments
	}
	ring.StartAngle = normalizeAngle(ring.StartAngle)
	ring.EndAngle = normalizeAngle(ring.EndAngle)

	text.Text = strings.NewReplacer("\n", "", "\r", "").Replace(text.Text)
	if text.Text == "" {
		return ring, text, 0, 0, validationErrorf(op, "text must not be empty")
	}
	if text.Size <= 0 {
		return ring, text, 0, 0, validationErrorf(op, "text size must be positive, got %g", text.Size)
	}
	if text.Depth <= 0 {
		return ring, text, 0, 0, validationErrorf(op, "text depth must be positive, got %g", text.Depth)
	}
	if text.LetterSpacing < 0 {
		logger.Warn("negative letter spacing clamped to 0", "requested", text.LetterSpacing)
		text.LetterSpacing = 0
	}
	if text.MaxArcBudget == 0 {
		text.MaxArcBudget = fullTurn
	}
	if text.MaxArcBudget < 0 || text.MaxArcBudget > fullTurn {
		return ring, text, 0, 0, validationErrorf(op,
			"max arc budget must be in (0, 2π], got %g", text.MaxArcBudget)
	}

	if text.Raised && text.Recessed {
		return ring, text, 0, 0, validationErrorf(op, "text cannot be both raised and recessed")
	}
	st := styleRaised
	switch {
	case text.Recessed:
		st = styleRecessed
	case !text.Raised:
		logger.Warn("neither raised nor recessed set, defaulting to raised")
		text.Raised = true
	}

	capDepth := text.Depth
	if st == styleRecessed && text.Depth >= ring.Thickness {
		// A carve as deep as the wall punches through; >= keeps a
		// nonzero inner wall even at exact equality.
		capDepth = ring.Thickness * recessedDepthCap
		logger.Warn("carved depth reaches ring thickness, capping",
			"depth", text.Depth, "thickness", ring.Thickness, "capped", capDepth)
	} else if st == styleRaised && text.Depth > ring.Thickness {
		logger.Info("raised depth exceeds ring thickness, leaving uncapped",
			"depth", text.Depth, "thickness", ring.Thickness)
	}

	return ring, text, st, capDepth, nil
}

// normalizeAngle maps an angle into [0, 2π).
func normalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, fullTurn)
	if theta < 0 {
		theta += fullTurn
	}
	return theta
}
