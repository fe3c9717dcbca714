package ringtext

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placedLayout builds a layout with block glyphs at the given angular
// centers, each halfWidth radians wide.
func placedLayout(t *testing.T, centers []float64, halfWidth float64) *Layout {
	t.Helper()
	layout := &Layout{}
	for i, c := range centers {
		g, err := (&blockSource{}).Glyph("test", 'A', 1.2)
		require.NoError(t, err)
		layout.Placements = append(layout.Placements, GlyphPlacement{
			Index:     i,
			Rune:      'A',
			Glyph:     g,
			Center:    c,
			HalfWidth: halfWidth,
		})
	}
	if n := len(centers); n > 0 {
		layout.Span = (centers[n-1] + halfWidth) - (centers[0] - halfWidth)
	}
	return layout
}

func TestConnectorsSleepingRaised(t *testing.T) {
	ring := RingSpec{InnerRadius: 9, Thickness: 2, Height: 6, RadialSegments: 256}
	layout := placedLayout(t, []float64{-0.1, 0.1}, 0.05)

	solids, err := synthesizeConnectors(ensureLogger(nil), layout, &ring, Sleeping, styleRaised, 0.5, false)
	require.NoError(t, err)
	// One inter-glyph link plus a bridge from each end glyph to the band.
	assert.Len(t, solids, 3)

	// The link sits just above the outer surface at the mid-gap angle.
	outer := ring.OuterRadius()
	link := solids[0]
	assert.True(t, link.Contains(anglePosition(outer+surfaceClearance+MinFeatureSize/2, 0)))
	assert.False(t, link.Contains(anglePosition(outer-1, 0)))
}

func TestConnectorsGapTooWide(t *testing.T) {
	ring := RingSpec{InnerRadius: 9, Thickness: 2, Height: 6}
	// 0.4rad * 11mm = 4.4mm gap, over the bridgeable maximum.
	layout := placedLayout(t, []float64{-0.25, 0.25}, 0.05)

	_, err := synthesizeConnectors(ensureLogger(nil), layout, &ring, Sleeping, styleRaised, 0.5, false)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindGeometry))
}

func TestConnectorsStandingTabs(t *testing.T) {
	ring := RingSpec{InnerRadius: 9, Thickness: 2, Height: 6}
	layout := placedLayout(t, []float64{-0.1, 0, 0.1}, 0.04)

	solids, err := synthesizeConnectors(ensureLogger(nil), layout, &ring, Standing, styleRaised, 0.5, false)
	require.NoError(t, err)
	// One platform tab per glyph plus the two end bridges.
	assert.Len(t, solids, 5)

	// A tab straddles the outer surface beneath its glyph.
	outer := ring.OuterRadius()
	tab := solids[1]
	assert.True(t, tab.Contains(anglePosition(outer, 0)))
	assert.True(t, tab.Contains(anglePosition(outer-surfaceEmbed/2, 0)))
	assert.False(t, tab.Contains(anglePosition(outer, 0.1-0.04)))
}

func TestConnectorsFullTurnWrapLink(t *testing.T) {
	ring := RingSpec{InnerRadius: 9, Thickness: 2, Height: 6}
	// Four glyphs evenly spread around the full turn, no band beneath.
	centers := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	layout := placedLayout(t, centers, math.Pi/4-0.01)
	layout.FullTurn = true

	solids, err := synthesizeConnectors(ensureLogger(nil), layout, &ring, Sleeping, styleRaised, 0.5, true)
	require.NoError(t, err)
	// Three consecutive links plus the wrap-around closure, no bridges.
	assert.Len(t, solids, 4)
}

func TestConnectorsRecessedChannels(t *testing.T) {
	ring := RingSpec{InnerRadius: 9, Thickness: 2, Height: 6}
	layout := placedLayout(t, []float64{-0.1, 0.1}, 0.05)

	solids, err := synthesizeConnectors(ensureLogger(nil), layout, &ring, Sleeping, styleRecessed, 1.8, false)
	require.NoError(t, err)
	// Carved channels between glyphs only; no band bridges to subtract.
	require.Len(t, solids, 1)

	// The channel reaches down into the wall by the capped depth.
	outer := ring.OuterRadius()
	channel := solids[0]
	assert.True(t, channel.Contains(anglePosition(outer-0.9, 0)))
	assert.False(t, channel.Contains(anglePosition(outer-1.9, 0)))
}

func TestConnectorsZeroSpacingAdjacentGlyphs(t *testing.T) {
	// At zero letter spacing consecutive slot edges coincide up to
	// rounding, and a tiny negative difference must read as touching,
	// never as a near-full-turn gap.
	ring := RingSpec{InnerRadius: 9, Thickness: 2, Height: 6}
	for _, text := range []string{"LOVE", "HELLO", "FOREVERMORE", "WXYZ", "MMMM"} {
		for _, size := range []float64{0.9, 1.2, 2.7, 3.0} {
			ctx := newPassContext(ensureLogger(nil), &blockSource{}, "test", size)
			layout, err := layoutArc(ctx, text, 0, fullTurn, ring.OuterRadius(), true)
			require.NoError(t, err, "%s size %v", text, size)

			solids, err := synthesizeConnectors(ensureLogger(nil), layout, &ring,
				Sleeping, styleRaised, 0.5, false)
			require.NoError(t, err, "%s size %v", text, size)
			assert.Len(t, solids, len(layout.Placements)-1+2, "%s size %v", text, size)
		}
	}
}

func TestConnectorsTouchingEdgesExactly(t *testing.T) {
	ring := RingSpec{InnerRadius: 9, Thickness: 2, Height: 6}
	layout := placedLayout(t, []float64{-0.05, 0.05}, 0.05)
	// Nudge the second slot so its leading edge lands a hair before the
	// first slot's trailing edge, the worst rounding outcome.
	layout.Placements[1].Center -= 1e-16

	solids, err := synthesizeConnectors(ensureLogger(nil), layout, &ring,
		Sleeping, styleRaised, 0.5, false)
	require.NoError(t, err)
	assert.Len(t, solids, 3)
}

func TestAngularGap(t *testing.T) {
	assert.Equal(t, 0.0, angularGap(0.5, 0.5))
	assert.Equal(t, 0.0, angularGap(0.5, 0.5-1e-17))
	assert.InDelta(t, 0.1, angularGap(0.5, 0.6), 1e-12)
	// A genuine backward span still wraps.
	assert.InDelta(t, 2*math.Pi-0.5, angularGap(0.5, 0), 1e-12)
}

func TestConnectorBridgeToArcEndCap(t *testing.T) {
	// Band arc ends at π/2; the glyph sits just past the end cap, so the
	// bridge runs along the surface to it.
	ring := RingSpec{InnerRadius: 9, Thickness: 2, Height: 6, StartAngle: math.Pi / 2, EndAngle: 3 * math.Pi / 2}
	p := GlyphPlacement{Center: math.Pi/2 - 0.08, HalfWidth: 0.04}

	spec, err := bandBridge(&p, &ring, ring.OuterRadius())
	require.NoError(t, err)
	// The bridge spans from the glyph edge to the band start angle.
	assert.InDelta(t, math.Pi/2-0.04-surfaceEmbed/11, spec.start, 1e-9)
	assert.InDelta(t, 0.04+2*surfaceEmbed/11, spec.span, 1e-9)
}

func TestArcSectorSolid(t *testing.T) {
	s := arcSectorSolid(-0.1, 0.2, 10, 11, -0.5, 0.5)
	assert.True(t, s.Contains(anglePosition(10.5, 0)))
	assert.False(t, s.Contains(anglePosition(9.5, 0)))
	assert.False(t, s.Contains(anglePosition(10.5, 0.3)))
	p := anglePosition(10.5, 0)
	p.Z = 0.6
	assert.False(t, s.Contains(p))
}
