package ringtext

import (
	"sync/atomic"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// blockSource is a synthetic glyph source for geometry tests: every
// character is a solid rectangle, so no font file is needed and glyph
// volumes are exactly computable.
type blockSource struct {
	missing map[rune]bool
}

func (b *blockSource) Glyph(fontID string, r rune, size float64) (*Glyph, error) {
	if b.missing[r] {
		return nil, ErrGlyphMissing
	}
	advance := size * 0.6
	if r == ' ' {
		return &Glyph{Rune: r, Advance: advance}, nil
	}
	w := size * 0.5
	h := size * 0.8
	contour := Contour{
		{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}, {X: 0, Y: 0},
	}
	return &Glyph{
		Rune:    r,
		Advance: advance,
		Outline: Outline{contour},
		Min:     model2d.Coord{X: 0, Y: 0},
		Max:     model2d.Coord{X: w, Y: h},
	}, nil
}

// countingSource tallies resolutions per rune, for cache and debounce
// assertions.
type countingSource struct {
	inner  GlyphSource
	counts map[rune]*atomic.Int64
}

func newCountingSource(inner GlyphSource, runes ...rune) *countingSource {
	c := &countingSource{inner: inner, counts: map[rune]*atomic.Int64{}}
	for _, r := range runes {
		c.counts[r] = &atomic.Int64{}
	}
	return c
}

func (c *countingSource) Glyph(fontID string, r rune, size float64) (*Glyph, error) {
	if n, ok := c.counts[r]; ok {
		n.Add(1)
	}
	return c.inner.Glyph(fontID, r, size)
}

// smallRing is a band small enough for fast marching-cubes meshing.
func smallRing() RingSpec {
	return RingSpec{InnerRadius: 2, Thickness: 1, Height: 3}
}

func smallText(s string) TextSpec {
	return TextSpec{
		Text:   s,
		FontID: "test",
		Size:   1.2,
		Depth:  0.4,
		Raised: true,
	}
}

// unitCubeMesh is a hand-oriented watertight cube spanning [0,1]^3.
func unitCubeMesh() *model3d.Mesh {
	c := func(x, y, z float64) model3d.Coord3D {
		return model3d.XYZ(x, y, z)
	}
	tris := []*model3d.Triangle{
		{c(0, 0, 0), c(0, 1, 0), c(1, 1, 0)},
		{c(0, 0, 0), c(1, 1, 0), c(1, 0, 0)},
		{c(0, 0, 1), c(1, 0, 1), c(1, 1, 1)},
		{c(0, 0, 1), c(1, 1, 1), c(0, 1, 1)},
		{c(0, 0, 0), c(0, 0, 1), c(0, 1, 1)},
		{c(0, 0, 0), c(0, 1, 1), c(0, 1, 0)},
		{c(1, 0, 0), c(1, 1, 0), c(1, 1, 1)},
		{c(1, 0, 0), c(1, 1, 1), c(1, 0, 1)},
		{c(0, 0, 0), c(1, 0, 0), c(1, 0, 1)},
		{c(0, 0, 0), c(1, 0, 1), c(0, 0, 1)},
		{c(0, 1, 0), c(0, 1, 1), c(1, 1, 1)},
		{c(0, 1, 0), c(1, 1, 1), c(1, 1, 0)},
	}
	return model3d.NewMeshTriangles(tris)
}
