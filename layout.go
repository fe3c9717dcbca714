package ringtext

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// GlyphPlacement is one laid-out glyph: its angular slot on the ring
// and the rigid transform taking the extruded glyph solid into
// ring-world space. Computed once per pass and never mutated.
type GlyphPlacement struct {
	Index     int
	Rune      rune
	Glyph     *Glyph
	Center    float64
	HalfWidth float64
	Transform model3d.Transform
}

// Layout is the arc layout of the whole inscription.
type Layout struct {
	Placements []GlyphPlacement

	// Span is the total angular extent of the included text, centered
	// about angle 0.
	Span float64

	// Truncated is how many trailing glyphs were dropped to fit the
	// arc budget. Overflow reports the recoverable overflow condition.
	Truncated int
	Overflow  bool

	// FullTurn is set when the text span reached a whole turn, in
	// which case the band is built with an empty arc and the text
	// alone fills the ring.
	FullTurn bool

	// Skipped counts characters dropped because neither their glyph
	// nor the fallback glyph was available.
	Skipped int
}

// Start and End are the angular bounds of the included text.
func (l *Layout) Start() float64 { return -l.Span / 2 }
func (l *Layout) End() float64   { return l.Span / 2 }

// layoutArc converts per-glyph advance widths plus letter spacing into
// angular placements on a circle of the given radius, truncating
// trailing glyphs when the total exceeds budget. The included glyphs
// are centered symmetrically about angle 0. allowFullTurn permits the
// empty-band special case (raised text only).
func layoutArc(ctx *passContext, text string, spacing, budget, radius float64, allowFullTurn bool) (*Layout, error) {
	type entry struct {
		r     rune
		glyph *Glyph
		width float64
	}
	var entries []entry
	skipped := 0
	for _, r := range text {
		g, err := ctx.glyph(r)
		if err != nil {
			return nil, err
		}
		if g == nil {
			skipped++
			continue
		}
		entries = append(entries, entry{r: r, glyph: g, width: g.Advance / radius})
	}

	gap := spacing / radius
	total := func(n int) float64 {
		sum := 0.0
		for _, e := range entries[:n] {
			sum += e.width
		}
		if n > 1 {
			sum += gap * float64(n-1)
		}
		return sum
	}

	res := &Layout{Skipped: skipped}
	n := len(entries)
	full := total(n)

	limit := budget
	if allowFullTurn && full >= fullTurn {
		// The text fills the whole ring: the band gets an empty arc
		// and the text may use the entire turn regardless of budget.
		res.FullTurn = true
		limit = fullTurn
	}
	for n > 0 && total(n) > limit {
		n--
	}
	if n < len(entries) {
		res.Truncated = len(entries) - n
		res.Overflow = true
		ctx.logger.Warn("text exceeds arc budget, truncating trailing glyphs",
			"budget", limit, "span", full, "dropped", res.Truncated)
	}

	res.Span = total(n)
	theta := -res.Span / 2
	for i, e := range entries[:n] {
		// Whitespace occupies its slot but produces no solid and no
		// connector endpoint.
		if len(e.glyph.Outline) > 0 {
			res.Placements = append(res.Placements, GlyphPlacement{
				Index:     i,
				Rune:      e.r,
				Glyph:     e.glyph,
				Center:    theta + e.width/2,
				HalfWidth: e.width / 2,
			})
		}
		theta += e.width + gap
	}
	return res, nil
}

// arcLength converts an angular span at a radius to linear arc length.
func arcLength(span, radius float64) float64 {
	return math.Abs(span) * radius
}
