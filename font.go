package ringtext

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-text/typesetting/di"
	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"github.com/golang/freetype/truetype"
	"github.com/unixpickle/model3d/model2d"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FallbackRune is substituted for characters the font cannot resolve.
const FallbackRune = '?'

type Contour []model2d.Coord
type Outline []Contour

// Glyph is one character's outline and metrics, scaled to the
// requested text size with the baseline at y=0 and the pen at x=0.
// Derived once per (font, character, size) and treated as read-only.
type Glyph struct {
	Rune    rune
	Advance float64
	Outline Outline
	Min     model2d.Coord
	Max     model2d.Coord
}

// Width is the horizontal extent of the glyph's outline.
func (g *Glyph) Width() float64 {
	return g.Max.X - g.Min.X
}

// Height is the vertical extent of the glyph's outline.
func (g *Glyph) Height() float64 {
	return g.Max.Y - g.Min.Y
}

// GlyphSource resolves a character of a font to its outline and
// advance at a given size. Implementations return ErrGlyphMissing
// (possibly wrapped) when the font has no usable glyph for r.
type GlyphSource interface {
	Glyph(fontID string, r rune, size float64) (*Glyph, error)
}

// ParsedFont stores parsed TrueType data and auxiliary metrics/layout state.
type ParsedFont struct {
	TTFont *truetype.Font

	ascent float64
	hbFace *gotextfont.Face
}

// ParseTTF parses a TTF/OTF(TrueType outlines) font file.
func ParseTTF(ttfBytes []byte) (*ParsedFont, error) {
	ttf, err := truetype.Parse(ttfBytes)
	if err != nil {
		return nil, err
	}
	res := &ParsedFont{TTFont: ttf}
	if asc, ok := parseOS2TypoAscender(ttfBytes); ok && asc > 0 {
		res.ascent = asc
	}
	if hbFace, err := gotextfont.ParseTTF(bytes.NewReader(ttfBytes)); err == nil {
		res.hbFace = hbFace
	}
	return res, nil
}

// scale maps font units to model units such that the font ascent
// (baseline to top) equals size, matching OpenSCAD's text(size=...).
func (f *ParsedFont) scale(size float64) float64 {
	upem := float64(f.TTFont.FUnitsPerEm())
	ascent := f.ascent
	if ascent <= 0 {
		fontBounds := f.TTFont.Bounds(fixed.Int26_6(f.TTFont.FUnitsPerEm()))
		ascent = float64(fontBounds.Max.Y)
	}
	if ascent <= 0 {
		ascent = upem
	}
	return size / ascent
}

// glyphIndex maps a rune to a glyph index, via HarfBuzz when the face
// parsed, falling back to the truetype cmap. ok is false when the font
// resolves r to the missing-glyph slot.
func (f *ParsedFont) glyphIndex(r rune) (truetype.Index, bool) {
	if f.hbFace != nil {
		shaper := shaping.HarfbuzzShaper{}
		out := shaper.Shape(shaping.Input{
			Text:      []rune{r},
			RunStart:  0,
			RunEnd:    1,
			Direction: di.DirectionLTR,
			Face:      f.hbFace,
			Size:      fixed.I(int(f.TTFont.FUnitsPerEm())),
		})
		if len(out.Glyphs) == 1 && out.Glyphs[0].GlyphID != 0 {
			return truetype.Index(out.Glyphs[0].GlyphID), true
		}
	}
	idx := f.TTFont.Index(r)
	return idx, idx != 0
}

// Glyph loads, flattens, and scales a single glyph. curveSegs controls
// flattening segments per quadratic; <=0 uses a default of 8.
func (f *ParsedFont) Glyph(r rune, size float64, curveSegs int) (*Glyph, error) {
	if size <= 0 {
		return nil, errors.New("size must be > 0")
	}
	if curveSegs <= 0 {
		curveSegs = 8
	}
	idx, ok := f.glyphIndex(r)
	if !ok {
		return nil, fmt.Errorf("rune %q: %w", r, ErrGlyphMissing)
	}

	// truetype uses 26.6 fixed point "scale" for glyph loading.
	// Setting it to 64*upem makes 1 font unit = 64 in the GlyphBuf, so
	// glyph coords come out in font units before our own float scale.
	upem := f.TTFont.FUnitsPerEm()
	fixedScale := fixed.Int26_6(int32(upem) * 64)
	scale := f.scale(size)

	var gb truetype.GlyphBuf
	if err := gb.Load(f.TTFont, fixedScale, idx, xfont.HintingNone); err != nil {
		return nil, fmt.Errorf("load glyph %q: %w", r, ErrGlyphMissing)
	}
	advance := float64(gb.AdvanceWidth) / 64.0 * scale

	g := &Glyph{Rune: r, Advance: advance}
	g.Min = model2d.Coord{X: math.Inf(1), Y: math.Inf(1)}
	g.Max = model2d.Coord{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, c := range glyphContoursToPolylines(&gb, scale, curveSegs) {
		for _, p := range c {
			g.Min.X = math.Min(g.Min.X, p.X)
			g.Min.Y = math.Min(g.Min.Y, p.Y)
			g.Max.X = math.Max(g.Max.X, p.X)
			g.Max.Y = math.Max(g.Max.Y, p.Y)
		}
		g.Outline = append(g.Outline, c)
	}
	if len(g.Outline) == 0 {
		// Whitespace: advance only, zero-extent bounds at the pen.
		g.Min = model2d.Coord{}
		g.Max = model2d.Coord{}
	}
	return g, nil
}

// FontLibrary is a GlyphSource backed by parsed TrueType fonts keyed
// by identifier.
type FontLibrary struct {
	CurveSegs int

	fonts map[string]*ParsedFont
}

func NewFontLibrary() *FontLibrary {
	return &FontLibrary{fonts: map[string]*ParsedFont{}}
}

// Add registers a parsed font under an identifier.
func (l *FontLibrary) Add(id string, f *ParsedFont) {
	l.fonts[id] = f
}

// AddTTF parses and registers a TTF/OTF font file's bytes.
func (l *FontLibrary) AddTTF(id string, ttfBytes []byte) error {
	f, err := ParseTTF(ttfBytes)
	if err != nil {
		return err
	}
	l.Add(id, f)
	return nil
}

// Glyph implements GlyphSource. An unknown font identifier is a
// resource failure; an unmapped character is ErrGlyphMissing.
func (l *FontLibrary) Glyph(fontID string, r rune, size float64) (*Glyph, error) {
	f, ok := l.fonts[fontID]
	if !ok {
		return nil, resourceError("font", fmt.Errorf("unknown font %q", fontID))
	}
	return f.Glyph(r, size, l.CurveSegs)
}

// glyphContoursToPolylines converts truetype contour points into flattened
// polylines. scale maps font units -> model units.
func glyphContoursToPolylines(gb *truetype.GlyphBuf, scale float64, segs int) []Contour {
	pts := gb.Points
	ends := gb.Ends

	var out []Contour
	start := 0

	for _, end := range ends {
		contourPts := pts[start:end]
		start = end
		if len(contourPts) == 0 {
			continue
		}

		// Build a polyline by walking points and flattening implied quadratics.
		poly := flattenTrueTypeContour(contourPts, scale, segs)
		if len(poly) >= 3 {
			out = append(out, poly)
		}
	}

	return out
}

// flattenTrueTypeContour handles on-curve/off-curve quadratic points per
// TrueType spec, including wrap-around implied points and consecutive
// off-curve points.
func flattenTrueTypeContour(pts []truetype.Point, scale float64, segs int) Contour {
	if len(pts) == 0 {
		return nil
	}

	toVec := func(p truetype.Point) model2d.Coord {
		return model2d.Coord{
			X: float64(p.X) / 64.0 * scale,
			Y: float64(p.Y) / 64.0 * scale,
		}
	}
	onCurve := func(p truetype.Point) bool { return p.Flags&0x01 != 0 }

	n := len(pts)

	// Choose the TrueType start point.
	var start model2d.Coord
	startIdx := 0
	if onCurve(pts[0]) {
		start = toVec(pts[0])
		startIdx = 0
	} else if onCurve(pts[n-1]) {
		start = toVec(pts[n-1])
		startIdx = n - 1
	} else {
		start = toVec(pts[n-1]).Mid(toVec(pts[0]))
		startIdx = 0
	}

	poly := make(Contour, 0, n*segs+4)
	poly = append(poly, start)

	prevOn := start
	var haveCtrl bool
	var ctrl model2d.Coord

	// Walk points once around the contour, starting after the chosen anchor.
	i := (startIdx + 1) % n
	for steps := 0; steps < n; steps++ {
		p := pts[i]

		if onCurve(p) {
			on := toVec(p)
			if haveCtrl {
				// Quadratic: prevOn -> ctrl -> on
				poly = append(poly, flattenQuad(prevOn, ctrl, on, segs)...)
				haveCtrl = false
			} else {
				// Line: prevOn -> on
				poly = append(poly, on)
			}
			prevOn = on
			i = (i + 1) % n
			continue
		}

		// Off-curve control point.
		c := toVec(p)
		if haveCtrl {
			// Two consecutive off-curve points => implied on-curve at midpoint.
			implied := ctrl.Mid(c)
			poly = append(poly, flattenQuad(prevOn, ctrl, implied, segs)...)
			prevOn = implied
			// Keep the new control pending.
			ctrl = c
			haveCtrl = true
		} else {
			ctrl = c
			haveCtrl = true
		}
		i = (i + 1) % n
	}

	// Close contour back to start.
	if haveCtrl {
		poly = append(poly, flattenQuad(prevOn, ctrl, start, segs)...)
	} else {
		// Avoid duplicating if already at start.
		if poly[len(poly)-1] != start {
			poly = append(poly, start)
		}
	}

	// Ensure explicit closure.
	if poly[len(poly)-1] != poly[0] {
		poly = append(poly, poly[0])
	}

	if len(poly) < 4 {
		return nil
	}
	return poly
}

func flattenQuad(p0, p1, p2 model2d.Coord, segs int) []model2d.Coord {
	out := make([]model2d.Coord, 0, segs)
	for i := 1; i <= segs; i++ {
		t := float64(i) / float64(segs)
		u := 1 - t
		p := p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t))
		out = append(out, p)
	}
	return out
}

func parseOS2TypoAscender(data []byte) (float64, bool) {
	const (
		tableDirOffset = 12
		recordSize     = 16
		os2Tag         = "OS/2"
		typoAscOffset  = 68
	)
	if len(data) < tableDirOffset {
		return 0, false
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	if numTables < 0 || len(data) < tableDirOffset+numTables*recordSize {
		return 0, false
	}
	for i := 0; i < numTables; i++ {
		recOff := tableDirOffset + i*recordSize
		tag := string(data[recOff : recOff+4])
		if tag != os2Tag {
			continue
		}
		tableOffset := int(binary.BigEndian.Uint32(data[recOff+8 : recOff+12]))
		tableLen := int(binary.BigEndian.Uint32(data[recOff+12 : recOff+16]))
		if tableOffset < 0 || tableLen < 0 || tableOffset+tableLen > len(data) || tableLen < typoAscOffset+2 {
			return 0, false
		}
		raw := int16(binary.BigEndian.Uint16(data[tableOffset+typoAscOffset : tableOffset+typoAscOffset+2]))
		return float64(raw), raw > 0
	}
	return 0, false
}
