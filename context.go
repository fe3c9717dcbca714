package ringtext

import (
	"errors"
	"log/slog"
)

// passContext carries the per-pass state: the logger, the glyph source,
// and a glyph-metric cache. Its lifecycle begins at pass start and ends
// when the final solid is produced; no mutable state is shared across
// passes.
type passContext struct {
	logger *slog.Logger
	source GlyphSource
	fontID string
	size   float64
	cache  map[rune]*Glyph
}

func newPassContext(logger *slog.Logger, source GlyphSource, fontID string, size float64) *passContext {
	return &passContext{
		logger: logger,
		source: source,
		fontID: fontID,
		size:   size,
		cache:  map[rune]*Glyph{},
	}
}

// glyph resolves a character, applying the fallback policy: a missing
// glyph substitutes FallbackRune; if the fallback is also missing the
// character is skipped (nil, nil) with a warning. Any other source
// failure is a resource error.
func (c *passContext) glyph(r rune) (*Glyph, error) {
	if g, ok := c.cache[r]; ok {
		return g, nil
	}
	g, err := c.source.Glyph(c.fontID, r, c.size)
	if err != nil && errors.Is(err, ErrGlyphMissing) && r != FallbackRune {
		c.logger.Warn("glyph unavailable, substituting fallback",
			"rune", string(r), "fallback", string(rune(FallbackRune)))
		g, err = c.glyph(FallbackRune)
	}
	if err != nil {
		if errors.Is(err, ErrGlyphMissing) {
			c.logger.Warn("fallback glyph unavailable, skipping character", "rune", string(r))
			c.cache[r] = nil
			return nil, nil
		}
		return nil, resourceError("glyph", err)
	}
	c.cache[r] = g
	return g, nil
}
