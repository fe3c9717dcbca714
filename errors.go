package ringtext

import (
	"errors"
	"fmt"
)

// ErrGlyphMissing is reported by a GlyphSource when a font has no glyph
// for a character. The pipeline substitutes the fallback glyph ('?')
// and, if that is also missing, skips the character with a warning.
var ErrGlyphMissing = errors.New("glyph missing")

// ErrorKind classifies pass failures.
//
// Available options:
//   - KindValidation: malformed RingSpec/TextSpec, detected before the pass.
//   - KindResource: font, glyph source, or output I/O failure.
//   - KindGeometry: boolean composition produced an invalid solid even
//     after the tessellation-increase retry.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindResource
	KindGeometry
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindResource:
		return "resource"
	case KindGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// Error is the error type returned by generation passes. Overflow is
// deliberately not an Error: truncation is recovered locally and
// reported on the Result instead.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is (or wraps) a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func validationErrorf(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf(format, args...)}
}

func resourceError(op string, err error) error {
	return &Error{Kind: KindResource, Op: op, Err: err}
}

func geometryErrorf(op, format string, args ...any) error {
	return &Error{Kind: KindGeometry, Op: op, Err: fmt.Errorf(format, args...)}
}
