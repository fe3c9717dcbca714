// Package ringtext generates a single watertight solid for a ring band
// with inscribed text, suitable for casting or printing.
//
// A generation pass lays glyph outlines out along a circular arc,
// places each extruded glyph on the ring's outer surface with a rigid
// transform, synthesizes thin connectors so the result is one connected
// body, boolean-composes everything with the band, and produces a
// manifold triangle mesh that can be measured (volume and mass) and
// exported as binary STL. All dimensions are millimeters.
package ringtext
