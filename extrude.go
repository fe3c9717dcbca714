package ringtext

import (
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// OutlineMesh converts outline contours into a single 2D mesh. Each
// contour is added as a closed polyline.
func OutlineMesh(o Outline) *model2d.Mesh {
	mesh := model2d.NewMesh()
	for _, contour := range o {
		if len(contour) < 2 {
			continue
		}
		for i := 1; i < len(contour); i++ {
			mesh.Add(&model2d.Segment{contour[i-1], contour[i]})
		}
		if contour[0] != contour[len(contour)-1] {
			mesh.Add(&model2d.Segment{contour[len(contour)-1], contour[0]})
		}
	}
	return mesh
}

// outlineSolid converts contours into a 2D solid, with holes (counter
// oriented contours) handled by the even-odd rule of the mesh.
func outlineSolid(o Outline) model2d.Solid {
	mesh := OutlineMesh(o)
	if mesh.NumSegments() == 0 {
		return nil
	}
	return mesh.Solid()
}

// extrudeGlyph turns a glyph outline into a prism of the given depth,
// centered on z=0 so the placement transform can treat the glyph's
// local origin as its radial center.
func extrudeGlyph(g *Glyph, depth float64) model3d.Solid {
	profile := outlineSolid(g.Outline)
	if profile == nil {
		return nil
	}
	return model3d.ProfileSolid(profile, -depth/2, depth/2)
}
