package ringtext

import (
	"log/slog"
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// marchingCubesIters is the bisection count used when projecting mesh
// vertices onto the solid surface.
const marchingCubesIters = 8

// composeSolids combines the band with the tool solids: union for
// raised text, difference for recessed. band may be nil (empty arc),
// in which case the tools alone form the body.
func composeSolids(band model3d.Solid, tools []model3d.Solid, st style) model3d.Solid {
	if st == styleRecessed {
		return &model3d.SubtractedSolid{
			Positive: band,
			Negative: model3d.JoinedSolid(tools),
		}
	}
	joined := model3d.JoinedSolid{}
	if band != nil {
		joined = append(joined, band)
	}
	joined = append(joined, tools...)
	return joined
}

// composeMesh converts the composite solid into a triangle mesh and
// validates the manifold invariant. On a non-manifold, self-
// intersecting, or non-positive-volume result it retries exactly once
// at doubled tessellation before raising a fatal geometry error; an
// invalid solid is never returned.
func composeMesh(logger *slog.Logger, solid model3d.Solid, cell float64) (*model3d.Mesh, error) {
	const op = "compose"

	for attempt := 0; ; attempt++ {
		mesh := model3d.MarchingCubesSearch(solid, cell, marchingCubesIters)
		problem := meshProblem(mesh)
		if problem == "" {
			logger.Info("composited solid", "triangles", mesh.NumTriangles(), "cell", cell)
			return mesh, nil
		}
		if attempt > 0 {
			return nil, geometryErrorf(op, "%s after tessellation retry (cell %.4g)", problem, cell)
		}
		logger.Warn("composition produced invalid mesh, retrying at doubled tessellation",
			"problem", problem, "cell", cell)
		cell /= 2
	}
}

// meshProblem describes why a mesh violates the watertight-solid
// invariant, or returns "" when it holds: every edge borders exactly
// two triangles, no self-intersections, and net signed volume > 0.
func meshProblem(mesh *model3d.Mesh) string {
	if mesh.NumTriangles() == 0 {
		return "empty mesh"
	}
	if mesh.NeedsRepair() {
		return "non-manifold edges"
	}
	if n := len(mesh.SingularVertices()); n > 0 {
		return "singular vertices"
	}
	if mesh.SelfIntersections() > 0 {
		return "self-intersecting triangles"
	}
	if v := signedMeshVolume(mesh); v <= 0 || math.IsNaN(v) {
		return "non-positive volume"
	}
	return ""
}
