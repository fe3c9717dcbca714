package ringtext

import (
	"math"
	"strings"

	"github.com/unixpickle/model3d/model3d"
)

// Material couples a name with a density in g/cm³.
type Material struct {
	Name    string
	Density float64
}

// Built-in material presets. Densities in g/cm³.
var (
	PLA    = Material{Name: "PLA", Density: 1.24}
	ABS    = Material{Name: "ABS", Density: 1.05}
	PETG   = Material{Name: "PETG", Density: 1.27}
	Silver = Material{Name: "silver", Density: 10.49}
	Gold   = Material{Name: "gold", Density: 19.3}
)

// MaterialByName looks up a preset, case-insensitively.
func MaterialByName(name string) (Material, bool) {
	for _, m := range []Material{PLA, ABS, PETG, Silver, Gold} {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Material{}, false
}

// MassEstimate is the measured volume of a final solid and its mass
// under a material density.
type MassEstimate struct {
	VolumeMM3 float64
	VolumeCM3 float64
	Material  Material
	Grams     float64
}

// EstimateMass computes the net enclosed volume of a watertight mesh
// and converts it to mass. It is a pure function of the mesh.
func EstimateMass(mesh *model3d.Mesh, mat Material) MassEstimate {
	mm3 := math.Abs(signedMeshVolume(mesh))
	cm3 := mm3 / 1000.0
	return MassEstimate{
		VolumeMM3: mm3,
		VolumeCM3: cm3,
		Material:  mat,
		Grams:     cm3 * mat.Density,
	}
}

// signedMeshVolume sums signed tetrahedron volumes (vertex triple
// product over 6) across all triangles. Positive for outward-oriented
// watertight meshes.
func signedMeshVolume(mesh *model3d.Mesh) float64 {
	volume := 0.0
	mesh.Iterate(func(t *model3d.Triangle) {
		volume += t[0].Dot(t[1].Cross(t[2])) / 6.0
	})
	return volume
}
